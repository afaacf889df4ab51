package handlers

import (
	"relay_control/internal/logger"
	"relay_control/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.SetHTMLTemplate(dashboardTemplate)
	router.GET("/", h.dashboard)
	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	// state stream on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerRelayRoutes(api)
	}
}

func (h *Handler) registerRelayRoutes(api *gin.RouterGroup) {
	relays := api.Group("/relays")
	{
		relays.GET("/state", h.getState)
		relays.POST("/:id/toggle", h.toggleRelay)
		// Body example: {"action":"RESET"}
		relays.POST("/:id/command", h.sendCommand)
	}
}
