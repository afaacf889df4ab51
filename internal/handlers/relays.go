package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"relay_control/internal/device"
	"relay_control/internal/models"
	"relay_control/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK          = "ok"
	statusDispatched  = "dispatched"
	statusUnreachable = "device_unreachable"

	errInvalidRelayID  = "invalid relay id: must be 1 or 2"
	errDispatchFailed  = "failed to dispatch command"
	errInvalidBodyPref = "invalid body: "
)

// commandRequest is the body of POST /api/v1/relays/{id}/command.
type commandRequest struct {
	Action string `json:"action" binding:"required"` // ON | OFF | RESET
}

// CommandRequest is an exported model for Swagger docs of the command payload.
type CommandRequest struct {
	// Action to send. Allowed: ON, OFF, RESET
	Action string `json:"action" example:"ON"`
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", requestID(c)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondWithStatusAndState answers with a status and the freshly rendered state.
func (h *Handler) respondWithStatusAndState(c *gin.Context, httpCode int, status string, extra gin.H) {
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	resp["state"] = h.services.Monitoring.GetState(c.Request.Context())
	c.JSON(httpCode, resp)
}

// parseRelayID reads the :id path parameter; false means a 400 was written.
func parseRelayID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || !models.ValidRelay(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidRelayID})
		return 0, false
	}
	return id, true
}

// respondDispatch maps a dispatcher outcome onto an HTTP answer. A device
// that could not be reached is a 502 carrying the (now disconnected) state.
func (h *Handler) respondDispatch(c *gin.Context, relayID int, action string, err error) {
	extra := gin.H{"relay": relayID, "action": action}
	switch {
	case err == nil:
		h.respondWithStatusAndState(c, http.StatusOK, statusDispatched, extra)
	case errors.Is(err, service.ErrInvalidRelay), errors.Is(err, service.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, device.ErrConnectivity):
		if h.log != nil {
			h.log.Warnw("relay_dispatch_unreachable", "relay", relayID, "action", action, "request_id", requestID(c), "err", err)
		}
		h.respondWithStatusAndState(c, http.StatusBadGateway, statusUnreachable, extra)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errDispatchFailed, "relay_dispatch_failed", err, "relay", relayID, "action", action)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get relay state
// @Description  Last confirmed relay state plus the connectivity flag.
// @Tags         relays
// @Produce      json
// @Success      200  {object}  view.State
// @Router       /api/v1/relays/state [get]
func (h *Handler) getState(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.GetState(c.Request.Context()))
}

// @Summary      Toggle relay
// @Description  Sends the opposite of the relay's current state, then refreshes.
// @Tags         relays
// @Produce      json
// @Param        id   path      int  true  "Relay id (1 or 2)"
// @Success      200  {object}  map[string]interface{}  "status, relay, action, state"
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]interface{}
// @Router       /api/v1/relays/{id}/toggle [post]
func (h *Handler) toggleRelay(c *gin.Context) {
	id, ok := parseRelayID(c)
	if !ok {
		return
	}
	action, err := h.services.Dispatcher.Toggle(c.Request.Context(), id)
	h.respondDispatch(c, id, action, err)
}

// @Summary      Send relay command
// @Description  Sends an explicit ON, OFF or RESET, then refreshes.
// @Tags         relays
// @Accept       json
// @Produce      json
// @Param        id    path   int             true  "Relay id (1 or 2)"
// @Param        body  body   CommandRequest  true  "Command payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]interface{}
// @Router       /api/v1/relays/{id}/command [post]
func (h *Handler) sendCommand(c *gin.Context) {
	id, ok := parseRelayID(c)
	if !ok {
		return
	}
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	action := strings.ToUpper(strings.TrimSpace(req.Action))
	err := h.services.Dispatcher.SendCommand(c.Request.Context(), id, action)
	h.respondDispatch(c, id, action, err)
}
