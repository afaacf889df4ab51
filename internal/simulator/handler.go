package simulator

import (
	"errors"
	"net/http"

	"relay_control/internal/device"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRelay  = errors.New("invalid relay number")
	errInvalidAction = errors.New("invalid action")
)

// Response bodies match the firmware's plain-text answers.
const (
	msgInvalidJSON   = "Invalid JSON"
	msgMissingFields = "Missing required fields"
	msgInvalidRelay  = "Invalid relay number"
	msgInvalidAction = "Invalid action"
	msgOffline       = "device offline"
)

// controlRequest uses pointers so absent fields can be told apart from zero values.
type controlRequest struct {
	Relay  *int    `json:"relay"`
	Action *string `json:"action"`
}

// Routes builds the firmware's HTTP API on a gin engine.
func (d *Device) Routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), corsHeaders, d.offlineGate)

	router.GET(device.StatusPath, d.getStatus)
	router.POST(device.ControlPath, d.postRelay)
	router.OPTIONS("/*any", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return router
}

// corsHeaders lets a browser page on another origin call the device directly.
func corsHeaders(c *gin.Context) {
	h := c.Writer.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	c.Next()
}

func (d *Device) offlineGate(c *gin.Context) {
	if d.isOffline() {
		c.String(http.StatusServiceUnavailable, msgOffline)
		c.Abort()
		return
	}
	c.Next()
}

func (d *Device) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, d.Status())
}

func (d *Device) postRelay(c *gin.Context) {
	var req controlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		d.log.Infow("relay_request_bad_json", "err", err)
		c.String(http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if req.Relay == nil || req.Action == nil {
		c.String(http.StatusBadRequest, msgMissingFields)
		return
	}
	if err := d.Apply(*req.Relay, *req.Action); err != nil {
		msg := msgInvalidAction
		if errors.Is(err, errInvalidRelay) {
			msg = msgInvalidRelay
		}
		c.String(http.StatusBadRequest, msg)
		return
	}
	c.Status(http.StatusOK)
}
