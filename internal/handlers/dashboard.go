package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(
	template.New("").Funcs(template.FuncMap{
		"percent": formatPercent,
	}).ParseFS(templateFS, "templates/dashboard.html"),
)

// formatPercent renders a progress value as a CSS width, e.g. "5.2%".
func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// @Summary      Dashboard
// @Description  HTML page showing both relays; it follows /ws and posts toggles.
// @Tags         system
// @Produce      html
// @Success      200
// @Router       / [get]
func (h *Handler) dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", h.services.Monitoring.GetState(c.Request.Context()))
}
