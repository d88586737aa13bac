package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseSelected splits ?selected=1,2,3. The bool is false when the parameter
// is absent, meaning "all appliances".
func parseSelected(c *gin.Context) ([]string, bool) {
	raw, present := c.GetQuery("selected")
	if !present {
		return nil, false
	}
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			out = append(out, id)
		}
	}
	return out, true
}

// @Summary      Usage projection
// @Description  Scales the base series by the selected appliances' share of total load. Omit 'selected' for all appliances; pass it empty for none.
// @Tags         dashboard
// @Produce      json
// @Param        selected  query     string  false  "Comma-separated appliance ids"  example(1,3)
// @Success      200       {object}  models.Projection
// @Router       /api/v1/dashboard [get]
// @Security     BearerAuth
func (h *Handler) getDashboard(c *gin.Context) {
	if ids, ok := parseSelected(c); ok {
		c.JSON(http.StatusOK, h.services.Dashboard.Project(ids))
		return
	}
	c.JSON(http.StatusOK, h.services.Dashboard.Overview())
}

// @Summary      Base usage history
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, history"
// @Router       /api/v1/history [get]
// @Security     BearerAuth
func (h *Handler) getHistory(c *gin.Context) {
	history := h.services.Dashboard.History()
	c.JSON(http.StatusOK, gin.H{
		"count":   len(history),
		"history": history,
	})
}
