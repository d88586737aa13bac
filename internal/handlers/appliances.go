package handlers

import (
	"net/http"

	"optiwatt/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      List appliances
// @Tags         appliances
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, appliances"
// @Router       /api/v1/appliances [get]
// @Security     BearerAuth
func (h *Handler) listAppliances(c *gin.Context) {
	items := h.services.Appliances.List()
	c.JSON(http.StatusOK, gin.H{
		"count":      len(items),
		"appliances": items,
	})
}

// @Summary      Weekly comparison for one appliance
// @Tags         appliances
// @Produce      json
// @Param        id   path      string  true  "Appliance id"
// @Success      200  {object}  map[string]interface{}  "appliance, weeks"
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/appliances/{id}/comparison [get]
// @Security     BearerAuth
func (h *Handler) compareAppliance(c *gin.Context) {
	a, ok := h.services.Appliances.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errApplianceNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"appliance": a,
		"weeks":     service.CompareWeekly(a),
	})
}

// @Summary      Toggle appliance on/off
// @Tags         appliances
// @Produce      json
// @Param        id   path      string  true  "Appliance id"
// @Success      200  {object}  models.Appliance
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/appliances/{id}/toggle [post]
// @Security     BearerAuth
func (h *Handler) toggleAppliance(c *gin.Context) {
	a, ok := h.services.Appliances.Toggle(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errApplianceNotFound})
		return
	}
	if h.log != nil {
		h.log.Infow("appliance_toggled", "appliance_id", a.ID, "status", a.Status)
	}
	c.JSON(http.StatusOK, a)
}
