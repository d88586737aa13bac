package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Current suggestions
// @Tags         insights
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, suggestions"
// @Router       /api/v1/suggestions [get]
// @Security     BearerAuth
func (h *Handler) listSuggestions(c *gin.Context) {
	items := h.services.Suggestions.List()
	c.JSON(http.StatusOK, gin.H{
		"count":       len(items),
		"suggestions": items,
	})
}

// @Summary      Refresh suggestions from the AI service
// @Description  On failure or an empty answer the previous suggestions are kept and 'refreshed' is false.
// @Tags         insights
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "refreshed, count, suggestions"
// @Router       /api/v1/suggestions/refresh [post]
// @Security     BearerAuth
func (h *Handler) refreshSuggestions(c *gin.Context) {
	items, replaced := h.services.Suggestions.Refresh(c.Request.Context())
	if h.log != nil {
		h.log.Infow("suggestions_refreshed", "replaced", replaced, "count", len(items))
	}
	c.JSON(http.StatusOK, gin.H{
		"refreshed":   replaced,
		"count":       len(items),
		"suggestions": items,
	})
}
