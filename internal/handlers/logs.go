package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Daily logs for a room
// @Description  Seven synthetic entries (Today, Yesterday, then weekdays). Values are regenerated on every call.
// @Tags         blocks
// @Produce      json
// @Param        id      path      string  true  "Block id"
// @Param        roomId  path      string  true  "Room id"
// @Success      200     {object}  map[string]interface{}  "count, logs"
// @Failure      404     {object}  map[string]string
// @Router       /api/v1/blocks/{id}/rooms/{roomId}/logs [get]
// @Security     BearerAuth
func (h *Handler) getRoomLogs(c *gin.Context) {
	logs, ok := h.services.RoomLogs.RoomLogs(c.Param("id"), c.Param("roomId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errRoomNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(logs),
		"logs":  logs,
	})
}
