package handlers

import (
	"net/http"
	"strconv"

	"optiwatt/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Param        type    query     string  false  "Notification type"  Enums(info,warning,success)
// @Param        unread  query     bool    false  "Only unread"
// @Success      200     {object}  map[string]interface{}  "count, unread, notifications"
// @Failure      400     {object}  map[string]string
// @Router       /api/v1/notifications [get]
// @Security     BearerAuth
func (h *Handler) listNotifications(c *gin.Context) {
	f := service.NotificationFilter{Type: c.Query("type")}
	if s := c.Query("unread"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'unread'; use true or false"})
			return
		}
		f.UnreadOnly = v
	}

	items, err := h.services.Notifications.List(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":         len(items),
		"unread":        h.services.Notifications.UnreadCount(),
		"notifications": items,
	})
}

// @Summary      Mark notification as read
// @Tags         notifications
// @Param        id   path  string  true  "Notification id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/notifications/{id}/read [post]
// @Security     BearerAuth
func (h *Handler) markNotificationRead(c *gin.Context) {
	if !h.services.Notifications.MarkRead(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Mark all notifications as read
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/v1/notifications/read-all [post]
// @Security     BearerAuth
func (h *Handler) markAllNotificationsRead(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"updated": h.services.Notifications.MarkAllRead()})
}

// @Summary      Clear notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/v1/notifications [delete]
// @Security     BearerAuth
func (h *Handler) clearNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"removed": h.services.Notifications.Clear()})
}
