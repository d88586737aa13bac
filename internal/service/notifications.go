package service

import (
	"errors"
	"strings"
	"sync"

	"optiwatt/internal/models"
)

const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationSuccess = "success"
)

var errUnknownNotificationType = errors.New("unknown notification type: want info, warning or success")

// NotificationCenter keeps the in-memory notification list.
type NotificationCenter struct {
	mu    sync.RWMutex
	items []models.Notification
}

func NewNotificationCenter(seed []models.Notification) *NotificationCenter {
	items := make([]models.Notification, len(seed))
	copy(items, seed)
	return &NotificationCenter{items: items}
}

// normalizeNotificationType trims spaces and lowercases the type filter.
func normalizeNotificationType(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", NotificationInfo, NotificationWarning, NotificationSuccess:
		return s, nil
	default:
		return "", errUnknownNotificationType
	}
}

func (n *NotificationCenter) List(f NotificationFilter) ([]models.Notification, error) {
	typ, err := normalizeNotificationType(f.Type)
	if err != nil {
		return nil, err
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]models.Notification, 0, len(n.items))
	for _, it := range n.items {
		if typ != "" && it.Type != typ {
			continue
		}
		if f.UnreadOnly && it.Read {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (n *NotificationCenter) UnreadCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	c := 0
	for _, it := range n.items {
		if !it.Read {
			c++
		}
	}
	return c
}

func (n *NotificationCenter) MarkRead(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := range n.items {
		if n.items[i].ID == id {
			n.items[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllRead returns how many notifications changed state.
func (n *NotificationCenter) MarkAllRead() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	c := 0
	for i := range n.items {
		if !n.items[i].Read {
			n.items[i].Read = true
			c++
		}
	}
	return c
}

// Clear drops every notification and returns how many were removed.
func (n *NotificationCenter) Clear() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	c := len(n.items)
	n.items = []models.Notification{}
	return c
}
