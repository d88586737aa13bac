package service

// NotificationFilter narrows the notification list.
type NotificationFilter struct {
	Type       string // "", "info", "warning", "success"
	UnreadOnly bool
}

// LoginParams carries the mock sign-in form. Nothing is validated against a store.
type LoginParams struct {
	Name  string
	Email string
}
