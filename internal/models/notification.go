package models

type Notification struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Message string `json:"message" yaml:"message"`
	Time    string `json:"time" yaml:"time"` // relative, e.g. "2 hours ago"
	Type    string `json:"type" yaml:"type"` // info | warning | success
	Read    bool   `json:"read" yaml:"read"`
}
