package models

import "time"

const (
	ReportAI     = "ai"
	ReportExpert = "expert"
)

// Report is the latest generated performance report.
type Report struct {
	Kind        string    `json:"kind"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Delivery channels.
const (
	ChannelEmail = "email"
	ChannelPDF   = "pdf"
)

// Delivery is the outcome of sending or exporting a report.
type Delivery struct {
	Channel  string `json:"channel"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"` // download URL when exported
}
