package models

import "time"

// ChatRequest is a single user message to the dashboard assistant.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is the assistant's response. OpenPanel, when set, instructs the
// UI to open a dashboard panel ("portfolio", "journal", "alerts", "market").
type ChatReply struct {
	Message   string    `json:"message"`
	OpenPanel string    `json:"open_panel,omitempty"`
	Tool      string    `json:"tool,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
