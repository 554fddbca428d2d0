package model

import "time"

// ChatMessage is one turn of a conversation, either from the user or the assistant
type ChatMessage struct {
	ID        int64     `json:"id" db:"id"`
	SessionID string    `json:"sessionId" db:"session_id"`
	Message   string    `json:"message" db:"message"`
	IsUser    bool      `json:"isUser" db:"is_user"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message      string `json:"message" binding:"required"`
	SessionID    string `json:"sessionId" binding:"required"`
	UserLocation string `json:"userLocation,omitempty"`
}

// ChatResponse is returned for every processed chat message
type ChatResponse struct {
	Message         *ChatMessage `json:"message"`
	Properties      []Property   `json:"properties"`
	SearchPerformed bool         `json:"searchPerformed"`
}
