package model

import "time"

// SearchQuery is an analytics record of one executed property search
type SearchQuery struct {
	ID           string    `json:"id" db:"id"`
	SessionID    string    `json:"sessionId" db:"session_id"`
	Query        string    `json:"query" db:"query"`
	Location     string    `json:"location" db:"location"`
	ResultsCount int       `json:"resultsCount" db:"results_count"`
	SearchedAt   time.Time `json:"searchedAt" db:"searched_at"`
}

// PropertyView is an analytics record of a property detail view
type PropertyView struct {
	ID         int64     `json:"id" db:"id"`
	PropertyID int64     `json:"propertyId" db:"property_id"`
	SessionID  string    `json:"sessionId" db:"session_id"`
	ViewedAt   time.Time `json:"viewedAt" db:"viewed_at"`
}

// Session tracks the last known context of a chat session
type Session struct {
	SessionID        string    `json:"sessionId"`
	UserLocation     string    `json:"userLocation,omitempty"`
	DetectedLocation string    `json:"detectedLocation,omitempty"`
	IPAddress        string    `json:"ipAddress,omitempty"`
	UserAgent        string    `json:"userAgent,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	LastActivity     time.Time `json:"lastActivity"`
}
