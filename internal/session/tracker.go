// Package session keeps track of chat sessions: where the user is, which client they use
// and when they were last active.
package session

import (
	"context"
	"errors"
	"time"

	"propertychat/internal/model"
)

// ErrNotFound is returned by Get for unknown or expired sessions
var ErrNotFound = errors.New("session not found")

// Tracker stores sessions for a limited time
type Tracker interface {
	// Touch creates the session or refreshes its last activity. Empty fields of s do not
	// overwrite stored values.
	Touch(ctx context.Context, s model.Session) (*model.Session, error)
	Get(ctx context.Context, sessionID string) (*model.Session, error)
}

// merge applies an update on top of the stored session
func merge(existing *model.Session, update model.Session, now time.Time) model.Session {
	if existing == nil {
		update.CreatedAt = now
		update.LastActivity = now
		return update
	}

	merged := *existing
	if update.UserLocation != "" {
		merged.UserLocation = update.UserLocation
	}
	if update.DetectedLocation != "" {
		merged.DetectedLocation = update.DetectedLocation
	}
	if update.IPAddress != "" {
		merged.IPAddress = update.IPAddress
	}
	if update.UserAgent != "" {
		merged.UserAgent = update.UserAgent
	}
	merged.LastActivity = now
	return merged
}
