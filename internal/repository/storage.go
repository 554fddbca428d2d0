package repository

import (
	"context"
	"errors"
	"strings"

	"propertychat/internal/model"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// PropertyStore is the read/write contract for property listings
type PropertyStore interface {
	GetAllProperties(ctx context.Context) ([]model.Property, error)
	GetProperty(ctx context.Context, id int64) (*model.Property, error)
	// SearchProperties matches query as a case-insensitive substring of the description,
	// features, neighborhood, address, property type or status. A non-empty location must
	// additionally match the city or the neighborhood.
	SearchProperties(ctx context.Context, query, location string, limit int) ([]model.Property, error)
	GetPropertiesByLocation(ctx context.Context, city string, limit int) ([]model.Property, error)
	// CreateProperty inserts a listing. Records carrying a ListingID already present are
	// updated in place.
	CreateProperty(ctx context.Context, p *model.Property) (*model.Property, error)
	UpdateEmbedding(ctx context.Context, propertyID int64, embedding []float32) error
	// BatchUpdateEmbeddings returns the number of updated properties and one message per failed item
	BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string)
}

// ChatStore is the append-only conversation log. Implementations must be safe for
// concurrent appends to the same session.
type ChatStore interface {
	// GetChatMessages returns a session's messages oldest first
	GetChatMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	// AddChatMessage persists a message and assigns its ID and timestamp
	AddChatMessage(ctx context.Context, sessionID, message string, isUser bool) (*model.ChatMessage, error)
}

// AnalyticsStore records search and view events
type AnalyticsStore interface {
	RecordSearchQuery(ctx context.Context, q *model.SearchQuery) error
	RecordPropertyView(ctx context.Context, v *model.PropertyView) error
}

// Storage groups every contract the application consumes
type Storage interface {
	PropertyStore
	ChatStore
	AnalyticsStore
	Close() error
}

// Locality returns the part of a location before the first comma, so that
// "Vancouver, BC" matches a listing whose city is "Vancouver".
func Locality(location string) string {
	if i := strings.Index(location, ","); i >= 0 {
		location = location[:i]
	}
	return strings.TrimSpace(location)
}
