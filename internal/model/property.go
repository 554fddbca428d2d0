package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Property represents a property listing
type Property struct {
	ID           int64           `json:"id" db:"id"`
	ListingID    *string         `json:"listingId,omitempty" db:"listing_id"`
	Address      string          `json:"address" db:"address" validate:"required"`
	City         string          `json:"city" db:"city" validate:"required"`
	Province     string          `json:"province" db:"province"`
	PostalCode   string          `json:"postalCode" db:"postal_code"`
	Price        int64           `json:"price" db:"price" validate:"gte=0"`
	Bedrooms     int             `json:"bedrooms" db:"bedrooms" validate:"gte=0,lte=50"`
	Bathrooms    float64         `json:"bathrooms" db:"bathrooms" validate:"gte=0,lte=50"`
	SquareFeet   int             `json:"squareFeet" db:"square_feet" validate:"gte=0"`
	Neighborhood string          `json:"neighborhood" db:"neighborhood"`
	Description  string          `json:"description" db:"description"`
	Features     JSONArray       `json:"features" db:"features"`
	Images       JSONArray       `json:"images" db:"images"`
	Latitude     float64         `json:"latitude" db:"latitude" validate:"gte=-90,lte=90"`
	Longitude    float64         `json:"longitude" db:"longitude" validate:"gte=-180,lte=180"`
	Rating       float64         `json:"rating" db:"rating" validate:"gte=0,lte=5"`
	DaysOnMarket int             `json:"daysOnMarket" db:"days_on_market" validate:"gte=0"`
	Status       string          `json:"status" db:"status"` // "new", "active", "price_drop", "open_house", ...
	YearBuilt    *int            `json:"yearBuilt,omitempty" db:"year_built"`
	PropertyType string          `json:"propertyType" db:"property_type"` // "house", "condo", "townhouse"
	Embedding    pgvector.Vector `json:"-" db:"embedding"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// EmbeddingText is the text used to embed a listing
func (p *Property) EmbeddingText() string {
	return fmt.Sprintf("%s %s in %s, %s. %s", p.PropertyType, p.Address, p.Neighborhood, p.City, p.Description)
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = JSONArray{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("unsupported type for JSONArray: %T", value)
	}
}

// MarshalJSON keeps nil arrays as [] on the wire
func (j JSONArray) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(j))
}

// EmbeddingBatchRequest represents a batch embedding update request
type EmbeddingBatchRequest struct {
	Embeddings []EmbeddingItem `json:"embeddings" binding:"required"`
}

// EmbeddingItem represents a single embedding for a property
type EmbeddingItem struct {
	PropertyID int64     `json:"propertyId" binding:"required"`
	Embedding  []float32 `json:"embedding" binding:"required"`
}

// EmbeddingBatchResponse represents the response for batch embedding update
type EmbeddingBatchResponse struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
