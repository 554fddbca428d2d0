package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"propertychat/internal/model"
	"propertychat/internal/repository"
)

// PropertyService handles the direct property endpoints
type PropertyService struct {
	repo         repository.PropertyStore
	analytics    *Analytics
	embedder     Embedder
	defaultLimit int
	maxLimit     int
}

// NewPropertyService creates a new property service. analytics and embedder may be nil.
func NewPropertyService(
	repo repository.PropertyStore,
	analytics *Analytics,
	embedder Embedder,
	defaultLimit, maxLimit int,
) *PropertyService {
	return &PropertyService{
		repo:         repo,
		analytics:    analytics,
		embedder:     embedder,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// ClampLimit applies the default page size to non-positive values and caps the rest
func (s *PropertyService) ClampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

// List returns every property
func (s *PropertyService) List(ctx context.Context) ([]model.Property, error) {
	properties, err := s.repo.GetAllProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list properties: %v", ErrStorage, err)
	}
	return properties, nil
}

// Get returns one property and records the view
func (s *PropertyService) Get(ctx context.Context, id int64, sessionID string) (*model.Property, error) {
	p, err := s.repo.GetProperty(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: property %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get property: %v", ErrStorage, err)
	}

	if s.analytics != nil {
		s.analytics.TrackView(sessionID, id)
	}
	return p, nil
}

// Search runs a free-text search, optionally restricted to a location
func (s *PropertyService) Search(ctx context.Context, query, location string, limit int) ([]model.Property, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}

	properties, err := s.repo.SearchProperties(ctx, query, location, s.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%w: search properties: %v", ErrStorage, err)
	}
	return properties, nil
}

// ByLocation lists properties in a city
func (s *PropertyService) ByLocation(ctx context.Context, city string, limit int) ([]model.Property, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", ErrValidation)
	}

	properties, err := s.repo.GetPropertiesByLocation(ctx, city, s.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%w: list properties by location: %v", ErrStorage, err)
	}
	return properties, nil
}

// UpdateEmbeddings stores precomputed embeddings
func (s *PropertyService) UpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	return s.repo.BatchUpdateEmbeddings(ctx, items)
}

// EmbedProperties computes and stores embeddings for the given properties
func (s *PropertyService) EmbedProperties(ctx context.Context, properties []model.Property) (int, []string) {
	if len(properties) == 0 {
		return 0, nil
	}
	if s.embedder == nil || !s.embedder.IsEnabled() {
		return 0, []string{ErrClientDisabled.Error()}
	}

	texts := make([]string, len(properties))
	for i := range properties {
		texts[i] = properties[i].EmbeddingText()
	}

	vectors, err := s.embedder.CreateEmbeddings(ctx, texts)
	if err != nil {
		return 0, []string{err.Error()}
	}

	items := make([]model.EmbeddingItem, len(properties))
	for i := range properties {
		items[i] = model.EmbeddingItem{PropertyID: properties[i].ID, Embedding: vectors[i]}
	}
	return s.repo.BatchUpdateEmbeddings(ctx, items)
}
