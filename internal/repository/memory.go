package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"propertychat/internal/model"

	"github.com/pgvector/pgvector-go"
)

// MemoryRepository keeps everything in process memory. It is used for local
// development and tests.
type MemoryRepository struct {
	mu sync.RWMutex

	properties map[int64]*model.Property
	messages   map[string][]model.ChatMessage
	searches   []model.SearchQuery
	views      []model.PropertyView

	nextPropertyID int64
	nextMessageID  int64
	nextViewID     int64

	now func() time.Time
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		properties:     make(map[int64]*model.Property),
		messages:       make(map[string][]model.ChatMessage),
		nextPropertyID: 1,
		nextMessageID:  1,
		nextViewID:     1,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// NewSeededMemoryRepository creates an in-memory repository holding the mock listings
func NewSeededMemoryRepository() *MemoryRepository {
	r := NewMemoryRepository()
	for _, p := range SeedProperties() {
		p := p
		_, _ = r.CreateProperty(context.Background(), &p)
	}
	return r
}

// Close is a no-op
func (r *MemoryRepository) Close() error {
	return nil
}

// GetAllProperties returns every property ordered by ID
func (r *MemoryRepository) GetAllProperties(ctx context.Context) ([]model.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(0, func(*model.Property) bool { return true }), nil
}

// GetProperty returns a property by ID or ErrNotFound
func (r *MemoryRepository) GetProperty(ctx context.Context, id int64) (*model.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.properties[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// SearchProperties performs the substring search described on PropertyStore
func (r *MemoryRepository) SearchProperties(ctx context.Context, query, location string, limit int) ([]model.Property, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	loc := strings.ToLower(Locality(location))

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(limit, func(p *model.Property) bool {
		return matchesQuery(p, term) && matchesLocation(p, loc)
	}), nil
}

// GetPropertiesByLocation returns properties whose city contains the given city
func (r *MemoryRepository) GetPropertiesByLocation(ctx context.Context, city string, limit int) ([]model.Property, error) {
	loc := strings.ToLower(Locality(city))

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(limit, func(p *model.Property) bool {
		return strings.Contains(strings.ToLower(p.City), loc)
	}), nil
}

// CreateProperty inserts or, for a known ListingID, replaces a property
func (r *MemoryRepository) CreateProperty(ctx context.Context, p *model.Property) (*model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored := *p

	if p.ListingID != nil {
		for id, existing := range r.properties {
			if existing.ListingID != nil && *existing.ListingID == *p.ListingID {
				stored.ID = id
				stored.CreatedAt = existing.CreatedAt
				stored.UpdatedAt = now
				r.properties[id] = &stored
				cp := stored
				return &cp, nil
			}
		}
	}

	stored.ID = r.nextPropertyID
	r.nextPropertyID++
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.properties[stored.ID] = &stored

	cp := stored
	return &cp, nil
}

// UpdateEmbedding sets the embedding vector of a property
func (r *MemoryRepository) UpdateEmbedding(ctx context.Context, propertyID int64, embedding []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.properties[propertyID]
	if !ok {
		return fmt.Errorf("property %d: %w", propertyID, ErrNotFound)
	}
	p.Embedding = pgvector.NewVector(embedding)
	p.UpdatedAt = r.now()
	return nil
}

// BatchUpdateEmbeddings applies each item independently
func (r *MemoryRepository) BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	success := 0
	var errs []string
	for _, item := range items {
		if err := r.UpdateEmbedding(ctx, item.PropertyID, item.Embedding); err != nil {
			errs = append(errs, err.Error())
			continue
		}
		success++
	}
	return success, errs
}

// GetChatMessages returns a copy of the session log, oldest first
func (r *MemoryRepository) GetChatMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := r.messages[sessionID]
	out := make([]model.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

// AddChatMessage appends a message to the session log
func (r *MemoryRepository) AddChatMessage(ctx context.Context, sessionID, message string, isUser bool) (*model.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := model.ChatMessage{
		ID:        r.nextMessageID,
		SessionID: sessionID,
		Message:   message,
		IsUser:    isUser,
		Timestamp: r.now(),
	}
	r.nextMessageID++
	r.messages[sessionID] = append(r.messages[sessionID], msg)

	return &msg, nil
}

// RecordSearchQuery stores a search analytics record
func (r *MemoryRepository) RecordSearchQuery(ctx context.Context, q *model.SearchQuery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.searches = append(r.searches, *q)
	return nil
}

// RecordPropertyView stores a view analytics record
func (r *MemoryRepository) RecordPropertyView(ctx context.Context, v *model.PropertyView) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *v
	stored.ID = r.nextViewID
	r.nextViewID++
	r.views = append(r.views, stored)
	return nil
}

// SearchQueries returns the recorded search analytics
func (r *MemoryRepository) SearchQueries() []model.SearchQuery {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.SearchQuery, len(r.searches))
	copy(out, r.searches)
	return out
}

// PropertyViews returns the recorded view analytics
func (r *MemoryRepository) PropertyViews() []model.PropertyView {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.PropertyView, len(r.views))
	copy(out, r.views)
	return out
}

// filter must be called with the lock held
func (r *MemoryRepository) filter(limit int, keep func(*model.Property) bool) []model.Property {
	ids := make([]int64, 0, len(r.properties))
	for id := range r.properties {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []model.Property{}
	for _, id := range ids {
		p := r.properties[id]
		if !keep(p) {
			continue
		}
		out = append(out, *p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func matchesQuery(p *model.Property, term string) bool {
	if term == "" {
		return true
	}
	fields := []string{p.Description, p.Neighborhood, p.Address, p.PropertyType, p.Status}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	for _, f := range p.Features {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func matchesLocation(p *model.Property, loc string) bool {
	if loc == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.City), loc) ||
		strings.Contains(strings.ToLower(p.Neighborhood), loc)
}
