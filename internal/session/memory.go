package session

import (
	"context"
	"sync"
	"time"

	"propertychat/internal/model"

	"github.com/patrickmn/go-cache"
)

// MemoryTracker keeps sessions in an in-process expiring cache
type MemoryTracker struct {
	mu    sync.Mutex
	cache *cache.Cache
	now   func() time.Time
}

// NewMemoryTracker creates a tracker whose entries expire after ttl of inactivity
func NewMemoryTracker(ttl time.Duration) *MemoryTracker {
	return &MemoryTracker{
		cache: cache.New(ttl, 10*time.Minute),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Touch creates or refreshes a session
func (t *MemoryTracker) Touch(ctx context.Context, s model.Session) (*model.Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var existing *model.Session
	if x, found := t.cache.Get(s.SessionID); found {
		existing = x.(*model.Session)
	}

	merged := merge(existing, s, t.now())
	t.cache.Set(s.SessionID, &merged, cache.DefaultExpiration)

	out := merged
	return &out, nil
}

// Get returns a copy of the stored session
func (t *MemoryTracker) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	x, found := t.cache.Get(sessionID)
	if !found {
		return nil, ErrNotFound
	}
	out := *x.(*model.Session)
	return &out, nil
}
