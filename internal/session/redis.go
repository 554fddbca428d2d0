package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"propertychat/internal/model"

	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// RedisTracker stores sessions as JSON documents with a sliding TTL
type RedisTracker struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

// NewRedisTracker creates a tracker on top of an existing client
func NewRedisTracker(rdb *redis.Client, ttl time.Duration) *RedisTracker {
	return &RedisTracker{
		rdb: rdb,
		ttl: ttl,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

// Touch creates or refreshes a session. Concurrent touches of the same session are
// last-writer-wins.
func (t *RedisTracker) Touch(ctx context.Context, s model.Session) (*model.Session, error) {
	existing, err := t.Get(ctx, s.SessionID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	merged := merge(existing, s, t.now())
	data, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := t.rdb.Set(ctx, sessionPrefix+s.SessionID, data, t.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return &merged, nil
}

// Get loads a session
func (t *RedisTracker) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	data, err := t.rdb.Get(ctx, sessionPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}
