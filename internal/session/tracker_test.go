package session

import (
	"context"
	"testing"
	"time"

	"propertychat/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)

	created := merge(nil, model.Session{SessionID: "s", UserLocation: "Vancouver, BC", UserAgent: "curl"}, t0)
	assert.Equal(t, t0, created.CreatedAt)
	assert.Equal(t, t0, created.LastActivity)

	updated := merge(&created, model.Session{SessionID: "s", IPAddress: "10.0.0.1"}, t1)
	assert.Equal(t, t0, updated.CreatedAt)
	assert.Equal(t, t1, updated.LastActivity)
	assert.Equal(t, "Vancouver, BC", updated.UserLocation, "empty update fields keep stored values")
	assert.Equal(t, "curl", updated.UserAgent)
	assert.Equal(t, "10.0.0.1", updated.IPAddress)
}

func TestMemoryTracker(t *testing.T) {
	ctx := context.Background()
	tracker := NewMemoryTracker(time.Hour)

	clock := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return clock }

	_, err := tracker.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := tracker.Touch(ctx, model.Session{SessionID: "s1", UserLocation: "Burnaby, BC"})
	require.NoError(t, err)
	assert.Equal(t, clock, first.CreatedAt)

	clock = clock.Add(5 * time.Minute)
	second, err := tracker.Touch(ctx, model.Session{SessionID: "s1", UserLocation: "Vancouver, BC"})
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, clock, second.LastActivity)

	got, err := tracker.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Vancouver, BC", got.UserLocation)
}

func TestMemoryTracker_Expires(t *testing.T) {
	ctx := context.Background()
	tracker := NewMemoryTracker(20 * time.Millisecond)

	_, err := tracker.Touch(ctx, model.Session{SessionID: "s"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := tracker.Get(ctx, "s")
		return err == ErrNotFound
	}, time.Second, 10*time.Millisecond)
}
