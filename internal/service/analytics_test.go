package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalytics_RecordsInBackground(t *testing.T) {
	store := newCountingStore()
	a := NewAnalytics(store)

	a.TrackSearch("s1", "condo", "Vancouver, BC", 1)
	a.TrackSearch("s1", "house", "Vancouver, BC", 3)
	a.TrackView("s1", 2)
	a.Wait()

	queries := store.SearchQueries()
	require.Len(t, queries, 2)
	assert.NotEqual(t, queries[0].ID, queries[1].ID)
	for _, q := range queries {
		assert.Equal(t, "s1", q.SessionID)
		assert.False(t, q.SearchedAt.IsZero())
	}

	views := store.PropertyViews()
	require.Len(t, views, 1)
	assert.Equal(t, int64(2), views[0].PropertyID)
}

func TestAnalytics_FailuresAreSwallowed(t *testing.T) {
	store := newCountingStore()
	store.failAnalytics = true
	a := NewAnalytics(store)

	assert.NotPanics(t, func() {
		a.TrackSearch("s1", "condo", "", 0)
		a.Wait()
	})
	assert.Empty(t, store.SearchQueries())
}
