package service

import (
	"context"
	"time"

	"propertychat/internal/model"
	"propertychat/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

const analyticsTimeout = 5 * time.Second

// Analytics records search and view events in the background. Failures are logged and
// never reach the caller.
type Analytics struct {
	store repository.AnalyticsStore
	wg    conc.WaitGroup
	now   func() time.Time
}

// NewAnalytics creates a new analytics recorder
func NewAnalytics(store repository.AnalyticsStore) *Analytics {
	return &Analytics{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// TrackSearch records an executed search
func (a *Analytics) TrackSearch(sessionID, query, location string, resultsCount int) {
	record := &model.SearchQuery{
		ID:           uuid.NewString(),
		SessionID:    sessionID,
		Query:        query,
		Location:     location,
		ResultsCount: resultsCount,
		SearchedAt:   a.now(),
	}

	a.wg.Go(func() {
		// the request context may already be cancelled
		ctx, cancel := context.WithTimeout(context.Background(), analyticsTimeout)
		defer cancel()

		if err := a.store.RecordSearchQuery(ctx, record); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to record search query")
		}
	})
}

// TrackView records a property detail view
func (a *Analytics) TrackView(sessionID string, propertyID int64) {
	record := &model.PropertyView{
		PropertyID: propertyID,
		SessionID:  sessionID,
		ViewedAt:   a.now(),
	}

	a.wg.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), analyticsTimeout)
		defer cancel()

		if err := a.store.RecordPropertyView(ctx, record); err != nil {
			log.Warn().Err(err).Int64("property_id", propertyID).Msg("failed to record property view")
		}
	})
}

// Wait blocks until every pending record has been written or has failed
func (a *Analytics) Wait() {
	a.wg.Wait()
}
