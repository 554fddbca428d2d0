package service

import (
	"context"

	"propertychat/internal/model"
	"propertychat/internal/observability"
	"propertychat/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// SearchTracker receives one event per executed search
type SearchTracker interface {
	TrackSearch(sessionID, query, location string, resultsCount int)
}

// SearchDispatcher turns a resolved intent into a storage query
type SearchDispatcher struct {
	store           repository.PropertyStore
	tracker         SearchTracker
	defaultLocation string
	limit           int
}

// NewSearchDispatcher creates a new dispatcher. tracker may be nil.
func NewSearchDispatcher(store repository.PropertyStore, tracker SearchTracker, defaultLocation string, limit int) *SearchDispatcher {
	return &SearchDispatcher{
		store:           store,
		tracker:         tracker,
		defaultLocation: defaultLocation,
		limit:           limit,
	}
}

// Dispatch runs the search an intent asks for. It never fails: storage errors are logged
// and yield an empty list. message is the raw user text, recorded when only a location is
// searched.
func (d *SearchDispatcher) Dispatch(ctx context.Context, intent model.IntentResult, locationHint, sessionID, message string) []model.Property {
	if !intent.ShouldSearch {
		return []model.Property{}
	}

	ctx, span := observability.Tracer().Start(ctx, "search.dispatch")
	defer span.End()
	logger := observability.LoggerFromContext(ctx)

	hint := resolveLocation(locationHint, d.defaultLocation)

	var (
		properties []model.Property
		err        error
		query      string
		location   string
		path       string
	)

	switch {
	case intent.SearchTerms != "":
		path = "terms"
		query = intent.SearchTerms
		location = intent.SearchLocation
		if location == "" {
			location = hint
		}
		properties, err = d.store.SearchProperties(ctx, query, location, d.limit)
	case intent.SearchLocation != "":
		path = "location"
		query = message
		location = intent.SearchLocation
		properties, err = d.store.GetPropertiesByLocation(ctx, location, d.limit)
	default:
		return []model.Property{}
	}

	if err != nil {
		logger.Error().Err(err).Str("path", path).Str("query", query).Msg("property search failed")
		properties = []model.Property{}
	}
	if properties == nil {
		properties = []model.Property{}
	}

	span.SetAttributes(
		attribute.String("search.path", path),
		attribute.Int("search.results", len(properties)),
	)
	logger.Info().
		Str("path", path).
		Str("query", query).
		Str("location", location).
		Int("results", len(properties)).
		Msg("property search executed")

	if d.tracker != nil {
		d.tracker.TrackSearch(sessionID, query, location, len(properties))
	}

	return properties
}
