package service

import (
	"context"
	"errors"
	"sync"

	"propertychat/internal/model"
	"propertychat/internal/repository"
)

var errBoom = errors.New("boom")

// fakeCompleter returns a canned completion and counts calls
type fakeCompleter struct {
	mu       sync.Mutex
	content  string
	err      error
	disabled bool
	block    bool // wait for the context to end
	calls    int
	requests []ChatCompletionRequest
}

func (f *fakeCompleter) IsEnabled() bool { return !f.disabled }

func (f *fakeCompleter) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	f.mu.Lock()
	f.calls++
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}

	return &ChatCompletionResponse{
		Choices: []ChatChoice{{Message: ChatMessage{Role: "assistant", Content: f.content}}},
	}, nil
}

func (f *fakeCompleter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// countingStore wraps the in-memory repository and counts search calls. Failures can be
// switched on per operation.
type countingStore struct {
	*repository.MemoryRepository

	mu               sync.Mutex
	searchCalls      int
	locationCalls    int
	lastQuery        string
	lastLocation     string
	failSearch       bool
	failAddMessage   bool
	failAssistantMsg bool
	failAnalytics    bool
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryRepository: repository.NewSeededMemoryRepository()}
}

func (s *countingStore) SearchProperties(ctx context.Context, query, location string, limit int) ([]model.Property, error) {
	s.mu.Lock()
	s.searchCalls++
	s.lastQuery, s.lastLocation = query, location
	fail := s.failSearch
	s.mu.Unlock()

	if fail {
		return nil, errBoom
	}
	return s.MemoryRepository.SearchProperties(ctx, query, location, limit)
}

func (s *countingStore) GetPropertiesByLocation(ctx context.Context, city string, limit int) ([]model.Property, error) {
	s.mu.Lock()
	s.locationCalls++
	s.lastLocation = city
	fail := s.failSearch
	s.mu.Unlock()

	if fail {
		return nil, errBoom
	}
	return s.MemoryRepository.GetPropertiesByLocation(ctx, city, limit)
}

func (s *countingStore) AddChatMessage(ctx context.Context, sessionID, message string, isUser bool) (*model.ChatMessage, error) {
	if s.failAddMessage || (s.failAssistantMsg && !isUser) {
		return nil, errBoom
	}
	return s.MemoryRepository.AddChatMessage(ctx, sessionID, message, isUser)
}

func (s *countingStore) RecordSearchQuery(ctx context.Context, q *model.SearchQuery) error {
	if s.failAnalytics {
		return errBoom
	}
	return s.MemoryRepository.RecordSearchQuery(ctx, q)
}

func (s *countingStore) searchCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchCalls + s.locationCalls
}

// recordingTracker collects TrackSearch calls synchronously
type recordingTracker struct {
	mu     sync.Mutex
	events []model.SearchQuery
}

func (r *recordingTracker) TrackSearch(sessionID, query, location string, resultsCount int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, model.SearchQuery{SessionID: sessionID, Query: query, Location: location, ResultsCount: resultsCount})
}
