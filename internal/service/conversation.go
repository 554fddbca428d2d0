package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"propertychat/internal/model"
	"propertychat/internal/observability"
	"propertychat/internal/repository"
	"propertychat/internal/session"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// IntentResolver interprets a chat message
type IntentResolver interface {
	Extract(ctx context.Context, message, locationHint string) model.IntentResult
}

// ChatInput is one incoming chat message with its request metadata
type ChatInput struct {
	SessionID    string
	Message      string
	UserLocation string
	IPAddress    string
	UserAgent    string
}

// ChatService runs the conversation pipeline: persist the user turn, resolve the intent,
// persist the reply, search, respond.
type ChatService struct {
	store      repository.ChatStore
	intents    IntentResolver
	dispatcher *SearchDispatcher
	sessions   session.Tracker
}

// NewChatService creates a new chat service. sessions may be nil.
func NewChatService(store repository.ChatStore, intents IntentResolver, dispatcher *SearchDispatcher, sessions session.Tracker) *ChatService {
	return &ChatService{
		store:      store,
		intents:    intents,
		dispatcher: dispatcher,
		sessions:   sessions,
	}
}

// ProcessMessage handles one chat message. Identical messages are not deduplicated.
func (s *ChatService) ProcessMessage(ctx context.Context, in ChatInput) (*model.ChatResponse, error) {
	if strings.TrimSpace(in.SessionID) == "" {
		return nil, fmt.Errorf("%w: sessionId is required", ErrValidation)
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}

	ctx, span := observability.Tracer().Start(ctx, "chat.process_message")
	defer span.End()
	span.SetAttributes(attribute.String("chat.session_id", in.SessionID))
	logger := observability.LoggerFromContext(ctx)

	s.touchSession(ctx, in)

	if _, err := s.store.AddChatMessage(ctx, in.SessionID, in.Message, true); err != nil {
		span.SetStatus(codes.Error, "persist user turn")
		return nil, fmt.Errorf("%w: persist user message: %v", ErrStorage, err)
	}

	intent := s.intents.Extract(ctx, in.Message, in.UserLocation)

	reply, err := s.store.AddChatMessage(ctx, in.SessionID, intent.ReplyText, false)
	if err != nil {
		span.SetStatus(codes.Error, "persist assistant turn")
		return nil, fmt.Errorf("%w: persist assistant message: %v", ErrStorage, err)
	}

	properties := []model.Property{}
	if intent.ShouldSearch {
		properties = s.dispatcher.Dispatch(ctx, intent, in.UserLocation, in.SessionID, in.Message)
	}

	logger.Info().
		Str("session_id", in.SessionID).
		Str("intent", intent.IntentLabel).
		Bool("search_performed", intent.ShouldSearch).
		Int("results", len(properties)).
		Msg("chat message processed")

	return &model.ChatResponse{
		Message:         reply,
		Properties:      properties,
		SearchPerformed: intent.ShouldSearch,
	}, nil
}

// History returns a session's turns, oldest first
func (s *ChatService) History(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	messages, err := s.store.GetChatMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: load chat history: %v", ErrStorage, err)
	}
	return messages, nil
}

// Session returns the tracked session
func (s *ChatService) Session(ctx context.Context, sessionID string) (*model.Session, error) {
	if s.sessions == nil {
		return nil, ErrNotFound
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

// touchSession is best effort
func (s *ChatService) touchSession(ctx context.Context, in ChatInput) {
	if s.sessions == nil {
		return
	}
	_, err := s.sessions.Touch(ctx, model.Session{
		SessionID:        in.SessionID,
		UserLocation:     in.UserLocation,
		DetectedLocation: in.UserLocation,
		IPAddress:        in.IPAddress,
		UserAgent:        in.UserAgent,
	})
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("session_id", in.SessionID).Msg("failed to update session")
	}
}
