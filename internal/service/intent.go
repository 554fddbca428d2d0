package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"propertychat/internal/model"
	"propertychat/internal/observability"
	"propertychat/internal/utils"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel/attribute"
)

// intentResponseSchema describes the object the model is asked to produce. Fields are
// validated one by one so a single bad field does not discard the others.
const intentResponseSchema = `{
	"type": "object",
	"properties": {
		"response":               {"type": "string", "minLength": 1},
		"shouldSearchProperties": {"type": "boolean"},
		"searchQuery":            {"type": ["string", "null"]},
		"searchLocation":         {"type": ["string", "null"]},
		"intent": {
			"type": "string",
			"enum": ["search_properties", "location_confirmation", "general_question", "greeting"]
		}
	}
}`

var intentSchema = mustCompileSchema(intentResponseSchema)

func mustCompileSchema(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("invalid intent schema: %v", err))
	}
	return s
}

const intentSystemPrompt = `You are a helpful real estate assistant AI. Your job is to help users find properties and answer questions about real estate.

When users ask about properties, you should:
1. Determine if they want to search for properties
2. Extract location information (if not provided, assume %[1]s)
3. Extract search criteria (price range, bedrooms, features, etc.)
4. Provide helpful, conversational responses
5. Be friendly and professional

User's current location: %[1]s

Respond with JSON in this exact format:
{
  "response": "Your conversational response to the user",
  "shouldSearchProperties": true/false,
  "searchQuery": "search terms if applicable",
  "searchLocation": "location to search if applicable",
  "intent": "search_properties|location_confirmation|general_question|greeting"
}`

// IntentExtractor turns a chat message into an IntentResult. It never fails: when the model
// cannot be used, a keyword heuristic takes over.
type IntentExtractor struct {
	client          ChatCompleter
	defaultLocation string
	timeout         time.Duration
}

// NewIntentExtractor creates a new intent extractor. client may be nil.
func NewIntentExtractor(client ChatCompleter, defaultLocation string, timeout time.Duration) *IntentExtractor {
	return &IntentExtractor{
		client:          client,
		defaultLocation: defaultLocation,
		timeout:         timeout,
	}
}

// Extract interprets message. An empty locationHint falls back to the default location.
func (e *IntentExtractor) Extract(ctx context.Context, message, locationHint string) model.IntentResult {
	hint := resolveLocation(locationHint, e.defaultLocation)

	ctx, span := observability.Tracer().Start(ctx, "intent.extract")
	defer span.End()

	result, err := e.tryRemote(ctx, message, hint)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("model intent extraction failed, using keyword heuristic")
		result = heuristicIntent(message, hint)
	}

	span.SetAttributes(
		attribute.String("intent.label", result.IntentLabel),
		attribute.String("intent.source", result.Source),
		attribute.Bool("intent.should_search", result.ShouldSearch),
	)
	log.Info().
		Str("intent", result.IntentLabel).
		Str("source", result.Source).
		Bool("should_search", result.ShouldSearch).
		Msg("intent resolved")

	return result
}

// tryRemote makes exactly one model call. Any error means the heuristic should be used.
func (e *IntentExtractor) tryRemote(ctx context.Context, message, hint string) (model.IntentResult, error) {
	if e.client == nil || !e.client.IsEnabled() {
		return model.IntentResult{}, ErrClientDisabled
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.client.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: fmt.Sprintf(intentSystemPrompt, hint)},
			{Role: "user", Content: message},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return model.IntentResult{}, fmt.Errorf("chat completion: %w", err)
	}

	content, err := resp.Content()
	if err != nil {
		return model.IntentResult{}, err
	}

	return parseIntent(content, hint)
}

// parseIntent builds a fully populated IntentResult from model output. Output that holds no
// JSON object is an error; every absent or ill-typed field is defaulted on its own.
func parseIntent(content, hint string) (model.IntentResult, error) {
	raw, err := utils.ExtractJSONObject(content)
	if err != nil {
		return model.IntentResult{}, fmt.Errorf("unparseable model output: %w", err)
	}

	validation, err := intentSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return model.IntentResult{}, fmt.Errorf("validate model output: %w", err)
	}
	invalid := make(map[string]bool)
	for _, verr := range validation.Errors() {
		invalid[verr.Field()] = true
		log.Debug().Str("field", verr.Field()).Str("error", verr.Description()).Msg("model output field rejected")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return model.IntentResult{}, fmt.Errorf("decode model output: %w", err)
	}

	result := model.IntentResult{
		ReplyText:      defaultReply,
		ShouldSearch:   false,
		SearchLocation: hint,
		IntentLabel:    model.IntentGeneralQuestion,
		Source:         model.IntentSourceModel,
	}

	field := func(name string, target interface{}) bool {
		v, ok := fields[name]
		if !ok || invalid[name] {
			return false
		}
		return json.Unmarshal(v, target) == nil
	}

	var reply string
	if field("response", &reply) && strings.TrimSpace(reply) != "" {
		result.ReplyText = reply
	}

	var shouldSearch bool
	if field("shouldSearchProperties", &shouldSearch) {
		result.ShouldSearch = shouldSearch
	}

	var terms *string
	if field("searchQuery", &terms) && terms != nil {
		result.SearchTerms = strings.TrimSpace(*terms)
	}

	var location *string
	if field("searchLocation", &location) && location != nil && strings.TrimSpace(*location) != "" {
		result.SearchLocation = strings.TrimSpace(*location)
	}

	var label string
	if field("intent", &label) && model.IsKnownIntent(label) {
		result.IntentLabel = label
	}

	return result, nil
}

func resolveLocation(hint, fallback string) string {
	if h := strings.TrimSpace(hint); h != "" {
		return h
	}
	return fallback
}
