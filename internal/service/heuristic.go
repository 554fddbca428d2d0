package service

import (
	"strings"

	"propertychat/internal/model"
)

const (
	defaultReply           = "I'm here to help you find properties. What are you looking for?"
	heuristicSearchReply   = "I'd be happy to help you find properties! Let me search for available listings in your area."
	heuristicNoSearchReply = "I'm here to help you with your real estate needs. How can I assist you today?"
)

// propertyKeywords mark a message as a property search when the model is unavailable
var propertyKeywords = []string{"house", "property", "home", "condo", "apartment"}

// heuristicIntent classifies a message by keyword. The whole message becomes the search terms.
func heuristicIntent(message, locationHint string) model.IntentResult {
	lower := strings.ToLower(message)

	for _, kw := range propertyKeywords {
		if strings.Contains(lower, kw) {
			return model.IntentResult{
				ReplyText:      heuristicSearchReply,
				ShouldSearch:   true,
				SearchTerms:    message,
				SearchLocation: locationHint,
				IntentLabel:    model.IntentSearchProperties,
				Source:         model.IntentSourceFallback,
			}
		}
	}

	return model.IntentResult{
		ReplyText:      heuristicNoSearchReply,
		ShouldSearch:   false,
		SearchLocation: locationHint,
		IntentLabel:    model.IntentGeneralQuestion,
		Source:         model.IntentSourceFallback,
	}
}
