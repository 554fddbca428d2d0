package model

// Intent labels returned by the model. Anything else is treated as IntentGeneralQuestion.
const (
	IntentSearchProperties     = "search_properties"
	IntentLocationConfirmation = "location_confirmation"
	IntentGeneralQuestion      = "general_question"
	IntentGreeting             = "greeting"
)

// Intent sources
const (
	IntentSourceModel    = "model"
	IntentSourceFallback = "fallback"
)

// IntentResult is the interpretation of one chat message. Every field is always set;
// SearchTerms is empty when the message carries no free-text criteria.
type IntentResult struct {
	ReplyText      string `json:"replyText"`
	ShouldSearch   bool   `json:"shouldSearch"`
	SearchTerms    string `json:"searchTerms,omitempty"`
	SearchLocation string `json:"searchLocation"`
	IntentLabel    string `json:"intentLabel"`
	Source         string `json:"source"`
}

// IsKnownIntent reports whether label belongs to the closed set of intent labels
func IsKnownIntent(label string) bool {
	switch label {
	case IntentSearchProperties, IntentLocationConfirmation, IntentGeneralQuestion, IntentGreeting:
		return true
	}
	return false
}
