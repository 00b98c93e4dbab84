package interpreter

import (
	"errors"
	"strings"

	"econsent-backend/internal/models"
)

// ErrEmptyMessage is returned before classification when the message is empty
// or all whitespace. Handlers map it to a 400.
var ErrEmptyMessage = errors.New("message is required")

// Intent is the classified purpose of a chat message.
type Intent int

const (
	IntentGeneralQA Intent = iota
	IntentFormFill
	IntentFieldExplain
	IntentContentExplain
)

func (i Intent) String() string {
	switch i {
	case IntentFormFill:
		return "form_fill"
	case IntentFieldExplain:
		return "field_explain"
	case IntentContentExplain:
		return "content_explain"
	default:
		return "general_qa"
	}
}

// Fill-intent keywords. "as " keeps its trailing space so that "ask" or
// "aspirin" do not read as fill commands.
var fillKeywords = []string{"fill", "enter", "set", "as ", "put", "update"}

var explainKeywords = []string{
	"explain", "summary", "summarize", "about", "details",
	"what is", "information", "tell me about",
}

// Classify decides which handling path applies to a message. First match
// wins: an actionable instruction like "set email to x@y.com" must not be
// read as a question, and a match on a specific form field must beat the
// generic page-content explanation.
func Classify(req models.ChatRequest) (Intent, *models.FieldMeta) {
	if req.Context == models.ContextForm && isFillQuery(req.Message) {
		return IntentFormFill, nil
	}
	return classifyExplain(req)
}

// classifyExplain is Classify with the form-fill branch skipped. The engine
// re-enters here when a fill-flavored message yields an empty patch.
func classifyExplain(req models.ChatRequest) (Intent, *models.FieldMeta) {
	explain := isExplainQuery(req.Message)

	if req.Context == models.ContextForm && len(req.Fields) > 0 && explain {
		if field := matchField(req.Message, req.Fields); field != nil {
			return IntentFieldExplain, field
		}
	}

	if explain && req.InfoText != "" {
		return IntentContentExplain, nil
	}

	return IntentGeneralQA, nil
}

func isFillQuery(message string) bool {
	return containsAny(strings.ToLower(message), fillKeywords)
}

func isExplainQuery(message string) bool {
	return containsAny(strings.ToLower(message), explainKeywords)
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// matchField finds the first field whose key, or any whitespace-split token
// of its label, appears in the message.
func matchField(message string, fields []models.FieldMeta) *models.FieldMeta {
	lower := strings.ToLower(message)
	for i := range fields {
		names := []string{strings.ToLower(fields[i].Key)}
		if fields[i].Label != "" {
			names = append(names, strings.Fields(strings.ToLower(fields[i].Label))...)
		}
		for _, name := range names {
			if name != "" && strings.Contains(lower, name) {
				return &fields[i]
			}
		}
	}
	return nil
}
