package interpreter

import (
	"testing"

	"econsent-backend/internal/models"
)

var testFields = []models.FieldMeta{
	{Key: "email", Label: "Email Address", Help: "We use this to contact you about the trial."},
	{Key: "dateOfBirth", Label: "Date of Birth"},
	{Key: "hospital", Label: "Hospital Location"},
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		req      models.ChatRequest
		expected Intent
	}{
		{
			"fill command in form context",
			models.ChatRequest{Message: "set email to alice@example.com", Context: models.ContextForm},
			IntentFormFill,
		},
		{
			"fill beats explain when both keywords present",
			models.ChatRequest{Message: "set my email and explain the hospital field", Context: models.ContextForm, Fields: testFields},
			IntentFormFill,
		},
		{
			"fill keyword outside form context is not a fill",
			models.ChatRequest{Message: "please update me on the trial"},
			IntentGeneralQA,
		},
		{
			"field explanation by key",
			models.ChatRequest{Message: "explain the email field", Context: models.ContextForm, Fields: testFields},
			IntentFieldExplain,
		},
		{
			"field explanation by label token",
			models.ChatRequest{Message: "tell me about the birth question", Context: models.ContextForm, Fields: testFields},
			IntentFieldExplain,
		},
		{
			"field match beats generic content explanation",
			models.ChatRequest{Message: "explain the hospital choice", Context: models.ContextForm, Fields: testFields, InfoText: "Page content."},
			IntentFieldExplain,
		},
		{
			"explain without field match falls to content",
			models.ChatRequest{Message: "explain the risks", Context: models.ContextForm, Fields: testFields, InfoText: "Risks include..."},
			IntentContentExplain,
		},
		{
			"explain without fields uses content",
			models.ChatRequest{Message: "what is this study about", Context: models.ContextTrial, InfoText: "The NeuroSAFE PROOF trial..."},
			IntentContentExplain,
		},
		{
			"explain without info text falls to general",
			models.ChatRequest{Message: "explain the risks", Context: models.ContextTrial},
			IntentGeneralQA,
		},
		{
			"no field match without explain keyword",
			models.ChatRequest{Message: "email", Context: models.ContextForm, Fields: testFields},
			IntentGeneralQA,
		},
		{
			"plain question",
			models.ChatRequest{Message: "can I withdraw later?", Context: models.ContextTrial},
			IntentGeneralQA,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			intent, _ := Classify(tc.req)
			if intent != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, intent)
			}
		})
	}
}

func TestClassifyReturnsMatchedField(t *testing.T) {
	req := models.ChatRequest{
		Message: "tell me about the date of birth field",
		Context: models.ContextForm,
		Fields:  testFields,
	}

	intent, field := Classify(req)
	if intent != IntentFieldExplain {
		t.Fatalf("Expected field_explain, got %s", intent)
	}
	if field == nil || field.Key != "dateOfBirth" {
		t.Errorf("Expected dateOfBirth field, got %+v", field)
	}
}

func TestClassifyFirstFieldWins(t *testing.T) {
	// "email" appears before "hospital" in the field list; first match wins.
	req := models.ChatRequest{
		Message: "explain email and hospital",
		Context: models.ContextForm,
		Fields:  testFields,
	}

	_, field := Classify(req)
	if field == nil || field.Key != "email" {
		t.Errorf("Expected email field, got %+v", field)
	}
}

func TestFillKeywordAsRequiresTrailingSpace(t *testing.T) {
	// "ask" contains "as" but not "as ", so it must not classify as a fill.
	req := models.ChatRequest{Message: "ask", Context: models.ContextForm}
	if intent, _ := Classify(req); intent == IntentFormFill {
		t.Error("'ask' should not classify as form_fill")
	}

	req.Message = "mark me as a guys patient"
	if intent, _ := Classify(req); intent != IntentFormFill {
		t.Error("'as ' should classify as form_fill")
	}
}
