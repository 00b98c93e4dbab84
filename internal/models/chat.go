package models

// Chat context tags sent by the frontend.
const (
	ContextTrial = "trial"
	ContextForm  = "form"
)

// FieldMeta describes one form input the frontend knows about. Supplied
// per-request; never persisted by the backend.
type FieldMeta struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	Help  string `json:"help,omitempty"`
}

// DisplayName returns the label when present, otherwise the key.
func (f FieldMeta) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Key
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message  string      `json:"message"`
	Context  string      `json:"context"` // "trial" or "form"
	InfoText string      `json:"infoText,omitempty"`
	Fields   []FieldMeta `json:"fields,omitempty"`
}

// ChatResponse is the assistant's reply. FieldsPatch is present only when a
// form-fill extraction produced at least one value; the frontend applies it
// to its form state.
type ChatResponse struct {
	Reply       string            `json:"reply"`
	FieldsPatch map[string]string `json:"fieldsPatch,omitempty"`
}
