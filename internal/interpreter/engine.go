package interpreter

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"econsent-backend/internal/models"
)

// Oracle is the external text-completion service. Implementations must be
// safe for concurrent use.
type Oracle interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Engine turns a chat request into a reply: classify the message, extract a
// field patch when it is a fill command, then compose the response. A nil
// oracle is valid; replies then always use the deterministic fallback text.
type Engine struct {
	oracle    Oracle
	extractor *Extractor
}

func NewEngine(oracle Oracle, opts Options) *Engine {
	return &Engine{
		oracle:    oracle,
		extractor: NewExtractor(opts),
	}
}

// Interpret handles one chat message. The only error it returns is
// ErrEmptyMessage; oracle failures never surface, they degrade to fallback
// text.
func (e *Engine) Interpret(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return models.ChatResponse{}, ErrEmptyMessage
	}

	intent, field := Classify(req)

	if intent == IntentFormFill {
		patch := e.extractor.Extract(req.Message)
		if len(patch) > 0 {
			return e.confirmFormFill(ctx, patch), nil
		}
		// Nothing extractable: the message reads like a question after all.
		intent, field = classifyExplain(req)
	}

	switch intent {
	case IntentFieldExplain:
		return e.explainField(ctx, *field, req), nil
	case IntentContentExplain:
		return e.explainContent(ctx, req), nil
	default:
		return e.generalAnswer(ctx, req), nil
	}
}

func (e *Engine) confirmFormFill(ctx context.Context, patch Patch) models.ChatResponse {
	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	joined := strings.Join(keys, ", ")

	prompt := "You are a clinical trial e-consent assistant. " +
		fmt.Sprintf("The user just filled these form fields: %s. ", joined) +
		"Provide a helpful confirmation message that acknowledges the fields were updated and encourages them to continue or ask questions. " +
		"Keep it to one sentence."

	reply, ok := e.askOracle(ctx, prompt)
	if !ok {
		reply = fmt.Sprintf("I've updated the following fields: %s. You can continue filling the form or ask me questions about any field.", joined)
	}
	return models.ChatResponse{Reply: reply, FieldsPatch: patch}
}

func (e *Engine) explainField(ctx context.Context, field models.FieldMeta, req models.ChatRequest) models.ChatResponse {
	help := field.Help
	if help == "" {
		help = "N/A"
	}

	prompt := "You are a clinical trial e-consent assistant. " +
		fmt.Sprintf("Explain the '%s' field clearly and simply. ", field.DisplayName()) +
		fmt.Sprintf("Field details: %s. ", help) +
		fmt.Sprintf("User question: %s. ", req.Message) +
		"Be helpful and patient-friendly. Keep it concise: 1-3 sentences unless the user asks for more detail."

	if reply, ok := e.askOracle(ctx, prompt); ok {
		return models.ChatResponse{Reply: reply}
	}
	if field.Help != "" {
		return models.ChatResponse{Reply: field.Help}
	}
	return models.ChatResponse{Reply: "Information about " + field.DisplayName()}
}

func (e *Engine) explainContent(ctx context.Context, req models.ChatRequest) models.ChatResponse {
	prompt := "You are a clinical trial e-consent assistant. " +
		fmt.Sprintf("Explain the following content clearly and simply: %s. ", req.InfoText) +
		fmt.Sprintf("User question: %s. ", req.Message) +
		"Be helpful and patient-friendly. Keep it concise: 1-3 sentences unless the user explicitly asks for a detailed explanation."

	if reply, ok := e.askOracle(ctx, prompt); ok {
		return models.ChatResponse{Reply: reply}
	}
	return models.ChatResponse{Reply: req.InfoText}
}

func (e *Engine) generalAnswer(ctx context.Context, req models.ChatRequest) models.ChatResponse {
	var b strings.Builder

	switch req.Context {
	case models.ContextTrial:
		b.WriteString("You are helping with a clinical trial. ")
	case models.ContextForm:
		b.WriteString("You are helping with a consent form. ")
	}

	if req.InfoText != "" {
		b.WriteString(fmt.Sprintf("Relevant information: %s ", truncate(req.InfoText, 500)))
	}

	if len(req.Fields) > 0 {
		fields := req.Fields
		if len(fields) > 10 {
			fields = fields[:10]
		}
		names := make([]string, len(fields))
		for i, f := range fields {
			names[i] = f.DisplayName()
		}
		b.WriteString(fmt.Sprintf("Form fields include: %s. ", strings.Join(names, ", ")))
	}

	b.WriteString("You are a helpful clinical trial assistant. ")
	b.WriteString(fmt.Sprintf("User question: %s ", req.Message))
	b.WriteString("Provide a precise answer in 1-3 sentences unless the user explicitly asks for a longer, detailed explanation.")

	if reply, ok := e.askOracle(ctx, b.String()); ok {
		return models.ChatResponse{Reply: reply}
	}
	if req.InfoText != "" {
		return models.ChatResponse{Reply: fmt.Sprintf("I can help you with this %s. %s...", req.Context, truncate(req.InfoText, 200))}
	}
	return models.ChatResponse{Reply: "I'm having trouble right now. Please try asking your question again."}
}

// askOracle calls the text-completion service and reports whether a usable
// reply came back. Every failure path returns ok=false; it never panics and
// never retries.
func (e *Engine) askOracle(ctx context.Context, prompt string) (string, bool) {
	if e.oracle == nil {
		return "", false
	}
	text, err := e.oracle.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("chat: oracle call failed, using fallback: %v", err)
		return "", false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return text, true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
