package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"econsent-backend/internal/interpreter"
	"econsent-backend/internal/models"
)

type ChatHandler struct {
	engine *interpreter.Engine
}

func NewChatHandler(engine *interpreter.Engine) *ChatHandler {
	return &ChatHandler{engine: engine}
}

// Ask answers one chat message. Bound to POST /chat and its /chat/text
// alias; both behave identically.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	resp, err := h.engine.Interpret(r.Context(), req)
	if err != nil {
		if errors.Is(err, interpreter.ErrEmptyMessage) {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Message is required", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to process message", r))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
