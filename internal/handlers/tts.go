package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"econsent-backend/internal/services"
)

type TTSHandler struct {
	tts *services.TTSService
}

func NewTTSHandler(tts *services.TTSService) *TTSHandler {
	return &TTSHandler{tts: tts}
}

type ttsBody struct {
	Text string `json:"text"`
}

// Speak proxies text through the synthesis API and streams back MP3 audio.
func (h *TTSHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var req ttsBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Text is required", r))
		return
	}

	audio, err := h.tts.Synthesize(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, services.ErrTTSNotConfigured) {
			writeJSON(w, http.StatusServiceUnavailable, errorResp("TTS_NOT_CONFIGURED", "TTS not configured", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("TTS_UPSTREAM_ERROR", "Failed to generate audio", r))
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}
