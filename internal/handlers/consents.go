package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"econsent-backend/internal/models"
	"econsent-backend/internal/repository"
)

type ConsentHandler struct {
	store repository.ConsentStore
}

func NewConsentHandler(store repository.ConsentStore) *ConsentHandler {
	return &ConsentHandler{store: store}
}

func (h *ConsentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil || data == nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid consent payload", r))
		return
	}

	record, err := h.store.Create(r.Context(), data)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store consent", r))
		return
	}

	writeJSON(w, http.StatusOK, models.ConsentSubmitResponse{
		ID:        record.ID,
		CreatedAt: record.CreatedAt,
	})
}

func (h *ConsentHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list consents", r))
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *ConsentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.consentID(w, r)
	if !ok {
		return
	}

	record, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *ConsentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.consentID(w, r)
	if !ok {
		return
	}

	var update models.ConsentStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil || strings.TrimSpace(update.Status) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Status is required", r))
		return
	}

	if err := h.store.UpdateStatus(r.Context(), id, update.Status); err != nil {
		h.storeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Status updated successfully",
		"id":      id,
		"status":  update.Status,
	})
}

func (h *ConsentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.consentID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.storeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Consent deleted successfully",
		"id":      id,
	})
}

func (h *ConsentHandler) consentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Consent not found", r))
		return uuid.UUID{}, false
	}
	return id, true
}

func (h *ConsentHandler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Consent not found", r))
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Consent storage failed", r))
}
