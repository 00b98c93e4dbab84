package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"econsent-backend/internal/services"
)

const maxInfoUploadBytes = 20 * 1024 * 1024 // 20MB

type InfoHandler struct {
	extractor *services.DocExtractService
}

func NewInfoHandler(extractor *services.DocExtractService) *InfoHandler {
	return &InfoHandler{extractor: extractor}
}

// Extract pulls plain text out of an uploaded participant information sheet
// so the frontend can hand it to the chat assistant as infoText.
func (h *InfoHandler) Extract(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > maxInfoUploadBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "File size exceeds 20MB limit", r))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxInfoUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No file provided", r))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !h.supported(ext) {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResp("UNSUPPORTED_FORMAT", "File type not supported", r))
		return
	}

	// The PDF reader needs a seekable file, so spool the upload to disk.
	tmpPath := filepath.Join(os.TempDir(), "info-"+uuid.New().String()+ext)
	tmp, err := os.Create(tmpPath)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store upload", r))
		return
	}
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store upload", r))
		return
	}
	tmp.Close()

	text, err := h.extractor.ExtractText(tmpPath)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResp("EXTRACTION_FAILED", "No extractable text found", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (h *InfoHandler) supported(ext string) bool {
	for _, s := range h.extractor.SupportedExtensions() {
		if ext == s {
			return true
		}
	}
	return false
}
