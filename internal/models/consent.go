package models

import (
	"time"

	"github.com/google/uuid"
)

// ConsentRecord is one submitted consent form. Data holds the raw form
// payload as the frontend sent it; the backend does not interpret it beyond
// the optional status field.
type ConsentRecord struct {
	ID        uuid.UUID      `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Data      map[string]any `json:"data"`
}

// ConsentSubmitResponse acknowledges a stored consent.
type ConsentSubmitResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// ConsentStatusUpdate changes the review status of a stored consent.
type ConsentStatusUpdate struct {
	Status string `json:"status"`
}
