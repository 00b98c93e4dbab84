package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"econsent-backend/internal/models"
)

// ErrNotFound is returned for operations on unknown consent IDs. Handlers
// map it to a 404.
var ErrNotFound = errors.New("consent not found")

// ConsentStore persists submitted consent records. Implementations must be
// safe for concurrent use.
type ConsentStore interface {
	Create(ctx context.Context, data map[string]any) (*models.ConsentRecord, error)
	List(ctx context.Context) ([]models.ConsentRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ConsentRecord, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
