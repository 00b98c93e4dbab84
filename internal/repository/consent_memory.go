package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"econsent-backend/internal/models"
)

// MemoryConsentStore keeps consent records in process memory. The default
// store when no DATABASE_URL is configured; records do not survive restarts.
type MemoryConsentStore struct {
	mu      sync.RWMutex
	records []models.ConsentRecord
}

func NewMemoryConsentStore() *MemoryConsentStore {
	return &MemoryConsentStore{}
}

func (s *MemoryConsentStore) Create(_ context.Context, data map[string]any) (*models.ConsentRecord, error) {
	record := models.ConsentRecord{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Data:      copyData(data),
	}

	s.mu.Lock()
	s.records = append(s.records, record)
	s.mu.Unlock()

	out := record
	out.Data = copyData(record.Data)
	return &out, nil
}

func (s *MemoryConsentStore) List(_ context.Context) ([]models.ConsentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ConsentRecord, len(s.records))
	for i, r := range s.records {
		out[i] = r
		out[i].Data = copyData(r.Data)
	}
	return out, nil
}

func (s *MemoryConsentStore) Get(_ context.Context, id uuid.UUID) (*models.ConsentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.ID == id {
			out := r
			out.Data = copyData(r.Data)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryConsentStore) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Data["status"] = status
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryConsentStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func copyData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
