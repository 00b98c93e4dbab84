package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"econsent-backend/internal/models"
)

// PgConsentStore persists consent records in a Postgres JSONB table. Used
// when DATABASE_URL is configured.
type PgConsentStore struct {
	pool *pgxpool.Pool
}

func NewPgConsentStore(pool *pgxpool.Pool) *PgConsentStore {
	return &PgConsentStore{pool: pool}
}

func (s *PgConsentStore) Create(ctx context.Context, data map[string]any) (*models.ConsentRecord, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal consent data: %w", err)
	}

	record := models.ConsentRecord{Data: data}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO consents (data)
		VALUES ($1)
		RETURNING id, created_at
	`, payload).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (s *PgConsentStore) List(ctx context.Context) ([]models.ConsentRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, created_at, data
		FROM consents
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.ConsentRecord{}
	for rows.Next() {
		record, err := scanConsent(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *PgConsentStore) Get(ctx context.Context, id uuid.UUID) (*models.ConsentRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, created_at, data
		FROM consents
		WHERE id = $1
	`, id)

	record, err := scanConsent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *PgConsentStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE consents
		SET data = jsonb_set(data, '{status}', to_jsonb($2::text))
		WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PgConsentStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM consents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanConsent(row pgx.Row) (models.ConsentRecord, error) {
	var record models.ConsentRecord
	var payload []byte
	if err := row.Scan(&record.ID, &record.CreatedAt, &payload); err != nil {
		return record, err
	}
	if err := json.Unmarshal(payload, &record.Data); err != nil {
		return record, fmt.Errorf("unmarshal consent data: %w", err)
	}
	return record, nil
}
