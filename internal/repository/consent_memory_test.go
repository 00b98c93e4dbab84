package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryConsentStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryConsentStore()

	record, err := store.Create(ctx, map[string]any{"firstName": "Alice", "hospital": "guys"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if record.ID == (uuid.UUID{}) {
		t.Error("Expected generated ID")
	}
	if record.CreatedAt.IsZero() {
		t.Error("Expected created timestamp")
	}

	got, err := store.Get(ctx, record.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Data["firstName"] != "Alice" {
		t.Errorf("Expected stored data, got %v", got.Data)
	}

	if err := store.UpdateStatus(ctx, record.ID, "approved"); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	got, _ = store.Get(ctx, record.ID)
	if got.Data["status"] != "approved" {
		t.Errorf("Expected status approved, got %v", got.Data["status"])
	}

	all, err := store.List(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("Expected one record, got %d (err %v)", len(all), err)
	}

	if err := store.Delete(ctx, record.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	all, _ = store.List(ctx)
	if len(all) != 0 {
		t.Errorf("Expected empty store after delete, got %d", len(all))
	}
}

func TestMemoryConsentStoreNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryConsentStore()
	unknown := uuid.New()

	if _, err := store.Get(ctx, unknown); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: expected ErrNotFound, got %v", err)
	}
	if err := store.UpdateStatus(ctx, unknown, "approved"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateStatus: expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, unknown); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryConsentStoreCopiesData(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryConsentStore()

	data := map[string]any{"firstName": "Alice"}
	record, _ := store.Create(ctx, data)

	// Mutating either the input map or a returned record must not leak into
	// the store.
	data["firstName"] = "Mallory"
	record.Data["firstName"] = "Eve"

	got, _ := store.Get(ctx, record.ID)
	if got.Data["firstName"] != "Alice" {
		t.Errorf("Store data was mutated externally: %v", got.Data)
	}
}

func TestMemoryConsentStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryConsentStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			record, err := store.Create(ctx, map[string]any{"n": "x"})
			if err != nil {
				t.Errorf("Create failed: %v", err)
				return
			}
			if _, err := store.Get(ctx, record.ID); err != nil {
				t.Errorf("Get failed: %v", err)
			}
			if _, err := store.List(ctx); err != nil {
				t.Errorf("List failed: %v", err)
			}
		}()
	}
	wg.Wait()

	all, _ := store.List(ctx)
	if len(all) != 50 {
		t.Errorf("Expected 50 records, got %d", len(all))
	}
}
