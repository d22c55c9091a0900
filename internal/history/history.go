// Package history records finished analyses through the key-value
// persistence collaborator so users can revisit earlier results.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HRC-Manu/bewerbungs-core/internal/store"
	"github.com/HRC-Manu/bewerbungs-core/internal/types"
)

const storeKey = "analysis_history"

// Record is one finished analysis.
type Record struct {
	ID        uuid.UUID          `json:"id"`
	Type      types.DocumentType `json:"type"`
	FileName  string             `json:"fileName"`
	Result    json.RawMessage    `json:"result"`
	Timestamp time.Time          `json:"timestamp"`
}

// History persists analysis records. Safe for concurrent use: every
// load-modify-save cycle over the single stored snapshot holds the mutex,
// so batch workers cannot overwrite each other's appends.
type History struct {
	mu  sync.Mutex
	kv  store.KV
	now func() time.Time
}

// New builds a History over kv.
func New(kv store.KV) *History {
	return &History{kv: kv, now: time.Now}
}

// Append stores a new record and returns its generated ID.
func (h *History) Append(ctx context.Context, docType types.DocumentType, fileName string, result any) (uuid.UUID, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to serialize analysis result: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	records, err := h.load(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	record := Record{
		ID:        uuid.New(),
		Type:      docType,
		FileName:  fileName,
		Result:    raw,
		Timestamp: h.now(),
	}
	records = append(records, record)

	if err := h.save(ctx, records); err != nil {
		return uuid.Nil, err
	}
	return record.ID, nil
}

// List returns all records, newest first.
func (h *History) List(ctx context.Context) ([]Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	records, err := h.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}

// Remove deletes the record with the given ID. Deleting a missing ID is
// not an error.
func (h *History) Remove(ctx context.Context, id uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	records, err := h.load(ctx)
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, record := range records {
		if record.ID != id {
			kept = append(kept, record)
		}
	}
	return h.save(ctx, kept)
}

// Clear drops every record.
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.kv.Remove(ctx, storeKey)
}

func (h *History) load(ctx context.Context) ([]Record, error) {
	raw, ok, err := h.kv.Get(ctx, storeKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return records, nil
}

func (h *History) save(ctx context.Context, records []Record) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to serialize history: %w", err)
	}
	if err := h.kv.Set(ctx, storeKey, string(raw)); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}
