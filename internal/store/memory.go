package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/accountflow/accountflow/internal/model"
)

// Memory is an in-process Store, used by tests and one-shot CLI runs.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record)}
}

var _ Store = (*Memory)(nil)

func (m *Memory) Save(_ context.Context, result model.AnalysisResult, sctx Context) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := result.ID
	if id == "" {
		id = uuid.NewString()
	}
	result.ID = id

	now := time.Now().UTC()
	rec := Record{
		ID:        id,
		Result:    result,
		Context:   sctx,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.records[id] = rec
	return rec, nil
}

func (m *Memory) Get(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) List(_ context.Context, sctx Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []Record
	for _, rec := range m.records {
		if matches(rec, sctx) {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *Memory) Update(_ context.Context, id string, result model.AnalysisResult) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}

	result.ID = id
	rec.Result = result
	rec.UpdatedAt = time.Now().UTC()
	m.records[id] = rec
	return rec, nil
}

func (m *Memory) Confirm(_ context.Context, id string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}

	if rec.Status != StatusConfirmed {
		rec.Status = StatusConfirmed
		rec.UpdatedAt = time.Now().UTC()
		m.records[id] = rec
	}
	return rec, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}
