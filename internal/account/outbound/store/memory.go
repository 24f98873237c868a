package store

import (
	"context"
	"sync"

	"github.com/shandysiswandi/passlab/internal/account/entity"
)

// Memory keeps records in a map. It is the per-process store used by tests
// and by the "memory" driver.
type Memory struct {
	mu      sync.RWMutex
	records map[string]entity.UserCredential
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]entity.UserCredential)}
}

func (m *Memory) FindOne(ctx context.Context, filter entity.Filter) (*entity.UserCredential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	username, err := checkFilter(filter)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	rec, ok := m.records[username]
	m.mu.RUnlock()

	if !ok {
		return match(nil, filter)
	}
	return match(&rec, filter)
}

func (m *Memory) Upsert(ctx context.Context, rec entity.UserCredential) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkRecord(rec); err != nil {
		return err
	}

	m.mu.Lock()
	m.records[rec.Username] = rec
	m.mu.Unlock()

	return nil
}

// Len returns the number of stored records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

func (*Memory) Close() error {
	return nil
}
