package store

import (
	"context"
	"testing"

	"github.com/shandysiswandi/passlab/internal/account/entity"
	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	testStoreContract(t, func(*testing.T) Store { return NewMemory() })
}

func TestMemory_CanceledContext(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.FindOne(ctx, entity.ByUsername("Peter Oh"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, m.Upsert(ctx, peter()), context.Canceled)
	assert.Zero(t, m.Len())
}
