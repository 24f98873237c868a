package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shandysiswandi/passlab/internal/account/entity"
	"github.com/shandysiswandi/passlab/internal/pkg/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestBolt(t *testing.T, path string) *Bolt {
	t.Helper()

	b, err := OpenBolt(path, instrument.NewNoop())
	require.NoError(t, err)
	return b
}

func TestBolt(t *testing.T) {
	testStoreContract(t, func(t *testing.T) Store {
		b := openTestBolt(t, filepath.Join(t.TempDir(), "credentials.db"))
		t.Cleanup(func() { _ = b.Close() })
		return b
	})
}

func TestBolt_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")

	b := openTestBolt(t, path)
	require.NoError(t, b.Upsert(context.Background(), peter()))
	require.NoError(t, b.Close())

	b = openTestBolt(t, path)
	t.Cleanup(func() { _ = b.Close() })

	got, err := b.FindOne(context.Background(), entity.ByUsername("Peter Oh"))
	require.NoError(t, err)
	assert.Equal(t, peter(), *got)
}

func TestOpenBolt_BadPath(t *testing.T) {
	_, err := OpenBolt(filepath.Join(t.TempDir(), "missing", "dir", "x.db"), instrument.NewNoop())
	assert.Error(t, err)
}
