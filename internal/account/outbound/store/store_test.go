package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/passlab/internal/account/entity"
	"github.com/shandysiswandi/passlab/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var enrolledAt = time.Date(2026, 3, 14, 15, 9, 26, 535897000, time.UTC)

func peter() entity.UserCredential {
	return entity.UserCredential{
		Username:   "Peter Oh",
		Digest:     "3f0d9c1e",
		Salt:       "00ff00ff",
		Scheme:     "salted-hmac",
		EnrolledAt: enrolledAt,
	}
}

// testStoreContract runs the behaviour every backend shares against a fresh store.
func testStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()

	t.Run("missing record", func(t *testing.T) {
		s := newStore(t)
		_, err := s.FindOne(context.Background(), entity.ByUsername("nobody"))
		assert.ErrorIs(t, err, goerror.ErrNotFound)
	})

	t.Run("upsert then find", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Upsert(ctx, peter()))

		got, err := s.FindOne(ctx, entity.ByUsername("Peter Oh"))
		require.NoError(t, err)
		assert.Equal(t, peter(), *got)
	})

	t.Run("extra constraints", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Upsert(ctx, peter()))

		got, err := s.FindOne(ctx, entity.Filter{
			entity.FieldUsername: "Peter Oh",
			entity.FieldDigest:   "3f0d9c1e",
			entity.FieldScheme:   "salted-hmac",
		})
		require.NoError(t, err)
		assert.Equal(t, "Peter Oh", got.Username)

		_, err = s.FindOne(ctx, entity.Filter{entity.FieldUsername: "Peter Oh", entity.FieldDigest: "my-secret"})
		assert.ErrorIs(t, err, goerror.ErrNotFound)
	})

	t.Run("upsert replaces", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Upsert(ctx, peter()))

		next := peter()
		next.Digest = "aa11"
		next.Salt = ""
		next.Scheme = "bcrypt"
		next.EnrolledAt = enrolledAt.Add(time.Hour)
		require.NoError(t, s.Upsert(ctx, next))

		got, err := s.FindOne(ctx, entity.ByUsername("Peter Oh"))
		require.NoError(t, err)
		assert.Equal(t, next, *got)
	})

	t.Run("invalid filter", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.FindOne(ctx, entity.Filter{entity.FieldDigest: "3f0d9c1e"})
		assert.ErrorIs(t, err, entity.ErrFilterWithoutUsername)

		_, err = s.FindOne(ctx, entity.Filter{entity.FieldUsername: "Peter Oh", "password": "x"})
		assert.ErrorIs(t, err, ErrUnknownField)

		assert.ErrorIs(t, s.Upsert(ctx, entity.UserCredential{Digest: "x"}), entity.ErrFilterWithoutUsername)
	})

	t.Run("concurrent upserts", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec := peter()
				rec.Username = fmt.Sprintf("user-%02d", i)
				assert.NoError(t, s.Upsert(ctx, rec))
			}()
		}
		wg.Wait()

		for i := range 16 {
			_, err := s.FindOne(ctx, entity.ByUsername(fmt.Sprintf("user-%02d", i)))
			assert.NoError(t, err)
		}
	})
}

func TestWithRetry(t *testing.T) {
	policy := RetryPolicy{Attempts: 2, Base: time.Millisecond, Cap: 2 * time.Millisecond}
	transientErr := errors.New("connection reset")
	finalErr := errors.New("syntax error")
	isTransient := func(err error) bool { return errors.Is(err, transientErr) }

	tests := []struct {
		name      string
		errs      []error
		wantErr   error
		wantCalls int
	}{
		{name: "success", errs: []error{nil}, wantCalls: 1},
		{name: "recovers", errs: []error{transientErr, nil}, wantCalls: 2},
		{name: "exhausted", errs: []error{transientErr, transientErr, transientErr}, wantErr: transientErr, wantCalls: 3},
		{name: "final error", errs: []error{finalErr}, wantErr: finalErr, wantCalls: 1},
		{name: "context error", errs: []error{context.Canceled}, wantErr: context.Canceled, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := withRetry(context.Background(), policy, isTransient, func(context.Context) error {
				err := tt.errs[calls]
				calls++
				return err
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestBuildSelect(t *testing.T) {
	query, args := buildSelect(entity.Filter{
		entity.FieldUsername: "Peter Oh",
		entity.FieldDigest:   "d",
	})

	assert.Equal(t, selectSQL+" WHERE digest = $1 AND username = $2 LIMIT 1", query)
	assert.Equal(t, []any{"d", "Peter Oh"}, args)
}

func TestTransientClassifiers(t *testing.T) {
	assert.False(t, pgTransient(errors.New("plain")))
	assert.True(t, redisTransient(errors.New("dial tcp: connection refused")))
}
