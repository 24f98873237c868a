// Package store persists user credentials keyed by username. Every backend
// offers the same exact-match lookup and last-write-wins upsert.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"
	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/passlab/internal/account/entity"
	"github.com/shandysiswandi/passlab/internal/pkg/goerror"
	"github.com/shandysiswandi/passlab/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Supported values of store.driver.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverBolt     = "bolt"
)

// ErrUnknownField is returned when a filter names a field the store does not keep.
var ErrUnknownField = errors.New("filter names an unknown field")

var knownFields = []entity.Field{
	entity.FieldUsername,
	entity.FieldDigest,
	entity.FieldSalt,
	entity.FieldScheme,
}

// Store is the user record store. FindOne returns goerror.ErrNotFound when no
// record matches.
type Store interface {
	FindOne(ctx context.Context, filter entity.Filter) (*entity.UserCredential, error)
	Upsert(ctx context.Context, rec entity.UserCredential) error
	Close() error
}

// RetryPolicy bounds the retries of network backends.
type RetryPolicy struct {
	Attempts uint64
	Base     time.Duration
	Cap      time.Duration
}

// DefaultRetryPolicy is used when a backend is built with a zero policy.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Base: 50 * time.Millisecond, Cap: time.Second}

func (p RetryPolicy) backoff() retry.Backoff {
	if p.Base <= 0 {
		p = DefaultRetryPolicy
	}

	b := retry.NewExponential(p.Base)
	b = retry.WithMaxRetries(p.Attempts, b)
	if p.Cap > 0 {
		b = retry.WithCappedDuration(p.Cap, b)
	}
	return b
}

// withRetry runs fn until it succeeds, returns a non-transient error or the
// policy is exhausted. Context errors are never retried.
func withRetry(ctx context.Context, p RetryPolicy, transient func(error) bool, fn func(ctx context.Context) error) error {
	return retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if transient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

// checkFilter returns the username of a usable filter.
func checkFilter(filter entity.Filter) (string, error) {
	username, ok := filter.Username()
	if !ok {
		return "", entity.ErrFilterWithoutUsername
	}

	if !lo.Every(knownFields, lo.Keys(filter)) {
		return "", ErrUnknownField
	}

	return username, nil
}

func checkRecord(rec entity.UserCredential) error {
	if rec.Username == "" {
		return entity.ErrFilterWithoutUsername
	}
	return nil
}

// match applies the non-username constraints to a record found by username.
func match(rec *entity.UserCredential, filter entity.Filter) (*entity.UserCredential, error) {
	if rec == nil || !filter.Match(*rec) {
		return nil, goerror.ErrNotFound
	}
	return rec, nil
}

type spanner struct {
	ins     instrument.Instrumentation
	backend string
}

func (s spanner) start(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.outbound.store").Start(ctx, s.backend+"."+name,
		trace.WithAttributes(attribute.String("db.system", s.backend)))
}

func (spanner) end(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
