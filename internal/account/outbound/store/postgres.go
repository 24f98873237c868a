package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"github.com/shandysiswandi/passlab/internal/account/entity"
	"github.com/shandysiswandi/passlab/internal/pkg/goerror"
	"github.com/shandysiswandi/passlab/internal/pkg/instrument"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS account_credentials (
	username    TEXT PRIMARY KEY,
	digest      TEXT NOT NULL,
	salt        TEXT NOT NULL DEFAULT '',
	scheme      TEXT NOT NULL,
	enrolled_at TIMESTAMPTZ NOT NULL
)`

const upsertSQL = `INSERT INTO account_credentials (username, digest, salt, scheme, enrolled_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (username) DO UPDATE SET
	digest = EXCLUDED.digest,
	salt = EXCLUDED.salt,
	scheme = EXCLUDED.scheme,
	enrolled_at = EXCLUDED.enrolled_at`

const selectSQL = `SELECT username, digest, salt, scheme, enrolled_at FROM account_credentials`

var columns = map[entity.Field]string{
	entity.FieldUsername: "username",
	entity.FieldDigest:   "digest",
	entity.FieldSalt:     "salt",
	entity.FieldScheme:   "scheme",
}

// Postgres stores records in the account_credentials table.
type Postgres struct {
	pool  *pgxpool.Pool
	retry RetryPolicy
	span  spanner
}

// NewPostgres creates the table when missing.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool, policy RetryPolicy, ins instrument.Instrumentation) (*Postgres, error) {
	p := &Postgres{
		pool:  pool,
		retry: policy,
		span:  spanner{ins: ins, backend: DriverPostgres},
	}

	if err := withRetry(ctx, policy, pgTransient, func(ctx context.Context) error {
		_, err := pool.Exec(ctx, createTableSQL)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create account_credentials table: %w", err)
	}

	return p, nil
}

// buildSelect turns a filter into a parameterised WHERE clause. Keys are
// sorted so the statement text is stable.
func buildSelect(filter entity.Filter) (string, []any) {
	fields := lo.Keys(filter)
	slices.Sort(fields)

	conds := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for i, field := range fields {
		conds = append(conds, fmt.Sprintf("%s = $%d", columns[field], i+1))
		args = append(args, filter[field])
	}

	return selectSQL + " WHERE " + strings.Join(conds, " AND ") + " LIMIT 1", args
}

func (p *Postgres) FindOne(ctx context.Context, filter entity.Filter) (_ *entity.UserCredential, err error) {
	ctx, span := p.span.start(ctx, "FindOne")
	defer func() { p.span.end(span, err) }()

	if _, err := checkFilter(filter); err != nil {
		return nil, err
	}

	query, args := buildSelect(filter)

	var rec entity.UserCredential
	err = withRetry(ctx, p.retry, pgTransient, func(ctx context.Context) error {
		return p.pool.QueryRow(ctx, query, args...).
			Scan(&rec.Username, &rec.Digest, &rec.Salt, &rec.Scheme, &rec.EnrolledAt)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rec.EnrolledAt = rec.EnrolledAt.UTC()
	return &rec, nil
}

func (p *Postgres) Upsert(ctx context.Context, rec entity.UserCredential) (err error) {
	ctx, span := p.span.start(ctx, "Upsert")
	defer func() { p.span.end(span, err) }()

	if err := checkRecord(rec); err != nil {
		return err
	}

	return withRetry(ctx, p.retry, pgTransient, func(ctx context.Context) error {
		_, err := p.pool.Exec(ctx, upsertSQL, rec.Username, rec.Digest, rec.Salt, rec.Scheme, rec.EnrolledAt.UTC())
		return err
	})
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// pgTransient retries connection failures, serialization failures and
// deadlocks. Constraint and syntax errors are final.
func pgTransient(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01" || strings.HasPrefix(pgErr.Code, "08")
	}

	if pgconn.SafeToRetry(err) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
