package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/passlab/internal/account/entity"
	"github.com/shandysiswandi/passlab/internal/pkg/instrument"
)

const (
	hashDigest     = "digest"
	hashSalt       = "salt"
	hashScheme     = "scheme"
	hashEnrolledAt = "enrolled_at"
)

// DefaultRedisPrefix namespaces credential hashes.
const DefaultRedisPrefix = "passlab:credential:"

// Redis stores one hash per user at prefix+username.
type Redis struct {
	client redis.UniversalClient
	prefix string
	retry  RetryPolicy
	span   spanner
}

func NewRedis(client redis.UniversalClient, prefix string, policy RetryPolicy, ins instrument.Instrumentation) *Redis {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	return &Redis{
		client: client,
		prefix: prefix,
		retry:  policy,
		span:   spanner{ins: ins, backend: DriverRedis},
	}
}

func (r *Redis) key(username string) string {
	return r.prefix + username
}

func (r *Redis) FindOne(ctx context.Context, filter entity.Filter) (_ *entity.UserCredential, err error) {
	ctx, span := r.span.start(ctx, "FindOne")
	defer func() { r.span.end(span, err) }()

	username, err := checkFilter(filter)
	if err != nil {
		return nil, err
	}

	var fields map[string]string
	err = withRetry(ctx, r.retry, redisTransient, func(ctx context.Context) error {
		var cmdErr error
		fields, cmdErr = r.client.HGetAll(ctx, r.key(username)).Result()
		return cmdErr
	})
	if err != nil {
		return nil, err
	}

	// HGETALL on a missing key yields an empty map.
	if len(fields) == 0 {
		return match(nil, filter)
	}

	rec := &entity.UserCredential{
		Username: username,
		Digest:   fields[hashDigest],
		Salt:     fields[hashSalt],
		Scheme:   fields[hashScheme],
	}
	if at, parseErr := time.Parse(time.RFC3339Nano, fields[hashEnrolledAt]); parseErr == nil {
		rec.EnrolledAt = at.UTC()
	}

	return match(rec, filter)
}

func (r *Redis) Upsert(ctx context.Context, rec entity.UserCredential) (err error) {
	ctx, span := r.span.start(ctx, "Upsert")
	defer func() { r.span.end(span, err) }()

	if err := checkRecord(rec); err != nil {
		return err
	}

	// HSET writes every field in one command, so concurrent writers never mix fields.
	return withRetry(ctx, r.retry, redisTransient, func(ctx context.Context) error {
		return r.client.HSet(ctx, r.key(rec.Username),
			hashDigest, rec.Digest,
			hashSalt, rec.Salt,
			hashScheme, rec.Scheme,
			hashEnrolledAt, rec.EnrolledAt.UTC().Format(time.RFC3339Nano),
		).Err()
	})
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// redisTransient reports connection level failures. Replies from the server
// (WRONGTYPE and friends) are final.
func redisTransient(err error) bool {
	if errors.Is(err, redis.Nil) {
		return false
	}

	var replyErr redis.Error
	return !errors.As(err, &replyErr)
}
