package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shandysiswandi/passlab/internal/account/entity"
	"github.com/shandysiswandi/passlab/internal/pkg/instrument"
	bbolt "go.etcd.io/bbolt"
)

var bucketCredentials = []byte("credentials")

type boltDocument struct {
	Digest     string    `json:"digest"`
	Salt       string    `json:"salt,omitempty"`
	Scheme     string    `json:"scheme"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// Bolt keeps one JSON document per username in a bbolt file.
type Bolt struct {
	db   *bbolt.DB
	span spanner
}

// OpenBolt opens or creates the file at path and ensures the bucket exists.
func OpenBolt(path string, ins instrument.Instrumentation) (*Bolt, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt: open %s: %w", path, err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCredentials)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bolt: create bucket: %w", err)
	}

	return &Bolt{db: db, span: spanner{ins: ins, backend: DriverBolt}}, nil
}

func (b *Bolt) FindOne(ctx context.Context, filter entity.Filter) (_ *entity.UserCredential, err error) {
	_, span := b.span.start(ctx, "FindOne")
	defer func() { b.span.end(span, err) }()

	username, err := checkFilter(filter)
	if err != nil {
		return nil, err
	}

	var rec *entity.UserCredential
	err = b.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketCredentials).Get([]byte(username))
		if raw == nil {
			return nil
		}

		var doc boltDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("bolt: decode %q: %w", username, err)
		}

		rec = &entity.UserCredential{
			Username:   username,
			Digest:     doc.Digest,
			Salt:       doc.Salt,
			Scheme:     doc.Scheme,
			EnrolledAt: doc.EnrolledAt.UTC(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return match(rec, filter)
}

func (b *Bolt) Upsert(ctx context.Context, rec entity.UserCredential) (err error) {
	_, span := b.span.start(ctx, "Upsert")
	defer func() { b.span.end(span, err) }()

	if err := checkRecord(rec); err != nil {
		return err
	}

	data, err := json.Marshal(boltDocument{
		Digest:     rec.Digest,
		Salt:       rec.Salt,
		Scheme:     rec.Scheme,
		EnrolledAt: rec.EnrolledAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("bolt: encode %q: %w", rec.Username, err)
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCredentials).Put([]byte(rec.Username), data)
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
