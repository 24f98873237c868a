package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/passlab/internal/account/entity"
	"github.com/shandysiswandi/passlab/internal/account/scheme"
	"github.com/shandysiswandi/passlab/internal/pkg/goerror"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type EnrollInput struct {
	Username string `validate:"required,username"`
	Password string `validate:"required"`

	// Scheme is empty for the default scheme.
	Scheme string
}

// Enroll derives a verifier for the password and stores it under the
// username, replacing any earlier record. The returned record holds the
// stored form, never the password.
func (s *Usecase) Enroll(ctx context.Context, in EnrollInput) (*entity.UserCredential, error) {
	ctx, span := s.startSpan(ctx, "Enroll")
	defer span.End()

	outcome := outcomeFailure
	schemeName := in.Scheme
	defer func() {
		s.count(ctx, s.enrollCounter,
			attribute.String("scheme", schemeName),
			attribute.String("outcome", outcome))
	}()

	if err := s.validator.Validate(in); err != nil {
		outcome = outcomeInvalid
		return nil, goerror.NewInvalidInput(err)
	}

	sch, err := s.schemes.Get(in.Scheme)
	if err != nil {
		outcome = outcomeInvalid
		slog.WarnContext(ctx, "enrollment requested unknown scheme", "username", in.Username, "scheme", in.Scheme)
		return nil, goerror.NewInvalidInput(nil, "scheme", "scheme is not supported")
	}
	schemeName = sch.Name()

	stored, err := sch.Derive(in.Password)
	if errors.Is(err, scheme.ErrPasswordTooLong) {
		outcome = outcomeInvalid
		return nil, goerror.NewInvalidInput(nil, "password", "password is too long for scheme "+schemeName)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to derive stored form", "username", in.Username, "scheme", schemeName, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, goerror.NewServer(err)
	}

	rec := entity.UserCredential{
		Username:   in.Username,
		Digest:     stored.Digest,
		Salt:       stored.Salt,
		Scheme:     schemeName,
		EnrolledAt: s.clock.Now(),
	}

	if err := s.store.Upsert(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to store user credential", "username", in.Username, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, goerror.NewUnavailable(err)
	}

	outcome = outcomeSuccess
	slog.InfoContext(ctx, "user enrolled", "username", in.Username, "scheme", schemeName)

	return &rec, nil
}
