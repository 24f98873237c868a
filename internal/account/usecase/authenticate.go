package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/passlab/internal/account/entity"
	"github.com/shandysiswandi/passlab/internal/pkg/goerror"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type AuthenticateInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Authenticate returns the account when the password matches the stored
// record. Unknown users and wrong passwords both yield (nil, nil).
func (s *Usecase) Authenticate(ctx context.Context, in AuthenticateInput) (*entity.Account, error) {
	ctx, span := s.startSpan(ctx, "Authenticate")
	defer span.End()

	outcome := outcomeFailure
	defer func() { s.count(ctx, s.authCounter, attribute.String("outcome", outcome)) }()

	if err := s.validator.Validate(in); err != nil {
		outcome = outcomeInvalid
		return nil, goerror.NewInvalidInput(err)
	}

	rec, err := s.store.FindOne(ctx, entity.ByUsername(in.Username))
	if errors.Is(err, goerror.ErrNotFound) {
		outcome = outcomeAbsent
		slog.InfoContext(ctx, "user credential not found", "username", in.Username)
		return nil, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to find user credential", "username", in.Username, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, goerror.NewUnavailable(err)
	}

	// Records written before schemes were tracked carry no scheme name and
	// resolve to the default.
	sch, err := s.schemes.Get(rec.Scheme)
	if err != nil {
		outcome = outcomeAbsent
		slog.WarnContext(ctx, "stored credential uses unknown scheme", "username", in.Username, "scheme", rec.Scheme)
		return nil, nil
	}

	if !sch.Verify(in.Password, rec.StoredForm()) {
		outcome = outcomeAbsent
		slog.InfoContext(ctx, "password does not match", "username", in.Username, "scheme", sch.Name())
		return nil, nil
	}

	outcome = outcomeSuccess
	return &entity.Account{Username: rec.Username}, nil
}
