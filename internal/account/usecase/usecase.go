package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/passlab/internal/account/entity"
	"github.com/shandysiswandi/passlab/internal/account/scheme"
	"github.com/shandysiswandi/passlab/internal/pkg/clock"
	"github.com/shandysiswandi/passlab/internal/pkg/instrument"
	"github.com/shandysiswandi/passlab/internal/pkg/validator"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Outcome labels recorded on the account counters.
const (
	outcomeSuccess = "success"
	outcomeAbsent  = "absent"
	outcomeInvalid = "invalid"
	outcomeFailure = "failure"
)

type repoStore interface {
	FindOne(ctx context.Context, filter entity.Filter) (*entity.UserCredential, error)
	Upsert(ctx context.Context, rec entity.UserCredential) error
}

type Usecase struct {
	store     repoStore
	schemes   *scheme.Registry
	validator validator.Validator
	clock     clock.Clocker
	ins       instrument.Instrumentation

	enrollCounter metric.Int64Counter
	authCounter   metric.Int64Counter
}

type Dependency struct {
	Store      repoStore
	Schemes    *scheme.Registry
	Validator  validator.Validator
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	meter := dep.Instrument.Meter("account.usecase")

	// The SDK hands back a usable no-op instrument alongside any error.
	enrollCounter, err := meter.Int64Counter("account.enroll.total",
		metric.WithDescription("Enrollments by scheme and outcome"))
	if err != nil {
		slog.Warn("failed to create enroll counter", "error", err)
	}

	authCounter, err := meter.Int64Counter("account.authenticate.total",
		metric.WithDescription("Authentications by outcome"))
	if err != nil {
		slog.Warn("failed to create authenticate counter", "error", err)
	}

	return &Usecase{
		store:         dep.Store,
		schemes:       dep.Schemes,
		validator:     dep.Validator,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		enrollCounter: enrollCounter,
		authCounter:   authCounter,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}

func (s *Usecase) count(ctx context.Context, c metric.Int64Counter, attrs ...attribute.KeyValue) {
	if c == nil {
		return
	}
	c.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// SchemesOutput lists the schemes an account can be enrolled with.
type SchemesOutput struct {
	Names   []string
	Default string
}

func (s *Usecase) Schemes(context.Context) SchemesOutput {
	return SchemesOutput{Names: s.schemes.Names(), Default: s.schemes.Default()}
}
