// Package account wires the credential verifier to its store and HTTP endpoints.
package account

import (
	"github.com/shandysiswandi/passlab/internal/account/inbound"
	"github.com/shandysiswandi/passlab/internal/account/outbound/store"
	"github.com/shandysiswandi/passlab/internal/account/scheme"
	"github.com/shandysiswandi/passlab/internal/account/usecase"
	"github.com/shandysiswandi/passlab/internal/pkg/clock"
	"github.com/shandysiswandi/passlab/internal/pkg/instrument"
	"github.com/shandysiswandi/passlab/internal/pkg/router"
	"github.com/shandysiswandi/passlab/internal/pkg/validator"
)

type Dependency struct {
	Store      store.Store                `validate:"required"`
	Schemes    *scheme.Registry           `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) (*usecase.Usecase, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	uc := usecase.New(usecase.Dependency{
		Store:      dep.Store,
		Schemes:    dep.Schemes,
		Validator:  dep.Validator,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return uc, nil
}
