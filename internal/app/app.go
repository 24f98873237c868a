// Package app builds the passlab service from configuration and runs it.
package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/passlab/internal/account/outbound/store"
	"github.com/shandysiswandi/passlab/internal/account/scheme"
	"github.com/shandysiswandi/passlab/internal/pkg/clock"
	"github.com/shandysiswandi/passlab/internal/pkg/config"
	"github.com/shandysiswandi/passlab/internal/pkg/hash"
	"github.com/shandysiswandi/passlab/internal/pkg/instrument"
	"github.com/shandysiswandi/passlab/internal/pkg/router"
	"github.com/shandysiswandi/passlab/internal/pkg/uid"
	"github.com/shandysiswandi/passlab/internal/pkg/validator"
)

type closer struct {
	name string
	fn   func(context.Context) error
}

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID
	salt      hash.SaltSource
	schemes   *scheme.Registry

	// resources
	store store.Store

	// server
	router     *router.Router
	httpServer *http.Server

	closers []closer
}

// New initializes the application with default wiring and returns an App instance.
// Any failure is fatal.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initSchemes()
	app.initStore()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
