package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/passlab/internal/account"
)

func (a *App) initModules() {
	if _, err := account.New(account.Dependency{
		Store:      a.store,
		Schemes:    a.schemes,
		Router:     a.router,
		Instrument: a.ins,
		Clock:      a.clock,
		Validator:  a.validator,
	}); err != nil {
		slog.Error("failed to init module account", "error", err)
		os.Exit(1)
	}
}
