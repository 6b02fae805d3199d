// Package app assembles the back-office services from infrastructure
// dependencies.
package app

import (
	"github.com/amirasaad/agribank/pkg/config"
	"github.com/amirasaad/agribank/pkg/service/ledger"
	"github.com/amirasaad/agribank/pkg/service/loan"
	"github.com/amirasaad/agribank/pkg/service/personnel"
)

type App struct {
	Deps             config.Deps
	LedgerService    *ledger.Service
	LoanService      *loan.Service
	PersonnelService *personnel.Service
}

// New builds every service over the same unit of work, locker and bus, then
// registers the event handlers.
func New(deps config.Deps) *App {
	app := &App{Deps: deps}
	app.setupEventBus()

	app.LedgerService = ledger.NewService(deps)
	app.LoanService = loan.NewService(deps)
	app.PersonnelService = personnel.NewService(deps)
	return app
}
