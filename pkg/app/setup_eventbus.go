package app

import (
	"log/slog"

	"github.com/amirasaad/agribank/pkg/handler/audit"
)

// setupEventBus registers all event handlers with the configured bus.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	logger := a.Deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	audit.Register(bus, logger)
}
