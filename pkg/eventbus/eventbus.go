package eventbus

import (
	"context"
	"log/slog"

	"github.com/amirasaad/agribank/pkg/domain/events"
)

// HandlerFunc handles one event.
type HandlerFunc func(ctx context.Context, e events.Event) error

// Bus defines the contract for publishing and subscribing to domain events.
type Bus interface {
	Register(eventType string, handler HandlerFunc)
	Emit(ctx context.Context, e events.Event) error
}

// EmitAll publishes evts in order. Operations call it after their unit of
// work has committed, so a failure here is logged and never returned.
func EmitAll(ctx context.Context, bus Bus, logger *slog.Logger, evts ...events.Event) {
	if bus == nil {
		return
	}
	for _, e := range evts {
		if err := bus.Emit(ctx, e); err != nil {
			logger.Error("failed to publish event", "type", e.Type(), "error", err)
		}
	}
}
