// Package audit writes one structured log line for every committed domain
// event, giving operators a trail of money movement and staffing changes.
package audit

import (
	"context"
	"log/slog"

	"github.com/amirasaad/agribank/pkg/domain/events"
	"github.com/amirasaad/agribank/pkg/eventbus"
)

// Register subscribes the audit handler to every known event type.
func Register(bus eventbus.Bus, logger *slog.Logger) {
	h := Handle(logger)
	for eventType := range events.Factories() {
		bus.Register(eventType, h)
	}
}

// Handle returns a handler that logs the event's identifying fields. Events
// decoded from a stream arrive as pointers; both forms are accepted.
func Handle(logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		log := logger.With("handler", "audit", "event_type", e.Type())
		attrs, ok := attributes(e)
		if !ok {
			log.Debug("🚫 [SKIP] unknown event")
			return nil
		}
		log.InfoContext(ctx, "📝 [AUDIT] event committed", attrs...)
		return nil
	}
}

func attributes(e events.Event) ([]any, bool) {
	switch evt := e.(type) {
	case *events.TransactionRecorded:
		return attributes(*evt)
	case *events.CommissionAccrued:
		return attributes(*evt)
	case *events.LoanApplicationResolved:
		return attributes(*evt)
	case *events.LoanFunded:
		return attributes(*evt)
	case *events.LoanPaidOff:
		return attributes(*evt)
	case *events.PersonnelActionResolved:
		return attributes(*evt)

	case events.TransactionRecorded:
		return []any{
			"transaction_id", evt.TransactionID,
			"kind", evt.Kind,
			"amount", evt.Amount.StringFixed(2),
			"commission", evt.Commission.StringFixed(2),
			"executor_id", evt.ExecutorID,
			"occurred_at", evt.OccurredAt,
		}, true
	case events.CommissionAccrued:
		return []any{
			"commission_id", evt.CommissionID,
			"collaborator_id", evt.CollaboratorID,
			"transaction_id", evt.TransactionID,
			"amount", evt.Amount.StringFixed(2),
			"occurred_at", evt.OccurredAt,
		}, true
	case events.LoanApplicationResolved:
		return []any{
			"application_id", evt.ApplicationID,
			"customer_id", evt.CustomerID,
			"status", evt.Status,
			"resolved_by", evt.ResolvedBy,
			"occurred_at", evt.OccurredAt,
		}, true
	case events.LoanFunded:
		return []any{
			"loan_id", evt.LoanID,
			"application_id", evt.ApplicationID,
			"account_id", evt.AccountID,
			"amount", evt.Amount.StringFixed(2),
			"occurred_at", evt.OccurredAt,
		}, true
	case events.LoanPaidOff:
		return []any{
			"loan_id", evt.LoanID,
			"customer_id", evt.CustomerID,
			"occurred_at", evt.OccurredAt,
		}, true
	case events.PersonnelActionResolved:
		return []any{
			"action_id", evt.ActionID,
			"employee_id", evt.EmployeeID,
			"action", evt.Action,
			"status", evt.Status,
			"resolved_by", evt.ResolvedBy,
			"occurred_at", evt.OccurredAt,
		}, true
	default:
		return nil, false
	}
}
