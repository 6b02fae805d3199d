// Package tracing wraps the unit of work and the locker in OpenTelemetry
// spans. Without a configured tracer provider the spans are no-ops.
package tracing

import (
	"context"

	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/lock"
	"github.com/amirasaad/agribank/pkg/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans created by this module.
const InstrumentationName = "github.com/amirasaad/agribank"

// Tracer returns the tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// HandleSpanError marks the span failed. Domain errors are expected
// outcomes (insufficient funds, forbidden) and are recorded as an event
// without failing the span.
func HandleSpanError(span trace.Span, message string, err error) {
	if err == nil {
		return
	}
	if kind := domain.Kind(err); kind != "internal" {
		span.AddEvent("business_error", trace.WithAttributes(
			attribute.String("error.kind", kind),
			attribute.String("error", err.Error()),
		))
		return
	}
	span.SetStatus(codes.Error, message+": "+err.Error())
	span.RecordError(err)
}

// UnitOfWork starts a span around every transaction.
type UnitOfWork struct {
	repository.UnitOfWork
	tracer trace.Tracer
}

// NewUnitOfWork wraps inner.
func NewUnitOfWork(inner repository.UnitOfWork, tracer trace.Tracer) *UnitOfWork {
	return &UnitOfWork{UnitOfWork: inner, tracer: tracer}
}

// Do implements repository.UnitOfWork.
func (u *UnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	ctx, span := u.tracer.Start(ctx, "uow.do")
	defer span.End()

	err := u.UnitOfWork.Do(ctx, fn)
	HandleSpanError(span, "transaction failed", err)
	return err
}

// Locker starts a span around every lock acquisition.
type Locker struct {
	inner  lock.Locker
	tracer trace.Tracer
}

// NewLocker wraps inner.
func NewLocker(inner lock.Locker, tracer trace.Tracer) *Locker {
	return &Locker{inner: inner, tracer: tracer}
}

// Lock implements lock.Locker.
func (l *Locker) Lock(ctx context.Context, keys ...string) (lock.Unlock, error) {
	ctx, span := l.tracer.Start(ctx, "lock.acquire", trace.WithAttributes(
		attribute.StringSlice("lock.keys", lock.Keys(keys...)),
	))
	defer span.End()

	unlock, err := l.inner.Lock(ctx, keys...)
	if err != nil {
		span.SetStatus(codes.Error, "failed to acquire lock: "+err.Error())
		span.RecordError(err)
		return nil, err
	}
	return unlock, nil
}
