package signal

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/streamkit/disposable"
	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/observability"
)

// LogEvents passes s through unchanged while logging every subscription
// event at debug level. Each subscription is tagged with a fresh
// subscription ID. A nil log falls back to the registered "signal" logger.
func LogEvents[V, E any](s Signal[V, E], log *logger.Logger, name string) Signal[V, E] {
	return New(func(obs Observer[V, E]) disposable.Disposable {
		l := log
		if l == nil {
			l = logger.Get("signal")
		}
		sub := uuid.NewString()
		fields := logger.Fields(logger.FieldSignal, name, logger.FieldSubscriptionID, sub)

		l.Debug("signal subscribed", fields)
		d := s.Subscribe(Callbacks[V, E]{
			OnNext: func(v V) {
				l.Debug("signal value", fields, logger.Fields("value", v))
				obs.Next(v)
			},
			OnFail: func(e E) {
				l.Debug("signal failed", fields, logger.Fields(logger.FieldError, fmt.Sprint(e)))
				obs.Fail(e)
			},
			OnComplete: func() {
				l.Debug("signal completed", fields)
				obs.Complete()
			},
		})
		return disposable.Func(func() {
			l.Debug("signal disposed", fields)
			d.Dispose()
		})
	})
}

// Metered passes s through unchanged while recording subscription activity
// on m: active subscriptions, delivered values, and how each subscription
// ended (failure, completion, or disposal before a terminal event).
func Metered[V, E any](s Signal[V, E], m *observability.StreamMetrics, name string) Signal[V, E] {
	return New(func(obs Observer[V, E]) disposable.Disposable {
		ctx := context.Background()
		settled := new(atomic.Bool)

		m.RecordSubscribe(ctx, name)
		d := s.Subscribe(Callbacks[V, E]{
			OnNext: func(v V) {
				m.RecordValue(ctx, name)
				obs.Next(v)
			},
			OnFail: func(e E) {
				if !settled.Swap(true) {
					m.RecordFailure(ctx, name)
				}
				obs.Fail(e)
			},
			OnComplete: func() {
				if !settled.Swap(true) {
					m.RecordCompletion(ctx, name)
				}
				obs.Complete()
			},
		})
		return disposable.Func(func() {
			if !settled.Swap(true) {
				m.RecordDisposal(ctx, name)
			}
			d.Dispose()
		})
	})
}

// Traced passes s through unchanged, opening one span per subscription and
// ending it at the terminal event or on disposal. Failures set the span's
// error status.
func Traced[V, E any](s Signal[V, E], tracer trace.Tracer, spanName string) Signal[V, E] {
	return New(func(obs Observer[V, E]) disposable.Disposable {
		_, span := tracer.Start(context.Background(), spanName)
		var values atomic.Int64

		end := func() {
			span.SetAttributes(attribute.Int64("signal.values", values.Load()))
			span.End()
		}

		d := s.Subscribe(Callbacks[V, E]{
			OnNext: func(v V) {
				values.Add(1)
				obs.Next(v)
			},
			OnFail: func(e E) {
				span.SetStatus(codes.Error, fmt.Sprint(e))
				end()
				obs.Fail(e)
			},
			OnComplete: func() {
				span.SetStatus(codes.Ok, "")
				end()
				obs.Complete()
			},
		})
		return disposable.Func(func() {
			span.AddEvent("disposed")
			end()
			d.Dispose()
		})
	})
}
