package loginject

import (
	"context"
	"log/slog"
	"reflect"
	"time"
)

// Observer pattern

// ResolveEvent is a read-only snapshot of one Resolve call.
type ResolveEvent struct {
	At             time.Time
	LoggerType     reflect.Type
	Classification Classification
	BindingType    reflect.Type
	Adapter        string // dynamic type of the selected adapter; empty when none matched
	Candidates     int    // adapters registered against LoggerType
	Err            error
}

// Observer receives resolution events.
// Implementations MUST be concurrency-safe.
type Observer interface {
	OnResolve(e ResolveEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ResolveEvent)

func (f ObserverFunc) OnResolve(e ResolveEvent) { f(e) }

// SlogObserver logs every resolution to l: Debug on success, Warn on failure.
func SlogObserver(l *slog.Logger) Observer {
	if l == nil {
		l = slog.Default()
	}
	return ObserverFunc(func(e ResolveEvent) {
		attrs := []slog.Attr{
			slog.Time("at", e.At),
			slog.String("logger_type", typeString(e.LoggerType)),
			slog.String("classification", e.Classification.String()),
			slog.String("binding_type", typeString(e.BindingType)),
			slog.Int("candidates", e.Candidates),
		}
		if e.Adapter != "" {
			attrs = append(attrs, slog.String("adapter", e.Adapter))
		}
		if e.Err != nil {
			attrs = append(attrs, slog.Any("err", e.Err))
			l.LogAttrs(context.Background(), slog.LevelWarn, "loginject: resolve failed", attrs...)
			return
		}
		l.LogAttrs(context.Background(), slog.LevelDebug, "loginject: resolved", attrs...)
	})
}
