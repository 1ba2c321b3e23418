package slogbackend

import (
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/loginject"
)

// Format selects the slog handler format.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatText
)

// Config is an explicit, code-first configuration for slog.
type Config struct {
	Writer             io.Writer            // default: os.Stdout
	MinLevel           slog.Level           // applied through a LevelVar
	Format             Format               // JSON (default) or Text
	HandlerOptions     *slog.HandlerOptions // optional; Level is managed by New
	TimestampFieldName string               // default "ts"
	ComponentKey       string               // default "component"
}

// New builds the base logger described by cfg and the LevelVar controlling
// it. The record time is replaced by xclock.Now under TimestampFieldName.
func New(cfg Config) (*slog.Logger, *slog.LevelVar) {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.TimestampFieldName == "" {
		cfg.TimestampFieldName = "ts"
	}
	opts := slog.HandlerOptions{}
	if cfg.HandlerOptions != nil {
		opts = *cfg.HandlerOptions
	}

	lv := new(slog.LevelVar)
	lv.Set(cfg.MinLevel)
	opts.Level = lv

	replace := opts.ReplaceAttr
	tsKey := cfg.TimestampFieldName
	opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 && a.Key == slog.TimeKey {
			a = slog.Time(tsKey, xclock.Now())
		}
		if replace != nil {
			return replace(groups, a)
		}
		return a
	}

	var h slog.Handler
	if cfg.Format == 0 || cfg.Format == FormatJSON {
		h = slog.NewJSONHandler(w, &opts)
	} else {
		h = slog.NewTextHandler(w, &opts)
	}
	return slog.New(h), lv
}

// Use builds the base logger and returns a spec producing a child logger
// tagged with the injection context under cfg.ComponentKey.
func Use(cfg Config) *loginject.Spec {
	l, _ := New(cfg)
	return Spec(l, cfg.ComponentKey)
}

// Spec returns a spec producing base.With(key, T) for every injection
// context T. An empty key means "component".
func Spec(base *slog.Logger, key string) *loginject.Spec {
	if base == nil {
		base = slog.Default()
	}
	if key == "" {
		key = "component"
	}
	return loginject.Declare1(func(name string) *slog.Logger {
		return base.With(key, name)
	}, loginject.CurrentClassName())
}
