package zerologbackend

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/loginject"
)

// Config is an explicit, code-first configuration for zerolog.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer             io.Writer // default: os.Stdout
	MinLevel           zerolog.Level
	Console            bool   // pretty console output instead of JSON
	ConsoleTimeFormat  string // only used if Console==true; default time.RFC3339Nano
	Caller             bool   // include caller in logs
	CallerSkip         int    // frames to skip; default zerolog's own
	TimestampFieldName string // default "ts"
	ComponentKey       string // default "component"
}

// New builds the base logger described by cfg. Timestamps come from
// xclock.Now, so frozen/offset clocks are respected.
//
// zerolog keeps its timestamp settings in package variables; New sets them.
func New(cfg Config) zerolog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.TimestampFieldName == "" {
		cfg.TimestampFieldName = "ts"
	}
	zerolog.TimestampFieldName = cfg.TimestampFieldName
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFunc = xclock.Now

	var zl zerolog.Logger
	if cfg.Console {
		cw := zerolog.ConsoleWriter{Out: w}
		if cfg.ConsoleTimeFormat == "" {
			cw.TimeFormat = time.RFC3339Nano
		} else {
			cw.TimeFormat = cfg.ConsoleTimeFormat
		}
		if !cfg.Caller {
			cw.PartsExclude = append(cw.PartsExclude, zerolog.CallerFieldName)
		}
		zl = zerolog.New(cw)
	} else {
		zl = zerolog.New(w)
	}
	zl = zl.Level(cfg.MinLevel).With().Timestamp().Logger()

	if cfg.Caller {
		if cfg.CallerSkip > 0 {
			zerolog.CallerSkipFrameCount = cfg.CallerSkip
		}
		zl = zl.With().Caller().Logger()
	}
	return zl
}

// Use builds the base logger and returns a spec producing a child logger
// tagged with the injection context under cfg.ComponentKey.
func Use(cfg Config) *loginject.Spec {
	return Spec(New(cfg), cfg.ComponentKey)
}

// Spec returns a spec producing base with key set to the fully-qualified
// name of the injection context. An empty key means "component".
func Spec(base zerolog.Logger, key string) *loginject.Spec {
	if key == "" {
		key = "component"
	}
	return loginject.Declare1(func(name string) zerolog.Logger {
		return base.With().Str(key, name).Logger()
	}, loginject.CurrentClassName())
}
