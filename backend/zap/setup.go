package zapbackend

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/loginject"
	"github.com/trickstertwo/xclock"
)

// Config is an explicit, code-first configuration for zap.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer             io.Writer // default: os.Stdout
	MinLevel           zapcore.Level
	Console            bool                  // pretty console-like output via zapcore.NewConsoleEncoder
	EncoderConfig      zapcore.EncoderConfig // if zero, a sensible default is used
	Caller             bool                  // include caller in logs
	CallerSkip         int                   // frames to skip when resolving caller
	TimestampFieldName string                // default "ts"
}

// New builds the base logger described by cfg. Timestamps come from
// xclock.Default(), so frozen/offset clocks are respected.
func New(cfg Config) *zap.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.TimestampFieldName == "" {
		cfg.TimestampFieldName = "ts"
	}

	encCfg := cfg.EncoderConfig
	if encCfg.LevelKey == "" && encCfg.MessageKey == "" && encCfg.EncodeTime == nil {
		encCfg = zapcore.EncoderConfig{
			TimeKey:        cfg.TimestampFieldName,
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "message",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			CallerKey:      "caller",
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}
	}

	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(cfg.MinLevel))

	opts := []zap.Option{
		zap.WithClock(clock{}),
		zap.AddStacktrace(zapcore.FatalLevel + 1), // effectively off for normal levels
	}
	if cfg.Caller {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(cfg.CallerSkip))
	}
	return zap.New(core, opts...)
}

// Use builds the base logger and returns a spec producing base.Named(T) for
// every injection context T.
func Use(cfg Config) *loginject.Spec {
	return Spec(New(cfg))
}

// Spec returns a spec producing base.Named(T) for every injection context T.
func Spec(base *zap.Logger) *loginject.Spec {
	if base == nil {
		base = zap.NewNop()
	}
	return loginject.Declare1(base.Named, loginject.CurrentClassName())
}

// clock reads the process clock of xclock.
type clock struct{}

func (clock) Now() time.Time                         { return xclock.Now() }
func (clock) NewTicker(d time.Duration) *time.Ticker { return time.NewTicker(d) }
