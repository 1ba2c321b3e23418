package fxadapter

import (
	"go.uber.org/fx"

	"github.com/trickstertwo/loginject"
)

// Config is an explicit, code-first configuration for an fx application
// whose constructors receive context-aware loggers.
// No envs, no hidden init, one call to Use.
type Config struct {
	Spec         *loginject.Spec
	Name         string // optional; wraps everything in fx.Module(Name, ...)
	Constructors []any
	Decorators   []any
	Invokes      []any
	EventLogger  bool // route fx lifecycle events through a logger for fx.App
}

// Use resolves a Module for cfg.Spec through the spec's registry and returns
// the options describing cfg. Failures surface through fx.Error when the
// application is built.
func Use(cfg Config) fx.Option {
	if cfg.Spec == nil {
		return fx.Error(&loginject.ConfigurationError{Reason: "fxadapter: Config.Spec is nil"})
	}
	m, err := loginject.As[*Module](cfg.Spec)
	if err != nil {
		return fx.Error(err)
	}
	opts := []fx.Option{m.Provide(cfg.Constructors...)}
	if len(cfg.Decorators) > 0 {
		opts = append(opts, m.Decorate(cfg.Decorators...))
	}
	if len(cfg.Invokes) > 0 {
		opts = append(opts, fx.Invoke(cfg.Invokes...))
	}
	if cfg.EventLogger {
		opts = append(opts, m.EventLogger())
	}
	if cfg.Name != "" {
		return fx.Module(cfg.Name, opts...)
	}
	return fx.Options(opts...)
}
