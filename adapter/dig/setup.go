package digadapter

import (
	"go.uber.org/dig"

	"github.com/trickstertwo/loginject"
)

// Config is an explicit, code-first configuration for a dig container whose
// constructors receive context-aware loggers.
// No envs, no hidden init, one call to Use.
type Config struct {
	Spec             *loginject.Spec
	Container        *dig.Container // default: dig.New(ContainerOptions...)
	ContainerOptions []dig.Option
	Constructors     []any
	Decorators       []any
}

// Use resolves a Binder for cfg.Spec through the spec's registry, provides
// the constructors, installs the decorators and returns the container.
func Use(cfg Config) (*dig.Container, error) {
	if cfg.Spec == nil {
		return nil, &loginject.ConfigurationError{Reason: "digadapter: Config.Spec is nil"}
	}
	b, err := loginject.As[*Binder](cfg.Spec)
	if err != nil {
		return nil, err
	}
	c := cfg.Container
	if c == nil {
		c = dig.New(cfg.ContainerOptions...)
	}
	if err := b.ProvideAll(c, cfg.Constructors...); err != nil {
		return nil, err
	}
	for _, d := range cfg.Decorators {
		if err := b.Decorate(c, d); err != nil {
			return nil, err
		}
	}
	return c, nil
}
