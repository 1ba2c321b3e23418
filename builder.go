package loginject

import "reflect"

// Config for constructing a Spec (Factory data structure).
type Config struct {
	LoggerType reflect.Type // optional; defaults to the factory's result type
	Factory    Factory
	Parameters []Descriptor
	Infer      bool      // learn LoggerType from a probe call; LoggerType must be nil
	Registry   *Registry // optional; defaults to DefaultRegistry()
}

// Builder separates construction from representation (Builder pattern).
type Builder struct {
	cfg Config
	err error
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithLoggerType(t reflect.Type) *Builder {
	b.cfg.LoggerType = t
	return b
}

func (b *Builder) WithFactory(f Factory) *Builder {
	b.cfg.Factory = f
	return b
}

// WithFactoryFunc accepts any function FactoryOf accepts. A bad shape is
// reported by Build.
func (b *Builder) WithFactoryFunc(fn any) *Builder {
	f, err := FactoryOf(fn)
	if err != nil && b.err == nil {
		b.err = err
	}
	b.cfg.Factory = f
	return b
}

func (b *Builder) WithParameters(params ...Descriptor) *Builder {
	b.cfg.Parameters = append(b.cfg.Parameters, params...)
	return b
}

func (b *Builder) Infer() *Builder {
	b.cfg.Infer = true
	return b
}

func (b *Builder) WithRegistry(r *Registry) *Builder {
	b.cfg.Registry = r
	return b
}

// Build constructs the Spec (Factory + Builder).
func (b *Builder) Build() (*Spec, error) {
	if b.err != nil {
		return nil, b.err
	}
	return FromConfig(b.cfg)
}

// FromConfig constructs the Spec described by cfg.
func FromConfig(cfg Config) (*Spec, error) {
	var (
		s   *Spec
		err error
	)
	switch {
	case cfg.Infer && cfg.LoggerType != nil:
		return nil, configErrorf("an inferred spec cannot also declare its logger type %s", typeString(cfg.LoggerType))
	case cfg.Infer:
		s, err = Infer(cfg.Factory, cfg.Parameters...)
	default:
		lt := cfg.LoggerType
		if lt == nil && cfg.Factory.valid() {
			lt = cfg.Factory.Out()
		}
		s, err = New(lt, cfg.Factory, cfg.Parameters...)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Registry != nil {
		s.registry = cfg.Registry
	}
	return s, nil
}
