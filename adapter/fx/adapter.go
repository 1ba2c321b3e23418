package fxadapter

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/trickstertwo/loginject"
	"github.com/trickstertwo/loginject/internal/wiring"
)

// Adapter resolves *Module artifacts for go.uber.org/fx.
type Adapter struct {
	loginject.Produces
}

// NewAdapter returns the adapter registered by this package's init.
func NewAdapter() Adapter {
	return Adapter{Produces: loginject.ProducesType[*Module]()}
}

func (Adapter) Bindings(s *loginject.Spec) (any, error) {
	if s == nil {
		return nil, errors.New("fxadapter: nil spec")
	}
	return NewModule(s), nil
}

// Module turns constructors into fx options whose logger parameters are
// satisfied with a logger created for the type each constructor returns.
//
//	m := loginject.MustAs[*fxadapter.Module](spec)
//	app := fx.New(m.Provide(NewServer, NewStore), fx.Invoke(Run))
type Module struct {
	spec  *loginject.Spec
	match wiring.Matcher
}

// NewModule returns a Module for s.
func NewModule(s *loginject.Spec) *Module {
	return &Module{spec: s, match: wiring.MatcherFor(s)}
}

// Spec returns the spec loggers are created from.
func (m *Module) Spec() *loginject.Spec { return m.spec }

// Provide is fx.Provide over the rewritten constructors. Values that are not
// functions, such as fx.Annotate results, are passed through unchanged.
func (m *Module) Provide(ctors ...any) fx.Option {
	fns, err := m.wrap(ctors)
	if err != nil {
		return fx.Error(err)
	}
	return fx.Provide(fns...)
}

// Decorate is fx.Decorate over the rewritten decorators.
func (m *Module) Decorate(decorators ...any) fx.Option {
	fns, err := m.wrap(decorators)
	if err != nil {
		return fx.Error(err)
	}
	return fx.Decorate(fns...)
}

// Named groups the rewritten constructors in an fx.Module.
func (m *Module) Named(name string, ctors ...any) fx.Option {
	return fx.Module(name, m.Provide(ctors...))
}

// EventLogger routes fx's own lifecycle events to a logger created for
// fx.App. The logger must be a *zap.Logger or implement fxevent.Logger.
func (m *Module) EventLogger() fx.Option {
	l, err := m.spec.CreateLogger(reflect.TypeFor[fx.App]())
	if err != nil {
		return fx.Error(err)
	}
	switch l := l.(type) {
	case *zap.Logger:
		return fx.WithLogger(func() fxevent.Logger { return &fxevent.ZapLogger{Logger: l} })
	case fxevent.Logger:
		return fx.WithLogger(func() fxevent.Logger { return l })
	default:
		return fx.Error(fmt.Errorf("fxadapter: %T cannot log fx events", l))
	}
}

func (m *Module) wrap(ctors []any) ([]any, error) {
	out := make([]any, len(ctors))
	for i, ctor := range ctors {
		if v := reflect.ValueOf(ctor); !v.IsValid() || v.Kind() != reflect.Func {
			out[i] = ctor
			continue
		}
		c, err := wiring.Rewrite(m.spec, ctor, m.match)
		if err != nil {
			return nil, fmt.Errorf("fxadapter: constructor %d: %w", i, err)
		}
		out[i] = c.Func
	}
	return out, nil
}
