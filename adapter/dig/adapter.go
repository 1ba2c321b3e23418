package digadapter

import (
	"errors"
	"fmt"

	"go.uber.org/dig"

	"github.com/trickstertwo/loginject"
	"github.com/trickstertwo/loginject/internal/wiring"
)

// Adapter resolves *Binder artifacts for go.uber.org/dig.
type Adapter struct {
	loginject.Produces
}

// NewAdapter returns the adapter registered by this package's init.
func NewAdapter() Adapter {
	return Adapter{Produces: loginject.ProducesType[*Binder]()}
}

func (Adapter) Bindings(s *loginject.Spec) (any, error) {
	if s == nil {
		return nil, errors.New("digadapter: nil spec")
	}
	return NewBinder(s), nil
}

// Container is the part of *dig.Container and *dig.Scope a Binder uses.
type Container interface {
	Provide(constructor any, opts ...dig.ProvideOption) error
	Decorate(decorator any, opts ...dig.DecorateOption) error
}

// Binder installs constructors whose logger parameters are satisfied with a
// logger created for the type the constructor returns.
//
//	binder := loginject.MustAs[*digadapter.Binder](spec)
//	_ = binder.Provide(c, NewService) // func NewService(db *DB, log *zap.Logger) *Service
type Binder struct {
	spec  *loginject.Spec
	match wiring.Matcher
}

// NewBinder returns a Binder for s. Most callers resolve one through
// loginject.As instead.
func NewBinder(s *loginject.Spec) *Binder {
	return &Binder{spec: s, match: wiring.MatcherFor(s)}
}

// Spec returns the spec loggers are created from.
func (b *Binder) Spec() *loginject.Spec { return b.spec }

// Wrap returns ctor rewritten for injection. See wiring.Rewrite.
func (b *Binder) Wrap(ctor any) (any, error) {
	c, err := wiring.Rewrite(b.spec, ctor, b.match)
	if err != nil {
		return nil, err
	}
	return c.Func, nil
}

// Provide wraps ctor and provides it to c.
func (b *Binder) Provide(c Container, ctor any, opts ...dig.ProvideOption) error {
	fn, err := b.Wrap(ctor)
	if err != nil {
		return err
	}
	return c.Provide(fn, opts...)
}

// ProvideAll provides every constructor, stopping at the first failure.
func (b *Binder) ProvideAll(c Container, ctors ...any) error {
	for i, ctor := range ctors {
		if err := b.Provide(c, ctor); err != nil {
			return fmt.Errorf("digadapter: constructor %d: %w", i, err)
		}
	}
	return nil
}

// Decorate wraps decorator and installs it on c. The injection context of a
// decorator is the type it decorates.
func (b *Binder) Decorate(c Container, decorator any, opts ...dig.DecorateOption) error {
	fn, err := b.Wrap(decorator)
	if err != nil {
		return err
	}
	return c.Decorate(fn, opts...)
}
