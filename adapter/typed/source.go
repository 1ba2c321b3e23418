package typed

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/trickstertwo/loginject"
	"github.com/trickstertwo/loginject/typeset"
)

// Adapter resolves *Source artifacts.
type Adapter struct {
	loginject.Produces
}

// NewAdapter returns the adapter registered by this package's init.
func NewAdapter() Adapter {
	return Adapter{Produces: loginject.ProducesType[*Source]()}
}

func (Adapter) Bindings(s *loginject.Spec) (any, error) {
	if s == nil {
		return nil, errors.New("typed: nil spec")
	}
	return NewSource(s), nil
}

// Source creates loggers for explicitly named types.
//
//	src := loginject.MustAs[*typed.Source](spec)
//	log := typed.MustGet[logr.Logger, Server](src)
type Source struct {
	spec *loginject.Spec
}

// NewSource returns a Source for s.
func NewSource(s *loginject.Spec) *Source { return &Source{spec: s} }

// Spec returns the spec loggers are created from.
func (src *Source) Spec() *loginject.Spec { return src.spec }

// For returns a logger for target, pointer levels removed.
func (src *Source) For(target reflect.Type) (any, error) {
	if target == nil {
		return nil, errors.New("typed: nil target type")
	}
	return src.spec.CreateLogger(loginject.Indirect(target))
}

// ForOwner returns a logger for the dynamic type of owner.
func (src *Source) ForOwner(owner any) (any, error) {
	return src.For(reflect.TypeOf(owner))
}

// Get returns a logger of type L for the injection context T.
func Get[L, T any](src *Source) (L, error) {
	var zero L
	l, err := src.For(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	return convert[L](l)
}

// MustGet is Get that panics on error.
func MustGet[L, T any](src *Source) L {
	l, err := Get[L, T](src)
	if err != nil {
		panic(err)
	}
	return l
}

// Owner returns a logger of type L for the dynamic type of owner.
func Owner[L any](src *Source, owner any) (L, error) {
	var zero L
	l, err := src.ForOwner(owner)
	if err != nil {
		return zero, err
	}
	return convert[L](l)
}

func convert[L any](l any) (L, error) {
	var zero L
	if l == nil {
		return zero, nil
	}
	if v, ok := l.(L); ok {
		return v, nil
	}
	lt := reflect.TypeFor[L]()
	if v, ok := typeset.Upcast(reflect.ValueOf(l), lt); ok {
		return v.Interface().(L), nil
	}
	return zero, fmt.Errorf("typed: logger of type %T cannot be used as %s", l, lt)
}

type ctxKey struct{}

// WithContext returns a copy of ctx carrying src.
func WithContext(ctx context.Context, src *Source) context.Context {
	return context.WithValue(ctx, ctxKey{}, src)
}

// FromContext returns the Source carried by ctx, if any.
func FromContext(ctx context.Context) (*Source, bool) {
	src, ok := ctx.Value(ctxKey{}).(*Source)
	return src, ok && src != nil
}
