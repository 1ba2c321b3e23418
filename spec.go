package loginject

import (
	"fmt"
	"reflect"
)

// Spec describes how to produce a context-aware logger: the logger type, its
// classification, the factory and the descriptors supplying the factory's
// arguments. A Spec is immutable once built and safe for concurrent use.
type Spec struct {
	loggerType reflect.Type
	class      Classification
	params     []Descriptor
	factory    Factory
	registry   *Registry // nil: DefaultRegistry()
}

// specType is the stand-in injection context of the probe call.
var specType = reflect.TypeFor[Spec]()

// New builds a Declared spec for loggerType. The number of descriptors must
// match the factory arity and each descriptor type must be assignable to the
// matching factory parameter; violations yield *ConfigurationError.
func New(loggerType reflect.Type, f Factory, params ...Descriptor) (*Spec, error) {
	if loggerType == nil {
		return nil, configErrorf("logger type is nil")
	}
	if err := check(f, params); err != nil {
		return nil, err
	}
	if !f.Out().AssignableTo(loggerType) {
		return nil, configErrorf("factory returns %s, which is not assignable to %s",
			typeString(f.Out()), typeString(loggerType))
	}
	return newSpec(loggerType, Declared, f, params), nil
}

// Infer builds a Concrete spec whose logger type is learned by calling the
// factory once, right here, with arguments computed for the stand-in target
// reflect.TypeFor[Spec](). The probe instance is discarded; whatever the
// factory does (allocating, opening files, registering the logger name) has
// happened by the time Infer returns. It never happens again afterwards.
func Infer(f Factory, params ...Descriptor) (*Spec, error) {
	if err := check(f, params); err != nil {
		return nil, err
	}
	s := newSpec(nil, Concrete, f, params)
	probe, err := s.CreateLogger(specType)
	if err != nil {
		return nil, err
	}
	if probe == nil {
		return nil, configErrorf("probe logger is nil; its type cannot be inferred")
	}
	s.loggerType = reflect.TypeOf(probe)
	return s, nil
}

// Declare builds a Declared spec for a factory without parameters.
func Declare[L any](factory func() L) *Spec {
	return mustSpec(New(reflect.TypeFor[L](), Arity0(factory)))
}

// Declare1 builds a Declared spec for a one-parameter factory. It panics if
// factory is nil or p is the zero Param.
func Declare1[L, P any](factory func(P) L, p Param[P]) *Spec {
	return mustSpec(New(reflect.TypeFor[L](), Arity1(factory), p))
}

// Declare2 builds a Declared spec for a two-parameter factory. It panics if
// factory is nil or a Param is the zero Param.
func Declare2[L, P0, P1 any](factory func(P0, P1) L, p0 Param[P0], p1 Param[P1]) *Spec {
	return mustSpec(New(reflect.TypeFor[L](), Arity2(factory), p0, p1))
}

// Infer0 is Infer for a factory without parameters.
func Infer0[L any](factory func() L) (*Spec, error) {
	return Infer(Arity0(factory))
}

// Infer1 is Infer for a one-parameter factory.
func Infer1[L, P any](factory func(P) L, p Param[P]) (*Spec, error) {
	return Infer(Arity1(factory), p)
}

// Infer2 is Infer for a two-parameter factory.
func Infer2[L, P0, P1 any](factory func(P0, P1) L, p0 Param[P0], p1 Param[P1]) (*Spec, error) {
	return Infer(Arity2(factory), p0, p1)
}

func newSpec(loggerType reflect.Type, class Classification, f Factory, params []Descriptor) *Spec {
	return &Spec{
		loggerType: loggerType,
		class:      class,
		params:     append([]Descriptor(nil), params...),
		factory:    f,
	}
}

func check(f Factory, params []Descriptor) error {
	if !f.valid() {
		return configErrorf("factory is not set")
	}
	if len(params) != f.Arity() {
		return configErrorf("factory takes %d parameters but %d descriptors were given", f.Arity(), len(params))
	}
	for i, p := range params {
		if p == nil || p.Type() == nil {
			return configErrorf("descriptor %d has no type", i)
		}
		if in := f.In(i); !p.Type().AssignableTo(in) {
			return configErrorf("descriptor %d supplies %s but factory parameter %d is %s",
				i, typeString(p.Type()), i, typeString(in))
		}
	}
	return nil
}

func mustSpec(s *Spec, err error) *Spec {
	if err != nil {
		panic(err)
	}
	return s
}

// LoggerType returns the type of the loggers this spec produces.
func (s *Spec) LoggerType() reflect.Type { return s.loggerType }

// Classification reports whether LoggerType was declared or inferred.
func (s *Spec) Classification() Classification { return s.class }

// Arity returns the factory arity, which equals len(Parameters()).
func (s *Spec) Arity() int { return s.factory.Arity() }

// Parameters returns a copy of the descriptors in declared order.
func (s *Spec) Parameters() []Descriptor {
	return append([]Descriptor(nil), s.params...)
}

// Registry returns the registry Resolve consults.
func (s *Spec) Registry() *Registry {
	if s.registry != nil {
		return s.registry
	}
	return DefaultRegistry()
}

// WithRegistry returns a copy of s that resolves against r.
func (s *Spec) WithRegistry(r *Registry) *Spec {
	c := *s
	c.registry = r
	return &c
}

// CreateLogger produces the logger for the injection-context type target.
// Descriptors are evaluated in declared order, left to right, before the
// factory runs. A failing or panicking descriptor or factory yields
// *InvocationError with the cause attached; nothing is retried.
func (s *Spec) CreateLogger(target reflect.Type) (any, error) {
	var args []any
	if len(s.params) > 0 {
		args = make([]any, len(s.params))
	}
	for i, p := range s.params {
		v, err := invoke(target, stageParameter(i), func() (any, error) { return p.Value(target), nil })
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return invoke(target, stageFactory, func() (any, error) { return s.factory.call(args) })
}

// Resolve returns the binding artifact of type bindingType produced by the
// first registered adapter that supports it. See Registry.Resolve.
func (s *Spec) Resolve(bindingType reflect.Type) (any, error) {
	return s.Registry().Resolve(s, bindingType)
}

func (s *Spec) String() string {
	return fmt.Sprintf("loginject.Spec{%s, %s, arity %d}", typeString(s.loggerType), s.class, s.Arity())
}

// As resolves the artifact type B for s.
//
//	module, err := loginject.As[*digadapter.Binder](spec)
func As[B any](s *Spec) (B, error) {
	var zero B
	bt := reflect.TypeFor[B]()
	v, err := s.Resolve(bt)
	if err != nil || v == nil {
		return zero, err
	}
	b, ok := v.(B)
	if !ok {
		return zero, fmt.Errorf("loginject: adapter returned %T where %s was requested", v, typeString(bt))
	}
	return b, nil
}

// MustAs is As that panics on error. It suits provider functions, which
// usually cannot return one.
func MustAs[B any](s *Spec) B {
	b, err := As[B](s)
	if err != nil {
		panic(err)
	}
	return b
}
