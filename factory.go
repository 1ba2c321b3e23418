package loginject

import "reflect"

var errorType = reflect.TypeFor[error]()

// Factory is a logger factory of arity 0, 1 or 2. It is a tagged variant:
// exactly one of f0, f1 and f2 is set, selected by arity.
type Factory struct {
	set   bool
	arity int
	in    []reflect.Type
	out   reflect.Type

	f0 func() (any, error)
	f1 func(any) (any, error)
	f2 func(any, any) (any, error)
}

// Arity0 wraps a factory without parameters.
func Arity0[L any](fn func() L) Factory {
	if fn == nil {
		return Factory{}
	}
	return Factory{
		set:   true,
		arity: 0,
		out:   reflect.TypeFor[L](),
		f0:    func() (any, error) { return fn(), nil },
	}
}

// Arity1 wraps a factory taking one parameter.
func Arity1[P, L any](fn func(P) L) Factory {
	if fn == nil {
		return Factory{}
	}
	return Factory{
		set:   true,
		arity: 1,
		in:    []reflect.Type{reflect.TypeFor[P]()},
		out:   reflect.TypeFor[L](),
		f1:    func(a any) (any, error) { return fn(arg[P](a)), nil },
	}
}

// Arity2 wraps a factory taking two parameters.
func Arity2[P0, P1, L any](fn func(P0, P1) L) Factory {
	if fn == nil {
		return Factory{}
	}
	return Factory{
		set:   true,
		arity: 2,
		in:    []reflect.Type{reflect.TypeFor[P0](), reflect.TypeFor[P1]()},
		out:   reflect.TypeFor[L](),
		f2:    func(a, b any) (any, error) { return fn(arg[P0](a), arg[P1](b)), nil },
	}
}

// FactoryOf wraps any function with zero, one or two parameters that returns
// either a logger or a logger and an error. Other shapes are rejected with a
// *ConfigurationError.
func FactoryOf(fn any) (Factory, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return Factory{}, configErrorf("factory must be a non-nil function, got %T", fn)
	}
	t := v.Type()
	if t.IsVariadic() {
		return Factory{}, configErrorf("factory %s is variadic", t)
	}
	if t.NumIn() > 2 {
		return Factory{}, configErrorf("factory %s takes %d parameters; at most 2 are supported", t, t.NumIn())
	}
	switch {
	case t.NumOut() == 1 && t.Out(0) != errorType:
	case t.NumOut() == 2 && t.Out(0) != errorType && t.Out(1) == errorType:
	default:
		return Factory{}, configErrorf("factory %s must return a logger, optionally followed by an error", t)
	}

	in := make([]reflect.Type, t.NumIn())
	for i := range in {
		in[i] = t.In(i)
	}
	call := func(args ...any) (any, error) {
		vals := make([]reflect.Value, len(args))
		for i, a := range args {
			if a == nil {
				vals[i] = reflect.Zero(in[i])
			} else {
				vals[i] = reflect.ValueOf(a)
			}
		}
		out := v.Call(vals)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return out[0].Interface(), nil
	}

	f := Factory{set: true, arity: len(in), in: in, out: t.Out(0)}
	switch f.arity {
	case 0:
		f.f0 = func() (any, error) { return call() }
	case 1:
		f.f1 = func(a any) (any, error) { return call(a) }
	case 2:
		f.f2 = func(a, b any) (any, error) { return call(a, b) }
	}
	return f, nil
}

// Arity returns the number of parameters the factory takes.
func (f Factory) Arity() int { return f.arity }

// In returns the declared type of parameter i.
func (f Factory) In(i int) reflect.Type { return f.in[i] }

// Out returns the declared result type.
func (f Factory) Out() reflect.Type { return f.out }

func (f Factory) valid() bool { return f.set }

func (f Factory) call(args []any) (any, error) {
	switch f.arity {
	case 0:
		return f.f0()
	case 1:
		return f.f1(args[0])
	default:
		return f.f2(args[0], args[1])
	}
}

// arg converts a descriptor value to the factory parameter type. Types are
// checked when the Spec is built; values that are assignable but not
// identical (a []byte feeding a named byte slice) go through reflect.
func arg[P any](a any) P {
	var p P
	if a == nil {
		return p
	}
	if v, ok := a.(P); ok {
		return v
	}
	reflect.ValueOf(&p).Elem().Set(reflect.ValueOf(a))
	return p
}
