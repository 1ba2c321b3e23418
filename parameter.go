package loginject

import "reflect"

// Descriptor supplies one factory argument for the type a logger is being
// injected into. Value must be pure: deterministic for a given target and
// free of observable side effects. Descriptors are shared across many
// CreateLogger calls and may be used concurrently.
type Descriptor interface {
	Type() reflect.Type
	Value(target reflect.Type) any
}

// Param is a typed Descriptor.
type Param[T any] struct {
	typ reflect.Type
	fn  func(reflect.Type) T
}

// NewParam returns a descriptor computing its value from the target type.
func NewParam[T any](fn func(target reflect.Type) T) Param[T] {
	return Param[T]{typ: reflect.TypeFor[T](), fn: fn}
}

// Type returns T. The zero Param has no type.
func (p Param[T]) Type() reflect.Type { return p.typ }

// Get returns the typed value for target.
func (p Param[T]) Get(target reflect.Type) T { return p.fn(target) }

func (p Param[T]) Value(target reflect.Type) any { return p.fn(target) }

var (
	currentClass     = NewParam(func(t reflect.Type) reflect.Type { return t })
	currentClassName = NewParam(TypeName)
)

// CurrentClass resolves to the injection-context type itself.
func CurrentClass() Param[reflect.Type] { return currentClass }

// CurrentClassName resolves to the fully-qualified name of the
// injection-context type (see TypeName).
func CurrentClassName() Param[string] { return currentClassName }

// ConstantValue resolves to v whatever the injection context is.
func ConstantValue[T any](v T) Param[T] {
	return NewParam(func(reflect.Type) T { return v })
}

// ConstantString resolves to s whatever the injection context is.
func ConstantString(s string) Param[string] { return ConstantValue(s) }

// Parameter resolves to v whatever the injection context is. Unlike
// ConstantValue its declared type is the runtime type of v, so it can feed a
// factory parameter of any type v is assignable to. A nil v has no type and
// is rejected when the Spec is built.
func Parameter(v any) Descriptor {
	return valueParam{typ: reflect.TypeOf(v), v: v}
}

type valueParam struct {
	typ reflect.Type
	v   any
}

func (p valueParam) Type() reflect.Type     { return p.typ }
func (p valueParam) Value(reflect.Type) any { return p.v }
