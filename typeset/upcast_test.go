package typeset_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/loginject/typeset"
)

type Base struct{ Name string }

type Derived struct {
	*Base
	Level int
}

func TestUpcast_Assignable(t *testing.T) {
	v, ok := typeset.Upcast(reflect.ValueOf(HashSet{}), reflect.TypeFor[Set]())
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[Set](), v.Type())
	_, isSet := v.Interface().(Set)
	assert.True(t, isSet)
}

func TestUpcast_EmbeddedPointer(t *testing.T) {
	b := &Base{Name: "root"}
	v, ok := typeset.Upcast(reflect.ValueOf(&Derived{Base: b}), reflect.TypeFor[*Base]())
	require.True(t, ok)
	assert.Same(t, b, v.Interface().(*Base))
}

func TestUpcast_EmbeddedValue(t *testing.T) {
	v, ok := typeset.Upcast(reflect.ValueOf(HashSet{}), reflect.TypeFor[AbstractCollection]())
	require.True(t, ok)
	assert.Equal(t, AbstractCollection{}, v.Interface())
}

func TestUpcast_Failures(t *testing.T) {
	_, ok := typeset.Upcast(reflect.ValueOf(&Derived{}), reflect.TypeFor[*Base]())
	assert.True(t, ok, "a nil embedded pointer is still assignable")

	_, ok = typeset.Upcast(reflect.ValueOf((*Derived)(nil)), reflect.TypeFor[Base]())
	assert.False(t, ok)

	_, ok = typeset.Upcast(reflect.ValueOf(HashSet{}), reflect.TypeFor[*bytes.Buffer]())
	assert.False(t, ok)

	_, ok = typeset.Upcast(reflect.Value{}, reflect.TypeFor[any]())
	assert.False(t, ok)
}
