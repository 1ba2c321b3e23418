package loginject_test

import (
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/loginject"
)

func TestBuilder_DefaultsToFactoryResultType(t *testing.T) {
	s, err := loginject.NewBuilder().
		WithFactory(loginject.Arity1(func(n string) *named { return &named{name: n} })).
		WithParameters(loginject.CurrentClassName()).
		Build()
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[*named](), s.LoggerType())
	assert.Equal(t, loginject.Declared, s.Classification())
	assert.Same(t, loginject.DefaultRegistry(), s.Registry())
}

func TestBuilder_DeclaredInterfaceType(t *testing.T) {
	s, err := loginject.NewBuilder().
		WithLoggerType(reflect.TypeFor[io.Writer]()).
		WithFactoryFunc(func() (*strings.Builder, error) { return &strings.Builder{}, nil }).
		Build()
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[io.Writer](), s.LoggerType())
}

func TestBuilder_Infer(t *testing.T) {
	reg := loginject.NewRegistry()
	s, err := loginject.NewBuilder().
		WithFactoryFunc(func(name string) io.Writer { return &strings.Builder{} }).
		WithParameters(loginject.CurrentClassName()).
		Infer().
		WithRegistry(reg).
		Build()
	require.NoError(t, err)
	assert.Equal(t, loginject.Concrete, s.Classification())
	assert.Equal(t, reflect.TypeFor[*strings.Builder](), s.LoggerType())
	assert.Same(t, reg, s.Registry())
}

func TestBuilder_Errors(t *testing.T) {
	_, err := loginject.NewBuilder().WithFactoryFunc(42).Build()
	assert.ErrorIs(t, err, loginject.ErrConfiguration)

	_, err = loginject.NewBuilder().Build()
	assert.ErrorIs(t, err, loginject.ErrConfiguration)

	_, err = loginject.NewBuilder().
		WithLoggerType(reflect.TypeFor[*named]()).
		WithFactory(loginject.Arity0(func() *named { return nil })).
		Infer().
		Build()
	assert.ErrorIs(t, err, loginject.ErrConfiguration)
}

func TestFromConfig(t *testing.T) {
	s, err := loginject.FromConfig(loginject.Config{
		Factory:    loginject.Arity2(func(a string, b int) *named { return &named{} }),
		Parameters: []loginject.Descriptor{loginject.CurrentClassName(), loginject.ConstantValue(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Arity())
}
