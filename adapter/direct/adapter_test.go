package direct_test

import (
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trickstertwo/loginject"
	"github.com/trickstertwo/loginject/adapter/direct"
)

type Service struct{ log *zap.Logger }

func NewService(spec *loginject.Spec) *Service {
	return &Service{log: loginject.MustAs[*zap.Logger](spec)}
}

func (s *Service) Child(spec *loginject.Spec) *zap.Logger {
	return loginject.MustAs[*zap.Logger](spec)
}

func (s Service) Lazy(spec *loginject.Spec) func() *zap.Logger {
	return func() *zap.Logger { return loginject.MustAs[*zap.Logger](spec) }
}

type Worker struct{ log *zap.Logger }

func buildWorker(spec *loginject.Spec) *Worker {
	w := &Worker{}
	func() { w.log = loginject.MustAs[*zap.Logger](spec) }()
	return w
}

func nameOf[T any]() string { return loginject.TypeName(reflect.TypeFor[T]()) }

func zapSpec(t *testing.T) (*loginject.Spec, *direct.Table) {
	t.Helper()
	table := direct.NewTable()
	reg := loginject.NewRegistry()
	reg.Register(direct.NewAdapter(table))
	s := loginject.Declare1(func(name string) *zap.Logger { return zap.NewNop().Named(name) }, loginject.CurrentClassName())
	return s.WithRegistry(reg), table
}

func TestConstructorOfRegisteredType(t *testing.T) {
	s, table := zapSpec(t)
	table.RegisterType(reflect.TypeFor[*Service]())

	svc := NewService(s)
	assert.Equal(t, nameOf[Service](), svc.log.Name())
}

func TestMethodsOfRegisteredType(t *testing.T) {
	s, table := zapSpec(t)
	table.RegisterType(reflect.TypeFor[Service]())

	svc := &Service{}
	assert.Equal(t, nameOf[Service](), svc.Child(s).Name())
	assert.Equal(t, nameOf[Service](), svc.Lazy(s)().Name())
}

type Cache struct{}

func NewCache(spec *loginject.Spec) func() (*zap.Logger, error) {
	return func() (*zap.Logger, error) { return loginject.As[*zap.Logger](spec) }
}

func TestClosureOfInlinableConstructor(t *testing.T) {
	s, table := zapSpec(t)
	table.RegisterType(reflect.TypeFor[Cache]())

	l, err := NewCache(s)()
	require.NoError(t, err)
	assert.Equal(t, nameOf[Cache](), l.Name())
}

type Deep struct{ log *zap.Logger }

func descend(n int, spec *loginject.Spec) *zap.Logger {
	if n == 0 {
		return loginject.MustAs[*zap.Logger](spec)
	}
	return descend(n-1, spec)
}

func NewDeep(spec *loginject.Spec) *Deep { return &Deep{log: descend(150, spec)} }

func TestContextBelowManyFrames(t *testing.T) {
	s, table := zapSpec(t)
	table.RegisterType(reflect.TypeFor[Deep]())

	assert.Equal(t, nameOf[Deep](), NewDeep(s).log.Name())
}

func TestRegisteredInjector(t *testing.T) {
	s, table := zapSpec(t)
	require.NoError(t, table.RegisterInjector(buildWorker, reflect.TypeFor[*Worker]()))

	w := buildWorker(s)
	require.NotNil(t, w.log)
	assert.Equal(t, nameOf[Worker](), w.log.Name())
}

func assemble(spec *loginject.Spec) (*Worker, *Service) {
	svc := NewService(spec)
	return &Worker{log: loginject.MustAs[*zap.Logger](spec)}, svc
}

func TestNearestFrameWins(t *testing.T) {
	s, table := zapSpec(t)
	table.RegisterType(reflect.TypeFor[Service]())
	require.NoError(t, table.RegisterInjector(assemble, reflect.TypeFor[Worker]()))

	w, svc := assemble(s)
	assert.Equal(t, nameOf[Service](), svc.log.Name())
	assert.Equal(t, nameOf[Worker](), w.log.Name())
}

func TestNoInjectionContext(t *testing.T) {
	s, _ := zapSpec(t)
	_, err := loginject.As[*zap.Logger](s)
	assert.ErrorIs(t, err, loginject.ErrNoInjectionContext)
	assert.Panics(t, func() { NewService(s) })
}

func TestSupports(t *testing.T) {
	s, table := zapSpec(t)
	a := direct.NewAdapter(table)
	assert.True(t, a.Supports(s, reflect.TypeFor[*zap.Logger]()))
	assert.True(t, a.Supports(s, reflect.TypeFor[any]()))
	assert.False(t, a.Supports(s, reflect.TypeFor[*zap.SugaredLogger]()))
}

type Importer struct{ log *logrus.Entry }

func NewImporter(spec *loginject.Spec) *Importer {
	return &Importer{log: loginject.MustAs[*logrus.Entry](spec)}
}

func TestUse_WithLogrus(t *testing.T) {
	reg := loginject.NewRegistry()
	_, err := direct.Use(direct.Config{
		Table:    direct.NewTable(),
		Types:    []reflect.Type{reflect.TypeFor[Importer]()},
		Registry: reg,
	})
	require.NoError(t, err)

	base := logrus.New()
	s := loginject.Declare1(func(name string) *logrus.Entry {
		return base.WithField("component", name)
	}, loginject.CurrentClassName()).WithRegistry(reg)

	imp := NewImporter(s)
	assert.Equal(t, nameOf[Importer](), imp.log.Data["component"])
}

func TestRegisterInjector_Rejects(t *testing.T) {
	table := direct.NewTable()
	assert.Error(t, table.RegisterInjector(nil, reflect.TypeFor[Worker]()))
	assert.Error(t, table.RegisterInjector(42, reflect.TypeFor[Worker]()))
	assert.Error(t, table.RegisterInjector(buildWorker, nil))
}
