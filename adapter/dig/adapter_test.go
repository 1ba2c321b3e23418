package digadapter_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/trickstertwo/loginject"
	digadapter "github.com/trickstertwo/loginject/adapter/dig"
)

type Repo struct{ log *zap.Logger }

type Service struct {
	repo *Repo
	log  *zap.Logger
}

func NewRepo(log *zap.Logger) *Repo { return &Repo{log: log} }

func NewService(repo *Repo, log *zap.Logger) *Service { return &Service{repo: repo, log: log} }

func newSpec(t *testing.T) (*loginject.Spec, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	base := zap.New(core)
	reg := loginject.NewRegistry()
	reg.Register(digadapter.NewAdapter())
	s := loginject.Declare1(func(name string) *zap.Logger { return base.Named(name) }, loginject.CurrentClassName())
	return s.WithRegistry(reg), logs
}

func nameOf[T any]() string { return loginject.TypeName(reflect.TypeFor[T]()) }

func TestBinder_ProvidesPerTypeLoggers(t *testing.T) {
	s, logs := newSpec(t)
	b, err := loginject.As[*digadapter.Binder](s)
	require.NoError(t, err)

	c := dig.New()
	require.NoError(t, b.ProvideAll(c, NewRepo, NewService))

	err = c.Invoke(func(svc *Service) {
		svc.log.Info("service")
		svc.repo.log.Info("repo")
	})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, nameOf[Service](), entries[0].LoggerName)
	assert.Equal(t, nameOf[Repo](), entries[1].LoggerName)
}

type handlerParams struct {
	dig.In

	Service *Service
	Log     *zap.Logger
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func TestBinder_ParameterObjects(t *testing.T) {
	s, _ := newSpec(t)
	b := digadapter.NewBinder(s)

	c := dig.New()
	require.NoError(t, b.ProvideAll(c, NewRepo, NewService, func(p handlerParams) *Handler {
		return &Handler{svc: p.Service, log: p.Log}
	}))

	err := c.Invoke(func(h *Handler) {
		require.NotNil(t, h.svc)
		assert.Equal(t, nameOf[Handler](), h.log.Name())
	})
	require.NoError(t, err)
}

func TestBinder_Decorate(t *testing.T) {
	s, _ := newSpec(t)
	b := digadapter.NewBinder(s)

	c := dig.New()
	require.NoError(t, c.Provide(func() *Service { return &Service{} }))
	require.NoError(t, b.Decorate(c, func(svc *Service, log *zap.Logger) *Service {
		svc.log = log
		return svc
	}))

	require.NoError(t, c.Invoke(func(svc *Service) {
		require.NotNil(t, svc.log)
		assert.Equal(t, nameOf[Service](), svc.log.Name())
	}))
}

func TestBinder_LoggerIsCreatedPerConstruction(t *testing.T) {
	calls := 0
	reg := loginject.NewRegistry()
	reg.Register(digadapter.NewAdapter())
	s := loginject.Declare(func() *zap.Logger {
		calls++
		return zap.NewNop()
	}).WithRegistry(reg)

	c := dig.New()
	require.NoError(t, loginject.MustAs[*digadapter.Binder](s).ProvideAll(c, NewRepo, NewService))
	require.NoError(t, c.Invoke(func(*Service) {}))
	assert.Equal(t, 2, calls)
}

func TestUse(t *testing.T) {
	s, _ := newSpec(t)
	c, err := digadapter.Use(digadapter.Config{
		Spec:         s,
		Constructors: []any{NewRepo, NewService},
	})
	require.NoError(t, err)
	require.NoError(t, c.Invoke(func(svc *Service) {
		assert.Equal(t, nameOf[Service](), svc.log.Name())
	}))
}

func TestUse_NoAdapter(t *testing.T) {
	s := loginject.Declare(zap.NewNop).WithRegistry(loginject.NewRegistry())
	_, err := digadapter.Use(digadapter.Config{Spec: s})
	assert.ErrorIs(t, err, loginject.ErrNoAdapter)

	_, err = digadapter.Use(digadapter.Config{})
	assert.ErrorIs(t, err, loginject.ErrConfiguration)
}

func TestAdapter_Supports(t *testing.T) {
	s, _ := newSpec(t)
	a := digadapter.NewAdapter()
	assert.True(t, a.Supports(s, reflect.TypeFor[*digadapter.Binder]()))
	assert.False(t, a.Supports(s, reflect.TypeFor[*zap.Logger]()))
}

func TestInitRegistersWithDefaultRegistry(t *testing.T) {
	found := false
	for _, a := range loginject.Adapters(reflect.TypeFor[*zap.Logger]()) {
		if _, ok := a.(digadapter.Adapter); ok {
			found = true
		}
	}
	assert.True(t, found)
}
