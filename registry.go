package loginject

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/trickstertwo/xclock"
)

type registration struct {
	adapter    Adapter
	loggerType reflect.Type // nil: every logger type
}

// Registry is the table of installed adapters. Adapter packages register
// themselves from init(), so a blank import is enough to install one:
//
//	import _ "github.com/trickstertwo/loginject/adapter/dig"
//
// Every Resolve enumerates the table afresh; adapters added or removed
// between calls are seen without a restart. Selection order is registration
// order.
type Registry struct {
	mu      sync.RWMutex
	entries []registration

	// Observers: lock-free reads via atomic.Value; synchronized updates via obsMu.
	// Stored value is []Observer and MUST be treated as immutable by readers.
	observers atomic.Value
	obsMu     sync.Mutex
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.observers.Store(([]Observer)(nil))
	return r
}

// Register installs a for every logger type.
func (r *Registry) Register(a Adapter) { r.RegisterFor(nil, a) }

// RegisterFor installs a for specs whose logger type is loggerType. A nil
// loggerType means every logger type. Unregister finds adapters by ==, so a
// must be comparable: a pointer, or a struct without func, map or slice
// fields. Other adapters panic.
func (r *Registry) RegisterFor(loggerType reflect.Type, a Adapter) {
	if a == nil {
		panic("loginject: Register with nil adapter")
	}
	if !reflect.TypeOf(a).Comparable() {
		panic(fmt.Sprintf("loginject: Register with non-comparable adapter %T", a))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, registration{adapter: a, loggerType: loggerType})
}

// Unregister removes every registration of a and reports whether there was one.
func (r *Registry) Unregister(a Adapter) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0:0]
	for _, e := range r.entries {
		if !sameAdapter(e.adapter, a) {
			kept = append(kept, e)
		}
	}
	removed := len(kept) != len(r.entries)
	r.entries = kept
	return removed
}

// Adapters returns the adapters registered against loggerType, in
// registration order. The slice is a fresh snapshot.
func (r *Registry) Adapters(loggerType reflect.Type) []Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Adapter, 0, len(r.entries))
	for _, e := range r.entries {
		if e.loggerType == nil || e.loggerType == loggerType {
			out = append(out, e.adapter)
		}
	}
	return out
}

// Resolve selects the first adapter registered against the spec's logger
// type that supports bindingType and returns its bindings. Without a match it
// fails with *NoAdapterError naming bindingType. Adapter failures are
// returned wrapped.
func (r *Registry) Resolve(s *Spec, bindingType reflect.Type) (any, error) {
	if s == nil {
		return nil, configErrorf("resolve with nil spec")
	}
	if bindingType == nil {
		return nil, configErrorf("resolve with nil binding type")
	}
	candidates := r.Adapters(s.LoggerType())
	for _, a := range candidates {
		if !a.Supports(s, bindingType) {
			continue
		}
		b, err := a.Bindings(s)
		if err != nil {
			err = fmt.Errorf("loginject: %T: %w", a, err)
			b = nil
		}
		r.notify(s, bindingType, len(candidates), fmt.Sprintf("%T", a), err)
		return b, err
	}
	err := &NoAdapterError{BindingType: bindingType, LoggerType: s.LoggerType()}
	r.notify(s, bindingType, len(candidates), "", err)
	return nil, err
}

// AddObserver subscribes o to resolution events.
func (r *Registry) AddObserver(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	cur := r.loadObservers()
	next := make([]Observer, 0, len(cur)+1)
	next = append(next, cur...)
	r.observers.Store(append(next, o))
}

func (r *Registry) loadObservers() []Observer {
	v, _ := r.observers.Load().([]Observer)
	return v
}

func (r *Registry) notify(s *Spec, bindingType reflect.Type, candidates int, adapter string, err error) {
	obs := r.loadObservers()
	if len(obs) == 0 {
		return
	}
	// Single authoritative timestamp from xclock
	e := ResolveEvent{
		At:             xclock.Now(),
		LoggerType:     s.LoggerType(),
		Classification: s.Classification(),
		BindingType:    bindingType,
		Adapter:        adapter,
		Candidates:     candidates,
		Err:            err,
	}
	for _, o := range obs {
		o.OnResolve(e)
	}
}

func sameAdapter(a, b Adapter) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	return ta == tb && ta != nil && ta.Comparable() && a == b
}
