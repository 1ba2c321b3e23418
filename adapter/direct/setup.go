package direct

import (
	"reflect"

	"github.com/trickstertwo/loginject"
)

// Injector pairs a function with the type it constructs.
type Injector struct {
	Func   any
	Target reflect.Type
}

// Config is an explicit, code-first description of the injection sites the
// direct adapter recognizes.
type Config struct {
	Table     *Table // default: DefaultTable()
	Types     []reflect.Type
	Injectors []Injector
	// Registry, when set, receives a new adapter for a non-default Table.
	Registry *loginject.Registry
}

// Use records cfg in its table and returns the table.
func Use(cfg Config) (*Table, error) {
	t := cfg.Table
	if t == nil {
		t = defaultTable
	}
	t.RegisterType(cfg.Types...)
	for _, in := range cfg.Injectors {
		if err := t.RegisterInjector(in.Func, in.Target); err != nil {
			return nil, err
		}
	}
	if cfg.Registry != nil && t != defaultTable {
		cfg.Registry.Register(NewAdapter(t))
	}
	return t, nil
}
