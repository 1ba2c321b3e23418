// Package direct resolves loggers in plain Go code: hand-written providers
// and google/wire injectors. Importing it registers an adapter backed by
// DefaultTable with loginject's default registry.
package direct

import (
	"reflect"

	"github.com/trickstertwo/loginject"
)

var (
	defaultTable   = NewTable()
	defaultAdapter = NewAdapter(defaultTable)
)

func init() {
	loginject.Register(defaultAdapter)
}

// DefaultTable returns the table of the registered adapter.
func DefaultTable() *Table { return defaultTable }

// RegisterInjector records fn in DefaultTable.
func RegisterInjector(fn any, target reflect.Type) error {
	return defaultTable.RegisterInjector(fn, target)
}

// RegisterType records types in DefaultTable.
func RegisterType(types ...reflect.Type) { defaultTable.RegisterType(types...) }
