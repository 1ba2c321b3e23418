package direct

import (
	"errors"
	"reflect"

	"github.com/trickstertwo/loginject"
)

// Adapter hands out the logger itself. The injection context is found on
// the call stack through a Table, which makes it usable from hand-written
// providers and from code generated by google/wire:
//
//	func NewService(spec *loginject.Spec) *Service {
//		return &Service{log: loginject.MustAs[*zap.Logger](spec)}
//	}
type Adapter struct {
	table *Table
}

// NewAdapter returns an adapter consulting t.
func NewAdapter(t *Table) *Adapter {
	if t == nil {
		t = NewTable()
	}
	return &Adapter{table: t}
}

// Table returns the table the adapter consults.
func (a *Adapter) Table() *Table { return a.table }

// Supports reports whether the spec's loggers can be returned as bindingType.
func (a *Adapter) Supports(s *loginject.Spec, bindingType reflect.Type) bool {
	return s.LoggerType() != nil && s.LoggerType().AssignableTo(bindingType)
}

func (a *Adapter) Bindings(s *loginject.Spec) (any, error) {
	if s == nil {
		return nil, errors.New("direct: nil spec")
	}
	target, err := a.table.Context()
	if err != nil {
		return nil, err
	}
	return s.CreateLogger(target)
}
