package loginject

import "reflect"

// Facade helpers over the process-wide registry.
// Usage from an adapter package: func init() { loginject.Register(adapter{}) }

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry adapters install into.
func DefaultRegistry() *Registry { return defaultRegistry }

func Register(a Adapter)                             { defaultRegistry.Register(a) }
func RegisterFor(loggerType reflect.Type, a Adapter) { defaultRegistry.RegisterFor(loggerType, a) }
func Unregister(a Adapter) bool                      { return defaultRegistry.Unregister(a) }
func Adapters(loggerType reflect.Type) []Adapter     { return defaultRegistry.Adapters(loggerType) }
func AddObserver(o Observer)                         { defaultRegistry.AddObserver(o) }
