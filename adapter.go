package loginject

import "reflect"

// Adapter is the binding Strategy implemented once per host DI framework.
// Bindings returns an artifact the application installs into its container;
// the adapter arranges for its framework to call Spec.CreateLogger with the
// type being constructed whenever a logger is injected. How that type is
// found is entirely the adapter's business.
type Adapter interface {
	Supports(s *Spec, bindingType reflect.Type) bool
	Bindings(s *Spec) (any, error)
}

// Produces declares the artifact type an adapter returns from Bindings and
// implements the default Supports policy: the requested binding type must be
// exactly that type. Embed it in adapters that produce one artifact type.
type Produces struct {
	Type reflect.Type
}

// ProducesType returns Produces for the artifact type B.
func ProducesType[B any]() Produces {
	return Produces{Type: reflect.TypeFor[B]()}
}

// BindingType returns the declared artifact type.
func (p Produces) BindingType() reflect.Type { return p.Type }

func (p Produces) Supports(_ *Spec, bindingType reflect.Type) bool {
	return p.Type != nil && p.Type == bindingType
}
