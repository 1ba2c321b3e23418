// Package typed creates loggers for injection contexts named statically,
// through type parameters or owner values. It works with any container, or
// none. Importing it registers the adapter with loginject's default registry.
package typed

import "github.com/trickstertwo/loginject"

func init() {
	loginject.Register(NewAdapter())
}
