// Package digadapter binds loginject specs into go.uber.org/dig containers.
// Importing it registers the adapter with loginject's default registry.
package digadapter

import "github.com/trickstertwo/loginject"

func init() {
	loginject.Register(NewAdapter())
}
