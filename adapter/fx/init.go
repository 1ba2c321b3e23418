// Package fxadapter binds loginject specs into go.uber.org/fx applications.
// Importing it registers the adapter with loginject's default registry.
package fxadapter

import "github.com/trickstertwo/loginject"

func init() {
	loginject.Register(NewAdapter())
}
