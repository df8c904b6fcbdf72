// Package middleware wraps solution stores with extra behavior.
package middleware

import "github.com/aretw0/wayfinder/pkg/ports"

// Middleware allows wrapping a SolutionStore to add behavior.
type Middleware func(ports.SolutionStore) ports.SolutionStore

// Chain applies middlewares so that the first one is the outermost.
func Chain(store ports.SolutionStore, mws ...Middleware) ports.SolutionStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
