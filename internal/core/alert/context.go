package alert

import (
	"context"
	"errors"
)

// ErrNoRegistry is returned when alert functions are used without a
// registry attached to the context.
var ErrNoRegistry = errors.New("no alert registry in context; attach one with alert.WithRegistry")

type contextKey string

const registryKey contextKey = "alert_registry"

// WithRegistry attaches r to ctx.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryKey, r)
}

// FromContext retrieves the registry attached with WithRegistry.
func FromContext(ctx context.Context) (*Registry, error) {
	if r, ok := ctx.Value(registryKey).(*Registry); ok && r != nil {
		return r, nil
	}
	return nil, ErrNoRegistry
}

// MustFromContext is FromContext for callers that cannot run without a
// registry. It panics with ErrNoRegistry.
func MustFromContext(ctx context.Context) *Registry {
	r, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return r
}
