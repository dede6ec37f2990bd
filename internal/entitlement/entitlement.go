// Package entitlement answers whether the current user may exceed the free
// recipe and planning limits.
package entitlement

import "context"

type Checker interface {
	Unrestricted(ctx context.Context) bool
}

// Static grants the same entitlement to every request.
type Static bool

func (s Static) Unrestricted(context.Context) bool { return bool(s) }

type contextKey struct{}

// WithOverride marks ctx as unrestricted regardless of the configured checker.
// The CLI uses it for maintenance commands.
func WithOverride(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, true)
}

// Resolve consults an override placed on ctx before falling back to c.
func Resolve(ctx context.Context, c Checker) bool {
	if v, ok := ctx.Value(contextKey{}).(bool); ok && v {
		return true
	}
	if c == nil {
		return false
	}
	return c.Unrestricted(ctx)
}
