// context.go propagates scopes through Go context.Context.

package faultline

import "context"

// Context key types (unexported to avoid collisions)
type scopeKey struct{}

// WithScope returns a context carrying the scope. Middleware attaches a
// request's scope once; downstream capture sites retrieve it with
// ScopeFromContext and pass it to CaptureEvent.
func WithScope(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext extracts the scope from ctx.
// Returns nil and false when no scope is attached.
func ScopeFromContext(ctx context.Context) (*Scope, bool) {
	scope, ok := ctx.Value(scopeKey{}).(*Scope)
	return scope, ok && scope != nil
}
