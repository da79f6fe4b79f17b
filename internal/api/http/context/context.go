// Package context threads the resolved caller identity through request
// contexts between the authentication middleware and handlers.
package context

import (
	"context"

	"github.com/userhub-io/userhub-server/internal/model"
)

type contextKey int

const identityKey contextKey = iota

// Manager implements model.ContextManager over request contexts.
type Manager struct{}

var _ model.ContextManager = (*Manager)(nil)

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a context carrying the resolved identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromContext retrieves the identity set by the
// authentication middleware, reporting whether one was present.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	return identity, ok
}
