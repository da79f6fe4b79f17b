package model

import "context"

// ContextManager threads the resolved identity between the
// authentication middleware and request handlers.
type ContextManager interface {
	SetIdentityToContext(ctx context.Context, identity Identity) context.Context
	GetIdentityFromContext(ctx context.Context) (Identity, bool)
}
