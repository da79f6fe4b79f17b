package model

import "context"

// Identity is the resolved caller identity for one request. It is
// reconstructed from a verified credential on every request and never
// persisted.
type Identity struct {
	// UID is the stable subject id issued by the identity authority.
	UID string
	// Email is nil when the authority supplies no email claim.
	Email *string
}

// IdentityVerifier validates a bearer credential against the identity
// authority and resolves the caller identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}
