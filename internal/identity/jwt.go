// Package identity verifies bearer credentials against the external
// identity authority and resolves caller identities from their claims.
package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userhub-io/userhub-server/internal/model"
)

// Claims represents the identity token claims issued by the authority.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// JWTVerifier implements model.IdentityVerifier for HMAC-signed tokens
// issued by the identity authority.
type JWTVerifier struct {
	secretKey string
	issuer    string
}

var _ model.IdentityVerifier = (*JWTVerifier)(nil)

// NewJWTVerifier creates a verifier for tokens signed with the given
// secret. When issuer is non-empty, the token issuer claim must match.
func NewJWTVerifier(secretKey, issuer string) *JWTVerifier {
	return &JWTVerifier{secretKey: secretKey, issuer: issuer}
}

// Verify validates signature, expiry and issuer, and resolves the
// caller identity from the subject and email claims.
func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (model.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(v.secretKey), nil
	})
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to parse identity token: %w", err)
	}
	if !token.Valid {
		return model.Identity{}, fmt.Errorf("identity token is invalid")
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return model.Identity{}, fmt.Errorf("issuer mismatch: %s", claims.Issuer)
	}
	if claims.Subject == "" {
		return model.Identity{}, fmt.Errorf("identity token has no subject")
	}

	ident := model.Identity{UID: claims.Subject}
	if claims.Email != "" {
		email := claims.Email
		ident.Email = &email
	}
	return ident, nil
}
