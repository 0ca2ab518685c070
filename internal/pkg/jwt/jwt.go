package jwt

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// contextKey is a private type for context keys defined in this package.
type contextKey string

// authKey is the context key under which authenticated claims are stored.
const authKey contextKey = "jwt.auth"

// Claims carries the registered JWT claims together with the identity of
// the authenticated login session.
type Claims struct {
	jwt.RegisteredClaims

	Email     string `json:"email"`
	SessionID string `json:"session_id"`
}

// JWT defines generation and verification of access tokens.
type JWT interface {
	// Generate creates a signed token for the given session and email.
	Generate(sessionID, email string) (string, error)

	// Verify parses and validates a token string, returning its claims.
	Verify(token string) (*Claims, error)
}

// SetAuth returns a copy of ctx that carries the authenticated claims.
func SetAuth(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, authKey, claims)
}

// GetAuth returns the authenticated claims stored in ctx, or nil when the
// request was not authenticated.
func GetAuth(ctx context.Context) *Claims {
	claims, ok := ctx.Value(authKey).(*Claims)
	if !ok {
		return nil
	}

	return claims
}
