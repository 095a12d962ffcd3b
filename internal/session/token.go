// ABOUTME: Token helpers: store-backed token source and unverified JWT expiry lookup
// ABOUTME: The client never verifies signatures; it only reads exp for display

package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/2389/helpline/internal/store"
)

// StoredToken is an api.TokenSource that reads the persisted token.
type StoredToken struct {
	Store store.Store
}

// Token returns the persisted token, or "" when there is none or it cannot be read.
func (s StoredToken) Token(ctx context.Context) string {
	if s.Store == nil {
		return ""
	}
	tok, err := store.GetOrEmpty(ctx, s.Store, store.KeyToken)
	if err != nil {
		return ""
	}
	return tok
}

// TokenExpiry reads the exp claim of a JWT without verifying it. It reports
// false when the token is not a JWT or carries no exp claim.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
