// ABOUTME: Bearer token claims extraction without signature verification
// ABOUTME: The backend is the verifying party; claims are display/UX data only

package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultRole is used when the token carries no usable role claim
const DefaultRole = "User"

// Claims holds the token fields the client consumes.
// These are decoded without verifying the signature and must never be
// treated as a security control.
type Claims struct {
	Role      string
	ExpiresAt time.Time
}

// decodeClaims extracts claims from a bearer token.
// A token without a decodable, present expiry is an error: it can never
// be considered valid.
func decodeClaims(token string) (*Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid expiry claim: %w", err)
	}
	if exp == nil {
		return nil, errors.New("missing expiry claim")
	}

	role := DefaultRole
	if r, ok := mapClaims["role"].(string); ok && r != "" {
		role = r
	}

	return &Claims{
		Role:      role,
		ExpiresAt: exp.Time,
	}, nil
}

// Valid reports whether the expiry is strictly in the future
func (c *Claims) Valid(now time.Time) bool {
	return c.ExpiresAt.After(now)
}
