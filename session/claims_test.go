// ABOUTME: Tests for bearer token claims extraction
// ABOUTME: Verifies role decoding, expiry handling, and malformed-token rejection

package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// mintToken builds a signed HS256 token. The manager never verifies
// signatures, so the key is arbitrary.
func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token
}

func TestDecodeClaims_RoleAndExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := mintToken(t, jwt.MapClaims{"role": "Admin", "exp": exp.Unix()})

	claims, err := decodeClaims(token)
	if err != nil {
		t.Fatalf("decodeClaims failed: %v", err)
	}
	if claims.Role != "Admin" {
		t.Errorf("Role = %q, want Admin", claims.Role)
	}
	if !claims.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt, exp)
	}
}

func TestDecodeClaims_DefaultRole(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"role absent", jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}},
		{"role empty", jwt.MapClaims{"role": "", "exp": time.Now().Add(time.Hour).Unix()}},
		{"role wrong type", jwt.MapClaims{"role": 42, "exp": time.Now().Add(time.Hour).Unix()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := decodeClaims(mintToken(t, tt.claims))
			if err != nil {
				t.Fatalf("decodeClaims failed: %v", err)
			}
			if claims.Role != DefaultRole {
				t.Errorf("Role = %q, want %q", claims.Role, DefaultRole)
			}
		})
	}
}

func TestDecodeClaims_MissingExpiry(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{"role": "Admin"})

	if _, err := decodeClaims(token); err == nil {
		t.Error("decodeClaims should fail when exp is absent")
	}
}

func TestDecodeClaims_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not a jwt", "just-a-string"},
		{"two parts", "aaaa.bbbb"},
		{"garbage payload", "eyJhbGciOiJIUzI1NiJ9.!!!!.sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeClaims(tt.token); err == nil {
				t.Errorf("decodeClaims should fail for %q", tt.token)
			}
		})
	}
}

func TestClaims_Valid(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		exp  time.Time
		want bool
	}{
		{"future expiry", now.Add(time.Minute), true},
		{"past expiry", now.Add(-time.Minute), false},
		{"exactly now", now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Claims{ExpiresAt: tt.exp}
			if got := c.Valid(now); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
