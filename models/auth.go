// ABOUTME: Auth request/response models for the identity backend
// ABOUTME: Defines the authenticate wire contract and the local session user

package models

// AuthRequest represents credentials sent to the authenticate endpoint.
// The backend expects the password key capitalized.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"Password"`
}

// AuthResponse represents the result of an authenticate call
type AuthResponse struct {
	Result            bool     `json:"result"`
	Token             string   `json:"token"`
	Username          string   `json:"username"`
	IsLockedOut       bool     `json:"isLockedOut"`
	IsNotAllowed      bool     `json:"isNotAllowed"`
	RequiresTwoFactor bool     `json:"requiresTwoFactor"`
	Error             []string `json:"error"`
}

// SessionUser is the locally held authenticated principal, derived from a
// successful login response plus the role claim decoded from the token.
// It is persisted alongside the token and restored at startup.
type SessionUser struct {
	UserName          string `json:"userName"`
	Role              string `json:"role"`
	IsLockedOut       bool   `json:"isLockedOut"`
	IsNotAllowed      bool   `json:"isNotAllowed"`
	RequiresTwoFactor bool   `json:"requiresTwoFactor"`
}
