// ABOUTME: Session manager owning authentication state and its lifecycle
// ABOUTME: Restores, establishes, and tears down the persisted credential and user

package session

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"idmctl/models"
	"idmctl/storage"
)

// Storage keys shared with the web dashboard's session layout
const (
	tokenKey = "token"
	userKey  = "user"
)

// Manager is the single source of truth for the authenticated session.
// All failure paths collapse to an unauthenticated state; none of the
// public operations return errors.
type Manager struct {
	store   storage.Store
	authURL string
	client  *http.Client

	mu            sync.RWMutex
	token         string
	user          *models.SessionUser
	authenticated bool
	restored      bool
}

// New creates a manager that authenticates against authURL and persists
// session state through store. A nil client gets a sensible default.
func New(store storage.Store, authURL string, client *http.Client) *Manager {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Manager{
		store:   store,
		authURL: authURL,
		client:  client,
	}
}

// Restore reconstructs session state from persisted storage. Called once at
// startup. An absent, undecodable, or expired credential leaves the session
// unauthenticated; invalid persisted records are removed. The restored flag
// is set in every path so dependents can distinguish "still restoring" from
// "restored, unauthenticated".
func (m *Manager) Restore() {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.restored = true }()

	token, haveToken := m.store.Get(tokenKey)
	rawUser, haveUser := m.store.Get(userKey)
	if !haveToken || !haveUser {
		return
	}

	claims, err := decodeClaims(token)
	if err != nil || !claims.Valid(time.Now()) {
		slog.Debug("Discarding persisted session", "reason", restoreFailReason(err))
		m.store.Delete(tokenKey)
		m.store.Delete(userKey)
		return
	}

	var user models.SessionUser
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		slog.Debug("Discarding persisted session", "reason", "malformed user record")
		m.store.Delete(tokenKey)
		m.store.Delete(userKey)
		return
	}

	m.token = token
	m.user = &user
	m.authenticated = true
	slog.Debug("Session restored", "user", user.UserName, "role", user.Role)
}

func restoreFailReason(err error) string {
	if err != nil {
		return "undecodable token"
	}
	return "expired token"
}

// Login authenticates against the backend. It returns false, with no state
// change, on any transport failure, non-success response, or account
// restriction. On success the credential and user are persisted and installed
// atomically. Two-factor-required accounts log in successfully; the flag is
// carried on the session user.
func (m *Manager) Login(ctx context.Context, username, password string) bool {
	body, err := json.Marshal(models.AuthRequest{Username: username, Password: password})
	if err != nil {
		slog.Warn("Login failed", "reason", "request encoding", "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.authURL, bytes.NewReader(body))
	if err != nil {
		slog.Warn("Login failed", "reason", "request build", "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		slog.Warn("Login failed", "reason", "transport", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("Login failed", "reason", "http status", "status", resp.StatusCode)
		return false
	}

	var auth models.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		slog.Warn("Login failed", "reason", "response decode", "error", err)
		return false
	}

	if !auth.Result || auth.Token == "" {
		slog.Warn("Login failed", "reason", "backend rejected", "errors", auth.Error)
		return false
	}
	if auth.IsLockedOut {
		slog.Warn("Login failed", "reason", "account locked out", "user", username)
		return false
	}
	if auth.IsNotAllowed {
		slog.Warn("Login failed", "reason", "account not allowed", "user", username)
		return false
	}

	// Role comes from the token, not the login response
	role := DefaultRole
	if claims, err := decodeClaims(auth.Token); err == nil {
		role = claims.Role
	}

	user := models.SessionUser{
		UserName:          auth.Username,
		Role:              role,
		IsLockedOut:       auth.IsLockedOut,
		IsNotAllowed:      auth.IsNotAllowed,
		RequiresTwoFactor: auth.RequiresTwoFactor,
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		slog.Error("Login failed", "reason", "user encoding", "error", err)
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(tokenKey, auth.Token); err != nil {
		slog.Error("Login failed", "reason", "persist token", "error", err)
		return false
	}
	if err := m.store.Set(userKey, string(rawUser)); err != nil {
		slog.Error("Login failed", "reason", "persist user", "error", err)
		m.store.Delete(tokenKey)
		return false
	}

	m.token = auth.Token
	m.user = &user
	m.authenticated = true
	slog.Debug("Login successful", "user", user.UserName, "role", user.Role)
	return true
}

// Logout clears persisted and in-process session state. Idempotent.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Delete(tokenKey)
	m.store.Delete(userKey)
	m.token = ""
	m.user = nil
	m.authenticated = false
	slog.Debug("Logged out")
}

// Token returns the current credential, or empty when unauthenticated.
// Satisfies the gateway's credential source.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns a copy of the current session user, or nil
func (m *Manager) User() *models.SessionUser {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a valid session is installed
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// Restored reports whether Restore has completed, regardless of outcome
func (m *Manager) Restored() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.restored
}
