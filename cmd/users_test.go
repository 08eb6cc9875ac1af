// ABOUTME: Tests for the users commands
// ABOUTME: Verifies payload shape tolerance, grid output, and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"idmctl/gateway"
	"idmctl/models"
)

// pointCLIAt targets the CLI at a test server with an isolated session file
func pointCLIAt(t *testing.T, url string) {
	t.Helper()
	old := apiURL
	apiURL = url
	t.Cleanup(func() { apiURL = old })
	t.Setenv("IDM_SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))
}

func successResult(t *testing.T, payload string) gateway.Result {
	t.Helper()
	return gateway.Result{Success: true, Data: json.RawMessage(payload), StatusCode: http.StatusOK}
}

func TestDecodeUsers_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"bare array", `[{"id":"1","userName":"admin"}]`},
		{"envelope", `{"users":[{"id":"1","userName":"admin"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := decodeUsers(successResult(t, tt.payload))
			if err != nil {
				t.Fatalf("decodeUsers failed: %v", err)
			}
			if len(users) != 1 || users[0].UserName != "admin" {
				t.Errorf("users = %+v", users)
			}
		})
	}
}

func TestDecodeUser_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"bare object", `{"id":"7","userName":"ops"}`},
		{"envelope", `{"user":{"id":"7","userName":"ops"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := decodeUser(successResult(t, tt.payload))
			if err != nil {
				t.Fatalf("decodeUser failed: %v", err)
			}
			if user.ID != "7" || user.UserName != "ops" {
				t.Errorf("user = %+v", user)
			}
		})
	}
}

func TestFormatUsersGrid(t *testing.T) {
	lockout := "2031-01-01T00:00:00Z"
	out := formatUsersGrid([]models.User{
		{ID: "1", UserName: "admin@example.com", Email: "admin@example.com", TwoFactorEnabled: true},
		{ID: "2", UserName: "locked@example.com", LockoutEnd: &lockout},
	})

	for _, want := range []string{"USERNAME", "admin@example.com", "locked@example.com", lockout} {
		if !strings.Contains(out, want) {
			t.Errorf("grid missing %q:\n%s", want, out)
		}
	}
}

func TestRunUsersList_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"users":[{"id":"1","userName":"admin@example.com","email":"admin@example.com"}]}`))
	}))
	defer srv.Close()
	pointCLIAt(t, srv.URL)

	var buf bytes.Buffer
	if code := runUsersList(context.Background(), &buf); code != 0 {
		t.Fatalf("exit code = %d, output: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "admin@example.com") {
		t.Errorf("output missing user:\n%s", buf.String())
	}
}

func TestRunUsersList_BackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":["directory unavailable"]}`))
	}))
	defer srv.Close()
	pointCLIAt(t, srv.URL)

	var buf bytes.Buffer
	if code := runUsersList(context.Background(), &buf); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(buf.String(), "directory unavailable") {
		t.Errorf("output missing backend error:\n%s", buf.String())
	}
}

func TestRunUsersGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"user":{"id":"42","userName":"ops@example.com","email":"ops@example.com"}}`))
	}))
	defer srv.Close()
	pointCLIAt(t, srv.URL)

	var buf bytes.Buffer
	if code := runUsersGet(context.Background(), &buf, "42"); code != 0 {
		t.Fatalf("exit code = %d, output: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "ops@example.com") {
		t.Errorf("output missing user:\n%s", buf.String())
	}
}
