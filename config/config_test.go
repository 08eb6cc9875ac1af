// ABOUTME: Tests for configuration loading
// ABOUTME: Verifies defaults, environment overrides, and validation

package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("IDM_API_URL", "")
	t.Setenv("IDM_AUTH_PATH", "")
	t.Setenv("IDM_REQUEST_TIMEOUT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIURL != "http://localhost:8080" {
		t.Errorf("APIURL = %q, want default", cfg.APIURL)
	}
	if cfg.AuthPath != "/authenticate" {
		t.Errorf("AuthPath = %q, want /authenticate", cfg.AuthPath)
	}
	if cfg.RequestTimeout != 10 {
		t.Errorf("RequestTimeout = %d, want 10", cfg.RequestTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("IDM_API_URL", "https://idm.example.com/")
	t.Setenv("IDM_AUTH_PATH", "login")
	t.Setenv("IDM_REQUEST_TIMEOUT", "30")
	t.Setenv("IDM_SESSION_FILE", "/tmp/idm-session.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIURL != "https://idm.example.com" {
		t.Errorf("APIURL = %q, want trailing slash trimmed", cfg.APIURL)
	}
	if cfg.AuthPath != "/login" {
		t.Errorf("AuthPath = %q, want leading slash added", cfg.AuthPath)
	}
	if cfg.AuthURL() != "https://idm.example.com/login" {
		t.Errorf("AuthURL = %q", cfg.AuthURL())
	}
	if cfg.RequestTimeout != 30 {
		t.Errorf("RequestTimeout = %d, want 30", cfg.RequestTimeout)
	}
	if cfg.SessionFile != "/tmp/idm-session.json" {
		t.Errorf("SessionFile = %q", cfg.SessionFile)
	}
}

func TestLoad_SchemeAdded(t *testing.T) {
	t.Setenv("IDM_API_URL", "idm.example.com:9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIURL != "http://idm.example.com:9090" {
		t.Errorf("APIURL = %q, want scheme added", cfg.APIURL)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"zero", "0"},
		{"negative", "-5"},
		{"too large", "601"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("IDM_REQUEST_TIMEOUT", tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load should fail for timeout %q", tt.value)
			}
		})
	}
}

func TestLoad_NonNumericTimeoutFallsBack(t *testing.T) {
	t.Setenv("IDM_REQUEST_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RequestTimeout != 10 {
		t.Errorf("RequestTimeout = %d, want default 10", cfg.RequestTimeout)
	}
}
