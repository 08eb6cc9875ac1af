// ABOUTME: Tests for the in-memory Store implementation
// ABOUTME: Verifies Get/Set/Delete semantics and absent-key behavior

package storage

import "testing"

func TestMemStore_SetGet(t *testing.T) {
	s := NewMemStore()

	if err := s.Set("token", "abc123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, ok := s.Get("token")
	if !ok {
		t.Fatal("Get returned ok=false for existing key")
	}
	if val != "abc123" {
		t.Errorf("Get = %q, want %q", val, "abc123")
	}
}

func TestMemStore_GetMissing(t *testing.T) {
	s := NewMemStore()

	val, ok := s.Get("nope")
	if ok {
		t.Error("Get returned ok=true for missing key")
	}
	if val != "" {
		t.Errorf("Get = %q, want empty string", val)
	}
}

func TestMemStore_Delete(t *testing.T) {
	s := NewMemStore()

	if err := s.Set("user", "{}"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	s.Delete("user")

	if _, ok := s.Get("user"); ok {
		t.Error("key still present after Delete")
	}
}

func TestMemStore_DeleteMissing(t *testing.T) {
	s := NewMemStore()
	// Must not panic
	s.Delete("never-set")
}

func TestMemStore_Overwrite(t *testing.T) {
	s := NewMemStore()

	_ = s.Set("token", "old")
	_ = s.Set("token", "new")

	val, _ := s.Get("token")
	if val != "new" {
		t.Errorf("Get = %q, want %q", val, "new")
	}
}
