package keystore

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s, path
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	s, path := tempStore(t)

	if err := s.Set("openai", "sk-test-123"); err != nil {
		t.Fatalf("set: %v", err)
	}

	k, ok := s.Get("openai")
	if !ok || k != "sk-test-123" {
		t.Fatalf("get = %q, %v", k, ok)
	}

	// A fresh Store sees the persisted key.
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	k, ok = reopened.Get("openai")
	if !ok || k != "sk-test-123" {
		t.Fatalf("reopened get = %q, %v", k, ok)
	}
}

func TestStore_FilePermissions(t *testing.T) {
	s, path := tempStore(t)
	if err := s.Set("anthropic", "sk-ant-test"); err != nil {
		t.Fatalf("set: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("key file mode = %o, want 600", perm)
	}
}

func TestStore_EnvFallback(t *testing.T) {
	s, _ := tempStore(t)
	t.Setenv("GEMINI_API_KEY", "env-key")

	k, ok := s.Get("gemini")
	if !ok || k != "env-key" {
		t.Fatalf("get = %q, %v, want env fallback", k, ok)
	}

	// A stored key wins over the environment.
	if err := s.Set("gemini", "stored-key"); err != nil {
		t.Fatalf("set: %v", err)
	}
	k, _ = s.Get("gemini")
	if k != "stored-key" {
		t.Fatalf("get = %q, want stored key", k)
	}
}

func TestStore_LookupReportsSource(t *testing.T) {
	s, _ := tempStore(t)
	t.Setenv("ANTHROPIC_API_KEY", "env-key")

	k, source, ok := s.Lookup("anthropic")
	if !ok || k != "env-key" || source != SourceEnv {
		t.Fatalf("lookup = %q, %q, %v, want env key", k, source, ok)
	}

	if err := s.Set("anthropic", "stored-key"); err != nil {
		t.Fatalf("set: %v", err)
	}
	k, source, ok = s.Lookup("anthropic")
	if !ok || k != "stored-key" || source != SourceStore {
		t.Fatalf("lookup = %q, %q, %v, want stored key", k, source, ok)
	}

	t.Setenv("OPENROUTER_API_KEY", "")
	if _, source, ok := s.Lookup("openrouter"); ok || source != "" {
		t.Fatalf("lookup = %q, %v, want no key", source, ok)
	}
}

func TestStore_DeleteAndMissing(t *testing.T) {
	s, _ := tempStore(t)
	t.Setenv("OPENROUTER_API_KEY", "")

	if _, ok := s.Get("openrouter"); ok {
		t.Fatal("expected no key")
	}

	if err := s.Set("openrouter", "sk-or"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Delete("openrouter"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := s.Get("openrouter"); ok {
		t.Fatal("expected key gone after delete")
	}

	// Deleting again is a no-op.
	if err := s.Delete("openrouter"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestStore_RejectsEmptyKey(t *testing.T) {
	s, _ := tempStore(t)
	if err := s.Set("openai", "   "); err == nil {
		t.Fatal("expected error for blank key")
	}
}

func TestStore_Providers(t *testing.T) {
	s, _ := tempStore(t)
	_ = s.Set("openrouter", "a")
	_ = s.Set("anthropic", "b")

	got := s.Providers()
	want := []string{"anthropic", "openrouter"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("providers = %v, want %v", got, want)
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"sk-proj-abcdefgh1234", "sk-p****1234"},
		{"short", "*****"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Mask(tt.in); got != tt.want {
			t.Errorf("Mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
