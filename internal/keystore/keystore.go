// Package keystore persists per-provider API keys in a JSON file under
// the user's data directory, with environment variables as a fallback
// for keys not stored on disk.
package keystore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// envKeys maps provider ids to their conventional environment
// variables, checked when no key is stored on disk.
var envKeys = map[string]string{
	"openai":     "OPENAI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
	"gemini":     "GEMINI_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
}

// Store reads and writes per-provider API keys. The file is rewritten
// whole on every mutation; keys are kept in memory between calls.
type Store struct {
	mu   sync.Mutex
	path string
	keys map[string]string
}

// Open loads the key store at path, creating an empty one when the
// file does not exist.
func Open(path string) (*Store, error) {
	s := &Store{path: path, keys: make(map[string]string)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read key store: %w", err)
	}

	if err := json.Unmarshal(data, &s.keys); err != nil {
		return nil, fmt.Errorf("parse key store %s: %w", path, err)
	}
	return s, nil
}

// DefaultPath resolves the key store file path:
// 1. QUIZMARK_KEYSTORE environment variable
// 2. $XDG_DATA_HOME/quizmark/keys.json
// 3. ~/.local/share/quizmark/keys.json
func DefaultPath() (string, error) {
	if p := os.Getenv("QUIZMARK_KEYSTORE"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "quizmark", "keys.json"), nil
}

// Key sources reported by Lookup.
const (
	SourceStore = "store"
	SourceEnv   = "env"
)

// Get returns the key for a provider: the stored key if present,
// otherwise the provider's conventional environment variable. The
// second return reports whether any key was found.
func (s *Store) Get(provider string) (string, bool) {
	key, _, ok := s.Lookup(provider)
	return key, ok
}

// Lookup is Get plus provenance: the second return is SourceStore or
// SourceEnv. Stored keys win over the environment.
func (s *Store) Lookup(provider string) (string, string, bool) {
	s.mu.Lock()
	if k, ok := s.keys[provider]; ok && k != "" {
		s.mu.Unlock()
		return k, SourceStore, true
	}
	s.mu.Unlock()

	if env, ok := envKeys[provider]; ok {
		if k := os.Getenv(env); k != "" {
			return k, SourceEnv, true
		}
	}
	return "", "", false
}

// Set stores a key for a provider and writes the file.
func (s *Store) Set(provider, key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("empty API key for provider %q", provider)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[provider] = key
	return s.save()
}

// Delete removes a provider's stored key and writes the file. Deleting
// a key that is not stored is not an error.
func (s *Store) Delete(provider string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, provider)
	return s.save()
}

// Providers returns the provider ids with a stored key, sorted.
func (s *Store) Providers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.keys))
	for id := range s.keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// save writes the key file with owner-only permissions. Caller holds
// s.mu.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create key store dir: %w", err)
	}

	data, err := json.MarshalIndent(s.keys, "", "  ")
	if err != nil {
		return fmt.Errorf("encode key store: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write key store: %w", err)
	}
	return nil
}

// Mask returns a redacted form of a key for display, keeping the first
// and last four characters.
func Mask(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", 4) + key[len(key)-4:]
}
