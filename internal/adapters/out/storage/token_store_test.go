package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eveeze/ema-spa-website-sub000/internal/config"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

type nopLogger struct{}

func (l nopLogger) Debug(event string, fields out.LogFields) {}
func (l nopLogger) Info(event string, fields out.LogFields)  {}
func (l nopLogger) Warn(event string, fields out.LogFields)  {}
func (l nopLogger) Error(event string, fields out.LogFields) {}
func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort {
	return l
}
func (l nopLogger) WithModule(module string) out.LoggerPort {
	return l
}

func newTestTokenStore(t *testing.T) *FileTokenStore {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth.TokenFile = filepath.Join(t.TempDir(), "session", "token")
	return NewFileTokenStore(cfg, nopLogger{})
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	store := newTestTokenStore(t)

	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store := newTestTokenStore(t)

	if err := store.Save("session-token"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "session-token" {
		t.Fatalf("expected saved token, got %q", token)
	}

	info, err := os.Stat(store.path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}
}

func TestLoadTrimsWhitespace(t *testing.T) {
	store := newTestTokenStore(t)

	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(store.path, []byte("  token-with-newline\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "token-with-newline" {
		t.Fatalf("expected trimmed token, got %q", token)
	}
}

func TestClearRemovesTokenAndToleratesMissing(t *testing.T) {
	store := newTestTokenStore(t)

	if err := store.Save("session-token"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load after clear: %v", err)
	}
	if token != "" {
		t.Fatalf("expected no token after clear, got %q", token)
	}

	// Повторная очистка не ошибка
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear on missing file: %v", err)
	}
}
