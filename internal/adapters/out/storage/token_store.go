package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/eveeze/ema-spa-website-sub000/internal/config"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

// FileTokenStore хранит единственный bearer-токен в файле.
// Эквивалент localStorage: один токен под фиксированным ключом.
type FileTokenStore struct {
	path   string
	logger out.LoggerPort
}

func NewFileTokenStore(cfg *config.Config, logger out.LoggerPort) *FileTokenStore {
	return &FileTokenStore{
		path:   cfg.Auth.TokenFile,
		logger: logger,
	}
}

func (s *FileTokenStore) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		s.logger.Error("token.load_failed", out.LogFields{
			"path":  s.path,
			"error": err.Error(),
		})
		return "", err
	}

	return strings.TrimSpace(string(raw)), nil
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		s.logger.Error("token.save_failed", out.LogFields{
			"path":  s.path,
			"error": err.Error(),
		})
		return err
	}

	return nil
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		s.logger.Error("token.clear_failed", out.LogFields{
			"path":  s.path,
			"error": err.Error(),
		})
		return err
	}

	return nil
}
