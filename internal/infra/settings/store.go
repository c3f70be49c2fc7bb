// Package settings persists user settings as a YAML file.
package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"clip-summarize/internal/domain/entity"
)

// FileName is the default settings file name inside the config directory.
const FileName = "settings.yaml"

// API key environment variables consulted when no key is stored.
const (
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// Store reads and writes settings at a fixed path.
type Store struct {
	path   string
	getenv func(string) string
	mu     sync.Mutex
}

// NewStore creates a Store for path.
func NewStore(path string) *Store {
	return &Store{path: path, getenv: os.Getenv}
}

// DefaultPath returns <user config dir>/clip-summarize/settings.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, "clip-summarize", FileName), nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored settings with the API key filled from the
// environment when none is stored.
func (s *Store) Load(ctx context.Context) (entity.Settings, error) {
	settings, err := s.LoadStored(ctx)
	if err != nil {
		return settings, err
	}
	return s.applyEnv(settings), nil
}

// LoadStored returns exactly what is persisted, merged over
// entity.DefaultSettings. A missing file yields the defaults.
func (s *Store) LoadStored(ctx context.Context) (entity.Settings, error) {
	settings := entity.DefaultSettings()
	if err := ctx.Err(); err != nil {
		return settings, err
	}

	s.mu.Lock()
	data, err := os.ReadFile(s.path)
	s.mu.Unlock()

	if errors.Is(err, fs.ErrNotExist) {
		slog.DebugContext(ctx, "settings file not found, using defaults", slog.String("path", s.path))
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return entity.DefaultSettings(), fmt.Errorf("parse settings %s: %w", s.path, err)
	}
	if err := settings.Validate(); err != nil {
		return entity.DefaultSettings(), fmt.Errorf("invalid settings %s: %w", s.path, err)
	}
	return settings, nil
}

// Save validates settings and writes them atomically with owner-only
// permissions, creating the parent directory when needed.
func (s *Store) Save(ctx context.Context, settings entity.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+FileName+".*")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod settings: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close settings: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}

	slog.DebugContext(ctx, "settings saved", slog.String("path", s.path))
	return nil
}

func (s *Store) applyEnv(settings entity.Settings) entity.Settings {
	if settings.APIKey != "" {
		return settings
	}
	switch settings.Provider {
	case entity.ProviderOpenAI:
		settings.APIKey = s.getenv(EnvOpenAIAPIKey)
	case entity.ProviderAnthropic:
		settings.APIKey = s.getenv(EnvAnthropicAPIKey)
	}
	return settings
}
