// Package vault implements the document repository on a directory of
// markdown notes.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"clip-summarize/internal/domain/entity"
)

var (
	// ErrOutsideVault is returned for paths that resolve outside the vault root.
	ErrOutsideVault = errors.New("path is outside the vault")

	// ErrNotAFile is returned when a path names a directory.
	ErrNotAFile = errors.New("path is not a regular file")
)

// defaultFileMode is used when a written note does not exist yet.
const defaultFileMode fs.FileMode = 0o644

// Store reads and writes notes below a root directory. Relative paths are
// resolved against the root; absolute paths must lie inside it.
type Store struct {
	root   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewStore creates a Store rooted at root. The root must be an existing directory.
func NewStore(root string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve vault root %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat vault root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault root %q is not a directory", abs)
	}

	return &Store{root: abs, logger: logger}, nil
}

// Root returns the absolute vault directory.
func (s *Store) Root() string {
	return s.root
}

// resolve returns the absolute form of path and rejects anything that
// escapes the root.
func (s *Store) resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path: %w", ErrOutsideVault)
	}

	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(s.root, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", path, ErrOutsideVault)
	}
	return abs, nil
}

// Rel returns path relative to the vault root using forward slashes, the
// form used for watch-folder matching.
func (s *Store) Rel(path string) (string, error) {
	abs, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(s.root, abs)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, ErrOutsideVault)
	}
	return filepath.ToSlash(rel), nil
}

// Read returns the note at path.
func (s *Store) Read(ctx context.Context, path string) (*entity.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat note: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotAFile)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read note: %w", err)
	}

	s.logger.DebugContext(ctx, "note read",
		slog.String("path", abs),
		slog.Int("bytes", len(data)))

	return &entity.Document{Path: abs, Text: string(data)}, nil
}

// Write replaces the note's contents in place, keeping its file mode. The
// file is truncated and rewritten rather than renamed so that filesystem
// watchers see a write, not a new file.
func (s *Store) Write(ctx context.Context, doc *entity.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("nil document")
	}

	abs, err := s.resolve(doc.Path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mode := defaultFileMode
	if info, err := os.Stat(abs); err == nil {
		if !info.Mode().IsRegular() {
			return fmt.Errorf("%s: %w", doc.Path, ErrNotAFile)
		}
		mode = info.Mode().Perm()
	}

	file, err := os.OpenFile(abs, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("open note for write: %w", err)
	}
	if _, err := file.WriteString(doc.Text); err != nil {
		_ = file.Close()
		return fmt.Errorf("write note: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close note: %w", err)
	}

	s.logger.DebugContext(ctx, "note written",
		slog.String("path", abs),
		slog.Int("bytes", len(doc.Text)))
	return nil
}
