// Package watcher reports markdown notes created anywhere in a vault tree.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Handler is invoked for every newly created note. Handlers run one at a
// time on the watcher goroutine.
type Handler func(ctx context.Context, path string) error

// noteExt is the only file extension reported to the handler.
const noteExt = ".md"

// Watcher watches a directory tree recursively. Hidden directories and files
// (names starting with ".") are ignored.
type Watcher struct {
	root    string
	handler Handler
	logger  *slog.Logger
	fsw     *fsnotify.Watcher

	// swept holds notes delivered by the last new-directory sweep, so a
	// create event queued for the same file is not delivered twice.
	swept map[string]struct{}
}

// New creates a Watcher and registers watches for root and every
// non-hidden directory below it. Call Run to start delivering events.
func New(root string, handler Handler, logger *slog.Logger) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watcher: nil handler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve watch root: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		root:    abs,
		handler: handler,
		logger:  logger,
		fsw:     fsw,
		swept:   map[string]struct{}{},
	}

	if err := w.addTree(abs, nil); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run delivers create events until ctx is done, then releases the
// underlying watches. Handler errors are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("failed to close file watcher", slog.Any("error", err))
		}
	}()

	w.logger.InfoContext(ctx, "watching vault", slog.String("root", w.root))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				w.handleCreate(ctx, event.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "file watcher error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) handleCreate(ctx context.Context, path string) {
	if isHidden(filepath.Base(path)) {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		// removed again before we got to it
		w.logger.DebugContext(ctx, "created path vanished", slog.String("path", path))
		return
	}

	if info.IsDir() {
		w.sweepDir(ctx, path)
		return
	}

	if !isNote(path, info) {
		return
	}
	if _, ok := w.swept[path]; ok {
		delete(w.swept, path)
		return
	}

	w.logger.DebugContext(ctx, "note created", slog.String("path", path))
	w.deliver(ctx, path)
}

// sweepDir watches a newly created directory tree and delivers the notes that
// were already inside it before its watch existed (mkdir -p x && cp a.md x/).
func (w *Watcher) sweepDir(ctx context.Context, dir string) {
	var notes []string
	if err := w.addTree(dir, func(path string) { notes = append(notes, path) }); err != nil {
		w.logger.WarnContext(ctx, "failed to watch new directory",
			slog.String("path", dir),
			slog.Any("error", err))
	}

	clear(w.swept)
	for _, path := range notes {
		w.swept[path] = struct{}{}
		w.logger.DebugContext(ctx, "note found in new directory", slog.String("path", path))
		w.deliver(ctx, path)
	}
}

func (w *Watcher) deliver(ctx context.Context, path string) {
	if err := w.handler(ctx, path); err != nil {
		w.logger.ErrorContext(ctx, "note handler failed",
			slog.String("path", path),
			slog.Any("error", err))
	}
}

// addTree adds a watch for dir and every non-hidden directory below it.
// When note is non-nil it receives every note file found on the way.
func (w *Watcher) addTree(dir string, note func(path string)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("walk %s: %w", path, err)
			}
			w.logger.Warn("skipping unreadable path", slog.String("path", path), slog.Any("error", err))
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			if note != nil {
				if info, err := d.Info(); err == nil && isNote(path, info) {
					note(path)
				}
			}
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func isNote(path string, info fs.FileInfo) bool {
	return info.Mode().IsRegular() && strings.EqualFold(filepath.Ext(path), noteExt)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
