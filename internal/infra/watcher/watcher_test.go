package watcher_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clip-summarize/internal/infra/watcher"
)

const eventTimeout = 3 * time.Second

// startWatcher runs a watcher on root and returns the channel of handled paths.
func startWatcher(t *testing.T, root string, fail bool) <-chan string {
	t.Helper()

	seen := make(chan string, 16)
	handler := func(_ context.Context, path string) error {
		seen <- path
		if fail {
			return errors.New("handler failed")
		}
		return nil
	}

	w, err := watcher.New(root, handler, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(eventTimeout):
			t.Error("watcher did not stop")
		}
	})
	return seen
}

func expectPath(t *testing.T, seen <-chan string, want string) {
	t.Helper()
	select {
	case got := <-seen:
		assert.Equal(t, want, got)
	case <-time.After(eventTimeout):
		t.Fatalf("timed out waiting for %s", want)
	}
}

func expectNothing(t *testing.T, seen <-chan string) {
	t.Helper()
	select {
	case got := <-seen:
		t.Fatalf("unexpected event for %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("# note"), 0o644))
}

func TestWatcher_ReportsMarkdownCreates(t *testing.T) {
	root, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)
	seen := startWatcher(t, root, false)

	writeFile(t, filepath.Join(root, "ignored.txt"))
	writeFile(t, filepath.Join(root, ".hidden.md"))
	expectNothing(t, seen)

	note := filepath.Join(root, "clip.md")
	writeFile(t, note)
	expectPath(t, seen, note)
}

func TestWatcher_WatchesExistingAndNewDirectories(t *testing.T) {
	root, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "existing", "deep"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".obsidian"), 0o755))

	seen := startWatcher(t, root, false)

	deep := filepath.Join(root, "existing", "deep", "a.md")
	writeFile(t, deep)
	expectPath(t, seen, deep)

	writeFile(t, filepath.Join(root, ".obsidian", "workspace.md"))
	expectNothing(t, seen)

	fresh := filepath.Join(root, "Clippings")
	require.NoError(t, os.Mkdir(fresh, 0o755))
	// let the watcher register the new directory
	time.Sleep(200 * time.Millisecond)

	note := filepath.Join(fresh, "b.MD")
	writeFile(t, note)
	expectPath(t, seen, note)
}

func TestWatcher_DeliversNotesInsideNewDirectories(t *testing.T) {
	root, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)
	seen := startWatcher(t, root, false)

	// build the tree elsewhere so no create event exists for its files
	staging, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(staging, "Imported", "sub"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(staging, "Imported", ".trash"), 0o755))
	writeFile(t, filepath.Join(staging, "Imported", "a.md"))
	writeFile(t, filepath.Join(staging, "Imported", "sub", "b.md"))
	writeFile(t, filepath.Join(staging, "Imported", "notes.txt"))
	writeFile(t, filepath.Join(staging, "Imported", ".draft.md"))
	writeFile(t, filepath.Join(staging, "Imported", ".trash", "old.md"))

	require.NoError(t, os.Rename(filepath.Join(staging, "Imported"), filepath.Join(root, "Imported")))

	expectPath(t, seen, filepath.Join(root, "Imported", "a.md"))
	expectPath(t, seen, filepath.Join(root, "Imported", "sub", "b.md"))
	expectNothing(t, seen)

	// the swept directory is watched from now on
	later := filepath.Join(root, "Imported", "sub", "c.md")
	writeFile(t, later)
	expectPath(t, seen, later)
}

func TestWatcher_HandlerErrorsDoNotStopLoop(t *testing.T) {
	root, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)
	seen := startWatcher(t, root, true)

	first := filepath.Join(root, "first.md")
	writeFile(t, first)
	expectPath(t, seen, first)

	second := filepath.Join(root, "second.md")
	writeFile(t, second)
	expectPath(t, seen, second)
}

func TestNew_Errors(t *testing.T) {
	_, err := watcher.New(t.TempDir(), nil, nil)
	assert.Error(t, err)

	_, err = watcher.New(filepath.Join(t.TempDir(), "missing"), func(context.Context, string) error { return nil }, nil)
	assert.Error(t, err)
}
