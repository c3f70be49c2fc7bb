package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clip-summarize/internal/apperror"
	"clip-summarize/internal/domain/entity"
)

// executeCommand runs root with args and captures its output.
func executeCommand(root *cobra.Command, args ...string) (stdout string, stderr string, err error) {
	stdoutBuf := new(bytes.Buffer)
	stderrBuf := new(bytes.Buffer)
	root.SetOut(stdoutBuf)
	root.SetErr(stderrBuf)
	root.SetArgs(args)

	err = root.Execute()

	return stdoutBuf.String(), stderrBuf.String(), err
}

// testEnv points the CLI at a fresh vault and settings file.
func testEnv(t *testing.T) (vaultDir, settingsFile string) {
	t.Helper()

	dir := t.TempDir()
	vaultDir = filepath.Join(dir, "vault")
	require.NoError(t, os.MkdirAll(filepath.Join(vaultDir, "notes"), 0o755))
	settingsFile = filepath.Join(dir, "config", "settings.yaml")

	for _, key := range []string{
		"CLIP_SETTLE_DELAY", "CLIP_REQUEST_TIMEOUT", "CLIP_MAX_CONTENT_CHARS",
		"OPENAI_BASE_URL", "ANTHROPIC_BASE_URL", "DISCORD_WEBHOOK_URL", "SLACK_WEBHOOK_URL",
		"NOTIFY_TIMEOUT", "METRICS_PORT", "LOG_FORMAT", "OTEL_ENABLED",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("CLIP_VAULT_DIR", vaultDir)
	t.Setenv("CLIP_SETTINGS_FILE", settingsFile)
	return vaultDir, settingsFile
}

func writeNote(t *testing.T, vaultDir, rel, body string) string {
	t.Helper()
	path := filepath.Join(vaultDir, filepath.FromSlash(rel))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func readNote(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRootCmdHelp(t *testing.T) {
	stdout, _, err := executeCommand(newRootCmd(), "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Usage:")
	for _, sub := range []string{"summarize", "watch", "settings"} {
		assert.Contains(t, stdout, sub)
	}
	assert.Contains(t, stdout, "--vault")
	assert.Contains(t, stdout, "--env-file")
}

func TestRootCmdVersion(t *testing.T) {
	stdout, _, err := executeCommand(newRootCmd(), "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, version)
}

func TestSettingsSetAndShow(t *testing.T) {
	_, settingsFile := testEnv(t)

	stdout, _, err := executeCommand(newRootCmd(), "settings", "set", "summary_position", "frontmatter")
	require.NoError(t, err)
	assert.Equal(t, "summary_position = frontmatter\n", stdout)

	stdout, _, err = executeCommand(newRootCmd(), "settings", "set", "api_key", "sk-abcdef1234")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1234")
	assert.NotContains(t, stdout, "sk-abcdef")

	info, err := os.Stat(settingsFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	stdout, _, err = executeCommand(newRootCmd(), "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Summary Position")
	assert.Contains(t, stdout, "frontmatter")
	assert.Contains(t, stdout, "provider")
	assert.NotContains(t, stdout, "sk-abcdef")
}

func TestSettingsShow_LocalizedLabels(t *testing.T) {
	testEnv(t)

	_, _, err := executeCommand(newRootCmd(), "settings", "set", "language", "ja")
	require.NoError(t, err)

	stdout, _, err := executeCommand(newRootCmd(), "settings", "show")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Summary Position")
	assert.Contains(t, stdout, "summary_position")
	assert.Contains(t, stdout, "プロバイダー")
}

func TestSettingsSet_Invalid(t *testing.T) {
	_, settingsFile := testEnv(t)

	_, _, err := executeCommand(newRootCmd(), "settings", "set", "summary_position", "middle")
	require.Error(t, err)

	_, _, err = executeCommand(newRootCmd(), "settings", "set", "colour", "blue")
	require.ErrorIs(t, err, entity.ErrUnknownSetting)

	_, statErr := os.Stat(settingsFile)
	assert.True(t, os.IsNotExist(statErr), "nothing may be written for rejected values")
}

func TestSettingsSet_DoesNotPersistEnvKey(t *testing.T) {
	_, settingsFile := testEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-from-env-9999")

	_, _, err := executeCommand(newRootCmd(), "settings", "set", "model", "gpt-4o")
	require.NoError(t, err)
	assert.NotContains(t, readNote(t, settingsFile), "sk-from-env")
}

func TestSettingsPath(t *testing.T) {
	_, settingsFile := testEnv(t)

	stdout, _, err := executeCommand(newRootCmd(), "settings", "path")
	require.NoError(t, err)
	assert.Equal(t, settingsFile+"\n", stdout)
}

func TestSummarize_NoopProvider(t *testing.T) {
	vaultDir, _ := testEnv(t)
	note := writeNote(t, vaultDir, "notes/a.md", "Body text here")

	_, _, err := executeCommand(newRootCmd(), "settings", "set", "provider", "noop")
	require.NoError(t, err)

	stdout, _, err := executeCommand(newRootCmd(), "summarize", "notes/a.md")
	require.NoError(t, err)

	assert.Equal(t, "## AI Summary\n\nBody text here\n\n---\n\nBody text here", readNote(t, note))
	assert.Contains(t, stdout, "Generating summary...")
	assert.Contains(t, stdout, "Summary generated successfully")
}

func TestSummarize_VaultFlag(t *testing.T) {
	testEnv(t)
	other := t.TempDir()
	note := writeNote(t, other, "b.md", "Other vault")

	_, _, err := executeCommand(newRootCmd(), "settings", "set", "provider", "noop")
	require.NoError(t, err)

	_, _, err = executeCommand(newRootCmd(), "--vault", other, "summarize", "b.md")
	require.NoError(t, err)
	assert.Contains(t, readNote(t, note), "## AI Summary")
}

func TestSummarize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, vaultDir string)
		args  []string
		code  apperror.Code
	}{
		{
			name: "no file",
			args: []string{"summarize"},
			code: apperror.NoActiveFile,
		},
		{
			name: "missing api key",
			setup: func(t *testing.T, vaultDir string) {
				writeNote(t, vaultDir, "notes/a.md", "Body")
			},
			args: []string{"summarize", "notes/a.md"},
			code: apperror.APIKeyNotSet,
		},
		{
			name: "already summarized",
			setup: func(t *testing.T, vaultDir string) {
				writeNote(t, vaultDir, "notes/a.md", "---\nsummary: \"x\"\n---\nBody")
				_, _, err := executeCommand(newRootCmd(), "settings", "set", "provider", "noop")
				require.NoError(t, err)
			},
			args: []string{"summarize", "notes/a.md"},
			code: apperror.FileAlreadySummarized,
		},
		{
			name: "missing note",
			setup: func(t *testing.T, _ string) {
				_, _, err := executeCommand(newRootCmd(), "settings", "set", "provider", "noop")
				require.NoError(t, err)
			},
			args: []string{"summarize", "notes/missing.md"},
			code: apperror.FileReadError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vaultDir, _ := testEnv(t)
			if tt.setup != nil {
				tt.setup(t, vaultDir)
			}

			stdout, _, err := executeCommand(newRootCmd(), tt.args...)
			require.Error(t, err)
			assert.True(t, apperror.HasCode(err, tt.code), "got %v", err)
			assert.Contains(t, stdout, "["+string(tt.code)+"]")
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CLIP_DOTENV_TEST=from-file\n"), 0o600))
	t.Setenv("CLIP_DOTENV_TEST", "")
	require.NoError(t, os.Unsetenv("CLIP_DOTENV_TEST"))

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("CLIP_DOTENV_TEST"))

	assert.Error(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestSummarize_Quiet(t *testing.T) {
	vaultDir, _ := testEnv(t)
	note := writeNote(t, vaultDir, "notes/q.md", "Quiet body")

	_, _, err := executeCommand(newRootCmd(), "settings", "set", "provider", "noop")
	require.NoError(t, err)

	stdout, _, err := executeCommand(newRootCmd(), "--quiet", "summarize", "notes/q.md")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, readNote(t, note), "## AI Summary")
}
