package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"clip-summarize/internal/config"
	"clip-summarize/internal/infra/settings"
	"clip-summarize/internal/observability/logging"
	"clip-summarize/internal/observability/tracing"
)

// app holds what every subcommand needs once flags and environment are parsed.
type app struct {
	cfg      *config.AppConfig
	logger   *slog.Logger
	settings *settings.Store
	out      io.Writer
	quiet    bool
	shutdown tracing.ShutdownFunc
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var (
		envFile      string
		vaultDir     string
		settingsFile string
	)

	root := &cobra.Command{
		Use:   "clip-summarize",
		Short: "Summarize markdown notes with an AI completion API",
		Long: `clip-summarize reads a markdown note, asks OpenAI or Anthropic for a summary
and writes the summary back into the note: as a section at the top or bottom,
or as a "summary" key in the YAML frontmatter.

In watch mode every new note created in the vault is summarized automatically.`,
		Version:       fmt.Sprintf("%s (commit %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, envFile, vaultDir, settingsFile)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default: .env when present)")
	root.PersistentFlags().StringVar(&vaultDir, "vault", "", "vault root directory (overrides CLIP_VAULT_DIR)")
	root.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file (overrides CLIP_SETTINGS_FILE)")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "do not print notices to stdout")

	root.AddCommand(
		newSummarizeCmd(a),
		newWatchCmd(a),
		newSettingsCmd(a),
	)
	return root
}

// init loads the environment, process configuration, logger, settings store
// and tracing, in that order.
func (a *app) init(cmd *cobra.Command, envFile, vaultDir, settingsFile string) error {
	if err := loadDotEnv(envFile); err != nil {
		return err
	}

	cfg, err := config.LoadAppConfig()
	if err != nil {
		return err
	}
	if vaultDir != "" {
		cfg.VaultDir = vaultDir
	}
	if settingsFile != "" {
		cfg.SettingsFile = settingsFile
	}
	if cfg.SettingsFile == "" {
		path, err := settings.DefaultPath()
		if err != nil {
			return err
		}
		cfg.SettingsFile = path
	}
	a.cfg = cfg

	a.out = cmd.OutOrStdout()
	a.logger = logging.NewLogger(cmd.ErrOrStderr(), cfg.Observe.LogLevel, cfg.Observe.LogFormat)
	slog.SetDefault(a.logger)
	a.settings = settings.NewStore(cfg.SettingsFile)

	shutdown, err := tracing.InitProvider(cmd.Context(), tracing.ConfigFromEnv(version))
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	a.shutdown = shutdown

	a.logger.Debug("configuration loaded",
		slog.String("vault", cfg.VaultDir),
		slog.String("settings", cfg.SettingsFile),
		slog.Duration("settle_delay", cfg.SettleDelay),
		slog.Duration("request_timeout", cfg.Summarizer.RequestTimeout))
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}
	if err := a.shutdown(ctx); err != nil {
		a.logger.Warn("tracing shutdown failed", slog.Any("error", err))
	}
	return nil
}

// loadDotEnv loads path, or ./.env when path is empty and the file exists.
// Variables already set in the environment win.
func loadDotEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
