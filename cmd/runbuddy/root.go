package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runbuddy/runbuddy/internal/config"
	"github.com/runbuddy/runbuddy/internal/session"
	"github.com/runbuddy/runbuddy/internal/storage"
	"github.com/spf13/cobra"
)

// options holds the global flags.
type options struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "runbuddy",
		Short: "Half marathon training planner",
		Long: `RunBuddy builds a personal half marathon training plan from your age group,
ability level and the time left until race day, then lets you check off
workouts as you go.

Run without arguments to start the interactive screens.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), opts, cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (defaults and RUNBUDDY_* env vars when empty)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newGenerateCmd(opts),
		newShowCmd(),
		newHistoryCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newLogger(w io.Writer, cfg *config.Config, verbose bool) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// headless loads the config and builds a logger writing to w.
func (o *options) headless(w io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, newLogger(w, cfg, o.verbose), nil
}

// openLogFile opens log.file for appending. It returns nil when logging to a
// file is switched off.
func openLogFile(cfg *config.Config) (*os.File, error) {
	path := cfg.LogPath()
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// openArchive opens the plan archive when it is enabled. A nil archive means
// history is off.
func openArchive(cfg *config.Config, log *slog.Logger) (*storage.Archive, error) {
	if !cfg.Archive.Enabled {
		log.Debug("plan archive disabled")
		return nil, nil
	}
	a, err := storage.OpenArchive(cfg.ArchivePath())
	if err != nil {
		return nil, err
	}
	log.Debug("plan archive opened", "path", cfg.ArchivePath())
	return a, nil
}

func sessionOptions(cfg *config.Config, archive *storage.Archive, log *slog.Logger) session.Options {
	opts := session.Options{DataDir: cfg.DataDir, Log: log}
	if archive != nil {
		opts.Recorder = archive
	}
	return opts
}
