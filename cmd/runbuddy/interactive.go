package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/runbuddy/runbuddy/internal/models"
	"github.com/runbuddy/runbuddy/internal/plan"
	"github.com/runbuddy/runbuddy/internal/session"
	"github.com/runbuddy/runbuddy/internal/storage"
	"github.com/runbuddy/runbuddy/internal/tui"
)

// runInteractive shows the intake form, waits for a profile, then hands a
// freshly generated plan to the schedule screen. Problems the runner should
// see are written to errOut; everything else goes to the log file.
func runInteractive(ctx context.Context, opts *options, errOut io.Writer) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	f, err := openLogFile(cfg)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	if f != nil {
		defer f.Close()
		logOut = f
	}
	log := newLogger(logOut, cfg, opts.verbose)
	log.Info("RunBuddy starting", "version", Version, "data_dir", cfg.DataDir)

	base, err := plan.LoadBase(cfg.BasePlan)
	if err != nil {
		log.Error("failed to load base plan", "path", cfg.BasePlan, "error", err)
		return fmt.Errorf("loading base plan: %w", err)
	}

	archive, err := openArchive(cfg, log)
	if err != nil {
		log.Error("failed to open plan archive", "error", err)
		return fmt.Errorf("opening plan archive: %w", err)
	}
	if archive != nil {
		defer archive.Close()
	}

	ready := session.NewReady()
	intakeDone := make(chan error, 1)
	go func() {
		intakeDone <- tui.RunIntake(ctx, ready, profileLoader(cfg.DataDir))
	}()

	res, err := ready.Wait(ctx)
	if intakeErr := <-intakeDone; intakeErr != nil {
		log.Error("intake screen failed", "error", intakeErr)
	}
	if errors.Is(err, session.ErrAborted) || errors.Is(err, context.Canceled) {
		log.Info("intake closed without a profile")
		return nil
	}
	if err != nil {
		return err
	}

	sess, err := session.New(ctx, res.Profile, base, sessionOptions(cfg, archive, log))
	if err != nil {
		return err
	}

	if res.Loaded {
		log.Info("profile loaded, saved plan progress is not restored", "name", res.Profile.Name)
	} else if _, err := sess.SaveProfile(); err != nil {
		fmt.Fprintf(errOut, "Warning! Could not save your profile: %v\n", err)
	}
	if _, err := sess.SavePlan(); err != nil {
		fmt.Fprintf(errOut, "Warning! Could not save the training plan: %v\n", err)
	}

	runErr := tui.RunSchedule(ctx, sess)

	sess.Snapshot(context.WithoutCancel(ctx))
	pr := sess.Progress()
	log.Info("session finished", "runs_completed", pr.RunsCompleted, "total_runs", pr.TotalRuns, "percent", pr.Percent)

	if runErr != nil && ctx.Err() == nil {
		return fmt.Errorf("schedule screen: %w", runErr)
	}
	return nil
}

// profileLoader resolves what the runner typed into the load prompt.
func profileLoader(dataDir string) tui.ProfileLoader {
	return func(input string) (models.Profile, error) {
		if input == "" {
			return models.Profile{}, errors.New("enter a name or a file path")
		}
		return storage.LoadProfile(resolveProfilePath(dataDir, input))
	}
}

// resolveProfilePath maps a bare runner name to <name>_profile.txt in the data
// directory. Anything else is a path; relative paths that do not exist from
// the working directory are tried against the data directory.
func resolveProfilePath(dataDir, input string) string {
	if !strings.ContainsAny(input, `/\`) && filepath.Ext(input) == "" {
		return storage.ProfilePath(dataDir, input)
	}
	if filepath.IsAbs(input) {
		return input
	}
	if _, err := os.Stat(input); err == nil {
		return input
	}
	return filepath.Join(dataDir, input)
}
