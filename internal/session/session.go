// Package session owns a runner's generated plan for the life of one run of
// the program and accepts update commands from the view.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/runbuddy/runbuddy/internal/models"
	"github.com/runbuddy/runbuddy/internal/plan"
	"github.com/runbuddy/runbuddy/internal/storage"
)

// Recorder journals plans and progress. *storage.Archive implements it.
type Recorder interface {
	RecordPlan(ctx context.Context, r storage.PlanRecord) error
	RecordProgress(ctx context.Context, id uuid.UUID, p models.Progress) error
}

// Options configures a Session.
type Options struct {
	// DataDir is where the profile and plan files are written.
	DataDir string
	// Recorder is optional.
	Recorder Recorder
	Log      *slog.Logger
}

// Session holds the profile and the plan generated from it.
type Session struct {
	id      uuid.UUID
	profile models.Profile
	plan    models.Plan
	dataDir string
	rec     Recorder
	log     *slog.Logger
}

// New generates a fresh plan for profile from base. Saved plans are never
// reloaded here: every session starts with nothing checked off.
func New(ctx context.Context, profile models.Profile, base models.Plan, opts Options) (*Session, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	p, err := plan.ForProfile(base, profile)
	if err != nil {
		return nil, fmt.Errorf("generating plan: %w", err)
	}

	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	id := uuid.New()
	s := &Session{
		id:      id,
		profile: profile,
		plan:    p,
		dataDir: opts.DataDir,
		rec:     opts.Recorder,
		log:     log.With("plan_id", id.String()),
	}

	pr := p.Progress()
	s.log.Info("plan generated", "name", profile.Name, "weeks", p.Weeks(), "total_miles", pr.TotalMiles)

	if s.rec != nil {
		err := s.rec.RecordPlan(ctx, storage.PlanRecord{
			ID:         s.id,
			Profile:    profile,
			Weeks:      p.Weeks(),
			TotalMiles: pr.TotalMiles,
		})
		if err != nil {
			s.log.Warn("archiving plan failed", "error", err)
		}
	}
	return s, nil
}

// ID is the plan id recorded in the archive.
func (s *Session) ID() uuid.UUID { return s.id }

// Profile returns the runner the plan was generated for.
func (s *Session) Profile() models.Profile { return s.profile }

// Plan returns a copy of the current plan.
func (s *Session) Plan() models.Plan {
	return s.plan.Clone()
}

// Toggle flips the completion flag of workout index.
func (s *Session) Toggle(index int) (models.Workout, error) {
	w, err := s.plan.Toggle(index)
	if err != nil {
		return models.Workout{}, err
	}
	s.log.Debug("workout toggled", "week", w.Week+1, "day", w.Day+1, "completed", w.Completed)
	return w, nil
}

// Progress summarizes the plan's completion so far.
func (s *Session) Progress() models.Progress {
	return s.plan.Progress()
}

// SaveProfile writes the profile file. On failure the in-memory profile is kept.
func (s *Session) SaveProfile() (string, error) {
	path, err := storage.SaveProfile(s.dataDir, s.profile)
	if err != nil {
		s.log.Warn("profile not saved", "error", err)
		return "", err
	}
	s.log.Info("profile saved", "path", path)
	return path, nil
}

// SavePlan writes the plan file, completion flags included.
func (s *Session) SavePlan() (string, error) {
	path, err := storage.SavePlan(s.dataDir, s.profile.Name, s.plan)
	if err != nil {
		s.log.Warn("training plan not saved", "error", err)
		return "", err
	}
	s.log.Debug("training plan saved", "path", path)
	return path, nil
}

// Snapshot records the current progress with the recorder, if any.
func (s *Session) Snapshot(ctx context.Context) {
	if s.rec == nil {
		return
	}
	if err := s.rec.RecordProgress(ctx, s.id, s.plan.Progress()); err != nil {
		s.log.Warn("archiving progress failed", "error", err)
	}
}
