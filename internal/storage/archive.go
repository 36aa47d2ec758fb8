package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/runbuddy/runbuddy/internal/models"
	_ "modernc.org/sqlite"
)

// PlanRecord describes one generated plan in the archive.
type PlanRecord struct {
	ID         uuid.UUID
	Profile    models.Profile
	Weeks      int
	TotalMiles float64
	CreatedAt  time.Time
}

// HistoryEntry is a plan with its most recent progress snapshot, if any.
type HistoryEntry struct {
	PlanRecord
	Progress models.Progress
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		age         INTEGER NOT NULL,
		ability     INTEGER NOT NULL,
		time_group  INTEGER NOT NULL,
		weeks       INTEGER NOT NULL,
		total_miles REAL NOT NULL,
		created_at  INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS progress (
		plan_id         TEXT NOT NULL REFERENCES plans(id),
		runs_completed  INTEGER NOT NULL,
		total_runs      INTEGER NOT NULL,
		miles_completed REAL NOT NULL,
		percent         INTEGER NOT NULL,
		recorded_at     INTEGER NOT NULL
	)`,
}

// Archive journals generated plans and progress snapshots in SQLite.
// It is history only; plans are never restored from it.
type Archive struct {
	db  *sql.DB
	now func() time.Time
}

// OpenArchive opens (or creates) the archive database at path.
func OpenArchive(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating archive dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating archive tables: %w", err)
		}
	}

	return &Archive{db: db, now: time.Now}, nil
}

// RecordPlan stores a newly generated plan.
func (a *Archive) RecordPlan(ctx context.Context, r PlanRecord) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = a.now()
	}
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO plans (id, name, age, ability, time_group, weeks, total_miles, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Profile.Name, int(r.Profile.Age), int(r.Profile.Ability), int(r.Profile.Time),
		r.Weeks, r.TotalMiles, r.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("recording plan %s: %w", r.ID, err)
	}
	return nil
}

// RecordProgress appends a progress snapshot for a plan.
func (a *Archive) RecordProgress(ctx context.Context, id uuid.UUID, p models.Progress) error {
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO progress (plan_id, runs_completed, total_runs, miles_completed, percent, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id.String(), p.RunsCompleted, p.TotalRuns, p.MilesCompleted, p.Percent, a.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("recording progress for %s: %w", id, err)
	}
	return nil
}

// History lists archived plans, newest first, each with its latest snapshot.
// An empty name lists every runner.
func (a *Archive) History(ctx context.Context, name string) ([]HistoryEntry, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT p.id, p.name, p.age, p.ability, p.time_group, p.weeks, p.total_miles, p.created_at,
		        COALESCE(g.runs_completed, 0), COALESCE(g.total_runs, 0),
		        COALESCE(g.miles_completed, 0), COALESCE(g.percent, 0)
		 FROM plans p
		 LEFT JOIN progress g ON g.rowid = (
		     SELECT MAX(rowid) FROM progress WHERE plan_id = p.id)
		 WHERE ? = '' OR p.name = ?
		 ORDER BY p.created_at DESC, p.rowid DESC`,
		name, name,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var (
			e       HistoryEntry
			id      string
			age     int
			ability int
			tg      int
			created int64
		)
		if err := rows.Scan(&id, &e.Profile.Name, &age, &ability, &tg, &e.Weeks, &e.TotalMiles, &created,
			&e.Progress.RunsCompleted, &e.Progress.TotalRuns, &e.Progress.MilesCompleted, &e.Progress.Percent); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		e.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("archived plan id %q: %w", id, err)
		}
		e.Profile.Age = models.AgeCategory(age)
		e.Profile.Ability = models.AbilityCategory(ability)
		e.Profile.Time = models.TimeCategory(tg)
		e.CreatedAt = time.Unix(0, created)
		e.Progress.TotalMiles = e.TotalMiles
		e.Progress.Complete = e.Progress.TotalRuns > 0 && e.Progress.RunsCompleted == e.Progress.TotalRuns
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the archive database.
func (a *Archive) Close() error {
	return a.db.Close()
}
