package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/runbuddy/runbuddy/internal/models"
)

// PlanPath returns the training plan file path for a runner name.
func PlanPath(dir, name string) string {
	return filepath.Join(dir, name+"_training_plan.txt")
}

// SavePlan writes one "week,day,distance,pace,completed" line per workout,
// 1-based week and day, and returns the file path.
func SavePlan(dir, name string, p models.Plan) (string, error) {
	lines := make([]string, 0, len(p.Workouts))
	for _, w := range p.Workouts {
		done := 0
		if w.Completed {
			done = 1
		}
		lines = append(lines, fmt.Sprintf("%d,%d,%.3f,%.3f,%d\n",
			w.Week+1, w.Day+1, w.DistanceMiles, w.PaceMinPerMile, done))
	}

	path := PlanPath(dir, name)
	if err := writeLines(path, lines); err != nil {
		return "", fmt.Errorf("saving training plan: %w", err)
	}
	return path, nil
}

// LoadPlan parses a file written by SavePlan. Lines must be in week-major,
// day-minor order and cover whole weeks.
func LoadPlan(path string) (models.Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Plan{}, fmt.Errorf("opening training plan: %w", err)
	}
	defer f.Close()

	var p models.Plan
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		w, err := parsePlanLine(line)
		if err != nil {
			return models.Plan{}, fmt.Errorf("%w: %s line %d: %v", ErrMalformed, path, lineNo, err)
		}
		i := len(p.Workouts)
		if w.Week != i/models.DaysPerWeek || w.Day != i%models.DaysPerWeek {
			return models.Plan{}, fmt.Errorf("%w: %s line %d: week %d day %d out of order",
				ErrMalformed, path, lineNo, w.Week+1, w.Day+1)
		}
		p.Workouts = append(p.Workouts, w)
	}
	if err := scanner.Err(); err != nil {
		return models.Plan{}, fmt.Errorf("reading training plan: %w", err)
	}
	if len(p.Workouts) == 0 || len(p.Workouts)%models.DaysPerWeek != 0 {
		return models.Plan{}, fmt.Errorf("%w: %s: %d workouts is not a whole number of weeks",
			ErrMalformed, path, len(p.Workouts))
	}
	return p, nil
}

func parsePlanLine(line string) (models.Workout, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 5 {
		return models.Workout{}, fmt.Errorf("want 5 fields, got %d", len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	week, err := strconv.Atoi(fields[0])
	if err != nil || week < 1 {
		return models.Workout{}, fmt.Errorf("week %q", fields[0])
	}
	day, err := strconv.Atoi(fields[1])
	if err != nil || day < 1 || day > models.DaysPerWeek {
		return models.Workout{}, fmt.Errorf("day %q", fields[1])
	}
	distance, err := models.ParseNonNegative(fields[2])
	if err != nil {
		return models.Workout{}, fmt.Errorf("distance: %w", err)
	}
	pace, err := models.ParseNonNegative(fields[3])
	if err != nil {
		return models.Workout{}, fmt.Errorf("pace: %w", err)
	}
	// Older files wrote the flag as 0.0/1.0.
	done, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return models.Workout{}, fmt.Errorf("completed flag %q", fields[4])
	}

	return models.Workout{
		Week:           week - 1,
		Day:            day - 1,
		DistanceMiles:  distance,
		PaceMinPerMile: pace,
		Completed:      done > 0,
	}, nil
}
