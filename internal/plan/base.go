package plan

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/runbuddy/runbuddy/internal/models"
)

// BaseWeeks is the length of the reference schedule every plan derives from.
const BaseWeeks = 8

var (
	// ErrBaseMissing means the base plan resource could not be found.
	ErrBaseMissing = errors.New("base training plan not found")
	// ErrBaseMalformed means the base plan resource could not be parsed into 8x7 workouts.
	ErrBaseMalformed = errors.New("base training plan malformed")
)

//go:embed basetrainingplan.txt
var defaultBase []byte

// LoadBase reads the base plan from path, or the embedded default when path is empty.
func LoadBase(path string) (models.Plan, error) {
	if path == "" {
		return ParseBase(bytes.NewReader(defaultBase))
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Plan{}, fmt.Errorf("%w: %s", ErrBaseMissing, path)
		}
		return models.Plan{}, fmt.Errorf("opening base plan: %w", err)
	}
	defer f.Close()
	return ParseBase(f)
}

// ParseBase parses lines of "week, day, distance, pace, completed".
//
// The week field is a marker repeated on each day of that week; the loader
// moves to the next week whenever the marker changes, so the markers only
// need to be sequential, not 1-based. Every one of the 8x7 cells must be present.
func ParseBase(r io.Reader) (models.Plan, error) {
	var cells [BaseWeeks][models.DaysPerWeek]*models.Workout

	scanner := bufio.NewScanner(r)
	week := -1
	prevMarker := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 5 {
			return models.Plan{}, fmt.Errorf("%w: line %d: want 5 fields, got %d", ErrBaseMalformed, lineNo, len(fields))
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		marker, err := strconv.Atoi(fields[0])
		if err != nil {
			return models.Plan{}, fmt.Errorf("%w: line %d: week %q", ErrBaseMalformed, lineNo, fields[0])
		}
		day, err := strconv.Atoi(fields[1])
		if err != nil || day < 1 || day > models.DaysPerWeek {
			return models.Plan{}, fmt.Errorf("%w: line %d: day %q", ErrBaseMalformed, lineNo, fields[1])
		}
		distance, err := models.ParseNonNegative(fields[2])
		if err != nil {
			return models.Plan{}, fmt.Errorf("%w: line %d: distance: %v", ErrBaseMalformed, lineNo, err)
		}
		pace, err := models.ParseNonNegative(fields[3])
		if err != nil {
			return models.Plan{}, fmt.Errorf("%w: line %d: pace: %v", ErrBaseMalformed, lineNo, err)
		}
		completed, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return models.Plan{}, fmt.Errorf("%w: line %d: completed flag %q", ErrBaseMalformed, lineNo, fields[4])
		}

		if week < 0 || marker != prevMarker {
			week++
			prevMarker = marker
		}
		if week >= BaseWeeks {
			return models.Plan{}, fmt.Errorf("%w: line %d: more than %d weeks", ErrBaseMalformed, lineNo, BaseWeeks)
		}
		if cells[week][day-1] != nil {
			return models.Plan{}, fmt.Errorf("%w: line %d: week %d day %d repeated", ErrBaseMalformed, lineNo, week+1, day)
		}
		cells[week][day-1] = &models.Workout{
			Week:           week,
			Day:            day - 1,
			DistanceMiles:  distance,
			PaceMinPerMile: pace,
			Completed:      completed > 0,
		}
	}
	if err := scanner.Err(); err != nil {
		return models.Plan{}, fmt.Errorf("reading base plan: %w", err)
	}

	out := models.Plan{Workouts: make([]models.Workout, 0, BaseWeeks*models.DaysPerWeek)}
	for w := range cells {
		for d := range cells[w] {
			if cells[w][d] == nil {
				return models.Plan{}, fmt.Errorf("%w: week %d day %d missing", ErrBaseMalformed, w+1, d+1)
			}
			out.Workouts = append(out.Workouts, *cells[w][d])
		}
	}
	return out, nil
}
