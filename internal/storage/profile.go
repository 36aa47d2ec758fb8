package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/runbuddy/runbuddy/internal/models"
)

// ErrMalformed means a profile or plan file could not be parsed.
var ErrMalformed = errors.New("malformed file")

// ProfilePath returns the profile file path for a runner name.
func ProfilePath(dir, name string) string {
	return filepath.Join(dir, name+"_profile.txt")
}

// SaveProfile writes the profile as a single "name,age,ability,time" line
// and returns the file path.
func SaveProfile(dir string, p models.Profile) (string, error) {
	if err := p.Validate(); err != nil {
		return "", fmt.Errorf("saving profile: %w", err)
	}
	path := ProfilePath(dir, p.Name)
	line := fmt.Sprintf("%s,%d,%d,%d\n", p.Name, p.Age, p.Ability, p.Time)
	if err := writeLines(path, []string{line}); err != nil {
		return "", fmt.Errorf("saving profile: %w", err)
	}
	return path, nil
}

// LoadProfile reads a profile file. Both the single comma-separated line and
// the older one-field-per-line layout are accepted.
func LoadProfile(path string) (models.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Profile{}, fmt.Errorf("opening profile: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return models.Profile{}, fmt.Errorf("reading profile: %w", err)
	}

	var fields []string
	switch {
	case len(lines) == 1:
		fields = strings.Split(lines[0], ",")
	case len(lines) >= 4:
		fields = lines[:4]
	}
	if len(fields) != 4 {
		return models.Profile{}, fmt.Errorf("%w: %s: want 4 profile fields", ErrMalformed, path)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var cats [3]int
	for i, s := range fields[1:] {
		v, err := strconv.Atoi(s)
		if err != nil {
			return models.Profile{}, fmt.Errorf("%w: %s: category %q is not a number", ErrMalformed, path, s)
		}
		cats[i] = v
	}

	p := models.Profile{
		Name:    fields[0],
		Age:     models.AgeCategory(cats[0]),
		Ability: models.AbilityCategory(cats[1]),
		Time:    models.TimeCategory(cats[2]),
	}
	if err := p.Validate(); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return p, nil
}

// writeLines creates path and writes lines verbatim, reporting close errors.
func writeLines(path string, lines []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	for _, l := range lines {
		if _, err := w.WriteString(l); err != nil {
			return err
		}
	}
	return w.Flush()
}
