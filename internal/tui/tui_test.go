package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runbuddy/runbuddy/internal/models"
	"github.com/runbuddy/runbuddy/internal/plan"
	"github.com/runbuddy/runbuddy/internal/session"
	"github.com/runbuddy/runbuddy/internal/storage"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	right = tea.KeyMsg{Type: tea.KeyRight}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlR = tea.KeyMsg{Type: tea.KeyCtrlR}
	ctrlO = tea.KeyMsg{Type: tea.KeyCtrlO}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m tea.Model, keys ...tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func resolved(r *session.Ready) bool {
	select {
	case <-r.Done():
		return true
	default:
		return false
	}
}

// TestIntakeSubmit walks the whole form with the keyboard and checks the
// resolved profile.
func TestIntakeSubmit(t *testing.T) {
	ready := session.NewReady()
	var m tea.Model = NewIntakeModel(ready, nil)

	m, _ = press(m, runes("megan"), enter) // name -> age row
	m, _ = press(m, right, enter)          // 18-35 -> ability row
	m, _ = press(m, enter)                 // beginner -> time row
	m, _ = press(m, right, right, enter)   // 7-9 weeks -> submit
	m, cmd := press(m, enter)

	if !isQuit(cmd) {
		t.Fatal("submit should quit the intake program")
	}
	res, err := ready.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	want := models.Profile{Name: "megan", Age: models.Age18To35, Ability: models.AbilityBeginner, Time: models.Time7To9Weeks}
	if res.Profile != want || res.Loaded {
		t.Errorf("result = %+v, want %+v submitted", res, want)
	}
	if m.View() != "" {
		t.Error("finished form should render nothing")
	}
}

// TestIntakeRejectsShortTime verifies the <5 weeks warning and that focus
// stays on the time row.
func TestIntakeRejectsShortTime(t *testing.T) {
	ready := session.NewReady()
	var m tea.Model = NewIntakeModel(ready, nil)

	m, _ = press(m, tab, tab, tab) // time row, cursor on <5 weeks
	m, _ = press(m, enter)
	view := m.View()
	if !strings.Contains(view, "not enough time to train for a half marathon") {
		t.Errorf("view missing warning:\n%s", view)
	}
	im := m.(IntakeModel)
	if im.focus != fieldTime {
		t.Errorf("focus = %v, want time row", im.focus)
	}
	if im.form.Time() != 0 {
		t.Error("time selection should stay empty")
	}
}

// TestIntakeIncompleteSubmit verifies submitting early reports the missing
// fields and keeps the form open.
func TestIntakeIncompleteSubmit(t *testing.T) {
	ready := session.NewReady()
	var m tea.Model = NewIntakeModel(ready, nil)

	m, _ = press(m, runes("megan"), tab, tab, tab, tab)
	m, cmd := press(m, enter)
	if isQuit(cmd) || resolved(ready) {
		t.Fatal("incomplete form should not resolve")
	}
	if !strings.Contains(m.View(), "Please select one option for each category") {
		t.Errorf("view missing prompt:\n%s", m.View())
	}
}

// TestIntakeClear verifies ctrl+r empties the form.
func TestIntakeClear(t *testing.T) {
	ready := session.NewReady()
	var m tea.Model = NewIntakeModel(ready, nil)

	m, _ = press(m, runes("megan"), enter, enter)
	m, _ = press(m, ctrlR)
	im := m.(IntakeModel)
	if len(im.form.Missing()) != 4 || im.name.Value() != "" || im.focus != fieldName {
		t.Errorf("after clear: missing=%v name=%q focus=%v", im.form.Missing(), im.name.Value(), im.focus)
	}
}

// TestIntakeLoadProfile verifies a failed load keeps the prompt open and a
// successful one resolves with Loaded set.
func TestIntakeLoadProfile(t *testing.T) {
	known := models.Profile{Name: "sam", Age: models.AgeOver56, Ability: models.AbilityAdvanced, Time: models.Time9To11Weeks}
	load := func(in string) (models.Profile, error) {
		if in == "sam" {
			return known, nil
		}
		return models.Profile{}, errors.New("no such profile")
	}

	ready := session.NewReady()
	var m tea.Model = NewIntakeModel(ready, load)
	m, _ = press(m, ctrlO, runes("nobody"), enter)
	if resolved(ready) {
		t.Fatal("failed load resolved the signal")
	}
	if !strings.Contains(m.View(), "Whoops, couldn't find file, try again.") {
		t.Errorf("view missing load error:\n%s", m.View())
	}

	ready = session.NewReady()
	m = NewIntakeModel(ready, load)
	_, cmd := press(m, ctrlO, runes("sam"), enter)
	if !isQuit(cmd) {
		t.Fatal("successful load should quit")
	}
	res, err := ready.Wait(context.Background())
	if err != nil || res.Profile != known || !res.Loaded {
		t.Errorf("result = %+v, %v", res, err)
	}
}

// TestIntakeAbort verifies esc resolves the signal with ErrAborted.
func TestIntakeAbort(t *testing.T) {
	ready := session.NewReady()
	_, cmd := press(NewIntakeModel(ready, nil), esc)
	if !isQuit(cmd) {
		t.Fatal("esc should quit")
	}
	if _, err := ready.Wait(context.Background()); !errors.Is(err, session.ErrAborted) {
		t.Errorf("err = %v, want ErrAborted", err)
	}
}

func newTestSession(t *testing.T, dir string) *session.Session {
	t.Helper()
	base, err := plan.LoadBase("")
	if err != nil {
		t.Fatal(err)
	}
	p := models.Profile{Name: "megan", Age: models.Age18To35, Ability: models.AbilityIntermediate, Time: models.Time5To7Weeks}
	s, err := session.New(context.Background(), p, base, session.Options{DataDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// TestScheduleView verifies the header, first workout line and status line.
func TestScheduleView(t *testing.T) {
	m := NewScheduleModel(newTestSession(t, t.TempDir()))
	view := m.View()
	for _, want := range []string{
		"Welcome, megan!",
		"[ ] Week  1, Day 1  ---  PACE: 10:00 min/mile   MILEAGE:  2.0 miles",
		"Week  1, Day 2  ---  rest day",
		"Total Miles Run: 0.0     Total Runs Completed: 0",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

// TestScheduleToggleSaves verifies checking a workout updates the view and
// rewrites the plan file.
func TestScheduleToggleSaves(t *testing.T) {
	dir := t.TempDir()
	var m tea.Model = NewScheduleModel(newTestSession(t, dir))

	m, _ = press(m, space)
	if !strings.Contains(m.View(), "[x] Week  1, Day 1") {
		t.Errorf("first workout not checked:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "Total Runs Completed: 1") {
		t.Errorf("status not updated:\n%s", m.View())
	}

	saved, err := storage.LoadPlan(filepath.Join(dir, "megan_training_plan.txt"))
	if err != nil {
		t.Fatalf("LoadPlan: %v", err)
	}
	if !saved.Workouts[0].Completed {
		t.Error("saved plan does not record the check")
	}

	m, _ = press(m, down, space, space)
	if strings.Contains(m.View(), "[x] Week  1, Day 2") {
		t.Error("double toggle should leave day 2 unchecked")
	}
}

// TestScheduleComplete verifies checking every workout shows the finish message.
func TestScheduleComplete(t *testing.T) {
	var m tea.Model = NewScheduleModel(newTestSession(t, t.TempDir()))
	m, _ = press(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	for i := 0; i < 6*models.DaysPerWeek; i++ {
		m, _ = press(m, space, down)
	}
	view := m.View()
	for _, want := range []string{"You finished!", "Congratulations on completing the training plan!", "End of plan!"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

// TestScheduleSaveFailure verifies a failed save is shown but the check stays.
func TestScheduleSaveFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gone")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	sess := newTestSession(t, dir)
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}

	var m tea.Model = NewScheduleModel(sess)
	m, _ = press(m, space)
	view := m.View()
	if !strings.Contains(view, "Could not save the training plan") {
		t.Errorf("view missing save warning:\n%s", view)
	}
	if !strings.Contains(view, "[x] Week  1, Day 1") {
		t.Error("check lost after failed save")
	}
}

// TestScheduleQuit verifies q quits.
func TestScheduleQuit(t *testing.T) {
	_, cmd := press(NewScheduleModel(newTestSession(t, t.TempDir())), runes("q"))
	if !isQuit(cmd) {
		t.Error("q should quit")
	}
}

// TestStatusLine covers both status variants.
func TestStatusLine(t *testing.T) {
	got := StatusLine(models.Progress{MilesCompleted: 12.4, RunsCompleted: 5})
	if got != "Total Miles Run: 12.4     Total Runs Completed: 5" {
		t.Errorf("StatusLine = %q", got)
	}
	done := StatusLine(models.Progress{MilesCompleted: 100, RunsCompleted: 42, TotalRuns: 42, Complete: true})
	if done != "You finished! (100.0 miles, 42 days)" {
		t.Errorf("StatusLine = %q", done)
	}
}
