package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/runbuddy/runbuddy/internal/intake"
	"github.com/runbuddy/runbuddy/internal/models"
	"github.com/runbuddy/runbuddy/internal/session"
)

// ProfileLoader reads an existing profile from what the runner typed.
type ProfileLoader func(input string) (models.Profile, error)

type field int

const (
	fieldName field = iota
	fieldAge
	fieldAbility
	fieldTime
	fieldSubmit
)

// IntakeModel is the welcome form. Submitting or loading a profile resolves
// the ready signal and quits the program.
type IntakeModel struct {
	form   intake.Form
	ready  *session.Ready
	load   ProfileLoader
	styles Styles

	name    textinput.Model
	path    textinput.Model
	loading bool

	focus  field
	cursor [3]int // highlighted option per category row

	message string
	isError bool
	done    bool
}

// NewIntakeModel creates the form. load may be nil to disable profile loading.
func NewIntakeModel(ready *session.Ready, load ProfileLoader) IntakeModel {
	name := textinput.New()
	name.Placeholder = "your name"
	name.CharLimit = 64
	name.Width = 30
	name.Focus()

	path := textinput.New()
	path.Placeholder = "name or path to <name>_profile.txt"
	path.Width = 50

	return IntakeModel{
		ready:  ready,
		load:   load,
		styles: DefaultStyles(),
		name:   name,
		path:   path,
	}
}

func (m IntakeModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m IntakeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	if key.String() == "ctrl+c" {
		return m.abort()
	}
	if m.loading {
		return m.updateLoading(key)
	}

	switch key.String() {
	case "esc":
		return m.abort()
	case "ctrl+r":
		m.form.Reset()
		m.name.SetValue("")
		m.cursor = [3]int{}
		m.setMessage("Cleared. Start over whenever you're ready.", false)
		return m, m.setFocus(fieldName)
	case "ctrl+o":
		if m.load == nil {
			return m, nil
		}
		m.loading = true
		m.name.Blur()
		m.path.SetValue("")
		m.message = ""
		return m, m.path.Focus()
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % (fieldSubmit + 1))
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + fieldSubmit) % (fieldSubmit + 1))
	}

	switch m.focus {
	case fieldName:
		if key.String() == "enter" {
			m.form.SetName(m.name.Value())
			return m, m.setFocus(fieldAge)
		}
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		m.form.SetName(m.name.Value())
		return m, cmd
	case fieldAge, fieldAbility, fieldTime:
		row := int(m.focus - fieldAge)
		switch key.String() {
		case "left", "h":
			if m.cursor[row] > 0 {
				m.cursor[row]--
			}
		case "right", "l":
			if m.cursor[row] < optionCount(m.focus)-1 {
				m.cursor[row]++
			}
		case " ":
			m.choose(m.focus, m.cursor[row])
		case "enter":
			if m.choose(m.focus, m.cursor[row]) {
				return m, m.setFocus(m.focus + 1)
			}
		}
		return m, nil
	case fieldSubmit:
		if key.String() == "enter" || key.String() == " " {
			return m.submit()
		}
	}
	return m, nil
}

func (m IntakeModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.loading {
		m.path, cmd = m.path.Update(msg)
	} else {
		m.name, cmd = m.name.Update(msg)
	}
	return m, cmd
}

func (m IntakeModel) updateLoading(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.loading = false
		m.path.Blur()
		return m, m.setFocus(m.focus)
	case "enter":
		p, err := m.load(strings.TrimSpace(m.path.Value()))
		if err != nil {
			m.setMessage("Whoops, couldn't find file, try again. ("+err.Error()+")", true)
			return m, nil
		}
		m.ready.Resolve(session.Result{Profile: p, Loaded: true})
		m.done = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.path, cmd = m.path.Update(key)
	return m, cmd
}

// choose records option i of a category row and reports whether it was accepted.
func (m *IntakeModel) choose(f field, i int) bool {
	var err error
	switch f {
	case fieldAge:
		err = m.form.SetAge(models.AgeCategories[i])
	case fieldAbility:
		err = m.form.SetAbility(models.AbilityCategories[i])
	case fieldTime:
		err = m.form.SetTime(models.TimeCategories[i])
	}
	if err != nil {
		m.setMessage("Woah, woah, woah. "+capitalize(err.Error())+".", true)
		return false
	}
	m.message = ""
	return true
}

func (m IntakeModel) submit() (tea.Model, tea.Cmd) {
	m.form.SetName(m.name.Value())
	p, err := m.form.Profile()
	if err != nil {
		m.setMessage(capitalize(err.Error())+".", true)
		return m, nil
	}
	m.ready.Resolve(session.Result{Profile: p})
	m.done = true
	return m, tea.Quit
}

func (m IntakeModel) abort() (tea.Model, tea.Cmd) {
	m.ready.Fail(session.ErrAborted)
	m.done = true
	return m, tea.Quit
}

func (m *IntakeModel) setFocus(f field) tea.Cmd {
	m.focus = f
	if f == fieldName {
		return m.name.Focus()
	}
	m.name.Blur()
	return nil
}

func (m *IntakeModel) setMessage(s string, isError bool) {
	m.message = s
	m.isError = isError
}

func (m IntakeModel) View() string {
	if m.done {
		return ""
	}
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Run Buddy") + "\n")
	b.WriteString(s.Muted.Render("Welcome! To get started, please submit your information below.") + "\n\n")

	b.WriteString(s.Label.Render("1. Your name:") + "\n")
	b.WriteString(m.name.View() + "\n\n")

	b.WriteString(s.Label.Render("2. Select your age group:") + "\n")
	b.WriteString(m.optionRow(fieldAge, ageLabels(), int(m.form.Age())-1) + "\n\n")

	b.WriteString(s.Label.Render("3. Select your ability level:") + "\n")
	b.WriteString(m.optionRow(fieldAbility, abilityLabels(), int(m.form.Ability())-1) + "\n\n")

	b.WriteString(s.Label.Render("4. Select the time until your race:") + "\n")
	b.WriteString(m.optionRow(fieldTime, timeLabels(), int(m.form.Time())-1) + "\n\n")

	button := s.Button
	if m.focus == fieldSubmit {
		button = s.Focused
	}
	b.WriteString(button.Render("SUBMIT") + "\n")

	if m.loading {
		b.WriteString("\n" + s.Label.Render("Load existing profile:") + "\n")
		b.WriteString(m.path.View() + "\n")
	}

	if m.message != "" {
		style := s.Warning
		if m.isError {
			style = s.Error
		}
		b.WriteString("\n" + style.Render(m.message) + "\n")
	}

	help := "tab/↑↓ move • ←→ highlight • space/enter select • ctrl+r clear • ctrl+o load profile • esc quit"
	if m.loading {
		help = "enter load • esc cancel"
	}
	b.WriteString("\n" + s.Muted.Render(help))
	return b.String()
}

func (m IntakeModel) optionRow(f field, labels []string, chosen int) string {
	row := int(f - fieldAge)
	cells := make([]string, len(labels))
	for i, l := range labels {
		style := m.styles.Option
		switch {
		case i == chosen:
			style = m.styles.Chosen
		case m.focus == f && i == m.cursor[row]:
			style = m.styles.Cursor
		}
		marker := "  "
		if m.focus == f && i == m.cursor[row] {
			marker = "▸ "
		}
		cells[i] = style.Render(marker + l)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func optionCount(f field) int {
	switch f {
	case fieldAge:
		return len(models.AgeCategories)
	case fieldAbility:
		return len(models.AbilityCategories)
	case fieldTime:
		return len(models.TimeCategories)
	}
	return 0
}

func ageLabels() []string {
	out := make([]string, len(models.AgeCategories))
	for i, c := range models.AgeCategories {
		out[i] = c.Label()
	}
	return out
}

func abilityLabels() []string {
	out := make([]string, len(models.AbilityCategories))
	for i, c := range models.AbilityCategories {
		out[i] = c.Label()
	}
	return out
}

func timeLabels() []string {
	out := make([]string, len(models.TimeCategories))
	for i, c := range models.TimeCategories {
		out[i] = c.Label()
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// RunIntake runs the form until the runner submits, loads a profile or quits.
// The ready signal is always resolved when it returns.
func RunIntake(ctx context.Context, ready *session.Ready, load ProfileLoader, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(NewIntakeModel(ready, load), opts...).Run()
	if err != nil {
		ready.Fail(fmt.Errorf("intake: %w", err))
		return err
	}
	ready.Fail(session.ErrAborted)
	return nil
}
