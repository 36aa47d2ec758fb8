package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runbuddy/runbuddy/internal/models"
)

// PlanSession is the part of a session the schedule screen drives.
type PlanSession interface {
	Profile() models.Profile
	Plan() models.Plan
	Toggle(index int) (models.Workout, error)
	Progress() models.Progress
	SavePlan() (string, error)
}

// chrome is the number of lines the schedule screen uses outside the list.
const chrome = 11

// ScheduleModel is the checklist of workouts with a progress bar.
type ScheduleModel struct {
	sess     PlanSession
	plan     models.Plan
	progress progress.Model
	styles   Styles

	cursor int
	offset int
	width  int
	height int

	notice string
}

// NewScheduleModel shows sess's plan with the cursor on the first workout.
func NewScheduleModel(sess PlanSession) ScheduleModel {
	p := progress.New(progress.WithDefaultGradient())
	return ScheduleModel{
		sess:     sess,
		plan:     sess.Plan(),
		progress: p,
		styles:   DefaultStyles(),
		width:    80,
		height:   24,
	}
}

func (m ScheduleModel) Init() tea.Cmd {
	return nil
}

func (m ScheduleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(msg.Width-4, 10)
		m.scrollToCursor()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.rows())
		case "pgdown":
			m.move(m.rows())
		case "home", "g":
			m.move(-len(m.plan.Workouts))
		case "end", "G":
			m.move(len(m.plan.Workouts))
		case " ", "x", "enter":
			m.toggle()
		}
	}
	return m, nil
}

func (m *ScheduleModel) toggle() {
	if len(m.plan.Workouts) == 0 {
		return
	}
	if _, err := m.sess.Toggle(m.cursor); err != nil {
		m.notice = err.Error()
		return
	}
	m.plan = m.sess.Plan()
	if _, err := m.sess.SavePlan(); err != nil {
		m.notice = "Warning! Could not save the training plan: " + err.Error()
		return
	}
	m.notice = ""
}

func (m *ScheduleModel) move(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), max(len(m.plan.Workouts)-1, 0))
	m.scrollToCursor()
}

func (m ScheduleModel) rows() int {
	return max(m.height-chrome, 3)
}

func (m *ScheduleModel) scrollToCursor() {
	rows := m.rows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// StatusLine summarizes progress the way the header shows it.
func StatusLine(pr models.Progress) string {
	if pr.Complete {
		return fmt.Sprintf("You finished! (%.1f miles, %d days)", pr.MilesCompleted, pr.RunsCompleted)
	}
	return fmt.Sprintf("Total Miles Run: %.1f     Total Runs Completed: %d", pr.MilesCompleted, pr.RunsCompleted)
}

// DescribeWorkout renders one checklist line without the checkbox.
func DescribeWorkout(w models.Workout) string {
	if w.IsRest() {
		return fmt.Sprintf("Week %2d, Day %d  ---  rest day", w.Week+1, w.Day+1)
	}
	return fmt.Sprintf("Week %2d, Day %d  ---  PACE: %5s min/mile   MILEAGE: %4.1f miles",
		w.Week+1, w.Day+1, models.FormatPace(w.PaceMinPerMile), w.DistanceMiles)
}

func (m ScheduleModel) View() string {
	s := m.styles
	pr := m.plan.Progress()
	var b strings.Builder

	b.WriteString(s.Title.Render(fmt.Sprintf("Welcome, %s!", m.sess.Profile().Name)) + "\n")
	b.WriteString(s.Muted.Render("Here is your training schedule...") + "\n\n")
	b.WriteString(m.progress.ViewAs(float64(pr.Percent)/100) + "\n")
	b.WriteString(s.Status.Render(StatusLine(pr)) + "\n\n")

	end := min(m.offset+m.rows(), len(m.plan.Workouts))
	for i := m.offset; i < end; i++ {
		w := m.plan.Workouts[i]
		box, style := "[ ]", s.Pending
		if w.Completed {
			box, style = "[x]", s.Done
		}
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		b.WriteString(cursor + style.Render(box+" "+DescribeWorkout(w)) + "\n")
	}
	if end == len(m.plan.Workouts) {
		b.WriteString(s.Muted.Render("********  End of plan! Next run: Half Marathon, 13.1 Miles!  ********") + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.notice != "":
		b.WriteString(s.Error.Render(m.notice) + "\n")
	case pr.Complete:
		b.WriteString(s.Congrats.Render("Congratulations on completing the training plan! You're ready to run! :)") + "\n")
	}
	b.WriteString(s.Muted.Render("↑↓ move • space check off • pgup/pgdown page • q quit"))
	return b.String()
}

// RunSchedule shows the checklist until the runner quits.
func RunSchedule(ctx context.Context, sess PlanSession, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(NewScheduleModel(sess), opts...).Run()
	return err
}
