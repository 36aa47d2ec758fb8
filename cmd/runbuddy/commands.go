package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/runbuddy/runbuddy/internal/intake"
	"github.com/runbuddy/runbuddy/internal/models"
	"github.com/runbuddy/runbuddy/internal/plan"
	"github.com/runbuddy/runbuddy/internal/session"
	"github.com/runbuddy/runbuddy/internal/storage"
	"github.com/runbuddy/runbuddy/internal/tui"
	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var (
		name    string
		age     int
		ability int
		weeks   int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and save a training plan without the interactive screens",
		Example: `  runbuddy generate --name megan --age 2 --ability 3 --time 4
  RUNBUDDY_DATA_DIR=~/runs runbuddy generate --name sam --age 4 --ability 1 --time 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.headless(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var form intake.Form
			form.SetName(name)
			if err := form.SetAge(models.AgeCategory(age)); err != nil {
				return err
			}
			if err := form.SetAbility(models.AbilityCategory(ability)); err != nil {
				return err
			}
			if err := form.SetTime(models.TimeCategory(weeks)); err != nil {
				return err
			}
			profile, err := form.Profile()
			if err != nil {
				return err
			}

			base, err := plan.LoadBase(cfg.BasePlan)
			if err != nil {
				return fmt.Errorf("loading base plan: %w", err)
			}
			archive, err := openArchive(cfg, log)
			if err != nil {
				return fmt.Errorf("opening plan archive: %w", err)
			}
			if archive != nil {
				defer archive.Close()
			}

			sess, err := session.New(cmd.Context(), profile, base, sessionOptions(cfg, archive, log))
			if err != nil {
				return err
			}
			profilePath, err := sess.SaveProfile()
			if err != nil {
				return fmt.Errorf("saving profile: %w", err)
			}
			planPath, err := sess.SavePlan()
			if err != nil {
				return fmt.Errorf("saving training plan: %w", err)
			}

			sess.Snapshot(cmd.Context())

			p := sess.Plan()
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s (%d weeks, %.1f miles)\n",
				profilePath, planPath, p.Weeks(), p.Progress().TotalMiles)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "runner name")
	cmd.Flags().IntVar(&age, "age", 0, "age group: "+choices(models.AgeCategories))
	cmd.Flags().IntVar(&ability, "ability", 0, "ability level: "+choices(models.AbilityCategories))
	cmd.Flags().IntVar(&weeks, "time", 0, "time until the race: "+choices(models.TimeCategories))
	for _, f := range []string{"name", "age", "ability", "time"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <plan-file>",
		Short: "Print a saved training plan",
		Long: `Prints a <name>_training_plan.txt file as a table. The file is only read;
check off workouts from the interactive screens.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := storage.LoadPlan(args[0])
			if err != nil {
				return err
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("WEEK", "DAY", "MILES", "PACE", "DONE")
			for _, w := range p.Workouts {
				miles, pace := "rest", "-"
				if !w.IsRest() {
					miles = strconv.FormatFloat(w.DistanceMiles, 'f', 1, 64)
					pace = models.FormatPace(w.PaceMinPerMile)
				}
				done := ""
				if w.Completed {
					done = "x"
				}
				t.Row(strconv.Itoa(w.Week+1), strconv.Itoa(w.Day+1), miles, pace, done)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, t.String())
			fmt.Fprintln(out, tui.StatusLine(p.Progress()))
			return nil
		},
	}
}

func newHistoryCmd(opts *options) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived plans and their latest progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.headless(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if !cfg.Archive.Enabled {
				return errors.New("the plan archive is disabled (archive.enabled is false)")
			}
			archive, err := openArchive(cfg, log)
			if err != nil {
				return fmt.Errorf("opening plan archive: %w", err)
			}
			defer archive.Close()

			entries, err := archive.History(cmd.Context(), name)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No plans archived yet.")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("CREATED", "NAME", "AGE", "ABILITY", "TIME", "WEEKS", "MILES", "PROGRESS")
			for _, e := range entries {
				t.Row(
					e.CreatedAt.Format("2006-01-02 15:04"),
					e.Profile.Name,
					e.Profile.Age.Label(),
					e.Profile.Ability.Label(),
					e.Profile.Time.Label(),
					strconv.Itoa(e.Weeks),
					strconv.FormatFloat(e.TotalMiles, 'f', 1, 64),
					fmt.Sprintf("%d/%d runs (%d%%)", e.Progress.RunsCompleted, e.Progress.TotalRuns, e.Progress.Percent),
				)
			}
			fmt.Fprintln(out, t.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "only show plans for this runner")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "runbuddy %s\n", Version)
		},
	}
}

type labelled interface {
	~int
	Label() string
}

// choices renders "1=<label>, 2=<label>, ..." for flag help.
func choices[C labelled](cats []C) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = fmt.Sprintf("%d=%s", int(c), c.Label())
	}
	return strings.Join(parts, ", ")
}
