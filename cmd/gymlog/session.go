// ABOUTME: CLI commands for workout session lifecycle.
// ABOUTME: Supports start, list, show, complete, and delete subcommands.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var sessionLimit int

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"s"},
	Short:   "Manage workout sessions",
	Long: `Track trips to the gym as sessions.

A session is started from a template and stays in progress until you
complete it. Sets can only be logged while a session is in progress.
Completing is final: a completed session is read-only except for
deleting mistaken sets.

WORKFLOW:

  1. Start a session:   gymlog session start abc123
  2. Log your sets:     gymlog log <session> <exercise> 80 8
  3. Check progress:    gymlog session show <session>
  4. Finish:            gymlog session complete <session>

COMMANDS:

  start      Start a session from a template
  list       List recent sessions
  show       View a session's sets grouped by exercise
  complete   Mark a session as finished
  delete     Delete a session and its sets`,
}

var sessionStartCmd = &cobra.Command{
	Use:   "start <template-id>",
	Short: "Start a session from a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := repo.GetTemplateWithExercises(args[0])
		if err != nil {
			return fmt.Errorf("template not found: %s", args[0])
		}

		sess, err := repo.StartSession(t.ID)
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}

		color.Green("✓ Started %q session", t.Name)
		fmt.Printf("  ID: %s\n", sess.ID.String()[:8])

		if len(t.Exercises) > 0 {
			faint := color.New(color.Faint)
			fmt.Println("\nPlan:")
			for _, e := range t.Exercises {
				last, err := repo.LastSet(e.ID)
				if err != nil {
					return fmt.Errorf("failed to look up last set: %w", err)
				}
				hint := faint.Sprint("no history")
				if last != nil {
					hint = faint.Sprintf("last: %s x %d", formatWeight(last.Weight), last.Reps)
				}
				fmt.Printf("  %d. %s %s (%d sets, %s)\n",
					e.Position,
					faint.Sprint(e.ID.String()[:8]),
					e.Name, e.TargetSets, hint)
			}
		}

		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := repo.ListSessions(sessionLimit)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, sess := range sessions {
			name := sess.TemplateID.String()[:8]
			if t, err := repo.GetTemplate(sess.TemplateID.String()); err == nil {
				name = t.Name
			}

			status := color.GreenString("done")
			if sess.InProgress() {
				status = color.YellowString("in progress")
			}

			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(sess.ID.String()[:8]),
				faint.Sprint(sess.StartedAt.Format("2006-01-02 15:04")),
				padRight(truncate(name, 20), 20),
				status)
		}

		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a session's sets grouped by exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := repo.GetSession(args[0])
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}

		fmt.Printf("Session: %s\n", sess.ID.String()[:8])
		if t, err := repo.GetTemplate(sess.TemplateID.String()); err == nil {
			fmt.Printf("Template: %s\n", t.Name)
		}
		fmt.Printf("Started: %s\n", sess.StartedAt.Format("2006-01-02 15:04"))
		if sess.CompletedAt != nil {
			fmt.Printf("Completed: %s\n", sess.CompletedAt.Format("2006-01-02 15:04"))
		} else {
			fmt.Printf("Status: %s\n", color.YellowString("in progress"))
		}

		groups, err := repo.ListSessionSets(sess.ID)
		if err != nil {
			return fmt.Errorf("failed to list session sets: %w", err)
		}

		if len(groups) == 0 {
			fmt.Println("\nNo sets logged yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, g := range groups {
			fmt.Printf("\n%s (%d/%d sets)\n", g.Exercise.Name, len(g.Sets), g.Exercise.TargetSets)
			for i, ls := range g.Sets {
				fmt.Printf("  %d. %s %s x %d\n",
					i+1,
					faint.Sprint(ls.ID.String()[:8]),
					formatWeight(ls.Weight), ls.Reps)
			}
		}

		return nil
	},
}

var sessionCompleteCmd = &cobra.Command{
	Use:     "complete <id>",
	Aliases: []string{"done", "finish"},
	Short:   "Mark a session as finished",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := repo.CompleteSession(args[0])
		if err != nil {
			return fmt.Errorf("failed to complete session: %w", err)
		}

		color.Green("✓ Completed session")
		fmt.Printf("  %s at %s\n",
			color.New(color.Faint).Sprint(sess.ID.String()[:8]),
			sess.CompletedAt.Format("2006-01-02 15:04"))

		return nil
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a session",
	Long: `Delete a session by its ID or ID prefix.

CAUTION:

  This permanently deletes the session and every set logged in it.
  There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := repo.GetSession(args[0])
		if err != nil {
			return fmt.Errorf("session not found: %s", args[0])
		}

		if err := repo.DeleteSession(args[0]); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		color.Yellow("✗ Deleted session")
		fmt.Printf("  %s started %s\n",
			color.New(color.Faint).Sprint(sess.ID.String()[:8]),
			sess.StartedAt.Format("2006-01-02 15:04"))

		return nil
	},
}

// formatWeight drops the decimals for whole-number weights so output
// reads "80 x 8" rather than "80.0 x 8".
func formatWeight(w float64) string {
	s := fmt.Sprintf("%.2f", w)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	sessionListCmd.Flags().IntVarP(&sessionLimit, "limit", "n", 20, "max number of results")

	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionCompleteCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}
