// ABOUTME: CLI commands for logging sets and checking last performance.
// ABOUTME: Provides the top-level log, unlog, and last commands.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log <session-id> <exercise-id> <weight> <reps>",
	Short: "Log a set in an in-progress session",
	Long: `Log one set: the weight used and the reps completed.

The session must still be in progress. Use a weight of 0 for bodyweight
movements. Sets are immutable: to fix a typo, delete the set with
'gymlog unlog' and log it again.

Examples:
  gymlog log abc123 def456 80 8       # 80 x 8
  gymlog log abc123 def456 102.5 5    # fractional plates
  gymlog log abc123 def456 0 12       # bodyweight`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[2])
		}
		reps, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid reps: %s", args[3])
		}

		sess, err := repo.GetSession(args[0])
		if err != nil {
			return fmt.Errorf("session not found: %s", args[0])
		}
		e, err := repo.GetExercise(args[1])
		if err != nil {
			return fmt.Errorf("exercise not found: %s", args[1])
		}

		ls, err := repo.LogSet(e.ID, sess.ID, weight, reps)
		if err != nil {
			return fmt.Errorf("failed to log set: %w", err)
		}

		color.Green("✓ Logged %s: %s x %d", e.Name, formatWeight(ls.Weight), ls.Reps)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(ls.ID.String()[:8]))

		// Show how many sets are in against the plan
		if groups, err := repo.ListSessionSets(sess.ID); err == nil {
			for _, g := range groups {
				if g.Exercise.ID == e.ID {
					fmt.Printf("  set %d of %d\n", len(g.Sets), g.Exercise.TargetSets)
				}
			}
		}

		return nil
	},
}

var unlogCmd = &cobra.Command{
	Use:     "unlog <set-id>",
	Aliases: []string{"rmset"},
	Short:   "Delete a logged set",
	Long: `Delete a logged set by its ID or ID prefix.

Sets cannot be edited in place. To correct a mistake, delete the bad
set and log a new one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteSet(args[0]); err != nil {
			return fmt.Errorf("failed to delete set: %w", err)
		}

		color.Yellow("✗ Deleted set %s", args[0])
		return nil
	},
}

var lastCmd = &cobra.Command{
	Use:   "last <exercise-id>",
	Short: "Show the most recent set for an exercise",
	Long: `Show the most recently logged set for an exercise, across all
sessions. This is the number to beat.

Examples:
  gymlog last def456`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := repo.GetExercise(args[0])
		if err != nil {
			return fmt.Errorf("exercise not found: %s", args[0])
		}

		ls, err := repo.LastSet(e.ID)
		if err != nil {
			return fmt.Errorf("failed to look up last set: %w", err)
		}
		if ls == nil {
			fmt.Printf("No history for %q yet.\n", e.Name)
			return nil
		}

		fmt.Printf("%s: %s x %d\n", e.Name, formatWeight(ls.Weight), ls.Reps)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(ls.ID.String()[:8]),
			color.New(color.Faint).Sprint(ls.LoggedAt.Format("2006-01-02 15:04")))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(unlogCmd)
	rootCmd.AddCommand(lastCmd)
}
