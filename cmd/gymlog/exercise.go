// ABOUTME: CLI commands for managing template exercises.
// ABOUTME: Supports add, update, and delete subcommands.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exerciseName string
	exerciseSets int
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"e", "ex"},
	Short:   "Manage template exercises",
	Long: `Manage the exercises inside a workout template.

Exercises are appended to the end of the template. Their order is fixed
at creation: to rearrange a plan, delete the exercise and add it again.
Deleting an exercise also deletes every set ever logged against it.

COMMANDS:

  add      Append an exercise to a template
  update   Change an exercise's name or target sets
  delete   Remove an exercise and its logged history`,
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <template-id> <name> <target-sets>",
	Short: "Add an exercise to a template",
	Long: `Append an exercise to the end of a template.

Examples:
  gymlog exercise add abc123 "Bench Press" 3
  gymlog exercise add abc123 "Overhead Press" 4`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetSets, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid target sets: %s", args[2])
		}

		t, err := repo.GetTemplate(args[0])
		if err != nil {
			return fmt.Errorf("template not found: %s", args[0])
		}

		e, err := repo.AddExercise(t.ID, args[1], targetSets)
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.Green("✓ Added %q to %q", e.Name, t.Name)
		fmt.Printf("  %s position %d, %d sets\n",
			color.New(color.Faint).Sprint(e.ID.String()[:8]),
			e.Position, e.TargetSets)

		return nil
	},
}

var exerciseUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an exercise",
	Long: `Change an exercise's name or target set count. Position never changes.

Examples:
  gymlog exercise update abc123 --name "Incline Bench"
  gymlog exercise update abc123 --sets 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name *string
		if cmd.Flags().Changed("name") {
			name = &exerciseName
		}
		var targetSets *int
		if cmd.Flags().Changed("sets") {
			targetSets = &exerciseSets
		}

		e, err := repo.UpdateExercise(args[0], name, targetSets)
		if err != nil {
			return fmt.Errorf("failed to update exercise: %w", err)
		}

		color.Green("✓ Updated %q", e.Name)
		fmt.Printf("  %s position %d, %d sets\n",
			color.New(color.Faint).Sprint(e.ID.String()[:8]),
			e.Position, e.TargetSets)

		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete an exercise",
	Long: `Delete an exercise by its ID or ID prefix.

CAUTION:

  This permanently deletes the exercise and every set ever logged
  against it, across all sessions. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := repo.GetExercise(args[0])
		if err != nil {
			return fmt.Errorf("exercise not found: %s", args[0])
		}

		if err := repo.DeleteExercise(args[0]); err != nil {
			return fmt.Errorf("failed to delete exercise: %w", err)
		}

		color.Yellow("✗ Deleted %q", e.Name)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(e.ID.String()[:8]))

		return nil
	},
}

func init() {
	exerciseUpdateCmd.Flags().StringVar(&exerciseName, "name", "", "new exercise name")
	exerciseUpdateCmd.Flags().IntVar(&exerciseSets, "sets", 0, "new target set count")

	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseUpdateCmd)
	exerciseCmd.AddCommand(exerciseDeleteCmd)
	rootCmd.AddCommand(exerciseCmd)
}
