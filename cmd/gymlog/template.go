// ABOUTME: CLI commands for managing workout templates.
// ABOUTME: Supports create, list, show, rename, and delete subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"t", "tmpl"},
	Short:   "Manage workout templates",
	Long: `Plan workouts as reusable templates.

A template holds an ordered list of exercises with a planned set count
for each. Sessions are started from a template and inherit its exercise
order.

WORKFLOW:

  1. Create a template:    gymlog template create "Push Day"
  2. Add exercises:        gymlog exercise add abc123 "Bench Press" 3
  3. Review the plan:      gymlog template show abc123
  4. Train:                gymlog session start abc123

COMMANDS:

  create   Create a new template
  list     List all templates
  show     View a template and its exercises
  rename   Rename a template
  delete   Delete a template and its entire history`,
}

var templateCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new template",
	Long: `Create a new workout template.

Examples:
  gymlog template create "Push Day"
  gymlog template create "Legs"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := repo.CreateTemplate(args[0])
		if err != nil {
			return fmt.Errorf("failed to create template: %w", err)
		}

		color.Green("✓ Created template %q", t.Name)
		fmt.Printf("  ID: %s\n", t.ID.String()[:8])

		return nil
	},
}

var templateListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := repo.ListTemplates()
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}

		if len(templates) == 0 {
			fmt.Println("No templates found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, t := range templates {
			fmt.Printf("%s %s %s\n",
				faint.Sprint(t.ID.String()[:8]),
				faint.Sprint(t.CreatedAt.Format("2006-01-02 15:04")),
				t.Name)
		}

		return nil
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a template and its exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := repo.GetTemplateWithExercises(args[0])
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}

		fmt.Printf("Template: %s\n", t.Name)
		fmt.Printf("ID: %s\n", t.ID.String()[:8])
		fmt.Printf("Created: %s\n", t.CreatedAt.Format("2006-01-02 15:04"))

		if len(t.Exercises) > 0 {
			faint := color.New(color.Faint)
			fmt.Println("\nExercises:")
			for _, e := range t.Exercises {
				fmt.Printf("  %d. %s %s (%d sets)\n",
					e.Position,
					faint.Sprint(e.ID.String()[:8]),
					e.Name,
					e.TargetSets)
			}
		} else {
			fmt.Println("\nNo exercises yet. Add one with:")
			fmt.Printf("  gymlog exercise add %s \"Bench Press\" 3\n", t.ID.String()[:8])
		}

		return nil
	},
}

var templateRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := repo.RenameTemplate(args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to rename template: %w", err)
		}

		color.Green("✓ Renamed template to %q", t.Name)
		return nil
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a template",
	Long: `Delete a template by its ID or ID prefix.

CAUTION:

  This permanently deletes the template, its exercises, every session
  started from it, and every set logged in those sessions. There is no
  undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Look it up first so we can show what we're deleting
		t, err := repo.GetTemplate(args[0])
		if err != nil {
			return fmt.Errorf("template not found: %s", args[0])
		}

		if err := repo.DeleteTemplate(args[0]); err != nil {
			return fmt.Errorf("failed to delete template: %w", err)
		}

		color.Yellow("✗ Deleted template %q", t.Name)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(t.ID.String()[:8]))

		return nil
	},
}

func init() {
	templateCmd.AddCommand(templateCreateCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateRenameCmd)
	templateCmd.AddCommand(templateDeleteCmd)
	rootCmd.AddCommand(templateCmd)
}
