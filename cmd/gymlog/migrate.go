// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies everything from one backend to the other in either direction.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/gymlog/internal/config"
	"github.com/harperreed/gymlog/internal/storage"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate <from> <to>",
	Short:     "Migrate data between storage backends",
	ValidArgs: []string{"sqlite", "badger"},
	Long: `Copy all workout data from one storage backend to the other.

Both backends live under the configured data directory. The destination
should be empty: existing records with the same IDs will cause errors
on SQLite and be overwritten on Badger.

After migrating, set "backend" in ~/.config/gymlog/config.json to the
new backend to start using it.

EXAMPLES:

  gymlog migrate sqlite badger   # Move from SQLite to Badger
  gymlog migrate badger sqlite   # Move back`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to := args[0], args[1]
		if from == to {
			return fmt.Errorf("source and destination backends are the same: %s", from)
		}

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDir != "" {
			c.DataDir = dataDir
		}
		root := c.GetDataDir()

		src, err := config.OpenBackend(from, root)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", from, err)
		}
		defer func() { _ = src.Close() }()

		dst, err := config.OpenBackend(to, root)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", to, err)
		}
		defer func() { _ = dst.Close() }()

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %s to %s", from, to)
		fmt.Printf("  %d templates, %d exercises\n", summary.Templates, summary.Exercises)
		fmt.Printf("  %d sessions, %d sets\n", summary.Sessions, summary.Sets)
		fmt.Println()
		fmt.Printf("To switch, set \"backend\": %q in %s\n", to, config.GetConfigPath())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
