// ABOUTME: Root Cobra command for gymlog CLI.
// ABOUTME: Handles storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/gymlog/internal/config"
	"github.com/harperreed/gymlog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	repo    storage.Repository
	dataDir string
)

// Version is set at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "gymlog",
	Short: "Personal workout tracker",
	Long: `Gymlog is a CLI tool for planning workouts and logging what you lift.

CONCEPTS:

  Template   A reusable workout plan (e.g. "Push Day") holding an
             ordered list of exercises.
  Exercise   One movement in a template with a planned set count.
  Session    One trip to the gym, started from a template.
  Set        One logged set: weight and reps, timestamped.

QUICK START:

  $ gymlog template create "Push Day"          # Plan a workout
  $ gymlog exercise add <tmpl> "Bench Press" 3 # Add exercises in order
  $ gymlog session start <tmpl>                # Start training
  $ gymlog log <session> <exercise> 80 8       # Log 80 x 8
  $ gymlog last <exercise>                     # What did I lift last time?
  $ gymlog session complete <session>          # Done

MCP INTEGRATION:

  Run 'gymlog mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "gymlog": { "command": "gymlog", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data is stored in SQLite at ~/.local/share/gymlog/gymlog.db by default.
  Set "backend": "badger" in ~/.config/gymlog/config.json to use the
  Badger key-value store instead.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "migrate" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gymlog version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gymlog %s\n", Version)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the data directory")
	rootCmd.AddCommand(versionCmd)
}
