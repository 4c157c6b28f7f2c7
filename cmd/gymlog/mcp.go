// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/gymlog/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to plan and log workouts through a
standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "gymlog": {
        "command": "gymlog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  create_template    Create a workout template
  list_templates     List all templates
  get_template       Get a template with its exercises
  rename_template    Rename a template
  delete_template    Delete a template and its history
  add_exercise       Append an exercise to a template
  update_exercise    Change an exercise's name or target sets
  delete_exercise    Remove an exercise and its history
  start_session      Start a session from a template
  log_set            Log weight and reps in a session
  complete_session   Mark a session finished
  list_sessions      List recent sessions
  get_session        Get a session with its sets
  delete_set         Delete a mistaken set
  last_performance   Most recent set for an exercise

AVAILABLE RESOURCES:

  gymlog://templates   All templates with exercises
  gymlog://recent      Last 10 sessions
  gymlog://summary     Last performance per exercise`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
