// ABOUTME: MCP tool implementations for the workout log.
// ABOUTME: Provides template, session, and set operations over stdio.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// create_template
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_template",
		Description: "Create a new workout template",
	}, s.handleCreateTemplate)

	// list_templates
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_templates",
		Description: "List all workout templates, newest first",
	}, s.handleListTemplates)

	// get_template
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_template",
		Description: "Get a template with its exercises in order",
	}, s.handleGetTemplate)

	// rename_template
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "rename_template",
		Description: "Rename a workout template",
	}, s.handleRenameTemplate)

	// delete_template
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_template",
		Description: "Delete a template, its exercises, sessions, and logged sets",
	}, s.handleDeleteTemplate)

	// add_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add an exercise to the end of a template",
	}, s.handleAddExercise)

	// update_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_exercise",
		Description: "Change an exercise's name or target set count",
	}, s.handleUpdateExercise)

	// delete_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_exercise",
		Description: "Remove an exercise and its logged history",
	}, s.handleDeleteExercise)

	// start_session
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_session",
		Description: "Start a workout session from a template",
	}, s.handleStartSession)

	// log_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_set",
		Description: "Log one set (weight and reps) in an in-progress session",
	}, s.handleLogSet)

	// complete_session
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_session",
		Description: "Mark an in-progress session as completed",
	}, s.handleCompleteSession)

	// list_sessions
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_sessions",
		Description: "List workout sessions, most recent first",
	}, s.handleListSessions)

	// get_session
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_session",
		Description: "Get a session with its sets grouped by exercise",
	}, s.handleGetSession)

	// delete_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_set",
		Description: "Delete a logged set (the correction path for mistakes)",
	}, s.handleDeleteSet)

	// last_performance
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "last_performance",
		Description: "Get the most recent logged set for an exercise",
	}, s.handleLastPerformance)
}

// Tool input/output types

type createTemplateInput struct {
	Name string `json:"name" jsonschema:"Template name (e.g. Push Day)"`
}

type templateOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type getTemplateInput struct {
	ID string `json:"id" jsonschema:"Template ID or prefix"`
}

type renameTemplateInput struct {
	ID   string `json:"id" jsonschema:"Template ID or prefix"`
	Name string `json:"name" jsonschema:"New template name"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type addExerciseInput struct {
	TemplateID string `json:"template_id" jsonschema:"Template ID or prefix"`
	Name       string `json:"name" jsonschema:"Exercise name (e.g. Bench Press)"`
	TargetSets int    `json:"target_sets" jsonschema:"Planned number of sets (at least 1)"`
}

type exerciseOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TargetSets int    `json:"target_sets"`
	Position   int    `json:"position"`
	Message    string `json:"message"`
}

type updateExerciseInput struct {
	ID         string `json:"id" jsonschema:"Exercise ID or prefix"`
	Name       string `json:"name,omitempty" jsonschema:"New exercise name"`
	TargetSets int    `json:"target_sets,omitempty" jsonschema:"New target set count"`
}

type deleteExerciseInput struct {
	ID string `json:"id" jsonschema:"Exercise ID or prefix"`
}

type startSessionInput struct {
	TemplateID string `json:"template_id" jsonschema:"Template ID or prefix"`
}

type sessionOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type logSetInput struct {
	SessionID  string  `json:"session_id" jsonschema:"Session ID or prefix"`
	ExerciseID string  `json:"exercise_id" jsonschema:"Exercise ID or prefix"`
	Weight     float64 `json:"weight" jsonschema:"Weight used (0 for bodyweight)"`
	Reps       int     `json:"reps" jsonschema:"Repetitions completed (at least 1)"`
}

type sessionIDInput struct {
	ID string `json:"id" jsonschema:"Session ID or prefix"`
}

type listSessionsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type deleteSetInput struct {
	ID string `json:"id" jsonschema:"Logged set ID or prefix"`
}

type lastPerformanceInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise ID or prefix"`
}

// Tool handlers

func (s *Server) handleCreateTemplate(ctx context.Context, req *mcp.CallToolRequest, input createTemplateInput) (*mcp.CallToolResult, templateOutput, error) {
	t, err := s.repo.CreateTemplate(input.Name)
	if err != nil {
		return nil, templateOutput{}, fmt.Errorf("failed to create template: %w", err)
	}

	return nil, templateOutput{
		ID:      t.ID.String()[:8],
		Name:    t.Name,
		Message: fmt.Sprintf("Created template %q (ID: %s)", t.Name, t.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListTemplates(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	templates, err := s.repo.ListTemplates()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list templates: %w", err)
	}

	if len(templates) == 0 {
		return nil, map[string]interface{}{"message": "No templates found."}, nil
	}

	return nil, templates, nil
}

func (s *Server) handleGetTemplate(ctx context.Context, req *mcp.CallToolRequest, input getTemplateInput) (*mcp.CallToolResult, any, error) {
	t, err := s.repo.GetTemplateWithExercises(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("template not found: %s", input.ID)
	}

	return nil, t, nil
}

func (s *Server) handleRenameTemplate(ctx context.Context, req *mcp.CallToolRequest, input renameTemplateInput) (*mcp.CallToolResult, templateOutput, error) {
	t, err := s.repo.RenameTemplate(input.ID, input.Name)
	if err != nil {
		return nil, templateOutput{}, fmt.Errorf("failed to rename template: %w", err)
	}

	return nil, templateOutput{
		ID:      t.ID.String()[:8],
		Name:    t.Name,
		Message: fmt.Sprintf("Renamed template to %q", t.Name),
	}, nil
}

func (s *Server) handleDeleteTemplate(ctx context.Context, req *mcp.CallToolRequest, input getTemplateInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteTemplate(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete template: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted template: %s", input.ID),
	}, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	t, err := s.repo.GetTemplate(input.TemplateID)
	if err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("template not found: %s", input.TemplateID)
	}

	e, err := s.repo.AddExercise(t.ID, input.Name, input.TargetSets)
	if err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("failed to add exercise: %w", err)
	}

	return nil, exerciseOutput{
		ID:         e.ID.String()[:8],
		Name:       e.Name,
		TargetSets: e.TargetSets,
		Position:   e.Position,
		Message:    fmt.Sprintf("Added %q at position %d (ID: %s)", e.Name, e.Position, e.ID.String()[:8]),
	}, nil
}

func (s *Server) handleUpdateExercise(ctx context.Context, req *mcp.CallToolRequest, input updateExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	var name *string
	if input.Name != "" {
		name = &input.Name
	}
	var targetSets *int
	if input.TargetSets != 0 {
		targetSets = &input.TargetSets
	}

	e, err := s.repo.UpdateExercise(input.ID, name, targetSets)
	if err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("failed to update exercise: %w", err)
	}

	return nil, exerciseOutput{
		ID:         e.ID.String()[:8],
		Name:       e.Name,
		TargetSets: e.TargetSets,
		Position:   e.Position,
		Message:    fmt.Sprintf("Updated %q: %d target sets", e.Name, e.TargetSets),
	}, nil
}

func (s *Server) handleDeleteExercise(ctx context.Context, req *mcp.CallToolRequest, input deleteExerciseInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteExercise(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete exercise: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted exercise: %s", input.ID),
	}, nil
}

func (s *Server) handleStartSession(ctx context.Context, req *mcp.CallToolRequest, input startSessionInput) (*mcp.CallToolResult, sessionOutput, error) {
	t, err := s.repo.GetTemplate(input.TemplateID)
	if err != nil {
		return nil, sessionOutput{}, fmt.Errorf("template not found: %s", input.TemplateID)
	}

	sess, err := s.repo.StartSession(t.ID)
	if err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to start session: %w", err)
	}

	return nil, sessionOutput{
		ID:      sess.ID.String()[:8],
		Message: fmt.Sprintf("Started %q session (ID: %s)", t.Name, sess.ID.String()[:8]),
	}, nil
}

func (s *Server) handleLogSet(ctx context.Context, req *mcp.CallToolRequest, input logSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	e, err := s.repo.GetExercise(input.ExerciseID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("exercise not found: %s", input.ExerciseID)
	}
	sess, err := s.repo.GetSession(input.SessionID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("session not found: %s", input.SessionID)
	}

	ls, err := s.repo.LogSet(e.ID, sess.ID, input.Weight, input.Reps)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to log set: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Logged %s: %.1f x %d (ID: %s)", e.Name, ls.Weight, ls.Reps, ls.ID.String()[:8]),
	}, nil
}

func (s *Server) handleCompleteSession(ctx context.Context, req *mcp.CallToolRequest, input sessionIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	sess, err := s.repo.CompleteSession(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to complete session: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Completed session %s at %s", sess.ID.String()[:8], sess.CompletedAt.Format(time.RFC3339)),
	}, nil
}

func (s *Server) handleListSessions(ctx context.Context, req *mcp.CallToolRequest, input listSessionsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	sessions, err := s.repo.ListSessions(input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		return nil, map[string]interface{}{"message": "No sessions found."}, nil
	}

	return nil, sessions, nil
}

func (s *Server) handleGetSession(ctx context.Context, req *mcp.CallToolRequest, input sessionIDInput) (*mcp.CallToolResult, any, error) {
	sess, err := s.repo.GetSession(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("session not found: %s", input.ID)
	}

	groups, err := s.repo.ListSessionSets(sess.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list session sets: %w", err)
	}

	return nil, map[string]interface{}{
		"session":   sess,
		"exercises": groups,
	}, nil
}

func (s *Server) handleDeleteSet(ctx context.Context, req *mcp.CallToolRequest, input deleteSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteSet(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete set: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted set: %s", input.ID),
	}, nil
}

func (s *Server) handleLastPerformance(ctx context.Context, req *mcp.CallToolRequest, input lastPerformanceInput) (*mcp.CallToolResult, any, error) {
	e, err := s.repo.GetExercise(input.ExerciseID)
	if err != nil {
		return nil, nil, fmt.Errorf("exercise not found: %s", input.ExerciseID)
	}

	ls, err := s.repo.LastSet(e.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up last set: %w", err)
	}
	if ls == nil {
		return nil, map[string]interface{}{
			"exercise": e.Name,
			"message":  "No history for this exercise yet.",
		}, nil
	}

	return nil, map[string]interface{}{
		"exercise":  e.Name,
		"weight":    ls.Weight,
		"reps":      ls.Reps,
		"logged_at": ls.LoggedAt.Format(time.RFC3339),
	}, nil
}
