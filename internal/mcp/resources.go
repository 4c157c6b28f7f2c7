// ABOUTME: MCP resource implementations for the workout log.
// ABOUTME: Provides gymlog://templates, gymlog://recent, and gymlog://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// gymlog://templates - All templates with their exercises
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "gymlog://templates",
		Name:        "Workout Templates",
		Description: "All workout templates with their exercises in order",
		MIMEType:    "application/json",
	}, s.handleTemplatesResource)

	// gymlog://recent - Last 10 sessions
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "gymlog://recent",
		Name:        "Recent Sessions",
		Description: "Last 10 workout sessions, most recent first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// gymlog://summary - Dashboard with last performance per exercise
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "gymlog://summary",
		Name:        "Training Summary",
		Description: "Most recent logged set for every exercise, grouped by template",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleTemplatesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	templates, err := s.repo.ListTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	for _, t := range templates {
		exercises, err := s.repo.ListExercises(t.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list exercises: %w", err)
		}
		for _, e := range exercises {
			t.Exercises = append(t.Exercises, *e)
		}
	}

	data, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "gymlog://templates",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	sessions, err := s.repo.ListSessions(10)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	entries := make([]map[string]interface{}, 0, len(sessions))
	for _, sess := range sessions {
		groups, err := s.repo.ListSessionSets(sess.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list session sets: %w", err)
		}

		setCount := 0
		for _, g := range groups {
			setCount += len(g.Sets)
		}

		entry := map[string]interface{}{
			"session":   sess,
			"exercises": groups,
			"set_count": setCount,
		}
		entries = append(entries, entry)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "gymlog://recent",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	templates, err := s.repo.ListTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	summary := make([]map[string]interface{}, 0, len(templates))
	for _, t := range templates {
		exercises, err := s.repo.ListExercises(t.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list exercises: %w", err)
		}

		entries := make([]map[string]interface{}, 0, len(exercises))
		for _, e := range exercises {
			entry := map[string]interface{}{
				"exercise":    e.Name,
				"target_sets": e.TargetSets,
				"position":    e.Position,
			}
			ls, err := s.repo.LastSet(e.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to look up last set: %w", err)
			}
			if ls != nil {
				entry["last"] = map[string]interface{}{
					"weight":    ls.Weight,
					"reps":      ls.Reps,
					"logged_at": ls.LoggedAt.Format(time.RFC3339),
				}
			}
			entries = append(entries, entry)
		}

		summary = append(summary, map[string]interface{}{
			"template":  t.Name,
			"exercises": entries,
		})
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"templates":    summary,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "gymlog://summary",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
