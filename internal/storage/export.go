// ABOUTME: Export and import functionality for workout data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/gymlog/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for workout data.
// Templates carry their exercises; sessions carry their sets.
type ExportData struct {
	Version    string             `json:"version" yaml:"version"`
	ExportedAt time.Time          `json:"exported_at" yaml:"exported_at"`
	Tool       string             `json:"tool" yaml:"tool"`
	Templates  []*models.Template `json:"templates" yaml:"templates"`
	Sessions   []*models.Session  `json:"sessions" yaml:"sessions"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	templates, err := d.ListTemplates()
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	for _, t := range templates {
		exercises, err := d.ListExercises(t.ID)
		if err != nil {
			return nil, fmt.Errorf("list exercises: %w", err)
		}
		for _, e := range exercises {
			t.Exercises = append(t.Exercises, *e)
		}
	}

	sessions, err := d.ListSessions(0)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	for _, s := range sessions {
		groups, err := d.ListSessionSets(s.ID)
		if err != nil {
			return nil, fmt.Errorf("list session sets: %w", err)
		}
		for _, g := range groups {
			s.Sets = append(s.Sets, g.Sets...)
		}
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "gymlog",
		Templates:  templates,
		Sessions:   sessions,
	}, nil
}

// ImportData imports data from an export file, preserving IDs,
// positions, and timestamps. The destination should be empty. Runs in
// one transaction: a failed import leaves nothing behind.
func (d *DB) ImportData(data *ExportData) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer tx.Rollback()

	for _, t := range data.Templates {
		if _, err := tx.Exec(
			"INSERT INTO templates (id, name, created_at) VALUES (?, ?, ?)",
			t.ID.String(), t.Name, t.CreatedAt.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("import template %s: %w", t.ID, err)
		}

		for _, e := range t.Exercises {
			if _, err := tx.Exec(
				"INSERT INTO template_exercises (id, template_id, name, target_sets, position) VALUES (?, ?, ?, ?, ?)",
				e.ID.String(), t.ID.String(), e.Name, e.TargetSets, e.Position,
			); err != nil {
				return fmt.Errorf("import exercise %s: %w", e.ID, err)
			}
		}
	}

	for _, s := range data.Sessions {
		var completedAt interface{}
		if s.CompletedAt != nil {
			completedAt = s.CompletedAt.Format(time.RFC3339)
		}
		if _, err := tx.Exec(
			"INSERT INTO workout_sessions (id, template_id, started_at, completed_at) VALUES (?, ?, ?, ?)",
			s.ID.String(), s.TemplateID.String(), s.StartedAt.Format(time.RFC3339), completedAt,
		); err != nil {
			return fmt.Errorf("import session %s: %w", s.ID, err)
		}

		for _, ls := range s.Sets {
			if _, err := tx.Exec(
				"INSERT INTO logged_sets (id, exercise_id, session_id, weight, reps, logged_at) VALUES (?, ?, ?, ?, ?, ?)",
				ls.ID.String(), ls.ExerciseID.String(), ls.SessionID.String(),
				ls.Weight, ls.Reps, ls.LoggedAt.Format(time.RFC3339),
			); err != nil {
				return fmt.Errorf("import set %s: %w", ls.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return persistErr("import", err)
	}
	return nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ExportMarkdown exports all data as a human-readable training log.
func ExportMarkdown(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}

	exerciseNames := make(map[string]string)
	var sb strings.Builder

	sb.WriteString("# Training Log\n\n")
	sb.WriteString(fmt.Sprintf("Exported %s\n\n", data.ExportedAt.Format("2006-01-02 15:04")))

	sb.WriteString("## Templates\n\n")
	if len(data.Templates) == 0 {
		sb.WriteString("No templates.\n\n")
	}
	for _, t := range data.Templates {
		sb.WriteString(fmt.Sprintf("### %s\n\n", t.Name))
		sb.WriteString(fmt.Sprintf("Created %s\n\n", t.CreatedAt.Format("2006-01-02")))
		for _, e := range t.Exercises {
			exerciseNames[e.ID.String()] = e.Name
			sb.WriteString(fmt.Sprintf("%d. %s (%d sets)\n", e.Position, e.Name, e.TargetSets))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Sessions\n\n")
	if len(data.Sessions) == 0 {
		sb.WriteString("No sessions.\n")
	}
	for _, s := range data.Sessions {
		status := "in progress"
		if s.CompletedAt != nil {
			status = "completed " + s.CompletedAt.Format("2006-01-02 15:04")
		}
		sb.WriteString(fmt.Sprintf("### %s (%s)\n\n", s.StartedAt.Format("2006-01-02 15:04"), status))
		for _, ls := range s.Sets {
			name := exerciseNames[ls.ExerciseID.String()]
			if name == "" {
				name = ls.ExerciseID.String()[:8]
			}
			sb.WriteString(fmt.Sprintf("- %s: %g x %d\n", name, ls.Weight, ls.Reps))
		}
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

// ImportJSON parses a JSON export and loads it into the repository.
func ImportJSON(repo Repository, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("%w: parse export: %v", models.ErrInvalidInput, err)
	}
	return repo.ImportData(&data)
}
