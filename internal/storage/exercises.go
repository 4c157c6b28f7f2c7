// ABOUTME: TemplateExercise CRUD operations for SQLite storage.
// ABOUTME: Positions are assigned max+1 inside the insert transaction, never reused.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/gymlog/internal/models"
)

// AddExercise appends an exercise to a template. The new exercise
// takes position max(existing positions)+1, so positions within a
// template are strictly increasing in insertion order and gaps left by
// deletes are never filled.
func (d *DB) AddExercise(templateID uuid.UUID, name string, targetSets int) (*models.Exercise, error) {
	e := models.NewExercise(templateID, name, targetSets)
	if err := e.Validate(); err != nil {
		return nil, err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow("SELECT COUNT(1) FROM templates WHERE id = ?", templateID.String()).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("add exercise: template %s: %w", templateID, models.ErrNotFound)
	}

	err = tx.QueryRow(
		"SELECT COALESCE(MAX(position), 0) + 1 FROM template_exercises WHERE template_id = ?",
		templateID.String(),
	).Scan(&e.Position)
	if err != nil {
		return nil, fmt.Errorf("assign position: %w", err)
	}

	query := `
		INSERT INTO template_exercises (id, template_id, name, target_sets, position)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := tx.Exec(query,
		e.ID.String(),
		e.TemplateID.String(),
		e.Name,
		e.TargetSets,
		e.Position,
	); err != nil {
		return nil, persistErr("add exercise", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, persistErr("add exercise", err)
	}
	return e, nil
}

// GetExercise retrieves an exercise by ID or ID prefix.
func (d *DB) GetExercise(idOrPrefix string) (*models.Exercise, error) {
	id, err := d.resolveID("template_exercises", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, template_id, name, target_sets, position
		FROM template_exercises
		WHERE id = ?
	`
	return d.scanExercise(d.db.QueryRow(query, id))
}

// UpdateExercise applies a partial update. A nil field is left
// unchanged; position and template are immutable.
func (d *DB) UpdateExercise(idOrPrefix string, name *string, targetSets *int) (*models.Exercise, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, fmt.Errorf("%w: exercise name must not be blank", models.ErrInvalidInput)
	}
	if targetSets != nil && *targetSets < 1 {
		return nil, fmt.Errorf("%w: target sets must be at least 1, got %d", models.ErrInvalidInput, *targetSets)
	}

	id, err := d.resolveID("template_exercises", idOrPrefix)
	if err != nil {
		return nil, err
	}

	var sets []string
	var args []interface{}
	if name != nil {
		sets = append(sets, "name = ?")
		args = append(args, strings.TrimSpace(*name))
	}
	if targetSets != nil {
		sets = append(sets, "target_sets = ?")
		args = append(args, *targetSets)
	}
	if len(sets) > 0 {
		args = append(args, id)
		query := "UPDATE template_exercises SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := d.db.Exec(query, args...); err != nil {
			return nil, persistErr("update exercise", err)
		}
	}

	return d.GetExercise(id)
}

// ListExercises retrieves a template's exercises in position order.
func (d *DB) ListExercises(templateID uuid.UUID) ([]*models.Exercise, error) {
	var exists int
	err := d.db.QueryRow("SELECT COUNT(1) FROM templates WHERE id = ?", templateID.String()).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("list exercises: template %s: %w", templateID, models.ErrNotFound)
	}

	query := `
		SELECT id, template_id, name, target_sets, position
		FROM template_exercises
		WHERE template_id = ?
		ORDER BY position ASC
	`
	rows, err := d.db.Query(query, templateID.String())
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	return d.scanExercises(rows)
}

// DeleteExercise removes an exercise and its logged sets (cascade
// delete). The parent template and sibling exercises keep their
// positions; the resulting gap is expected.
func (d *DB) DeleteExercise(idOrPrefix string) error {
	id, err := d.resolveID("template_exercises", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM template_exercises WHERE id = ?", id)
	if err != nil {
		return persistErr("delete exercise", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete exercise %s: %w", idOrPrefix, models.ErrNotFound)
	}

	return nil
}

// scanExercise scans a single row into an Exercise struct.
func (d *DB) scanExercise(row *sql.Row) (*models.Exercise, error) {
	var e models.Exercise
	var idStr, templateIDStr string

	err := row.Scan(&idStr, &templateIDStr, &e.Name, &e.TargetSets, &e.Position)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("scan exercise: %w", err)
	}

	e.ID = parseUUID(idStr)
	e.TemplateID = parseUUID(templateIDStr)

	return &e, nil
}

// scanExercises scans multiple rows into a slice of Exercises.
func (d *DB) scanExercises(rows *sql.Rows) ([]*models.Exercise, error) {
	var exercises []*models.Exercise

	for rows.Next() {
		var e models.Exercise
		var idStr, templateIDStr string

		if err := rows.Scan(&idStr, &templateIDStr, &e.Name, &e.TargetSets, &e.Position); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}

		e.ID = parseUUID(idStr)
		e.TemplateID = parseUUID(templateIDStr)

		exercises = append(exercises, &e)
	}

	return exercises, rows.Err()
}
