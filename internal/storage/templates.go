// ABOUTME: Template CRUD operations for SQLite storage.
// ABOUTME: Deleting a template cascades through exercises, sessions, and sets.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/gymlog/internal/models"
)

// persistErr tags a failed durable write so callers can match it with
// errors.Is(err, models.ErrPersistence) while keeping the driver error.
func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(models.ErrPersistence, err))
}

// CreateTemplate stores a new workout template.
func (d *DB) CreateTemplate(name string) (*models.Template, error) {
	t := models.NewTemplate(name)
	if err := t.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO templates (id, name, created_at)
		VALUES (?, ?, ?)
	`
	_, err := d.db.Exec(query,
		t.ID.String(),
		t.Name,
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, persistErr("create template", err)
	}
	return t, nil
}

// GetTemplate retrieves a template by ID or ID prefix (without exercises).
func (d *DB) GetTemplate(idOrPrefix string) (*models.Template, error) {
	id, err := d.resolveID("templates", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, created_at
		FROM templates
		WHERE id = ?
	`
	return d.scanTemplate(d.db.QueryRow(query, id))
}

// GetTemplateWithExercises retrieves a template with its exercises in
// position order.
func (d *DB) GetTemplateWithExercises(idOrPrefix string) (*models.Template, error) {
	t, err := d.GetTemplate(idOrPrefix)
	if err != nil {
		return nil, err
	}

	exercises, err := d.ListExercises(t.ID)
	if err != nil {
		return nil, fmt.Errorf("list template exercises: %w", err)
	}

	for _, e := range exercises {
		t.Exercises = append(t.Exercises, *e)
	}

	return t, nil
}

// ListTemplates retrieves all templates, most recently created first.
func (d *DB) ListTemplates() ([]*models.Template, error) {
	query := `
		SELECT id, name, created_at
		FROM templates
		ORDER BY created_at DESC, id
	`
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	return d.scanTemplates(rows)
}

// RenameTemplate changes a template's name. CreatedAt and ID are immutable.
func (d *DB) RenameTemplate(idOrPrefix, name string) (*models.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: template name must not be blank", models.ErrInvalidInput)
	}

	id, err := d.resolveID("templates", idOrPrefix)
	if err != nil {
		return nil, err
	}

	if _, err := d.db.Exec("UPDATE templates SET name = ? WHERE id = ?", name, id); err != nil {
		return nil, persistErr("rename template", err)
	}
	return d.GetTemplate(id)
}

// DeleteTemplate removes a template, its exercises, its sessions, and
// every logged set under any of them (cascade delete).
func (d *DB) DeleteTemplate(idOrPrefix string) error {
	id, err := d.resolveID("templates", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}

	// CASCADE handles exercises, sessions, and their sets
	result, err := d.db.Exec("DELETE FROM templates WHERE id = ?", id)
	if err != nil {
		return persistErr("delete template", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete template %s: %w", idOrPrefix, models.ErrNotFound)
	}

	return nil
}

// resolveID finds a full ID in the given table from an ID or prefix.
func (d *DB) resolveID(table, idOrPrefix string) (string, error) {
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	query := fmt.Sprintf(`SELECT id FROM %s WHERE id LIKE ? || '%%'`, table)
	rows, err := d.db.Query(query, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve ID: %w", err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%s: %w", idOrPrefix, models.ErrNotFound)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%w: ambiguous prefix %s matches multiple records", models.ErrInvalidInput, idOrPrefix)
	}

	return matches[0], nil
}

// scanTemplate scans a single row into a Template struct.
func (d *DB) scanTemplate(row *sql.Row) (*models.Template, error) {
	var t models.Template
	var idStr, createdAt string

	err := row.Scan(&idStr, &t.Name, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("scan template: %w", err)
	}

	t.ID = parseUUID(idStr)
	t.CreatedAt = parseTime(createdAt)

	return &t, nil
}

// scanTemplates scans multiple rows into a slice of Templates.
func (d *DB) scanTemplates(rows *sql.Rows) ([]*models.Template, error) {
	var templates []*models.Template

	for rows.Next() {
		var t models.Template
		var idStr, createdAt string

		if err := rows.Scan(&idStr, &t.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}

		t.ID = parseUUID(idStr)
		t.CreatedAt = parseTime(createdAt)

		templates = append(templates, &t)
	}

	return templates, rows.Err()
}
