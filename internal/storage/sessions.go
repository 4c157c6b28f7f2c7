// ABOUTME: WorkoutSession lifecycle operations for SQLite storage.
// ABOUTME: Sessions complete exactly once; completion timestamps are immutable.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gymlog/internal/models"
)

// StartSession creates an in-progress session for a template.
func (d *DB) StartSession(templateID uuid.UUID) (*models.Session, error) {
	var exists int
	err := d.db.QueryRow("SELECT COUNT(1) FROM templates WHERE id = ?", templateID.String()).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("start session: template %s: %w", templateID, models.ErrNotFound)
	}

	s := models.NewSession(templateID)
	query := `
		INSERT INTO workout_sessions (id, template_id, started_at, completed_at)
		VALUES (?, ?, ?, NULL)
	`
	if _, err := d.db.Exec(query,
		s.ID.String(),
		s.TemplateID.String(),
		s.StartedAt.Format(time.RFC3339),
	); err != nil {
		return nil, persistErr("start session", err)
	}
	return s, nil
}

// GetSession retrieves a session by ID or ID prefix (without sets).
func (d *DB) GetSession(idOrPrefix string) (*models.Session, error) {
	id, err := d.resolveID("workout_sessions", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, template_id, started_at, completed_at
		FROM workout_sessions
		WHERE id = ?
	`
	return d.scanSession(d.db.QueryRow(query, id))
}

// ListSessions retrieves sessions, most recently finished first.
// In-progress sessions sort by their start time.
func (d *DB) ListSessions(limit int) ([]*models.Session, error) {
	query := `
		SELECT id, template_id, started_at, completed_at
		FROM workout_sessions
		ORDER BY COALESCE(completed_at, started_at) DESC, id
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	return d.scanSessions(rows)
}

// CompleteSession marks a session finished. Completing an already
// completed session is rejected; CompletedAt never changes once set.
func (d *DB) CompleteSession(idOrPrefix string) (*models.Session, error) {
	s, err := d.GetSession(idOrPrefix)
	if err != nil {
		return nil, err
	}
	if err := s.Complete(); err != nil {
		return nil, err
	}

	query := `
		UPDATE workout_sessions
		SET completed_at = ?
		WHERE id = ? AND completed_at IS NULL
	`
	result, err := d.db.Exec(query, s.CompletedAt.Format(time.RFC3339), s.ID.String())
	if err != nil {
		return nil, persistErr("complete session", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: session %s is already completed", models.ErrInvalidState, s.ID)
	}

	return s, nil
}

// DeleteSession removes a session and its logged sets (cascade
// delete). Valid for both in-progress and completed sessions; an
// abandoned session is deleted this way.
func (d *DB) DeleteSession(idOrPrefix string) error {
	id, err := d.resolveID("workout_sessions", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM workout_sessions WHERE id = ?", id)
	if err != nil {
		return persistErr("delete session", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete session %s: %w", idOrPrefix, models.ErrNotFound)
	}

	return nil
}

// scanSession scans a single row into a Session struct.
func (d *DB) scanSession(row *sql.Row) (*models.Session, error) {
	var s models.Session
	var idStr, templateIDStr, startedAt string
	var completedAt sql.NullString

	err := row.Scan(&idStr, &templateIDStr, &startedAt, &completedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	s.ID = parseUUID(idStr)
	s.TemplateID = parseUUID(templateIDStr)
	s.StartedAt = parseTime(startedAt)
	if completedAt.Valid {
		t := parseTime(completedAt.String)
		s.CompletedAt = &t
	}

	return &s, nil
}

// scanSessions scans multiple rows into a slice of Sessions.
func (d *DB) scanSessions(rows *sql.Rows) ([]*models.Session, error) {
	var sessions []*models.Session

	for rows.Next() {
		var s models.Session
		var idStr, templateIDStr, startedAt string
		var completedAt sql.NullString

		if err := rows.Scan(&idStr, &templateIDStr, &startedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}

		s.ID = parseUUID(idStr)
		s.TemplateID = parseUUID(templateIDStr)
		s.StartedAt = parseTime(startedAt)
		if completedAt.Valid {
			t := parseTime(completedAt.String)
			s.CompletedAt = &t
		}

		sessions = append(sessions, &s)
	}

	return sessions, rows.Err()
}
