// ABOUTME: LoggedSet operations and performance queries for SQLite storage.
// ABOUTME: Sets are append-only; corrections are delete and re-log.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gymlog/internal/models"
)

// LogSet appends one immutable set record to a session. The session
// must still be in progress and both references must be live. A
// rejected call writes nothing.
func (d *DB) LogSet(exerciseID, sessionID uuid.UUID, weight float64, reps int) (*models.LoggedSet, error) {
	ls := models.NewLoggedSet(exerciseID, sessionID, weight, reps)
	if err := ls.Validate(); err != nil {
		return nil, err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("log set: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow("SELECT COUNT(1) FROM template_exercises WHERE id = ?", exerciseID.String()).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("log set: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("log set: exercise %s: %w", exerciseID, models.ErrNotFound)
	}

	var completedAt sql.NullString
	err = tx.QueryRow("SELECT completed_at FROM workout_sessions WHERE id = ?", sessionID.String()).Scan(&completedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("log set: session %s: %w", sessionID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("log set: %w", err)
	}
	if completedAt.Valid {
		return nil, fmt.Errorf("%w: session %s is already completed", models.ErrInvalidState, sessionID)
	}

	query := `
		INSERT INTO logged_sets (id, exercise_id, session_id, weight, reps, logged_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.Exec(query,
		ls.ID.String(),
		ls.ExerciseID.String(),
		ls.SessionID.String(),
		ls.Weight,
		ls.Reps,
		ls.LoggedAt.Format(time.RFC3339),
	); err != nil {
		return nil, persistErr("log set", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, persistErr("log set", err)
	}
	return ls, nil
}

// DeleteSet removes a logged set. This is the correction path: sets
// are never edited in place.
func (d *DB) DeleteSet(idOrPrefix string) error {
	id, err := d.resolveID("logged_sets", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete set: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM logged_sets WHERE id = ?", id)
	if err != nil {
		return persistErr("delete set", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete set %s: %w", idOrPrefix, models.ErrNotFound)
	}

	return nil
}

// ListSessionSets retrieves a session's sets grouped by exercise.
// Groups follow exercise position order; sets within a group follow
// logging order. Exercises with no sets in the session are omitted.
func (d *DB) ListSessionSets(sessionID uuid.UUID) ([]SetGroup, error) {
	if _, err := d.GetSession(sessionID.String()); err != nil {
		return nil, fmt.Errorf("list session sets: %w", err)
	}

	query := `
		SELECT e.id, e.template_id, e.name, e.target_sets, e.position,
		       s.id, s.exercise_id, s.session_id, s.weight, s.reps, s.logged_at
		FROM logged_sets s
		JOIN template_exercises e ON e.id = s.exercise_id
		WHERE s.session_id = ?
		ORDER BY e.position ASC, s.logged_at ASC, s.id
	`
	rows, err := d.db.Query(query, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("list session sets: %w", err)
	}
	defer rows.Close()

	var groups []SetGroup
	for rows.Next() {
		var e models.Exercise
		var ls models.LoggedSet
		var eID, eTemplateID, sID, sExerciseID, sSessionID, loggedAt string

		if err := rows.Scan(
			&eID, &eTemplateID, &e.Name, &e.TargetSets, &e.Position,
			&sID, &sExerciseID, &sSessionID, &ls.Weight, &ls.Reps, &loggedAt,
		); err != nil {
			return nil, fmt.Errorf("scan session set: %w", err)
		}

		e.ID = parseUUID(eID)
		e.TemplateID = parseUUID(eTemplateID)
		ls.ID = parseUUID(sID)
		ls.ExerciseID = parseUUID(sExerciseID)
		ls.SessionID = parseUUID(sSessionID)
		ls.LoggedAt = parseTime(loggedAt)

		if len(groups) == 0 || groups[len(groups)-1].Exercise.ID != e.ID {
			groups = append(groups, SetGroup{Exercise: e})
		}
		groups[len(groups)-1].Sets = append(groups[len(groups)-1].Sets, ls)
	}

	return groups, rows.Err()
}

// LastSet returns the most recently logged set for an exercise, the
// progressive-overload hint. Ties on logged_at break on the highest ID
// so the answer is deterministic. Returns (nil, nil) when the exercise
// exists but has no history.
func (d *DB) LastSet(exerciseID uuid.UUID) (*models.LoggedSet, error) {
	if _, err := d.GetExercise(exerciseID.String()); err != nil {
		return nil, fmt.Errorf("last set: %w", err)
	}

	query := `
		SELECT id, exercise_id, session_id, weight, reps, logged_at
		FROM logged_sets
		WHERE exercise_id = ?
		ORDER BY logged_at DESC, id DESC
		LIMIT 1
	`
	return d.scanLastSet(d.db.QueryRow(query, exerciseID.String()))
}

// LastSetInSession is LastSet scoped to one session, used while
// actively logging to show the previous set of the current exercise.
func (d *DB) LastSetInSession(exerciseID, sessionID uuid.UUID) (*models.LoggedSet, error) {
	if _, err := d.GetExercise(exerciseID.String()); err != nil {
		return nil, fmt.Errorf("last set in session: %w", err)
	}
	if _, err := d.GetSession(sessionID.String()); err != nil {
		return nil, fmt.Errorf("last set in session: %w", err)
	}

	query := `
		SELECT id, exercise_id, session_id, weight, reps, logged_at
		FROM logged_sets
		WHERE exercise_id = ? AND session_id = ?
		ORDER BY logged_at DESC, id DESC
		LIMIT 1
	`
	return d.scanLastSet(d.db.QueryRow(query, exerciseID.String(), sessionID.String()))
}

// scanLastSet scans a performance-query row, mapping no rows to the
// "no history" answer.
func (d *DB) scanLastSet(row *sql.Row) (*models.LoggedSet, error) {
	ls, err := d.scanSet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return ls, nil
}

// scanSet scans a single row into a LoggedSet struct.
func (d *DB) scanSet(row *sql.Row) (*models.LoggedSet, error) {
	var ls models.LoggedSet
	var idStr, exerciseIDStr, sessionIDStr, loggedAt string

	err := row.Scan(&idStr, &exerciseIDStr, &sessionIDStr, &ls.Weight, &ls.Reps, &loggedAt)
	if err != nil {
		return nil, err
	}

	ls.ID = parseUUID(idStr)
	ls.ExerciseID = parseUUID(exerciseIDStr)
	ls.SessionID = parseUUID(sessionIDStr)
	ls.LoggedAt = parseTime(loggedAt)

	return &ls, nil
}
