// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for templates, exercises, sessions, and logged sets.
package storage

// initSchema creates or updates the database schema.
//
// All foreign keys cascade on delete: removing a template removes its
// exercises and sessions, and through them every logged set. Removing
// an exercise or a session removes only its own sets.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS template_exercises (
		id TEXT PRIMARY KEY,
		template_id TEXT NOT NULL,
		name TEXT NOT NULL,
		target_sets INTEGER NOT NULL CHECK (target_sets >= 1),
		position INTEGER NOT NULL,
		FOREIGN KEY (template_id) REFERENCES templates(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS workout_sessions (
		id TEXT PRIMARY KEY,
		template_id TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		completed_at DATETIME,
		FOREIGN KEY (template_id) REFERENCES templates(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS logged_sets (
		id TEXT PRIMARY KEY,
		exercise_id TEXT NOT NULL,
		session_id TEXT NOT NULL,
		weight REAL NOT NULL CHECK (weight >= 0),
		reps INTEGER NOT NULL CHECK (reps >= 1),
		logged_at DATETIME NOT NULL,
		FOREIGN KEY (exercise_id) REFERENCES template_exercises(id) ON DELETE CASCADE,
		FOREIGN KEY (session_id) REFERENCES workout_sessions(id) ON DELETE CASCADE
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_exercises_template_position
		ON template_exercises(template_id, position);
	CREATE INDEX IF NOT EXISTS idx_templates_created ON templates(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_sessions_template ON workout_sessions(template_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON workout_sessions(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_sets_exercise_logged ON logged_sets(exercise_id, logged_at DESC);
	CREATE INDEX IF NOT EXISTS idx_sets_session ON logged_sets(session_id);
	`

	_, err := d.db.Exec(schema)
	return err
}
