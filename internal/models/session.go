// ABOUTME: Session and LoggedSet models for performed workouts.
// ABOUTME: Sessions reference a template by ID; sets are immutable once written.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is one concrete occasion of performing a template. A nil
// CompletedAt means the session is still in progress.
type Session struct {
	ID          uuid.UUID   `json:"id" yaml:"id"`
	TemplateID  uuid.UUID   `json:"template_id" yaml:"template_id"`
	StartedAt   time.Time   `json:"started_at" yaml:"started_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Sets        []LoggedSet `json:"sets,omitempty" yaml:"sets,omitempty"` // Populated when fetching full session
}

// NewSession creates an in-progress Session for the given template.
func NewSession(templateID uuid.UUID) *Session {
	return &Session{
		ID:         uuid.New(),
		TemplateID: templateID,
		StartedAt:  time.Now(),
	}
}

// InProgress reports whether the session has not been completed yet.
func (s *Session) InProgress() bool {
	return s.CompletedAt == nil
}

// Complete marks the session finished. Completing twice is an error;
// CompletedAt never changes once set.
func (s *Session) Complete() error {
	if s.CompletedAt != nil {
		return fmt.Errorf("%w: session %s is already completed", ErrInvalidState, s.ID)
	}
	now := time.Now()
	s.CompletedAt = &now
	return nil
}

// SortKey is the timestamp sessions are listed by: completion time,
// falling back to start time for in-progress sessions.
func (s *Session) SortKey() time.Time {
	if s.CompletedAt != nil {
		return *s.CompletedAt
	}
	return s.StartedAt
}

// LoggedSet is one immutable record of weight x reps performed for a
// given exercise during a given session.
type LoggedSet struct {
	ID         uuid.UUID `json:"id" yaml:"id"`
	ExerciseID uuid.UUID `json:"exercise_id" yaml:"exercise_id"`
	SessionID  uuid.UUID `json:"session_id" yaml:"session_id"`
	Weight     float64   `json:"weight" yaml:"weight"`
	Reps       int       `json:"reps" yaml:"reps"`
	LoggedAt   time.Time `json:"logged_at" yaml:"logged_at"`
}

// NewLoggedSet creates a LoggedSet with generated UUID and current timestamp.
func NewLoggedSet(exerciseID, sessionID uuid.UUID, weight float64, reps int) *LoggedSet {
	return &LoggedSet{
		ID:         uuid.New(),
		ExerciseID: exerciseID,
		SessionID:  sessionID,
		Weight:     weight,
		Reps:       reps,
		LoggedAt:   time.Now(),
	}
}

// Validate checks the set fields before any write.
func (ls *LoggedSet) Validate() error {
	if ls.Reps < 1 {
		return fmt.Errorf("%w: reps must be at least 1, got %d", ErrInvalidInput, ls.Reps)
	}
	if ls.Weight < 0 {
		return fmt.Errorf("%w: weight must not be negative, got %g", ErrInvalidInput, ls.Weight)
	}
	return nil
}
