// ABOUTME: Repository interface for workout data storage.
// ABOUTME: Defines the contract both the SQLite and Badger backends implement.
package storage

import (
	"github.com/google/uuid"
	"github.com/harperreed/gymlog/internal/models"
)

// SetGroup is one exercise's logged sets within a session. Groups are
// ordered by exercise position, sets by the order they were logged.
type SetGroup struct {
	Exercise models.Exercise
	Sets     []models.LoggedSet
}

// Repository defines the storage interface for workout data.
// This interface allows swapping implementations (e.g., for testing).
//
// All reads return value copies; mutating a returned entity never
// changes stored state. Mutations validate before writing and perform
// zero writes when they reject. Entity lookups accept a full UUID or a
// unique ID prefix.
type Repository interface {
	// Template operations
	CreateTemplate(name string) (*models.Template, error)
	GetTemplate(idOrPrefix string) (*models.Template, error)
	GetTemplateWithExercises(idOrPrefix string) (*models.Template, error)
	ListTemplates() ([]*models.Template, error)
	RenameTemplate(idOrPrefix, name string) (*models.Template, error)
	DeleteTemplate(idOrPrefix string) error

	// Exercise operations
	AddExercise(templateID uuid.UUID, name string, targetSets int) (*models.Exercise, error)
	GetExercise(idOrPrefix string) (*models.Exercise, error)
	UpdateExercise(idOrPrefix string, name *string, targetSets *int) (*models.Exercise, error)
	ListExercises(templateID uuid.UUID) ([]*models.Exercise, error)
	DeleteExercise(idOrPrefix string) error

	// Session lifecycle
	StartSession(templateID uuid.UUID) (*models.Session, error)
	GetSession(idOrPrefix string) (*models.Session, error)
	ListSessions(limit int) ([]*models.Session, error)
	CompleteSession(idOrPrefix string) (*models.Session, error)
	DeleteSession(idOrPrefix string) error

	// Logged sets
	LogSet(exerciseID, sessionID uuid.UUID, weight float64, reps int) (*models.LoggedSet, error)
	DeleteSet(idOrPrefix string) error
	ListSessionSets(sessionID uuid.UUID) ([]SetGroup, error)

	// Performance queries. Both return (nil, nil) when the exercise
	// exists but has no history.
	LastSet(exerciseID uuid.UUID) (*models.LoggedSet, error)
	LastSetInSession(exerciseID, sessionID uuid.UUID) (*models.LoggedSet, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
