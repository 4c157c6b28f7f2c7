// ABOUTME: Template and Exercise operations for Badger storage.
// ABOUTME: Cascade deletes and position assignment are done manually in one transaction.
package kvstore

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/harperreed/gymlog/internal/models"
)

// CreateTemplate stores a new workout template.
func (s *Store) CreateTemplate(name string) (*models.Template, error) {
	t := models.NewTemplate(name)
	if err := t.Validate(); err != nil {
		return nil, err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return put(txn, TemplatePrefix+t.ID.String(), t)
	})
	if err != nil {
		return nil, persistErr("create template", err)
	}
	return t, nil
}

// GetTemplate retrieves a template by ID or ID prefix (without exercises).
func (s *Store) GetTemplate(idOrPrefix string) (*models.Template, error) {
	var t *models.Template
	err := s.db.View(func(txn *badger.Txn) error {
		key, err := resolveKey(txn, TemplatePrefix, idOrPrefix)
		if err != nil {
			return err
		}
		t, err = get[models.Template](txn, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTemplateWithExercises retrieves a template with its exercises in
// position order.
func (s *Store) GetTemplateWithExercises(idOrPrefix string) (*models.Template, error) {
	t, err := s.GetTemplate(idOrPrefix)
	if err != nil {
		return nil, err
	}

	exercises, err := s.ListExercises(t.ID)
	if err != nil {
		return nil, fmt.Errorf("list template exercises: %w", err)
	}

	for _, e := range exercises {
		t.Exercises = append(t.Exercises, *e)
	}
	return t, nil
}

// ListTemplates retrieves all templates, most recently created first.
func (s *Store) ListTemplates() ([]*models.Template, error) {
	var templates []*models.Template
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		templates, err = listPrefix[models.Template](txn, TemplatePrefix)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	sort.Slice(templates, func(i, j int) bool {
		if !templates[i].CreatedAt.Equal(templates[j].CreatedAt) {
			return templates[i].CreatedAt.After(templates[j].CreatedAt)
		}
		return templates[i].ID.String() < templates[j].ID.String()
	})
	return templates, nil
}

// RenameTemplate changes a template's name. CreatedAt and ID are immutable.
func (s *Store) RenameTemplate(idOrPrefix, name string) (*models.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: template name must not be blank", models.ErrInvalidInput)
	}

	var t *models.Template
	err := s.db.Update(func(txn *badger.Txn) error {
		key, err := resolveKey(txn, TemplatePrefix, idOrPrefix)
		if err != nil {
			return err
		}
		t, err = get[models.Template](txn, key)
		if err != nil {
			return err
		}
		t.Name = name
		return put(txn, key, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTemplate removes a template, its exercises, its sessions, and
// every logged set under any of them (cascade delete).
func (s *Store) DeleteTemplate(idOrPrefix string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key, err := resolveKey(txn, TemplatePrefix, idOrPrefix)
		if err != nil {
			return err
		}
		t, err := get[models.Template](txn, key)
		if err != nil {
			return err
		}

		// Exercises of this template, plus their sets
		exercises, err := listPrefix[models.Exercise](txn, ExercisePrefix)
		if err != nil {
			return err
		}
		doomed := make(map[uuid.UUID]bool)
		for _, e := range exercises {
			if e.TemplateID == t.ID {
				doomed[e.ID] = true
				if err := txn.Delete([]byte(ExercisePrefix + e.ID.String())); err != nil {
					return err
				}
			}
		}

		// Sessions of this template, plus their sets
		sessions, err := listPrefix[models.Session](txn, SessionPrefix)
		if err != nil {
			return err
		}
		doomedSessions := make(map[uuid.UUID]bool)
		for _, sess := range sessions {
			if sess.TemplateID == t.ID {
				doomedSessions[sess.ID] = true
				if err := txn.Delete([]byte(SessionPrefix + sess.ID.String())); err != nil {
					return err
				}
			}
		}

		sets, err := listPrefix[models.LoggedSet](txn, SetPrefix)
		if err != nil {
			return err
		}
		for _, ls := range sets {
			if doomed[ls.ExerciseID] || doomedSessions[ls.SessionID] {
				if err := txn.Delete([]byte(SetPrefix + ls.ID.String())); err != nil {
					return err
				}
			}
		}

		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// AddExercise appends an exercise to a template at position max+1.
// Positions left by deleted exercises are never reused.
func (s *Store) AddExercise(templateID uuid.UUID, name string, targetSets int) (*models.Exercise, error) {
	e := models.NewExercise(templateID, name, targetSets)
	if err := e.Validate(); err != nil {
		return nil, err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := get[models.Template](txn, TemplatePrefix+templateID.String()); err != nil {
			return fmt.Errorf("template %s: %w", templateID, err)
		}

		exercises, err := listPrefix[models.Exercise](txn, ExercisePrefix)
		if err != nil {
			return err
		}
		maxPos := 0
		for _, existing := range exercises {
			if existing.TemplateID == templateID && existing.Position > maxPos {
				maxPos = existing.Position
			}
		}
		e.Position = maxPos + 1

		return put(txn, ExercisePrefix+e.ID.String(), e)
	})
	if err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}
	return e, nil
}

// GetExercise retrieves an exercise by ID or ID prefix.
func (s *Store) GetExercise(idOrPrefix string) (*models.Exercise, error) {
	var e *models.Exercise
	err := s.db.View(func(txn *badger.Txn) error {
		key, err := resolveKey(txn, ExercisePrefix, idOrPrefix)
		if err != nil {
			return err
		}
		e, err = get[models.Exercise](txn, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateExercise applies a partial update. A nil field is left
// unchanged; position and template are immutable.
func (s *Store) UpdateExercise(idOrPrefix string, name *string, targetSets *int) (*models.Exercise, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, fmt.Errorf("%w: exercise name must not be blank", models.ErrInvalidInput)
	}
	if targetSets != nil && *targetSets < 1 {
		return nil, fmt.Errorf("%w: target sets must be at least 1, got %d", models.ErrInvalidInput, *targetSets)
	}

	var e *models.Exercise
	err := s.db.Update(func(txn *badger.Txn) error {
		key, err := resolveKey(txn, ExercisePrefix, idOrPrefix)
		if err != nil {
			return err
		}
		e, err = get[models.Exercise](txn, key)
		if err != nil {
			return err
		}
		if name != nil {
			e.Name = strings.TrimSpace(*name)
		}
		if targetSets != nil {
			e.TargetSets = *targetSets
		}
		return put(txn, key, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListExercises retrieves a template's exercises in position order.
func (s *Store) ListExercises(templateID uuid.UUID) ([]*models.Exercise, error) {
	var result []*models.Exercise
	err := s.db.View(func(txn *badger.Txn) error {
		if _, err := get[models.Template](txn, TemplatePrefix+templateID.String()); err != nil {
			return fmt.Errorf("template %s: %w", templateID, err)
		}

		exercises, err := listPrefix[models.Exercise](txn, ExercisePrefix)
		if err != nil {
			return err
		}
		for _, e := range exercises {
			if e.TemplateID == templateID {
				result = append(result, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})
	return result, nil
}

// DeleteExercise removes an exercise and its logged sets (cascade
// delete). The parent template and sibling exercises keep their
// positions.
func (s *Store) DeleteExercise(idOrPrefix string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key, err := resolveKey(txn, ExercisePrefix, idOrPrefix)
		if err != nil {
			return err
		}
		e, err := get[models.Exercise](txn, key)
		if err != nil {
			return err
		}

		sets, err := listPrefix[models.LoggedSet](txn, SetPrefix)
		if err != nil {
			return err
		}
		for _, ls := range sets {
			if ls.ExerciseID == e.ID {
				if err := txn.Delete([]byte(SetPrefix + ls.ID.String())); err != nil {
					return err
				}
			}
		}

		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}
