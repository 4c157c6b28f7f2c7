// ABOUTME: Session lifecycle, logged sets, and performance queries for Badger storage.
// ABOUTME: List ordering and latest-set selection happen in memory after a prefix scan.
package kvstore

import (
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/harperreed/gymlog/internal/models"
	"github.com/harperreed/gymlog/internal/storage"
)

// StartSession creates an in-progress session for a template.
func (s *Store) StartSession(templateID uuid.UUID) (*models.Session, error) {
	sess := models.NewSession(templateID)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := get[models.Template](txn, TemplatePrefix+templateID.String()); err != nil {
			return fmt.Errorf("template %s: %w", templateID, err)
		}
		return put(txn, SessionPrefix+sess.ID.String(), sess)
	})
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return sess, nil
}

// GetSession retrieves a session by ID or ID prefix (without sets).
func (s *Store) GetSession(idOrPrefix string) (*models.Session, error) {
	var sess *models.Session
	err := s.db.View(func(txn *badger.Txn) error {
		key, err := resolveKey(txn, SessionPrefix, idOrPrefix)
		if err != nil {
			return err
		}
		sess, err = get[models.Session](txn, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// ListSessions retrieves sessions, most recently finished first.
// In-progress sessions sort by their start time.
func (s *Store) ListSessions(limit int) ([]*models.Session, error) {
	var sessions []*models.Session
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		sessions, err = listPrefix[models.Session](txn, SessionPrefix)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		ki, kj := sessions[i].SortKey(), sessions[j].SortKey()
		if !ki.Equal(kj) {
			return ki.After(kj)
		}
		return sessions[i].ID.String() < sessions[j].ID.String()
	})

	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

// CompleteSession marks a session finished. Completing an already
// completed session is rejected; CompletedAt never changes once set.
func (s *Store) CompleteSession(idOrPrefix string) (*models.Session, error) {
	var sess *models.Session
	err := s.db.Update(func(txn *badger.Txn) error {
		key, err := resolveKey(txn, SessionPrefix, idOrPrefix)
		if err != nil {
			return err
		}
		sess, err = get[models.Session](txn, key)
		if err != nil {
			return err
		}
		if err := sess.Complete(); err != nil {
			return err
		}
		return put(txn, key, sess)
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// DeleteSession removes a session and its logged sets (cascade
// delete). Valid for both in-progress and completed sessions.
func (s *Store) DeleteSession(idOrPrefix string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key, err := resolveKey(txn, SessionPrefix, idOrPrefix)
		if err != nil {
			return err
		}
		sess, err := get[models.Session](txn, key)
		if err != nil {
			return err
		}

		sets, err := listPrefix[models.LoggedSet](txn, SetPrefix)
		if err != nil {
			return err
		}
		for _, ls := range sets {
			if ls.SessionID == sess.ID {
				if err := txn.Delete([]byte(SetPrefix + ls.ID.String())); err != nil {
					return err
				}
			}
		}

		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// LogSet appends one immutable set record to a session. The session
// must still be in progress and both references must be live.
func (s *Store) LogSet(exerciseID, sessionID uuid.UUID, weight float64, reps int) (*models.LoggedSet, error) {
	ls := models.NewLoggedSet(exerciseID, sessionID, weight, reps)
	if err := ls.Validate(); err != nil {
		return nil, err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := get[models.Exercise](txn, ExercisePrefix+exerciseID.String()); err != nil {
			return fmt.Errorf("exercise %s: %w", exerciseID, err)
		}
		sess, err := get[models.Session](txn, SessionPrefix+sessionID.String())
		if err != nil {
			return fmt.Errorf("session %s: %w", sessionID, err)
		}
		if !sess.InProgress() {
			return fmt.Errorf("%w: session %s is already completed", models.ErrInvalidState, sessionID)
		}
		return put(txn, SetPrefix+ls.ID.String(), ls)
	})
	if err != nil {
		return nil, err
	}
	return ls, nil
}

// DeleteSet removes a logged set. This is the correction path: sets
// are never edited in place.
func (s *Store) DeleteSet(idOrPrefix string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key, err := resolveKey(txn, SetPrefix, idOrPrefix)
		if err != nil {
			return err
		}
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	return nil
}

// ListSessionSets retrieves a session's sets grouped by exercise.
// Groups follow exercise position order; sets within a group follow
// logging order.
func (s *Store) ListSessionSets(sessionID uuid.UUID) ([]storage.SetGroup, error) {
	var sets []*models.LoggedSet
	exercises := make(map[uuid.UUID]*models.Exercise)

	err := s.db.View(func(txn *badger.Txn) error {
		if _, err := get[models.Session](txn, SessionPrefix+sessionID.String()); err != nil {
			return fmt.Errorf("session %s: %w", sessionID, err)
		}

		all, err := listPrefix[models.LoggedSet](txn, SetPrefix)
		if err != nil {
			return err
		}
		for _, ls := range all {
			if ls.SessionID != sessionID {
				continue
			}
			sets = append(sets, ls)
			if _, ok := exercises[ls.ExerciseID]; !ok {
				e, err := get[models.Exercise](txn, ExercisePrefix+ls.ExerciseID.String())
				if err != nil {
					return fmt.Errorf("exercise %s: %w", ls.ExerciseID, err)
				}
				exercises[ls.ExerciseID] = e
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list session sets: %w", err)
	}

	sort.Slice(sets, func(i, j int) bool {
		pi, pj := exercises[sets[i].ExerciseID].Position, exercises[sets[j].ExerciseID].Position
		if pi != pj {
			return pi < pj
		}
		if !sets[i].LoggedAt.Equal(sets[j].LoggedAt) {
			return sets[i].LoggedAt.Before(sets[j].LoggedAt)
		}
		return sets[i].ID.String() < sets[j].ID.String()
	})

	var groups []storage.SetGroup
	for _, ls := range sets {
		if len(groups) == 0 || groups[len(groups)-1].Exercise.ID != ls.ExerciseID {
			groups = append(groups, storage.SetGroup{Exercise: *exercises[ls.ExerciseID]})
		}
		groups[len(groups)-1].Sets = append(groups[len(groups)-1].Sets, *ls)
	}
	return groups, nil
}

// LastSet returns the most recently logged set for an exercise, the
// progressive-overload hint. Ties on LoggedAt break on the highest ID
// so the answer is deterministic. Returns (nil, nil) when the exercise
// exists but has no history.
func (s *Store) LastSet(exerciseID uuid.UUID) (*models.LoggedSet, error) {
	return s.lastSet(exerciseID, nil)
}

// LastSetInSession is LastSet scoped to one session.
func (s *Store) LastSetInSession(exerciseID, sessionID uuid.UUID) (*models.LoggedSet, error) {
	return s.lastSet(exerciseID, &sessionID)
}

func (s *Store) lastSet(exerciseID uuid.UUID, sessionID *uuid.UUID) (*models.LoggedSet, error) {
	var latest *models.LoggedSet
	err := s.db.View(func(txn *badger.Txn) error {
		if _, err := get[models.Exercise](txn, ExercisePrefix+exerciseID.String()); err != nil {
			return fmt.Errorf("exercise %s: %w", exerciseID, err)
		}
		if sessionID != nil {
			if _, err := get[models.Session](txn, SessionPrefix+sessionID.String()); err != nil {
				return fmt.Errorf("session %s: %w", sessionID, err)
			}
		}

		sets, err := listPrefix[models.LoggedSet](txn, SetPrefix)
		if err != nil {
			return err
		}
		for _, ls := range sets {
			if ls.ExerciseID != exerciseID {
				continue
			}
			if sessionID != nil && ls.SessionID != *sessionID {
				continue
			}
			if latest == nil ||
				ls.LoggedAt.After(latest.LoggedAt) ||
				(ls.LoggedAt.Equal(latest.LoggedAt) && ls.ID.String() > latest.ID.String()) {
				latest = ls
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("last set: %w", err)
	}
	return latest, nil
}

// GetAllData retrieves every record for export, templates with their
// exercises and sessions with their sets.
func (s *Store) GetAllData() (*storage.ExportData, error) {
	templates, err := s.ListTemplates()
	if err != nil {
		return nil, err
	}
	for _, t := range templates {
		exercises, err := s.ListExercises(t.ID)
		if err != nil {
			return nil, err
		}
		for _, e := range exercises {
			t.Exercises = append(t.Exercises, *e)
		}
	}

	sessions, err := s.ListSessions(0)
	if err != nil {
		return nil, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		sets, err := listPrefix[models.LoggedSet](txn, SetPrefix)
		if err != nil {
			return err
		}
		bySession := make(map[uuid.UUID][]models.LoggedSet)
		for _, ls := range sets {
			bySession[ls.SessionID] = append(bySession[ls.SessionID], *ls)
		}
		for _, sess := range sessions {
			group := bySession[sess.ID]
			sort.Slice(group, func(i, j int) bool {
				if !group[i].LoggedAt.Equal(group[j].LoggedAt) {
					return group[i].LoggedAt.Before(group[j].LoggedAt)
				}
				return group[i].ID.String() < group[j].ID.String()
			})
			sess.Sets = group
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get all data: %w", err)
	}

	return &storage.ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC(),
		Tool:       "gymlog",
		Templates:  templates,
		Sessions:   sessions,
	}, nil
}

// ImportData loads previously exported data, preserving IDs,
// positions, and timestamps. Records are written as exported; the
// export is assumed to come from a consistent store.
func (s *Store) ImportData(data *storage.ExportData) error {
	if data == nil {
		return fmt.Errorf("%w: no data to import", models.ErrInvalidInput)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		for _, t := range data.Templates {
			stored := *t
			stored.Exercises = nil
			if err := put(txn, TemplatePrefix+t.ID.String(), &stored); err != nil {
				return err
			}
			for i := range t.Exercises {
				e := t.Exercises[i]
				if err := put(txn, ExercisePrefix+e.ID.String(), &e); err != nil {
					return err
				}
			}
		}
		for _, sess := range data.Sessions {
			stored := *sess
			stored.Sets = nil
			if err := put(txn, SessionPrefix+sess.ID.String(), &stored); err != nil {
				return err
			}
			for i := range sess.Sets {
				ls := sess.Sets[i]
				if err := put(txn, SetPrefix+ls.ID.String(), &ls); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}
	return nil
}
