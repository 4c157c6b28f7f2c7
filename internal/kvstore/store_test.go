// ABOUTME: Tests for the Badger Repository implementation.
// ABOUTME: Mirrors the SQLite suite: CRUD, ordering, cascades, lifecycle.
package kvstore

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gymlog/internal/models"
	"github.com/harperreed/gymlog/internal/storage"
)

func TestCreateAndGetTemplate(t *testing.T) {
	store := setupTestStore(t)

	tmpl, err := store.CreateTemplate("Push Day")
	if err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}

	got, err := store.GetTemplate(tmpl.ID.String())
	if err != nil {
		t.Fatalf("GetTemplate failed: %v", err)
	}
	if got.ID != tmpl.ID || got.Name != "Push Day" {
		t.Errorf("Template mismatch: %+v", got)
	}

	got, err = store.GetTemplate(tmpl.ID.String()[:8])
	if err != nil {
		t.Fatalf("GetTemplate by prefix failed: %v", err)
	}
	if got.ID != tmpl.ID {
		t.Errorf("Prefix lookup ID mismatch: got %v", got.ID)
	}

	if _, err := store.GetTemplate(uuid.New().String()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := store.CreateTemplate("  "); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestExercisePositions(t *testing.T) {
	store := setupTestStore(t)

	tmpl, _ := store.CreateTemplate("Push Day")
	names := []string{"Bench Press", "Overhead Press", "Dips"}
	for i, name := range names {
		e, err := store.AddExercise(tmpl.ID, name, 3)
		if err != nil {
			t.Fatalf("AddExercise %q failed: %v", name, err)
		}
		if e.Position != i+1 {
			t.Errorf("%q: expected position %d, got %d", name, i+1, e.Position)
		}
	}

	exercises, err := store.ListExercises(tmpl.ID)
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(exercises) != 3 {
		t.Fatalf("Expected 3 exercises, got %d", len(exercises))
	}

	// Freed positions are never reused
	if err := store.DeleteExercise(exercises[1].ID.String()); err != nil {
		t.Fatalf("DeleteExercise failed: %v", err)
	}
	e, err := store.AddExercise(tmpl.ID, "Incline Press", 3)
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	if e.Position != 4 {
		t.Errorf("Expected position 4 after gap, got %d", e.Position)
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := setupTestStore(t)

	tmpl, _ := store.CreateTemplate("Push Day")
	sess, err := store.StartSession(tmpl.ID)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	completed, err := store.CompleteSession(sess.ID.String()[:8])
	if err != nil {
		t.Fatalf("CompleteSession failed: %v", err)
	}
	if completed.CompletedAt == nil {
		t.Fatal("CompletedAt should be set")
	}

	if _, err := store.CompleteSession(sess.ID.String()); !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState on double complete, got %v", err)
	}
	got, err := store.GetSession(sess.ID.String())
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(*completed.CompletedAt) {
		t.Error("CompletedAt changed after rejected complete")
	}

	if _, err := store.StartSession(uuid.New()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing template, got %v", err)
	}
}

func TestLogSetAndGrouping(t *testing.T) {
	store := setupTestStore(t)

	tmpl, _ := store.CreateTemplate("Push Day")
	bench, _ := store.AddExercise(tmpl.ID, "Bench Press", 3)
	ohp, _ := store.AddExercise(tmpl.ID, "Overhead Press", 3)
	sess, _ := store.StartSession(tmpl.ID)

	// Interleaved logging; groups follow template order
	if _, err := store.LogSet(ohp.ID, sess.ID, 50, 10); err != nil {
		t.Fatalf("LogSet failed: %v", err)
	}
	if _, err := store.LogSet(bench.ID, sess.ID, 80, 8); err != nil {
		t.Fatalf("LogSet failed: %v", err)
	}
	if _, err := store.LogSet(bench.ID, sess.ID, 80, 7); err != nil {
		t.Fatalf("LogSet failed: %v", err)
	}

	groups, err := store.ListSessionSets(sess.ID)
	if err != nil {
		t.Fatalf("ListSessionSets failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Exercise.ID != bench.ID || len(groups[0].Sets) != 2 {
		t.Errorf("First group should be bench with 2 sets, got %+v", groups[0])
	}

	// Validation and state rules
	if _, err := store.LogSet(bench.ID, sess.ID, -5, 8); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for negative weight, got %v", err)
	}
	if _, err := store.LogSet(bench.ID, sess.ID, 80, 0); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for zero reps, got %v", err)
	}
	if _, err := store.LogSet(uuid.New(), sess.ID, 80, 8); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing exercise, got %v", err)
	}

	if _, err := store.CompleteSession(sess.ID.String()); err != nil {
		t.Fatalf("CompleteSession failed: %v", err)
	}
	if _, err := store.LogSet(bench.ID, sess.ID, 80, 8); !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for completed session, got %v", err)
	}
}

func TestLastSet(t *testing.T) {
	store := setupTestStore(t)

	tmpl, _ := store.CreateTemplate("Push Day")
	e, _ := store.AddExercise(tmpl.ID, "Bench Press", 3)

	ls, err := store.LastSet(e.ID)
	if err != nil {
		t.Fatalf("LastSet failed: %v", err)
	}
	if ls != nil {
		t.Errorf("Expected nil for no history, got %+v", ls)
	}
	if _, err := store.LastSet(uuid.New()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	s1, _ := store.StartSession(tmpl.ID)
	s2, _ := store.StartSession(tmpl.ID)
	base := time.Now().Add(-3 * time.Hour).Truncate(time.Second)
	err = store.ImportData(&storage.ExportData{
		Version: "1.0",
		Sessions: []*models.Session{
			{ID: uuid.New(), TemplateID: tmpl.ID, StartedAt: base, Sets: []models.LoggedSet{
				{ID: uuid.New(), ExerciseID: e.ID, SessionID: s1.ID, Weight: 75, Reps: 8, LoggedAt: base},
				{ID: uuid.New(), ExerciseID: e.ID, SessionID: s1.ID, Weight: 77.5, Reps: 8, LoggedAt: base.Add(time.Hour)},
				{ID: uuid.New(), ExerciseID: e.ID, SessionID: s2.ID, Weight: 80, Reps: 6, LoggedAt: base.Add(2 * time.Hour)},
			}},
		},
	})
	if err != nil {
		t.Fatalf("ImportData failed: %v", err)
	}

	ls, err = store.LastSet(e.ID)
	if err != nil {
		t.Fatalf("LastSet failed: %v", err)
	}
	if ls == nil || ls.Weight != 80 {
		t.Errorf("Expected most recent set 80, got %+v", ls)
	}

	ls, err = store.LastSetInSession(e.ID, s1.ID)
	if err != nil {
		t.Fatalf("LastSetInSession failed: %v", err)
	}
	if ls == nil || ls.Weight != 77.5 {
		t.Errorf("Expected 77.5 in session 1, got %+v", ls)
	}
}

func TestCascades(t *testing.T) {
	store := setupTestStore(t)

	tmpl, _ := store.CreateTemplate("Push Day")
	e, _ := store.AddExercise(tmpl.ID, "Bench Press", 3)
	sess, _ := store.StartSession(tmpl.ID)
	ls, _ := store.LogSet(e.ID, sess.ID, 80, 8)

	other, _ := store.CreateTemplate("Leg Day")
	otherEx, _ := store.AddExercise(other.ID, "Squat", 5)

	if err := store.DeleteTemplate(tmpl.ID.String()); err != nil {
		t.Fatalf("DeleteTemplate failed: %v", err)
	}

	if _, err := store.GetExercise(e.ID.String()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Exercise survived cascade: %v", err)
	}
	if _, err := store.GetSession(sess.ID.String()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Session survived cascade: %v", err)
	}
	if err := store.DeleteSet(ls.ID.String()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Set survived cascade: %v", err)
	}
	if _, err := store.GetExercise(otherEx.ID.String()); err != nil {
		t.Errorf("Unrelated exercise was deleted: %v", err)
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	store := setupTestStore(t)

	tmpl, _ := store.CreateTemplate("Push Day")
	e, _ := store.AddExercise(tmpl.ID, "Bench Press", 3)
	sess, _ := store.StartSession(tmpl.ID)
	ls, _ := store.LogSet(e.ID, sess.ID, 80, 8)

	if err := store.DeleteSession(sess.ID.String()); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if err := store.DeleteSet(ls.ID.String()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Set survived session cascade: %v", err)
	}
	last, err := store.LastSet(e.ID)
	if err != nil {
		t.Fatalf("LastSet failed: %v", err)
	}
	if last != nil {
		t.Errorf("Expected no history after session delete, got %+v", last)
	}
}

func TestListSessionsOrder(t *testing.T) {
	store := setupTestStore(t)

	tmpl, _ := store.CreateTemplate("Push Day")
	base := time.Now().Add(-24 * time.Hour).Truncate(time.Second)
	done1 := base.Add(1 * time.Hour)
	done2 := base.Add(5 * time.Hour)

	err := store.ImportData(&storage.ExportData{
		Version: "1.0",
		Sessions: []*models.Session{
			{ID: uuid.New(), TemplateID: tmpl.ID, StartedAt: base, CompletedAt: &done1},
			{ID: uuid.New(), TemplateID: tmpl.ID, StartedAt: base.Add(4 * time.Hour), CompletedAt: &done2},
			{ID: uuid.New(), TemplateID: tmpl.ID, StartedAt: base.Add(3 * time.Hour)},
		},
	})
	if err != nil {
		t.Fatalf("ImportData failed: %v", err)
	}

	sessions, err := store.ListSessions(0)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}
	if !sessions[0].SortKey().Equal(done2) {
		t.Errorf("Expected done2 first, got %v", sessions[0].SortKey())
	}
	if sessions[1].CompletedAt != nil {
		t.Error("Expected in-progress session second")
	}

	limited, err := store.ListSessions(2)
	if err != nil {
		t.Fatalf("ListSessions with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 sessions with limit, got %d", len(limited))
	}
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store
}
