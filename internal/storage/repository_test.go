// ABOUTME: Tests for the SQLite Repository implementation.
// ABOUTME: Verifies CRUD, ordering, cascades, and the session lifecycle.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gymlog/internal/models"
)

func TestCreateAndGetTemplate(t *testing.T) {
	db := setupTestDB(t)

	tmpl, err := db.CreateTemplate("Push Day")
	if err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}

	// Retrieve by full ID
	got, err := db.GetTemplate(tmpl.ID.String())
	if err != nil {
		t.Fatalf("GetTemplate failed: %v", err)
	}
	if got.ID != tmpl.ID {
		t.Errorf("ID mismatch: got %v, want %v", got.ID, tmpl.ID)
	}
	if got.Name != "Push Day" {
		t.Errorf("Name mismatch: got %q", got.Name)
	}

	// Retrieve by 8-char prefix
	got, err = db.GetTemplate(tmpl.ID.String()[:8])
	if err != nil {
		t.Fatalf("GetTemplate by prefix failed: %v", err)
	}
	if got.ID != tmpl.ID {
		t.Errorf("Prefix lookup ID mismatch: got %v, want %v", got.ID, tmpl.ID)
	}
}

func TestCreateTemplateTrimsAndValidates(t *testing.T) {
	db := setupTestDB(t)

	tmpl, err := db.CreateTemplate("  Leg Day  ")
	if err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}
	if tmpl.Name != "Leg Day" {
		t.Errorf("Expected trimmed name, got %q", tmpl.Name)
	}

	if _, err := db.CreateTemplate("   "); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for blank name, got %v", err)
	}

	// Rejected create persists nothing
	templates, err := db.ListTemplates()
	if err != nil {
		t.Fatalf("ListTemplates failed: %v", err)
	}
	if len(templates) != 1 {
		t.Errorf("Expected 1 template after rejected create, got %d", len(templates))
	}
}

func TestGetTemplateNotFound(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.GetTemplate(uuid.New().String()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAmbiguousPrefix(t *testing.T) {
	db := setupTestDB(t)

	// Two templates sharing an ID prefix
	id1 := uuid.MustParse("aaaaaaaa-1111-4111-8111-111111111111")
	id2 := uuid.MustParse("aaaaaaaa-2222-4222-8222-222222222222")
	err := db.ImportData(&ExportData{
		Version: "1.0",
		Templates: []*models.Template{
			{ID: id1, Name: "One", CreatedAt: time.Now()},
			{ID: id2, Name: "Two", CreatedAt: time.Now()},
		},
	})
	if err != nil {
		t.Fatalf("ImportData failed: %v", err)
	}

	if _, err := db.GetTemplate("aaaaaaaa"); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for ambiguous prefix, got %v", err)
	}
	if _, err := db.GetTemplate("aaaaaaaa-1"); err != nil {
		t.Errorf("Unique longer prefix should resolve: %v", err)
	}
}

func TestRenameTemplate(t *testing.T) {
	db := setupTestDB(t)

	tmpl, err := db.CreateTemplate("Push Day")
	if err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}

	renamed, err := db.RenameTemplate(tmpl.ID.String()[:8], "Push Day A")
	if err != nil {
		t.Fatalf("RenameTemplate failed: %v", err)
	}
	if renamed.Name != "Push Day A" {
		t.Errorf("Name mismatch: got %q", renamed.Name)
	}

	got, err := db.GetTemplate(tmpl.ID.String())
	if err != nil {
		t.Fatalf("GetTemplate failed: %v", err)
	}
	if got.Name != "Push Day A" {
		t.Errorf("Rename did not persist: got %q", got.Name)
	}

	if _, err := db.RenameTemplate(tmpl.ID.String(), ""); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for blank rename, got %v", err)
	}
	if _, err := db.RenameTemplate(uuid.New().String(), "X"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestExercisePositions(t *testing.T) {
	db := setupTestDB(t)

	tmpl, err := db.CreateTemplate("Push Day")
	if err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}

	names := []string{"Bench Press", "Overhead Press", "Dips"}
	for i, name := range names {
		e, err := db.AddExercise(tmpl.ID, name, 3)
		if err != nil {
			t.Fatalf("AddExercise %q failed: %v", name, err)
		}
		if e.Position != i+1 {
			t.Errorf("%q: expected position %d, got %d", name, i+1, e.Position)
		}
	}

	exercises, err := db.ListExercises(tmpl.ID)
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(exercises) != 3 {
		t.Fatalf("Expected 3 exercises, got %d", len(exercises))
	}
	for i, e := range exercises {
		if e.Name != names[i] {
			t.Errorf("Position %d: expected %q, got %q", i+1, names[i], e.Name)
		}
	}

	// Deleting the middle exercise leaves a gap; the next append takes
	// max+1, never the freed position.
	if err := db.DeleteExercise(exercises[1].ID.String()); err != nil {
		t.Fatalf("DeleteExercise failed: %v", err)
	}
	e, err := db.AddExercise(tmpl.ID, "Incline Press", 3)
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	if e.Position != 4 {
		t.Errorf("Expected position 4 after gap, got %d", e.Position)
	}

	exercises, err = db.ListExercises(tmpl.ID)
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	wantOrder := []string{"Bench Press", "Dips", "Incline Press"}
	for i, e := range exercises {
		if e.Name != wantOrder[i] {
			t.Errorf("Slot %d: expected %q, got %q", i, wantOrder[i], e.Name)
		}
	}
}

func TestAddExerciseValidation(t *testing.T) {
	db := setupTestDB(t)

	tmpl, err := db.CreateTemplate("Push Day")
	if err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}

	if _, err := db.AddExercise(tmpl.ID, "", 3); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := db.AddExercise(tmpl.ID, "Bench Press", 0); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for zero sets, got %v", err)
	}
	if _, err := db.AddExercise(uuid.New(), "Bench Press", 3); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing template, got %v", err)
	}

	exercises, err := db.ListExercises(tmpl.ID)
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(exercises) != 0 {
		t.Errorf("Rejected adds persisted %d exercises", len(exercises))
	}
}

func TestUpdateExercise(t *testing.T) {
	db := setupTestDB(t)

	tmpl, _ := db.CreateTemplate("Push Day")
	e, err := db.AddExercise(tmpl.ID, "Bench Press", 3)
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}

	name := "Incline Bench"
	updated, err := db.UpdateExercise(e.ID.String()[:8], &name, nil)
	if err != nil {
		t.Fatalf("UpdateExercise failed: %v", err)
	}
	if updated.Name != "Incline Bench" {
		t.Errorf("Name mismatch: got %q", updated.Name)
	}
	if updated.TargetSets != 3 {
		t.Errorf("TargetSets changed unexpectedly: got %d", updated.TargetSets)
	}
	if updated.Position != e.Position {
		t.Errorf("Position changed on update: got %d", updated.Position)
	}

	sets := 5
	updated, err = db.UpdateExercise(e.ID.String(), nil, &sets)
	if err != nil {
		t.Fatalf("UpdateExercise failed: %v", err)
	}
	if updated.TargetSets != 5 {
		t.Errorf("Expected 5 target sets, got %d", updated.TargetSets)
	}

	bad := 0
	if _, err := db.UpdateExercise(e.ID.String(), nil, &bad); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for zero sets, got %v", err)
	}
	blank := " "
	if _, err := db.UpdateExercise(e.ID.String(), &blank, nil); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestListExercisesMissingTemplate(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.ListExercises(uuid.New()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := setupTestDB(t)

	tmpl, _ := db.CreateTemplate("Push Day")
	sess, err := db.StartSession(tmpl.ID)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if !sess.InProgress() {
		t.Error("New session should be in progress")
	}

	got, err := db.GetSession(sess.ID.String()[:8])
	if err != nil {
		t.Fatalf("GetSession by prefix failed: %v", err)
	}
	if got.ID != sess.ID {
		t.Errorf("ID mismatch: got %v, want %v", got.ID, sess.ID)
	}

	completed, err := db.CompleteSession(sess.ID.String())
	if err != nil {
		t.Fatalf("CompleteSession failed: %v", err)
	}
	if completed.CompletedAt == nil {
		t.Fatal("CompletedAt should be set")
	}

	// Completing again is rejected and the timestamp is untouched
	if _, err := db.CompleteSession(sess.ID.String()); !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState on double complete, got %v", err)
	}
	got, err = db.GetSession(sess.ID.String())
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(*completed.CompletedAt) {
		t.Error("CompletedAt changed after rejected complete")
	}
}

func TestStartSessionMissingTemplate(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.StartSession(uuid.New()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLogSet(t *testing.T) {
	db := setupTestDB(t)

	tmpl, _ := db.CreateTemplate("Push Day")
	e, _ := db.AddExercise(tmpl.ID, "Bench Press", 3)
	sess, _ := db.StartSession(tmpl.ID)

	ls, err := db.LogSet(e.ID, sess.ID, 80, 8)
	if err != nil {
		t.Fatalf("LogSet failed: %v", err)
	}
	if ls.Weight != 80 || ls.Reps != 8 {
		t.Errorf("Set mismatch: got %.1f x %d", ls.Weight, ls.Reps)
	}

	// Bodyweight sets have zero weight
	if _, err := db.LogSet(e.ID, sess.ID, 0, 12); err != nil {
		t.Errorf("Zero weight should be valid: %v", err)
	}

	// Validation failures persist nothing
	if _, err := db.LogSet(e.ID, sess.ID, -5, 8); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for negative weight, got %v", err)
	}
	if _, err := db.LogSet(e.ID, sess.ID, 80, 0); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for zero reps, got %v", err)
	}

	// Missing references
	if _, err := db.LogSet(uuid.New(), sess.ID, 80, 8); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing exercise, got %v", err)
	}
	if _, err := db.LogSet(e.ID, uuid.New(), 80, 8); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing session, got %v", err)
	}

	groups, err := db.ListSessionSets(sess.ID)
	if err != nil {
		t.Fatalf("ListSessionSets failed: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Sets) != 2 {
		t.Errorf("Expected 1 group with 2 sets, got %+v", groups)
	}
}

func TestLogSetRejectedWhenCompleted(t *testing.T) {
	db := setupTestDB(t)

	tmpl, _ := db.CreateTemplate("Push Day")
	e, _ := db.AddExercise(tmpl.ID, "Bench Press", 3)
	sess, _ := db.StartSession(tmpl.ID)

	if _, err := db.CompleteSession(sess.ID.String()); err != nil {
		t.Fatalf("CompleteSession failed: %v", err)
	}

	if _, err := db.LogSet(e.ID, sess.ID, 80, 8); !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for completed session, got %v", err)
	}

	groups, err := db.ListSessionSets(sess.ID)
	if err != nil {
		t.Fatalf("ListSessionSets failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("Rejected log persisted sets: %+v", groups)
	}
}

func TestDeleteSet(t *testing.T) {
	db := setupTestDB(t)

	tmpl, _ := db.CreateTemplate("Push Day")
	e, _ := db.AddExercise(tmpl.ID, "Bench Press", 3)
	sess, _ := db.StartSession(tmpl.ID)
	ls, _ := db.LogSet(e.ID, sess.ID, 80, 8)

	if err := db.DeleteSet(ls.ID.String()[:8]); err != nil {
		t.Fatalf("DeleteSet failed: %v", err)
	}
	if err := db.DeleteSet(ls.ID.String()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}

	groups, err := db.ListSessionSets(sess.ID)
	if err != nil {
		t.Fatalf("ListSessionSets failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("Expected no sets after delete, got %+v", groups)
	}
}

func TestListSessionSetsGrouping(t *testing.T) {
	db := setupTestDB(t)

	tmpl, _ := db.CreateTemplate("Push Day")
	bench, _ := db.AddExercise(tmpl.ID, "Bench Press", 3)
	ohp, _ := db.AddExercise(tmpl.ID, "Overhead Press", 3)
	sess, _ := db.StartSession(tmpl.ID)

	// Interleave logging; groups still follow template order
	if _, err := db.LogSet(ohp.ID, sess.ID, 50, 10); err != nil {
		t.Fatalf("LogSet failed: %v", err)
	}
	if _, err := db.LogSet(bench.ID, sess.ID, 80, 8); err != nil {
		t.Fatalf("LogSet failed: %v", err)
	}
	if _, err := db.LogSet(bench.ID, sess.ID, 80, 7); err != nil {
		t.Fatalf("LogSet failed: %v", err)
	}

	groups, err := db.ListSessionSets(sess.ID)
	if err != nil {
		t.Fatalf("ListSessionSets failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Exercise.ID != bench.ID {
		t.Errorf("First group should be bench (position 1), got %q", groups[0].Exercise.Name)
	}
	if len(groups[0].Sets) != 2 || len(groups[1].Sets) != 1 {
		t.Errorf("Group sizes wrong: %d and %d", len(groups[0].Sets), len(groups[1].Sets))
	}

	if _, err := db.ListSessionSets(uuid.New()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing session, got %v", err)
	}
}

func TestLastSet(t *testing.T) {
	db := setupTestDB(t)

	tmpl, _ := db.CreateTemplate("Push Day")
	e, _ := db.AddExercise(tmpl.ID, "Bench Press", 3)

	// Exercise exists but has no history
	ls, err := db.LastSet(e.ID)
	if err != nil {
		t.Fatalf("LastSet failed: %v", err)
	}
	if ls != nil {
		t.Errorf("Expected nil for no history, got %+v", ls)
	}

	// Missing exercise is an error, not empty history
	if _, err := db.LastSet(uuid.New()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	// Three sessions with sets at known times
	s1, _ := db.StartSession(tmpl.ID)
	s2, _ := db.StartSession(tmpl.ID)
	base := time.Now().Add(-3 * time.Hour).Truncate(time.Second)
	err = db.ImportData(&ExportData{
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

	ls, err = db.LastSet(e.ID)
	if err != nil {
		t.Fatalf("LastSet failed: %v", err)
	}
	if ls == nil || ls.Weight != 80 || ls.Reps != 6 {
		t.Errorf("Expected most recent set 80 x 6, got %+v", ls)
	}

	// Scoped to the first session
	ls, err = db.LastSetInSession(e.ID, s1.ID)
	if err != nil {
		t.Fatalf("LastSetInSession failed: %v", err)
	}
	if ls == nil || ls.Weight != 77.5 {
		t.Errorf("Expected 77.5 in session 1, got %+v", ls)
	}

	// Session with no sets for the exercise
	s3, _ := db.StartSession(tmpl.ID)
	ls, err = db.LastSetInSession(e.ID, s3.ID)
	if err != nil {
		t.Fatalf("LastSetInSession failed: %v", err)
	}
	if ls != nil {
		t.Errorf("Expected nil for empty session, got %+v", ls)
	}
}

func TestDeleteTemplateCascades(t *testing.T) {
	db := setupTestDB(t)

	tmpl, _ := db.CreateTemplate("Push Day")
	e, _ := db.AddExercise(tmpl.ID, "Bench Press", 3)
	sess, _ := db.StartSession(tmpl.ID)
	ls, _ := db.LogSet(e.ID, sess.ID, 80, 8)

	// Unrelated data survives
	other, _ := db.CreateTemplate("Leg Day")
	otherEx, _ := db.AddExercise(other.ID, "Squat", 5)

	if err := db.DeleteTemplate(tmpl.ID.String()); err != nil {
		t.Fatalf("DeleteTemplate failed: %v", err)
	}

	if _, err := db.GetTemplate(tmpl.ID.String()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Template survived cascade: %v", err)
	}
	if _, err := db.GetExercise(e.ID.String()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Exercise survived cascade: %v", err)
	}
	if _, err := db.GetSession(sess.ID.String()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Session survived cascade: %v", err)
	}
	if err := db.DeleteSet(ls.ID.String()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Set survived cascade: %v", err)
	}

	if _, err := db.GetExercise(otherEx.ID.String()); err != nil {
		t.Errorf("Unrelated exercise was deleted: %v", err)
	}
}

func TestDeleteExerciseCascades(t *testing.T) {
	db := setupTestDB(t)

	tmpl, _ := db.CreateTemplate("Push Day")
	bench, _ := db.AddExercise(tmpl.ID, "Bench Press", 3)
	ohp, _ := db.AddExercise(tmpl.ID, "Overhead Press", 3)
	sess, _ := db.StartSession(tmpl.ID)
	benchSet, _ := db.LogSet(bench.ID, sess.ID, 80, 8)
	if _, err := db.LogSet(ohp.ID, sess.ID, 50, 10); err != nil {
		t.Fatalf("LogSet failed: %v", err)
	}

	if err := db.DeleteExercise(bench.ID.String()); err != nil {
		t.Fatalf("DeleteExercise failed: %v", err)
	}

	if err := db.DeleteSet(benchSet.ID.String()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Bench set survived cascade: %v", err)
	}

	// The session and the other exercise's sets survive
	groups, err := db.ListSessionSets(sess.ID)
	if err != nil {
		t.Fatalf("ListSessionSets failed: %v", err)
	}
	if len(groups) != 1 || groups[0].Exercise.ID != ohp.ID {
		t.Errorf("Expected only OHP sets to remain, got %+v", groups)
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	db := setupTestDB(t)

	tmpl, _ := db.CreateTemplate("Push Day")
	e, _ := db.AddExercise(tmpl.ID, "Bench Press", 3)
	sess, _ := db.StartSession(tmpl.ID)
	ls, _ := db.LogSet(e.ID, sess.ID, 80, 8)

	if err := db.DeleteSession(sess.ID.String()); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if err := db.DeleteSet(ls.ID.String()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Set survived session cascade: %v", err)
	}

	// Exercise history is gone but the template plan is intact
	last, err := db.LastSet(e.ID)
	if err != nil {
		t.Fatalf("LastSet failed: %v", err)
	}
	if last != nil {
		t.Errorf("Expected no history after session delete, got %+v", last)
	}
}

func TestListSessionsOrder(t *testing.T) {
	db := setupTestDB(t)

	tmpl, _ := db.CreateTemplate("Push Day")
	base := time.Now().Add(-24 * time.Hour).Truncate(time.Second)
	done1 := base.Add(1 * time.Hour)
	done2 := base.Add(5 * time.Hour)

	err := db.ImportData(&ExportData{
		Version: "1.0",
		Sessions: []*models.Session{
			{ID: uuid.New(), TemplateID: tmpl.ID, StartedAt: base, CompletedAt: &done1},
			{ID: uuid.New(), TemplateID: tmpl.ID, StartedAt: base.Add(4 * time.Hour), CompletedAt: &done2},
			// In progress, started between the two completions
			{ID: uuid.New(), TemplateID: tmpl.ID, StartedAt: base.Add(3 * time.Hour)},
		},
	})
	if err != nil {
		t.Fatalf("ImportData failed: %v", err)
	}

	sessions, err := db.ListSessions(0)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}

	// Most recent activity first: done2 (base+5h), in-progress (base+3h), done1 (base+1h)
	if !sessions[0].SortKey().Equal(done2) {
		t.Errorf("Expected done2 first, got sort key %v", sessions[0].SortKey())
	}
	if sessions[1].CompletedAt != nil {
		t.Errorf("Expected in-progress session second")
	}
	if !sessions[2].SortKey().Equal(done1) {
		t.Errorf("Expected done1 last, got sort key %v", sessions[2].SortKey())
	}

	limited, err := db.ListSessions(2)
	if err != nil {
		t.Fatalf("ListSessions with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 sessions with limit, got %d", len(limited))
	}
}

func TestPushDayScenario(t *testing.T) {
	db := setupTestDB(t)

	// Plan
	tmpl, err := db.CreateTemplate("Push Day")
	if err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}
	bench, _ := db.AddExercise(tmpl.ID, "Bench Press", 3)
	ohp, _ := db.AddExercise(tmpl.ID, "Overhead Press", 3)
	dips, _ := db.AddExercise(tmpl.ID, "Dips", 3)

	// First session
	s1, err := db.StartSession(tmpl.ID)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	for _, reps := range []int{8, 8, 7} {
		if _, err := db.LogSet(bench.ID, s1.ID, 80, reps); err != nil {
			t.Fatalf("LogSet failed: %v", err)
		}
	}
	if _, err := db.LogSet(ohp.ID, s1.ID, 50, 10); err != nil {
		t.Fatalf("LogSet failed: %v", err)
	}
	if _, err := db.LogSet(dips.ID, s1.ID, 0, 12); err != nil {
		t.Fatalf("LogSet failed: %v", err)
	}
	if _, err := db.CompleteSession(s1.ID.String()); err != nil {
		t.Fatalf("CompleteSession failed: %v", err)
	}

	// Next visit: check the number to beat
	last, err := db.LastSet(bench.ID)
	if err != nil {
		t.Fatalf("LastSet failed: %v", err)
	}
	if last == nil || last.Weight != 80 {
		t.Fatalf("Expected 80 on the bar last time, got %+v", last)
	}

	s2, _ := db.StartSession(tmpl.ID)
	if _, err := db.LogSet(bench.ID, s2.ID, last.Weight+2.5, 8); err != nil {
		t.Fatalf("LogSet failed: %v", err)
	}

	groups, err := db.ListSessionSets(s2.ID)
	if err != nil {
		t.Fatalf("ListSessionSets failed: %v", err)
	}
	if len(groups) != 1 || groups[0].Sets[0].Weight != 82.5 {
		t.Errorf("Expected progressive overload set 82.5, got %+v", groups)
	}
}

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "gymlog-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	dbPath := filepath.Join(tmpDir, "gymlog.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}
