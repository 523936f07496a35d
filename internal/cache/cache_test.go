package cache

import (
	"path/filepath"
	"testing"

	"liftlog/internal/models"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c := New(filepath.Join(t.TempDir(), "cache.db"))
	if err := c.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheWorkoutsRoundTrip(t *testing.T) {
	c := openTestCache(t)

	in := []models.WorkoutSummary{
		{ID: 1, Date: "2024-03-01", Title: "Legs"},
		{ID: 2, Date: "2024-03-10", Title: "Push"},
		{ID: 3, Date: "2024-03-05", Title: "Pull"},
	}
	if err := c.PutWorkouts(in); err != nil {
		t.Fatalf("PutWorkouts() error = %v", err)
	}

	got, err := c.Workouts("", "")
	if err != nil {
		t.Fatalf("Workouts() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("cached %d workouts, want 3", len(got))
	}
	// Newest first, same ordering the online path shows.
	if got[0].ID != 2 || got[1].ID != 3 || got[2].ID != 1 {
		t.Errorf("order = %d,%d,%d, want 2,3,1", got[0].ID, got[1].ID, got[2].ID)
	}
	if got[0].Title != "Push" {
		t.Errorf("payload lost fields: %+v", got[0])
	}
}

func TestCacheWorkoutsDateRange(t *testing.T) {
	c := openTestCache(t)

	if err := c.PutWorkouts([]models.WorkoutSummary{
		{ID: 1, Date: "2024-03-01"},
		{ID: 2, Date: "2024-03-10"},
		{ID: 3, Date: "2024-03-20"},
	}); err != nil {
		t.Fatal(err)
	}

	got, err := c.Workouts("2024-03-05", "2024-03-15")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("range query = %+v, want only workout 2", got)
	}

	got, err = c.Workouts("2024-03-10", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("open-ended range returned %d workouts, want 2", len(got))
	}
}

func TestCachePutWorkoutsReplaces(t *testing.T) {
	c := openTestCache(t)

	if err := c.PutWorkouts([]models.WorkoutSummary{{ID: 1, Date: "2024-01-01"}}); err != nil {
		t.Fatal(err)
	}
	// A fresh listing without workout 1 must evict it: the cache mirrors the
	// server, it does not accumulate.
	if err := c.PutWorkouts([]models.WorkoutSummary{{ID: 2, Date: "2024-02-01"}}); err != nil {
		t.Fatal(err)
	}

	got, err := c.Workouts("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("cache = %+v, want only the latest listing", got)
	}
}

func TestCacheExercisesRoundTrip(t *testing.T) {
	c := openTestCache(t)

	owner := int64(7)
	in := []models.Exercise{
		{ID: 2, Name: "Squat", Muscles: []string{"quads", "glutes"}},
		{ID: 5, Name: "Bench Press", Muscles: []string{"chest"}, IsCustom: true, OwnerID: &owner},
	}
	if err := c.PutExercises(in); err != nil {
		t.Fatalf("PutExercises() error = %v", err)
	}

	got, err := c.Exercises()
	if err != nil {
		t.Fatalf("Exercises() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("cached %d exercises, want 2", len(got))
	}
	if got[0].Name != "Bench Press" || got[1].Name != "Squat" {
		t.Errorf("order = %q,%q, want name order", got[0].Name, got[1].Name)
	}
	if !got[0].IsCustom || got[0].OwnerID == nil || *got[0].OwnerID != 7 {
		t.Errorf("custom exercise fields lost: %+v", got[0])
	}
}

func TestCacheEmpty(t *testing.T) {
	c := openTestCache(t)

	workouts, err := c.Workouts("", "")
	if err != nil {
		t.Fatalf("Workouts() on empty cache error = %v", err)
	}
	if len(workouts) != 0 {
		t.Errorf("empty cache returned %d workouts", len(workouts))
	}

	exercises, err := c.Exercises()
	if err != nil {
		t.Fatalf("Exercises() on empty cache error = %v", err)
	}
	if len(exercises) != 0 {
		t.Errorf("empty cache returned %d exercises", len(exercises))
	}
}
