// Package cache keeps a local sqlite copy of the workout history and the
// exercise catalog so `liftlog history --offline` works without the backend.
// It is write-through: successful reads from the API refresh it, and it is
// never consulted while online.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"liftlog/internal/api"
	"liftlog/internal/models"
	_ "modernc.org/sqlite"
)

type Cache struct {
	path string
	db   *sql.DB
}

func New(path string) *Cache {
	return &Cache{path: path}
}

// Open creates the database file and schema if needed.
func (c *Cache) Open() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", c.path)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	c.db = db

	schema := []string{
		`CREATE TABLE IF NOT EXISTS workouts (
			id INTEGER PRIMARY KEY,
			date TEXT NOT NULL,
			created_at TEXT,
			payload TEXT NOT NULL,
			cached_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS exercises (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			payload TEXT NOT NULL,
			cached_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create cache schema: %w", err)
		}
	}
	return nil
}

func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// PutWorkouts replaces the cached history with a fresh server listing.
func (c *Cache) PutWorkouts(workouts []models.WorkoutSummary) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM workouts"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO workouts (id, date, created_at, payload, cached_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, w := range workouts {
		payload, err := json.Marshal(w)
		if err != nil {
			return fmt.Errorf("failed to marshal workout %d: %w", w.ID, err)
		}
		if _, err := stmt.Exec(w.ID, w.Date, w.CreatedAt, string(payload), now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Workouts returns the cached history, newest first, optionally bounded by
// an inclusive date range. Empty bounds are open.
func (c *Cache) Workouts(from, to string) ([]models.WorkoutSummary, error) {
	query := "SELECT payload FROM workouts WHERE 1=1"
	var args []any
	if from != "" {
		query += " AND date >= ?"
		args = append(args, from)
	}
	if to != "" {
		query += " AND date <= ?"
		args = append(args, to)
	}

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []models.WorkoutSummary
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var w models.WorkoutSummary
		if err := json.Unmarshal([]byte(payload), &w); err != nil {
			return nil, fmt.Errorf("corrupt cache entry: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return api.SortByRecency(workouts), nil
}

// PutExercises replaces the cached catalog.
func (c *Cache) PutExercises(exercises []models.Exercise) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM exercises"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO exercises (id, name, payload, cached_at)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, e := range exercises {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal exercise %d: %w", e.ID, err)
		}
		if _, err := stmt.Exec(e.ID, e.Name, string(payload), now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Exercises returns the cached catalog in name order.
func (c *Cache) Exercises() ([]models.Exercise, error) {
	rows, err := c.db.Query("SELECT payload FROM exercises ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var e models.Exercise
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			return nil, fmt.Errorf("corrupt cache entry: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}
