package api

import (
	"context"
	"fmt"

	"liftlog/internal/models"
)

type createExerciseRequest struct {
	Name    string   `json:"name"`
	Muscles []string `json:"muscles,omitempty"`
}

// ListExercises returns the catalog: global exercises plus the user's custom
// ones, ordered by name server-side.
func (c *Client) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	var list []models.Exercise
	if err := c.do(ctx, "GET", "/exercises", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateExercise adds a custom exercise owned by the signed-in user.
func (c *Client) CreateExercise(ctx context.Context, name string, muscles []string) (*models.Exercise, error) {
	var ex models.Exercise
	if err := c.do(ctx, "POST", "/exercises", createExerciseRequest{Name: name, Muscles: muscles}, &ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

// DeleteExercise removes a custom exercise. Deleting a global exercise is
// never offered by this client; the guard lives in the callers, the server
// enforces it regardless.
func (c *Client) DeleteExercise(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/exercises/%d", id), nil, nil)
}
