package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"liftlog/internal/models"
)

// CreateWorkoutRequest is the POST /workouts body.
type CreateWorkoutRequest struct {
	Date  string              `json:"date"`
	Title string              `json:"title"`
	Notes string              `json:"notes,omitempty"`
	Sets  []models.SetPayload `json:"sets"`
}

// WorkoutMetaPatch carries the editable workout metadata; nil fields are
// omitted from the PATCH body.
type WorkoutMetaPatch struct {
	Title *string `json:"title,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// ListWorkouts fetches workout summaries, newest first. The raw response is
// run through NormalizeList so every historical envelope shape decodes the
// same way. from/to are optional YYYY-MM-DD bounds.
func (c *Client) ListWorkouts(ctx context.Context, from, to string) ([]models.WorkoutSummary, error) {
	path := "/workouts"
	query := url.Values{}
	if from != "" {
		query.Set("from", from)
	}
	if to != "" {
		query.Set("to", to)
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var raw json.RawMessage
	if err := c.do(ctx, "GET", path, nil, &raw); err != nil {
		return nil, err
	}

	var list []models.WorkoutSummary
	if err := json.Unmarshal(NormalizeList(raw), &list); err != nil {
		return nil, fmt.Errorf("failed to decode workout list: %w", err)
	}
	return SortByRecency(list), nil
}

// GetWorkout fetches one full workout with its set sequence.
func (c *Client) GetWorkout(ctx context.Context, id int64) (*models.Workout, error) {
	var w models.Workout
	if err := c.do(ctx, "GET", fmt.Sprintf("/workouts/%d", id), nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// CreateWorkout creates a workout with its initial set list in one call.
func (c *Client) CreateWorkout(ctx context.Context, req CreateWorkoutRequest) (*models.Workout, error) {
	var w models.Workout
	if err := c.do(ctx, "POST", "/workouts", req, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// UpdateWorkout patches workout metadata and returns the updated workout.
func (c *Client) UpdateWorkout(ctx context.Context, id int64, patch WorkoutMetaPatch) (*models.Workout, error) {
	var w models.Workout
	if err := c.do(ctx, "PATCH", fmt.Sprintf("/workouts/%d", id), patch, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// DeleteWorkout removes a workout.
func (c *Client) DeleteWorkout(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/workouts/%d", id), nil, nil)
}

// AddSet appends a set to an existing workout. The response is the full
// updated workout.
func (c *Client) AddSet(ctx context.Context, workoutID int64, set models.SetPayload) (*models.Workout, error) {
	var w models.Workout
	if err := c.do(ctx, "POST", fmt.Sprintf("/workouts/%d/sets", workoutID), set, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// PatchSet updates fields of one set. Callers doing field-level autosave
// send exactly one populated field per call. The response is the full
// updated workout.
func (c *Client) PatchSet(ctx context.Context, workoutID, setID int64, patch models.SetPayload) (*models.Workout, error) {
	var w models.Workout
	if err := c.do(ctx, "PATCH", fmt.Sprintf("/workouts/%d/sets/%d", workoutID, setID), patch, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

type rpePatch struct {
	// No omitempty: clearing the rating requires an explicit null.
	RPE *float64 `json:"rpe"`
}

// PatchSetRPE updates or clears (nil) one set's effort rating. Kept apart
// from PatchSet because a cleared RPE must be sent as an explicit null,
// which the omit-when-unset payload cannot express.
func (c *Client) PatchSetRPE(ctx context.Context, workoutID, setID int64, rpe *float64) (*models.Workout, error) {
	var w models.Workout
	if err := c.do(ctx, "PATCH", fmt.Sprintf("/workouts/%d/sets/%d", workoutID, setID), rpePatch{RPE: rpe}, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// DeleteSet removes one set. Callers must follow up with GetWorkout rather
// than dropping the row locally, so displayed set indices stay server-truth.
func (c *Client) DeleteSet(ctx context.Context, workoutID, setID int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/workouts/%d/sets/%d", workoutID, setID), nil, nil)
}
