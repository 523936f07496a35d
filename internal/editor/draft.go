// Package editor manages the editable set grid in its two modes: bulk-draft
// composition of a brand-new workout, and field-level autosave against an
// already-persisted one.
package editor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"liftlog/internal/api"
	"liftlog/internal/constants"
	"liftlog/internal/models"
)

// ErrNoCompleteRows is the local rejection when a draft is submitted with no
// complete rows. No request is made in that case.
var ErrNoCompleteRows = errors.New("please add at least one complete set")

// DraftRow is an unsaved candidate set. Fields hold the raw user input;
// parsing happens at completion-check time. Rows have no identity beyond
// their position.
type DraftRow struct {
	ExerciseID string
	Reps       string
	WeightKg   string
	RPE        string
}

// RowPatch updates a subset of a row's fields; nil fields are untouched.
type RowPatch struct {
	ExerciseID *string
	Reps       *string
	WeightKg   *string
	RPE        *string
}

// Draft composes a new workout before anything is sent to the backend.
type Draft struct {
	Title string
	Date  string
	Notes string
	rows  []DraftRow
}

// NewDraft starts a draft dated today with two empty rows, matching the
// blank grid a user expects to start from.
func NewDraft() *Draft {
	return &Draft{
		Title: "Workout",
		Date:  time.Now().Format(constants.DateFormat),
		rows:  []DraftRow{{}, {}},
	}
}

// Rows returns a copy of the current rows in visual order.
func (d *Draft) Rows() []DraftRow {
	rows := make([]DraftRow, len(d.rows))
	copy(rows, d.rows)
	return rows
}

// Len returns the current row count.
func (d *Draft) Len() int {
	return len(d.rows)
}

// AddRow appends one empty row.
func (d *Draft) AddRow() {
	d.rows = append(d.rows, DraftRow{})
}

// RemoveRow deletes the row at i. The grid never shrinks below one row.
func (d *Draft) RemoveRow(i int) error {
	if i < 0 || i >= len(d.rows) {
		return fmt.Errorf("no row at index %d", i)
	}
	if len(d.rows) == 1 {
		return errors.New("keep at least one set row")
	}
	d.rows = append(d.rows[:i], d.rows[i+1:]...)
	return nil
}

// UpdateRow applies a partial update to the row at i.
func (d *Draft) UpdateRow(i int, patch RowPatch) error {
	if i < 0 || i >= len(d.rows) {
		return fmt.Errorf("no row at index %d", i)
	}
	row := &d.rows[i]
	if patch.ExerciseID != nil {
		row.ExerciseID = *patch.ExerciseID
	}
	if patch.Reps != nil {
		row.Reps = *patch.Reps
	}
	if patch.WeightKg != nil {
		row.WeightKg = *patch.WeightKg
	}
	if patch.RPE != nil {
		row.RPE = *patch.RPE
	}
	return nil
}

// CompleteRows filters to rows that are fully filled in and re-numbers them
// 1..k in current visual order. Incomplete rows are dropped silently; that
// is submission policy, not a validation error.
func (d *Draft) CompleteRows() []models.SetPayload {
	var sets []models.SetPayload
	for _, row := range d.rows {
		payload, ok := row.complete()
		if !ok {
			continue
		}
		idx := len(sets) + 1
		payload.SetIndex = &idx
		sets = append(sets, payload)
	}
	return sets
}

// complete parses a row. A row counts iff an exercise is chosen, reps is a
// positive integer-valued number, and weight is a non-negative number. RPE
// is optional and dropped when out of range or unparseable.
func (r DraftRow) complete() (models.SetPayload, bool) {
	exerciseID, err := strconv.ParseInt(strings.TrimSpace(r.ExerciseID), 10, 64)
	if err != nil || exerciseID <= 0 {
		return models.SetPayload{}, false
	}

	repsVal, err := strconv.ParseFloat(strings.TrimSpace(r.Reps), 64)
	if err != nil || repsVal <= 0 || repsVal != math.Trunc(repsVal) {
		return models.SetPayload{}, false
	}
	reps := int(repsVal)

	weight, err := strconv.ParseFloat(strings.TrimSpace(r.WeightKg), 64)
	if err != nil || weight < 0 {
		return models.SetPayload{}, false
	}

	payload := models.SetPayload{
		ExerciseID: &exerciseID,
		Reps:       &reps,
		WeightKg:   &weight,
	}

	if rpeStr := strings.TrimSpace(r.RPE); rpeStr != "" {
		if rpe, err := strconv.ParseFloat(rpeStr, 64); err == nil &&
			rpe >= constants.MinRPE && rpe <= constants.MaxRPE {
			payload.RPE = &rpe
		}
	}
	return payload, true
}

// Submit creates the workout from the complete rows. With zero complete rows
// it short-circuits locally with ErrNoCompleteRows and no request is sent.
func (d *Draft) Submit(ctx context.Context, client *api.Client) (*models.Workout, error) {
	sets := d.CompleteRows()
	if len(sets) == 0 {
		return nil, ErrNoCompleteRows
	}
	return client.CreateWorkout(ctx, api.CreateWorkoutRequest{
		Date:  d.Date,
		Title: d.Title,
		Notes: d.Notes,
		Sets:  sets,
	})
}
