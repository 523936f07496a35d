package models

// Set is one logged exercise performance belonging to a workout, ordered by
// SetIndex. SetIndex is 1-based and dense per workout server-side, but
// consumers must tolerate gaps.
type Set struct {
	ID         int64    `json:"id"`
	ExerciseID int64    `json:"exercise_id"`
	SetIndex   int      `json:"set_index"`
	Reps       int      `json:"reps"`
	WeightKg   float64  `json:"weight_kg"`
	RPE        *float64 `json:"rpe,omitempty"`
}

// Workout is the server-owned entity; the client holds a working copy
// fetched on demand.
type Workout struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"` // YYYY-MM-DD, no time component
	Title     string `json:"title"`
	Notes     string `json:"notes"`
	Sets      []Set  `json:"sets"`
	CreatedAt string `json:"created_at,omitempty"`
}

// WorkoutSummary is the list-endpoint shape. Some backend versions include
// the full set list, others only a count.
type WorkoutSummary struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Title     string `json:"title"`
	SetsCount *int   `json:"sets_count,omitempty"`
	Sets      []Set  `json:"sets,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// NumSets returns the displayable set count for a summary row.
func (w WorkoutSummary) NumSets() int {
	if w.SetsCount != nil {
		return *w.SetsCount
	}
	return len(w.Sets)
}

// SetPayload is the create/patch wire shape for a set. Pointer fields are
// omitted when unset so a patch carries only the changed field.
type SetPayload struct {
	ExerciseID *int64   `json:"exercise_id,omitempty"`
	SetIndex   *int     `json:"set_index,omitempty"`
	Reps       *int     `json:"reps,omitempty"`
	WeightKg   *float64 `json:"weight_kg,omitempty"`
	RPE        *float64 `json:"rpe,omitempty"`
}
