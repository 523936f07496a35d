package editor

import (
	"context"
	"errors"
	"sync"

	"liftlog/internal/api"
	"liftlog/internal/constants"
	"liftlog/internal/logger"
	"liftlog/internal/models"
)

// Autosave manages the working copy of one persisted workout and saves
// individual set fields as the user finishes editing them. Saves for
// different fields may be in flight at the same time; completion order is
// not guaranteed to match issue order.
//
// Every patch response is a full workout snapshot that reflects only its own
// edit. Replacing the working copy with it wholesale lets the last response
// to land clobber other in-flight edits, so by default only the field that
// was actually patched is merged back. ReplaceOnPatch restores the wholesale
// behavior for compatibility with the old client.
type Autosave struct {
	client *api.Client

	// ReplaceOnPatch switches patch handling back to full-snapshot replace
	// (last write wins).
	ReplaceOnPatch bool

	mu      sync.Mutex
	workout models.Workout
}

func NewAutosave(client *api.Client, workout models.Workout) *Autosave {
	return &Autosave{client: client, workout: workout}
}

// Workout returns a snapshot of the working copy.
func (a *Autosave) Workout() models.Workout {
	a.mu.Lock()
	defer a.mu.Unlock()
	w := a.workout
	w.Sets = make([]models.Set, len(a.workout.Sets))
	copy(w.Sets, a.workout.Sets)
	return w
}

// Reload replaces the working copy with the server's current state.
func (a *Autosave) Reload(ctx context.Context) error {
	w, err := a.client.GetWorkout(ctx, a.id())
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.workout = *w
	a.mu.Unlock()
	return nil
}

func (a *Autosave) id() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.workout.ID
}

// SaveExercise patches one set's exercise selection.
func (a *Autosave) SaveExercise(ctx context.Context, setID, exerciseID int64) error {
	return a.saveField(ctx, setID, models.SetPayload{ExerciseID: &exerciseID})
}

// SaveReps patches one set's rep count.
func (a *Autosave) SaveReps(ctx context.Context, setID int64, reps int) error {
	return a.saveField(ctx, setID, models.SetPayload{Reps: &reps})
}

// SaveWeight patches one set's weight.
func (a *Autosave) SaveWeight(ctx context.Context, setID int64, weightKg float64) error {
	return a.saveField(ctx, setID, models.SetPayload{WeightKg: &weightKg})
}

// SaveRPE patches one set's effort rating. nil clears it (sent as an
// explicit null).
func (a *Autosave) SaveRPE(ctx context.Context, setID int64, rpe *float64) error {
	updated, err := a.client.PatchSetRPE(ctx, a.id(), setID, rpe)
	return a.foldPatchResult(ctx, setID, models.SetPayload{}, updated, err)
}

// saveField sends a single-field patch and folds the response into the
// working copy. On 401 the gate has already been notified; nothing local is
// touched. On any other failure the workout is reloaded so the grid never
// keeps showing a value the server did not persist.
func (a *Autosave) saveField(ctx context.Context, setID int64, patch models.SetPayload) error {
	updated, err := a.client.PatchSet(ctx, a.id(), setID, patch)
	return a.foldPatchResult(ctx, setID, patch, updated, err)
}

func (a *Autosave) foldPatchResult(ctx context.Context, setID int64, patch models.SetPayload, updated *models.Workout, err error) error {
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		logger.Warn("set patch failed, reloading workout", "set", setID, "error", err)
		if reloadErr := a.Reload(ctx); reloadErr != nil && !errors.Is(reloadErr, api.ErrUnauthorized) {
			logger.Error("reload after failed patch also failed", "error", reloadErr)
		}
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ReplaceOnPatch {
		a.workout = *updated
		return nil
	}
	a.mergeField(updated, setID, patch)
	return nil
}

// mergeField applies only the patched field from the response snapshot to
// the matching local set. If the set is gone from either side the snapshot
// wins outright; there is nothing sensible left to merge.
func (a *Autosave) mergeField(snapshot *models.Workout, setID int64, patch models.SetPayload) {
	local := findSet(a.workout.Sets, setID)
	remote := findSet(snapshot.Sets, setID)
	if local == nil || remote == nil {
		a.workout = *snapshot
		return
	}

	switch {
	case patch.ExerciseID != nil:
		local.ExerciseID = remote.ExerciseID
	case patch.Reps != nil:
		local.Reps = remote.Reps
	case patch.WeightKg != nil:
		local.WeightKg = remote.WeightKg
	default:
		local.RPE = remote.RPE
	}
	local.SetIndex = remote.SetIndex
}

func findSet(sets []models.Set, id int64) *models.Set {
	for i := range sets {
		if sets[i].ID == id {
			return &sets[i]
		}
	}
	return nil
}

// DeleteSet removes a set and then reloads the whole workout instead of
// dropping the row locally, so displayed set indices are always server
// truth after a structural change.
func (a *Autosave) DeleteSet(ctx context.Context, setID int64) error {
	if err := a.client.DeleteSet(ctx, a.id(), setID); err != nil {
		return err
	}
	return a.Reload(ctx)
}

// AddDefaultSet appends a set with the stock defaults: the first exercise in
// the catalog, a fixed rep/weight pair, no RPE. The working copy is replaced
// with the server's response.
func (a *Autosave) AddDefaultSet(ctx context.Context, exercises []models.Exercise) error {
	if len(exercises) == 0 {
		return errors.New("no exercises available")
	}
	exerciseID := exercises[0].ID
	reps := constants.DefaultSetReps
	weight := float64(constants.DefaultSetWeightKg)
	updated, err := a.client.AddSet(ctx, a.id(), models.SetPayload{
		ExerciseID: &exerciseID,
		Reps:       &reps,
		WeightKg:   &weight,
	})
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.workout = *updated
	a.mu.Unlock()
	return nil
}

// SaveMeta patches the workout's title and notes. Only those two fields are
// folded back so an in-flight set edit cannot be clobbered.
func (a *Autosave) SaveMeta(ctx context.Context, title, notes string) error {
	updated, err := a.client.UpdateWorkout(ctx, a.id(), api.WorkoutMetaPatch{Title: &title, Notes: &notes})
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.workout.Title = updated.Title
	a.workout.Notes = updated.Notes
	a.mu.Unlock()
	return nil
}
