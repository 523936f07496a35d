package sets

import (
	"context"
	"fmt"

	"liftlog/internal/cli"
	"liftlog/internal/constants"
	"liftlog/internal/models"
)

type SetAddCmd struct {
	WorkoutID int64    `arg:"" help:"Workout to append to."`
	Exercise  int64    `short:"e" help:"Exercise id (defaults to the first catalog entry)."`
	Reps      int      `short:"r" help:"Rep count." default:"-1"`
	Weight    float64  `short:"w" help:"Weight in kg." default:"-1"`
	RPE       *float64 `help:"Effort rating 0-10."`
}

func (c *SetAddCmd) Validate() error {
	if c.RPE != nil && (*c.RPE < constants.MinRPE || *c.RPE > constants.MaxRPE) {
		return fmt.Errorf("rpe must be between %v and %v", constants.MinRPE, constants.MaxRPE)
	}
	return nil
}

func (c *SetAddCmd) Run(ctx *cli.Context) error {
	exerciseID := c.Exercise
	if exerciseID == 0 {
		exercises, err := ctx.Client.ListExercises(context.Background())
		if err != nil {
			return err
		}
		if len(exercises) == 0 {
			return fmt.Errorf("no exercises available; add one with 'liftlog exercise add'")
		}
		ctx.RefreshExerciseCache(exercises)
		exerciseID = exercises[0].ID
	}

	reps := c.Reps
	if reps < 0 {
		reps = constants.DefaultSetReps
	}
	weight := c.Weight
	if weight < 0 {
		weight = float64(constants.DefaultSetWeightKg)
	}

	updated, err := ctx.Client.AddSet(context.Background(), c.WorkoutID, models.SetPayload{
		ExerciseID: &exerciseID,
		Reps:       &reps,
		WeightKg:   &weight,
		RPE:        c.RPE,
	})
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added set %d to workout #%d\n", len(updated.Sets), c.WorkoutID)
	return nil
}
