package sets

import (
	"context"
	"fmt"

	"liftlog/internal/cli"
	"liftlog/internal/constants"
	"liftlog/internal/editor"
)

type SetEditCmd struct {
	WorkoutID int64    `arg:"" help:"Workout id."`
	SetID     int64    `arg:"" help:"Set id."`
	Exercise  *int64   `short:"e" help:"New exercise id."`
	Reps      *int     `short:"r" help:"New rep count."`
	Weight    *float64 `short:"w" help:"New weight in kg."`
	RPE       *float64 `help:"New effort rating 0-10."`
	ClearRPE  bool     `help:"Remove the effort rating."`
}

func (c *SetEditCmd) Validate() error {
	if c.Exercise == nil && c.Reps == nil && c.Weight == nil && c.RPE == nil && !c.ClearRPE {
		return fmt.Errorf("nothing to change: pass at least one of --exercise, --reps, --weight, --rpe, --clear-rpe")
	}
	if c.RPE != nil && c.ClearRPE {
		return fmt.Errorf("--rpe and --clear-rpe are mutually exclusive")
	}
	if c.RPE != nil && (*c.RPE < constants.MinRPE || *c.RPE > constants.MaxRPE) {
		return fmt.Errorf("rpe must be between %v and %v", constants.MinRPE, constants.MaxRPE)
	}
	return nil
}

// Run mirrors the grid's autosave behavior: every provided flag becomes its
// own single-field patch.
func (c *SetEditCmd) Run(ctx *cli.Context) error {
	workout, err := ctx.Client.GetWorkout(context.Background(), c.WorkoutID)
	if err != nil {
		return err
	}
	auto := editor.NewAutosave(ctx.Client, *workout)

	bg := context.Background()
	if c.Exercise != nil {
		if err := auto.SaveExercise(bg, c.SetID, *c.Exercise); err != nil {
			return err
		}
	}
	if c.Reps != nil {
		if err := auto.SaveReps(bg, c.SetID, *c.Reps); err != nil {
			return err
		}
	}
	if c.Weight != nil {
		if err := auto.SaveWeight(bg, c.SetID, *c.Weight); err != nil {
			return err
		}
	}
	if c.RPE != nil || c.ClearRPE {
		if err := auto.SaveRPE(bg, c.SetID, c.RPE); err != nil {
			return err
		}
	}

	fmt.Printf("✓ Updated set %d in workout #%d\n", c.SetID, c.WorkoutID)
	return nil
}
