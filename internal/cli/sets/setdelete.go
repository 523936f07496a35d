package sets

import (
	"context"
	"fmt"

	"liftlog/internal/cli"
)

type SetDeleteCmd struct {
	WorkoutID int64 `arg:"" help:"Workout id."`
	SetID     int64 `arg:"" help:"Set id."`
}

func (c *SetDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Client.DeleteSet(context.Background(), c.WorkoutID, c.SetID); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted set %d from workout #%d\n", c.SetID, c.WorkoutID)
	return nil
}
