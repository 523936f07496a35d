package workouts

import (
	"context"
	"fmt"

	"liftlog/internal/cli"
)

type DeleteCmd struct {
	ID    int64 `arg:"" help:"Workout id."`
	Force bool  `short:"f" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if !c.Force {
		fmt.Printf("Delete workout #%d and all its sets? [y/N] ", c.ID)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Client.DeleteWorkout(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted workout #%d\n", c.ID)
	return nil
}
