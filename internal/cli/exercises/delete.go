package exercises

import (
	"context"
	"fmt"

	"liftlog/internal/cli"
)

type DeleteCmd struct {
	ID int64 `arg:"" help:"Exercise id."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	// Global exercises are never deletable; refuse locally instead of
	// bouncing off the server's 403.
	exercises, err := ctx.Client.ListExercises(context.Background())
	if err != nil {
		return err
	}
	for _, e := range exercises {
		if e.ID != c.ID {
			continue
		}
		if !e.Deletable() {
			return fmt.Errorf("%q is a built-in exercise and cannot be deleted", e.Name)
		}
		if err := ctx.Client.DeleteExercise(context.Background(), c.ID); err != nil {
			return err
		}
		fmt.Printf("✓ Deleted exercise %q\n", e.Name)
		return nil
	}
	return fmt.Errorf("no exercise with id %d", c.ID)
}
