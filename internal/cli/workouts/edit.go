package workouts

import (
	"context"
	"fmt"

	"liftlog/internal/cli"
	"liftlog/internal/editor"
)

type EditCmd struct {
	ID    int64   `arg:"" help:"Workout id."`
	Title *string `help:"New workout title."`
	Notes *string `help:"New workout notes."`
}

func (c *EditCmd) Validate() error {
	if c.Title == nil && c.Notes == nil {
		return fmt.Errorf("provide --title or --notes")
	}
	return nil
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	workout, err := ctx.Client.GetWorkout(context.Background(), c.ID)
	if err != nil {
		return err
	}

	// An omitted flag keeps the current value; the patch always carries both
	// fields.
	title := workout.Title
	if c.Title != nil {
		title = *c.Title
	}
	notes := workout.Notes
	if c.Notes != nil {
		notes = *c.Notes
	}

	auto := editor.NewAutosave(ctx.Client, *workout)
	if err := auto.SaveMeta(context.Background(), title, notes); err != nil {
		return err
	}
	fmt.Printf("✓ Updated workout #%d\n", c.ID)
	return nil
}
