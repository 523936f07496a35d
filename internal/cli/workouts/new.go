package workouts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"liftlog/internal/cli"
	"liftlog/internal/editor"
)

type NewCmd struct {
	Title string   `short:"t" help:"Workout title." default:"Workout"`
	Date  string   `short:"d" help:"Workout date (YYYY-MM-DD, defaults to today)."`
	Notes string   `help:"Free-form notes."`
	Set   []string `short:"s" help:"Set as exercise,reps,weight[,rpe]. Repeatable." placeholder:"1,5,100"`
}

func (c *NewCmd) Validate() error {
	if err := cli.ValidateDate(c.Date); err != nil {
		return err
	}
	for _, s := range c.Set {
		parts := strings.Split(s, ",")
		if len(parts) < 3 || len(parts) > 4 {
			return fmt.Errorf("invalid --set %q (expected exercise,reps,weight[,rpe])", s)
		}
	}
	return nil
}

func (c *NewCmd) Run(ctx *cli.Context) error {
	draft := editor.NewDraft()
	draft.Title = c.Title
	if c.Date != "" {
		draft.Date = c.Date
	}
	draft.Notes = c.Notes

	// The draft opens with two blank rows; fill them before growing.
	for i, s := range c.Set {
		parts := strings.Split(s, ",")
		for draft.Len() <= i {
			draft.AddRow()
		}
		patch := editor.RowPatch{
			ExerciseID: &parts[0],
			Reps:       &parts[1],
			WeightKg:   &parts[2],
		}
		if len(parts) == 4 {
			patch.RPE = &parts[3]
		}
		if err := draft.UpdateRow(i, patch); err != nil {
			return err
		}
	}

	created, err := draft.Submit(context.Background(), ctx.Client)
	if err != nil {
		if errors.Is(err, editor.ErrNoCompleteRows) {
			return fmt.Errorf("no complete sets: each --set needs an exercise id, positive whole reps, and a non-negative weight")
		}
		return err
	}

	fmt.Printf("✓ Logged workout #%d with %d sets\n", created.ID, len(created.Sets))
	return nil
}
