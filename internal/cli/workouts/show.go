package workouts

import (
	"context"
	"fmt"

	"liftlog/internal/cli"
	"liftlog/internal/logger"
)

type ShowCmd struct {
	ID int64 `arg:"" help:"Workout id."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	workout, err := ctx.Client.GetWorkout(context.Background(), c.ID)
	if err != nil {
		return err
	}

	// Exercise names are cosmetic; fall back to ids if the catalog is
	// unreachable.
	names := map[int64]string{}
	exercises, err := ctx.Client.ListExercises(context.Background())
	if err != nil {
		logger.Warn("failed to fetch exercise catalog", "error", err)
	} else {
		ctx.RefreshExerciseCache(exercises)
		names = cli.ExerciseNames(exercises)
	}

	fmt.Print(cli.FormatWorkout(*workout, names))
	return nil
}
