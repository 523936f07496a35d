package exercises

import (
	"context"
	"fmt"
	"strings"

	"liftlog/internal/cli"
	"liftlog/internal/models"
)

type ListCmd struct {
	Offline bool `help:"Serve from the local cache without contacting the backend."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	var exercises []models.Exercise
	var err error
	if c.Offline {
		if ctx.Cache == nil {
			return fmt.Errorf("local cache is unavailable")
		}
		exercises, err = ctx.Cache.Exercises()
	} else {
		exercises, err = ctx.Client.ListExercises(context.Background())
		if err == nil {
			ctx.RefreshExerciseCache(exercises)
		}
	}
	if err != nil {
		return err
	}

	if len(exercises) == 0 {
		fmt.Println("No exercises in the catalog.")
		return nil
	}
	for _, e := range exercises {
		line := fmt.Sprintf("%-6d %s", e.ID, e.Name)
		if len(e.Muscles) > 0 {
			line += "  [" + strings.Join(e.Muscles, ", ") + "]"
		}
		if e.IsCustom {
			line += "  (custom)"
		}
		fmt.Println(line)
	}
	return nil
}
