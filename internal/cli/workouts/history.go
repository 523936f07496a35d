package workouts

import (
	"context"
	"fmt"

	"liftlog/internal/cli"
)

type HistoryCmd struct {
	From    string `help:"Only workouts on or after this date (YYYY-MM-DD)."`
	To      string `help:"Only workouts on or before this date (YYYY-MM-DD)."`
	Offline bool   `help:"Serve from the local cache without contacting the backend."`
}

func (c *HistoryCmd) Validate() error {
	if err := cli.ValidateDate(c.From); err != nil {
		return err
	}
	return cli.ValidateDate(c.To)
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	if c.Offline {
		if ctx.Cache == nil {
			return fmt.Errorf("local cache is unavailable")
		}
		workouts, err := ctx.Cache.Workouts(c.From, c.To)
		if err != nil {
			return fmt.Errorf("failed to read local cache: %w", err)
		}
		if len(workouts) == 0 {
			fmt.Println("No cached workouts. Run 'liftlog history' online first.")
			return nil
		}
		for _, w := range workouts {
			fmt.Println(cli.FormatSummary(w))
		}
		return nil
	}

	workouts, err := ctx.Client.ListWorkouts(context.Background(), c.From, c.To)
	if err != nil {
		return err
	}
	ctx.RefreshHistoryCache(workouts)

	if len(workouts) == 0 {
		fmt.Println("No workouts logged yet.")
		return nil
	}
	for _, w := range workouts {
		fmt.Println(cli.FormatSummary(w))
	}
	return nil
}
