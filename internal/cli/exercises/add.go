package exercises

import (
	"context"
	"fmt"
	"strings"

	"liftlog/internal/cli"
)

type AddCmd struct {
	Name    string `arg:"" help:"Exercise name."`
	Muscles string `short:"m" help:"Comma-separated muscle groups."`
}

func (c *AddCmd) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("exercise name cannot be empty")
	}
	return nil
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	var muscles []string
	for _, m := range strings.Split(c.Muscles, ",") {
		if m = strings.TrimSpace(m); m != "" {
			muscles = append(muscles, m)
		}
	}

	created, err := ctx.Client.CreateExercise(context.Background(), strings.TrimSpace(c.Name), muscles)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added exercise %q (ID: %d)\n", created.Name, created.ID)
	return nil
}
