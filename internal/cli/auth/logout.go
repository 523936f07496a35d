package auth

import (
	"fmt"

	"liftlog/internal/cli"
)

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if !ctx.Gate().Authenticated() {
		fmt.Println("Not signed in.")
		return nil
	}
	if err := ctx.Gate().ClearCredential(); err != nil {
		return fmt.Errorf("failed to clear stored token: %w", err)
	}
	fmt.Println("✓ Signed out")
	return nil
}
