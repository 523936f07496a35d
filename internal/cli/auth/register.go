package auth

import (
	"context"
	"errors"
	"fmt"

	"liftlog/internal/api"
	"liftlog/internal/cli"
)

type RegisterCmd struct {
	Email    string `arg:"" optional:"" help:"Account email."`
	Password string `short:"p" help:"Password (prompted when omitted)."`
	Name     string `short:"n" help:"Display name."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	if err := promptCredentials(&c.Email, &c.Password); err != nil {
		return err
	}

	token, err := ctx.Client.Register(context.Background(), c.Email, c.Password, c.Name)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status == 409 {
			return fmt.Errorf("an account with that email already exists")
		}
		return err
	}

	if err := ctx.Gate().SetCredential(token); err != nil {
		return fmt.Errorf("registered but failed to store the token: %w", err)
	}

	fmt.Printf("✓ Account created, signed in as %s\n", c.Email)
	return nil
}
