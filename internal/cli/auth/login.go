package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"liftlog/internal/api"
	"liftlog/internal/cli"
)

type LoginCmd struct {
	Email    string `arg:"" optional:"" help:"Account email."`
	Password string `short:"p" help:"Password (prompted when omitted)."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	if err := promptCredentials(&c.Email, &c.Password); err != nil {
		return err
	}

	token, err := ctx.Client.Login(context.Background(), c.Email, c.Password)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status == 401 {
			return fmt.Errorf("invalid email or password")
		}
		return err
	}

	if err := ctx.Gate().SetCredential(token); err != nil {
		return fmt.Errorf("signed in but failed to store the token: %w", err)
	}

	fmt.Printf("✓ Signed in as %s\n", c.Email)
	return nil
}

// promptCredentials fills missing fields interactively.
func promptCredentials(email, password *string) error {
	var fields []huh.Field
	if strings.TrimSpace(*email) == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(email).
			Validate(func(s string) error {
				if !strings.Contains(s, "@") {
					return fmt.Errorf("enter a valid email address")
				}
				return nil
			}))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("password cannot be empty")
				}
				return nil
			}))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula()).Run()
}
