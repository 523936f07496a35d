package auth

import (
	"context"
	"fmt"

	"liftlog/internal/cli"
)

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Client.Me(context.Background())
	if err != nil {
		return err
	}
	if user.Name != "" {
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
	} else {
		fmt.Println(user.Email)
	}
	return nil
}
