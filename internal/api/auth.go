package api

import (
	"context"

	"liftlog/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a bearer token. The caller is responsible
// for handing the token to the session gate.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, "POST", "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Register creates an account and returns the bearer token for it.
func (c *Client) Register(ctx context.Context, email, password, name string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, "POST", "/auth/register", registerRequest{Email: email, Password: password, Name: name}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Me returns the signed-in user's profile.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, "GET", "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
