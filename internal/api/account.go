package api

import (
	"context"
	"net/http"
)

// Login posts credentials. On success the session cookie is in the jar;
// use Cookies to persist it.
func (c *Client) Login(ctx context.Context, username, password string) (*Result, error) {
	return c.postResult(ctx, "/api/login", map[string]any{
		"username": username,
		"password": password,
	})
}

// Register creates an account
func (c *Client) Register(ctx context.Context, username, email, password, confirmPassword string) (*Result, error) {
	return c.postResult(ctx, "/api/register", map[string]any{
		"username":         username,
		"email":            email,
		"password":         password,
		"confirm_password": confirmPassword,
	})
}

// ForgotPassword asks the tracker to start a password reset
func (c *Client) ForgotPassword(ctx context.Context, username, email string) (*Result, error) {
	return c.postResult(ctx, "/api/forgot-password", map[string]any{
		"username": username,
		"email":    email,
	})
}

// Logout ends the server-side session. The response is an HTML redirect,
// so only transport failures are reported.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/logout/", nil, nil)
	return err
}
