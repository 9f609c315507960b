package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/oan-pulse/pulse/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Token   string      `json:"token,omitempty"`
	User    *model.User `json:"user,omitempty"`
}

// Login authenticates with email/password and returns the user and
// bearer token on success.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	var resp loginResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, "", err
	}
	if !resp.Success || resp.Token == "" || resp.User == nil {
		msg := resp.Message
		if msg == "" {
			msg = "invalid credentials"
		}
		return nil, "", fmt.Errorf("login failed: %s", msg)
	}
	return resp.User, resp.Token, nil
}

// Logout invalidates the current token server-side. The caller clears
// local session state regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	token := ""
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	return c.post(ctx, "/auth/logout", map[string]string{"token": token}, nil)
}

type meResponse struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user,omitempty"`
}

// Me fetches the current user for the stored token. The backend reads
// the token from the query string on this route.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	token := ""
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	q := url.Values{}
	q.Set("token", token)

	var resp meResponse
	if err := c.get(ctx, "/auth/me", q, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.User == nil {
		return nil, fmt.Errorf("auth/me: no user in response")
	}
	return resp.User, nil
}
