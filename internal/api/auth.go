// ABOUTME: Auth call group: login, register, and current-user lookup
// ABOUTME: Returns the token and user the session layer persists

package api

import (
	"context"
)

// AuthAPI groups the /auth endpoints.
type AuthAPI struct {
	c *Client
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// MeResponse is returned by GET /auth/me.
type MeResponse struct {
	User *User `json:"user"`
}

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Origin   string `json:"origin,omitempty"`
}

// Login exchanges credentials for a token.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := a.c.Post(ctx, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns its token.
func (a *AuthAPI) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	var resp AuthResponse
	if err := a.c.Post(ctx, "/auth/register", in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the user the current token belongs to.
func (a *AuthAPI) Me(ctx context.Context) (*MeResponse, error) {
	var resp MeResponse
	if err := a.c.Get(ctx, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
