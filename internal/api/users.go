// ABOUTME: Users call group: listing, lookup, and manager listing
// ABOUTME: Backs the admin users view

package api

import (
	"context"
	"encoding/json"
)

// UsersAPI groups the /users endpoints.
type UsersAPI struct {
	c *Client
}

// List returns users, optionally filtered (for example by origin).
func (u *UsersAPI) List(ctx context.Context, params map[string]string) ([]User, error) {
	var raw json.RawMessage
	if err := u.c.Get(ctx, "/users", params, &raw); err != nil {
		return nil, err
	}
	return decodeList[User](raw)
}

// Get returns a single user.
func (u *UsersAPI) Get(ctx context.Context, id string) (*User, error) {
	var user User
	if err := u.c.Get(ctx, "/users/"+pathID(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Managers returns the users with the manager role.
func (u *UsersAPI) Managers(ctx context.Context) ([]User, error) {
	var raw json.RawMessage
	if err := u.c.Get(ctx, "/users/managers/list", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[User](raw)
}
