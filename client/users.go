package client

import (
	"context"
	"net/http"
)

// Profile returns the authenticated user's account.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile updates the authenticated user's mutable fields.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPut, "/api/users/me", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// Deactivate disables the authenticated account. The caller is expected to
// clear the stored session afterwards.
func (c *Client) Deactivate(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/users/deactivate", nil, nil, true)
}
