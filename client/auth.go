package client

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password. Empty fields fail locally
// before any request is issued.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	if err := requireField("email", email); err != nil {
		return nil, err
	}
	if err := requireField("password", password); err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account and returns the created user.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := requireField("nic", req.NIC); err != nil {
		return nil, err
	}
	if err := requireField("email", req.Email); err != nil {
		return nil, err
	}
	if err := requireField("password", req.Password); err != nil {
		return nil, err
	}

	var out User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}
