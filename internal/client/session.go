package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// LoginRequest is forwarded to the upstream login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token issued upstream.
type LoginResponse struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user,omitempty"`
}

// Login exchanges operator credentials for a session token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req)
	if err != nil {
		return nil, err
	}

	var resp LoginResponse
	if err := json.Unmarshal(unwrap(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login response has no token")
	}
	return &resp, nil
}
