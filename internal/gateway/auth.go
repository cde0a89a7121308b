package gateway

import (
	"context"
	"net/http"
)

type AuthResult struct {
	Token string `json:"token"`
	User  struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

// Login exchanges credentials for a backend bearer token. Credentials are
// forwarded verbatim and never stored here.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var reply AuthResult
	if err := c.doJSON(ctx, "login", http.MethodPost, "/api/auth/login", "", body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
