package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// LoginData is the nested payload of a successful login envelope. All four
// fields are required; a success response missing any of them is rejected
// as [ErrBadEnvelope].
type LoginData struct {
	Token       string `json:"token"`
	UserID      string `json:"_id"`
	Username    string `json:"username"`
	AccessLevel string `json:"accessLevel"`
}

// Login calls POST /auth/login. Credential validation is the caller's
// responsibility; this method only enforces the wire contract.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginData, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	var data LoginData
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &data); err != nil {
		return nil, err
	}
	if data.Token == "" || data.UserID == "" || data.Username == "" || data.AccessLevel == "" {
		return nil, fmt.Errorf("%w: missing authentication data", ErrBadEnvelope)
	}

	return &data, nil
}

// Refresh calls POST /auth/refresh and returns the replacement token.
// The endpoint has shipped two shapes over time: a flat {token} and the
// standard nested {success, data:{token}} envelope. Both are accepted;
// anything else is [ErrBadEnvelope].
func (c *Client) Refresh(ctx context.Context, userID string) (string, error) {
	raw, status, err := c.request(ctx, http.MethodPost, "/auth/refresh", map[string]string{"userId": userID})
	if err != nil {
		return "", err
	}

	if status < 200 || status >= 300 {
		return "", &StatusError{StatusCode: status, Message: serverMessage(raw)}
	}

	var nested struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil && nested.Success && nested.Data.Token != "" {
		return nested.Data.Token, nil
	}

	var flat struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &flat); err == nil && flat.Token != "" {
		return flat.Token, nil
	}

	return "", fmt.Errorf("%w: no token in refresh response", ErrBadEnvelope)
}

// Logout calls POST /auth/logout. The session store clears local state
// regardless of the outcome; this is a best-effort server-side notification.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}
