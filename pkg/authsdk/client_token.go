package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// RefreshGrant exchanges a refresh token for a new access token. Any non-2xx
// answer means the refresh token is invalid or expired.
func (c *SDKClient) RefreshGrant(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	return c.requestToken(ctx, "/auth/refresh", refreshRequest{RefreshToken: refreshToken})
}

// PasswordGrant logs a shopper in with username and password.
func (c *SDKClient) PasswordGrant(ctx context.Context, username, password string) (*TokenResponse, error) {
	return c.requestToken(ctx, "/auth/login", loginRequest{Username: username, Password: password})
}

func (c *SDKClient) requestToken(ctx context.Context, path string, payload any) (*TokenResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, bytes.NewReader(body), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := DecodeJSON(resp, &tokenResp); err != nil {
		return nil, err
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token response from %s carried no access token", path)
	}

	return &tokenResp, nil
}
