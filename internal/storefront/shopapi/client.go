// Package shopapi holds the commerce API collaborators used by checkout and
// reconciliation. Every call goes through an authenticated session, so a
// rejected token is refreshed and retried once before the call fails.
package shopapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/storefront/pkg/authsdk"
)

// Doer sends an authenticated request. *authsdk.Session implements it.
type Doer interface {
	Do(ctx context.Context, method, path string, body []byte, headers map[string]string) (*http.Response, error)
}

// Client implements the service collaborators (orders, promotions,
// payments, cart) over one Doer.
type Client struct {
	api Doer
}

func NewClient(api Doer) *Client {
	return &Client{api: api}
}

// call sends payload as JSON (nil for no body) and decodes the response into
// out (nil to discard it).
func (c *Client) call(ctx context.Context, method, path string, payload any, headers map[string]string, out any) error {
	var body []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = b
	}

	if headers == nil {
		headers = map[string]string{}
	}
	headers["Accept"] = "application/json"

	resp, err := c.api.Do(ctx, method, path, body, headers)
	if err != nil {
		return err
	}
	return authsdk.DecodeJSON(resp, out)
}
