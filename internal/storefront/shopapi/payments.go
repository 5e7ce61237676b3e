package shopapi

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

// IdempotencyKeyHeader lets the server drop a repeated confirmation of the
// same checkout attempt.
const IdempotencyKeyHeader = "Idempotency-Key"

// Confirm finalizes a payment. A non-2xx answer is returned as
// *authsdk.APIError carrying the server's code.
func (c *Client) Confirm(ctx context.Context, req domain.ConfirmRequest, idempotencyKey string) (domain.Confirmation, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers[IdempotencyKeyHeader] = idempotencyKey
	}

	var conf domain.Confirmation
	if err := c.call(ctx, http.MethodPost, "/payments/confirm", req, headers, &conf); err != nil {
		return domain.Confirmation{}, err
	}
	return conf, nil
}
