package shopapi

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

type removeLinesRequest struct {
	Items []domain.LineRef `json:"items"`
}

// RemoveLines drops purchased lines from the shopper's cart.
func (c *Client) RemoveLines(ctx context.Context, refs []domain.LineRef) error {
	return c.call(ctx, http.MethodPost, "/cart/items/remove", removeLinesRequest{Items: refs}, nil, nil)
}
