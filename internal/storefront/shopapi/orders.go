package shopapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

// CreateOrder creates an order for the given lines.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error) {
	var order domain.Order
	if err := c.call(ctx, http.MethodPost, "/orders", req, nil, &order); err != nil {
		return domain.Order{}, err
	}
	if order.OrderNumber == "" {
		return domain.Order{}, errors.New("order response has no order number")
	}
	return order, nil
}
