package shopapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

// Coupon fetches one of the shopper's coupons by id.
func (c *Client) Coupon(ctx context.Context, id string) (domain.Coupon, error) {
	var coupon domain.Coupon
	if err := c.call(ctx, http.MethodGet, "/coupons/"+url.PathEscape(id), nil, nil, &coupon); err != nil {
		return domain.Coupon{}, err
	}
	return coupon, nil
}

// Policies returns the active discount policies relevant to productIDs,
// including order-scoped ones.
func (c *Client) Policies(ctx context.Context, productIDs []string) ([]domain.Policy, error) {
	q := url.Values{}
	for _, id := range productIDs {
		q.Add("productId", id)
	}

	path := "/discount-policies"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var policies []domain.Policy
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &policies); err != nil {
		return nil, err
	}
	return policies, nil
}
