package rest

import (
	"context"
	"net/http"
	"net/url"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// CartAPI wraps the /cart routes. The server owns the cart; every
// mutation returns the complete post-mutation cart, which the caller
// adopts wholesale. Session affinity rides on the cookie jar.
type CartAPI struct {
	client *Client
}

// NewCartAPI creates the cart route wrapper.
func NewCartAPI(client *Client) *CartAPI {
	return &CartAPI{client: client}
}

// Get returns the current cart for this session.
func (a *CartAPI) Get(ctx context.Context) (*domain.CartResponse, error) {
	var resp domain.CartResponse
	err := a.client.Do(ctx, call{
		method: http.MethodGet,
		route:  "/cart",
		path:   "/cart",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddItem adds a product to the cart and returns the updated cart.
func (a *CartAPI) AddItem(ctx context.Context, req domain.AddToCartRequest) (*domain.CartResponse, error) {
	var resp domain.CartResponse
	err := a.client.Do(ctx, call{
		method: http.MethodPost,
		route:  "/cart/items",
		path:   "/cart/items",
		body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateItem sets the quantity of one cart line, addressed by the line
// item ID the server assigned (not the product ID), and returns the
// updated cart.
func (a *CartAPI) UpdateItem(ctx context.Context, itemID string, req domain.UpdateCartItemRequest) (*domain.CartResponse, error) {
	var resp domain.CartResponse
	err := a.client.Do(ctx, call{
		method: http.MethodPatch,
		route:  "/cart/items/:itemId",
		path:   "/cart/items/" + url.PathEscape(itemID),
		body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveItem deletes one cart line, addressed by its line item ID, and
// returns the updated cart.
func (a *CartAPI) RemoveItem(ctx context.Context, itemID string) (*domain.CartResponse, error) {
	var resp domain.CartResponse
	err := a.client.Do(ctx, call{
		method: http.MethodDelete,
		route:  "/cart/items/:itemId",
		path:   "/cart/items/" + url.PathEscape(itemID),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Clear empties the cart and returns the now-empty cart.
func (a *CartAPI) Clear(ctx context.Context) (*domain.CartResponse, error) {
	var resp domain.CartResponse
	err := a.client.Do(ctx, call{
		method: http.MethodDelete,
		route:  "/cart",
		path:   "/cart",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
