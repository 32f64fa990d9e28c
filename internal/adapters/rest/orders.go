package rest

import (
	"context"
	"net/http"
	"net/url"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// OrdersAPI wraps the /orders routes.
type OrdersAPI struct {
	client *Client
}

// NewOrdersAPI creates the orders route wrapper.
func NewOrdersAPI(client *Client) *OrdersAPI {
	return &OrdersAPI{client: client}
}

// Create submits a checkout for the current cart.
func (a *OrdersAPI) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	var order domain.Order
	err := a.client.Do(ctx, call{
		method: http.MethodPost,
		route:  "/orders",
		path:   "/orders",
		body:   req,
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders matching the query.
func (a *OrdersAPI) List(ctx context.Context, q domain.OrderQuery) (*domain.OrderListResponse, error) {
	var resp domain.OrderListResponse
	err := a.client.Do(ctx, call{
		method: http.MethodGet,
		route:  "/orders",
		path:   "/orders",
		query:  q.Values(),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns one order by ID.
func (a *OrdersAPI) Get(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := a.client.Do(ctx, call{
		method: http.MethodGet,
		route:  "/orders/:id",
		path:   "/orders/" + url.PathEscape(id),
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByNumber returns one order by its human-facing order number.
func (a *OrdersAPI) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var order domain.Order
	err := a.client.Do(ctx, call{
		method: http.MethodGet,
		route:  "/orders/number/:orderNumber",
		path:   "/orders/number/" + url.PathEscape(orderNumber),
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus moves an order to a new status (admin).
func (a *OrdersAPI) UpdateStatus(ctx context.Context, id string, req domain.UpdateOrderStatusRequest) (*domain.Order, error) {
	var order domain.Order
	err := a.client.Do(ctx, call{
		method: http.MethodPatch,
		route:  "/orders/:id/status",
		path:   "/orders/" + url.PathEscape(id) + "/status",
		body:   req,
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Cancel cancels an order.
func (a *OrdersAPI) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := a.client.Do(ctx, call{
		method: http.MethodPatch,
		route:  "/orders/:id/cancel",
		path:   "/orders/" + url.PathEscape(id) + "/cancel",
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
