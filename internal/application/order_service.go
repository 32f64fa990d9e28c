package application

import (
	"context"
	"net/http"
	"strings"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// OrderGateway is the slice of the REST boundary the order service
// consumes.
type OrderGateway interface {
	Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	List(ctx context.Context, q domain.OrderQuery) (*domain.OrderListResponse, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, req domain.UpdateOrderStatusRequest) (*domain.Order, error)
	Cancel(ctx context.Context, id string) (*domain.Order, error)
}

// OrderService turns the mirrored cart into orders and reads them back.
type OrderService struct {
	api    OrderGateway
	cart   *CartService
	logger domain.Logger
}

// NewOrderService creates the order service.
func NewOrderService(api OrderGateway, cart *CartService, logger domain.Logger) *OrderService {
	if api == nil {
		panic("api cannot be nil in NewOrderService")
	}
	if cart == nil {
		panic("cart cannot be nil in NewOrderService")
	}
	if logger == nil {
		panic("logger cannot be nil in NewOrderService")
	}
	return &OrderService{api: api, cart: cart, logger: logger}
}

// Checkout places an order from the current session cart. Name and
// phone are required, email optional; metadata carries free-form
// checkout details such as the payment method. The server consumes the
// cart on success, so the mirror is refreshed afterwards.
func (s *OrderService) Checkout(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	if req.CustomerName == "" {
		return nil, ErrCheckoutNameNeeded
	}
	if req.CustomerPhone == "" {
		return nil, ErrCheckoutPhoneNeeded
	}

	order, err := s.api.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Order placed",
		"order_number", order.OrderNumber, "total_amount", order.TotalAmount)

	if _, err := s.cart.Refresh(ctx); err != nil {
		// The order stands regardless; the mirror catches up on the
		// next cart read.
		s.logger.Warn(ctx, "Failed to refresh cart after checkout", "error", err.Error())
	}
	return order, nil
}

// List returns orders matching q.
func (s *OrderService) List(ctx context.Context, q domain.OrderQuery) (*domain.OrderListResponse, error) {
	return s.api.List(ctx, q)
}

// Get returns one order by ID, mapping 404 to ErrNotFound.
func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.api.Get(ctx, id)
	if err != nil {
		return nil, mapOrderNotFound(err, id)
	}
	return order, nil
}

// GetByNumber returns one order by its order number.
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	order, err := s.api.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, mapOrderNotFound(err, orderNumber)
	}
	return order, nil
}

// UpdateStatus moves an order to a new status (admin).
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.api.UpdateStatus(ctx, id, domain.UpdateOrderStatusRequest{Status: status})
	if err != nil {
		return nil, mapOrderNotFound(err, id)
	}
	s.logger.Info(ctx, "Order status updated", "order_id", id, "status", string(status))
	return order, nil
}

// Cancel cancels an order.
func (s *OrderService) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.api.Cancel(ctx, id)
	if err != nil {
		return nil, mapOrderNotFound(err, id)
	}
	s.logger.Info(ctx, "Order cancelled", "order_id", id)
	return order, nil
}

func mapOrderNotFound(err error, ref string) error {
	if domain.IsStatus(err, http.StatusNotFound) {
		return mapNotFound(err, "order %s", ref)
	}
	return err
}
