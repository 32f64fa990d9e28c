package application

import (
	"context"
	"sync"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// CartGateway is the slice of the REST boundary the cart mirror
// consumes. Line mutations are keyed by the server-assigned line item
// ID, not the product ID.
type CartGateway interface {
	Get(ctx context.Context) (*domain.CartResponse, error)
	AddItem(ctx context.Context, req domain.AddToCartRequest) (*domain.CartResponse, error)
	UpdateItem(ctx context.Context, itemID string, req domain.UpdateCartItemRequest) (*domain.CartResponse, error)
	RemoveItem(ctx context.Context, itemID string) (*domain.CartResponse, error)
	Clear(ctx context.Context) (*domain.CartResponse, error)
}

// CartService mirrors the server-owned cart. Every mutation sends the
// change to the API and replaces the mirror wholesale with the
// response; the mirror is never edited in place, so it cannot drift
// from the server's view.
type CartService struct {
	api    CartGateway
	logger domain.Logger

	mu     sync.RWMutex
	mirror *domain.CartResponse
}

// NewCartService creates an empty mirror; Refresh populates it.
func NewCartService(api CartGateway, logger domain.Logger) *CartService {
	if api == nil {
		panic("api cannot be nil in NewCartService")
	}
	if logger == nil {
		panic("logger cannot be nil in NewCartService")
	}
	return &CartService{api: api, logger: logger}
}

// Refresh replaces the mirror with the server's current cart.
func (s *CartService) Refresh(ctx context.Context) (*domain.CartResponse, error) {
	resp, err := s.api.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.adopt(resp), nil
}

// Add puts quantity units of a product in the cart. The server decides
// whether that creates a new line or merges into an existing one; the
// mirror just adopts the result.
func (s *CartService) Add(ctx context.Context, productID string, quantity int) (*domain.CartResponse, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	resp, err := s.api.AddItem(ctx, domain.AddToCartRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Item added to cart", "product_id", productID, "quantity", quantity)
	return s.adopt(resp), nil
}

// SetQuantity sets the quantity of the line holding a product. A
// quantity of zero or below is a removal, never an error and never a
// negative line. The server keys lines by their own item ID, so the
// product is resolved against the mirror first.
func (s *CartService) SetQuantity(ctx context.Context, productID string, quantity int) (*domain.CartResponse, error) {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}
	itemID, err := s.resolveItemID(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp, err := s.api.UpdateItem(ctx, itemID, domain.UpdateCartItemRequest{Quantity: quantity})
	if err != nil {
		return nil, err
	}
	return s.adopt(resp), nil
}

// Remove deletes the line holding a product from the cart.
func (s *CartService) Remove(ctx context.Context, productID string) (*domain.CartResponse, error) {
	itemID, err := s.resolveItemID(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp, err := s.api.RemoveItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Item removed from cart", "product_id", productID, "item_id", itemID)
	return s.adopt(resp), nil
}

// Clear empties the cart server-side and mirrors the empty result.
func (s *CartService) Clear(ctx context.Context) (*domain.CartResponse, error) {
	resp, err := s.api.Clear(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Cart cleared")
	return s.adopt(resp), nil
}

// Current returns the last mirrored cart, or nil before the first
// successful call.
func (s *CartService) Current() *domain.CartResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mirror
}

// TotalItems is the unit count derived from the mirrored lines, not
// the server-reported aggregate, so the two can be cross-checked.
func (s *CartService) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.mirror == nil {
		return 0
	}
	total := 0
	for _, item := range s.mirror.Cart.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the price sum derived from the mirrored lines.
func (s *CartService) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.mirror == nil {
		return 0
	}
	total := 0.0
	for _, item := range s.mirror.Cart.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Reset drops the mirror without touching the server, for logout.
func (s *CartService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mirror = nil
}

// resolveItemID maps a product to the ID of the cart line holding it.
// A stale or empty mirror is refreshed once before giving up.
func (s *CartService) resolveItemID(ctx context.Context, productID string) (string, error) {
	if id, ok := s.lookupItemID(productID); ok {
		return id, nil
	}
	if _, err := s.Refresh(ctx); err != nil {
		return "", err
	}
	if id, ok := s.lookupItemID(productID); ok {
		return id, nil
	}
	return "", ErrItemNotInCart
}

func (s *CartService) lookupItemID(productID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.mirror == nil {
		return "", false
	}
	for _, item := range s.mirror.Cart.Items {
		if item.ProductID == productID {
			return item.ID, true
		}
	}
	return "", false
}

func (s *CartService) adopt(resp *domain.CartResponse) *domain.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mirror = resp
	return resp
}
