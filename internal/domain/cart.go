package domain

// CartItem is one server-owned line item. Price is the unit price the
// server captured when the item was added.
type CartItem struct {
	ID        string   `json:"id"`
	CartID    string   `json:"cartId"`
	ProductID string   `json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// Cart is the server-owned cart, keyed by the session cookie the API
// sets on first contact.
type Cart struct {
	ID        string     `json:"id"`
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
	ExpiresAt string     `json:"expiresAt"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

// CartResponse is the envelope every cart endpoint returns. Totals are
// server-computed; the client mirrors them but also derives its own
// read-only aggregates from Items.
type CartResponse struct {
	Cart       Cart    `json:"cart"`
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
}

// AddToCartRequest is the payload for POST /cart/items.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest is the payload for PATCH /cart/items/:id.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
