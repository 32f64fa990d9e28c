package domain

// OrderStatus enumerates the lifecycle states of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// OrderItem is a line item frozen into an order at checkout time.
type OrderItem struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"orderId"`
	ProductID   string  `json:"productId"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	ProductName string  `json:"productName"`
	CreatedAt   string  `json:"createdAt"`
}

// Order is a placed order. WhatsappURL, when present, is the prefilled
// conversation link the server builds for the contact-form checkout.
type Order struct {
	ID            string         `json:"id"`
	OrderNumber   string         `json:"orderNumber"`
	CustomerName  string         `json:"customerName"`
	CustomerEmail string         `json:"customerEmail,omitempty"`
	CustomerPhone string         `json:"customerPhone"`
	TotalAmount   float64        `json:"totalAmount"`
	Status        OrderStatus    `json:"status"`
	WhatsappURL   string         `json:"whatsappUrl,omitempty"`
	Items         []OrderItem    `json:"items"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	DeletedAt     string         `json:"deletedAt,omitempty"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt"`
}

// CreateOrderRequest is the payload for POST /orders. The server builds
// the order from the caller's session cart; Metadata carries free-form
// checkout details (payment method, enterprise flag).
type CreateOrderRequest struct {
	CustomerName  string         `json:"customerName"`
	CustomerEmail string         `json:"customerEmail,omitempty"`
	CustomerPhone string         `json:"customerPhone"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// UpdateOrderStatusRequest is the admin payload for PATCH /orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// OrderListResponse is the paginated payload of GET /orders.
type OrderListResponse struct {
	Orders     []Order         `json:"orders"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}

// OrderQuery holds the query parameters of GET /orders.
type OrderQuery struct {
	Status OrderStatus
}
