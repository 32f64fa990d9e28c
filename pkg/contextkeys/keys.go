package contextkeys

// contextKey is an unexported type for context keys to avoid collisions.
type contextKey string

const (
	// RequestIDKey is the context key for the per-request correlation ID
	// the HTTP client attaches to every outbound call.
	RequestIDKey contextKey = "request_id"

	// OperationKey is the context key for the logical operation name
	// (e.g. "products.list", "cart.add_item").
	OperationKey contextKey = "operation"

	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey contextKey = "user_id"

	// SessionIDKey is the context key for the server-issued cart
	// session identifier, when known.
	SessionIDKey contextKey = "session_id"
)

// String makes contextKey satisfy fmt.Stringer to help with debugging/logging of keys themselves.
func (c contextKey) String() string {
	return string(c)
}
