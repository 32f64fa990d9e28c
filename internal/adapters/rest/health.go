package rest

import (
	"context"
	"net/http"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// HealthAPI wraps the /health probe, used both as a reachability check
// and as the warm-up ping that wakes a cold-started backend.
type HealthAPI struct {
	client *Client
}

// NewHealthAPI creates the health route wrapper.
func NewHealthAPI(client *Client) *HealthAPI {
	return &HealthAPI{client: client}
}

// Check calls the health endpoint.
func (a *HealthAPI) Check(ctx context.Context) (*domain.HealthResponse, error) {
	var resp domain.HealthResponse
	err := a.client.Do(ctx, call{
		method: http.MethodGet,
		route:  "/health",
		path:   "/health",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
