package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/tokenstore"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// recordingServer answers every request with the given payload and
// records method and path for route assertions.
func recordingServer(t *testing.T, payload any) (*httptest.Server, *[]string) {
	t.Helper()
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.RequestURI())
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(server.Close)
	return server, &seen
}

func TestProductRoutes(t *testing.T) {
	server, seen := recordingServer(t, domain.Product{ID: "p1"})
	api := NewProductsAPI(testClient(t, server.URL, tokenstore.NewMemoryStore()))
	ctx := context.Background()

	_, err := api.Get(ctx, "p1")
	require.NoError(t, err)
	_, err = api.GetBySlug(ctx, "office-2024")
	require.NoError(t, err)
	_, err = api.Toggle(ctx, "p1")
	require.NoError(t, err)
	_, err = api.Restore(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /products/p1",
		"GET /products/slug/office-2024",
		"PATCH /products/p1/toggle",
		"PATCH /products/p1/restore",
	}, *seen)
}

func TestProductListEncodesQuery(t *testing.T) {
	server, seen := recordingServer(t, domain.ProductListResponse{})
	api := NewProductsAPI(testClient(t, server.URL, tokenstore.NewMemoryStore()))

	_, err := api.List(context.Background(), domain.ProductQuery{
		Search:     "antivirus",
		CategoryID: "c1",
		Page:       2,
		Limit:      10,
	})
	require.NoError(t, err)

	require.Len(t, *seen, 1)
	assert.Equal(t, "GET /products?categoryId=c1&limit=10&page=2&q=antivirus", (*seen)[0])
}

func TestCategoryRoutes(t *testing.T) {
	server, seen := recordingServer(t, domain.Category{ID: "c1"})
	api := NewCategoriesAPI(testClient(t, server.URL, tokenstore.NewMemoryStore()))
	ctx := context.Background()

	_, err := api.Get(ctx, "c1")
	require.NoError(t, err)
	_, err = api.GetBySlug(ctx, "bureautique")
	require.NoError(t, err)
	_, err = api.Delete(ctx, "c1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /categories/c1",
		"GET /categories/slug/bureautique",
		"DELETE /categories/c1",
	}, *seen)
}

func TestCartRoutes(t *testing.T) {
	server, seen := recordingServer(t, domain.CartResponse{})
	api := NewCartAPI(testClient(t, server.URL, tokenstore.NewMemoryStore()))
	ctx := context.Background()

	_, err := api.Get(ctx)
	require.NoError(t, err)
	_, err = api.AddItem(ctx, domain.AddToCartRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	_, err = api.UpdateItem(ctx, "item-1", domain.UpdateCartItemRequest{Quantity: 3})
	require.NoError(t, err)
	_, err = api.RemoveItem(ctx, "item-1")
	require.NoError(t, err)
	_, err = api.Clear(ctx)
	require.NoError(t, err)

	// Line mutations are addressed by the server-assigned item ID.
	assert.Equal(t, []string{
		"GET /cart",
		"POST /cart/items",
		"PATCH /cart/items/item-1",
		"DELETE /cart/items/item-1",
		"DELETE /cart",
	}, *seen)
}

func TestOrderRoutes(t *testing.T) {
	server, seen := recordingServer(t, domain.Order{ID: "o1"})
	api := NewOrdersAPI(testClient(t, server.URL, tokenstore.NewMemoryStore()))
	ctx := context.Background()

	_, err := api.Get(ctx, "o1")
	require.NoError(t, err)
	_, err = api.GetByNumber(ctx, "CMD-001")
	require.NoError(t, err)
	_, err = api.UpdateStatus(ctx, "o1", domain.UpdateOrderStatusRequest{Status: domain.OrderConfirmed})
	require.NoError(t, err)
	_, err = api.Cancel(ctx, "o1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /orders/o1",
		"GET /orders/number/CMD-001",
		"PATCH /orders/o1/status",
		"PATCH /orders/o1/cancel",
	}, *seen)
}

func TestPathParamsAreEscaped(t *testing.T) {
	server, seen := recordingServer(t, domain.Product{})
	api := NewProductsAPI(testClient(t, server.URL, tokenstore.NewMemoryStore()))

	_, err := api.Get(context.Background(), "a b/c")
	require.NoError(t, err)
	require.Len(t, *seen, 1)
	assert.Equal(t, "GET /products/a%20b%2Fc", (*seen)[0])
}
