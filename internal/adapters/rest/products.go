package rest

import (
	"context"
	"net/http"
	"net/url"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// ProductsAPI wraps the /products routes, including the CRUD variants
// reserved for admin accounts.
type ProductsAPI struct {
	client *Client
}

// NewProductsAPI creates the products route wrapper.
func NewProductsAPI(client *Client) *ProductsAPI {
	return &ProductsAPI{client: client}
}

// List returns products matching the query.
func (a *ProductsAPI) List(ctx context.Context, q domain.ProductQuery) (*domain.ProductListResponse, error) {
	var resp domain.ProductListResponse
	err := a.client.Do(ctx, call{
		method: http.MethodGet,
		route:  "/products",
		path:   "/products",
		query:  q.Values(),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns one product by ID.
func (a *ProductsAPI) Get(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := a.client.Do(ctx, call{
		method: http.MethodGet,
		route:  "/products/:id",
		path:   "/products/" + url.PathEscape(id),
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBySlug returns one product by slug.
func (a *ProductsAPI) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var p domain.Product
	err := a.client.Do(ctx, call{
		method: http.MethodGet,
		route:  "/products/slug/:slug",
		path:   "/products/slug/" + url.PathEscape(slug),
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create adds a product (admin).
func (a *ProductsAPI) Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	var p domain.Product
	err := a.client.Do(ctx, call{
		method: http.MethodPost,
		route:  "/products",
		path:   "/products",
		body:   req,
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update modifies a product (admin).
func (a *ProductsAPI) Update(ctx context.Context, id string, req domain.UpdateProductRequest) (*domain.Product, error) {
	var p domain.Product
	err := a.client.Do(ctx, call{
		method: http.MethodPut,
		route:  "/products/:id",
		path:   "/products/" + url.PathEscape(id),
		body:   req,
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Toggle flips a product's active flag (admin).
func (a *ProductsAPI) Toggle(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := a.client.Do(ctx, call{
		method: http.MethodPatch,
		route:  "/products/:id/toggle",
		path:   "/products/" + url.PathEscape(id) + "/toggle",
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete soft-deletes a product (admin).
func (a *ProductsAPI) Delete(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := a.client.Do(ctx, call{
		method: http.MethodDelete,
		route:  "/products/:id",
		path:   "/products/" + url.PathEscape(id),
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Restore reverses a soft delete (admin).
func (a *ProductsAPI) Restore(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := a.client.Do(ctx, call{
		method: http.MethodPatch,
		route:  "/products/:id/restore",
		path:   "/products/" + url.PathEscape(id) + "/restore",
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
