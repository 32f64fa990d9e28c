package rest

import (
	"context"
	"net/http"
	"net/url"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// CategoriesAPI wraps the /categories routes, including the CRUD
// variants reserved for admin accounts.
type CategoriesAPI struct {
	client *Client
}

// NewCategoriesAPI creates the categories route wrapper.
func NewCategoriesAPI(client *Client) *CategoriesAPI {
	return &CategoriesAPI{client: client}
}

// List returns categories matching the query.
func (a *CategoriesAPI) List(ctx context.Context, q domain.CategoryQuery) (*domain.CategoryListResponse, error) {
	var resp domain.CategoryListResponse
	err := a.client.Do(ctx, call{
		method: http.MethodGet,
		route:  "/categories",
		path:   "/categories",
		query:  q.Values(),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns one category by ID.
func (a *CategoriesAPI) Get(ctx context.Context, id string) (*domain.Category, error) {
	var cat domain.Category
	err := a.client.Do(ctx, call{
		method: http.MethodGet,
		route:  "/categories/:id",
		path:   "/categories/" + url.PathEscape(id),
	}, &cat)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetBySlug returns one category by slug.
func (a *CategoriesAPI) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var cat domain.Category
	err := a.client.Do(ctx, call{
		method: http.MethodGet,
		route:  "/categories/slug/:slug",
		path:   "/categories/slug/" + url.PathEscape(slug),
	}, &cat)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Create adds a category (admin).
func (a *CategoriesAPI) Create(ctx context.Context, req domain.CreateCategoryRequest) (*domain.Category, error) {
	var cat domain.Category
	err := a.client.Do(ctx, call{
		method: http.MethodPost,
		route:  "/categories",
		path:   "/categories",
		body:   req,
	}, &cat)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Update modifies a category (admin).
func (a *CategoriesAPI) Update(ctx context.Context, id string, req domain.UpdateCategoryRequest) (*domain.Category, error) {
	var cat domain.Category
	err := a.client.Do(ctx, call{
		method: http.MethodPut,
		route:  "/categories/:id",
		path:   "/categories/" + url.PathEscape(id),
		body:   req,
	}, &cat)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Toggle flips a category's active flag (admin).
func (a *CategoriesAPI) Toggle(ctx context.Context, id string) (*domain.Category, error) {
	var cat domain.Category
	err := a.client.Do(ctx, call{
		method: http.MethodPatch,
		route:  "/categories/:id/toggle",
		path:   "/categories/" + url.PathEscape(id) + "/toggle",
	}, &cat)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Delete soft-deletes a category (admin).
func (a *CategoriesAPI) Delete(ctx context.Context, id string) (*domain.Category, error) {
	var cat domain.Category
	err := a.client.Do(ctx, call{
		method: http.MethodDelete,
		route:  "/categories/:id",
		path:   "/categories/" + url.PathEscape(id),
	}, &cat)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Restore reverses a soft delete (admin).
func (a *CategoriesAPI) Restore(ctx context.Context, id string) (*domain.Category, error) {
	var cat domain.Category
	err := a.client.Do(ctx, call{
		method: http.MethodPatch,
		route:  "/categories/:id/restore",
		path:   "/categories/" + url.PathEscape(id) + "/restore",
	}, &cat)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}
