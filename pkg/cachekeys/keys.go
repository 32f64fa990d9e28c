package cachekeys

import (
	"fmt"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
	"gitlab.com/nubelio/licences/storefront-client/pkg/crypto"
)

// ProductList generates the cache key for a filtered product listing.
// The query is hashed so arbitrary filter combinations stay within a
// bounded key length.
func ProductList(q domain.ProductQuery) string {
	return fmt.Sprintf("products:list:%s", crypto.Sha256Hex(q.Values().Encode()))
}

// Product generates the cache key for a single product lookup by ID.
func Product(id string) string {
	return fmt.Sprintf("products:id:%s", id)
}

// ProductSlug generates the cache key for a single product lookup by slug.
func ProductSlug(slug string) string {
	return fmt.Sprintf("products:slug:%s", slug)
}

// CategoryList generates the cache key for a filtered category listing.
func CategoryList(q domain.CategoryQuery) string {
	return fmt.Sprintf("categories:list:%s", crypto.Sha256Hex(q.Values().Encode()))
}

// Category generates the cache key for a single category lookup by ID.
func Category(id string) string {
	return fmt.Sprintf("categories:id:%s", id)
}

// CategorySlug generates the cache key for a single category lookup by slug.
func CategorySlug(slug string) string {
	return fmt.Sprintf("categories:slug:%s", slug)
}
