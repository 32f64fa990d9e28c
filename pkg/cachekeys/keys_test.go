package cachekeys

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

func TestProductListKeyIsDeterministic(t *testing.T) {
	q := domain.ProductQuery{Search: "antivirus", CategoryID: "c1", Page: 2}
	assert.Equal(t, ProductList(q), ProductList(q))
}

func TestProductListKeyVariesWithFilters(t *testing.T) {
	base := domain.ProductQuery{Search: "antivirus"}
	other := domain.ProductQuery{Search: "antivirus", Page: 2}
	assert.NotEqual(t, ProductList(base), ProductList(other))
}

func TestCategoryAndProductNamespacesNeverCollide(t *testing.T) {
	assert.NotEqual(t, Product("x"), Category("x"))
	assert.NotEqual(t, ProductSlug("x"), CategorySlug("x"))
	assert.NotEqual(t, Product("x"), ProductSlug("x"))
}

func TestListKeysStayBounded(t *testing.T) {
	long := domain.ProductQuery{
		Search: "a very long free text search typed by a user that should not blow up the key length",
		Tags:   "bureautique,securite,os,jeux,serveurs",
	}
	short := domain.ProductQuery{}
	assert.Len(t, ProductList(long), len(ProductList(short)), "hashed keys have a fixed length")
}
