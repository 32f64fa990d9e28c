package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/logger"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// fakeCartGateway models the server contract: each line carries its own
// item ID, distinct from the product ID, and mutations are keyed by the
// item ID.
type fakeCartGateway struct {
	state       *domain.CartResponse
	nextItem    int
	updateCalls []string
	removeCalls []string
}

func (f *fakeCartGateway) Get(ctx context.Context) (*domain.CartResponse, error) {
	return f.state, nil
}

func (f *fakeCartGateway) AddItem(ctx context.Context, req domain.AddToCartRequest) (*domain.CartResponse, error) {
	f.nextItem++
	items := append([]domain.CartItem{}, f.state.Cart.Items...)
	items = append(items, domain.CartItem{
		ID:        "item-" + string(rune('0'+f.nextItem)),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Price:     10,
	})
	f.state = &domain.CartResponse{Cart: domain.Cart{Items: items}}
	return f.state, nil
}

func (f *fakeCartGateway) UpdateItem(ctx context.Context, itemID string, req domain.UpdateCartItemRequest) (*domain.CartResponse, error) {
	f.updateCalls = append(f.updateCalls, itemID)
	items := append([]domain.CartItem{}, f.state.Cart.Items...)
	found := false
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = req.Quantity
			found = true
		}
	}
	if !found {
		return nil, &domain.APIError{StatusCode: 404, Message: "Cart item not found"}
	}
	f.state = &domain.CartResponse{Cart: domain.Cart{Items: items}}
	return f.state, nil
}

func (f *fakeCartGateway) RemoveItem(ctx context.Context, itemID string) (*domain.CartResponse, error) {
	f.removeCalls = append(f.removeCalls, itemID)
	var items []domain.CartItem
	found := false
	for _, item := range f.state.Cart.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return nil, &domain.APIError{StatusCode: 404, Message: "Cart item not found"}
	}
	f.state = &domain.CartResponse{Cart: domain.Cart{Items: items}}
	return f.state, nil
}

func (f *fakeCartGateway) Clear(ctx context.Context) (*domain.CartResponse, error) {
	f.state = &domain.CartResponse{Cart: domain.Cart{}}
	return f.state, nil
}

func newCartFixture() (*fakeCartGateway, *CartService) {
	gw := &fakeCartGateway{state: &domain.CartResponse{Cart: domain.Cart{}}}
	return gw, NewCartService(gw, logger.NewNop())
}

func TestCartMirrorAdoptsServerState(t *testing.T) {
	gw, svc := newCartFixture()
	ctx := context.Background()

	assert.Nil(t, svc.Current(), "mirror starts empty")

	_, err := svc.Add(ctx, "p1", 2)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "p2", 1)
	require.NoError(t, err)

	current := svc.Current()
	require.NotNil(t, current)
	assert.Len(t, current.Cart.Items, 2)
	assert.Same(t, gw.state, current, "mirror is replaced wholesale with the server response")
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	_, svc := newCartFixture()

	_, err := svc.Add(context.Background(), "p1", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = svc.Add(context.Background(), "p1", -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestMutationsAddressLinesByItemID(t *testing.T) {
	gw, svc := newCartFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, "prod-9", 2)
	require.NoError(t, err)
	itemID := svc.Current().Cart.Items[0].ID
	require.NotEqual(t, "prod-9", itemID)

	_, err = svc.SetQuantity(ctx, "prod-9", 5)
	require.NoError(t, err)
	_, err = svc.Remove(ctx, "prod-9")
	require.NoError(t, err)

	assert.Equal(t, []string{itemID}, gw.updateCalls, "update must carry the line item ID, not the product ID")
	assert.Equal(t, []string{itemID}, gw.removeCalls, "removal must carry the line item ID, not the product ID")
}

func TestSetQuantityZeroBecomesRemoval(t *testing.T) {
	gw, svc := newCartFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, "p1", 2)
	require.NoError(t, err)
	itemID := svc.Current().Cart.Items[0].ID

	_, err = svc.SetQuantity(ctx, "p1", 0)
	require.NoError(t, err)

	assert.Empty(t, gw.updateCalls, "a zero quantity must never reach the update route")
	assert.Equal(t, []string{itemID}, gw.removeCalls)
	assert.Empty(t, svc.Current().Cart.Items)
}

func TestSetQuantityNegativeBecomesRemoval(t *testing.T) {
	gw, svc := newCartFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, "p1", 2)
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, "p1", -1)
	require.NoError(t, err)

	assert.Len(t, gw.removeCalls, 1)
	assert.Empty(t, gw.updateCalls)
}

func TestSetQuantityPositiveUpdatesLine(t *testing.T) {
	gw, svc := newCartFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, "p1", 2)
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, "p1", 5)
	require.NoError(t, err)

	assert.Len(t, gw.updateCalls, 1)
	assert.Empty(t, gw.removeCalls)
	assert.Equal(t, 5, svc.Current().Cart.Items[0].Quantity)
}

func TestMutationWithStaleMirrorRefreshesFirst(t *testing.T) {
	gw, svc := newCartFixture()
	ctx := context.Background()

	// The server already holds a line this process never saw.
	gw.state = &domain.CartResponse{Cart: domain.Cart{Items: []domain.CartItem{
		{ID: "item-7", ProductID: "p1", Quantity: 1, Price: 10},
	}}}

	_, err := svc.SetQuantity(ctx, "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"item-7"}, gw.updateCalls)
}

func TestMutationOnUnknownProductFails(t *testing.T) {
	gw, svc := newCartFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, "p1", 1)
	require.NoError(t, err)

	_, err = svc.Remove(ctx, "never-added")
	assert.ErrorIs(t, err, ErrItemNotInCart)
	assert.Empty(t, gw.removeCalls, "an unresolvable product must not reach the API")
	assert.Equal(t, MsgItemNotInCart, TranslateError(err))
}

func TestDerivedTotals(t *testing.T) {
	_, svc := newCartFixture()
	ctx := context.Background()

	assert.Equal(t, 0, svc.TotalItems())
	assert.Equal(t, 0.0, svc.TotalPrice())

	_, err := svc.Add(ctx, "p1", 2)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "p2", 3)
	require.NoError(t, err)

	assert.Equal(t, 5, svc.TotalItems())
	assert.InDelta(t, 50.0, svc.TotalPrice(), 0.001)
}

func TestClearEmptiesMirror(t *testing.T) {
	_, svc := newCartFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, "p1", 2)
	require.NoError(t, err)
	_, err = svc.Clear(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, svc.TotalItems())
	assert.Empty(t, svc.Current().Cart.Items)
}

func TestResetDropsMirrorLocally(t *testing.T) {
	_, svc := newCartFixture()
	_, err := svc.Add(context.Background(), "p1", 1)
	require.NoError(t, err)

	svc.Reset()
	assert.Nil(t, svc.Current())
	assert.Equal(t, 0, svc.TotalItems())
}
