package query

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machbazar/storefront/internal/cart/domain"
	"github.com/machbazar/storefront/internal/cart/repository"
	"github.com/machbazar/storefront/internal/cart/store"
)

func TestGetCart(t *testing.T) {
	storage, err := repository.OpenBoltStorage(filepath.Join(t.TempDir(), "carts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	sessions := store.NewSessions(storage)
	id := store.NewSessionID()

	require.NoError(t, sessions.Do(context.Background(), id, func(st *store.Store) error {
		st.AddToCart(context.Background(), domain.Product{ProductID: "ilish", SalePrice: 1250}, 1.5, nil)
		return nil
	}))

	view, err := NewGetCartHandler(sessions).Handle(context.Background(), GetCartQuery{SessionID: id, Lang: "en"})
	require.NoError(t, err)

	assert.Equal(t, id, view.SessionID)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1875.0, view.Items[0].LineTotal)
	assert.Equal(t, "৳1,250", view.Items[0].UnitPriceText)
	assert.Equal(t, "৳1,875", view.Items[0].LineTotalText)
	assert.Equal(t, "৳1,875", view.TotalText)
	assert.Equal(t, 1.5, view.ItemCount)
}

func TestGetCart_UnknownSessionIsEmpty(t *testing.T) {
	storage, err := repository.OpenBoltStorage(filepath.Join(t.TempDir(), "carts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	view, err := NewGetCartHandler(store.NewSessions(storage)).Handle(context.Background(), GetCartQuery{SessionID: store.NewSessionID()})
	require.NoError(t, err)
	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
	assert.Equal(t, "৳0", view.TotalText)
}
