package command

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machbazar/storefront/internal/cart/domain"
	"github.com/machbazar/storefront/internal/cart/repository"
	"github.com/machbazar/storefront/internal/cart/store"
	"github.com/machbazar/storefront/internal/catalog/catalogtest"
	catalogdomain "github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/internal/customize"
)

func newSessions(t *testing.T) *store.Sessions {
	t.Helper()
	storage, err := repository.OpenBoltStorage(filepath.Join(t.TempDir(), "carts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	return store.NewSessions(storage)
}

func products() *catalogtest.ProductRepository {
	return catalogtest.NewProductRepository(
		catalogdomain.Product{ProductID: "rui", Slug: "rui", NameEn: "Rui", BasePrice: 400, DiscountPercentage: 10,
			StockKg: 6, MinOrderKg: 0.5, MaxOrderKg: 5, Published: true,
			CuttingSizes: []string{"small", "medium"}, HeadCutOptions: []string{"with head"}},
		catalogdomain.Product{ProductID: "chingri", Slug: "chingri", NameEn: "Prawn", BasePrice: 900,
			StockKg: 0, MinOrderKg: 0.5, MaxOrderKg: 5, Published: true},
		catalogdomain.Product{ProductID: "draft", Slug: "draft", NameEn: "Draft", BasePrice: 10, StockKg: 5, MinOrderKg: 1},
	)
}

func TestAddItem(t *testing.T) {
	sessions := newSessions(t)
	h := NewAddItemHandler(sessions, products())
	id := store.NewSessionID()

	cart, err := h.Handle(context.Background(), AddItemCommand{
		SessionID: id, ProductID: "rui", QuantityKg: 1.5,
		Options: &domain.SelectedOptions{CuttingSize: "small"},
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 360.0, cart.Items[0].Product.SalePrice)
	assert.Equal(t, 540.0, cart.Total)

	cart, err = h.Handle(context.Background(), AddItemCommand{SessionID: id, ProductID: "rui", QuantityKg: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3.5, cart.Items[0].Quantity)
	assert.Equal(t, "small", cart.Items[0].SelectedOptions.CuttingSize, "merge without options keeps them")

	st, err := sessions.Open(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 3.5, st.GetItemQuantity("rui"))
}

func TestAddItem_Bounds(t *testing.T) {
	h := NewAddItemHandler(newSessions(t), products())
	id := store.NewSessionID()

	tests := []struct {
		name    string
		cmd     AddItemCommand
		field   string
		message string
	}{
		{"zero", AddItemCommand{ProductID: "rui", QuantityKg: 0}, "quantity", "must be greater than 0"},
		{"below minimum", AddItemCommand{ProductID: "rui", QuantityKg: 0.25}, "quantity", "must be at least 0.5 kg"},
		{"above maximum", AddItemCommand{ProductID: "rui", QuantityKg: 5.5}, "quantity", "must not exceed 5 kg in total"},
		{"out of stock", AddItemCommand{ProductID: "chingri", QuantityKg: 1}, "quantity", "product is out of stock"},
		{"unknown option", AddItemCommand{ProductID: "rui", QuantityKg: 1,
			Options: &domain.SelectedOptions{HeadCut: "without head"}}, "headCut", `"without head" is not offered for this product`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cmd.SessionID = id
			_, err := h.Handle(context.Background(), tt.cmd)
			errs, ok := catalogdomain.AsValidation(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tt.message, errs.Fields()[tt.field])
		})
	}
}

func TestAddItem_UnpublishedOrMissing(t *testing.T) {
	h := NewAddItemHandler(newSessions(t), products())

	_, err := h.Handle(context.Background(), AddItemCommand{SessionID: store.NewSessionID(), ProductID: "draft", QuantityKg: 1})
	assert.ErrorIs(t, err, catalogdomain.ErrNotFound)

	_, err = h.Handle(context.Background(), AddItemCommand{SessionID: store.NewSessionID(), ProductID: "nope", QuantityKg: 1})
	assert.ErrorIs(t, err, catalogdomain.ErrNotFound)

	_, err = h.Handle(context.Background(), AddItemCommand{SessionID: "not-a-uuid", ProductID: "rui", QuantityKg: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}

func TestUpdateAndRemove(t *testing.T) {
	sessions := newSessions(t)
	id := store.NewSessionID()
	_, err := NewAddItemHandler(sessions, products()).Handle(context.Background(), AddItemCommand{SessionID: id, ProductID: "rui", QuantityKg: 1})
	require.NoError(t, err)

	update := NewUpdateItemHandler(sessions)
	cart, err := update.Handle(context.Background(), UpdateItemCommand{SessionID: id, ProductID: "rui", QuantityKg: 4})
	require.NoError(t, err)
	assert.Equal(t, 1440.0, cart.Total)

	_, err = update.Handle(context.Background(), UpdateItemCommand{SessionID: id, ProductID: "rui", QuantityKg: 9})
	_, ok := catalogdomain.AsValidation(err)
	assert.True(t, ok)

	_, err = update.Handle(context.Background(), UpdateItemCommand{SessionID: id, ProductID: "ilish", QuantityKg: 1})
	assert.ErrorIs(t, err, catalogdomain.ErrNotFound)

	cart, err = update.Handle(context.Background(), UpdateItemCommand{SessionID: id, ProductID: "rui", QuantityKg: 0})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)

	cart, err = NewRemoveItemHandler(sessions).Handle(context.Background(), RemoveItemCommand{SessionID: id, ProductID: "rui"})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestUpdateItem_NegativeQuantityRemovesLine(t *testing.T) {
	sessions := newSessions(t)
	id := store.NewSessionID()
	_, err := NewAddItemHandler(sessions, products()).Handle(context.Background(), AddItemCommand{SessionID: id, ProductID: "rui", QuantityKg: 1})
	require.NoError(t, err)

	update := NewUpdateItemHandler(sessions)
	cart, err := update.Handle(context.Background(), UpdateItemCommand{SessionID: id, ProductID: "rui", QuantityKg: -2})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)

	_, err = update.Handle(context.Background(), UpdateItemCommand{SessionID: id, ProductID: "rui", QuantityKg: -1})
	assert.ErrorIs(t, err, catalogdomain.ErrNotFound)
}

func TestAddPackage_EachAddIsANewLine(t *testing.T) {
	sessions := newSessions(t)
	catalog := catalogtest.NewProductRepository(
		catalogdomain.Product{ProductID: "rui", Slug: "rui", BasePrice: 400, Published: true},
		catalogdomain.Product{ProductID: "chingri", Slug: "chingri", BasePrice: 900, Published: true},
	)
	packages := catalogtest.NewPackageRepository(catalogdomain.Package{
		PackageID: "pkg-weekly", Slug: "weekly-box", NameEn: "Weekly Box", BasePrice: 1000, Published: true,
		Items: []catalogdomain.PackageItem{
			{ProductID: "rui", DefaultKg: 1, SelectedByDefault: true},
			{ProductID: "chingri", DefaultKg: 0.5, IsOptional: true},
		},
	})
	h := NewAddPackageHandler(sessions, packages, catalog)
	id := store.NewSessionID()

	_, err := h.Handle(context.Background(), AddPackageCommand{SessionID: id, Slug: "weekly-box"})
	require.NoError(t, err)
	cart, err := h.Handle(context.Background(), AddPackageCommand{
		SessionID: id, Slug: "weekly-box", Selection: customize.Selection{Tier: "ultimate"},
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, "pkg-weekly-1", cart.Items[0].Product.ProductID)
	assert.Equal(t, "pkg-weekly-2", cart.Items[1].Product.ProductID)
	assert.Equal(t, 400.0, cart.Items[0].Product.SalePrice)
	assert.Equal(t, 850.0, cart.Items[1].Product.SalePrice)
	assert.Equal(t, []domain.Component{{ProductID: "rui", QuantityKg: 1}, {ProductID: "chingri", QuantityKg: 0.5}},
		cart.Items[1].Product.Components)
	assert.Equal(t, 1250.0, cart.Total)

	_, err = NewUpdateItemHandler(sessions).Handle(context.Background(), UpdateItemCommand{SessionID: id, ProductID: "pkg-weekly-1", QuantityKg: 1.5})
	_, ok := catalogdomain.AsValidation(err)
	assert.True(t, ok, "package lines count whole packages")

	_, err = h.Handle(context.Background(), AddPackageCommand{SessionID: id, Slug: "missing"})
	assert.ErrorIs(t, err, catalogdomain.ErrNotFound)
}
