package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machbazar/storefront/internal/catalog/catalogtest"
	"github.com/machbazar/storefront/internal/catalog/domain"
)

type countingCache struct{ n int }

func (c *countingCache) Invalidate(context.Context) { c.n++ }

func validInput() ProductInput {
	return ProductInput{
		Slug:               "rui-fish",
		NameEn:             "Rui Fish",
		NameBn:             "রুই মাছ",
		FishType:           "carp",
		BasePrice:          500,
		DiscountPercentage: 10,
		StockKg:            25,
		MinOrderKg:         0.5,
		MaxOrderKg:         10,
		CuttingSizes:       "small, medium",
		HeadCutOptions:     "with head,without head",
		Published:          true,
	}
}

func TestCreateProduct(t *testing.T) {
	repo := catalogtest.NewProductRepository()
	cache := &countingCache{}
	h := NewCreateProductHandler(repo, cache)

	p, err := h.Handle(context.Background(), CreateProductCommand{ProductID: "P-001", ProductInput: validInput()})
	require.NoError(t, err)

	assert.Equal(t, 450.0, p.SalePrice)
	assert.Equal(t, []string{"small", "medium"}, []string(p.CuttingSizes))
	assert.Equal(t, []string{}, []string(p.CuttingStyles))
	assert.Equal(t, []string{"with head", "without head"}, []string(p.HeadCutOptions))
	assert.Equal(t, 1, cache.n)

	_, err = h.Handle(context.Background(), CreateProductCommand{ProductID: "P-001", ProductInput: validInput()})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 1, cache.n)
}

func TestCreateProduct_ValidationRejectsWholeForm(t *testing.T) {
	repo := catalogtest.NewProductRepository()
	h := NewCreateProductHandler(repo, domain.NopInvalidator{})

	in := validInput()
	in.Slug = "Rui Fish"
	in.BasePrice = -1
	in.DiscountPercentage = 120
	in.MinOrderKg = 2
	in.MaxOrderKg = 1
	in.CuttingStyles = "curry,,fry"

	_, err := h.Handle(context.Background(), CreateProductCommand{ProductInput: in})
	errs, ok := domain.AsValidation(err)
	require.True(t, ok)

	assert.Equal(t, map[string]string{
		"productId":          "is required",
		"slug":               "must be lowercase letters, digits and dashes",
		"basePrice":          "must not be negative",
		"discountPercentage": "must be between 0 and 100",
		"maxOrderKg":         "must not be less than minOrderKg",
		"cuttingStyles":      "entry 2 is empty",
	}, errs.Fields())

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalProducts)
}

func TestUpdateProduct_RederivesSalePrice(t *testing.T) {
	repo := catalogtest.NewProductRepository(domain.Product{
		ProductID: "P-001", Slug: "rui-fish", NameEn: "Rui", BasePrice: 500, DiscountPercentage: 10,
		MinOrderKg: 0.5, MaxOrderKg: 10, SoldCount: 7,
	})
	h := NewUpdateProductHandler(repo, domain.NopInvalidator{})

	in := validInput()
	in.BasePrice = 600
	in.DiscountPercentage = 25

	p, err := h.Handle(context.Background(), UpdateProductCommand{ProductID: "P-001", ProductInput: in})
	require.NoError(t, err)
	assert.Equal(t, 450.0, p.SalePrice)

	stored := repo.Get("P-001")
	assert.Equal(t, 450.0, stored.SalePrice)
	assert.Equal(t, 7.0, stored.SoldCount, "non-form fields survive")

	_, err = h.Handle(context.Background(), UpdateProductCommand{ProductID: "nope", ProductInput: in})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStockAndPublish(t *testing.T) {
	repo := catalogtest.NewProductRepository(domain.Product{ProductID: "P-001", Slug: "rui", StockKg: 3})
	cache := &countingCache{}

	stock := NewUpdateStockHandler(repo, cache)
	require.NoError(t, stock.Handle(context.Background(), UpdateStockCommand{ProductID: "P-001", StockKg: 12.5}))
	assert.Equal(t, 12.5, repo.Get("P-001").StockKg)

	err := stock.Handle(context.Background(), UpdateStockCommand{ProductID: "P-001", StockKg: -1})
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)

	publish := NewSetPublishedHandler(repo, cache)
	require.NoError(t, publish.Handle(context.Background(), SetPublishedCommand{ProductID: "P-001", Published: true}))
	assert.True(t, repo.Get("P-001").Published)

	assert.ErrorIs(t, publish.Handle(context.Background(), SetPublishedCommand{ProductID: "nope"}), domain.ErrNotFound)
	assert.Equal(t, 2, cache.n)
}

func TestRecordSale(t *testing.T) {
	repo := catalogtest.NewProductRepository(
		domain.Product{ProductID: "rui", Slug: "rui", StockKg: 5},
		domain.Product{ProductID: "ilish", Slug: "ilish", StockKg: 1},
	)
	cache := &countingCache{}
	h := NewRecordSaleHandler(repo, cache)

	err := h.Handle(context.Background(), RecordSaleCommand{
		OrderID: "ORD-1",
		Lines: []SaleLine{
			{ProductID: "rui", QuantityKg: 2},
			{ProductID: "ilish", QuantityKg: 3},
			{ProductID: "gone", QuantityKg: 1},
			{ProductID: "rui", QuantityKg: 0},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 3.0, repo.Get("rui").StockKg)
	assert.Equal(t, 0.0, repo.Get("ilish").StockKg, "clamped at zero")
	assert.Equal(t, 3.0, repo.Get("ilish").SoldCount)
	assert.Equal(t, 1, cache.n)
}

func TestRecordSale_StorageFailure(t *testing.T) {
	repo := catalogtest.NewProductRepository(domain.Product{ProductID: "rui", Slug: "rui", StockKg: 5})
	repo.Err = errors.New("deadlock detected")

	err := NewRecordSaleHandler(repo, domain.NopInvalidator{}).Handle(context.Background(), RecordSaleCommand{
		Lines: []SaleLine{{ProductID: "rui", QuantityKg: 1}},
	})
	assert.ErrorContains(t, err, "failed to record sale of rui")
}

func validPackage() PackageInput {
	return PackageInput{
		Slug:               "weekly-box",
		NameEn:             "Weekly Box",
		BasePrice:          1000,
		DiscountPercentage: 20,
		Items: []domain.PackageItem{
			{ProductID: "rui", DefaultKg: 1, SelectedByDefault: true},
			{ProductID: "chingri", DefaultKg: 0.5, IsOptional: true},
		},
		Published: true,
	}
}

func TestCreatePackage(t *testing.T) {
	packages := catalogtest.NewPackageRepository()
	h := NewCreatePackageHandler(packages, catalogtest.NewProductRepository(), domain.NopInvalidator{})

	pkg, err := h.Handle(context.Background(), CreatePackageCommand{PackageID: "pkg-weekly", PackageInput: validPackage()})
	require.NoError(t, err)
	assert.Equal(t, 800.0, pkg.SalePrice)
	assert.Equal(t, domain.FrequencyWeekly, pkg.Frequency)
}

func TestCreatePackage_Validation(t *testing.T) {
	h := NewCreatePackageHandler(catalogtest.NewPackageRepository(), catalogtest.NewProductRepository(), domain.NopInvalidator{})

	in := validPackage()
	in.Frequency = "daily"
	in.Items = []domain.PackageItem{
		{ProductID: "rui", DefaultKg: 1},
		{ProductID: "rui", DefaultKg: 1},
		{ProductID: "", DefaultKg: 1},
		{ProductID: "ilish", DefaultKg: 0.3},
	}

	_, err := h.Handle(context.Background(), CreatePackageCommand{PackageID: "pkg-1", PackageInput: in})
	errs, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"frequency": "must be weekly or monthly",
		"items[1]":  "rui is listed twice",
		"items[2]":  "productId is required",
		"items[3]":  "defaultKg must be a multiple of 0.25",
	}, errs.Fields())
}

func TestUpdatePackage(t *testing.T) {
	packages := catalogtest.NewPackageRepository(domain.Package{PackageID: "pkg-weekly", Slug: "weekly-box", BasePrice: 1000})
	h := NewUpdatePackageHandler(packages, catalogtest.NewProductRepository(), domain.NopInvalidator{})

	in := validPackage()
	in.DiscountPercentage = 50
	in.Frequency = domain.FrequencyMonthly

	pkg, err := h.Handle(context.Background(), UpdatePackageCommand{PackageID: "pkg-weekly", PackageInput: in})
	require.NoError(t, err)
	assert.Equal(t, 500.0, pkg.SalePrice)

	stored, err := packages.FindByPackageID(context.Background(), "pkg-weekly")
	require.NoError(t, err)
	assert.Equal(t, domain.FrequencyMonthly, stored.Frequency)
	assert.Len(t, stored.Items, 2)
}
