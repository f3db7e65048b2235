// Package catalogtest provides in-memory catalog repositories for tests.
package catalogtest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/machbazar/storefront/internal/catalog/domain"
)

// ProductRepository is an in-memory domain.ProductRepository. Search applies
// the exact-match filters, price bounds, stock flag and a case-insensitive
// substring search, so handlers can be exercised without postgres.
type ProductRepository struct {
	mu       sync.Mutex
	products []domain.Product

	Err       error
	FacetsErr error
	Sales     map[string]float64
}

func NewProductRepository(products ...domain.Product) *ProductRepository {
	r := &ProductRepository{Sales: map[string]float64{}}
	for i := range products {
		p := products[i]
		if p.ID == 0 {
			p.ID = uint(i + 1)
		}
		_ = p.BeforeSave(nil)
		r.products = append(r.products, p)
	}
	return r
}

func (r *ProductRepository) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, p := range r.products {
		if p.ProductID == product.ProductID || p.Slug == product.Slug {
			return domain.ErrDuplicate
		}
	}
	_ = product.BeforeSave(nil)
	product.ID = uint(len(r.products) + 1)
	r.products = append(r.products, *product)
	return nil
}

func (r *ProductRepository) FindByProductID(_ context.Context, productID string) (*domain.Product, error) {
	return r.find(func(p domain.Product) bool { return p.ProductID == productID })
}

func (r *ProductRepository) FindBySlug(_ context.Context, slug string) (*domain.Product, error) {
	return r.find(func(p domain.Product) bool { return p.Slug == slug })
}

func (r *ProductRepository) find(match func(domain.Product) bool) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, p := range r.products {
		if match(p) {
			found := p
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ProductRepository) FindByProductIDs(_ context.Context, productIDs []string) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var found []domain.Product
	for _, p := range r.products {
		for _, id := range productIDs {
			if p.ProductID == id {
				found = append(found, p)
			}
		}
	}
	return found, nil
}

func (r *ProductRepository) Search(_ context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}

	matched := []domain.Product{}
	for _, p := range r.products {
		if matches(p, f) {
			matched = append(matched, p)
		}
	}
	sortProducts(matched, f.Sort)

	total := int64(len(matched))
	start := min(f.Offset, len(matched))
	end := len(matched)
	if f.Limit > 0 {
		end = min(start+f.Limit, len(matched))
	}
	return matched[start:end], total, nil
}

func matches(p domain.Product, f domain.ProductFilter) bool {
	switch {
	case !p.Published:
		return false
	case f.FishType != "" && p.FishType != f.FishType:
		return false
	case f.FishSizeKg != "" && p.FishSizeKg != f.FishSizeKg:
		return false
	case f.Source != "" && p.Source != f.Source:
		return false
	case f.CuttingSize != "" && !contains(p.CuttingSizes, f.CuttingSize):
		return false
	case f.MinPrice != nil && p.SalePrice < *f.MinPrice:
		return false
	case f.MaxPrice != nil && p.SalePrice > *f.MaxPrice:
		return false
	case f.InStockOnly && p.StockKg <= 0:
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		return strings.Contains(strings.ToLower(p.NameEn), s) ||
			strings.Contains(strings.ToLower(p.NameBn), s) ||
			strings.Contains(strings.ToLower(p.FishType), s)
	}
	return true
}

func sortProducts(products []domain.Product, fields []domain.SortField) {
	sort.SliceStable(products, func(i, j int) bool {
		for _, f := range fields {
			a, b := sortValue(products[i], f.Column), sortValue(products[j], f.Column)
			if a == b {
				continue
			}
			if f.Desc {
				return a > b
			}
			return a < b
		}
		return products[i].ID < products[j].ID
	})
}

func sortValue(p domain.Product, column string) float64 {
	switch column {
	case "sale_price":
		return p.SalePrice
	case "sold_count":
		return p.SoldCount
	case "rating":
		return p.Rating
	case "created_at":
		return float64(p.CreatedAt.UnixNano())
	case "featured":
		if p.Featured {
			return 1
		}
	}
	return 0
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (r *ProductRepository) Facets(context.Context) (*domain.Facets, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FacetsErr != nil {
		return nil, r.FacetsErr
	}

	facets := domain.EmptyFacets()
	first := true
	for _, p := range r.products {
		if !p.Published {
			continue
		}
		facets.FishTypes = addUnique(facets.FishTypes, p.FishType)
		facets.FishSizes = addUnique(facets.FishSizes, p.FishSizeKg)
		facets.Sources = addUnique(facets.Sources, p.Source)
		for _, size := range p.CuttingSizes {
			facets.CuttingSizes = addUnique(facets.CuttingSizes, size)
		}
		if first || p.SalePrice < facets.PriceRange.Min {
			facets.PriceRange.Min = p.SalePrice
		}
		if first || p.SalePrice > facets.PriceRange.Max {
			facets.PriceRange.Max = p.SalePrice
		}
		first = false
	}
	for _, list := range [][]string{facets.FishTypes, facets.FishSizes, facets.Sources, facets.CuttingSizes} {
		sort.Strings(list)
	}
	return facets, nil
}

func addUnique(list []string, v string) []string {
	if v == "" || contains(list, v) {
		return list
	}
	return append(list, v)
}

func (r *ProductRepository) Stats(context.Context) (*domain.ProductStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	var stats domain.ProductStats
	types := map[string]bool{}
	for _, p := range r.products {
		stats.TotalProducts++
		if p.Published {
			stats.PublishedProducts++
		}
		if p.StockKg <= 0 {
			stats.OutOfStock++
		}
		stats.TotalStockKg += p.StockKg
		if p.FishType != "" {
			types[p.FishType] = true
		}
	}
	stats.FishTypes = int64(len(types))
	return &stats, nil
}

func (r *ProductRepository) Update(_ context.Context, product *domain.Product) error {
	return r.modify(product.ProductID, func(p *domain.Product) {
		_ = product.BeforeSave(nil)
		*p = *product
	})
}

func (r *ProductRepository) SetPublished(_ context.Context, productID string, published bool) error {
	return r.modify(productID, func(p *domain.Product) { p.Published = published })
}

func (r *ProductRepository) UpdateStock(_ context.Context, productID string, stockKg float64) error {
	return r.modify(productID, func(p *domain.Product) { p.StockKg = stockKg })
}

func (r *ProductRepository) RecordSale(_ context.Context, productID string, quantityKg float64) error {
	return r.modify(productID, func(p *domain.Product) {
		p.StockKg = max(0, p.StockKg-quantityKg)
		p.SoldCount += quantityKg
		r.Sales[productID] += quantityKg
	})
}

func (r *ProductRepository) modify(productID string, fn func(*domain.Product)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i := range r.products {
		if r.products[i].ProductID == productID {
			fn(&r.products[i])
			return nil
		}
	}
	return domain.ErrNotFound
}

// Get returns a stored product or nil, without the error hooks
func (r *ProductRepository) Get(productID string) *domain.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ProductID == productID {
			found := p
			return &found
		}
	}
	return nil
}

// PackageRepository is an in-memory domain.PackageRepository
type PackageRepository struct {
	mu       sync.Mutex
	packages []domain.Package

	Err error
}

func NewPackageRepository(packages ...domain.Package) *PackageRepository {
	r := &PackageRepository{}
	for i := range packages {
		pkg := packages[i]
		_ = pkg.BeforeSave(nil)
		r.packages = append(r.packages, pkg)
	}
	return r
}

func (r *PackageRepository) Create(_ context.Context, pkg *domain.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, p := range r.packages {
		if p.PackageID == pkg.PackageID || p.Slug == pkg.Slug {
			return domain.ErrDuplicate
		}
	}
	_ = pkg.BeforeSave(nil)
	pkg.ID = uint(len(r.packages) + 1)
	r.packages = append(r.packages, *pkg)
	return nil
}

func (r *PackageRepository) FindBySlug(_ context.Context, slug string) (*domain.Package, error) {
	return r.find(func(p domain.Package) bool { return p.Slug == slug })
}

func (r *PackageRepository) FindByPackageID(_ context.Context, packageID string) (*domain.Package, error) {
	return r.find(func(p domain.Package) bool { return p.PackageID == packageID })
}

func (r *PackageRepository) find(match func(domain.Package) bool) (*domain.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, p := range r.packages {
		if match(p) {
			found := p
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *PackageRepository) FindPublished(context.Context) ([]domain.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	published := []domain.Package{}
	for _, p := range r.packages {
		if p.Published {
			published = append(published, p)
		}
	}
	return published, nil
}

func (r *PackageRepository) Update(_ context.Context, pkg *domain.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i := range r.packages {
		if r.packages[i].PackageID == pkg.PackageID {
			_ = pkg.BeforeSave(nil)
			r.packages[i] = *pkg
			return nil
		}
	}
	return domain.ErrNotFound
}
