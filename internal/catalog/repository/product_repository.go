package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/pkg/database"
)

// GormProductRepository implements domain.ProductRepository on PostgreSQL
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// AutoMigrate creates or updates the products and packages tables
func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{}, &domain.Package{})
}

// Create inserts a product. Unique violations map to domain.ErrDuplicate.
func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return mapError(database.Conn(ctx, r.db).Create(product).Error)
}

// FindByProductID retrieves a product by its product id
func (r *GormProductRepository) FindByProductID(ctx context.Context, productID string) (*domain.Product, error) {
	var product domain.Product
	err := database.Conn(ctx, r.db).Where("product_id = ?", productID).First(&product).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &product, nil
}

// FindBySlug retrieves a product by slug, published or not
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var product domain.Product
	err := database.Conn(ctx, r.db).Where("slug = ?", slug).First(&product).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &product, nil
}

// FindByProductIDs retrieves every product whose id is listed; missing ids are skipped
func (r *GormProductRepository) FindByProductIDs(ctx context.Context, productIDs []string) ([]domain.Product, error) {
	var products []domain.Product
	if len(productIDs) == 0 {
		return products, nil
	}
	err := database.Conn(ctx, r.db).Where("product_id IN ?", productIDs).Find(&products).Error
	return products, err
}

// published scopes a query to the storefront-visible products
func published(db *gorm.DB) *gorm.DB {
	return db.Model(&domain.Product{}).Where("published = ?", true)
}

func applyFilter(db *gorm.DB, f domain.ProductFilter) *gorm.DB {
	if f.FishType != "" {
		db = db.Where("fish_type = ?", f.FishType)
	}
	if f.FishSizeKg != "" {
		db = db.Where("fish_size_kg = ?", f.FishSizeKg)
	}
	if f.CuttingSize != "" {
		db = db.Where("? = ANY(cutting_sizes)", f.CuttingSize)
	}
	if f.Source != "" {
		db = db.Where("source = ?", f.Source)
	}
	if f.MinPrice != nil {
		db = db.Where("sale_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("sale_price <= ?", *f.MaxPrice)
	}
	if f.InStockOnly {
		db = db.Where("stock_kg > 0")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + escapeLike(s) + "%"
		db = db.Where("name_en ILIKE ? OR name_bn ILIKE ? OR fish_type ILIKE ?", pattern, pattern, pattern)
	}
	return db
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Search returns one page of published products matching f and the total
// match count
func (r *GormProductRepository) Search(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	q := applyFilter(published(database.Conn(ctx, r.db)), f)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := []domain.Product{}
	if total == 0 {
		return products, 0, nil
	}

	for _, s := range f.Sort {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Column}, Desc: s.Desc})
	}
	// stable paging across equal sort keys
	q = q.Order("id")

	if err := q.Limit(f.Limit).Offset(f.Offset).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// Facets collects the distinct filter values and sale price range of the
// published catalog
func (r *GormProductRepository) Facets(ctx context.Context) (*domain.Facets, error) {
	db := database.Conn(ctx, r.db)
	facets := domain.EmptyFacets()

	distinct := []struct {
		column string
		dest   *[]string
	}{
		{"fish_type", &facets.FishTypes},
		{"fish_size_kg", &facets.FishSizes},
		{"source", &facets.Sources},
	}
	for _, d := range distinct {
		err := published(db).
			Where(d.column+" <> ''").
			Distinct(d.column).
			Order(d.column).
			Pluck(d.column, d.dest).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load %s facet: %w", d.column, err)
		}
	}

	err := db.Raw(`SELECT DISTINCT size FROM products, unnest(cutting_sizes) AS size
		WHERE published = true AND size <> '' ORDER BY size`).
		Scan(&facets.CuttingSizes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cutting size facet: %w", err)
	}

	err = published(db).
		Select("COALESCE(MIN(sale_price), 0) AS min, COALESCE(MAX(sale_price), 0) AS max").
		Scan(&facets.PriceRange).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load price range: %w", err)
	}

	return facets, nil
}

// Stats aggregates catalog counts for the admin dashboard
func (r *GormProductRepository) Stats(ctx context.Context) (*domain.ProductStats, error) {
	var stats domain.ProductStats
	err := database.Conn(ctx, r.db).Model(&domain.Product{}).Select(`
		COUNT(*) AS total_products,
		COUNT(*) FILTER (WHERE published) AS published_products,
		COUNT(*) FILTER (WHERE stock_kg <= 0) AS out_of_stock,
		COALESCE(SUM(stock_kg), 0) AS total_stock_kg,
		COUNT(DISTINCT NULLIF(fish_type, '')) AS fish_types`).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load product stats: %w", err)
	}
	return &stats, nil
}

// Update saves every field of product
func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return mapError(database.Conn(ctx, r.db).Save(product).Error)
}

// Partial updates use UpdateColumns so BeforeSave does not run against the
// empty model and overwrite sale_price.
func (r *GormProductRepository) SetPublished(ctx context.Context, productID string, value bool) error {
	res := database.Conn(ctx, r.db).Model(&domain.Product{}).
		Where("product_id = ?", productID).
		UpdateColumns(map[string]interface{}{"published": value, "updated_at": time.Now()})
	return rowsOrNotFound(res)
}

// UpdateStock sets the stock of a product
func (r *GormProductRepository) UpdateStock(ctx context.Context, productID string, stockKg float64) error {
	res := database.Conn(ctx, r.db).Model(&domain.Product{}).
		Where("product_id = ?", productID).
		UpdateColumns(map[string]interface{}{"stock_kg": stockKg, "updated_at": time.Now()})
	return rowsOrNotFound(res)
}

// RecordSale decrements stock, clamped at zero, and bumps the sold counter in
// a single statement
func (r *GormProductRepository) RecordSale(ctx context.Context, productID string, quantityKg float64) error {
	res := database.Conn(ctx, r.db).Model(&domain.Product{}).
		Where("product_id = ?", productID).
		UpdateColumns(map[string]interface{}{
			"stock_kg":   gorm.Expr("GREATEST(stock_kg - ?, 0)", quantityKg),
			"sold_count": gorm.Expr("sold_count + ?", quantityKg),
			"updated_at": time.Now(),
		})
	return rowsOrNotFound(res)
}

func rowsOrNotFound(res *gorm.DB) error {
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicate
	}
	return err
}
