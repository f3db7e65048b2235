package domain

import (
	"context"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/machbazar/storefront/internal/pricing"
)

// Product represents a fish product in the catalog
type Product struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	ProductID          string         `json:"productId" gorm:"uniqueIndex;not null"`
	Slug               string         `json:"slug" gorm:"uniqueIndex;not null"`
	NameEn             string         `json:"nameEn" gorm:"not null"`
	NameBn             string         `json:"nameBn"`
	DescriptionEn      string         `json:"descriptionEn"`
	DescriptionBn      string         `json:"descriptionBn"`
	FishType           string         `json:"fishType" gorm:"index"`
	FishSizeKg         string         `json:"fishSizeKg"`
	Source             string         `json:"source"`
	BasePrice          float64        `json:"basePrice" gorm:"not null"`
	DiscountPercentage float64        `json:"discountPercentage" gorm:"not null;default:0"`
	SalePrice          float64        `json:"salePrice" gorm:"not null;index"`
	StockKg            float64        `json:"stockKg" gorm:"not null;default:0"`
	MinOrderKg         float64        `json:"minOrderKg" gorm:"not null;default:0.5"`
	MaxOrderKg         float64        `json:"maxOrderKg" gorm:"not null;default:10"`
	CuttingSizes       pq.StringArray `json:"cuttingSizes" gorm:"type:text[]"`
	CuttingStyles      pq.StringArray `json:"cuttingStyles" gorm:"type:text[]"`
	HeadCutOptions     pq.StringArray `json:"headCutOptions" gorm:"type:text[]"`
	ImageURL           string         `json:"imageUrl"`
	Published          bool           `json:"published" gorm:"index;default:false"`
	Featured           bool           `json:"featured" gorm:"default:false"`
	SoldCount          float64        `json:"soldCount" gorm:"default:0"`
	Rating             float64        `json:"rating" gorm:"default:0"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// BeforeSave derives the sale price so it can never be authored directly
func (p *Product) BeforeSave(*gorm.DB) error {
	p.SalePrice = pricing.SalePrice(p.BasePrice, p.DiscountPercentage)
	return nil
}

// InStock reports whether any stock is left
func (p *Product) InStock() bool {
	return p.StockKg > 0
}

// Savings is the per-kg amount saved by the discount
func (p *Product) Savings() float64 {
	return pricing.Savings(p.BasePrice, p.SalePrice)
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByProductID(ctx context.Context, productID string) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindByProductIDs(ctx context.Context, productIDs []string) ([]Product, error)
	Search(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	Facets(ctx context.Context) (*Facets, error)
	Stats(ctx context.Context) (*ProductStats, error)
	Update(ctx context.Context, product *Product) error
	SetPublished(ctx context.Context, productID string, published bool) error
	UpdateStock(ctx context.Context, productID string, stockKg float64) error
	RecordSale(ctx context.Context, productID string, quantityKg float64) error
}

// ProductStats feeds the admin dashboard
type ProductStats struct {
	TotalProducts     int64   `json:"totalProducts"`
	PublishedProducts int64   `json:"publishedProducts"`
	OutOfStock        int64   `json:"outOfStock"`
	TotalStockKg      float64 `json:"totalStockKg"`
	FishTypes         int64   `json:"fishTypes"`
}
