package domain

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/machbazar/storefront/internal/pricing"
)

// Delivery frequencies of a subscription package
const (
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// PackageItem references one catalog product bundled in a package
type PackageItem struct {
	ProductID         string  `json:"productId"`
	DefaultKg         float64 `json:"defaultKg"`
	IsOptional        bool    `json:"isOptional"`
	SelectedByDefault bool    `json:"selectedByDefault"`
}

// Package is a subscription bundle of catalog products
type Package struct {
	ID                 uint          `json:"id" gorm:"primaryKey"`
	PackageID          string        `json:"packageId" gorm:"uniqueIndex;not null"`
	Slug               string        `json:"slug" gorm:"uniqueIndex;not null"`
	NameEn             string        `json:"nameEn" gorm:"not null"`
	NameBn             string        `json:"nameBn"`
	DescriptionEn      string        `json:"descriptionEn"`
	DescriptionBn      string        `json:"descriptionBn"`
	BasePrice          float64       `json:"basePrice" gorm:"not null"`
	DiscountPercentage float64       `json:"discountPercentage" gorm:"not null;default:0"`
	SalePrice          float64       `json:"salePrice" gorm:"not null"`
	Items              []PackageItem `json:"items" gorm:"serializer:json;type:jsonb"`
	Frequency          string        `json:"frequency" gorm:"not null;default:'weekly'"`
	Published          bool          `json:"published" gorm:"index;default:false"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// TableName specifies the table name
func (Package) TableName() string {
	return "packages"
}

// BeforeSave derives the sale price the same way as for products
func (p *Package) BeforeSave(*gorm.DB) error {
	p.SalePrice = pricing.SalePrice(p.BasePrice, p.DiscountPercentage)
	return nil
}

// ProductIDs lists the referenced product ids in item order
func (p *Package) ProductIDs() []string {
	ids := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// PackageRepository defines the contract for package data access
type PackageRepository interface {
	Create(ctx context.Context, pkg *Package) error
	FindBySlug(ctx context.Context, slug string) (*Package, error)
	FindByPackageID(ctx context.Context, packageID string) (*Package, error)
	FindPublished(ctx context.Context) ([]Package, error)
	Update(ctx context.Context, pkg *Package) error
}
