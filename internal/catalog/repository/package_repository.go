package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/pkg/database"
)

// GormPackageRepository implements domain.PackageRepository on PostgreSQL
type GormPackageRepository struct {
	db *gorm.DB
}

// NewGormPackageRepository creates a new GORM package repository
func NewGormPackageRepository(db *gorm.DB) *GormPackageRepository {
	return &GormPackageRepository{db: db}
}

func (r *GormPackageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	return mapError(database.Conn(ctx, r.db).Create(pkg).Error)
}

func (r *GormPackageRepository) FindBySlug(ctx context.Context, slug string) (*domain.Package, error) {
	var pkg domain.Package
	if err := database.Conn(ctx, r.db).Where("slug = ?", slug).First(&pkg).Error; err != nil {
		return nil, mapError(err)
	}
	return &pkg, nil
}

func (r *GormPackageRepository) FindByPackageID(ctx context.Context, packageID string) (*domain.Package, error) {
	var pkg domain.Package
	if err := database.Conn(ctx, r.db).Where("package_id = ?", packageID).First(&pkg).Error; err != nil {
		return nil, mapError(err)
	}
	return &pkg, nil
}

// FindPublished lists storefront packages, cheapest first
func (r *GormPackageRepository) FindPublished(ctx context.Context) ([]domain.Package, error) {
	packages := []domain.Package{}
	err := database.Conn(ctx, r.db).
		Where("published = ?", true).
		Order("sale_price").
		Find(&packages).Error
	return packages, err
}

func (r *GormPackageRepository) Update(ctx context.Context, pkg *domain.Package) error {
	return mapError(database.Conn(ctx, r.db).Save(pkg).Error)
}
