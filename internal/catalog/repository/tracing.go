package repository

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/machbazar/storefront/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// ProductRepositoryWithTracing wraps a product repository with spans
type ProductRepositoryWithTracing struct {
	next domain.ProductRepository
}

// NewProductRepositoryWithTracing creates a new repository with tracing
func NewProductRepositoryWithTracing(next domain.ProductRepository) *ProductRepositoryWithTracing {
	return &ProductRepositoryWithTracing{next: next}
}

func (r *ProductRepositoryWithTracing) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Product.Create",
		trace.WithAttributes(
			attribute.String("product.id", product.ProductID),
			attribute.String("product.slug", product.Slug),
			attribute.Float64("product.base_price", product.BasePrice),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, product)
	recordError(span, err)
	return err
}

func (r *ProductRepositoryWithTracing) FindByProductID(ctx context.Context, productID string) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindByProductID",
		trace.WithAttributes(attribute.String("product.id", productID)),
	)
	defer span.End()

	product, err := r.next.FindByProductID(ctx, productID)
	recordError(span, err)
	return product, err
}

func (r *ProductRepositoryWithTracing) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindBySlug",
		trace.WithAttributes(attribute.String("product.slug", slug)),
	)
	defer span.End()

	product, err := r.next.FindBySlug(ctx, slug)
	recordError(span, err)
	return product, err
}

func (r *ProductRepositoryWithTracing) FindByProductIDs(ctx context.Context, productIDs []string) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindByProductIDs",
		trace.WithAttributes(attribute.StringSlice("product.ids", productIDs)),
	)
	defer span.End()

	products, err := r.next.FindByProductIDs(ctx, productIDs)
	recordError(span, err)
	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, err
}

func (r *ProductRepositoryWithTracing) Search(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.Search",
		trace.WithAttributes(
			attribute.String("query.fish_type", filter.FishType),
			attribute.String("query.search", filter.Search),
			attribute.Int("query.limit", filter.Limit),
			attribute.Int("query.offset", filter.Offset),
		),
	)
	defer span.End()

	products, total, err := r.next.Search(ctx, filter)
	if err != nil {
		recordError(span, err)
		return nil, 0, err
	}

	span.SetAttributes(
		attribute.Int("result.count", len(products)),
		attribute.Int64("result.total", total),
	)
	return products, total, nil
}

func (r *ProductRepositoryWithTracing) Facets(ctx context.Context) (*domain.Facets, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.Facets")
	defer span.End()

	facets, err := r.next.Facets(ctx)
	recordError(span, err)
	return facets, err
}

func (r *ProductRepositoryWithTracing) Stats(ctx context.Context) (*domain.ProductStats, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.Stats")
	defer span.End()

	stats, err := r.next.Stats(ctx)
	recordError(span, err)
	return stats, err
}

func (r *ProductRepositoryWithTracing) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Product.Update",
		trace.WithAttributes(
			attribute.String("product.id", product.ProductID),
			attribute.Float64("product.base_price", product.BasePrice),
			attribute.Float64("product.discount_percentage", product.DiscountPercentage),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, product)
	recordError(span, err)
	return err
}

func (r *ProductRepositoryWithTracing) SetPublished(ctx context.Context, productID string, published bool) error {
	ctx, span := tracer.Start(ctx, "repository.Product.SetPublished",
		trace.WithAttributes(
			attribute.String("product.id", productID),
			attribute.Bool("product.published", published),
		),
	)
	defer span.End()

	err := r.next.SetPublished(ctx, productID, published)
	recordError(span, err)
	return err
}

func (r *ProductRepositoryWithTracing) UpdateStock(ctx context.Context, productID string, stockKg float64) error {
	ctx, span := tracer.Start(ctx, "repository.Product.UpdateStock",
		trace.WithAttributes(
			attribute.String("product.id", productID),
			attribute.Float64("stock.new_value", stockKg),
		),
	)
	defer span.End()

	err := r.next.UpdateStock(ctx, productID, stockKg)
	recordError(span, err)
	return err
}

func (r *ProductRepositoryWithTracing) RecordSale(ctx context.Context, productID string, quantityKg float64) error {
	ctx, span := tracer.Start(ctx, "repository.Product.RecordSale",
		trace.WithAttributes(
			attribute.String("product.id", productID),
			attribute.Float64("sale.quantity_kg", quantityKg),
		),
	)
	defer span.End()

	err := r.next.RecordSale(ctx, productID, quantityKg)
	recordError(span, err)
	return err
}

// PackageRepositoryWithTracing wraps a package repository with spans
type PackageRepositoryWithTracing struct {
	next domain.PackageRepository
}

// NewPackageRepositoryWithTracing creates a new repository with tracing
func NewPackageRepositoryWithTracing(next domain.PackageRepository) *PackageRepositoryWithTracing {
	return &PackageRepositoryWithTracing{next: next}
}

func (r *PackageRepositoryWithTracing) Create(ctx context.Context, pkg *domain.Package) error {
	ctx, span := tracer.Start(ctx, "repository.Package.Create",
		trace.WithAttributes(attribute.String("package.id", pkg.PackageID)),
	)
	defer span.End()

	err := r.next.Create(ctx, pkg)
	recordError(span, err)
	return err
}

func (r *PackageRepositoryWithTracing) FindBySlug(ctx context.Context, slug string) (*domain.Package, error) {
	ctx, span := tracer.Start(ctx, "repository.Package.FindBySlug",
		trace.WithAttributes(attribute.String("package.slug", slug)),
	)
	defer span.End()

	pkg, err := r.next.FindBySlug(ctx, slug)
	recordError(span, err)
	return pkg, err
}

func (r *PackageRepositoryWithTracing) FindByPackageID(ctx context.Context, packageID string) (*domain.Package, error) {
	ctx, span := tracer.Start(ctx, "repository.Package.FindByPackageID",
		trace.WithAttributes(attribute.String("package.id", packageID)),
	)
	defer span.End()

	pkg, err := r.next.FindByPackageID(ctx, packageID)
	recordError(span, err)
	return pkg, err
}

func (r *PackageRepositoryWithTracing) FindPublished(ctx context.Context) ([]domain.Package, error) {
	ctx, span := tracer.Start(ctx, "repository.Package.FindPublished")
	defer span.End()

	packages, err := r.next.FindPublished(ctx)
	recordError(span, err)
	span.SetAttributes(attribute.Int("result.count", len(packages)))
	return packages, err
}

func (r *PackageRepositoryWithTracing) Update(ctx context.Context, pkg *domain.Package) error {
	ctx, span := tracer.Start(ctx, "repository.Package.Update",
		trace.WithAttributes(attribute.String("package.id", pkg.PackageID)),
	)
	defer span.End()

	err := r.next.Update(ctx, pkg)
	recordError(span, err)
	return err
}

// recordError marks the span failed; not-found lookups are expected and stay OK
func recordError(span trace.Span, err error) {
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
