package query

import (
	"context"
	"fmt"

	"github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/internal/customize"
)

// ListPackagesHandler lists the published subscription packages
type ListPackagesHandler struct {
	repo domain.PackageRepository
}

// NewListPackagesHandler creates a new list packages handler
func NewListPackagesHandler(repo domain.PackageRepository) *ListPackagesHandler {
	return &ListPackagesHandler{repo: repo}
}

func (h *ListPackagesHandler) Handle(ctx context.Context) ([]domain.Package, error) {
	packages, err := h.repo.FindPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

// PackageDetail is a package with its default quote and referenced products
type PackageDetail struct {
	Package  domain.Package   `json:"package"`
	Products []domain.Product `json:"products"`
	Quote    customize.Quote  `json:"quote"`
}

// GetPackageQuery represents the query to get a package by slug
type GetPackageQuery struct {
	Slug string
}

// GetPackageHandler handles get package query
type GetPackageHandler struct {
	packages domain.PackageRepository
	products domain.ProductRepository
}

// NewGetPackageHandler creates a new get package handler
func NewGetPackageHandler(packages domain.PackageRepository, products domain.ProductRepository) *GetPackageHandler {
	return &GetPackageHandler{packages: packages, products: products}
}

func (h *GetPackageHandler) Handle(ctx context.Context, query GetPackageQuery) (*PackageDetail, error) {
	c, catalog, err := customize.Load(ctx, h.packages, h.products, query.Slug)
	if err != nil {
		return nil, err
	}

	pkg := c.Package()
	products := make([]domain.Product, 0, len(pkg.Items))
	for _, id := range pkg.ProductIDs() {
		if p, ok := catalog[id]; ok {
			products = append(products, p)
		}
	}

	return &PackageDetail{
		Package:  pkg,
		Products: products,
		Quote:    c.Quote(catalog),
	}, nil
}

// QuotePackageQuery prices a client customization without touching any cart
type QuotePackageQuery struct {
	Slug      string
	Selection customize.Selection
}

// QuotePackageHandler handles quote package query
type QuotePackageHandler struct {
	packages domain.PackageRepository
	products domain.ProductRepository
}

// NewQuotePackageHandler creates a new quote package handler
func NewQuotePackageHandler(packages domain.PackageRepository, products domain.ProductRepository) *QuotePackageHandler {
	return &QuotePackageHandler{packages: packages, products: products}
}

func (h *QuotePackageHandler) Handle(ctx context.Context, query QuotePackageQuery) (*customize.Quote, error) {
	c, catalog, err := customize.Load(ctx, h.packages, h.products, query.Slug)
	if err != nil {
		return nil, err
	}
	if err := c.Apply(query.Selection); err != nil {
		return nil, err
	}

	quote := c.Quote(catalog)
	return &quote, nil
}
