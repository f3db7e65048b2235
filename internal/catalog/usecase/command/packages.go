package command

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/pkg/logger"
)

// PackageInput carries the admin package form
type PackageInput struct {
	Slug               string
	NameEn             string
	NameBn             string
	DescriptionEn      string
	DescriptionBn      string
	BasePrice          float64
	DiscountPercentage float64
	Frequency          string
	Items              []domain.PackageItem
	Published          bool
}

func (in PackageInput) apply(p *domain.Package) error {
	var errs domain.ValidationErrors

	slug := strings.TrimSpace(in.Slug)
	if !slugPattern.MatchString(slug) {
		errs.Add("slug", "must be lowercase letters, digits and dashes")
	}
	if strings.TrimSpace(in.NameEn) == "" {
		errs.Add("nameEn", "is required")
	}
	if in.BasePrice < 0 {
		errs.Add("basePrice", "must not be negative")
	}
	if in.DiscountPercentage < 0 || in.DiscountPercentage > 100 {
		errs.Add("discountPercentage", "must be between 0 and 100")
	}

	frequency := in.Frequency
	if frequency == "" {
		frequency = domain.FrequencyWeekly
	}
	if frequency != domain.FrequencyWeekly && frequency != domain.FrequencyMonthly {
		errs.Add("frequency", "must be weekly or monthly")
	}

	if len(in.Items) == 0 {
		errs.Add("items", "at least one item is required")
	}
	seen := make(map[string]bool, len(in.Items))
	for i, item := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		switch {
		case strings.TrimSpace(item.ProductID) == "":
			errs.Add(field, "productId is required")
		case seen[item.ProductID]:
			errs.Add(field, "%s is listed twice", item.ProductID)
		case item.DefaultKg < 0.25:
			errs.Add(field, "defaultKg must be at least 0.25")
		case math.Mod(item.DefaultKg, 0.25) != 0:
			errs.Add(field, "defaultKg must be a multiple of 0.25")
		}
		seen[item.ProductID] = true
	}

	if err := errs.Err(); err != nil {
		return err
	}

	p.Slug = slug
	p.NameEn = strings.TrimSpace(in.NameEn)
	p.NameBn = strings.TrimSpace(in.NameBn)
	p.DescriptionEn = in.DescriptionEn
	p.DescriptionBn = in.DescriptionBn
	p.BasePrice = in.BasePrice
	p.DiscountPercentage = in.DiscountPercentage
	p.Frequency = frequency
	p.Items = in.Items
	p.Published = in.Published
	return nil
}

// warnMissingProducts logs package items that reference unknown products.
// Such packages are still saved: the customizer prices those items from the
// package's own base price.
func warnMissingProducts(ctx context.Context, repo domain.ProductRepository, pkg *domain.Package) {
	found, err := repo.FindByProductIDs(ctx, pkg.ProductIDs())
	if err != nil {
		return
	}
	known := make(map[string]bool, len(found))
	for _, p := range found {
		known[p.ProductID] = true
	}
	for _, id := range pkg.ProductIDs() {
		if !known[id] {
			logger.Warn(ctx).
				Str("package_id", pkg.PackageID).
				Str("product_id", id).
				Msg("Package item references unknown product")
		}
	}
}

// CreatePackageCommand represents the command to create a package
type CreatePackageCommand struct {
	PackageID string
	PackageInput
}

// CreatePackageHandler handles package creation command
type CreatePackageHandler struct {
	repo     domain.PackageRepository
	products domain.ProductRepository
	cache    domain.Invalidator
}

// NewCreatePackageHandler creates a new create package handler
func NewCreatePackageHandler(repo domain.PackageRepository, products domain.ProductRepository, cache domain.Invalidator) *CreatePackageHandler {
	return &CreatePackageHandler{repo: repo, products: products, cache: cache}
}

func (h *CreatePackageHandler) Handle(ctx context.Context, cmd CreatePackageCommand) (*domain.Package, error) {
	pkg := &domain.Package{PackageID: strings.TrimSpace(cmd.PackageID)}

	err := cmd.apply(pkg)
	if pkg.PackageID == "" {
		errs, _ := domain.AsValidation(err)
		errs.Add("packageId", "is required")
		err = errs
	}
	if err != nil {
		return nil, err
	}

	warnMissingProducts(ctx, h.products, pkg)

	if err := h.repo.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	h.cache.Invalidate(ctx)
	return pkg, nil
}

// UpdatePackageCommand replaces the editable fields of a package
type UpdatePackageCommand struct {
	PackageID string
	PackageInput
}

// UpdatePackageHandler handles package update command
type UpdatePackageHandler struct {
	repo     domain.PackageRepository
	products domain.ProductRepository
	cache    domain.Invalidator
}

// NewUpdatePackageHandler creates a new update package handler
func NewUpdatePackageHandler(repo domain.PackageRepository, products domain.ProductRepository, cache domain.Invalidator) *UpdatePackageHandler {
	return &UpdatePackageHandler{repo: repo, products: products, cache: cache}
}

func (h *UpdatePackageHandler) Handle(ctx context.Context, cmd UpdatePackageCommand) (*domain.Package, error) {
	pkg, err := h.repo.FindByPackageID(ctx, cmd.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to find package: %w", err)
	}

	if err := cmd.apply(pkg); err != nil {
		return nil, err
	}

	warnMissingProducts(ctx, h.products, pkg)

	if err := h.repo.Update(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}

	h.cache.Invalidate(ctx)
	return pkg, nil
}
