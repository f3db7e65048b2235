package customize

import (
	"context"
	"errors"
	"fmt"

	"github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/pkg/logger"
)

// Choice is a client-side change to one package item
type Choice struct {
	ProductID  string   `json:"productId"`
	Selected   *bool    `json:"selected,omitempty"`
	QuantityKg *float64 `json:"quantityKg,omitempty"`
}

// Selection replays a client customization: an optional preset followed by
// per-item choices
type Selection struct {
	Tier  string   `json:"tier,omitempty"`
	Items []Choice `json:"items,omitempty"`
}

// Quote is the priced state of a customization
type Quote struct {
	PackageID string      `json:"packageId"`
	Slug      string      `json:"slug"`
	Tier      Tier        `json:"tier"`
	Items     []ItemState `json:"items"`
	Totals    Totals      `json:"totals"`
}

// Apply replays sel with the same rules as the interactive operations
func (c *Customizer) Apply(sel Selection) error {
	if sel.Tier != "" {
		tier, err := ParseTier(sel.Tier)
		if err != nil {
			return err
		}
		c.ApplyTier(tier)
	}

	for _, choice := range sel.Items {
		if choice.Selected != nil {
			if err := c.SetSelected(choice.ProductID, *choice.Selected); err != nil {
				return fmt.Errorf("%s: %w", choice.ProductID, err)
			}
		}
		if choice.QuantityKg == nil {
			continue
		}
		if !c.selected[choice.ProductID] && c.quantityKg[choice.ProductID] == *choice.QuantityKg {
			continue
		}
		if err := c.SetQuantity(choice.ProductID, *choice.QuantityKg); err != nil {
			return fmt.Errorf("%s: %w", choice.ProductID, err)
		}
	}
	return nil
}

// Quote prices the current state
func (c *Customizer) Quote(catalog Catalog) Quote {
	return Quote{
		PackageID: c.pkg.PackageID,
		Slug:      c.pkg.Slug,
		Tier:      c.CurrentTier(),
		Items:     c.Items(),
		Totals:    c.CalculateTotal(catalog),
	}
}

// IsInputError reports whether err was caused by the client's selection
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnknownItem) ||
		errors.Is(err, ErrNotOptional) ||
		errors.Is(err, ErrNotSelected) ||
		errors.Is(err, ErrEmptySelection) ||
		errors.Is(err, ErrUnknownTier)
}

// Load starts a session for the published package at slug. If the referenced
// products cannot be read, pricing falls back to the package's own price.
func Load(ctx context.Context, packages domain.PackageRepository, products domain.ProductRepository, slug string) (*Customizer, Catalog, error) {
	pkg, err := packages.FindBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load package: %w", err)
	}
	if !pkg.Published {
		return nil, nil, fmt.Errorf("failed to load package: %w", domain.ErrNotFound)
	}

	found, err := products.FindByProductIDs(ctx, pkg.ProductIDs())
	if err != nil {
		logger.Warn(ctx).Err(err).Str("package_id", pkg.PackageID).Msg("Failed to load package products, using fallback pricing")
		found = nil
	}

	return New(*pkg), NewCatalog(found), nil
}
