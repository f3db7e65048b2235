package customize

import (
	"errors"
	"fmt"

	"github.com/machbazar/storefront/internal/catalog/domain"
)

// Tier names a canned selection of package items
type Tier string

const (
	TierEssential Tier = "essential"
	TierStandard  Tier = "standard"
	TierUltimate  Tier = "ultimate"
	TierCustom    Tier = "custom"
)

// ErrUnknownTier is returned for names other than the three presets
var ErrUnknownTier = errors.New("unknown tier")

// presets in the order CurrentTier tries them
var presets = []struct {
	tier   Tier
	choose func(domain.PackageItem) bool
}{
	{TierUltimate, func(domain.PackageItem) bool { return true }},
	{TierStandard, func(item domain.PackageItem) bool { return item.SelectedByDefault }},
	{TierEssential, func(item domain.PackageItem) bool { return !item.IsOptional }},
}

// ParseTier validates a tier name. TierCustom is not a preset and is rejected.
func ParseTier(s string) (Tier, error) {
	for _, p := range presets {
		if string(p.tier) == s {
			return p.tier, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownTier, s)
}

// ApplyTier selects items per the preset and resets every quantity to its
// default. Unknown tiers leave the state untouched.
func (c *Customizer) ApplyTier(tier Tier) {
	for _, p := range presets {
		if p.tier != tier {
			continue
		}
		for _, item := range c.pkg.Items {
			c.selected[item.ProductID] = p.choose(item)
			c.quantityKg[item.ProductID] = item.DefaultKg
		}
		return
	}
}

// CurrentTier reports the preset the live state matches exactly, or
// TierCustom
func (c *Customizer) CurrentTier() Tier {
	for _, p := range presets {
		if c.matches(p.choose) {
			return p.tier
		}
	}
	return TierCustom
}

func (c *Customizer) matches(choose func(domain.PackageItem) bool) bool {
	for _, item := range c.pkg.Items {
		if c.selected[item.ProductID] != choose(item) {
			return false
		}
		if c.quantityKg[item.ProductID] != item.DefaultKg {
			return false
		}
	}
	return true
}
