// Package customize builds a priced cart line out of a subscription package.
// A Customizer holds the per-item selection and quantity state of one
// customization session.
package customize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	cartdomain "github.com/machbazar/storefront/internal/cart/domain"
	"github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/internal/pricing"
)

// QuantityStep is the increment used by Increase and Decrease, and the
// smallest quantity a selected item can have.
const QuantityStep = 0.25

var (
	ErrUnknownItem    = errors.New("product is not part of this package")
	ErrNotOptional    = errors.New("item is not optional")
	ErrNotSelected    = errors.New("item is not selected")
	ErrEmptySelection = errors.New("no items selected")
)

// Catalog resolves package items to products by productId
type Catalog map[string]domain.Product

// NewCatalog indexes products by productId
func NewCatalog(products []domain.Product) Catalog {
	c := make(Catalog, len(products))
	for _, p := range products {
		c[p.ProductID] = p
	}
	return c
}

// Totals is the price of the current customization
type Totals struct {
	Base    float64 `json:"base"`
	Sale    float64 `json:"sale"`
	Savings float64 `json:"savings"`
}

// ItemState is the live state of one package item
type ItemState struct {
	ProductID  string  `json:"productId"`
	Selected   bool    `json:"selected"`
	QuantityKg float64 `json:"quantityKg"`
	DefaultKg  float64 `json:"defaultKg"`
	IsOptional bool    `json:"isOptional"`
}

// Customizer is not safe for concurrent use
type Customizer struct {
	pkg        domain.Package
	selected   map[string]bool
	quantityKg map[string]float64
	sequence   int
}

// New seeds a session from the package defaults
func New(pkg domain.Package) *Customizer {
	c := &Customizer{
		pkg:        pkg,
		selected:   make(map[string]bool, len(pkg.Items)),
		quantityKg: make(map[string]float64, len(pkg.Items)),
	}
	c.ApplyTier(TierStandard)
	return c
}

// Package returns the package being customized
func (c *Customizer) Package() domain.Package {
	return c.pkg
}

// Toggle flips the selection of an optional item
func (c *Customizer) Toggle(productID string) error {
	item, ok := c.item(productID)
	if !ok {
		return ErrUnknownItem
	}
	if !item.IsOptional {
		return ErrNotOptional
	}
	c.selected[productID] = !c.selected[productID]
	return nil
}

// SetSelected selects or deselects an optional item. Setting a non-optional
// item to its current value is allowed.
func (c *Customizer) SetSelected(productID string, selected bool) error {
	item, ok := c.item(productID)
	if !ok {
		return ErrUnknownItem
	}
	if c.selected[productID] == selected {
		return nil
	}
	if !item.IsOptional {
		return ErrNotOptional
	}
	c.selected[productID] = selected
	return nil
}

// Increase adds one QuantityStep to a selected item
func (c *Customizer) Increase(productID string) error {
	return c.adjust(productID, func(q float64) float64 { return q + QuantityStep })
}

// Decrease removes one QuantityStep from a selected item, never going below
// QuantityStep
func (c *Customizer) Decrease(productID string) error {
	return c.adjust(productID, func(q float64) float64 { return q - QuantityStep })
}

// SetQuantity snaps kg to the nearest step and stores it for a selected item
func (c *Customizer) SetQuantity(productID string, kg float64) error {
	return c.adjust(productID, func(float64) float64 {
		return math.Round(kg/QuantityStep) * QuantityStep
	})
}

func (c *Customizer) adjust(productID string, fn func(float64) float64) error {
	if _, ok := c.item(productID); !ok {
		return ErrUnknownItem
	}
	if !c.selected[productID] {
		return ErrNotSelected
	}
	c.quantityKg[productID] = math.Max(QuantityStep, fn(c.quantityKg[productID]))
	return nil
}

// Items reports the live state in package order
func (c *Customizer) Items() []ItemState {
	states := make([]ItemState, 0, len(c.pkg.Items))
	for _, item := range c.pkg.Items {
		states = append(states, ItemState{
			ProductID:  item.ProductID,
			Selected:   c.selected[item.ProductID],
			QuantityKg: c.quantityKg[item.ProductID],
			DefaultKg:  item.DefaultKg,
			IsOptional: item.IsOptional,
		})
	}
	return states
}

// CalculateTotal prices the selected items. A product missing from catalog,
// or one without a usable base price, is priced at an even share of the
// package base price instead.
func (c *Customizer) CalculateTotal(catalog Catalog) Totals {
	var base float64
	share := c.fallbackShare()
	for _, item := range c.pkg.Items {
		if !c.selected[item.ProductID] {
			continue
		}
		qty := c.quantityKg[item.ProductID]
		if p, ok := catalog[item.ProductID]; ok && validPrice(p.BasePrice) {
			base += pricing.TotalPrice(p.BasePrice, qty)
		} else {
			base += pricing.TotalPrice(share, qty)
		}
	}

	base = math.Max(0, base)
	sale := math.Max(0, pricing.SalePrice(base, c.pkg.DiscountPercentage))
	return Totals{
		Base:    base,
		Sale:    sale,
		Savings: math.Max(0, pricing.Savings(base, sale)),
	}
}

func (c *Customizer) fallbackShare() float64 {
	if len(c.pkg.Items) == 0 {
		return 0
	}
	return c.pkg.BasePrice / float64(len(c.pkg.Items))
}

func validPrice(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// StartSequence makes the next CartProduct id use n+1 as its suffix
func (c *Customizer) StartSequence(n int) {
	c.sequence = n
}

// CartProduct turns the current customization into a cart product whose id
// is the package id plus a session counter, so repeated customizations of
// one package land on separate cart lines.
func (c *Customizer) CartProduct(catalog Catalog) (cartdomain.Product, error) {
	var components []cartdomain.Component
	for _, item := range c.pkg.Items {
		if c.selected[item.ProductID] {
			components = append(components, cartdomain.Component{
				ProductID:  item.ProductID,
				QuantityKg: c.quantityKg[item.ProductID],
			})
		}
	}
	if len(components) == 0 {
		return cartdomain.Product{}, ErrEmptySelection
	}

	totals := c.CalculateTotal(catalog)
	c.sequence++
	return cartdomain.Product{
		ProductID:          fmt.Sprintf("%s-%d", c.pkg.PackageID, c.sequence),
		Slug:               c.pkg.Slug,
		NameEn:             c.pkg.NameEn,
		NameBn:             c.pkg.NameBn,
		BasePrice:          totals.Base,
		DiscountPercentage: c.pkg.DiscountPercentage,
		SalePrice:          totals.Sale,
		PackageID:          c.pkg.PackageID,
		Components:         components,
	}, nil
}

// LastSequence finds the highest counter already used for packageID among
// cart product ids, or 0
func LastSequence(packageID string, productIDs []string) int {
	prefix := packageID + "-"
	last := 0
	for _, id := range productIDs {
		suffix, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(suffix); err == nil && n > last {
			last = n
		}
	}
	return last
}

func (c *Customizer) item(productID string) (domain.PackageItem, bool) {
	for _, item := range c.pkg.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return domain.PackageItem{}, false
}
