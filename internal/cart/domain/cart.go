package domain

import (
	"time"

	"github.com/machbazar/storefront/internal/pricing"
)

// Product is the snapshot of a catalog product (or a customized package)
// captured when it is put in the cart
type Product struct {
	ProductID          string  `json:"productId"`
	Slug               string  `json:"slug,omitempty"`
	NameEn             string  `json:"nameEn"`
	NameBn             string  `json:"nameBn,omitempty"`
	BasePrice          float64 `json:"basePrice"`
	DiscountPercentage float64 `json:"discountPercentage"`
	SalePrice          float64 `json:"salePrice"`
	StockKg            float64 `json:"stockKg"`
	MinOrderKg         float64 `json:"minOrderKg"`
	MaxOrderKg         float64 `json:"maxOrderKg"`

	// Set only on products synthesized from a package customization
	PackageID  string      `json:"packageId,omitempty"`
	Components []Component `json:"components,omitempty"`
}

// IsPackage reports whether the product stands for a customized package
func (p Product) IsPackage() bool {
	return p.PackageID != ""
}

// Component is one catalog product bundled into a customized package
type Component struct {
	ProductID  string  `json:"productId"`
	QuantityKg float64 `json:"quantityKg"`
}

// SelectedOptions are the per-line preparation choices
type SelectedOptions struct {
	CuttingSize  string `json:"cuttingSize,omitempty"`
	HeadCut      string `json:"headCut,omitempty"`
	CuttingStyle string `json:"cuttingStyle,omitempty"`
}

// IsZero reports whether no option was chosen
func (o SelectedOptions) IsZero() bool {
	return o == SelectedOptions{}
}

// CartItem is one cart line, identified by Product.ProductID
type CartItem struct {
	Product         Product         `json:"product"`
	Quantity        float64         `json:"quantity"`
	SelectedOptions SelectedOptions `json:"selectedOptions"`
	AddedAt         time.Time       `json:"addedAt"`
}

// LineTotal is the sale price times the quantity
func (i CartItem) LineTotal() float64 {
	return pricing.TotalPrice(i.Product.SalePrice, i.Quantity)
}

// Cart is the persisted cart snapshot. Total and ItemCount are derived from
// Items and are only ever set by Recalculate.
type Cart struct {
	Items       []CartItem `json:"items"`
	Total       float64    `json:"total"`
	ItemCount   float64    `json:"itemCount"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

// NewCart returns an empty cart
func NewCart() Cart {
	return Cart{Items: []CartItem{}}
}

// Recalculate re-derives Total and ItemCount from Items
func (c *Cart) Recalculate() {
	var total, count float64
	for _, item := range c.Items {
		total += item.LineTotal()
		count += item.Quantity
	}
	c.Total = total
	c.ItemCount = count
}

// IndexOf returns the position of the line for productID, or -1
func (c *Cart) IndexOf(productID string) int {
	for i, item := range c.Items {
		if item.Product.ProductID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy safe to hand to callers
func (c Cart) Clone() Cart {
	out := c
	out.Items = make([]CartItem, len(c.Items))
	for i, item := range c.Items {
		if item.Product.Components != nil {
			item.Product.Components = append([]Component(nil), item.Product.Components...)
		}
		out.Items[i] = item
	}
	return out
}
