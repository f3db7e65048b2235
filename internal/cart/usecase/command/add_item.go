package command

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/machbazar/storefront/internal/cart/domain"
	"github.com/machbazar/storefront/internal/cart/store"
	catalogdomain "github.com/machbazar/storefront/internal/catalog/domain"
)

// AddItemCommand puts a catalog product in a session cart
type AddItemCommand struct {
	SessionID  string
	ProductID  string
	QuantityKg float64
	Options    *domain.SelectedOptions
}

// AddItemHandler handles add item command
type AddItemHandler struct {
	sessions *store.Sessions
	products catalogdomain.ProductRepository
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(sessions *store.Sessions, products catalogdomain.ProductRepository) *AddItemHandler {
	return &AddItemHandler{sessions: sessions, products: products}
}

// Handle executes the add item command. The quantity the line would end up
// with must respect the product's order bounds and current stock.
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (domain.Cart, error) {
	product, err := h.products.FindByProductID(ctx, cmd.ProductID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("failed to load product: %w", err)
	}
	if !product.Published {
		return domain.Cart{}, fmt.Errorf("failed to load product: %w", catalogdomain.ErrNotFound)
	}

	var cart domain.Cart
	err = h.sessions.Do(ctx, cmd.SessionID, func(st *store.Store) error {
		if err := validateAdd(product, st.GetItemQuantity(product.ProductID), cmd); err != nil {
			return err
		}
		cart = st.AddToCart(ctx, Snapshot(product), cmd.QuantityKg, cmd.Options)
		return nil
	})
	return cart, err
}

func validateAdd(p *catalogdomain.Product, inCart float64, cmd AddItemCommand) error {
	var errs catalogdomain.ValidationErrors

	qty := cmd.QuantityKg
	total := inCart + qty
	switch {
	case math.IsNaN(qty) || math.IsInf(qty, 0) || qty <= 0:
		errs.Add("quantity", "must be greater than 0")
	case qty < p.MinOrderKg:
		errs.Add("quantity", "must be at least %g kg", p.MinOrderKg)
	case p.MaxOrderKg > 0 && total > p.MaxOrderKg:
		errs.Add("quantity", "must not exceed %g kg in total", p.MaxOrderKg)
	case !p.InStock():
		errs.Add("quantity", "product is out of stock")
	case total > p.StockKg:
		errs.Add("quantity", "only %g kg in stock", p.StockKg)
	}

	if opts := cmd.Options; opts != nil {
		checkOption(&errs, "cuttingSize", opts.CuttingSize, p.CuttingSizes)
		checkOption(&errs, "headCut", opts.HeadCut, p.HeadCutOptions)
		checkOption(&errs, "cuttingStyle", opts.CuttingStyle, p.CuttingStyles)
	}
	return errs.Err()
}

func checkOption(errs *catalogdomain.ValidationErrors, field, chosen string, offered []string) {
	if chosen != "" && !slices.Contains(offered, chosen) {
		errs.Add(field, "%q is not offered for this product", chosen)
	}
}

// Snapshot copies the cart-relevant fields of a catalog product
func Snapshot(p *catalogdomain.Product) domain.Product {
	return domain.Product{
		ProductID:          p.ProductID,
		Slug:               p.Slug,
		NameEn:             p.NameEn,
		NameBn:             p.NameBn,
		BasePrice:          p.BasePrice,
		DiscountPercentage: p.DiscountPercentage,
		SalePrice:          p.SalePrice,
		StockKg:            p.StockKg,
		MinOrderKg:         p.MinOrderKg,
		MaxOrderKg:         p.MaxOrderKg,
	}
}
