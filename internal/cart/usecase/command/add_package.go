package command

import (
	"context"

	"github.com/machbazar/storefront/internal/cart/domain"
	"github.com/machbazar/storefront/internal/cart/store"
	catalogdomain "github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/internal/customize"
	"github.com/machbazar/storefront/pkg/logger"
)

// AddPackageCommand puts one customized package in a session cart
type AddPackageCommand struct {
	SessionID string
	Slug      string
	Selection customize.Selection
}

// AddPackageHandler handles add package command
type AddPackageHandler struct {
	sessions *store.Sessions
	packages catalogdomain.PackageRepository
	products catalogdomain.ProductRepository
}

// NewAddPackageHandler creates a new add package handler
func NewAddPackageHandler(sessions *store.Sessions, packages catalogdomain.PackageRepository, products catalogdomain.ProductRepository) *AddPackageHandler {
	return &AddPackageHandler{sessions: sessions, packages: packages, products: products}
}

// Handle executes the add package command. Each call adds a new line with
// quantity 1, even for an identical customization.
func (h *AddPackageHandler) Handle(ctx context.Context, cmd AddPackageCommand) (domain.Cart, error) {
	c, catalog, err := customize.Load(ctx, h.packages, h.products, cmd.Slug)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := c.Apply(cmd.Selection); err != nil {
		return domain.Cart{}, err
	}

	var cart domain.Cart
	err = h.sessions.Do(ctx, cmd.SessionID, func(st *store.Store) error {
		current := st.Cart()
		ids := make([]string, 0, len(current.Items))
		for _, item := range current.Items {
			ids = append(ids, item.Product.ProductID)
		}
		c.StartSequence(customize.LastSequence(c.Package().PackageID, ids))

		product, err := c.CartProduct(catalog)
		if err != nil {
			return err
		}
		cart = st.AddToCart(ctx, product, 1, nil)

		logger.Info(ctx).
			Str("package_id", product.PackageID).
			Str("line_id", product.ProductID).
			Float64("sale_price", product.SalePrice).
			Msg("Customized package added to cart")
		return nil
	})
	return cart, err
}
