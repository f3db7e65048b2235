package command

import (
	"context"
	"fmt"
	"math"

	"github.com/machbazar/storefront/internal/cart/domain"
	"github.com/machbazar/storefront/internal/cart/store"
	catalogdomain "github.com/machbazar/storefront/internal/catalog/domain"
)

// UpdateItemCommand sets the quantity of one cart line
type UpdateItemCommand struct {
	SessionID  string
	ProductID  string
	QuantityKg float64
}

// UpdateItemHandler handles update item command
type UpdateItemHandler struct {
	sessions *store.Sessions
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(sessions *store.Sessions) *UpdateItemHandler {
	return &UpdateItemHandler{sessions: sessions}
}

// Handle executes the update item command. Zero or less removes the line. Bounds are
// checked against the snapshot taken when the line was added; package lines
// count whole packages.
func (h *UpdateItemHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (domain.Cart, error) {
	var cart domain.Cart
	err := h.sessions.Do(ctx, cmd.SessionID, func(st *store.Store) error {
		current := st.Cart()
		i := current.IndexOf(cmd.ProductID)
		if i < 0 {
			return fmt.Errorf("cart line %s: %w", cmd.ProductID, catalogdomain.ErrNotFound)
		}
		if err := validateUpdate(current.Items[i].Product, cmd.QuantityKg); err != nil {
			return err
		}
		if cmd.QuantityKg <= 0 {
			cart = st.RemoveItem(ctx, cmd.ProductID)
			return nil
		}
		cart = st.UpdateQuantity(ctx, cmd.ProductID, cmd.QuantityKg)
		return nil
	})
	return cart, err
}

func validateUpdate(p domain.Product, qty float64) error {
	var errs catalogdomain.ValidationErrors
	switch {
	case math.IsNaN(qty) || math.IsInf(qty, 0):
		errs.Add("quantity", "must be a number")
	case qty <= 0:
	case p.IsPackage():
		if qty != math.Trunc(qty) {
			errs.Add("quantity", "must be a whole number of packages")
		}
	case qty < p.MinOrderKg:
		errs.Add("quantity", "must be at least %g kg", p.MinOrderKg)
	case p.MaxOrderKg > 0 && qty > p.MaxOrderKg:
		errs.Add("quantity", "must not exceed %g kg", p.MaxOrderKg)
	}
	return errs.Err()
}

// RemoveItemCommand drops one cart line
type RemoveItemCommand struct {
	SessionID string
	ProductID string
}

// RemoveItemHandler handles remove item command
type RemoveItemHandler struct {
	sessions *store.Sessions
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(sessions *store.Sessions) *RemoveItemHandler {
	return &RemoveItemHandler{sessions: sessions}
}

// Handle executes the remove item command; absent lines are not an error
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) (domain.Cart, error) {
	var cart domain.Cart
	err := h.sessions.Do(ctx, cmd.SessionID, func(st *store.Store) error {
		cart = st.RemoveItem(ctx, cmd.ProductID)
		return nil
	})
	return cart, err
}

// ClearCartCommand empties a session cart
type ClearCartCommand struct {
	SessionID string
}

// ClearCartHandler handles clear cart command
type ClearCartHandler struct {
	sessions *store.Sessions
}

// NewClearCartHandler creates a new clear cart handler
func NewClearCartHandler(sessions *store.Sessions) *ClearCartHandler {
	return &ClearCartHandler{sessions: sessions}
}

// Handle executes the clear cart command
func (h *ClearCartHandler) Handle(ctx context.Context, cmd ClearCartCommand) (domain.Cart, error) {
	var cart domain.Cart
	err := h.sessions.Do(ctx, cmd.SessionID, func(st *store.Store) error {
		cart = st.ClearCart(ctx)
		return nil
	})
	return cart, err
}
