package query

import (
	"context"
	"time"

	"github.com/machbazar/storefront/internal/cart/domain"
	"github.com/machbazar/storefront/internal/cart/store"
	"github.com/machbazar/storefront/internal/pricing"
)

// LineView is a cart line with display prices
type LineView struct {
	domain.CartItem
	LineTotal     float64 `json:"lineTotal"`
	UnitPriceText string  `json:"unitPriceText"`
	LineTotalText string  `json:"lineTotalText"`
}

// CartView is the cart as rendered to shoppers
type CartView struct {
	SessionID   string     `json:"sessionId"`
	Items       []LineView `json:"items"`
	Total       float64    `json:"total"`
	TotalText   string     `json:"totalText"`
	ItemCount   float64    `json:"itemCount"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

// NewCartView formats c for lang ("en" or "bn")
func NewCartView(sessionID string, c domain.Cart, lang string) CartView {
	view := CartView{
		SessionID:   sessionID,
		Items:       make([]LineView, 0, len(c.Items)),
		Total:       c.Total,
		TotalText:   pricing.Format(c.Total, lang),
		ItemCount:   c.ItemCount,
		LastUpdated: c.LastUpdated,
	}
	for _, item := range c.Items {
		total := item.LineTotal()
		view.Items = append(view.Items, LineView{
			CartItem:      item,
			LineTotal:     total,
			UnitPriceText: pricing.Format(item.Product.SalePrice, lang),
			LineTotalText: pricing.Format(total, lang),
		})
	}
	return view
}

// GetCartQuery represents the query to read a session cart
type GetCartQuery struct {
	SessionID string
	Lang      string
}

// GetCartHandler handles get cart query
type GetCartHandler struct {
	sessions *store.Sessions
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(sessions *store.Sessions) *GetCartHandler {
	return &GetCartHandler{sessions: sessions}
}

// Handle executes the get cart query
func (h *GetCartHandler) Handle(ctx context.Context, query GetCartQuery) (*CartView, error) {
	st, err := h.sessions.Open(ctx, query.SessionID)
	if err != nil {
		return nil, err
	}
	view := NewCartView(query.SessionID, st.Cart(), query.Lang)
	return &view, nil
}
