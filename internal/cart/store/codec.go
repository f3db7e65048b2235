package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/machbazar/storefront/internal/cart/domain"
)

// Persisted snapshots keep dates as strings. Older clients wrote them in
// whatever shape their runtime produced, so decoding goes through dateparse
// instead of time.Time's strict RFC 3339 unmarshaler.
type storedItem struct {
	Product         domain.Product         `json:"product"`
	Quantity        float64                `json:"quantity"`
	SelectedOptions domain.SelectedOptions `json:"selectedOptions"`
	AddedAt         string                 `json:"addedAt"`
}

type storedCart struct {
	Items       []storedItem `json:"items"`
	Total       float64      `json:"total"`
	ItemCount   float64      `json:"itemCount"`
	LastUpdated string       `json:"lastUpdated"`
}

// Encode serializes a cart snapshot
func Encode(c domain.Cart) ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	return data, nil
}

// Decode parses a stored snapshot, repairing string dates into time values.
// Total and ItemCount are re-derived rather than trusted.
func Decode(data []byte) (domain.Cart, error) {
	var raw storedCart
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Cart{}, fmt.Errorf("failed to decode cart: %w", err)
	}

	cart := domain.NewCart()
	for i, item := range raw.Items {
		addedAt, err := parseDate(item.AddedAt)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("item %d: invalid addedAt: %w", i, err)
		}
		cart.Items = append(cart.Items, domain.CartItem{
			Product:         item.Product,
			Quantity:        item.Quantity,
			SelectedOptions: item.SelectedOptions,
			AddedAt:         addedAt,
		})
	}

	lastUpdated, err := parseDate(raw.LastUpdated)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("invalid lastUpdated: %w", err)
	}
	cart.LastUpdated = lastUpdated
	cart.Recalculate()

	return cart, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	// e.g. JS Date.toString(): "Tue Mar 05 2024 14:03:00 GMT+0600 (Bangladesh Standard Time)"
	return dateparse.ParseAny(s)
}
