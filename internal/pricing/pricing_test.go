package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSalePrice(t *testing.T) {
	tests := []struct {
		base, pct, want float64
	}{
		{500, 10, 450},
		{1000, 0, 1000},
		{1000, 100, 0},
		{333, 33, 223.11},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SalePrice(tt.base, tt.pct), "base=%v pct=%v", tt.base, tt.pct)
	}
}

func TestDiscountAndSavings(t *testing.T) {
	assert.Equal(t, 50.0, DiscountAmount(500, 10))
	assert.Equal(t, 50.0, Savings(500, 450))
	assert.Equal(t, 900.0, TotalPrice(450, 2))
	assert.Equal(t, 112.5, TotalPrice(450, 0.25))
}

func TestOrderTotal(t *testing.T) {
	assert.Equal(t, Breakdown{Subtotal: 900, Discount: 0, Total: 900}, OrderTotal(450, 2, 0))
	assert.Equal(t, Breakdown{Subtotal: 1000, Discount: 150, Total: 850}, OrderTotal(500, 2, 15))
}

func TestOrderTotal_RoundsEachValue(t *testing.T) {
	// 10.5 → 11, 5.25 → 5, 5.25 → 5: the parts do not add up to the subtotal.
	got := OrderTotal(10.5, 1, 50)
	assert.Equal(t, Breakdown{Subtotal: 11, Discount: 5, Total: 5}, got)
	assert.NotEqual(t, got.Subtotal, got.Discount+got.Total)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "৳1,250", Format(1249.6, "en"))
	assert.Equal(t, "৳900", Format(900, "not a tag!"))
}
