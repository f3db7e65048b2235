package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionList(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr string
	}{
		{name: "blank", raw: "  ", want: []string{}},
		{name: "single", raw: "small", want: []string{"small"}},
		{name: "trimmed and ordered", raw: " large, small ,medium", want: []string{"large", "small", "medium"}},
		{name: "bengali", raw: "ছোট, বড়", want: []string{"ছোট", "বড়"}},
		{name: "trailing comma", raw: "small,", wantErr: "entry 2 is empty"},
		{name: "empty middle", raw: "small,,large", wantErr: "entry 2 is empty"},
		{name: "duplicate", raw: "small, Small", wantErr: `"Small" is listed twice`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOptionList("cuttingSizes", tt.raw)
			if tt.wantErr != "" {
				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, "cuttingSizes", ve.Field)
				assert.Equal(t, tt.wantErr, ve.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.Add("basePrice", "must not be negative")
	errs.Add("basePrice", "is required")
	_, err := ParseOptionList("cuttingStyles", "a,,b")
	errs.Append(err)
	errs.Append(errors.New("not a field error"))

	require.Error(t, errs.Err())
	assert.Equal(t, map[string]string{
		"basePrice":     "must not be negative",
		"cuttingStyles": "entry 2 is empty",
	}, errs.Fields())

	wrapped := fmt.Errorf("failed to create product: %w", errs.Err())
	got, ok := AsValidation(wrapped)
	require.True(t, ok)
	assert.Len(t, got, 3)

	_, ok = AsValidation(errors.New("boom"))
	assert.False(t, ok)
}

func TestResolveSort(t *testing.T) {
	assert.Equal(t, []SortField{{Column: "sale_price"}}, ResolveSort(SortPriceAsc))
	assert.Equal(t, []SortField{{Column: "sold_count", Desc: true}}, ResolveSort(SortPopular))

	fallback := []SortField{{Column: "featured", Desc: true}, {Column: "sold_count", Desc: true}}
	assert.Equal(t, fallback, ResolveSort(""))
	assert.Equal(t, fallback, ResolveSort("cheapest"))
}

func TestProductBeforeSaveDerivesSalePrice(t *testing.T) {
	p := &Product{BasePrice: 500, DiscountPercentage: 10, SalePrice: 1}
	require.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, 450.0, p.SalePrice)
	assert.Equal(t, 50.0, p.Savings())

	pkg := &Package{BasePrice: 1000, DiscountPercentage: 20}
	require.NoError(t, pkg.BeforeSave(nil))
	assert.Equal(t, 800.0, pkg.SalePrice)
}
