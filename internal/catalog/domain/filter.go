package domain

// Sort keys accepted by the catalog query surface
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortPopular   = "popular"
	SortRating    = "rating"
	SortNewest    = "newest"
	SortFeatured  = "featured"
)

// SortField is one ORDER BY column
type SortField struct {
	Column string
	Desc   bool
}

var sortFields = map[string][]SortField{
	SortPriceAsc:  {{Column: "sale_price"}},
	SortPriceDesc: {{Column: "sale_price", Desc: true}},
	SortPopular:   {{Column: "sold_count", Desc: true}},
	SortRating:    {{Column: "rating", Desc: true}},
	SortNewest:    {{Column: "created_at", Desc: true}},
	SortFeatured:  {{Column: "featured", Desc: true}, {Column: "sold_count", Desc: true}},
}

// ResolveSort maps a sort key to columns. Unknown or empty keys fall back to
// featured first, then best-selling.
func ResolveSort(key string) []SortField {
	if fields, ok := sortFields[key]; ok {
		return fields
	}
	return sortFields[SortFeatured]
}

// ProductFilter narrows a catalog search to published products
type ProductFilter struct {
	FishType    string
	FishSizeKg  string
	CuttingSize string
	Source      string
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
	Sort        []SortField
	Limit       int
	Offset      int
}

// PriceRange is the min and max sale price among published products
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Facets are the distinct values used to build the filter sidebar
type Facets struct {
	FishTypes    []string   `json:"fishTypes"`
	FishSizes    []string   `json:"fishSizes"`
	CuttingSizes []string   `json:"cuttingSizes"`
	Sources      []string   `json:"sources"`
	PriceRange   PriceRange `json:"priceRange"`
}

// EmptyFacets returns facets with non-nil lists so they encode as []
func EmptyFacets() *Facets {
	return &Facets{
		FishTypes:    []string{},
		FishSizes:    []string{},
		CuttingSizes: []string{},
		Sources:      []string{},
	}
}
