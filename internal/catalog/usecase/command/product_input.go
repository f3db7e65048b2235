package command

import (
	"regexp"
	"strings"

	"github.com/machbazar/storefront/internal/catalog/domain"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ProductInput carries the admin product form. Option lists arrive as
// comma-separated strings. There is no sale price field: it is always derived.
type ProductInput struct {
	Slug               string
	NameEn             string
	NameBn             string
	DescriptionEn      string
	DescriptionBn      string
	FishType           string
	FishSizeKg         string
	Source             string
	BasePrice          float64
	DiscountPercentage float64
	StockKg            float64
	MinOrderKg         float64
	MaxOrderKg         float64
	CuttingSizes       string
	CuttingStyles      string
	HeadCutOptions     string
	ImageURL           string
	Published          bool
	Featured           bool
}

// apply validates the input and copies it onto p. p is left untouched when
// any field is invalid.
func (in ProductInput) apply(p *domain.Product) error {
	var errs domain.ValidationErrors

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		errs.Add("slug", "is required")
	} else if !slugPattern.MatchString(slug) {
		errs.Add("slug", "must be lowercase letters, digits and dashes")
	}
	if strings.TrimSpace(in.NameEn) == "" {
		errs.Add("nameEn", "is required")
	}
	if in.BasePrice < 0 {
		errs.Add("basePrice", "must not be negative")
	}
	if in.DiscountPercentage < 0 || in.DiscountPercentage > 100 {
		errs.Add("discountPercentage", "must be between 0 and 100")
	}
	if in.StockKg < 0 {
		errs.Add("stockKg", "must not be negative")
	}
	if in.MinOrderKg <= 0 {
		errs.Add("minOrderKg", "must be greater than 0")
	}
	if in.MaxOrderKg < in.MinOrderKg {
		errs.Add("maxOrderKg", "must not be less than minOrderKg")
	}

	sizes, err := domain.ParseOptionList("cuttingSizes", in.CuttingSizes)
	errs.Append(err)
	styles, err := domain.ParseOptionList("cuttingStyles", in.CuttingStyles)
	errs.Append(err)
	headCuts, err := domain.ParseOptionList("headCutOptions", in.HeadCutOptions)
	errs.Append(err)

	if err := errs.Err(); err != nil {
		return err
	}

	p.Slug = slug
	p.NameEn = strings.TrimSpace(in.NameEn)
	p.NameBn = strings.TrimSpace(in.NameBn)
	p.DescriptionEn = in.DescriptionEn
	p.DescriptionBn = in.DescriptionBn
	p.FishType = strings.TrimSpace(in.FishType)
	p.FishSizeKg = strings.TrimSpace(in.FishSizeKg)
	p.Source = strings.TrimSpace(in.Source)
	p.BasePrice = in.BasePrice
	p.DiscountPercentage = in.DiscountPercentage
	p.StockKg = in.StockKg
	p.MinOrderKg = in.MinOrderKg
	p.MaxOrderKg = in.MaxOrderKg
	p.CuttingSizes = sizes
	p.CuttingStyles = styles
	p.HeadCutOptions = headCuts
	p.ImageURL = in.ImageURL
	p.Published = in.Published
	p.Featured = in.Featured
	return nil
}
