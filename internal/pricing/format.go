package pricing

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TakaSign prefixes every formatted amount
const TakaSign = "৳"

// Format renders an amount rounded to whole taka using the grouping rules of
// lang ("en" or "bn"). Unknown tags fall back to English.
func Format(amount float64, lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	return TakaSign + p.Sprintf("%d", int64(math.Round(amount)))
}
