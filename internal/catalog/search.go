package catalog

import (
	"strings"
	"unicode"

	"github.com/mobileriadardania/storefront/internal/domain"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filter narrows a product listing. Zero value matches everything.
type Filter struct {
	Category string `query:"category"`
	Query    string `query:"q"`
}

// IsZero reports whether the filter matches every product.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Category) == "" && strings.TrimSpace(f.Query) == ""
}

// Match reports whether p satisfies the filter. Category compares case
// insensitively; the query is a substring search over title, subtitle,
// description and category with diacritics folded.
func (f Filter) Match(p domain.Product) bool {
	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, p.Category) {
		return false
	}
	q := Fold(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	for _, field := range []string{p.Title, p.Subtitle, p.Description, p.Category} {
		if strings.Contains(Fold(field), q) {
			return true
		}
	}
	return false
}

// Apply returns the products matching f, preserving order.
func (f Filter) Apply(items []domain.Product) []domain.Product {
	if f.IsZero() {
		return items
	}
	out := make([]domain.Product, 0, len(items))
	for _, p := range items {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Fold lowercases s and strips combining marks, so "Kuzhinë" folds to
// "kuzhine" and "Çarçaf" to "carcaf".
func Fold(s string) string {
	if s == "" {
		return s
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
