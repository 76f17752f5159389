package usecase

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/phenrril/fightshop/internal/domain"
)

// PriceBounds returns the min and max price over products, or the default range when empty.
func PriceBounds(products []domain.Product) domain.PriceRange {
	if len(products) == 0 {
		return domain.DefaultPriceRange
	}
	lo, hi := products[0].Price, products[0].Price
	for _, p := range products[1:] {
		if p.Price < lo {
			lo = p.Price
		}
		if p.Price > hi {
			hi = p.Price
		}
	}
	return domain.PriceRange{lo, hi}
}

// DefaultFilters is the initial and the "clear" state of the catalog filters.
func DefaultFilters(products []domain.Product) domain.FilterOptions {
	return domain.FilterOptions{
		Categories: []string{},
		PriceRange: PriceBounds(products),
		Sizes:      []string{},
		Colors:     []string{},
		Brands:     []string{},
		SortBy:     domain.SortPopular,
	}
}

// AvailableFacets collects facet values over the full, unfiltered product list.
// Categories keep first-seen order; sizes and brands are sorted by plain string
// comparison, so "10 oz" sorts before "8 oz".
func AvailableFacets(products []domain.Product) domain.Facets {
	f := domain.Facets{
		Categories: []domain.CategoryFacet{},
		Sizes:      []string{},
		Colors:     []domain.ColorFacet{},
		Brands:     []string{},
	}
	catIdx := map[string]int{}
	sizes := map[string]struct{}{}
	colorIdx := map[string]int{}
	brands := map[string]struct{}{}

	for _, p := range products {
		if i, ok := catIdx[p.Category]; ok {
			f.Categories[i].Count++
		} else {
			catIdx[p.Category] = len(f.Categories)
			f.Categories = append(f.Categories, domain.CategoryFacet{ID: p.Category, Name: CategoryName(p.Category), Count: 1})
		}
		for _, s := range p.Sizes {
			if _, ok := sizes[s]; !ok {
				sizes[s] = struct{}{}
				f.Sizes = append(f.Sizes, s)
			}
		}
		for _, c := range p.Colors {
			if !c.Available {
				continue
			}
			// last value seen for a name wins
			if i, ok := colorIdx[c.Name]; ok {
				f.Colors[i].Value = c.Value
				continue
			}
			colorIdx[c.Name] = len(f.Colors)
			f.Colors = append(f.Colors, domain.ColorFacet{Name: c.Name, Value: c.Value})
		}
		if _, ok := brands[p.Brand]; !ok {
			brands[p.Brand] = struct{}{}
			f.Brands = append(f.Brands, p.Brand)
		}
	}
	sort.Strings(f.Sizes)
	sort.Strings(f.Brands)
	return f
}

// Matches reports whether p passes every active filter.
func Matches(p *domain.Product, f domain.FilterOptions) bool {
	if f.SearchQuery != "" {
		q := strings.ToLower(f.SearchQuery)
		text := strings.ToLower(p.Name + " " + p.Brand + " " + p.Description)
		if !strings.Contains(text, q) {
			return false
		}
	}
	if len(f.Categories) > 0 && !contains(f.Categories, p.Category) {
		return false
	}
	if !f.PriceRange.Contains(p.Price) {
		return false
	}
	if len(f.Sizes) > 0 {
		ok := false
		for _, s := range f.Sizes {
			if p.HasSize(s) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(f.Colors) > 0 {
		ok := false
		for _, c := range f.Colors {
			if p.HasAvailableColor(c) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(f.Brands) > 0 && !contains(f.Brands, p.Brand) {
		return false
	}
	if f.InStock && !p.InStock {
		return false
	}
	return true
}

// FilterProducts returns the matching products sorted by f.SortBy. The input is not modified.
func FilterProducts(products []domain.Product, f domain.FilterOptions) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for i := range products {
		if Matches(&products[i], f) {
			out = append(out, products[i])
		}
	}
	SortProducts(out, f.SortBy)
	return out
}

// SortProducts sorts in place. The sort is stable, so ties keep catalog order.
// Unknown sort keys fall back to popularity.
func SortProducts(list []domain.Product, by domain.SortBy) {
	var less func(i, j int) bool
	switch by {
	case domain.SortPriceAsc:
		less = func(i, j int) bool { return list[i].Price < list[j].Price }
	case domain.SortPriceDesc:
		less = func(i, j int) bool { return list[i].Price > list[j].Price }
	case domain.SortNewest:
		less = func(i, j int) bool { return list[i].IsNew && !list[j].IsNew }
	case domain.SortRating:
		less = func(i, j int) bool { return list[i].Rating > list[j].Rating }
	case domain.SortName:
		// collators keep internal buffers and are not safe for concurrent use
		col := collate.New(language.Russian)
		less = func(i, j int) bool { return col.CompareString(list[i].Name, list[j].Name) < 0 }
	default:
		less = func(i, j int) bool { return list[i].Popularity > list[j].Popularity }
	}
	sort.SliceStable(list, less)
}

// Filter runs the engine: facets over all products plus the filtered, sorted subset.
func Filter(products []domain.Product, f domain.FilterOptions) domain.FilteredResult {
	return domain.FilteredResult{
		Items:           FilterProducts(products, f),
		AvailableFacets: AvailableFacets(products),
	}
}

// ActiveFilterCount is the number shown on the "clear filters" badge. A changed price
// range counts once even when both ends differ from bounds.
func ActiveFilterCount(f domain.FilterOptions, bounds domain.PriceRange) int {
	n := len(f.Categories) + len(f.Sizes) + len(f.Colors) + len(f.Brands)
	if f.InStock {
		n++
	}
	if f.SearchQuery != "" {
		n++
	}
	if f.PriceRange != bounds {
		n++
	}
	return n
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
