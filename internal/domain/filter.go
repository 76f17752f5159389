package domain

type SortBy string

const (
	SortPopular   SortBy = "popular"
	SortPriceAsc  SortBy = "price-asc"
	SortPriceDesc SortBy = "price-desc"
	SortNewest    SortBy = "newest"
	SortRating    SortBy = "rating"
	SortName      SortBy = "name"
)

// DefaultPriceRange is used when the catalog is empty.
var DefaultPriceRange = PriceRange{0, 100000}

// PriceRange is an inclusive [min, max] bound.
type PriceRange [2]int64

func (r PriceRange) Min() int64 { return r[0] }
func (r PriceRange) Max() int64 { return r[1] }

// Contains reports whether price lies within the range, both ends inclusive.
func (r PriceRange) Contains(price int64) bool {
	return price >= r[0] && price <= r[1]
}

// FilterOptions is the full filter state of the catalog page. It is always replaced as a
// whole, never patched.
type FilterOptions struct {
	SearchQuery string     `json:"searchQuery"`
	Categories  []string   `json:"categories"`
	PriceRange  PriceRange `json:"priceRange"`
	Sizes       []string   `json:"sizes"`
	Colors      []string   `json:"colors"`
	Brands      []string   `json:"brands"`
	InStock     bool       `json:"inStock"`
	SortBy      SortBy     `json:"sortBy"`
}

type CategoryFacet struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ColorFacet struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Facets lists the values available for each filter dimension over the whole catalog.
type Facets struct {
	Categories []CategoryFacet `json:"categories"`
	Sizes      []string        `json:"sizes"`
	Colors     []ColorFacet    `json:"colors"`
	Brands     []string        `json:"brands"`
}

type FilteredResult struct {
	Items           []Product `json:"items"`
	AvailableFacets Facets    `json:"availableFacets"`
}
