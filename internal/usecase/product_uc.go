package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/phenrril/fightshop/internal/domain"
)

// ProductUC serves the catalog. Products are immutable at runtime, so the list is loaded
// once and kept in memory until Reload.
type ProductUC struct {
	Products domain.ProductRepo

	mu     sync.RWMutex
	loaded []domain.Product
}

// Catalog is the catalog page payload.
type Catalog struct {
	Items         []domain.Product     `json:"items"`
	Facets        domain.Facets        `json:"availableFacets"`
	PriceRange    domain.PriceRange    `json:"priceRange"`
	Filters       domain.FilterOptions `json:"filters"`
	Total         int                  `json:"totalProducts"`
	Filtered      int                  `json:"filteredProductsCount"`
	ActiveFilters int                  `json:"activeFiltersCount"`
}

func (uc *ProductUC) all(ctx context.Context) ([]domain.Product, error) {
	uc.mu.RLock()
	list := uc.loaded
	uc.mu.RUnlock()
	if list != nil {
		return list, nil
	}
	return uc.Reload(ctx)
}

// Reload refreshes the in-memory snapshot from the repository.
func (uc *ProductUC) Reload(ctx context.Context) ([]domain.Product, error) {
	list, err := uc.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Product{}
	}
	uc.mu.Lock()
	uc.loaded = list
	uc.mu.Unlock()
	return list, nil
}

// Defaults returns the initial filter state for the current catalog.
func (uc *ProductUC) Defaults(ctx context.Context) (domain.FilterOptions, error) {
	list, err := uc.all(ctx)
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return DefaultFilters(list), nil
}

// Browse applies f to the catalog. A reversed price range is swapped.
func (uc *ProductUC) Browse(ctx context.Context, f domain.FilterOptions) (*Catalog, error) {
	list, err := uc.all(ctx)
	if err != nil {
		return nil, err
	}
	if f.PriceRange[0] > f.PriceRange[1] {
		f.PriceRange[0], f.PriceRange[1] = f.PriceRange[1], f.PriceRange[0]
	}
	if f.SortBy == "" {
		f.SortBy = domain.SortPopular
	}
	bounds := PriceBounds(list)
	res := Filter(list, f)
	return &Catalog{
		Items:         res.Items,
		Facets:        res.AvailableFacets,
		PriceRange:    bounds,
		Filters:       f,
		Total:         len(list),
		Filtered:      len(res.Items),
		ActiveFilters: ActiveFilterCount(f, bounds),
	}, nil
}

func (uc *ProductUC) Get(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	list, err := uc.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			p := list[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Related returns up to n other products, same category first.
func (uc *ProductUC) Related(ctx context.Context, id string, n int) ([]domain.Product, error) {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	list, err := uc.all(ctx)
	if err != nil {
		return nil, err
	}
	same, other := []domain.Product{}, []domain.Product{}
	for _, q := range list {
		if q.ID == p.ID {
			continue
		}
		if q.Category == p.Category {
			same = append(same, q)
		} else {
			other = append(other, q)
		}
	}
	out := append(same, other...)
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (uc *ProductUC) Categories(ctx context.Context) ([]domain.CategoryFacet, error) {
	list, err := uc.all(ctx)
	if err != nil {
		return nil, err
	}
	return AvailableFacets(list).Categories, nil
}

// lookup builds an id index for joining carts against the catalog.
func (uc *ProductUC) lookup(ctx context.Context) (map[string]*domain.Product, error) {
	list, err := uc.all(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]*domain.Product, len(list))
	for i := range list {
		m[list[i].ID] = &list[i]
	}
	return m, nil
}
