package httpserver

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/phenrril/fightshop/internal/domain"
	"github.com/phenrril/fightshop/internal/usecase"
)

const relatedCount = 4

// listParam reads a repeated or comma separated query parameter.
func listParam(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// filtersFromQuery overlays query parameters onto the catalog defaults.
func filtersFromQuery(q url.Values, f domain.FilterOptions) domain.FilterOptions {
	f.SearchQuery = strings.TrimSpace(q.Get("q"))
	if v := listParam(q, "category"); v != nil {
		f.Categories = v
	}
	if v := listParam(q, "size"); v != nil {
		f.Sizes = v
	}
	if v := listParam(q, "color"); v != nil {
		f.Colors = v
	}
	if v := listParam(q, "brand"); v != nil {
		f.Brands = v
	}
	if v, err := strconv.ParseInt(q.Get("min"), 10, 64); err == nil {
		f.PriceRange[0] = v
	}
	if v, err := strconv.ParseInt(q.Get("max"), 10, 64); err == nil {
		f.PriceRange[1] = v
	}
	if v, err := strconv.ParseBool(q.Get("in_stock")); err == nil {
		f.InStock = v
	}
	if v := q.Get("sort"); v != "" {
		f.SortBy = domain.SortBy(v)
	}
	return f
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	defaults, err := s.products.Defaults(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	cat, err := s.products.Browse(r.Context(), filtersFromQuery(r.URL.Query(), defaults))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (s *Server) apiProductByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.products.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	related, err := s.products.Related(r.Context(), id, relatedCount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": p, "related": related})
}

func (s *Server) apiCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.products.Categories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) apiSizeCalculator(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	height, _ := strconv.ParseFloat(q.Get("height"), 64)
	armSpan, _ := strconv.ParseFloat(q.Get("armSpan"), 64)
	rec, err := usecase.RecommendSize(usecase.SizeRequest{
		Weapon:     usecase.Weapon(q.Get("weapon")),
		Height:     height,
		ArmSpan:    armSpan,
		Experience: usecase.Experience(q.Get("experience")),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
