// Package httpserver exposes the storefront as a JSON API.
package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/oauth2"

	"github.com/phenrril/fightshop/internal/usecase"
)

type Options struct {
	SessionKey []byte
	AdminKey   string
	// SecureCookies marks cookies Secure; off for plain-http development.
	SecureCookies bool
	OAuth         *oauth2.Config
	// RateLimit is requests per minute per client IP; zero disables it.
	RateLimit int
}

type Deps struct {
	Products *usecase.ProductUC
	Cart     *usecase.CartUC
	Orders   *usecase.OrderUC
	Auth     *usecase.AuthUC
	Profiles *usecase.ProfileUC
}

type Server struct {
	router   chi.Router
	products *usecase.ProductUC
	cart     *usecase.CartUC
	orders   *usecase.OrderUC
	auth     *usecase.AuthUC
	profiles *usecase.ProfileUC
	cookies  signer
	opts     Options
}

func New(d Deps, opts Options) http.Handler {
	if len(opts.SessionKey) == 0 {
		opts.SessionKey = []byte("dev-insecure")
	}
	s := &Server{
		router:   chi.NewRouter(),
		products: d.Products,
		cart:     d.Cart,
		orders:   d.Orders,
		auth:     d.Auth,
		profiles: d.Profiles,
		cookies:  signer{key: opts.SessionKey},
		opts:     opts,
	}
	s.router.Use(
		middleware.RequestID,
		middleware.RealIP,
		Logging,
		middleware.Recoverer,
		SecurityHeaders,
	)
	if opts.RateLimit > 0 {
		s.router.Use(RateLimit(opts.RateLimit, time.Minute))
	}
	s.routes()
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(s.withVisitor)

		r.Get("/api/products", s.apiProducts)
		r.Get("/api/products/{id}", s.apiProductByID)
		r.Get("/api/categories", s.apiCategories)
		r.Get("/api/size-calculator", s.apiSizeCalculator)

		r.Route("/api/cart", func(r chi.Router) {
			r.Get("/", s.apiCart)
			r.Delete("/", s.apiCartClear)
			r.Post("/items", s.apiCartAdd)
			r.Put("/items/{id}", s.apiCartSetQuantity)
			r.Delete("/items/{id}", s.apiCartRemove)
			r.Post("/promo", s.apiCartApplyPromo)
			r.Delete("/promo", s.apiCartRemovePromo)
		})

		r.Get("/api/checkout/options", s.apiCheckoutOptions)
		r.Post("/api/checkout", s.apiCheckout)
		r.Get("/api/orders", s.apiOrders)
		r.Get("/api/orders/{number}", s.apiOrderTracking)

		r.Post("/api/auth/register", s.apiRegister)
		r.Post("/api/auth/login", s.apiLogin)
		r.Post("/api/auth/logout", s.apiLogout)
		r.Get("/api/auth/me", s.apiMe)
		r.Get("/auth/google/login", s.handleGoogleLogin)
		r.Get("/auth/google/callback", s.handleGoogleCallback)

		r.Get("/api/profile", s.apiProfile)
		r.Put("/api/profile", s.apiProfileUpdate)
		r.Get("/api/profile/overview", s.apiProfileOverview)
	})

	r.Get("/admin/orders/export", s.handleAdminExport)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

const maxBody = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Некорректный запрос"})
		return false
	}
	return true
}
