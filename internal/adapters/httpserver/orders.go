package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/fightshop/internal/adapters/export"
	"github.com/phenrril/fightshop/internal/domain"
	"github.com/phenrril/fightshop/internal/usecase"
)

const defaultExportLimit = 1000

func (s *Server) apiCheckoutOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"delivery": usecase.DeliveryOptions(),
		"payment":  usecase.PaymentOptions(),
	})
}

func (s *Server) apiCheckout(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var userID *uuid.UUID
	if sess := s.readSession(r); sess != nil {
		id := sess.User.ID
		userID = &id
	}
	o, err := s.orders.Submit(r.Context(), visitorID(r), userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) apiOrders(w http.ResponseWriter, r *http.Request) {
	list, err := s.orders.ListMine(r.Context(), visitorID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) apiOrderTracking(w http.ResponseWriter, r *http.Request) {
	t, err := s.orders.Track(r.Context(), chi.URLParam(r, "number"))
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Заказ с таким номером не найден"})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleAdminExport(w http.ResponseWriter, r *http.Request) {
	if s.opts.AdminKey == "" {
		log.Error().Msg("ADMIN_API_KEY missing")
		http.Error(w, "admin disabled", http.StatusServiceUnavailable)
		return
	}
	if !secureCompare(r.Header.Get("X-Admin-Key"), s.opts.AdminKey) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	limit := defaultExportLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	list, err := s.orders.Export(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="orders-%s.xlsx"`, time.Now().Format("20060102")))
	if err := export.WriteOrders(w, list); err != nil {
		log.Error().Err(err).Msg("export orders")
	}
}

func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := 0; i < len(a); i++ {
		v |= a[i] ^ b[i]
	}
	return v == 0
}
