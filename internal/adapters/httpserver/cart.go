package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phenrril/fightshop/internal/domain"
)

type addItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) respondCart(w http.ResponseWriter, r *http.Request, view *domain.CartView, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) apiCart(w http.ResponseWriter, r *http.Request) {
	view, err := s.cart.View(r.Context(), visitorID(r))
	s.respondCart(w, r, view, err)
}

// apiCartAdd adds quantity units (one when omitted) on top of what the cart holds.
func (s *Server) apiCartAdd(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	view, err := s.cart.AddUnits(r.Context(), visitorID(r), req.ProductID, req.Size, req.Color, req.Quantity)
	s.respondCart(w, r, view, err)
}

func (s *Server) apiCartSetQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	view, err := s.cart.SetQuantity(r.Context(), visitorID(r), chi.URLParam(r, "id"), req.Quantity)
	s.respondCart(w, r, view, err)
}

func (s *Server) apiCartRemove(w http.ResponseWriter, r *http.Request) {
	view, err := s.cart.RemoveItem(r.Context(), visitorID(r), chi.URLParam(r, "id"))
	s.respondCart(w, r, view, err)
}

func (s *Server) apiCartClear(w http.ResponseWriter, r *http.Request) {
	view, err := s.cart.Clear(r.Context(), visitorID(r))
	s.respondCart(w, r, view, err)
}

func (s *Server) apiCartApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	view, err := s.cart.ApplyPromo(r.Context(), visitorID(r), req.Code)
	s.respondCart(w, r, view, err)
}

func (s *Server) apiCartRemovePromo(w http.ResponseWriter, r *http.Request) {
	view, err := s.cart.RemovePromo(r.Context(), visitorID(r))
	s.respondCart(w, r, view, err)
}
