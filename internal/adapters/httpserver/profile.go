package httpserver

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/phenrril/fightshop/internal/domain"
)

func (s *Server) sessionUserID(r *http.Request) uuid.UUID {
	if sess := s.readSession(r); sess != nil {
		return sess.User.ID
	}
	return uuid.Nil
}

func (s *Server) apiProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Get(r.Context(), s.sessionUserID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) apiProfileUpdate(w http.ResponseWriter, r *http.Request) {
	var in domain.Profile
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := s.profiles.Update(r.Context(), s.sessionUserID(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) apiProfileOverview(w http.ResponseWriter, r *http.Request) {
	if s.readSession(r) == nil {
		writeError(w, r, domain.ErrUnauthorized)
		return
	}
	ov, err := s.profiles.Overview(r.Context(), visitorID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}
