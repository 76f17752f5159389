package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/phenrril/fightshop/internal/domain"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (s *Server) apiRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := s.auth.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.writeSession(w, sess)
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) apiLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := s.auth.Login(r.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.writeSession(w, sess)
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) apiLogout(w http.ResponseWriter, r *http.Request) {
	s.writeSession(w, nil)
	writeJSON(w, http.StatusOK, domain.Session{})
}

func (s *Server) apiMe(w http.ResponseWriter, r *http.Request) {
	sess := s.readSession(r)
	if sess == nil {
		writeJSON(w, http.StatusOK, domain.Session{})
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if s.opts.OAuth == nil {
		http.Error(w, "oauth not configured", http.StatusNotImplemented)
		return
	}
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: state, Path: "/", MaxAge: 300, HttpOnly: true, Secure: s.opts.SecureCookies, SameSite: http.SameSiteLaxMode})
	http.Redirect(w, r, s.opts.OAuth.AuthCodeURL(state, oauth2.AccessTypeOnline), http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if s.opts.OAuth == nil {
		http.Error(w, "oauth not configured", http.StatusNotImplemented)
		return
	}
	q := r.URL.Query()
	c, _ := r.Cookie(stateCookie)
	if c == nil || c.Value == "" || c.Value != q.Get("state") {
		http.Error(w, "state", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	tok, err := s.opts.OAuth.Exchange(r.Context(), q.Get("code"))
	if err != nil {
		log.Error().Err(err).Msg("exchange oauth")
		http.Error(w, "oauth", http.StatusBadRequest)
		return
	}
	resp, err := s.opts.OAuth.Client(r.Context(), tok).Get(googleUserInfoURL)
	if err != nil {
		log.Error().Err(err).Msg("userinfo")
		http.Error(w, "userinfo", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Msg("userinfo")
		http.Error(w, "userinfo", http.StatusBadGateway)
		return
	}
	var info struct {
		Email      string `json:"email"`
		Name       string `json:"name"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&info); err != nil || info.Email == "" {
		http.Error(w, "email", http.StatusBadRequest)
		return
	}
	first, last := info.GivenName, info.FamilyName
	if first == "" && last == "" {
		first, last, _ = strings.Cut(info.Name, " ")
	}
	sess, err := s.auth.LoginExternal(r.Context(), info.Email, first, last)
	if err != nil {
		log.Error().Err(err).Str("email", info.Email).Msg("oauth login")
		http.Error(w, "login", http.StatusInternalServerError)
		return
	}
	s.writeSession(w, sess)
	http.Redirect(w, r, "/", http.StatusFound)
}
