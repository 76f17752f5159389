package httpserver

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phenrril/fightshop/internal/domain"
)

const (
	visitorCookie = "vid"
	sessionCookie = "sess"
	stateCookie   = "oauth_state"

	visitorMaxAge  = 365 * 24 * time.Hour
	rememberMaxAge = 30 * 24 * time.Hour
)

// signer produces cookie values of the form sig.payload, both base64url.
type signer struct{ key []byte }

func (s signer) sign(payload []byte) string {
	h := hmac.New(sha256.New, s.key)
	h.Write(payload)
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	return sig + "." + base64.RawURLEncoding.EncodeToString(payload)
}

func (s signer) verify(value string) ([]byte, bool) {
	parts := strings.SplitN(value, ".", 2)
	if len(parts) != 2 {
		return nil, false
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, false
	}
	h := hmac.New(sha256.New, s.key)
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return nil, false
	}
	return payload, true
}

type ctxKey int

const visitorKey ctxKey = iota

// withVisitor makes sure every request carries a signed anonymous visitor id. Carts and
// orders are owned by it.
func (s *Server) withVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var vid string
		if c, err := r.Cookie(visitorCookie); err == nil {
			if payload, ok := s.cookies.verify(c.Value); ok {
				vid = string(payload)
			}
		}
		if vid == "" {
			vid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name: visitorCookie, Value: s.cookies.sign([]byte(vid)), Path: "/",
				MaxAge: int(visitorMaxAge.Seconds()), HttpOnly: true, Secure: s.opts.SecureCookies,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), visitorKey, vid)))
	})
}

func visitorID(r *http.Request) string {
	v, _ := r.Context().Value(visitorKey).(string)
	return v
}

type sessionPayload struct {
	Session domain.Session `json:"s"`
	Expires int64          `json:"exp,omitempty"`
}

// writeSession stores sess in a signed cookie. Remembered sessions live for 30 days,
// others until the browser closes. A nil session clears the cookie.
func (s *Server) writeSession(w http.ResponseWriter, sess *domain.Session) {
	if sess == nil {
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, Secure: s.opts.SecureCookies, SameSite: http.SameSiteLaxMode})
		return
	}
	p := sessionPayload{Session: *sess}
	c := &http.Cookie{Name: sessionCookie, Path: "/", HttpOnly: true, Secure: s.opts.SecureCookies, SameSite: http.SameSiteLaxMode}
	if sess.RememberMe {
		p.Expires = time.Now().Add(rememberMaxAge).Unix()
		c.MaxAge = int(rememberMaxAge.Seconds())
	}
	b, _ := json.Marshal(p)
	c.Value = s.cookies.sign(b)
	http.SetCookie(w, c)
}

func (s *Server) readSession(r *http.Request) *domain.Session {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	payload, ok := s.cookies.verify(c.Value)
	if !ok {
		return nil
	}
	var p sessionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil
	}
	if p.Expires != 0 && time.Now().Unix() > p.Expires {
		return nil
	}
	if !p.Session.IsAuthenticated || p.Session.User.ID == uuid.Nil {
		return nil
	}
	return &p.Session
}
