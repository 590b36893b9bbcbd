package http

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/i-sifat/onushilonhub-sub000/internal/config"
	"github.com/i-sifat/onushilonhub-sub000/internal/session"
)

type ctxKey string

const ctxKeySession ctxKey = "session"

func withSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

// SessionFromContext returns the viewer session attached by SessionMiddleware,
// nil outside of it.
func SessionFromContext(ctx context.Context) *session.Session {
	if v := ctx.Value(ctxKeySession); v != nil {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

// SessionMiddleware resolves the bearer token to a live viewer session and
// attaches it to the request context.
func SessionMiddleware(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing bearer", http.StatusUnauthorized)
				return
			}
			s, err := mgr.FromToken(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				http.Error(w, "bad or expired session", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), s)))
		})
	}
}

// AdminOnly gates maintenance endpoints behind basic auth checked against the
// bcrypt hash from config. With no hash configured the endpoints are off.
func AdminOnly(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.AdminPassHash == "" {
				http.Error(w, "admin disabled", http.StatusForbidden)
				return
			}
			user, pass, ok := r.BasicAuth()
			if !ok || user != cfg.AdminUser {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if bcrypt.CompareHashAndPassword([]byte(cfg.AdminPassHash), []byte(pass)) != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
