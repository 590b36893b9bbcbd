package http

import (
	"encoding/json"
	"net/http"

	"github.com/i-sifat/onushilonhub-sub000/internal/session"
)

func StartSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, tok, err := mgr.Start()
		if err != nil {
			http.Error(w, "start session", 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"session_id":   s.ID,
			"access_token": tok,
		})
	}
}

func EndSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := SessionFromContext(r.Context())
		if s == nil {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		mgr.End(s.ID)
		w.WriteHeader(http.StatusNoContent)
	}
}
