package http

import (
	"encoding/json"
	"net/http"

	"github.com/i-sifat/onushilonhub-sub000/internal/annotate"
)

// ToggleRevealHandler flips one blank's visibility in the viewer's session.
func ToggleRevealHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := SessionFromContext(r.Context())
		if s == nil {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		var req struct {
			QuestionID string `json:"question_id"`
			BlankID    string `json:"blank_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.QuestionID == "" {
			http.Error(w, "question_id required", 400)
			return
		}
		key := annotate.RevealKey(req.QuestionID, req.BlankID)
		s.Reveal.Toggle(key)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]bool{"revealed": s.Reveal.IsRevealed(key)})
	}
}

// ClearRevealHandler hides every answer in the viewer's session.
func ClearRevealHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := SessionFromContext(r.Context())
		if s == nil {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		s.Reveal.ClearAll()
		w.WriteHeader(http.StatusNoContent)
	}
}
