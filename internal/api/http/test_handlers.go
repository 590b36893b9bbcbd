package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/i-sifat/onushilonhub-sub000/internal/question"
	"github.com/i-sifat/onushilonhub-sub000/internal/results"
	"github.com/i-sifat/onushilonhub-sub000/internal/testmode"
)

type testPaper struct {
	TestID    string            `json:"test_id"`
	Questions []questionSummary `json:"questions"`
}

// CreateTestHandler picks a practice paper from the catalog. The paper is
// re-derived on submit from the same filters, so nothing needs to be stored
// between the two calls.
func CreateTestHandler(catalog *question.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()) == nil {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		var req struct {
			Board  string `json:"board"`
			Year   int    `json:"year"`
			RuleID int    `json:"rule_id"`
			Limit  int    `json:"limit"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		picked := testmode.Pick(catalog, testmode.Options{
			Board: req.Board, Year: req.Year, RuleID: req.RuleID, Limit: req.Limit,
		})
		if len(picked) == 0 {
			http.Error(w, "no questions match", 404)
			return
		}
		out := testPaper{TestID: uuid.NewString()}
		for _, q := range picked {
			out.Questions = append(out.Questions, questionSummary{
				ID: q.ID, Board: q.Board, Year: q.Year, RuleID: q.RuleID,
				Blanks: len(q.Blanks()),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}

// SubmitTestHandler scores submitted answers and saves the result for the
// session.
func SubmitTestHandler(catalog *question.Catalog, store results.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := SessionFromContext(r.Context())
		if s == nil {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		var req struct {
			Board     string                       `json:"board"`
			Year      int                          `json:"year"`
			RuleID    int                          `json:"rule_id"`
			Limit     int                          `json:"limit"`
			Responses map[string]testmode.Response `json:"responses"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		picked := testmode.Pick(catalog, testmode.Options{
			Board: req.Board, Year: req.Year, RuleID: req.RuleID, Limit: req.Limit,
		})
		if len(picked) == 0 {
			http.Error(w, "no questions match", 404)
			return
		}
		sum := testmode.Score(picked, req.Responses)
		res := results.Result{
			ID:        uuid.NewString(),
			SessionID: s.ID,
			Board:     req.Board,
			Year:      req.Year,
			RuleID:    req.RuleID,
			Correct:   sum.Correct,
			Total:     sum.Total,
			Percent:   sum.Percent,
			Detail:    sum.PerQuestion,
			TakenAt:   time.Now().Unix(),
		}
		if err := store.Save(r.Context(), res); err != nil {
			http.Error(w, "save result", 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}

func ListResultsHandler(store results.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := SessionFromContext(r.Context())
		if s == nil {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		list, err := store.ListBySession(r.Context(), s.ID)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}

func ResultsSummaryHandler(store results.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := SessionFromContext(r.Context())
		if s == nil {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		sum, err := store.Summary(r.Context(), s.ID)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sum)
	}
}
