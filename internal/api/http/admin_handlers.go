package http

import (
	"encoding/json"
	"net/http"

	"github.com/i-sifat/onushilonhub-sub000/internal/annotate"
	"github.com/i-sifat/onushilonhub-sub000/internal/question"
)

type questionDiagnostics struct {
	QuestionID string   `json:"question_id"`
	Unmatched  []string `json:"unmatched_blanks"`
}

// DataQualityHandler tokenizes every passage in the catalog and reports the
// blanks whose markers never matched. Source data is hand-entered across
// years of board papers, so this is the upstream-fix worklist.
func DataQualityHandler(catalog *question.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := []questionDiagnostics{}
		for _, q := range catalog.Questions() {
			if q.Passage == nil {
				continue
			}
			_, diag := annotate.Tokenize(q.Passage.Text, q.Passage.Blanks)
			if diag.UnmatchedCount() > 0 {
				out = append(out, questionDiagnostics{QuestionID: q.ID, Unmatched: diag.Unmatched})
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}
