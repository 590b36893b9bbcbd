package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/i-sifat/onushilonhub-sub000/internal/annotate"
	"github.com/i-sifat/onushilonhub-sub000/internal/question"
)

type questionSummary struct {
	ID     string `json:"id"`
	Board  string `json:"board,omitempty"`
	Year   int    `json:"year,omitempty"`
	RuleID int    `json:"rule_id,omitempty"`
	Blanks int    `json:"blanks"`
}

// ListQuestionsHandler narrows the catalog with query params
// (?q=&board=&year=&rule=) and returns summaries.
func ListQuestionsHandler(catalog *question.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := question.FilterOpts{
			Search: strings.TrimSpace(r.URL.Query().Get("q")),
			Board:  strings.TrimSpace(r.URL.Query().Get("board")),
			Year:   parseIntDefault(r.URL.Query().Get("year"), 0),
			RuleID: parseIntDefault(r.URL.Query().Get("rule"), 0),
		}
		qs := catalog.Filter(opts)
		out := make([]questionSummary, 0, len(qs))
		for _, q := range qs {
			out = append(out, questionSummary{
				ID: q.ID, Board: q.Board, Year: q.Year, RuleID: q.RuleID,
				Blanks: len(q.Blanks()),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}

type annotatedQuestion struct {
	ID              string             `json:"id"`
	Board           string             `json:"board,omitempty"`
	Year            int                `json:"year,omitempty"`
	RuleID          int                `json:"rule_id,omitempty"`
	Segments        []annotate.AnnotatedSegment `json:"segments"`
	UnmatchedBlanks []string           `json:"unmatched_blanks,omitempty"`
}

// GetQuestionHandler renders one question against the viewer's reveal state.
func GetQuestionHandler(catalog *question.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := SessionFromContext(r.Context())
		if s == nil {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		q, ok := catalog.Get(chi.URLParam(r, "questionID"))
		if !ok {
			http.Error(w, "question not found", 404)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(annotateQuestion(q, s.Reveal))
	}
}

func annotateQuestion(q question.Question, state *annotate.RevealState) annotatedQuestion {
	out := annotatedQuestion{ID: q.ID, Board: q.Board, Year: q.Year, RuleID: q.RuleID}
	if q.Passage != nil {
		tokens, diag := annotate.Tokenize(q.Passage.Text, q.Passage.Blanks)
		out.Segments = annotate.Render(tokens, state, q.ID)
		out.UnmatchedBlanks = diag.Unmatched
		return out
	}
	// Single ungrouped answer: one interactive unit keyed on the question id.
	key := annotate.RevealKey(q.ID, "")
	revealed := state.IsRevealed(key)
	display := "___"
	if revealed {
		display = q.Answer
	}
	out.Segments = []annotate.AnnotatedSegment{{
		Kind:       annotate.SegmentBlank,
		QuestionID: q.ID,
		Revealed:   revealed,
		Display:    display,
	}}
	return out
}

type ruleScopedQuestion struct {
	ID        string             `json:"id"`
	RuleID    int                `json:"rule_id"`
	Sentences []string           `json:"sentences"`
	Segments  []annotate.AnnotatedSegment `json:"segments"`
}

// GetQuestionByRuleHandler renders the rule-scoped view of one question:
// only the sentences relevant to the rule, with only that rule's blanks
// interactive. Questions the rule does not touch are a 404, never an empty
// body.
func GetQuestionByRuleHandler(catalog *question.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := SessionFromContext(r.Context())
		if s == nil {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		q, ok := catalog.Get(chi.URLParam(r, "questionID"))
		if !ok || q.Passage == nil {
			http.Error(w, "question not found", 404)
			return
		}
		ruleID, err := strconv.Atoi(chi.URLParam(r, "ruleID"))
		if err != nil {
			http.Error(w, "bad rule id", 400)
			return
		}
		res, ok := annotate.FilterByRule(*q.Passage, ruleID)
		if !ok {
			http.Error(w, "rule not applicable", 404)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ruleScopedQuestion{
			ID:        q.ID,
			RuleID:    ruleID,
			Sentences: res.Sentences,
			Segments:  annotate.Render(res.Tokens, s.Reveal, q.ID),
		})
	}
}

// ListQuestionsByRuleHandler walks the catalog and returns the rule-scoped
// rendering of every question the rule touches, omitting the rest.
func ListQuestionsByRuleHandler(catalog *question.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := SessionFromContext(r.Context())
		if s == nil {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		ruleID, err := strconv.Atoi(chi.URLParam(r, "ruleID"))
		if err != nil {
			http.Error(w, "bad rule id", 400)
			return
		}
		out := []ruleScopedQuestion{}
		for _, q := range catalog.Questions() {
			if q.Passage == nil {
				continue
			}
			res, ok := annotate.FilterByRule(*q.Passage, ruleID)
			if !ok {
				continue
			}
			out = append(out, ruleScopedQuestion{
				ID:        q.ID,
				RuleID:    ruleID,
				Sentences: res.Sentences,
				Segments:  annotate.Render(res.Tokens, s.Reveal, q.ID),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
