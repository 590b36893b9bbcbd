package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/i-sifat/onushilonhub-sub000/internal/annotate"
	"github.com/i-sifat/onushilonhub-sub000/internal/grammar"
	"github.com/i-sifat/onushilonhub-sub000/internal/question"
)

type ruleWithCoverage struct {
	grammar.Rule
	QuestionCount int `json:"question_count"`
}

// ListRulesHandler serves the rule sidebar: every rule plus how many catalog
// questions touch it.
func ListRulesHandler(rules *grammar.Catalog, questions *question.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx := annotate.CountByRule(rules.Rules(), questions.Questions())
		out := make([]ruleWithCoverage, 0, rules.Len())
		for _, rule := range rules.Rules() {
			out = append(out, ruleWithCoverage{Rule: rule, QuestionCount: idx[rule.ID]})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}

func GetRuleHandler(rules *grammar.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "ruleID"))
		if err != nil {
			http.Error(w, "bad rule id", 400)
			return
		}
		rule, ok := rules.Get(id)
		if !ok {
			http.Error(w, "rule not found", 404)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rule)
	}
}
