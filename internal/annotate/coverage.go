package annotate

import (
	"github.com/i-sifat/onushilonhub-sub000/internal/grammar"
	"github.com/i-sifat/onushilonhub-sub000/internal/question"
)

// CoverageIndex counts, per rule id, how many questions touch the rule.
type CoverageIndex map[int]int

// CountByRule builds the coverage index for a rule browsing sidebar. A
// question counts once for a rule when its own rule id matches or any of its
// blanks carries the rule; several blanks sharing the rule still count the
// question once. Catalogs are small, so this is recomputed rather than
// cached.
func CountByRule(rules []grammar.Rule, questions []question.Question) CoverageIndex {
	idx := make(CoverageIndex, len(rules))
	for _, r := range rules {
		idx[r.ID] = 0
	}
	for _, q := range questions {
		for _, r := range rules {
			if questionTouches(q, r.ID) {
				idx[r.ID]++
			}
		}
	}
	return idx
}

func questionTouches(q question.Question, ruleID int) bool {
	if q.RuleID == ruleID {
		return true
	}
	for _, b := range q.Blanks() {
		if b.RuleID == ruleID {
			return true
		}
	}
	return false
}
