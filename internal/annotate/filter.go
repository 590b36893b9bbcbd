package annotate

import (
	"strings"

	"github.com/i-sifat/onushilonhub-sub000/internal/question"
)

// FilterResult is a passage reduced to one grammar rule: the blanks tagged
// with that rule, the sentences that contain at least one of their markers,
// and the reconstructed sub-passage tokenized against only those blanks.
type FilterResult struct {
	RuleID    int
	Blanks    []question.Blank
	Sentences []string
	Text      string
	Tokens    []Token
}

// FilterByRule reduces p to the sentences relevant to ruleID. The second
// return is false when no blank in the passage carries the rule; callers must
// hide the question entirely rather than render an empty body.
//
// Kept sentences are rejoined with the separators that originally followed
// them, so the result reads as a sub-passage, not a list. Tokenization runs
// against the relevant blanks only: a kept sentence may also contain another
// rule's marker, and that marker stays an inert literal instead of leaking
// into the rule-scoped view as an interactive blank.
func FilterByRule(p question.Passage, ruleID int) (FilterResult, bool) {
	var relevant []question.Blank
	for _, b := range p.Blanks {
		if b.RuleID == ruleID {
			relevant = append(relevant, b)
		}
	}
	if len(relevant) == 0 {
		return FilterResult{}, false
	}

	sentences, seps := SplitSentences(p.Text)
	var (
		kept     []string
		keptSeps []string
	)
	for i, s := range sentences {
		if containsAnyMarker(s, relevant) {
			kept = append(kept, s)
			keptSeps = append(keptSeps, seps[i])
		}
	}

	var sb strings.Builder
	for i, s := range kept {
		sb.WriteString(s)
		if i < len(kept)-1 {
			sb.WriteString(keptSeps[i])
		}
	}
	text := sb.String()
	tokens, _ := Tokenize(text, relevant)

	return FilterResult{
		RuleID:    ruleID,
		Blanks:    relevant,
		Sentences: kept,
		Text:      text,
		Tokens:    tokens,
	}, true
}

func containsAnyMarker(sentence string, blanks []question.Blank) bool {
	for _, b := range blanks {
		if HasMarker(sentence, b.ID) {
			return true
		}
	}
	return false
}
