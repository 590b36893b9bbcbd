// Package testmode is the best-effort practice-test flow: pick a handful of
// questions from the catalog, score submitted answers by exact match, report
// a percentage. Anything smarter than that belongs to a grader, not here.
package testmode

import (
	"unicode"

	"github.com/i-sifat/onushilonhub-sub000/internal/question"
)

type Options struct {
	Board  string
	Year   int
	RuleID int
	Limit  int // max questions; 0 means DefaultLimit
}

const DefaultLimit = 10

// Pick narrows the catalog and takes the first Limit questions in catalog
// order. Deterministic on purpose: retaking the same filters yields the same
// paper.
func Pick(c *question.Catalog, opts Options) []question.Question {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	qs := c.Filter(question.FilterOpts{Board: opts.Board, Year: opts.Year, RuleID: opts.RuleID})
	if len(qs) > limit {
		qs = qs[:limit]
	}
	return qs
}

// Response holds a viewer's answers for one question, keyed by blank id. A
// single-answer question uses the empty key.
type Response map[string]string

type QuestionScore struct {
	QuestionID string `json:"question_id"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
}

type Summary struct {
	Correct     int             `json:"correct"`
	Total       int             `json:"total"`
	Percent     float64         `json:"percent"`
	PerQuestion []QuestionScore `json:"per_question"`
}

// Score tallies exact matches (after whitespace/case normalization) per
// blank. Unanswered blanks count as wrong, a missing response counts every
// blank of the question as wrong.
func Score(questions []question.Question, responses map[string]Response) Summary {
	var sum Summary
	for _, q := range questions {
		qs := QuestionScore{QuestionID: q.ID}
		resp := responses[q.ID]
		if blanks := q.Blanks(); blanks != nil {
			for _, b := range blanks {
				qs.Total++
				if normalize(resp[b.ID]) == normalize(b.Answer) && b.Answer != "" {
					qs.Correct++
				}
			}
		} else {
			qs.Total = 1
			if normalize(resp[""]) == normalize(q.Answer) && q.Answer != "" {
				qs.Correct = 1
			}
		}
		sum.Correct += qs.Correct
		sum.Total += qs.Total
		sum.PerQuestion = append(sum.PerQuestion, qs)
	}
	if sum.Total > 0 {
		sum.Percent = 100 * float64(sum.Correct) / float64(sum.Total)
	}
	return sum
}

// normalize casefolds and collapses whitespace so "The  Padma" matches
// "the padma".
func normalize(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && len(out) > 0 {
			out = append(out, ' ')
		}
		space = false
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}
