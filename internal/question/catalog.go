package question

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
)

// Catalog is the read-only question set for one level, loaded once at startup.
type Catalog struct {
	questions []Question
	byID      map[string]Question
}

// NewCatalog validates and indexes questions. A question with no id is a data
// error; a question whose blanks reuse an id within the same passage is too,
// since the reveal key derivation depends on per-passage uniqueness.
func NewCatalog(questions []Question) (*Catalog, error) {
	byID := make(map[string]Question, len(questions))
	kept := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question with empty id")
		}
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if err := checkBlankIDs(q); err != nil {
			// Historically inconsistent records degrade, they never abort the
			// whole catalog.
			log.Printf("question %s skipped: %v", q.ID, err)
			continue
		}
		byID[q.ID] = q
		kept = append(kept, q)
	}
	return &Catalog{questions: kept, byID: byID}, nil
}

func checkBlankIDs(q Question) error {
	seen := map[string]struct{}{}
	for _, b := range q.Blanks() {
		if b.ID == "" {
			return fmt.Errorf("blank with empty id")
		}
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("duplicate blank id %q", b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}

// LoadCatalog reads a JSON question file, either a bare array or
// {"questions": [...]}.
func LoadCatalog(path string) (*Catalog, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	var questions []Question
	if err := json.Unmarshal(buf, &questions); err != nil {
		var wrapped struct {
			Questions []Question `json:"questions"`
		}
		if err2 := json.Unmarshal(buf, &wrapped); err2 != nil {
			return nil, fmt.Errorf("parse questions %s: %w", path, err)
		}
		questions = wrapped.Questions
	}
	return NewCatalog(questions)
}

func (c *Catalog) Questions() []Question { return c.questions }

func (c *Catalog) Get(id string) (Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

func (c *Catalog) Len() int { return len(c.questions) }

// FilterOpts narrows the catalog before the annotation engine runs. Zero
// values mean "no constraint".
type FilterOpts struct {
	Search string // substring match against passage text
	Board  string
	Year   int
	RuleID int // matches the question's own rule or any blank's rule
}

// Filter applies plain field-equality / substring narrowing.
func (c *Catalog) Filter(opts FilterOpts) []Question {
	out := make([]Question, 0, len(c.questions))
	for _, q := range c.questions {
		if opts.Board != "" && !strings.EqualFold(q.Board, opts.Board) {
			continue
		}
		if opts.Year != 0 && q.Year != opts.Year {
			continue
		}
		if opts.RuleID != 0 && !touchesRule(q, opts.RuleID) {
			continue
		}
		if opts.Search != "" && !matchesSearch(q, opts.Search) {
			continue
		}
		out = append(out, q)
	}
	return out
}

func touchesRule(q Question, ruleID int) bool {
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

func matchesSearch(q Question, term string) bool {
	term = strings.ToLower(term)
	if q.Passage != nil && strings.Contains(strings.ToLower(q.Passage.Text), term) {
		return true
	}
	return strings.Contains(strings.ToLower(q.ID), term)
}
