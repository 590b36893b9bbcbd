package question

import "encoding/json"

// Blank is one fill-in slot of a passage. The passage text is the only source
// of truth for where the blank sits; blanks carry metadata, never offsets.
type Blank struct {
	ID          string `json:"id"`
	Answer      string `json:"answer"`
	RuleID      int    `json:"rule_id,omitempty"`
	Instruction string `json:"instruction,omitempty"`
}

// blankJSON mirrors the source-data shape. Older datasets stored the answer
// under "ans"; UnmarshalJSON folds both spellings into Answer so nothing
// downstream has to know about the legacy field.
type blankJSON struct {
	ID          string `json:"id"`
	Answer      string `json:"answer"`
	Ans         string `json:"ans"`
	RuleID      int    `json:"rule_id"`
	Instruction string `json:"instruction"`
}

func (b *Blank) UnmarshalJSON(data []byte) error {
	var raw blankJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.ID = raw.ID
	b.Answer = raw.Answer
	if b.Answer == "" {
		b.Answer = raw.Ans
	}
	b.RuleID = raw.RuleID
	b.Instruction = raw.Instruction
	return nil
}

// Passage is a question body with embedded blank markers. Immutable after
// load.
type Passage struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Blanks []Blank `json:"blanks,omitempty"`
}

// Question is one exam-style item. A question either carries a passage with
// discrete blanks, or a single ungrouped Answer (older board questions).
type Question struct {
	ID      string   `json:"id"`
	Level   string   `json:"level,omitempty"` // hsc | ssc
	Board   string   `json:"board,omitempty"`
	Year    int      `json:"year,omitempty"`
	RuleID  int      `json:"rule_id,omitempty"`
	Passage *Passage `json:"passage,omitempty"`
	Answer  string   `json:"answer,omitempty"`
}

// Blanks returns the question's blanks, nil for single-answer questions.
func (q Question) Blanks() []Blank {
	if q.Passage == nil {
		return nil
	}
	return q.Passage.Blanks
}
