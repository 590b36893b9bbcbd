package annotate

const (
	SegmentLiteral = "literal"
	SegmentBlank   = "blank"
)

// AnnotatedSegment is one renderable unit of an annotated passage. Literal
// segments carry Text only. Blank segments carry the addressing a caller
// needs to toggle the blank (question id + blank id) plus the resolved
// display value.
type AnnotatedSegment struct {
	Kind       string `json:"kind"`
	Text       string `json:"text,omitempty"`
	QuestionID string `json:"question_id,omitempty"`
	BlankID    string `json:"blank_id,omitempty"`
	Revealed   bool   `json:"revealed,omitempty"`
	Display    string `json:"display,omitempty"`
}

// Render maps tokens to display segments against the viewer's reveal state:
// a hidden blank shows its masked placeholder, a revealed one its answer.
// Render never mutates state; interaction is the caller toggling the key and
// rendering again.
func Render(tokens []Token, state *RevealState, questionID string) []AnnotatedSegment {
	out := make([]AnnotatedSegment, 0, len(tokens))
	for _, t := range tokens {
		switch t.Kind {
		case TokenLiteral:
			out = append(out, AnnotatedSegment{Kind: SegmentLiteral, Text: t.Value})
		case TokenBlank:
			key := RevealKey(questionID, t.Blank.ID)
			revealed := state.IsRevealed(key)
			display := MaskedPlaceholder(t.Blank.ID)
			if revealed {
				display = t.Blank.Answer
			}
			out = append(out, AnnotatedSegment{
				Kind:       SegmentBlank,
				QuestionID: questionID,
				BlankID:    t.Blank.ID,
				Revealed:   revealed,
				Display:    display,
			})
		}
	}
	return out
}
