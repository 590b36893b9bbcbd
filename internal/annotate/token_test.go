package annotate

import (
	"testing"

	"github.com/i-sifat/onushilonhub-sub000/internal/question"
)

func TestTokenizeBracketForm(t *testing.T) {
	text := "Cricket is an [a] game. It is [b] fun."
	blanks := []question.Blank{
		{ID: "a", Answer: "international", RuleID: 1},
		{ID: "b", Answer: "very", RuleID: 3},
	}
	tokens, diag := Tokenize(text, blanks)
	if diag.UnmatchedCount() != 0 {
		t.Fatalf("unexpected unmatched blanks: %v", diag.Unmatched)
	}
	want := []struct {
		kind  string
		value string // literal value or blank id
	}{
		{TokenLiteral, "Cricket is an "},
		{TokenBlank, "a"},
		{TokenLiteral, " game. It is "},
		{TokenBlank, "b"},
		{TokenLiteral, " fun."},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i, w := range want {
		if tokens[i].Kind != w.kind {
			t.Errorf("token %d kind = %s, want %s", i, tokens[i].Kind, w.kind)
		}
		if w.kind == TokenLiteral && tokens[i].Value != w.value {
			t.Errorf("token %d value = %q, want %q", i, tokens[i].Value, w.value)
		}
		if w.kind == TokenBlank && tokens[i].Blank.ID != w.value {
			t.Errorf("token %d blank = %q, want %q", i, tokens[i].Blank.ID, w.value)
		}
	}
}

func TestTokenizeDashForms(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"spaced", "He went (a) --- the market. She stayed (b) --- home."},
		{"unspaced", "He went (a)--- the market. She stayed (b)--- home."},
		{"long dash run", "He went (a) ----- the market. She stayed (b)---- home."},
	}
	blanks := []question.Blank{
		{ID: "a", Answer: "to"},
		{ID: "b", Answer: "at"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, diag := Tokenize(tc.text, blanks)
			if diag.UnmatchedCount() != 0 {
				t.Fatalf("unmatched blanks: %v", diag.Unmatched)
			}
			var got []string
			for _, tok := range tokens {
				if tok.Kind == TokenBlank {
					got = append(got, tok.Blank.ID)
				}
			}
			if len(got) != 2 || got[0] != "a" || got[1] != "b" {
				t.Fatalf("blank order = %v, want [a b]", got)
			}
		})
	}
}

func TestTokenizeMixedSyntaxes(t *testing.T) {
	// Different eras of data entry inside one passage.
	text := "Rivers [a] our land. Farmers depend (b) --- them. Fish (c)--- cheap."
	blanks := []question.Blank{
		{ID: "a", Answer: "crisscross"},
		{ID: "b", Answer: "on"},
		{ID: "c", Answer: "is"},
	}
	tokens, diag := Tokenize(text, blanks)
	if diag.UnmatchedCount() != 0 {
		t.Fatalf("unmatched blanks: %v", diag.Unmatched)
	}
	if got := Reassemble(tokens); got != text {
		t.Errorf("reassembled = %q, want original %q", got, text)
	}
}

func TestTokenizeUnmatchedBlankDegrades(t *testing.T) {
	text := "Dhaka is the capital [a] Bangladesh."
	blanks := []question.Blank{
		{ID: "a", Answer: "of"},
		{ID: "zz", Answer: "ghost"}, // no marker in text
	}
	tokens, diag := Tokenize(text, blanks)
	if diag.UnmatchedCount() != 1 || diag.Unmatched[0] != "zz" {
		t.Fatalf("diagnostics = %+v, want unmatched [zz]", diag)
	}
	// The matched blank still tokenizes and nothing is lost.
	if got := Reassemble(tokens); got != text {
		t.Errorf("reassembled = %q, want %q", got, text)
	}
	blankCount := 0
	for _, tok := range tokens {
		if tok.Kind == TokenBlank {
			blankCount++
		}
	}
	if blankCount != 1 {
		t.Errorf("blank tokens = %d, want 1", blankCount)
	}
}

func TestTokenizeNoBlanks(t *testing.T) {
	tokens, diag := Tokenize("Just prose.", nil)
	if diag.UnmatchedCount() != 0 {
		t.Fatalf("diagnostics: %+v", diag)
	}
	if len(tokens) != 1 || tokens[0].Kind != TokenLiteral || tokens[0].Value != "Just prose." {
		t.Fatalf("tokens = %+v", tokens)
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	texts := []string{
		"Cricket is an [a] game. It is [b] fun.",
		"(a) --- start and [b] middle and (c)--- end",
		"[a][b][c]",
		"",
	}
	blanks := []question.Blank{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	for _, text := range texts {
		tokens, _ := Tokenize(text, blanks)
		if got := Reassemble(tokens); got != text {
			t.Errorf("Reassemble(Tokenize(%q)) = %q", text, got)
		}
	}
}

func TestHasMarker(t *testing.T) {
	if !HasMarker("see [a] here", "a") {
		t.Error("bracket form not recognized")
	}
	if !HasMarker("see (a) --- here", "a") {
		t.Error("spaced dash form not recognized")
	}
	if !HasMarker("see (a)--- here", "a") {
		t.Error("unspaced dash form not recognized")
	}
	if HasMarker("plain (a) mention without dashes", "a") {
		t.Error("bare parenthesized id must not count as a marker")
	}
	if HasMarker("see [ab] here", "a") {
		t.Error("id must match exactly, not as a prefix")
	}
}
