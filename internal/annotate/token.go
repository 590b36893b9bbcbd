// Package annotate is the passage-annotation engine: it splits raw passage
// text into literal and blank tokens, reduces passages to the sentences
// relevant to one grammar rule, and renders blanks against per-viewer reveal
// state. Everything here is pure computation over immutable inputs except
// RevealState.
package annotate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/i-sifat/onushilonhub-sub000/internal/question"
)

const (
	TokenLiteral = "literal"
	TokenBlank   = "blank"
)

// Token is one segment of a tokenized passage. Literal tokens carry Value;
// blank tokens carry the Blank plus the exact Marker text they replaced, so
// the original passage can be reconstructed.
type Token struct {
	Kind   string
	Value  string
	Marker string
	Blank  question.Blank
}

// Diagnostics reports degradations during tokenization. Source passages are
// historically inconsistent, so an unmatched marker is recorded here rather
// than failing the render.
type Diagnostics struct {
	Unmatched []string // blank ids with no marker occurrence left in the text
}

func (d Diagnostics) UnmatchedCount() int { return len(d.Unmatched) }

// Marker syntaxes by data-entry era, in match priority order: bracket form
// "[a]", dash form with spacing "(a) ---", dash form without spacing "(a)---".
// The dash run length varies in the source data, so anything from two dashes
// up counts as a marker.
func markerPatterns(blankID string) []*regexp.Regexp {
	id := regexp.QuoteMeta(blankID)
	return []*regexp.Regexp{
		regexp.MustCompile(`\[` + id + `\]`),
		regexp.MustCompile(`\(` + id + `\) +-{2,}`),
		regexp.MustCompile(`\(` + id + `\)-{2,}`),
	}
}

// findMarker locates the first marker occurrence for blankID in text, trying
// each syntax in priority order. Returns the match bounds and false if no
// syntax matches.
func findMarker(text, blankID string) (start, end int, ok bool) {
	for _, re := range markerPatterns(blankID) {
		if loc := re.FindStringIndex(text); loc != nil {
			return loc[0], loc[1], true
		}
	}
	return 0, 0, false
}

// Tokenize splits text into an ordered token sequence, consuming one marker
// per blank in the order the blanks are listed. A blank whose marker cannot
// be found in the remaining unconsumed text is skipped and reported in the
// diagnostics; its answer stays available elsewhere (answer-key panels).
func Tokenize(text string, blanks []question.Blank) ([]Token, Diagnostics) {
	var (
		tokens []Token
		diag   Diagnostics
		rest   = text
	)
	for _, b := range blanks {
		start, end, ok := findMarker(rest, b.ID)
		if !ok {
			diag.Unmatched = append(diag.Unmatched, b.ID)
			continue
		}
		if start > 0 {
			tokens = append(tokens, Token{Kind: TokenLiteral, Value: rest[:start]})
		}
		tokens = append(tokens, Token{Kind: TokenBlank, Marker: rest[start:end], Blank: b})
		rest = rest[end:]
	}
	if rest != "" {
		tokens = append(tokens, Token{Kind: TokenLiteral, Value: rest})
	}
	return tokens, diag
}

// Reassemble rebuilds the original passage from its tokens, substituting each
// blank's original marker text back in. Used by tests and the seed tool's
// integrity check.
func Reassemble(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		switch t.Kind {
		case TokenLiteral:
			sb.WriteString(t.Value)
		case TokenBlank:
			sb.WriteString(t.Marker)
		}
	}
	return sb.String()
}

// HasMarker reports whether text contains a marker occurrence for blankID in
// any of the recognized syntaxes.
func HasMarker(text, blankID string) bool {
	_, _, ok := findMarker(text, blankID)
	return ok
}

// MaskedPlaceholder is the display form of an unrevealed blank.
func MaskedPlaceholder(blankID string) string {
	return fmt.Sprintf("(%s) ___", blankID)
}
