package annotate

import (
	"iter"
	"unicode"
	"unicode/utf8"
)

// SplitSentences cuts text at sentence boundaries: immediately after '.',
// '!' or '?' when the next rune is whitespace. The delimiter stays attached
// to the sentence that ends with it. The second slice holds the whitespace
// run that followed each sentence (empty when nothing followed), so that
//
//	sentences[0] + seps[0] + sentences[1] + seps[1] + ...
//
// reconstructs text exactly.
func SplitSentences(text string) (sentences, seps []string) {
	if text == "" {
		return nil, nil
	}
	start := 0
	i := 0
	for i < len(text) {
		c := text[i]
		if c == '.' || c == '!' || c == '?' {
			r, size := utf8.DecodeRuneInString(text[i+1:])
			if size > 0 && unicode.IsSpace(r) {
				sentences = append(sentences, text[start:i+1])
				// consume the whitespace run as this sentence's separator
				j := i + 1
				for j < len(text) {
					r, size := utf8.DecodeRuneInString(text[j:])
					if !unicode.IsSpace(r) {
						break
					}
					j += size
				}
				seps = append(seps, text[i+1:j])
				start = j
				i = j
				continue
			}
		}
		i++
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
		seps = append(seps, "")
	}
	return sentences, seps
}

// Segment returns the sentence substrings of text in order. A passage with no
// boundary punctuation is a single sentence; trailing punctuation at the end
// of the string produces no empty trailing sentence.
func Segment(text string) []string {
	sentences, _ := SplitSentences(text)
	return sentences
}

// Sentences is the lazy form of Segment: a finite, restartable sequence that
// can be ranged over multiple times.
func Sentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, s := range Segment(text) {
			if !yield(s) {
				return
			}
		}
	}
}
