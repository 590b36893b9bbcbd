package grammar

// Rule is a single grammar rule from the curriculum catalog. Rules are loaded
// once at startup and never mutated afterwards.
type Rule struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Structures []string `json:"structures,omitempty"`
	Examples   []string `json:"examples,omitempty"`
}
