package grammar

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Catalog holds the read-only rule set for one curriculum level.
type Catalog struct {
	rules []Rule
	byID  map[int]Rule
}

// NewCatalog indexes rules by id. Duplicate ids are a data error.
func NewCatalog(rules []Rule) (*Catalog, error) {
	byID := make(map[int]Rule, len(rules))
	for _, r := range rules {
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate rule id %d", r.ID)
		}
		byID[r.ID] = r
	}
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &Catalog{rules: sorted, byID: byID}, nil
}

// LoadCatalog reads a JSON rule file, either a bare array or {"rules": [...]}.
func LoadCatalog(path string) (*Catalog, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var rules []Rule
	if err := json.Unmarshal(buf, &rules); err != nil {
		var wrapped struct {
			Rules []Rule `json:"rules"`
		}
		if err2 := json.Unmarshal(buf, &wrapped); err2 != nil {
			return nil, fmt.Errorf("parse rules %s: %w", path, err)
		}
		rules = wrapped.Rules
	}
	return NewCatalog(rules)
}

// Rules returns all rules ordered by id.
func (c *Catalog) Rules() []Rule { return c.rules }

func (c *Catalog) Get(id int) (Rule, bool) {
	r, ok := c.byID[id]
	return r, ok
}

func (c *Catalog) Len() int { return len(c.rules) }
