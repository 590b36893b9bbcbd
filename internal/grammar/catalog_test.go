package grammar

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCatalogBareArray(t *testing.T) {
	path := writeFile(t, "rules.json", `[{"id":2,"title":"Prepositions"},{"id":1,"title":"Articles"}]`)
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("len = %d", c.Len())
	}
	// ordered by id regardless of file order
	if rules := c.Rules(); rules[0].ID != 1 || rules[1].ID != 2 {
		t.Fatalf("order = %+v", rules)
	}
	if r, ok := c.Get(2); !ok || r.Title != "Prepositions" {
		t.Fatalf("Get(2) = %+v, %v", r, ok)
	}
}

func TestLoadCatalogWrappedObject(t *testing.T) {
	path := writeFile(t, "rules.json", `{"rules":[{"id":7,"title":"Narration"}]}`)
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get(7); !ok {
		t.Fatal("rule 7 missing")
	}
}

func TestNewCatalogRejectsDuplicateID(t *testing.T) {
	if _, err := NewCatalog([]Rule{{ID: 1}, {ID: 1}}); err == nil {
		t.Fatal("duplicate rule id must be rejected")
	}
}
