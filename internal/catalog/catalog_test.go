package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != 33 {
		t.Fatalf("Len() = %d, want 33", c.Len())
	}
	if got := c.At(0).Name; got != "Online Courses" {
		t.Errorf("At(0).Name = %q, want %q", got, "Online Courses")
	}
	if got := c.At(32).Name; got != "Rockwell" {
		t.Errorf("At(32).Name = %q, want %q", got, "Rockwell")
	}
	if c.Title() == "" {
		t.Error("default catalog should carry a title")
	}
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"no items", "title: x\nitems: []\n", ErrNoItems},
		{"duplicate id", "items:\n  - {id: 1, name: a}\n  - {id: 1, name: b}\n", ErrDuplicateID},
		{"blank name", "items:\n  - {id: 1, name: '  '}\n", ErrEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("items: [")); err == nil {
		t.Error("Parse() should fail on malformed YAML")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `title: Tools
subtitle: Pick your tools
items:
  - id: 10
    name: Editor
    description: Writes text
    category: Dev
  - id: 11
    name: Shell
    category: Dev
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if c.Subtitle() != "Pick your tools" {
		t.Errorf("Subtitle() = %q", c.Subtitle())
	}
	if c.At(1).Description != "" {
		t.Errorf("missing description should be empty, got %q", c.At(1).Description)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	c, err := New("t", []Item{{ID: 1, Name: "A"}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	items := c.Items()
	items[0].Name = "changed"
	if c.At(0).Name != "A" {
		t.Error("mutating Items() result must not change the catalog")
	}
}

func TestNames(t *testing.T) {
	got := Names([]Item{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}})
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("Names() = %v, want [A B]", got)
	}
}
