// Package catalog loads the ordered list of items presented as cards.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/berth-dev/swipe/catalogs"
)

var (
	// ErrNoItems is returned when a catalog file lists no items.
	ErrNoItems = errors.New("catalog has no items")
	// ErrDuplicateID is returned when two items share an id.
	ErrDuplicateID = errors.New("duplicate item id")
	// ErrEmptyName is returned when an item has a blank name.
	ErrEmptyName = errors.New("item name is empty")
)

// Item is a single classifiable entry. Items are never mutated after load.
type Item struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
}

// file is the on-disk YAML shape of a catalog.
type file struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Items    []Item `yaml:"items"`
}

// Catalog is an immutable, ordered list of items.
type Catalog struct {
	title    string
	subtitle string
	items    []Item
}

// New builds a catalog from items after validating them.
func New(title string, items []Item) (*Catalog, error) {
	if err := validate(items); err != nil {
		return nil, err
	}
	return &Catalog{
		title: title,
		items: append([]Item(nil), items...),
	}, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	c, err := New(f.Title, f.Items)
	if err != nil {
		return nil, err
	}
	c.subtitle = f.Subtitle
	return c, nil
}

// Load reads a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(catalogs.Websites)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Title returns the catalog's display title, which may be empty.
func (c *Catalog) Title() string { return c.title }

// Subtitle returns the catalog's display subtitle, which may be empty.
func (c *Catalog) Subtitle() string { return c.subtitle }

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// At returns the item at index i.
func (c *Catalog) At(i int) Item { return c.items[i] }

// Items returns a copy of the items in catalog order.
func (c *Catalog) Items() []Item {
	return append([]Item(nil), c.items...)
}

func validate(items []Item) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	seen := make(map[int]struct{}, len(items))
	for i, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return fmt.Errorf("item %d (id %d): %w", i, it.ID, ErrEmptyName)
		}
		if _, ok := seen[it.ID]; ok {
			return fmt.Errorf("item %d: %w %d", i, ErrDuplicateID, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

// Names returns the names of items in order.
func Names(items []Item) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names
}
