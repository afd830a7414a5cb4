// Package testutil provides test helper utilities for swipe tests.
package testutil

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/berth-dev/swipe/internal/catalog"
	swipelog "github.com/berth-dev/swipe/internal/log"
)

// TempProject creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// The directory is automatically cleaned up when the test finishes.
func TempProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// SampleCatalogYAML is a three-item catalog in the on-disk format.
const SampleCatalogYAML = `title: Sample
subtitle: Three cards
items:
  - id: 1
    name: Alpha
    description: first
  - id: 2
    name: Beta
    description: second
  - id: 3
    name: Gamma
    description: third
`

// SampleItems returns n items named Item 1..n.
func SampleItems(n int) []catalog.Item {
	items := make([]catalog.Item, n)
	for i := range items {
		items[i] = catalog.Item{
			ID:          i + 1,
			Name:        fmt.Sprintf("Item %d", i+1),
			Description: "sample",
		}
	}
	return items
}

// SampleCatalog returns the three-item catalog from SampleCatalogYAML.
func SampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse([]byte(SampleCatalogYAML))
	if err != nil {
		t.Fatalf("parsing sample catalog: %v", err)
	}
	return c
}

// ProjectWithConfig returns files for a project with a .swipe/config.yaml
// that points at a local catalog.
func ProjectWithConfig() map[string]string {
	return map[string]string{
		".swipe/config.yaml": "version: 1\ncatalog: catalog.yaml\nlog:\n  events: true\n  diagnostics: \"\"\n",
		"catalog.yaml":       SampleCatalogYAML,
	}
}

// MemorySink collects survey events in memory.
type MemorySink struct {
	mu     sync.Mutex
	events []swipelog.LogEvent
}

// Append implements log.Sink.
func (s *MemorySink) Append(e swipelog.LogEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

// Events returns a copy of the recorded events.
func (s *MemorySink) Events() []swipelog.LogEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]swipelog.LogEvent(nil), s.events...)
}

// Kinds returns the event names in order.
func (s *MemorySink) Kinds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Event)
	}
	return out
}

// NoNetwork is an HTTP doer that fails every request and counts them.
type NoNetwork struct {
	calls atomic.Int32
}

// Do implements submit.Doer.
func (d *NoNetwork) Do(*http.Request) (*http.Response, error) {
	d.calls.Add(1)
	return nil, errors.New("network must not be used")
}

// Calls returns how many requests were attempted.
func (d *NoNetwork) Calls() int { return int(d.calls.Load()) }
