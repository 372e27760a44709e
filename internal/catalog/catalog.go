// Package catalog maps display names to records and searches them with the
// fuzzy matcher. It is the only place that knows both the record sources and
// the matching engine.
package catalog

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	rserr "rainstash/internal/errors"
	"rainstash/internal/manifest"
	"rainstash/internal/matching"
	"rainstash/internal/model"
)

// Entry is one searchable record.
type Entry struct {
	Name    string
	Summary string

	// Data is the underlying record: model.Item or model.Endpoint.
	Data any
}

// Fields lists the record for display.
func (e Entry) Fields() [][2]string {
	if f, ok := e.Data.(interface{ Fields() [][2]string }); ok {
		return f.Fields()
	}
	return [][2]string{{"Name", e.Name}, {"Summary", e.Summary}}
}

// Hit is an entry that matched a query.
type Hit struct {
	Entry   Entry
	Score   int
	Indices []int
}

// Catalog is an ordered, read-only set of entries.
type Catalog struct {
	entries []Entry
	byName  map[string]int
	byFold  map[string]int
}

// New keeps entries in the given order. Later duplicates of a name are dropped.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
		byFold:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if _, dup := c.byName[e.Name]; dup {
			continue
		}
		c.byName[e.Name] = len(c.entries)
		if _, ok := c.byFold[strings.ToLower(e.Name)]; !ok {
			c.byFold[strings.ToLower(e.Name)] = len(c.entries)
		}
		c.entries = append(c.entries, e)
	}
	return c
}

// FromManifest orders items by the manifest's commandSort; items it does not
// mention follow in name order.
func FromManifest(m *manifest.Manifest) *Catalog {
	seen := make(map[string]bool, len(m.Items))
	entries := make([]Entry, 0, len(m.Items))

	add := func(key string) {
		it, ok := m.Items[key]
		if !ok || seen[key] {
			return
		}
		seen[key] = true
		entries = append(entries, Entry{Name: it.Name, Summary: it.Description, Data: it})
	}

	for _, key := range m.CommandSort {
		add(key)
	}

	rest := make([]string, 0, len(m.Items))
	for key := range m.Items {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		return m.Items[rest[i]].Name < m.Items[rest[j]].Name
	})
	for _, key := range rest {
		add(key)
	}

	return New(entries)
}

// FromEndpoints uses "METHOD /path" as the display name.
func FromEndpoints(eps []model.Endpoint) *Catalog {
	entries := make([]Entry, 0, len(eps))
	for _, ep := range eps {
		entries = append(entries, Entry{Name: ep.DisplayName(), Summary: ep.Label(), Data: ep})
	}
	return New(entries)
}

func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns the entries in catalog order. The slice must not be modified.
func (c *Catalog) Entries() []Entry { return c.entries }

func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Lookup finds an entry by exact name, then case-insensitively.
func (c *Catalog) Lookup(name string) (Entry, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	if i, ok := c.byName[name]; ok {
		return c.entries[i], nil
	}
	if i, ok := c.byFold[strings.ToLower(name)]; ok {
		return c.entries[i], nil
	}
	return Entry{}, rserr.WrapNotFound(name)
}

// Search ranks entries against query, best first, at most limit hits
// (no limit when limit <= 0). A blank query lists entries in catalog order
// with a zero score.
func (c *Catalog) Search(ctx context.Context, m *matching.Matcher, query string, limit, workers int) ([]Hit, error) {
	query = norm.NFC.String(strings.TrimSpace(query))
	if query == "" {
		n := len(c.entries)
		if limit > 0 && limit < n {
			n = limit
		}
		hits := make([]Hit, n)
		for i := range n {
			hits[i] = Hit{Entry: c.entries[i]}
		}
		return hits, nil
	}

	ranked, err := m.Rank(ctx, query, c.Names(), workers)
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}

	hits := make([]Hit, len(ranked))
	for i, r := range ranked {
		hits[i] = Hit{Entry: c.entries[r.Index], Score: r.Score, Indices: r.Indices}
	}
	return hits, nil
}
