package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jroimartin/gocui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rainstash/internal/catalog"
	"rainstash/internal/matching"
	"rainstash/internal/render"
)

func testCatalog(names ...string) *catalog.Catalog {
	entries := make([]catalog.Entry, len(names))
	for i, n := range names {
		entries[i] = catalog.Entry{Name: n, Summary: "about " + n}
	}
	return catalog.New(entries)
}

func newTestApp(cat *catalog.Catalog, opts Options) *App {
	opts.Palette = render.NewPalette(false)
	return NewApp(cat, matching.NewMatcher(matching.DefaultWeights()), opts)
}

func hitNames(a *App) []string {
	names := make([]string, len(a.hits))
	for i, h := range a.hits {
		names[i] = h.Entry.Name
	}
	return names
}

func typeString(a *App, s string) {
	for _, r := range s {
		a.typeRune(r)
	}
}

func TestEmptyFilterListsEverything(t *testing.T) {
	a := newTestApp(testCatalog("Gasoline", "Bustling Fungus", "Barbed Wire"), Options{})
	assert.Equal(t, []string{"Gasoline", "Bustling Fungus", "Barbed Wire"}, hitNames(a))
}

func TestTypingFiltersAndRanks(t *testing.T) {
	a := newTestApp(testCatalog("Gasoline", "Bustling Fungus", "Barbed Wire"), Options{})

	typeString(a, "bf")
	assert.Equal(t, []string{"Bustling Fungus"}, hitNames(a))

	a.backspace()
	assert.Equal(t, []string{"Bustling Fungus", "Barbed Wire"}, hitNames(a))

	a.backspace()
	a.backspace()
	assert.Len(t, a.hits, 3)
	assert.Empty(t, a.filter)
}

func TestFilterHandlesMultibyteRunes(t *testing.T) {
	a := newTestApp(testCatalog("Café", "Cafe"), Options{})
	typeString(a, "é")
	assert.Equal(t, []string{"Café"}, hitNames(a))

	a.backspace()
	assert.Len(t, a.hits, 2)
}

func TestMoveClampsSelection(t *testing.T) {
	a := newTestApp(testCatalog("a", "b", "c"), Options{})

	a.move(-1)
	assert.Equal(t, 0, a.selected)
	a.move(10)
	assert.Equal(t, 2, a.selected)

	// narrowing the list resets an out-of-range selection
	typeString(a, "a")
	assert.Equal(t, 0, a.selected)
}

func TestOpenAndBack(t *testing.T) {
	a := newTestApp(testCatalog("Gasoline", "Bustling Fungus"), Options{})

	_, ok := a.Selected()
	assert.False(t, ok)

	a.move(1)
	require.NoError(t, a.open(nil, nil))
	assert.Equal(t, screenDetail, a.scr)

	e, ok := a.Selected()
	require.True(t, ok)
	assert.Equal(t, "Bustling Fungus", e.Name)

	require.NoError(t, a.back(nil, nil))
	assert.Equal(t, screenList, a.scr)

	typeString(a, "gas")
	require.NoError(t, a.back(nil, nil))
	assert.Empty(t, a.filter, "esc clears the filter first")

	assert.ErrorIs(t, a.back(nil, nil), gocui.ErrQuit)
}

func TestOpenWithoutHits(t *testing.T) {
	a := newTestApp(testCatalog("Gasoline"), Options{})
	typeString(a, "zzz")
	require.NoError(t, a.open(nil, nil))
	assert.Equal(t, screenList, a.scr)
	_, ok := a.Selected()
	assert.False(t, ok)
}

func TestLimit(t *testing.T) {
	a := newTestApp(testCatalog("aa", "ab", "ac", "ad"), Options{Limit: 2})
	assert.Len(t, a.hits, 2)
	typeString(a, "a")
	assert.Len(t, a.hits, 2)
}

func TestListLines(t *testing.T) {
	a := newTestApp(testCatalog("Gasoline", "Bustling Fungus"), Options{})

	lines := a.listLines(80)
	require.Len(t, lines, 2)
	assert.Equal(t, "      Gasoline         about Gasoline", lines[0])

	typeString(a, "bf")
	lines = a.listLines(80)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], fmt.Sprintf("%4d  ", a.hits[0].Score)))
	assert.Contains(t, lines[0], "Bustling Fungus")
}

func TestReload(t *testing.T) {
	next := testCatalog("Gasoline", "Bustling Fungus", "Bison Steak")
	a := newTestApp(testCatalog("Gasoline", "Bustling Fungus"), Options{
		Reload: func() (*catalog.Catalog, error) { return next, nil },
	})
	typeString(a, "b")
	require.Len(t, a.hits, 1)

	a.reload()
	assert.ElementsMatch(t, []string{"Bustling Fungus", "Bison Steak"}, hitNames(a))
	assert.Equal(t, "b", string(a.filter))
}

func TestReloadFailureKeepsCatalog(t *testing.T) {
	a := newTestApp(testCatalog("Gasoline"), Options{
		Reload: func() (*catalog.Catalog, error) { return nil, errors.New("bad json") },
	})

	a.reload()
	assert.Len(t, a.hits, 1)
	assert.Contains(t, a.footerText(), "bad json")
}
