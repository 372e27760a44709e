package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/jroimartin/gocui"

	"rainstash/internal/catalog"
	"rainstash/internal/logger"
	"rainstash/internal/matching"
	"rainstash/internal/render"
	"rainstash/internal/watch"
)

type screen int

const (
	screenList screen = iota
	screenDetail
)

// Options configures an App. Reload and WatchPath enable live reloading of
// the catalog when the watched file changes.
type Options struct {
	Title     string
	Limit     int
	Workers   int
	Palette   render.Palette
	WatchPath string
	Reload    func() (*catalog.Catalog, error)
}

type App struct {
	g *gocui.Gui

	scr  screen
	opts Options

	cat     *catalog.Catalog
	matcher *matching.Matcher

	filter   []rune
	hits     []catalog.Hit
	selected int

	chosen   *catalog.Entry
	errorMsg string
}

func NewApp(cat *catalog.Catalog, m *matching.Matcher, opts Options) *App {
	if opts.Title == "" {
		opts.Title = "rainstash"
	}
	if opts.Palette.Match == nil {
		opts.Palette = render.NewPalette(true)
	}
	a := &App{scr: screenList, opts: opts, cat: cat, matcher: m}
	a.recomputeFilter()
	return a
}

// Selected is the last entry opened with Enter, if any.
func (a *App) Selected() (catalog.Entry, bool) {
	if a.chosen == nil {
		return catalog.Entry{}, false
	}
	return *a.chosen, true
}

// filterEditor feeds typed runes into the filter. Navigation keys are bound
// on the view and never reach it.
type filterEditor struct{ a *App }

func (e filterEditor) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	switch {
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		e.a.backspace()
	case key == gocui.KeySpace:
		e.a.typeRune(' ')
	case ch != 0 && mod == 0:
		e.a.typeRune(ch)
	default:
		return
	}
	e.a.renderFilter()
	e.a.renderList()
}

func (a *App) Run(ctx context.Context) error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return err
	}
	defer g.Close()
	a.g = g

	g.BgColor = gocui.ColorBlack
	g.FgColor = gocui.ColorWhite
	g.Cursor = true
	g.InputEsc = true
	g.SetManagerFunc(a.layout)

	if err := a.bindKeys(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if a.opts.WatchPath != "" && a.opts.Reload != nil {
		go func() {
			err := watch.File(ctx, a.opts.WatchPath, 0, func() {
				g.Update(func(*gocui.Gui) error {
					a.reload()
					return nil
				})
			})
			if err != nil {
				logger.Logger.Warn("watch stopped", "path", a.opts.WatchPath, "error", err)
			}
		}()
	}

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func (a *App) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView("header", 0, 0, maxX-1, 2); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
	}
	a.renderHeader()

	if v, err := g.SetView("footer", 0, maxY-2, maxX-1, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
	}
	a.renderFooter()

	switch a.scr {
	case screenDetail:
		return a.layoutDetail(maxX, maxY)
	default:
		return a.layoutList(maxX, maxY)
	}
}

func (a *App) layoutList(maxX, maxY int) error {
	a.clearMainViews([]string{"filter", "list"})

	if v, err := a.g.SetView("filter", 0, 2, maxX-1, 4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Filter"
		v.Editable = true
		v.Editor = filterEditor{a: a}
	}
	if v, err := a.g.SetView("list", 0, 4, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Highlight = true
		v.SelFgColor = gocui.ColorBlack
		v.SelBgColor = gocui.ColorGreen
	}
	a.renderFilter()
	a.renderList()
	_, err := a.g.SetCurrentView("filter")
	return err
}

func (a *App) layoutDetail(maxX, maxY int) error {
	a.clearMainViews([]string{"detail"})

	if v, err := a.g.SetView("detail", 0, 2, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Wrap = true
	}
	a.renderDetail()
	_, err := a.g.SetCurrentView("detail")
	return err
}

func (a *App) clearMainViews(keep []string) {
	keepSet := map[string]bool{}
	for _, k := range keep {
		keepSet[k] = true
	}
	for _, n := range []string{"filter", "list", "detail"} {
		if keepSet[n] {
			continue
		}
		if _, err := a.g.View(n); err == nil {
			_ = a.g.DeleteView(n)
		}
	}
}

func (a *App) bindKeys() error {
	type binding struct {
		view    string
		key     any
		handler func(*gocui.Gui, *gocui.View) error
	}
	bindings := []binding{
		{"", gocui.KeyCtrlC, a.quit},
		{"filter", gocui.KeyArrowDown, a.moveSel(1)},
		{"filter", gocui.KeyArrowUp, a.moveSel(-1)},
		{"filter", gocui.KeyPgdn, a.moveSel(10)},
		{"filter", gocui.KeyPgup, a.moveSel(-10)},
		{"filter", gocui.KeyEnter, a.open},
		{"filter", gocui.KeyEsc, a.back},
		{"detail", gocui.KeyEsc, a.back},
		{"detail", gocui.KeyEnter, a.back},
		{"detail", gocui.KeyArrowDown, a.scroll(1)},
		{"detail", gocui.KeyArrowUp, a.scroll(-1)},
	}
	for _, b := range bindings {
		if err := a.g.SetKeybinding(b.view, b.key, gocui.ModNone, b.handler); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) quit(*gocui.Gui, *gocui.View) error { return gocui.ErrQuit }

// back leaves the detail view, clears a non-empty filter, or quits.
func (a *App) back(*gocui.Gui, *gocui.View) error {
	switch {
	case a.scr == screenDetail:
		a.scr = screenList
	case len(a.filter) > 0:
		a.filter = a.filter[:0]
		a.recomputeFilter()
		a.renderFilter()
		a.renderList()
	default:
		return gocui.ErrQuit
	}
	a.errorMsg = ""
	return nil
}

func (a *App) typeRune(r rune) {
	a.filter = append(a.filter, r)
	a.recomputeFilter()
}

func (a *App) backspace() {
	if len(a.filter) == 0 {
		return
	}
	a.filter = a.filter[:len(a.filter)-1]
	a.recomputeFilter()
}

func (a *App) moveSel(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		a.move(delta)
		if a.g != nil {
			if v, err := a.g.View("list"); err == nil {
				a.showSelection(v)
			}
		}
		return nil
	}
}

func (a *App) move(delta int) {
	if len(a.hits) == 0 {
		return
	}
	a.selected = min(max(a.selected+delta, 0), len(a.hits)-1)
}

func (a *App) open(*gocui.Gui, *gocui.View) error {
	if a.scr != screenList || len(a.hits) == 0 {
		return nil
	}
	e := a.hits[a.selected].Entry
	a.chosen = &e
	a.scr = screenDetail
	return nil
}

func (a *App) scroll(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if v == nil {
			return nil
		}
		ox, oy := v.Origin()
		if delta > 0 {
			return v.SetOrigin(ox, oy+1)
		}
		if oy > 0 {
			return v.SetOrigin(ox, oy-1)
		}
		return nil
	}
}

// reload swaps in a fresh catalog and keeps the current filter.
func (a *App) reload() {
	cat, err := a.opts.Reload()
	if err != nil {
		logger.Logger.Warn("reload failed", "error", err)
		a.errorMsg = "reload failed: " + err.Error()
		a.renderFooter()
		return
	}
	logger.Logger.Debug("catalog reloaded", "entries", cat.Len())
	a.cat = cat
	a.errorMsg = ""
	a.recomputeFilter()
	a.renderHeader()
	a.renderFooter()
	a.renderList()
}

func (a *App) recomputeFilter() {
	hits, err := a.cat.Search(context.Background(), a.matcher, string(a.filter), a.opts.Limit, a.opts.Workers)
	if err != nil {
		a.errorMsg = err.Error()
		hits = nil
	}
	a.hits = hits
	if a.selected >= len(a.hits) {
		a.selected = 0
	}
}

func (a *App) renderHeader() {
	if a.g == nil {
		return
	}
	v, err := a.g.View("header")
	if err != nil {
		return
	}
	v.Clear()
	fmt.Fprintf(v, "%s  %s\n", a.opts.Palette.String.Sprint(a.opts.Title), a.opts.Palette.Dim.Sprintf("%d records", a.cat.Len()))
}

func (a *App) renderFooter() {
	if a.g == nil {
		return
	}
	v, err := a.g.View("footer")
	if err != nil {
		return
	}
	v.Clear()
	fmt.Fprint(v, a.footerText())
}

func (a *App) footerText() string {
	if a.errorMsg != "" {
		return a.errorMsg
	}
	if a.scr == screenDetail {
		return "up/down: scroll   enter/esc: back   ctrl+c: quit"
	}
	return "type: filter   up/down: move   enter: open   esc: clear/quit   ctrl+c: quit"
}

func (a *App) renderFilter() {
	if a.g == nil {
		return
	}
	v, err := a.g.View("filter")
	if err != nil {
		return
	}
	v.Clear()
	fmt.Fprint(v, string(a.filter))
	_ = v.SetCursor(len(a.filter), 0)
}

func (a *App) renderList() {
	if a.g == nil {
		return
	}
	v, err := a.g.View("list")
	if err != nil {
		return
	}
	v.Clear()
	width, _ := v.Size()
	v.Title = fmt.Sprintf("Records (%d)", len(a.hits))
	for _, line := range a.listLines(width) {
		fmt.Fprintln(v, line)
	}
	a.showSelection(v)
}

// showSelection keeps the selected row inside the visible window.
func (a *App) showSelection(v *gocui.View) {
	_, height := v.Size()
	_, oy := v.Origin()
	switch {
	case a.selected < oy:
		oy = a.selected
	case height > 0 && a.selected >= oy+height:
		oy = a.selected - height + 1
	}
	_ = v.SetOrigin(0, oy)
	_ = v.SetCursor(0, a.selected-oy)
}

// listLines renders one row per hit: score, highlighted name, summary.
func (a *App) listLines(width int) []string {
	nameWidth := 0
	for _, h := range a.hits {
		nameWidth = max(nameWidth, len([]rune(h.Entry.Name)))
	}
	if width > 0 {
		nameWidth = min(nameWidth, max(width/2, 8))
	}

	p := a.opts.Palette
	lines := make([]string, len(a.hits))
	for i, h := range a.hits {
		score := "    "
		if len(a.filter) > 0 {
			score = fmt.Sprintf("%4d", h.Score)
		}
		summary := strings.ReplaceAll(h.Entry.Summary, "\n", " ")
		lines[i] = fmt.Sprintf("%s  %s  %s", p.Dim.Sprint(score), p.Column(h.Entry.Name, h.Indices, nameWidth), summary)
	}
	return lines
}

func (a *App) renderDetail() {
	if a.g == nil || a.chosen == nil {
		return
	}
	v, err := a.g.View("detail")
	if err != nil {
		return
	}
	v.Clear()
	v.Title = a.chosen.Name
	fmt.Fprint(v, a.opts.Palette.Fields(a.chosen.Fields()))
}
