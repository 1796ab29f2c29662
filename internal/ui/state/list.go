package state

import (
	"github.com/atomicstack/multiselect/internal/item"
)

// ClearScope controls which selections ClearAll removes.
type ClearScope int

const (
	ClearAllItems ClearScope = iota
	ClearVisibleItems
)

// Config describes the inputs used to build a List.
type Config struct {
	Items             []item.Item
	Selected          []item.Item
	MaxSelected       int
	Matcher           Matcher
	Comparator        Comparator
	Search            SearchSource
	ClearScope        ClearScope
	OnChange          func([]item.Item)
	ItemHeight        int
	ItemHeightFunc    func(item.Item) int
	ViewportHeight    int
	Overscan          int
	ParallelThreshold int
	// AsyncThreshold defers filtering to PrepareQuery/CommitQuery once the
	// store holds at least this many items. Zero filters synchronously.
	AsyncThreshold int
}

// List encapsulates the state of a selectable item list: the item store, the
// filtered view, the keyboard cursor, the selection and the scroll viewport.
type List struct {
	ID             string
	Cursor         int
	LastCursor     int
	FilterCursor   int
	MaxSelected    int
	ClearScope     ClearScope
	AsyncThreshold int
	Viewport       Viewport

	store     *Store
	engine    FilterEngine
	search    SearchSource
	query     string
	shown     string
	applied   bool
	stale     bool
	visible   []int
	selection Selection
	onChange  func([]item.Item)
	heightFn  func(item.Item) int

	ticketSeq uint64
	ticket    *QueryTicket
}

// NewList constructs a List from cfg.
func NewList(id string, cfg Config) *List {
	search := cfg.Search
	if search == nil {
		search = &LocalSearch{}
	}
	overscan := cfg.Overscan
	if overscan == 0 {
		overscan = DefaultOverscan
	}
	l := &List{
		ID:             id,
		Cursor:         0,
		LastCursor:     -1,
		MaxSelected:    cfg.MaxSelected,
		ClearScope:     cfg.ClearScope,
		AsyncThreshold: cfg.AsyncThreshold,
		store:          NewStore(nil, cfg.Comparator),
		engine: FilterEngine{
			Matcher:           cfg.Matcher,
			ParallelThreshold: cfg.ParallelThreshold,
		},
		search:   search,
		onChange: cfg.OnChange,
		heightFn: cfg.ItemHeightFunc,
		Viewport: Viewport{
			ItemHeight: cfg.ItemHeight,
			Height:     cfg.ViewportHeight,
			Overscan:   overscan,
		},
	}
	if l.heightFn != nil {
		l.Viewport.HeightOf = l.visibleHeight
	}
	l.FilterCursor = len([]rune(search.Value()))
	l.replaceItems(cfg.Items)
	l.SetSelectedItems(cfg.Selected)
	return l
}

func (l *List) visibleHeight(i int) int {
	if i < 0 || i >= len(l.visible) {
		return 1
	}
	return l.heightFn(l.store.At(l.visible[i]))
}

// Store exposes the backing item store.
func (l *List) Store() *Store {
	return l.store
}

// Search exposes the active search source.
func (l *List) Search() SearchSource {
	return l.search
}

// SetOnChange replaces the selection change callback.
func (l *List) SetOnChange(fn func([]item.Item)) {
	l.onChange = fn
}

// SetMatcher swaps the match policy and refilters.
func (l *List) SetMatcher(m Matcher) {
	l.engine.Matcher = m
	l.applied = false
	l.SyncSearch()
}

// Len returns the number of visible items.
func (l *List) Len() int {
	return len(l.visible)
}

// VisibleAt returns the visible item at index i.
func (l *List) VisibleAt(i int) item.Item {
	return l.store.At(l.visible[i])
}

// VisibleItems materializes the visible items in store order.
func (l *List) VisibleItems() []item.Item {
	out := make([]item.Item, len(l.visible))
	for i, idx := range l.visible {
		out[i] = l.store.At(idx)
	}
	return out
}

// IndexOf returns the visible index for a given item identifier.
func (l *List) IndexOf(id string) int {
	storeIdx := l.store.IndexOf(id)
	if storeIdx < 0 {
		return -1
	}
	for i, idx := range l.visible {
		if idx == storeIdx {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *List) Current() (item.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.visible) {
		return item.Item{}, false
	}
	return l.VisibleAt(l.Cursor), true
}

// SetItems replaces the item set, pruning selections that no longer exist.
func (l *List) SetItems(items []item.Item) {
	prevScroll := l.Viewport.Scroll
	l.replaceItems(items)
	if l.CleanupSelections() {
		l.emitChange()
	}
	l.Viewport.Scroll = prevScroll
	l.EnsureCursorVisible()
}

func (l *List) replaceItems(items []item.Item) {
	l.cancelTicket()
	l.store.SetItems(items)
	l.applied = false
	l.visible = nil
	l.syncSearch(true)
}

// Layout computes the render window for the current viewport.
func (l *List) Layout() Window {
	return l.Viewport.Layout(len(l.visible))
}

// SetViewportHeight resizes the viewport, keeping the cursor in view.
func (l *List) SetViewportHeight(height int) {
	if height < 0 {
		height = 0
	}
	l.Viewport.Height = height
	l.EnsureCursorVisible()
}

// RowAt maps a row offset relative to the viewport top to a visible index.
func (l *List) RowAt(y int) int {
	if y < 0 || y >= l.Viewport.Height {
		return -1
	}
	return l.Viewport.IndexAt(len(l.visible), l.Viewport.Scroll+y)
}
