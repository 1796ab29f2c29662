package state

import "sort"

// DefaultOverscan is the number of rows materialized beyond each viewport edge.
const DefaultOverscan = 3

// HeightFunc reports the height in rows of the visible item at index.
type HeightFunc func(index int) int

// Window is the contiguous range of visible items that must be rendered.
type Window struct {
	Start int
	End   int
	// Offset is the number of rows to skip from the top of Start before the
	// viewport begins.
	Offset      int
	TotalHeight int
	Virtualized bool
}

// Len returns the number of materialized rows.
func (w Window) Len() int {
	return w.End - w.Start
}

// Viewport maps a scroll offset over a sequence of rows onto a bounded window.
type Viewport struct {
	ItemHeight int
	HeightOf   HeightFunc
	Height     int
	Overscan   int
	Scroll     int

	prefix      []int
	prefixCount int
	prefixValid bool
}

// Invalidate drops cached row positions. Call when per-item heights change.
func (v *Viewport) Invalidate() {
	v.prefixValid = false
}

// Virtualized reports whether row heights are known well enough to window.
func (v *Viewport) Virtualized() bool {
	return v.HeightOf != nil || v.ItemHeight > 0
}

func (v *Viewport) overscan() int {
	if v.Overscan < 0 {
		return 0
	}
	return v.Overscan
}

func (v *Viewport) fixed() bool {
	return v.HeightOf == nil && v.ItemHeight > 0
}

func (v *Viewport) heightAt(i int) int {
	if v.HeightOf != nil {
		if h := v.HeightOf(i); h > 0 {
			return h
		}
		return 1
	}
	if v.ItemHeight > 0 {
		return v.ItemHeight
	}
	return 1
}

func (v *Viewport) ensurePrefix(count int) {
	if v.prefixValid && v.prefixCount == count && len(v.prefix) == count+1 {
		return
	}
	if cap(v.prefix) >= count+1 {
		v.prefix = v.prefix[:count+1]
	} else {
		v.prefix = make([]int, count+1)
	}
	v.prefix[0] = 0
	for i := 0; i < count; i++ {
		v.prefix[i+1] = v.prefix[i] + v.heightAt(i)
	}
	v.prefixCount = count
	v.prefixValid = true
}

// TotalHeight returns the scrollable height of count rows.
func (v *Viewport) TotalHeight(count int) int {
	if count <= 0 {
		return 0
	}
	if !v.Virtualized() {
		return count
	}
	if v.fixed() {
		return count * v.ItemHeight
	}
	v.ensurePrefix(count)
	return v.prefix[count]
}

// RowTop returns the scroll position at which row index begins.
func (v *Viewport) RowTop(count, index int) int {
	if index <= 0 || count <= 0 {
		return 0
	}
	if index > count {
		index = count
	}
	if !v.Virtualized() {
		return index
	}
	if v.fixed() {
		return index * v.ItemHeight
	}
	v.ensurePrefix(count)
	return v.prefix[index]
}

// RowHeight returns the height of row index.
func (v *Viewport) RowHeight(index int) int {
	if !v.Virtualized() {
		return 1
	}
	return v.heightAt(index)
}

// IndexAt returns the row covering scroll position y, or -1 when out of range.
func (v *Viewport) IndexAt(count, y int) int {
	if count <= 0 || y < 0 {
		return -1
	}
	if y >= v.TotalHeight(count) {
		return -1
	}
	if !v.Virtualized() {
		return y
	}
	if v.fixed() {
		return y / v.ItemHeight
	}
	v.ensurePrefix(count)
	return sort.Search(count, func(i int) bool { return v.prefix[i+1] > y })
}

// MaxScroll is the largest scroll offset that still fills the viewport.
func (v *Viewport) MaxScroll(count int) int {
	limit := v.TotalHeight(count) - v.Height
	if limit < 0 {
		return 0
	}
	return limit
}

// ClampScroll keeps the scroll offset inside [0, MaxScroll].
func (v *Viewport) ClampScroll(count int) {
	if v.Scroll > v.MaxScroll(count) {
		v.Scroll = v.MaxScroll(count)
	}
	if v.Scroll < 0 {
		v.Scroll = 0
	}
}

// ScrollTo moves to offset, clamped. It reports whether the offset changed.
func (v *Viewport) ScrollTo(count, offset int) bool {
	old := v.Scroll
	v.Scroll = offset
	v.ClampScroll(count)
	return v.Scroll != old
}

// ScrollBy moves the offset by delta rows, clamped.
func (v *Viewport) ScrollBy(count, delta int) bool {
	return v.ScrollTo(count, v.Scroll+delta)
}

// EnsureVisible scrolls the minimum amount needed to show row index.
func (v *Viewport) EnsureVisible(count, index int) {
	if count <= 0 || index < 0 || index >= count || v.Height <= 0 {
		v.ClampScroll(count)
		return
	}
	top := v.RowTop(count, index)
	bottom := top + v.RowHeight(index)
	if top < v.Scroll {
		v.Scroll = top
	} else if bottom > v.Scroll+v.Height {
		v.Scroll = bottom - v.Height
		if v.Scroll > top {
			v.Scroll = top
		}
	}
	v.ClampScroll(count)
}

// Layout computes the window of rows overlapping the viewport plus overscan.
// Without a usable item height every row is returned.
func (v *Viewport) Layout(count int) Window {
	if count <= 0 {
		v.Scroll = 0
		return Window{Virtualized: v.Virtualized()}
	}
	if !v.Virtualized() {
		v.Scroll = 0
		return Window{Start: 0, End: count, TotalHeight: count}
	}
	total := v.TotalHeight(count)
	v.ClampScroll(count)
	if v.Height <= 0 {
		return Window{TotalHeight: total, Virtualized: true}
	}
	var first, last int
	if v.fixed() {
		first = v.Scroll / v.ItemHeight
		last = (v.Scroll + v.Height - 1) / v.ItemHeight
	} else {
		v.ensurePrefix(count)
		scroll := v.Scroll
		bottom := v.Scroll + v.Height - 1
		first = sort.Search(count, func(i int) bool { return v.prefix[i+1] > scroll })
		last = sort.Search(count, func(i int) bool { return v.prefix[i+1] > bottom })
	}
	if last >= count {
		last = count - 1
	}
	start := first - v.overscan()
	if start < 0 {
		start = 0
	}
	end := last + 1 + v.overscan()
	if end > count {
		end = count
	}
	return Window{
		Start:       start,
		End:         end,
		Offset:      v.Scroll - v.RowTop(count, start),
		TotalHeight: total,
		Virtualized: true,
	}
}

// MaxWindowRows bounds Window.Len for a viewport whose smallest row is
// minItemHeight rows tall.
func MaxWindowRows(viewportHeight, minItemHeight, overscan int) int {
	if minItemHeight < 1 {
		minItemHeight = 1
	}
	if overscan < 0 {
		overscan = 0
	}
	return (viewportHeight+minItemHeight-1)/minItemHeight + 1 + 2*overscan
}
