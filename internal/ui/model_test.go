package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/multiselect/internal/item"
	"github.com/atomicstack/multiselect/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func testOptions(items []item.Item) Options {
	opts := DefaultOptions()
	opts.Items = items
	opts.Width = 80
	opts.Height = 20
	opts.StaticCursor = true
	opts.ScrollInterval = -1
	return opts
}

func newTestHarness(opts Options) *Harness {
	return NewHarness(NewModel(opts))
}

func selectedLabels(m *Model) []string {
	selected := m.SelectedItems()
	labels := make([]string, len(selected))
	for i, it := range selected {
		labels[i] = it.Label
	}
	return labels
}

func TestViewShowsDefaultMessages(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(5)))
	view := h.View()
	for _, want := range []string{"Search...", "Select All", "None Selected", "Item 0", "Item 4"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestTabTogglesCurrentItem(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(5)))
	h.Key(tea.KeyTab)
	h.Key(tea.KeyDown)
	h.Key(tea.KeyTab)
	got := selectedLabels(h.Model())
	if strings.Join(got, ",") != "Item 0,Item 1" {
		t.Fatalf("unexpected selection %v", got)
	}
	if view := h.View(); !strings.Contains(view, "2 selected") {
		t.Fatalf("expected selection count in view:\n%s", view)
	}
	h.Key(tea.KeyTab)
	if got := selectedLabels(h.Model()); strings.Join(got, ",") != "Item 0" {
		t.Fatalf("expected toggle to deselect Item 1, got %v", got)
	}
}

func TestTypingFiltersAndRestoresCursor(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(20)))
	for i := 0; i < 3; i++ {
		h.Key(tea.KeyDown)
	}
	h.Type("15")
	list := h.Model().List()
	if list.Len() != 1 || list.VisibleAt(0).Label != "Item 15" {
		t.Fatalf("expected only Item 15 visible, got %d items", list.Len())
	}
	if list.Cursor != 0 {
		t.Fatalf("expected cursor reset while filtering, got %d", list.Cursor)
	}
	h.Key(tea.KeyCtrlU)
	if list.Len() != 20 {
		t.Fatalf("expected full list after clearing filter, got %d", list.Len())
	}
	if list.Cursor != 3 {
		t.Fatalf("expected cursor restored to 3, got %d", list.Cursor)
	}
}

func TestSpaceTypesIntoSearch(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(20)))
	h.Type("Item 1")
	if got := h.Model().List().Filter(); got != "Item 1" {
		t.Fatalf("expected filter %q, got %q", "Item 1", got)
	}
	if h.Model().List().SelectedCount() != 0 {
		t.Fatalf("space must not toggle while search is shown")
	}
}

func TestSpaceTogglesWithoutSearch(t *testing.T) {
	opts := testOptions(item.Generate(3))
	opts.ShowSearch = false
	h := newTestHarness(opts)
	h.Type(" ")
	if got := selectedLabels(h.Model()); strings.Join(got, ",") != "Item 0" {
		t.Fatalf("expected space to toggle, got %v", got)
	}
}

func TestMaxSelectedShowsTooltip(t *testing.T) {
	opts := testOptions(item.Generate(10))
	opts.MaxSelectedItems = 2
	opts.Messages.DisabledItemsTooltip = "You can select up to {maxSelectedItems} items"
	h := newTestHarness(opts)
	h.Key(tea.KeyTab)
	h.Key(tea.KeyDown)
	h.Key(tea.KeyTab)
	h.Key(tea.KeyDown)
	view := h.View()
	if !strings.Contains(view, "You can select up to 2 items") {
		t.Fatalf("expected tooltip in view:\n%s", view)
	}
	if !strings.Contains(view, "[-] Item 2") {
		t.Fatalf("expected capped items to render disabled:\n%s", view)
	}
	if !strings.Contains(view, "2/2 selected") {
		t.Fatalf("expected capped status:\n%s", view)
	}
	h.Key(tea.KeyTab)
	if h.Model().List().SelectedCount() != 2 {
		t.Fatalf("expected cap to hold, got %d", h.Model().List().SelectedCount())
	}
	h.Key(tea.KeyUp)
	h.Key(tea.KeyTab)
	if got := selectedLabels(h.Model()); strings.Join(got, ",") != "Item 0" {
		t.Fatalf("expected deselect to work at the cap, got %v", got)
	}
}

func TestDisabledItemIgnored(t *testing.T) {
	items := item.Generate(3)
	items[0].Disabled = true
	h := newTestHarness(testOptions(items))
	h.Key(tea.KeyTab)
	if h.Model().List().SelectedCount() != 0 {
		t.Fatalf("expected disabled item to stay unselected")
	}
}

func TestSelectAllAndClearAllKeys(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(5)))
	h.Key(tea.KeyCtrlS)
	if n := h.Model().List().SelectedCount(); n != 5 {
		t.Fatalf("expected 5 selected, got %d", n)
	}
	view := h.View()
	if !strings.Contains(view, "[✓] Select All") || !strings.Contains(view, "Clear All") {
		t.Fatalf("expected checked select-all and clear-all:\n%s", view)
	}
	h.Key(tea.KeyCtrlX)
	if n := h.Model().List().SelectedCount(); n != 0 {
		t.Fatalf("expected clear all, got %d", n)
	}
}

func TestSelectAllKeyIgnoredWhenHidden(t *testing.T) {
	opts := testOptions(item.Generate(5))
	opts.ShowSelectAll = false
	h := newTestHarness(opts)
	h.Key(tea.KeyCtrlS)
	if n := h.Model().List().SelectedCount(); n != 0 {
		t.Fatalf("expected no selection, got %d", n)
	}
}

func TestSelectedPanelFocusAndRemoval(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(5)))
	h.Key(tea.KeyTab)
	h.Key(tea.KeyDown)
	h.Key(tea.KeyTab)
	h.Key(tea.KeyShiftTab)
	if h.Model().focus != focusSelected {
		t.Fatalf("expected selected panel focus")
	}
	h.Key(tea.KeyDown)
	h.Key(tea.KeyDelete)
	if got := selectedLabels(h.Model()); strings.Join(got, ",") != "Item 0" {
		t.Fatalf("expected Item 1 removed, got %v", got)
	}
	h.Key(tea.KeyTab)
	if h.Model().List().SelectedCount() != 0 {
		t.Fatalf("expected last selection removed")
	}
	if h.Model().focus != focusList {
		t.Fatalf("expected focus back on list once selection is empty")
	}
}

func TestShiftTabNeedsSelection(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(5)))
	h.Key(tea.KeyShiftTab)
	if h.Model().focus != focusList {
		t.Fatalf("expected focus to stay on list without selection")
	}
}

func TestEnterAccepts(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(5)))
	h.Key(tea.KeyTab)
	h.Key(tea.KeyEnter)
	if !h.Quit() || !h.Model().Accepted() {
		t.Fatalf("expected accept to quit")
	}
	if h.Model().Cancelled() {
		t.Fatalf("accept must not cancel")
	}
}

func TestEscClearsFilterThenCancels(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(5)))
	h.Type("x")
	h.Key(tea.KeyEsc)
	if h.Quit() {
		t.Fatalf("first esc should only clear the filter")
	}
	if h.Model().List().Filter() != "" {
		t.Fatalf("expected empty filter")
	}
	h.Key(tea.KeyEsc)
	if !h.Quit() || !h.Model().Cancelled() {
		t.Fatalf("expected second esc to cancel")
	}
}

func TestOnChangeReceivesSelection(t *testing.T) {
	var calls [][]item.Item
	opts := testOptions(item.Generate(5))
	opts.OnChange = func(selected []item.Item) {
		calls = append(calls, selected)
	}
	h := newTestHarness(opts)
	h.Key(tea.KeyTab)
	h.Key(tea.KeyCtrlX)
	if len(calls) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(calls))
	}
	if len(calls[0]) != 1 || calls[0][0].ID != "0" || len(calls[1]) != 0 {
		t.Fatalf("unexpected notifications %v", calls)
	}
}

func TestItemsMsgPrunesSelection(t *testing.T) {
	opts := testOptions(item.Generate(5))
	opts.SelectedItems = []item.Item{{ID: "1"}, {ID: "3"}}
	h := newTestHarness(opts)
	h.Send(ItemsMsg{Items: item.Generate(2)})
	if got := selectedLabels(h.Model()); strings.Join(got, ",") != "Item 1" {
		t.Fatalf("expected Item 3 pruned, got %v", got)
	}
	h.Send(SelectedItemsMsg{Items: []item.Item{{ID: "0"}}})
	if got := selectedLabels(h.Model()); strings.Join(got, ",") != "Item 0" {
		t.Fatalf("expected replaced selection, got %v", got)
	}
}

func TestLoadingShowsSpinner(t *testing.T) {
	opts := testOptions(nil)
	opts.Loading = true
	h := newTestHarness(opts)
	if view := h.View(); !strings.Contains(view, "Loading…") {
		t.Fatalf("expected loading indicator:\n%s", view)
	}
	h.Send(ItemsMsg{Items: item.Generate(2)})
	h.Send(LoadingMsg{Loading: false})
	view := h.View()
	if strings.Contains(view, "Loading…") || !strings.Contains(view, "Item 1") {
		t.Fatalf("expected items after loading:\n%s", view)
	}
}

func TestEmptyListShowsNoItems(t *testing.T) {
	h := newTestHarness(testOptions(nil))
	if view := h.View(); !strings.Contains(view, "No Items...") {
		t.Fatalf("expected empty message:\n%s", view)
	}
	h.Type("abc")
	if view := h.View(); !strings.Contains(view, "No Items...") {
		t.Fatalf("expected empty message while filtering:\n%s", view)
	}
}

func TestErrorMsgShownInStatus(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(2)))
	h.Send(ErrorMsg{Err: errTest("source went away")})
	if view := h.View(); !strings.Contains(view, "Error: source went away") {
		t.Fatalf("expected error in view:\n%s", view)
	}
	h.Send(ItemsMsg{Items: item.Generate(3)})
	if view := h.View(); strings.Contains(view, "Error:") {
		t.Fatalf("expected reload to clear the error:\n%s", view)
	}
}

func TestControlledSearchFollowsCaller(t *testing.T) {
	value := ""
	var edits []string
	opts := testOptions(item.Generate(20))
	opts.Search = state.NewControlledSearch(
		func() string { return value },
		func(v string) { edits = append(edits, v) },
	)
	h := newTestHarness(opts)
	h.Type("7")
	if len(edits) != 1 || edits[0] != "7" {
		t.Fatalf("expected edit reported to caller, got %v", edits)
	}
	if h.Model().List().Len() != 20 {
		t.Fatalf("controlled search must not change until the caller does")
	}
	value = "Item 17"
	h.Send(tea.WindowSizeMsg{Width: 80, Height: 20})
	list := h.Model().List()
	if list.Len() != 1 || list.VisibleAt(0).Label != "Item 17" {
		t.Fatalf("expected list to follow caller value, got %d items", list.Len())
	}
}

func TestAsyncFilterThroughHarness(t *testing.T) {
	opts := testOptions(item.Generate(7000))
	opts.AsyncFilterThreshold = 1000
	h := newTestHarness(opts)
	h.Type("Item 699")
	list := h.Model().List()
	if list.Pending() {
		t.Fatalf("expected filter result to be committed")
	}
	if list.Len() != 11 {
		t.Fatalf("expected 11 matches, got %d", list.Len())
	}
}

func TestAsyncFilterPendingStatus(t *testing.T) {
	opts := testOptions(item.Generate(7000))
	opts.AsyncFilterThreshold = 1000
	m := NewModel(opts)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9")})
	if !m.List().Pending() {
		t.Fatalf("expected deferred filtering")
	}
	if view := m.View(); !strings.Contains(view, "filtering…") {
		t.Fatalf("expected pending status:\n%s", view)
	}
	if cmd == nil {
		t.Fatalf("expected filter command")
	}
	m.Update(cmd())
	if m.List().Pending() {
		t.Fatalf("expected filter committed")
	}
	if m.List().AppliedFilter() != "9" {
		t.Fatalf("expected applied filter 9, got %q", m.List().AppliedFilter())
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }

func TestSelectAllAppliesDeferredFilterFirst(t *testing.T) {
	opts := testOptions(item.Generate(7000))
	opts.AsyncFilterThreshold = 5000
	m := NewModel(opts)
	var pending []tea.Cmd
	for _, r := range "Item 699" {
		key := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			key = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		if _, cmd := m.Update(key); cmd != nil {
			pending = append(pending, cmd)
		}
	}
	if !m.List().Pending() {
		t.Fatalf("expected filtering to be deferred")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.List().Pending() {
		t.Fatalf("expected select all to apply the deferred filter")
	}
	if got := len(m.SelectedItems()); got != 11 {
		t.Fatalf("expected 11 selected items, got %d", got)
	}
	if len(pending) == 0 {
		t.Fatalf("expected a deferred filter command")
	}
	m.Update(pending[len(pending)-1]())
	if m.List().Len() != 11 {
		t.Fatalf("expected late result to leave 11 visible items, got %d", m.List().Len())
	}
	if got := len(m.SelectedItems()); got != 11 {
		t.Fatalf("expected selection untouched by late result, got %d", got)
	}
}
