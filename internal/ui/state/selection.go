package state

import "github.com/atomicstack/multiselect/internal/item"

// Outcome describes the effect of a selection request.
type Outcome int

const (
	OutcomeUnchanged Outcome = iota
	OutcomeChanged
	OutcomeDisabled
	OutcomeLimitReached
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeChanged:
		return "changed"
	case OutcomeDisabled:
		return "disabled"
	case OutcomeLimitReached:
		return "limit"
	case OutcomeUnknown:
		return "unknown"
	default:
		return "unchanged"
	}
}

// Selection is an insertion-ordered set of item ids.
type Selection struct {
	order []string
	set   map[string]struct{}
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	if s.set == nil {
		return false
	}
	_, ok := s.set[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.order)
}

// IDs returns the selected ids in insertion order.
func (s *Selection) IDs() []string {
	dup := make([]string, len(s.order))
	copy(dup, s.order)
	return dup
}

func (s *Selection) add(id string) bool {
	if s.set == nil {
		s.set = make(map[string]struct{})
	}
	if _, ok := s.set[id]; ok {
		return false
	}
	s.set[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

func (s *Selection) remove(id string) bool {
	if _, ok := s.set[id]; !ok {
		return false
	}
	delete(s.set, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Selection) retain(keep func(string) bool) bool {
	if len(s.order) == 0 {
		return false
	}
	kept := s.order[:0]
	removed := false
	for _, id := range s.order {
		if keep(id) {
			kept = append(kept, id)
			continue
		}
		delete(s.set, id)
		removed = true
	}
	s.order = kept
	return removed
}

// IsSelected reports whether the given id is selected.
func (l *List) IsSelected(id string) bool {
	return l.selection.Contains(id)
}

// SelectedCount returns the number of selected items.
func (l *List) SelectedCount() int {
	return l.selection.Len()
}

// SelectedIDs returns the selected ids in selection order.
func (l *List) SelectedIDs() []string {
	return l.selection.IDs()
}

// AtLimit reports whether the selection has reached MaxSelected.
func (l *List) AtLimit() bool {
	return l.MaxSelected > 0 && l.selection.Len() >= l.MaxSelected
}

// SelectedItems returns the currently selected items in selection order.
func (l *List) SelectedItems() []item.Item {
	if l.selection.Len() == 0 {
		return nil
	}
	selected := make([]item.Item, 0, l.selection.Len())
	for _, id := range l.selection.order {
		if it, ok := l.store.Get(id); ok {
			selected = append(selected, it)
		}
	}
	return selected
}

// SetSelectedItems replaces the selection without notifying. Items missing
// from the store or disabled are skipped and the cap is honoured.
func (l *List) SetSelectedItems(items []item.Item) {
	l.selection = Selection{}
	for _, it := range items {
		stored, ok := l.store.Get(it.ID)
		if !ok || stored.Disabled {
			continue
		}
		if l.AtLimit() {
			break
		}
		l.selection.add(stored.ID)
	}
}

// CleanupSelections drops selections that are no longer present in the store
// or that the new item set marks disabled.
func (l *List) CleanupSelections() bool {
	return l.selection.retain(func(id string) bool {
		it, ok := l.store.Get(id)
		return ok && !it.Disabled
	})
}

// Select adds id to the selection.
func (l *List) Select(id string) Outcome {
	it, ok := l.store.Get(id)
	if !ok {
		return OutcomeUnknown
	}
	if l.selection.Contains(id) {
		return OutcomeUnchanged
	}
	if it.Disabled {
		return OutcomeDisabled
	}
	if l.AtLimit() {
		return OutcomeLimitReached
	}
	l.selection.add(id)
	l.emitChange()
	return OutcomeChanged
}

// Deselect removes id from the selection.
func (l *List) Deselect(id string) Outcome {
	it, ok := l.store.Get(id)
	if !ok {
		return OutcomeUnknown
	}
	if it.Disabled && l.selection.Contains(id) {
		return OutcomeDisabled
	}
	if !l.selection.remove(id) {
		return OutcomeUnchanged
	}
	l.emitChange()
	return OutcomeChanged
}

// Toggle toggles selection membership for the supplied id.
func (l *List) Toggle(id string) Outcome {
	if l.selection.Contains(id) {
		return l.Deselect(id)
	}
	return l.Select(id)
}

// ToggleCurrent toggles the selection state at the current cursor.
func (l *List) ToggleCurrent() Outcome {
	current, ok := l.Current()
	if !ok {
		return OutcomeUnchanged
	}
	return l.Toggle(current.ID)
}

// SelectAll selects every visible, enabled item in visible order until the
// cap is reached. A partial selection reports OutcomeLimitReached after
// notifying once. A deferred filter is applied first.
func (l *List) SelectAll() Outcome {
	l.FlushPending()
	added := false
	limited := false
	for _, idx := range l.visible {
		it := l.store.At(idx)
		if it.Disabled || l.selection.Contains(it.ID) {
			continue
		}
		if l.AtLimit() {
			limited = true
			break
		}
		l.selection.add(it.ID)
		added = true
	}
	if added {
		l.emitChange()
	}
	if limited {
		return OutcomeLimitReached
	}
	if added {
		return OutcomeChanged
	}
	return OutcomeUnchanged
}

// ClearAll deselects items according to ClearScope.
func (l *List) ClearAll() Outcome {
	var removed bool
	switch l.ClearScope {
	case ClearVisibleItems:
		l.FlushPending()
		visible := make(map[string]struct{}, len(l.visible))
		for _, idx := range l.visible {
			visible[l.store.At(idx).ID] = struct{}{}
		}
		removed = l.selection.retain(func(id string) bool {
			_, shown := visible[id]
			return !shown
		})
	default:
		removed = l.selection.retain(func(string) bool { return false })
	}
	if !removed {
		return OutcomeUnchanged
	}
	l.emitChange()
	return OutcomeChanged
}

// AllVisibleSelected reports whether every enabled visible item is selected.
func (l *List) AllVisibleSelected() bool {
	any := false
	for _, idx := range l.visible {
		it := l.store.At(idx)
		if it.Disabled {
			continue
		}
		any = true
		if !l.selection.Contains(it.ID) {
			return false
		}
	}
	return any
}

func (l *List) emitChange() {
	if l.onChange == nil {
		return
	}
	l.onChange(l.SelectedItems())
}

// SelectedAt returns the i-th selected item in selection order.
func (l *List) SelectedAt(i int) (item.Item, bool) {
	if i < 0 || i >= l.selection.Len() {
		return item.Item{}, false
	}
	return l.store.Get(l.selection.order[i])
}
