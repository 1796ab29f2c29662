package state

import (
	"sort"
	"strings"

	"github.com/atomicstack/multiselect/internal/item"
)

// Comparator orders items when the caller wants something other than input order.
type Comparator func(a, b item.Item) bool

// Store holds the full candidate set as a flat, ordered slice with an id index.
type Store struct {
	items      []item.Item
	folded     []string
	index      map[string]int
	less       Comparator
	generation uint64
}

// NewStore constructs a store from items, keeping input order unless less is set.
func NewStore(items []item.Item, less Comparator) *Store {
	s := &Store{less: less}
	s.SetItems(items)
	return s
}

// SetItems replaces the full item set. Later duplicates of an id are dropped.
func (s *Store) SetItems(items []item.Item) {
	unique := make([]item.Item, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		if _, dup := index[it.ID]; dup {
			continue
		}
		index[it.ID] = len(unique)
		unique = append(unique, it)
	}
	if s.less != nil {
		less := s.less
		sort.SliceStable(unique, func(i, j int) bool { return less(unique[i], unique[j]) })
		for i, it := range unique {
			index[it.ID] = i
		}
	}
	folded := make([]string, len(unique))
	for i, it := range unique {
		folded[i] = strings.ToLower(it.Label)
	}
	s.items = unique
	s.folded = folded
	s.index = index
	s.generation++
}

// Len reports the number of stored items.
func (s *Store) Len() int {
	return len(s.items)
}

// At returns the item at position i.
func (s *Store) At(i int) item.Item {
	return s.items[i]
}

// Items exposes the stored items. Callers must not modify the returned slice.
func (s *Store) Items() []item.Item {
	return s.items
}

// Get looks up an item by id.
func (s *Store) Get(id string) (item.Item, bool) {
	idx, ok := s.index[id]
	if !ok {
		return item.Item{}, false
	}
	return s.items[idx], true
}

// Contains reports whether id is present.
func (s *Store) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// IndexOf returns the store position of id or -1.
func (s *Store) IndexOf(id string) int {
	if idx, ok := s.index[id]; ok {
		return idx
	}
	return -1
}

// Generation increments every time the item set is replaced.
func (s *Store) Generation() uint64 {
	return s.generation
}

func (s *Store) foldedLabel(i int) string {
	return s.folded[i]
}
