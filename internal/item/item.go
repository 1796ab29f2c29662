package item

import (
	"fmt"
	"strconv"
)

// Item represents a selectable list entry. Identity is by ID.
type Item struct {
	ID       string `json:"id" yaml:"id" toml:"id"`
	Label    string `json:"label" yaml:"label" toml:"label"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty"`
}

// Clone produces a shallow copy of the provided items.
func Clone(items []Item) []Item {
	if items == nil {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}

// Generate returns size items labelled "Item 0" through "Item size-1".
func Generate(size int) []Item {
	if size <= 0 {
		return nil
	}
	items := make([]Item, size)
	for i := range items {
		items[i] = Item{ID: strconv.Itoa(i), Label: fmt.Sprintf("Item %d", i)}
	}
	return items
}

// IDs returns the identifiers of items in order.
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
