// Package stories holds the catalogue of demo configurations that can be
// launched with -story.
package stories

import (
	"github.com/atomicstack/multiselect/internal/item"
	"github.com/atomicstack/multiselect/internal/ui"
)

const (
	// DefaultStory is launched when no story is requested.
	DefaultStory = "default"

	defaultItemCount = 50
	largeItemCount   = 7000
	// largeAsyncThreshold moves matching off the update loop for the large stories.
	largeAsyncThreshold = 5000
	limitTooltip        = "You can select up to 4 items"
)

func customMessages() ui.Messages {
	return ui.Messages{
		SearchPlaceholder: "Find...",
		NoItems:           "No entries available...",
		NoneSelected:      "Nothing",
		Selected:          "Checked",
		SelectAll:         "Check all",
		ClearAll:          "Uncheck all",
	}
}

// disabledItems marks every fifth of ten items as disabled.
func disabledItems() []item.Item {
	items := item.Generate(10)
	for i := range items {
		items[i].Disabled = i%5 == 0
	}
	return items
}

func withItems(n int) func(*ui.Options) {
	return func(o *ui.Options) {
		o.Items = item.Generate(n)
	}
}

func catalogue() []*Story {
	return []*Story{
		{
			Name:      DefaultStory,
			Title:     "Default view",
			Configure: withItems(defaultItemCount),
		},
		{
			Name:  "different-height",
			Title: "With different height",
			Configure: func(o *ui.Options) {
				o.Items = item.Generate(defaultItemCount)
				o.ResponsiveHeight = "50%"
			},
		},
		{
			Name:  "preselected",
			Title: "Preselected items",
			Configure: func(o *ui.Options) {
				o.Items = item.Generate(defaultItemCount)
				o.SelectedItems = []item.Item{{ID: "3", Label: "Item 3"}}
			},
		},
		{
			Name:  "max-selected",
			Title: "With max selected items",
			Configure: func(o *ui.Options) {
				o.Items = item.Generate(defaultItemCount)
				o.MaxSelectedItems = 4
				o.Messages.DisabledItemsTooltip = limitTooltip
			},
		},
		{
			Name:  "disabled",
			Title: "With some of the items disabled",
			Configure: func(o *ui.Options) {
				o.Items = disabledItems()
				o.Messages.DisabledItemsTooltip = limitTooltip
			},
		},
		{
			Name:  "custom-messages",
			Title: "With custom messages",
			Configure: func(o *ui.Options) {
				o.Items = item.Generate(defaultItemCount)
				o.Messages = customMessages()
			},
		},
		{
			Name:  "custom-styling",
			Title: "With custom styling",
			Configure: func(o *ui.Options) {
				o.Items = item.Generate(defaultItemCount)
				o.WrapperStyle = "custom"
				o.ItemHeight = 2
				o.SelectAllHeight = 2
				o.ListHeight = 20
				o.SelectedListHeight = 22
			},
		},
		{
			Name:  "without-search",
			Title: "Without search and select all",
			Configure: func(o *ui.Options) {
				o.Items = item.Generate(defaultItemCount)
				o.ShowSearch = false
				o.ShowSelectAll = false
				o.ListHeight = 20
				o.SelectedListHeight = 18
			},
		},
		{
			Name:  "large",
			Title: "With large data (7000 items)",
			Configure: func(o *ui.Options) {
				o.Items = item.Generate(largeItemCount)
				o.AsyncFilterThreshold = largeAsyncThreshold
			},
		},
		{
			Name:  "without-selected",
			Title: "Without selected items",
			Configure: func(o *ui.Options) {
				o.Items = item.Generate(largeItemCount)
				o.AsyncFilterThreshold = largeAsyncThreshold
				o.ShowSelectedItems = false
			},
		},
		{
			Name:  "custom-components",
			Title: "With custom components",
			Configure: func(o *ui.Options) {
				o.Items = item.Generate(defaultItemCount)
				o.Renderer = componentRenderer{}
			},
		},
		{
			Name:  "custom-value",
			Title: "With custom components and custom value",
			Configure: func(o *ui.Options) {
				o.Items = item.Generate(defaultItemCount)
				o.Renderer = componentRenderer{showValue: true}
			},
			Host: newValueController,
		},
	}
}
