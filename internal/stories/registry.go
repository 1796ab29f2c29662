package stories

import (
	"sort"
	"strings"

	"github.com/atomicstack/multiselect/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Story is a named demo configuration of the widget.
type Story struct {
	Name  string
	Title string
	// Order keeps the catalogue in presentation order.
	Order int
	// Configure adjusts the base options for this story.
	Configure func(*ui.Options)
	// Host wraps the model in an outer program model. Nil runs the
	// ui.Model directly.
	Host func(ui.Options) (tea.Model, *ui.Model)
}

// Apply returns base adjusted for this story.
func (s *Story) Apply(base ui.Options) ui.Options {
	opts := base
	if s.Configure != nil {
		s.Configure(&opts)
	}
	return opts
}

// New builds the program model for opts along with the widget it hosts.
func (s *Story) New(opts ui.Options) (tea.Model, *ui.Model) {
	if s.Host != nil {
		return s.Host(opts)
	}
	m := ui.NewModel(opts)
	return m, m
}

// Registry exposes lookup utilities for story definitions.
type Registry struct {
	stories map[string]*Story
}

// BuildRegistry constructs the registry from the built-in catalogue.
func BuildRegistry() *Registry {
	r := &Registry{stories: make(map[string]*Story)}
	for i, story := range catalogue() {
		story.Order = i
		r.stories[story.Name] = story
	}
	return r
}

// Find locates a story by name, ignoring case and surrounding whitespace.
func (r *Registry) Find(name string) (*Story, bool) {
	story, ok := r.stories[strings.ToLower(strings.TrimSpace(name))]
	return story, ok
}

// All returns the stories in catalogue order.
func (r *Registry) All() []*Story {
	out := make([]*Story, 0, len(r.stories))
	for _, story := range r.stories {
		out = append(out, story)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Names lists the story names in catalogue order.
func (r *Registry) Names() []string {
	all := r.All()
	names := make([]string, len(all))
	for i, story := range all {
		names[i] = story.Name
	}
	return names
}
