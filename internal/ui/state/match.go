package state

import (
	"context"
	"runtime"
	"strings"

	"github.com/atomicstack/multiselect/internal/item"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/sync/errgroup"
)

const (
	defaultParallelThreshold = 20000
	defaultChunkSize         = 4096
	cancelCheckInterval      = 1024
)

// Query carries the raw and case-folded forms of a search term.
type Query struct {
	Raw    string
	Folded string
}

// NewQuery trims and folds the supplied search text.
func NewQuery(text string) Query {
	trimmed := strings.TrimSpace(text)
	return Query{Raw: trimmed, Folded: strings.ToLower(trimmed)}
}

// Empty reports whether the query matches everything.
func (q Query) Empty() bool {
	return q.Raw == ""
}

// Matcher decides whether a single label satisfies a query.
type Matcher interface {
	Name() string
	Match(q Query, label, folded string) bool
}

// SubstringMatcher performs a case-insensitive substring match against the label.
type SubstringMatcher struct{}

func (SubstringMatcher) Name() string { return "substring" }

func (SubstringMatcher) Match(q Query, _ string, folded string) bool {
	return strings.Contains(folded, q.Folded)
}

// FuzzyMatcher matches when the query runes appear in order within the label,
// ignoring case and diacritics.
type FuzzyMatcher struct{}

func (FuzzyMatcher) Name() string { return "fuzzy" }

func (FuzzyMatcher) Match(q Query, label string, _ string) bool {
	return fuzzy.MatchNormalizedFold(q.Raw, label)
}

// MatcherByName resolves a matcher from its configuration name.
func MatcherByName(name string) (Matcher, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "substring":
		return SubstringMatcher{}, true
	case "fuzzy":
		return FuzzyMatcher{}, true
	}
	return nil, false
}

// Snapshot is an immutable view of a store used by filtering.
type Snapshot struct {
	items      []item.Item
	folded     []string
	generation uint64
}

// Snapshot captures the current item set. Replacing items later allocates new
// slices, so a snapshot stays valid while a filter runs elsewhere.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{items: s.items, folded: s.folded, generation: s.generation}
}

// Len returns the number of items in the snapshot.
func (s Snapshot) Len() int {
	return len(s.items)
}

// FilterEngine derives the visible subsequence of a store for a query.
type FilterEngine struct {
	Matcher           Matcher
	ParallelThreshold int
	ChunkSize         int
}

func (e *FilterEngine) matcher() Matcher {
	if e == nil || e.Matcher == nil {
		return SubstringMatcher{}
	}
	return e.Matcher
}

// Match returns the store indices matching text, in store order.
func (e *FilterEngine) Match(ctx context.Context, text string, snap Snapshot) ([]int, error) {
	q := NewQuery(text)
	n := snap.Len()
	if q.Empty() {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	threshold := defaultParallelThreshold
	chunk := defaultChunkSize
	if e != nil {
		if e.ParallelThreshold > 0 {
			threshold = e.ParallelThreshold
		}
		if e.ChunkSize > 0 {
			chunk = e.ChunkSize
		}
	}
	m := e.matcher()
	if n < threshold || n <= chunk {
		return matchRange(ctx, m, q, snap, 0, n)
	}

	chunks := (n + chunk - 1) / chunk
	results := make([][]int, chunks)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for c := 0; c < chunks; c++ {
		c := c
		g.Go(func() error {
			lo := c * chunk
			hi := lo + chunk
			if hi > n {
				hi = n
			}
			out, err := matchRange(gctx, m, q, snap, lo, hi)
			if err != nil {
				return err
			}
			results[c] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	total := 0
	for _, r := range results {
		total += len(r)
	}
	merged := make([]int, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}

func matchRange(ctx context.Context, m Matcher, q Query, snap Snapshot, lo, hi int) ([]int, error) {
	out := make([]int, 0, 16)
	for i := lo; i < hi; i++ {
		if (i-lo)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if m.Match(q, snap.items[i].Label, snap.folded[i]) {
			out = append(out, i)
		}
	}
	return out, nil
}
