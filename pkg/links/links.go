package links

import (
	"slices"
	"strings"

	"github.com/matzehuels/constellation/pkg/layout"
	"github.com/matzehuels/constellation/pkg/roster"
	"github.com/matzehuels/constellation/pkg/similarity"
)

// Link connects the active student to one peer.
type Link struct {
	From  roster.Entity
	To    layout.Node
	Score float64
	// Ratio is Score relative to the strongest link, in (0, 1].
	Ratio float64
}

// Limits bounds the number of links a selector returns.
type Limits struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

var (
	// Desktop allows up to 16 links.
	Desktop = Limits{Min: 3, Max: 16}
	// Compact allows up to 8 links, for small viewports.
	Compact = Limits{Min: 3, Max: 8}
)

// Clamp returns n bounded to [Min, Max]. Invalid limits are repaired first:
// Min is at least 1 and Max at least Min.
func (l Limits) Clamp(n int) int {
	lo := max(l.Min, 1)
	hi := max(l.Max, lo)
	return min(max(n, lo), hi)
}

// Selector ranks links with a weight table and limits.
// The zero value uses [similarity.DefaultTable] and [Desktop].
type Selector struct {
	Table  similarity.Table
	Limits Limits
}

// Select ranks pool against active with [Desktop] limits and the default
// weights.
func Select(active *roster.Entity, pool []layout.Node, mode similarity.Mode, topN int) []Link {
	return Selector{}.Select(active, pool, mode, topN)
}

// Select returns at most Limits.Clamp(topN) links from active to the members
// of pool with a positive score, strongest first. The active student itself
// is never linked. The result is empty, never nil, when nothing qualifies.
func (s Selector) Select(active *roster.Entity, pool []layout.Node, mode similarity.Mode, topN int) []Link {
	ranked := s.rank(active, len(pool), func(i int) *roster.Entity { return &pool[i].Entity }, mode, topN)
	out := make([]Link, len(ranked))
	for i, c := range ranked {
		out[i] = Link{From: *active, To: pool[c.index], Score: c.score, Ratio: c.ratio}
	}
	return out
}

func (s Selector) table() similarity.Table {
	if s.Table == nil {
		return similarity.DefaultTable
	}
	return s.Table
}

func (s Selector) limits() Limits {
	if s.Limits == (Limits{}) {
		return Desktop
	}
	return s.Limits
}

type ranked struct {
	index int
	score float64
	ratio float64
	name  string
	id    string
}

func (s Selector) rank(active *roster.Entity, n int, at func(int) *roster.Entity, mode similarity.Mode, topN int) []ranked {
	if active == nil || n == 0 {
		return nil
	}
	table := s.table()
	var cands []ranked
	for i := range n {
		e := at(i)
		if e.ID == active.ID {
			continue
		}
		if sc := table.Score(active, e, mode); sc > 0 {
			cands = append(cands, ranked{index: i, score: sc, name: e.Name, id: e.ID})
		}
	}
	slices.SortStableFunc(cands, compareRanked)

	cands = cands[:min(len(cands), s.limits().Clamp(topN))]
	top := 1.0
	if len(cands) > 0 {
		top = cands[0].score
	}
	for i := range cands {
		cands[i].ratio = cands[i].score / top
	}
	return cands
}

func compareRanked(a, b ranked) int {
	switch {
	case a.score > b.score:
		return -1
	case a.score < b.score:
		return 1
	}
	if c := strings.Compare(strings.ToLower(a.name), strings.ToLower(b.name)); c != 0 {
		return c
	}
	if c := strings.Compare(a.name, b.name); c != 0 {
		return c
	}
	return strings.Compare(a.id, b.id)
}
