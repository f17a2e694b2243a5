package layout

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/constellation/pkg/roster"
)

// Compute lays out entities in a width×height viewport. The kind defaults to
// [KindClusters]; see the With* options for the other parameters.
func Compute(entities []roster.Entity, width, height float64, opts ...Option) Result {
	c := newConfig(opts)
	vp := newViewport(width, height, c.margin)
	var r Result
	if c.kind.Clustered() {
		r = clusters(entities, vp, c)
	} else {
		r = ring(entities, vp, c)
	}
	r.Kind = c.kind
	if c.jitter > 0 {
		for i := range r.Nodes {
			n := &r.Nodes[i]
			p := jitter(n.ID, Point{X: n.X, Y: n.Y}, c.jitter, c.seed)
			p = vp.clamp(p)
			n.X, n.Y = p.X, p.Y
		}
	}
	return r
}

// Ring places all entities on a single circle. It is shorthand for
// Compute with [KindRing].
func Ring(entities []roster.Entity, width, height, rotation float64, filter Filter) Result {
	return Compute(entities, width, height, WithKind(KindRing), WithRotation(rotation), WithFilter(filter))
}

// Clusters groups entities by year on a ring of rings. It is shorthand for
// Compute with [KindClusters].
func Clusters(entities []roster.Entity, width, height, rotation float64, filter Filter) Result {
	return Compute(entities, width, height, WithKind(KindClusters), WithRotation(rotation), WithFilter(filter))
}

// viewport holds the usable area after the margin. The margin is capped at
// half of each dimension so the clamp box is never inverted.
type viewport struct {
	w, h   float64
	margin float64
	center Point
	radius float64
}

func newViewport(w, h, margin float64) viewport {
	w = math.Max(finiteOr(w, 0), 0)
	h = math.Max(finiteOr(h, 0), 0)
	m := math.Min(margin, math.Min(w/2, h/2))
	return viewport{
		w:      w,
		h:      h,
		margin: m,
		center: Point{X: w / 2, Y: h / 2},
		radius: math.Max(math.Min(w, h)/2-m, 0),
	}
}

func (v viewport) clamp(p Point) Point {
	return Point{
		X: math.Min(math.Max(p.X, v.margin), v.w-v.margin),
		Y: math.Min(math.Max(p.Y, v.margin), v.h-v.margin),
	}
}

// onRing returns item i of n on a ring of radius r around c.
func onRing(c Point, r float64, i, n int, rotation float64) Point {
	theta := StartAngle + float64(i)/float64(max(n, 1))*2*math.Pi + rotation
	return Point{X: c.X + r*math.Cos(theta), Y: c.Y + r*math.Sin(theta)}
}

func compareEntities(a, b *roster.Entity) int {
	if c := CompareKeys(KeyOf(a), KeyOf(b)); c != 0 {
		return c
	}
	if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
		return c
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

func sortedCopy(entities []roster.Entity) []roster.Entity {
	s := slices.Clone(entities)
	slices.SortStableFunc(s, func(a, b roster.Entity) int { return compareEntities(&a, &b) })
	return s
}

func ring(entities []roster.Entity, vp viewport, c *config) Result {
	order := sortedCopy(entities)
	n := len(order)

	r := Result{
		Nodes:   make([]Node, 0, n),
		Centers: map[GroupKey]Point{},
		Radius:  vp.radius,
	}
	sizes := map[GroupKey]int{}
	for i := range order {
		e := &order[i]
		k := KeyOf(e)
		if !c.filter.Match(k) {
			continue
		}
		p := vp.clamp(onRing(vp.center, vp.radius, i, n, c.rotation))
		r.Nodes = append(r.Nodes, Node{Entity: *e, X: p.X, Y: p.Y, Group: k})
		sizes[k]++
	}
	r.Groups = groupList(sizes, func(GroupKey) Point { return vp.center })
	return r
}

type bucket struct {
	key     GroupKey
	members []roster.Entity
}

func buckets(entities []roster.Entity) []bucket {
	var out []bucket
	for _, e := range sortedCopy(entities) {
		k := KeyOf(&e)
		if len(out) == 0 || out[len(out)-1].key != k {
			out = append(out, bucket{key: k})
		}
		out[len(out)-1].members = append(out[len(out)-1].members, e)
	}
	return out
}

// ringRadii splits the usable radius between the outer ring and the member
// rings. Member rings are capped so adjacent groups never overlap.
func ringRadii(base float64, groups int, scale float64) (outer, inner float64) {
	if groups <= 1 {
		return 0, base
	}
	s := math.Sin(math.Pi / float64(groups))
	inner = math.Min(base*scale, base*s/(1+s))
	return base - inner, inner
}

func clusters(entities []roster.Entity, vp viewport, c *config) Result {
	groups := buckets(entities)
	outer, inner := ringRadii(vp.radius, len(groups), c.innerScale)

	r := Result{
		Nodes:       make([]Node, 0, len(entities)),
		Centers:     map[GroupKey]Point{},
		Radius:      outer,
		InnerRadius: inner,
	}

	_, single := c.filter.Key()
	recenter := c.centered && single

	for gi, g := range groups {
		if !c.filter.Match(g.key) {
			continue
		}
		center := vp.clamp(onRing(vp.center, outer, gi, len(groups), c.rotation))
		radius := inner
		if recenter {
			center = vp.center
			radius = vp.radius
			r.Radius, r.InnerRadius = 0, radius
		}
		r.Centers[g.key] = center
		r.Groups = append(r.Groups, Group{Key: g.key, Center: center, Size: len(g.members)})

		m := len(g.members)
		for j, e := range g.members {
			p := center
			if m > 1 {
				p = onRing(center, radius, j, m, c.rotation*c.innerSpin)
			}
			p = vp.clamp(p)
			cp := center
			r.Nodes = append(r.Nodes, Node{Entity: e, X: p.X, Y: p.Y, Group: g.key, Center: &cp})
		}
	}
	return r
}

func groupList(sizes map[GroupKey]int, center func(GroupKey) Point) []Group {
	keys := make([]GroupKey, 0, len(sizes))
	for k := range sizes {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, CompareKeys)
	out := make([]Group, len(keys))
	for i, k := range keys {
		out[i] = Group{Key: k, Center: center(k), Size: sizes[k]}
	}
	return out
}

// GroupKeys returns the distinct group keys of entities in layout order.
func GroupKeys(entities []roster.Entity) []GroupKey {
	seen := map[GroupKey]bool{}
	var keys []GroupKey
	for i := range entities {
		k := KeyOf(&entities[i])
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, CompareKeys)
	return keys
}
