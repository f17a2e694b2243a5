package layout

import (
	"strings"

	"github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/roster"
)

// Point is a position in viewport coordinates.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Kind selects a layout algorithm.
type Kind string

const (
	KindRing          Kind = "ring"
	KindClusters      Kind = "clusters"
	KindConstellation Kind = "constellation"
)

// Kinds lists the supported layout kinds.
var Kinds = []Kind{KindClusters, KindRing, KindConstellation}

// DefaultKind is used when no kind is given.
const DefaultKind = KindClusters

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindRing, KindClusters, KindConstellation:
		return true
	}
	return false
}

// Clustered reports whether k groups students by year.
func (k Kind) Clustered() bool {
	return k == KindClusters || k == KindConstellation
}

// ParseKind parses a kind name. The empty string yields [DefaultKind].
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return DefaultKind, nil
	}
	if !k.Valid() {
		return DefaultKind, errors.New(errors.ErrCodeInvalidLayout, "unknown layout %q (want ring, clusters or constellation)", s)
	}
	return k, nil
}

// Node is a positioned student.
type Node struct {
	roster.Entity
	X     float64
	Y     float64
	Group GroupKey
	// Center is the group center; nil for the flat ring.
	Center *Point
}

// Point returns the node position.
func (n *Node) Point() Point { return Point{X: n.X, Y: n.Y} }

// Group describes one visible year bucket.
type Group struct {
	Key    GroupKey
	Center Point
	Size   int
}

// Result is the output of a layout.
type Result struct {
	Kind Kind
	// Nodes holds the visible students in layout order.
	Nodes []Node
	// Centers maps visible group keys to their centers (clustered kinds only).
	Centers map[GroupKey]Point
	// Groups lists the visible groups in key order.
	Groups []Group
	// Radius is the outer ring radius; InnerRadius the member ring radius.
	Radius      float64
	InnerRadius float64
}

// Node returns the node with the given id, or nil.
func (r *Result) Node(id string) *Node {
	for i := range r.Nodes {
		if r.Nodes[i].ID == id {
			return &r.Nodes[i]
		}
	}
	return nil
}

// Keys returns the visible group keys in order.
func (r *Result) Keys() []GroupKey {
	keys := make([]GroupKey, len(r.Groups))
	for i, g := range r.Groups {
		keys[i] = g.Key
	}
	return keys
}
