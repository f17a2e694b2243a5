package graph

import (
	"github.com/matzehuels/constellation/pkg/layout"
	"github.com/matzehuels/constellation/pkg/links"
)

// =============================================================================
// Document - Renderer Hand-off Format
// =============================================================================

// Document is one computed view of a roster.
type Document struct {
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Kind     string  `json:"kind" yaml:"kind"`
	Mode     string  `json:"mode,omitempty" yaml:"mode,omitempty"`
	Rotation float64 `json:"rotation" yaml:"rotation"`
	Filter   string  `json:"filter" yaml:"filter"`
	Active   string  `json:"active,omitempty" yaml:"active,omitempty"`

	Nodes  []Node  `json:"nodes" yaml:"nodes"`
	Groups []Group `json:"groups" yaml:"groups"`
	Links  []Link  `json:"links,omitempty" yaml:"links,omitempty"`
}

// Node is a positioned student.
type Node struct {
	ID     string  `json:"id" yaml:"id"`
	Label  string  `json:"label" yaml:"label"`
	Year   *int    `json:"year,omitempty" yaml:"year,omitempty"`
	Group  string  `json:"group" yaml:"group"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Center *Point  `json:"center,omitempty" yaml:"center,omitempty"`
}

// Point is a coordinate pair.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Group is a visible year bucket.
type Group struct {
	Key  string  `json:"key" yaml:"key"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Size int     `json:"size" yaml:"size"`
}

// Link is a ranked similarity link.
type Link struct {
	From  string  `json:"from" yaml:"from"`
	To    string  `json:"to" yaml:"to"`
	Score float64 `json:"score" yaml:"score"`
	Ratio float64 `json:"ratio" yaml:"ratio"`
}

// =============================================================================
// Conversion
// =============================================================================

// Meta carries the view parameters recorded in a Document.
type Meta struct {
	Width    float64
	Height   float64
	Mode     string
	Rotation float64
	Filter   layout.Filter
	Active   string
}

// FromResult converts a layout result and its links into a Document.
// Nodes keep layout order and links keep rank order.
func FromResult(r layout.Result, ls []links.Link, m Meta) Document {
	doc := Document{
		Width:    m.Width,
		Height:   m.Height,
		Kind:     string(r.Kind),
		Mode:     m.Mode,
		Rotation: m.Rotation,
		Filter:   m.Filter.String(),
		Active:   m.Active,
		Nodes:    make([]Node, len(r.Nodes)),
		Groups:   make([]Group, len(r.Groups)),
	}
	for i, n := range r.Nodes {
		nd := Node{
			ID:    n.ID,
			Label: n.DisplayLabel(),
			Year:  n.Year,
			Group: n.Group.String(),
			X:     n.X,
			Y:     n.Y,
		}
		if n.Center != nil {
			nd.Center = &Point{X: n.Center.X, Y: n.Center.Y}
		}
		doc.Nodes[i] = nd
	}
	for i, g := range r.Groups {
		doc.Groups[i] = Group{Key: g.Key.String(), X: g.Center.X, Y: g.Center.Y, Size: g.Size}
	}
	if len(ls) > 0 {
		doc.Links = make([]Link, len(ls))
		for i, l := range ls {
			doc.Links[i] = Link{From: l.From.ID, To: l.To.ID, Score: l.Score, Ratio: l.Ratio}
		}
	}
	return doc
}

// Node returns the node with the given id, or nil.
func (d *Document) Node(id string) *Node {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}
