// Package graph provides the serialization format for computed layouts.
//
// This package defines the wire format handed to renderers: positioned
// students, their groups and, when a student is selected, the ranked links
// from that student. It sits at the boundary between the core packages and
// external formats:
//
//   - [Document], [Node], [Group], [Link]: serialization types (this package)
//   - pkg/layout.Result: internal positions
//   - pkg/links.Link: internal ranked links
//
// Use [FromResult] to build a Document from core values.
//
// # Format
//
//	{
//	  "width": 800, "height": 600, "kind": "clusters", "mode": "band",
//	  "rotation": 0, "filter": "all", "active": "s1",
//	  "nodes":  [{"id": "s1", "label": "Ada", "year": 7, "group": "7", "x": 400, "y": 112}],
//	  "groups": [{"key": "7", "x": 400, "y": 196, "size": 3}],
//	  "links":  [{"from": "s1", "to": "s4", "score": 9, "ratio": 1}]
//	}
//
// Documents encode as pretty JSON or as YAML:
//
//	graph.WriteDocumentFile(doc, "layout.yaml") // format from extension
//	doc, _ := graph.ReadDocumentFile("layout.json")
//
// Reading validates the document: node IDs must be unique, links must
// reference known nodes and ratios must lie in [0, 1].
package graph
