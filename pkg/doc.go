// Package pkg provides the libraries behind Constellation, a star-map view
// of a music school roster.
//
// # Overview
//
// Each student becomes a point on a ring, or on one small ring per school
// year arranged around a larger ring. Selecting a student draws links to
// the classmates who share the most instruments, genres, artists, roles and
// hobbies with them, weighted by a scoring mode.
//
// # Architecture
//
// The typical data flow:
//
//	roster.json / roster.yaml
//	         ↓
//	    [io] package (decode into raw records)
//	         ↓
//	    [roster] package (normalize into entities)
//	         ↓
//	    [layout] package (ring, clusters, constellation)
//	         ↓
//	    [links] package (rank links with [similarity] scores)
//	         ↓
//	    [graph] package (JSON or YAML layout document)
//
// [pipeline] chains these stages for the CLI and the explorer, with
// defaults and validation in one place and an optional [cache] in front of
// the encoded document.
//
// # Quick Start
//
//	raw, _ := io.ImportFile("class.json")
//	students := roster.Normalize(raw)
//
//	res := layout.Clusters(students, 800, 600, 0, layout.All())
//	active := roster.Find(students, "s1")
//	ranked := links.Select(active, res.Nodes, similarity.ModeBand, 5)
//
//	doc := graph.FromResult(res, ranked, graph.Meta{Width: 800, Height: 600, Mode: "band"})
//	_ = graph.WriteDocumentFile(doc, "class.layout.json")
//
// # Main Packages
//
// [roster] - Entity type and the normalizer. Normalization is total: any
// input yields a roster, never an error.
//
// [similarity] - Scoring modes, weight tables and the weighted-overlap score.
//
// [layout] - Geometry. Ring and ring-of-rings placement, group filters,
// deterministic jitter.
//
// [links] - Ranked link selection and roster-wide matches.
//
// [graph] - The serialized layout document.
//
// [pipeline] - Load → layout → select, with caching and observability hooks.
//
// [config] - The TOML config file.
//
// [errors] - Coded errors for the edges (files, flags, config).
//
// # Testing
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/layout/...      # Specific package
//	go test -run Example ./pkg/...
//
// [roster]: https://pkg.go.dev/github.com/matzehuels/constellation/pkg/roster
// [similarity]: https://pkg.go.dev/github.com/matzehuels/constellation/pkg/similarity
// [layout]: https://pkg.go.dev/github.com/matzehuels/constellation/pkg/layout
// [links]: https://pkg.go.dev/github.com/matzehuels/constellation/pkg/links
// [graph]: https://pkg.go.dev/github.com/matzehuels/constellation/pkg/graph
// [io]: https://pkg.go.dev/github.com/matzehuels/constellation/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/constellation/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/constellation/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/constellation/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/constellation/pkg/errors
package pkg
