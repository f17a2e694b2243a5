// Package layout assigns 2D positions to students for a node-link view.
//
// # Layouts
//
// Three kinds are supported:
//
//   - [KindRing]: every student on one circle centered in the viewport,
//     ordered by year (students without a year last) and then by name.
//   - [KindClusters]: a ring of rings. Each year is a group whose center sits
//     on an outer ring; the group's members sit on a smaller inner ring
//     around that center.
//   - [KindConstellation]: clusters with a small deterministic jitter per
//     student, seeded from the student's ID.
//
// # Geometry
//
// Item i of n on a ring of radius r around (cx, cy) sits at
//
//	θ = StartAngle + (i/n)·2π + rotation
//	(cx + r·cos θ, cy + r·sin θ)
//
// where [StartAngle] points up. In clustered layouts the outer ring turns by
// the full rotation and inner rings by a fraction of it (see [WithInnerSpin]).
// Every position is clamped to the viewport minus the margin.
//
// # Filtering
//
// A [Filter] hides every group but one. Visible groups keep the positions
// they have in the unfiltered layout unless [WithCentered] is set, in which
// case a single visible group is moved to the viewport center.
//
// Layouts are pure functions of their inputs and safe for concurrent use.
package layout
