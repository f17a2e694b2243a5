// Package links picks the strongest similarity links for a selected student.
//
// [Select] scores every other positioned student against the active one,
// drops non-positive scores, sorts by score descending (ties broken by name
// and then ID), keeps the first topN and normalizes each score against the
// strongest kept link:
//
//	links := links.Select(&active, result.Nodes, similarity.ModeBand, 5)
//	links[0].Ratio // 1.0
//
// topN is always clamped to the selector's [Limits]; [Desktop] is used by
// the package-level functions.
package links
