// Package cypher holds the graph-pattern model of a read query and the
// extractor that builds it from a syntax tree.
//
// A Query carries at most one Pattern: a linear chain of nodes joined by
// edges. Node and edge segments are interpreted from their raw text, so the
// extractor works with any parser whose tree satisfies syntax.Tree.
//
// Multi-label, multi-type and variable-length syntax is tolerated and
// truncated rather than rejected here:
//
//	(p:Person:Admin)      -> label "Person"
//	[r:ACTED_IN|DIRECTED] -> type "ACTED_IN"
//
// Rejecting unsupported shapes is the translator's job.
package cypher
