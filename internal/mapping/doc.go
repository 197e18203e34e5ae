// Package mapping translates parsed Cypher queries into relational SELECT
// statements using a schema registry.
//
// Translation runs in a fixed order:
//
//	capability gate -> label resolution -> alias allocation
//	  -> relation resolution (one pass over edges) -> projection
//
// Node i of the pattern is aliased t{i}. Join-table aliases are j{n},
// j{n+1}, ... where n is the node count. Only the first pattern of a query
// is translated, and WHERE clauses are not translated.
package mapping
