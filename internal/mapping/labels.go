package mapping

import (
	"github.com/roach88/cypher2sql/internal/cypher"
	"github.com/roach88/cypher2sql/internal/schema"
)

// resolveLabels returns a copy of nodes with every missing label inferred
// from the incident edges: the previous edge's ToLabel and the next edge's
// FromLabel. edges[i] is the mapping of the edge between nodes i and i+1.
// Explicit labels are kept as written.
func resolveLabels(nodes []cypher.Node, edges []schema.EdgeMapping) ([]cypher.Node, error) {
	resolved := make([]cypher.Node, len(nodes))
	for i, n := range nodes {
		if n.Label != "" {
			resolved[i] = n
			continue
		}

		var label string
		var err error
		if i > 0 {
			label, err = mergeLabel(label, edges[i-1].ToLabel, i)
			if err != nil {
				return nil, err
			}
		}
		if i < len(edges) {
			label, err = mergeLabel(label, edges[i].FromLabel, i)
			if err != nil {
				return nil, err
			}
		}
		if label == "" {
			return nil, newError(ErrCodeUnresolvedLabel,
				"unable to infer label for anonymous node at index %d", i)
		}
		resolved[i] = cypher.Node{Variable: n.Variable, Label: label}
	}
	return resolved, nil
}

func mergeLabel(current, candidate string, index int) (string, error) {
	switch {
	case candidate == "":
		return current, nil
	case current == "":
		return candidate, nil
	case current != candidate:
		return "", newError(ErrCodeAmbiguousLabel,
			"unable to infer unique label for anonymous node at index %d", index)
	default:
		return current, nil
	}
}
