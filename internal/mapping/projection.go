package mapping

import (
	"github.com/roach88/cypher2sql/internal/cypher"
	"github.com/roach88/cypher2sql/internal/querysql"
)

// edgeProjection is the columns that stand for an edge's own row when its
// variable is returned: [jN.*] for a join table, or the key pair for
// self-referential and one-to-many edges.
type edgeProjection []string

// projection turns RETURN items into select columns.
type projection struct {
	nodeAliases map[string]string
	edges       map[string]edgeProjection
	rootAlias   string
}

func newProjection(nodes []cypher.Node) *projection {
	p := &projection{
		nodeAliases: make(map[string]string, len(nodes)),
		edges:       make(map[string]edgeProjection),
		rootAlias:   nodeAlias(0),
	}
	for i, n := range nodes {
		if n.Variable == "" {
			continue
		}
		// first occurrence wins when a variable repeats
		if _, ok := p.nodeAliases[n.Variable]; !ok {
			p.nodeAliases[n.Variable] = nodeAlias(i)
		}
	}
	return p
}

func (p *projection) addEdge(variable string, ep edgeProjection) {
	if variable == "" {
		return
	}
	if _, ok := p.edges[variable]; !ok {
		p.edges[variable] = ep
	}
}

// apply adds columns in RETURN order. With no items the root node's
// wildcard is selected. Node variables shadow edge variables.
func (p *projection) apply(q *querysql.SelectQuery, items []cypher.ReturnItem) error {
	if len(items) == 0 {
		q.AddColumn(p.rootAlias + ".*")
		return nil
	}
	for _, item := range items {
		if alias, ok := p.nodeAliases[item.Variable]; ok {
			if item.Property == "" {
				q.AddColumn(alias + ".*")
			} else {
				q.AddColumn(column(alias, item.Property))
			}
			continue
		}

		if ep, ok := p.edges[item.Variable]; ok {
			if item.Property != "" {
				return newError(ErrCodeEdgeProperty,
					"RETURN edge properties are not supported yet: %s", item)
			}
			for _, c := range ep {
				q.AddColumn(c)
			}
			continue
		}

		return newError(ErrCodeUnknownVariable, "RETURN references unknown variable: %s", item.Variable)
	}
	return nil
}
