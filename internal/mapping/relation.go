package mapping

import (
	"github.com/roach88/cypher2sql/internal/querysql"
	"github.com/roach88/cypher2sql/internal/schema"
)

// endpoint is one side of an edge: the resolved node label, its table
// mapping and its alias.
type endpoint struct {
	label   string
	mapping schema.NodeMapping
	alias   string
}

// relation realizes one edge as joins on the statement.
//
// This is a sealed interface - only the three kinds below implement it, and
// relationFor is the single place that chooses between them.
//
// Relation kinds:
//   - joinTableRelation: two joins through an association table
//   - selfRelation: the left node's table joined to itself
//   - oneToManyRelation: the child's foreign key to the parent's primary key
//
// apply appends the edge's joins and returns its edgeProjection. It reads
// only its own edge; the alias state is the one piece of shared input.
type relation interface {
	apply(q *querysql.SelectQuery, aliases *aliasState) (edgeProjection, error)
	relationNode() // Marker method - seals interface to this package
}

type joinTableRelation struct {
	edge        schema.EdgeMapping
	left, right endpoint
}

type selfRelation struct {
	edge        schema.EdgeMapping
	left, right endpoint
}

type oneToManyRelation struct {
	edge        schema.EdgeMapping
	left, right endpoint
}

func (joinTableRelation) relationNode() {}
func (selfRelation) relationNode()      {}
func (oneToManyRelation) relationNode() {}

// relationFor dispatches on the edge mapping's kind.
func relationFor(edge schema.EdgeMapping, left, right endpoint) (relation, error) {
	switch edge.Kind {
	case schema.JoinTable:
		return joinTableRelation{edge: edge, left: left, right: right}, nil
	case schema.SelfReferential:
		return selfRelation{edge: edge, left: left, right: right}, nil
	case schema.OneToMany:
		return oneToManyRelation{edge: edge, left: left, right: right}, nil
	default:
		return nil, newError(ErrCodeUnknownRelationKind, "unknown relation kind: %s", edge.Kind)
	}
}

// apply joins the association table under a fresh alias, then the right
// node's table:
//
//	INNER JOIN <joinTable> jN ON left.pk = jN.fromJoinKey
//	INNER JOIN <right> right ON jN.toJoinKey = right.pk
func (r joinTableRelation) apply(q *querysql.SelectQuery, aliases *aliasState) (edgeProjection, error) {
	join := aliases.joinAlias()
	q.AddJoin(querysql.Inner(r.edge.JoinTable, join,
		column(r.left.alias, r.left.mapping.PrimaryKey)+" = "+column(join, r.edge.FromJoinKey)))
	q.AddJoin(querysql.Inner(r.right.mapping.Table, r.right.alias,
		column(join, r.edge.ToJoinKey)+" = "+column(r.right.alias, r.right.mapping.PrimaryKey)))
	return edgeProjection{join + ".*"}, nil
}

// apply joins the left node's table again under the right alias:
//
//	INNER JOIN <left table> right ON left.fromKey = right.toKey
func (r selfRelation) apply(q *querysql.SelectQuery, _ *aliasState) (edgeProjection, error) {
	from := column(r.left.alias, r.edge.FromKey)
	to := column(r.right.alias, r.edge.ToKey)
	q.AddJoin(querysql.Inner(r.left.mapping.Table, r.right.alias, from+" = "+to))
	return edgeProjection{from, to}, nil
}

// apply joins the right node's table with the child's foreign key pointing
// at the parent's primary key. Which side is the parent is decided by the
// node labels, not by arrow direction.
func (r oneToManyRelation) apply(q *querysql.SelectQuery, _ *aliasState) (edgeProjection, error) {
	parent, child := r.edge.ParentLabel(), r.edge.ChildLabel()

	var parentSide, childSide endpoint
	switch {
	case r.left.label == parent && r.right.label == child:
		parentSide, childSide = r.left, r.right
	case r.right.label == parent && r.left.label == child:
		parentSide, childSide = r.right, r.left
	default:
		return nil, newError(ErrCodeLabelMismatch, "edge mapping labels do not match nodes: %s", r.edge.Type)
	}

	fk := column(childSide.alias, r.edge.ChildForeignKey)
	pk := column(parentSide.alias, r.edge.ParentPrimaryKey)
	q.AddJoin(querysql.Inner(r.right.mapping.Table, r.right.alias, fk+" = "+pk))
	return edgeProjection{fk, pk}, nil
}

func column(alias, name string) string {
	return alias + "." + name
}
