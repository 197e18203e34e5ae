package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ofKind(kind string) func(Tree) bool {
	return func(t Tree) bool { return t.Kind() == kind }
}

func nodeTexts(nodes []Tree) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Text())
	}
	return out
}

func TestParse_LinearPattern(t *testing.T) {
	tree, err := Parse("MATCH (p:Person)-[r:ACTED_IN]->(m:Movie) RETURN p, m.title AS title")
	require.NoError(t, err)

	assert.Equal(t, KindScript, tree.Kind())

	element := FindFirst(tree, ofKind(KindPatternElement))
	require.NotNil(t, element)
	assert.Equal(t, "(p:Person)-[r:ACTED_IN]->(m:Movie)", element.Text())

	nodes := FindAll(element, ofKind(KindNodePattern))
	assert.Equal(t, []string{"(p:Person)", "(m:Movie)"}, nodeTexts(nodes))

	rels := FindAll(element, ofKind(KindRelationshipPattern))
	assert.Equal(t, []string{"-[r:ACTED_IN]->"}, nodeTexts(rels))

	items := FindAll(tree, ofKind(KindReturnItem))
	assert.Equal(t, []string{"p", "m.titleAStitle"}, nodeTexts(items))
}

func TestParse_ReturnItemChildrenSeparateAlias(t *testing.T) {
	tree, err := Parse("MATCH (m) RETURN m.title AS title")
	require.NoError(t, err)

	item := FindFirst(tree, ofKind(KindReturnItem))
	require.NotNil(t, item)

	children := item.Children()
	require.Len(t, children, 3)
	assert.Equal(t, KindExpression, children[0].Kind())
	assert.Equal(t, "m.title", children[0].Text())
	assert.True(t, IsTerminal(children[1]))
	assert.Equal(t, "AS", children[1].Text())
	assert.Equal(t, "title", children[2].Text())
}

func TestParse_Directions(t *testing.T) {
	tests := []struct {
		query string
		rel   string
	}{
		{"MATCH (a)-[:T]->(b)", "-[:T]->"},
		{"MATCH (a)<-[:T]-(b)", "<-[:T]-"},
		{"MATCH (a)-[:T]-(b)", "-[:T]-"},
		{"MATCH (a)-->(b)", "-->"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			tree, err := Parse(tt.query)
			require.NoError(t, err)

			rel := FindFirst(tree, ofKind(KindRelationshipPattern))
			require.NotNil(t, rel)
			assert.Equal(t, tt.rel, rel.Text())
		})
	}
}

func TestParse_MultiHop(t *testing.T) {
	tree, err := Parse("MATCH (a:Person)-[:AUTHORED]->(m:Movie)<-[:ACTED_IN]-(b:Person) RETURN a, b")
	require.NoError(t, err)

	element := FindFirst(tree, ofKind(KindPatternElement))
	require.NotNil(t, element)
	assert.Len(t, FindAll(element, ofKind(KindNodePattern)), 3)
	assert.Len(t, FindAll(element, ofKind(KindRelationshipPattern)), 2)
}

func TestParse_NodeWithPropertiesAndWhere(t *testing.T) {
	tree, err := Parse("MATCH (p:Person {name: 'Ann', tags: ['a', 'b']}) WHERE p.age > 30 RETURN p")
	require.NoError(t, err)

	node := FindFirst(tree, ofKind(KindNodePattern))
	require.NotNil(t, node)
	assert.Equal(t, "(p:Person{name:'Ann',tags:['a','b']})", node.Text())

	where := FindFirst(tree, ofKind(KindWhereClause))
	require.NotNil(t, where)
	assert.Equal(t, "WHEREp.age>30", where.Text())
}

func TestParse_MultiplePatternsKeepOrder(t *testing.T) {
	tree, err := Parse("MATCH (a:Person), (b:Movie) RETURN a")
	require.NoError(t, err)

	elements := FindAll(tree, ofKind(KindPatternElement))
	require.Len(t, elements, 2)
	assert.Equal(t, "(a:Person)", elements[0].Text())
	assert.Equal(t, "(b:Movie)", elements[1].Text())
}

func TestParse_PathVariable(t *testing.T) {
	tree, err := Parse("MATCH path = (a)-[:T]->(b) RETURN a")
	require.NoError(t, err)

	part := FindFirst(tree, ofKind(KindPatternPart))
	require.NotNil(t, part)
	assert.Equal(t, "path=(a)-[:T]->(b)", part.Text())

	element := FindFirst(tree, ofKind(KindPatternElement))
	require.NotNil(t, element)
	assert.Equal(t, "(a)-[:T]->(b)", element.Text())
}

func TestParse_ReturnStar(t *testing.T) {
	tree, err := Parse("MATCH (n) RETURN *")
	require.NoError(t, err)

	assert.NotNil(t, FindFirst(tree, ofKind(KindReturnClause)))
	assert.Nil(t, FindFirst(tree, ofKind(KindReturnItem)))
}

func TestParse_ReturnTail(t *testing.T) {
	tree, err := Parse("MATCH (n) RETURN DISTINCT n.name ORDER BY n.name DESC SKIP 5 LIMIT 10")
	require.NoError(t, err)

	items := FindAll(tree, ofKind(KindReturnItem))
	assert.Equal(t, []string{"n.name"}, nodeTexts(items))

	order := FindFirst(tree, ofKind(KindOrderClause))
	require.NotNil(t, order)
	assert.Equal(t, "ORDERBYn.nameDESC", order.Text())

	skip := FindFirst(tree, ofKind(KindSkipClause))
	require.NotNil(t, skip)
	assert.Equal(t, "SKIP5", skip.Text())

	limit := FindFirst(tree, ofKind(KindLimitClause))
	require.NotNil(t, limit)
	assert.Equal(t, "LIMIT10", limit.Text())
}

func TestParse_KeywordAsPropertyName(t *testing.T) {
	tree, err := Parse("MATCH (n) RETURN n.limit")
	require.NoError(t, err)

	items := FindAll(tree, ofKind(KindReturnItem))
	assert.Equal(t, []string{"n.limit"}, nodeTexts(items))
}

func TestParse_FunctionCallIsOneItem(t *testing.T) {
	tree, err := Parse("MATCH (p) RETURN count(p), p")
	require.NoError(t, err)

	items := FindAll(tree, ofKind(KindReturnItem))
	assert.Equal(t, []string{"count(p)", "p"}, nodeTexts(items))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"empty", "   ", "empty query"},
		{"write clause", "CREATE (n:Person)", "CREATE clause is not supported in read-only mode"},
		{"with clause", "MATCH (n) WITH n RETURN n", "WITH clause is not supported"},
		{"unterminated node", "MATCH (n:Person", "unterminated"},
		{"unterminated relationship", "MATCH (a)-[r:T->(b)", `unterminated "["`},
		{"stray closer", "MATCH (a)-[r:T)]->(b)", "mismatched bracket"},
		{"missing node", "MATCH -[r]->(b)", "expected \"(\""},
		{"not a clause", "(n) RETURN n", "expected clause"},
		{"missing return item", "MATCH (n) RETURN", "expected expression"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.query)
			require.Error(t, err)

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Contains(t, se.Message, tt.message)
		})
	}
}

func TestWalk_SkipsSubtree(t *testing.T) {
	tree := NewNode("root",
		NewNode("skip", NewTerminal("hidden")),
		NewNode("keep", NewTerminal("shown")),
	)

	var seen []string
	Walk(tree, func(n Tree) bool {
		if IsTerminal(n) {
			seen = append(seen, n.Text())
		}
		return n.Kind() != "skip"
	})

	assert.Equal(t, []string{"shown"}, seen)
	assert.Equal(t, "hiddenshown", tree.Text())
}
