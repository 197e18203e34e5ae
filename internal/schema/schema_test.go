package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movieRegistry() *Registry {
	return NewRegistry().
		AddNode(NewNodeMapping("Person", "people", "id")).
		AddNode(NewNodeMapping("Movie", "movies", "id")).
		AddEdge(ForJoinTable("ACTED_IN", "Person", "Movie", "people_movies", "person_id", "movie_id")).
		AddEdge(ForSelfReferential("MANAGES", "Person", "manager_id", "id")).
		AddEdge(ForOneToMany("AUTHORED", "Person", "Movie", "id", "author_id"))
}

func TestRegistry_Lookup(t *testing.T) {
	r := movieRegistry()

	person, err := r.NodeForLabel("Person")
	require.NoError(t, err)
	assert.Equal(t, NodeMapping{Label: "Person", Table: "people", PrimaryKey: "id"}, person)

	authored, err := r.EdgeForType("AUTHORED")
	require.NoError(t, err)
	assert.Equal(t, OneToMany, authored.Kind)
	assert.Equal(t, "Person", authored.ParentLabel())
	assert.Equal(t, "Movie", authored.ChildLabel())

	manages, err := r.EdgeForType("MANAGES")
	require.NoError(t, err)
	assert.Equal(t, "Person", manages.FromLabel)
	assert.Equal(t, "Person", manages.ToLabel)
}

func TestRegistry_UnknownNames(t *testing.T) {
	r := movieRegistry()

	_, err := r.NodeForLabel("Studio")
	require.Error(t, err)
	assert.True(t, IsLookupError(err, ErrCodeUnknownLabel))
	assert.Equal(t, "UNKNOWN_LABEL: unknown node label: Studio", err.Error())

	_, err = r.EdgeForType("DIRECTED")
	require.Error(t, err)
	assert.True(t, IsLookupError(err, ErrCodeUnknownType))
	assert.Equal(t, "UNKNOWN_TYPE: unknown edge type: DIRECTED", err.Error())
}

func TestRegistry_NFCKeys(t *testing.T) {
	r := NewRegistry().AddNode(NewNodeMapping("Cafe\u0301", "cafes", "id"))

	m, err := r.NodeForLabel("Caf\u00e9")
	require.NoError(t, err)
	assert.Equal(t, "cafes", m.Table)
}

func TestRegistry_OrderAndReplace(t *testing.T) {
	r := NewRegistry().
		AddNode(NewNodeMapping("B", "bs", "id")).
		AddNode(NewNodeMapping("A", "as", "id")).
		AddNode(NewNodeMapping("B", "bees", "id"))

	nodes := r.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "bees", nodes[0].Table)
	assert.Equal(t, "A", nodes[1].Label)
}

func TestParseRelationKind(t *testing.T) {
	for _, in := range []string{"JOIN_TABLE", "join_table", "join-table", " Join_Table "} {
		kind, err := ParseRelationKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, JoinTable, kind)
	}

	_, err := ParseRelationKind("MANY_TO_MANY")
	assert.Error(t, err)
}

func TestDefaultTable(t *testing.T) {
	assert.Equal(t, "people", DefaultTable("Person"))
	assert.Equal(t, "movies", DefaultTable("Movie"))
}

func TestValidate_Valid(t *testing.T) {
	assert.Empty(t, Validate(movieRegistry()))
}

func TestValidate_Problems(t *testing.T) {
	r := NewRegistry().
		AddNode(NodeMapping{Label: "Person"}).
		AddEdge(EdgeMapping{Type: "ACTED_IN", Kind: JoinTable, FromLabel: "Person", ToLabel: "Movie"}).
		AddEdge(EdgeMapping{Type: "MANAGES", Kind: SelfReferential, FromLabel: "Person", ToLabel: "Robot", FromKey: "a", ToKey: "b"}).
		AddEdge(EdgeMapping{Type: "ODD", Kind: "MANY_TO_MANY"})

	codes := map[string]int{}
	for _, e := range Validate(r) {
		codes[e.Code]++
	}

	assert.Equal(t, 1, codes[ErrNodeTableEmpty])
	assert.Equal(t, 1, codes[ErrNodePrimaryKeyEmpty])
	assert.Equal(t, 3, codes[ErrEdgeKeyMissing])   // joinTable, fromJoinKey, toJoinKey
	assert.Equal(t, 2, codes[ErrEdgeUnknownLabel]) // Movie, Robot
	assert.Equal(t, 1, codes[ErrEdgeLabelMismatch])
	assert.Equal(t, 1, codes[ErrEdgeKindInvalid])
}

func assertMovieSchema(t *testing.T, r *Registry) {
	t.Helper()

	person, err := r.NodeForLabel("Person")
	require.NoError(t, err)
	assert.Equal(t, "people", person.Table)

	acted, err := r.EdgeForType("ACTED_IN")
	require.NoError(t, err)
	assert.Equal(t, ForJoinTable("ACTED_IN", "Person", "Movie", "people_movies", "person_id", "movie_id"), acted)
}

func TestLoadFile_YAML(t *testing.T) {
	r, err := LoadFile("testdata/movies.yaml")
	require.NoError(t, err)
	assertMovieSchema(t, r)

	manages, err := r.EdgeForType("MANAGES")
	require.NoError(t, err)
	assert.Equal(t, ForSelfReferential("MANAGES", "Person", "manager_id", "id"), manages)

	authored, err := r.EdgeForType("AUTHORED")
	require.NoError(t, err)
	assert.Equal(t, ForOneToMany("AUTHORED", "Person", "Movie", "id", "author_id"), authored)
}

func TestLoadFile_JSON(t *testing.T) {
	r, err := LoadFile("testdata/movies.json")
	require.NoError(t, err)
	assertMovieSchema(t, r)
}

func TestLoadFile_CUE(t *testing.T) {
	r, err := LoadFile("testdata/movies.cue")
	require.NoError(t, err)
	assertMovieSchema(t, r)

	movie, err := r.NodeForLabel("Movie")
	require.NoError(t, err)
	assert.Equal(t, NodeMapping{Label: "Movie", Table: "movies", PrimaryKey: "id"}, movie)

	assert.Len(t, r.Edges(), 3)
}

func TestLoadFile_Defaults(t *testing.T) {
	r, err := LoadFile("testdata/defaults.yaml")
	require.NoError(t, err)

	person, err := r.NodeForLabel("Person")
	require.NoError(t, err)
	assert.Equal(t, NodeMapping{Label: "Person", Table: "people", PrimaryKey: "id"}, person)

	movie, err := r.NodeForLabel("Movie")
	require.NoError(t, err)
	assert.Equal(t, NodeMapping{Label: "Movie", Table: "movies", PrimaryKey: "movie_id"}, movie)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing file", "testdata/nope.yaml", ErrCodeNotFound},
		{"unknown yaml field", "testdata/unknown_field.yaml", ErrCodeDecode},
		{"duplicate label", "testdata/duplicate.yaml", ErrCodeDuplicate},
		{"unknown cue field", "testdata/unknown_field.cue", ErrCodeCUE},
		{"missing cue key", "testdata/missing_key.cue", ErrCodeCUE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path)
			require.Error(t, err)

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.code, le.Code)
		})
	}
}

func TestReadFile_UnsupportedFormat(t *testing.T) {
	_, err := ReadFile("naming.go")
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeFormat, le.Code)
}

func TestLoadFile_CUEErrorHasPosition(t *testing.T) {
	_, err := LoadFile("testdata/unknown_field.cue")
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.True(t, le.Pos.IsValid())
	assert.Contains(t, le.Message, "tabel")
}

func TestLoadFile_ValidationErrors(t *testing.T) {
	_, err := LoadFile("testdata/invalid.yaml")
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, ErrEdgeKeyMissing, verrs[0].Code)
	assert.Equal(t, "edges[ACTED_IN].toJoinKey", verrs[0].Field)
	assert.Equal(t, ErrEdgeUnknownLabel, verrs[1].Code)
	assert.Contains(t, err.Error(), "E025")
}

func TestReadFile_SkipsValidation(t *testing.T) {
	r, err := ReadFile("testdata/invalid.yaml")
	require.NoError(t, err)
	assert.Len(t, Validate(r), 2)
}
