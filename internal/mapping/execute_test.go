package mapping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cypher2sql/internal/store"
)

// Translated SQL runs on sqlite and returns the rows the pattern describes.
func TestTranslate_ExecutesOnSQLite(t *testing.T) {
	s, err := store.Open(store.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()
	require.NoError(t, s.ExecScript(ctx, store.MoviesScript()))

	tests := []struct {
		name  string
		query string
		want  [][]any
	}{
		{
			name:  "join table",
			query: "MATCH (p:Person)-[:ACTED_IN]->(m:Movie) RETURN p.name, m.title",
			want:  [][]any{{"Grace", "Compilers"}, {"Linus", "Compilers"}, {"Linus", "Kernels"}},
		},
		{
			name:  "self referential",
			query: "MATCH (e:Person)-[:MANAGES]->(b:Person) RETURN e.name, b.name",
			want:  [][]any{{"Grace", "Ada"}, {"Linus", "Ada"}},
		},
		{
			name:  "one to many",
			query: "MATCH (p:Person)-[:AUTHORED]->(m:Movie) RETURN p.name, m.title",
			want:  [][]any{{"Ada", "Compilers"}, {"Linus", "Kernels"}},
		},
		{
			name:  "one to many edge variable",
			query: "MATCH ()-[r:AUTHORED]->() RETURN r",
			want:  [][]any{{int64(1), int64(1)}, {int64(3), int64(3)}},
		},
		{
			name:  "two hops",
			query: "MATCH (b:Person)-[:MANAGES]->(e:Person)-[:AUTHORED]->(m:Movie) RETURN b.name, m.title",
			want:  [][]any{{"Linus", "Compilers"}, {"Grace", "Compilers"}},
		},
	}

	tr := New(moviesSchema())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := tr.Translate(tt.query, s.Dialect())
			require.NoError(t, err)

			rs, err := s.Query(ctx, sql)
			require.NoError(t, err, sql)
			assert.ElementsMatch(t, tt.want, rs.Rows)
		})
	}
}
