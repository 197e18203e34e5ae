package harness

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSuite(t *testing.T) {
	suite, err := LoadSuite("testdata/movies_suite.yaml")
	require.NoError(t, err)

	assert.Equal(t, "movies", suite.Name)
	assert.Equal(t, filepath.Join("testdata", "movies.yaml"), suite.Schema)
	assert.Equal(t, filepath.Join("testdata", "movies.sql"), suite.Seed)
	assert.Equal(t, "basic", suite.Dialect)
	require.Len(t, suite.Cases, 7)
	assert.Equal(t, "VARIABLE_LENGTH_UNSUPPORTED", suite.Cases[4].Error)
	assert.Equal(t, []any{"Ada"}, suite.Cases[0].Rows[0])
}

func TestLoadSuite_Errors(t *testing.T) {
	_, err := LoadSuite("testdata/missing.yaml")
	assert.ErrorContains(t, err, "failed to read suite file")

	_, err = LoadSuite("testdata/unknown_field.yaml")
	assert.ErrorContains(t, err, "failed to parse YAML")
	assert.ErrorContains(t, err, "querry")
}

func TestValidateSuite(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(schemaPath, []byte("nodes: []\n"), 0o644))

	ok := Case{Name: "a", Query: "MATCH (p:Person) RETURN p", SQL: "SELECT 1"}
	tests := []struct {
		name  string
		suite Suite
		want  string
	}{
		{"missing name", Suite{Schema: schemaPath, Cases: []Case{ok}}, "name is required"},
		{"missing schema", Suite{Name: "s", Cases: []Case{ok}}, "schema is required"},
		{"schema not found", Suite{Name: "s", Schema: filepath.Join(dir, "nope.yaml"), Cases: []Case{ok}}, "schema file not found"},
		{"no cases", Suite{Name: "s", Schema: schemaPath}, "cases list is required"},
		{"case without query", Suite{Name: "s", Schema: schemaPath, Cases: []Case{{Name: "a", SQL: "x"}}}, "cases[0]: query is required"},
		{"sql and error", Suite{Name: "s", Schema: schemaPath, Cases: []Case{{Name: "a", Query: "q", SQL: "x", Error: "E"}}}, "exactly one of sql or error"},
		{"neither sql nor error", Suite{Name: "s", Schema: schemaPath, Cases: []Case{{Name: "a", Query: "q"}}}, "exactly one of sql or error"},
		{"duplicate case", Suite{Name: "s", Schema: schemaPath, Cases: []Case{ok, ok}}, `cases[1]: duplicate name "a"`},
		{"rows without seed", Suite{Name: "s", Schema: schemaPath, Cases: []Case{{Name: "a", Query: "q", SQL: "x", Rows: [][]any{{1}}}}}, "rows require a seed script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSuite(&tt.suite)
			assert.ErrorContains(t, err, tt.want)
		})
	}

	valid := Suite{Name: "s", Schema: schemaPath, Cases: []Case{ok}}
	assert.NoError(t, validateSuite(&valid))
}

func TestRun_MoviesSuite(t *testing.T) {
	suite, err := LoadSuite("testdata/movies_suite.yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	report, err := Run(context.Background(), suite, WithLogger(logger), WithConcurrency(2))
	require.NoError(t, err)

	assert.True(t, report.Pass, "failed cases: %+v", report.Failed())
	assert.Empty(t, report.Failed())
	require.Len(t, report.Cases, len(suite.Cases))
	for i, c := range report.Cases {
		assert.Equal(t, suite.Cases[i].Name, c.Name, "results keep suite order")
	}
	assert.Equal(t, "AMBIGUOUS_LABEL", report.Cases[5].ErrorCode)
	assert.Contains(t, buf.String(), "suite finished")
}

func TestRun_ReportsFailures(t *testing.T) {
	suite, err := LoadSuite("testdata/failing_suite.yaml")
	require.NoError(t, err)

	report, err := Run(context.Background(), suite)
	require.NoError(t, err)

	assert.False(t, report.Pass)
	failed := report.Failed()
	require.Len(t, failed, 3)

	assert.Equal(t, "wrong sql", failed[0].Name)
	assert.Contains(t, failed[0].Errors[0], "sql mismatch")
	assert.Equal(t, `SELECT t0.* FROM "people" t0`, failed[0].SQL)

	assert.Equal(t, "wrong code", failed[1].Name)
	assert.Equal(t, "UNKNOWN_VARIABLE", failed[1].ErrorCode)
	assert.Contains(t, failed[1].Errors[0], `want "UNKNOWN_LABEL"`)

	assert.Equal(t, "expected error but translated", failed[2].Name)
	assert.Contains(t, failed[2].Errors[0], "expected error UNKNOWN_VARIABLE")

	assert.True(t, report.Cases[3].Pass)
}

func TestRun_RowMismatch(t *testing.T) {
	suite, err := LoadSuite("testdata/movies_suite.yaml")
	require.NoError(t, err)
	suite.Cases = suite.Cases[:1]
	suite.Cases[0].Rows = [][]any{{"Ada"}}

	report, err := Run(context.Background(), suite)
	require.NoError(t, err)

	assert.False(t, report.Pass)
	require.Len(t, report.Cases[0].Errors, 1)
	assert.Contains(t, report.Cases[0].Errors[0], "rows = [Ada Grace Linus], want [Ada]")
}

func TestRun_SetupErrors(t *testing.T) {
	suite, err := LoadSuite("testdata/movies_suite.yaml")
	require.NoError(t, err)

	bad := *suite
	bad.Dialect = "oracle"
	_, err = Run(context.Background(), &bad)
	assert.ErrorContains(t, err, "unknown dialect")

	bad = *suite
	bad.Schema = "testdata/missing_schema.yaml"
	_, err = Run(context.Background(), &bad)
	assert.ErrorContains(t, err, "load schema")
}

func TestRun_CanceledContext(t *testing.T) {
	suite, err := LoadSuite("testdata/failing_suite.yaml")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Run(ctx, suite)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRowKeys_OrderInsensitive(t *testing.T) {
	a := rowKeys([][]any{{int64(1), "x"}, {int64(2), nil}})
	b := rowKeys([][]any{{2, nil}, {1, "x"}})
	assert.Equal(t, a, b)
}

func TestRunWithGolden(t *testing.T) {
	suite, err := LoadSuite("testdata/movies_suite.yaml")
	require.NoError(t, err)

	report, err := RunWithGolden(t, suite)
	require.NoError(t, err)
	assert.True(t, report.Pass)
}
