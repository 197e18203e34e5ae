package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cypher2sql/internal/schema"
)

func TestValidate_Valid(t *testing.T) {
	cmd := NewValidateCommand(textOpts())
	out, _, err := execute(t, cmd, moviesSchema)
	require.NoError(t, err)
	assert.Equal(t, "✓ Schema valid (2 nodes, 3 edges)\n", out)
}

func TestValidate_ValidJSON(t *testing.T) {
	cmd := NewValidateCommand(jsonOpts())
	out, _, err := execute(t, cmd, moviesSchema)
	require.NoError(t, err)

	resp, data := decodeResponse[ValidationResult](t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, data.Valid)
	assert.Equal(t, 2, data.Nodes)
	assert.Equal(t, 3, data.Edges)
	assert.Empty(t, data.Errors)
}

func TestValidate_Invalid(t *testing.T) {
	cmd := NewValidateCommand(textOpts())
	out, _, err := execute(t, cmd, "testdata/invalid.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "  E212 edges[ACTED_IN].toJoinKey:")
	assert.Contains(t, out, "  E213 ")
}

func TestValidate_InvalidJSON(t *testing.T) {
	cmd := NewValidateCommand(jsonOpts())
	out, _, err := execute(t, cmd, "testdata/invalid.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp, data := decodeResponse[ValidationResult](t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, schema.ErrEdgeKeyMissing, resp.Error.Code)
	assert.False(t, data.Valid)
	require.Len(t, data.Errors, 2)
	assert.Equal(t, schema.ErrEdgeKeyMissing, data.Errors[0].Code)
	assert.Equal(t, schema.ErrEdgeUnknownLabel, data.Errors[1].Code)
}

func TestValidate_NotFound(t *testing.T) {
	cmd := NewValidateCommand(jsonOpts())
	out, _, err := execute(t, cmd, "testdata/nope.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	resp, _ := decodeResponse[any](t, out)
	require.NotNil(t, resp.Error)
	assert.Equal(t, schema.ErrCodeNotFound, resp.Error.Code)
}

func TestValidate_UnsupportedFormat(t *testing.T) {
	cmd := NewValidateCommand(textOpts())
	out, _, err := execute(t, cmd, "testdata/seed.sql")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E021]")
}
