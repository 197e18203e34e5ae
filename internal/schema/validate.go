package schema

import (
	"fmt"
	"strings"
)

// Validation error codes (E200-E299)
const (
	// Node mapping errors (E201-E209)
	ErrNodeLabelEmpty      = "E201" // label is required
	ErrNodeTableEmpty      = "E202" // table is required
	ErrNodePrimaryKeyEmpty = "E203" // primary key is required

	// Edge mapping errors (E210-E219)
	ErrEdgeTypeEmpty     = "E210" // type is required
	ErrEdgeKindInvalid   = "E211" // unknown relation kind
	ErrEdgeKeyMissing    = "E212" // kind-specific key is missing
	ErrEdgeUnknownLabel  = "E213" // endpoint label has no node mapping
	ErrEdgeLabelMismatch = "E214" // self-referential endpoints differ
)

// ValidationError is one problem found in a schema.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks every mapping in r and returns all problems found
// (does not fail fast). A nil result means the schema is usable.
func Validate(r *Registry) []ValidationError {
	var errs []ValidationError
	for _, n := range r.Nodes() {
		errs = append(errs, validateNode(n)...)
	}
	for _, e := range r.Edges() {
		errs = append(errs, validateEdge(r, e)...)
	}
	return errs
}

func validateNode(n NodeMapping) []ValidationError {
	var errs []ValidationError
	field := fmt.Sprintf("nodes[%s]", n.Label)
	if strings.TrimSpace(n.Label) == "" {
		errs = append(errs, ValidationError{Field: "nodes", Message: "label is required", Code: ErrNodeLabelEmpty})
	}
	if strings.TrimSpace(n.Table) == "" {
		errs = append(errs, ValidationError{Field: field + ".table", Message: "table is required", Code: ErrNodeTableEmpty})
	}
	if strings.TrimSpace(n.PrimaryKey) == "" {
		errs = append(errs, ValidationError{Field: field + ".primaryKey", Message: "primary key is required", Code: ErrNodePrimaryKeyEmpty})
	}
	return errs
}

func validateEdge(r *Registry, e EdgeMapping) []ValidationError {
	var errs []ValidationError
	field := fmt.Sprintf("edges[%s]", e.Type)
	if strings.TrimSpace(e.Type) == "" {
		errs = append(errs, ValidationError{Field: "edges", Message: "type is required", Code: ErrEdgeTypeEmpty})
	}

	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, ValidationError{
				Field:   field + "." + name,
				Message: fmt.Sprintf("%s is required for %s edges", name, e.Kind),
				Code:    ErrEdgeKeyMissing,
			})
		}
	}

	switch e.Kind {
	case JoinTable:
		require("joinTable", e.JoinTable)
		require("fromJoinKey", e.FromJoinKey)
		require("toJoinKey", e.ToJoinKey)
	case SelfReferential:
		require("fromKey", e.FromKey)
		require("toKey", e.ToKey)
		if e.FromLabel != e.ToLabel {
			errs = append(errs, ValidationError{
				Field:   field + ".label",
				Message: fmt.Sprintf("self-referential edge joins %s to %s", e.FromLabel, e.ToLabel),
				Code:    ErrEdgeLabelMismatch,
			})
		}
	case OneToMany:
		require("parentPrimaryKey", e.ParentPrimaryKey)
		require("childForeignKey", e.ChildForeignKey)
	default:
		errs = append(errs, ValidationError{
			Field:   field + ".kind",
			Message: fmt.Sprintf("unknown relation kind %q", e.Kind),
			Code:    ErrEdgeKindInvalid,
		})
		return errs
	}

	for _, end := range []struct{ name, label string }{{"fromLabel", e.FromLabel}, {"toLabel", e.ToLabel}} {
		if strings.TrimSpace(end.label) == "" {
			require(end.name, end.label)
			continue
		}
		if _, err := r.NodeForLabel(end.label); err != nil {
			errs = append(errs, ValidationError{
				Field:   field + "." + end.name,
				Message: fmt.Sprintf("label %s has no node mapping", end.label),
				Code:    ErrEdgeUnknownLabel,
			})
		}
	}
	return errs
}
