package schema

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// LookupErrorCode categorizes registry lookup failures.
type LookupErrorCode string

const (
	// ErrCodeUnknownLabel indicates no NodeMapping for a label.
	ErrCodeUnknownLabel LookupErrorCode = "UNKNOWN_LABEL"

	// ErrCodeUnknownType indicates no EdgeMapping for an edge type.
	ErrCodeUnknownType LookupErrorCode = "UNKNOWN_TYPE"
)

// LookupError is returned when a label or edge type is not registered.
type LookupError struct {
	Code LookupErrorCode
	Name string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	switch e.Code {
	case ErrCodeUnknownLabel:
		return fmt.Sprintf("%s: unknown node label: %s", e.Code, e.Name)
	case ErrCodeUnknownType:
		return fmt.Sprintf("%s: unknown edge type: %s", e.Code, e.Name)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Name)
	}
}

// IsLookupError reports whether err is a LookupError with the given code.
func IsLookupError(err error, code LookupErrorCode) bool {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Code == code
	}
	return false
}

// Registry is the schema: node mappings by label and edge mappings by type.
//
// A Registry is built once and then only read. Lookups are safe for
// concurrent use once building is done. Keys are compared in NFC so a label
// typed with combining characters finds the precomposed mapping.
type Registry struct {
	nodes     map[string]NodeMapping
	edges     map[string]EdgeMapping
	nodeOrder []string
	edgeOrder []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes: make(map[string]NodeMapping),
		edges: make(map[string]EdgeMapping),
	}
}

// AddNode registers m, replacing any mapping with the same label.
func (r *Registry) AddNode(m NodeMapping) *Registry {
	key := norm.NFC.String(m.Label)
	if _, ok := r.nodes[key]; !ok {
		r.nodeOrder = append(r.nodeOrder, key)
	}
	r.nodes[key] = m
	return r
}

// AddEdge registers m, replacing any mapping with the same type.
func (r *Registry) AddEdge(m EdgeMapping) *Registry {
	key := norm.NFC.String(m.Type)
	if _, ok := r.edges[key]; !ok {
		r.edgeOrder = append(r.edgeOrder, key)
	}
	r.edges[key] = m
	return r
}

// NodeForLabel returns the mapping for label.
func (r *Registry) NodeForLabel(label string) (NodeMapping, error) {
	m, ok := r.nodes[norm.NFC.String(label)]
	if !ok {
		return NodeMapping{}, &LookupError{Code: ErrCodeUnknownLabel, Name: label}
	}
	return m, nil
}

// EdgeForType returns the mapping for edge type typ.
func (r *Registry) EdgeForType(typ string) (EdgeMapping, error) {
	m, ok := r.edges[norm.NFC.String(typ)]
	if !ok {
		return EdgeMapping{}, &LookupError{Code: ErrCodeUnknownType, Name: typ}
	}
	return m, nil
}

// Nodes returns the node mappings in registration order.
func (r *Registry) Nodes() []NodeMapping {
	out := make([]NodeMapping, 0, len(r.nodeOrder))
	for _, k := range r.nodeOrder {
		out = append(out, r.nodes[k])
	}
	return out
}

// Edges returns the edge mappings in registration order.
func (r *Registry) Edges() []EdgeMapping {
	out := make([]EdgeMapping, 0, len(r.edgeOrder))
	for _, k := range r.edgeOrder {
		out = append(out, r.edges[k])
	}
	return out
}
