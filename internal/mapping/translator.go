package mapping

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/cypher2sql/internal/cypher"
	"github.com/roach88/cypher2sql/internal/querysql"
	"github.com/roach88/cypher2sql/internal/schema"
)

// Schema is the registry the translator reads. *schema.Registry implements
// it; lookups fail with *schema.LookupError.
type Schema interface {
	NodeForLabel(label string) (schema.NodeMapping, error)
	EdgeForType(typ string) (schema.EdgeMapping, error)
}

// Translator maps parsed Cypher queries to SQL statements.
//
// A Translator holds only the schema and a logger. Per-call state (the
// alias counter) lives in ToSQL, so one Translator may serve concurrent
// calls.
type Translator struct {
	schema Schema
	logger *slog.Logger
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithLogger sets the logger for translation diagnostics.
// Default: a logger that discards everything.
func WithLogger(logger *slog.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = logger
	}
}

// New creates a Translator over s.
func New(s Schema, opts ...TranslatorOption) *Translator {
	t := &Translator{
		schema: s,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ToSQL translates q into a SelectQuery.
//
// Steps, in order:
//  1. Capability gate on the raw text
//  2. First pattern only; it must be a non-empty linear chain
//  3. Edge mapping lookup per edge, then label inference for anonymous nodes
//  4. Node i aliased t{i}; join-table aliases counted from the node count
//  5. One left-to-right pass over edges building joins and edge projections
//  6. RETURN items to select columns
func (t *Translator) ToSQL(q *cypher.Query) (*querysql.SelectQuery, error) {
	if err := checkCapabilities(q.Raw); err != nil {
		return nil, err
	}
	if len(q.Patterns) == 0 {
		return nil, newError(ErrCodeMissingPattern, "no patterns parsed from Cypher query")
	}

	pattern := q.Patterns[0]
	if len(pattern.Nodes) == 0 {
		return nil, newError(ErrCodeEmptyPattern, "Cypher pattern contains no nodes")
	}
	if !pattern.IsLinear() {
		return nil, newError(ErrCodeMalformedPattern,
			"pattern has %d nodes and %d edges; edge i must connect node i and node i+1",
			len(pattern.Nodes), len(pattern.Edges))
	}

	edgeMappings := make([]schema.EdgeMapping, len(pattern.Edges))
	for i, e := range pattern.Edges {
		m, err := t.schema.EdgeForType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		edgeMappings[i] = m
	}

	nodes, err := resolveLabels(pattern.Nodes, edgeMappings)
	if err != nil {
		return nil, err
	}

	endpoints := make([]endpoint, len(nodes))
	for i, n := range nodes {
		m, err := t.schema.NodeForLabel(n.Label)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		endpoints[i] = endpoint{label: n.Label, mapping: m, alias: nodeAlias(i)}
	}

	aliases := newAliasState(len(nodes))
	root := endpoints[0]
	stmt := querysql.SelectFrom(root.mapping.Table, root.alias)
	proj := newProjection(nodes)

	for i, e := range pattern.Edges {
		rel, err := relationFor(edgeMappings[i], endpoints[i], endpoints[i+1])
		if err != nil {
			return nil, err
		}
		ep, err := rel.apply(stmt, aliases)
		if err != nil {
			return nil, err
		}
		proj.addEdge(e.Variable, ep)
	}

	if err := proj.apply(stmt, q.ReturnItems); err != nil {
		return nil, err
	}

	t.logger.Debug("translated pattern",
		"nodes", len(nodes),
		"edges", len(pattern.Edges),
		"joins", len(stmt.Joins),
		"columns", len(stmt.Columns),
	)
	return stmt, nil
}

// Translate parses raw, translates it and renders it with d.
func (t *Translator) Translate(raw string, d querysql.Dialect) (string, error) {
	q, err := cypher.Parse(raw)
	if err != nil {
		return "", err
	}
	stmt, err := t.ToSQL(q)
	if err != nil {
		return "", err
	}
	return stmt.Render(d)
}
