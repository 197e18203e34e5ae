package cypher

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/cypher2sql/internal/syntax"
)

// Parse normalizes raw to NFC, parses it and extracts the pattern model.
//
// Query.Raw holds the normalized text, so later checks on the raw string see
// the same bytes the extractor saw.
func Parse(raw string) (*Query, error) {
	normalized := norm.NFC.String(raw)
	tree, err := syntax.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("parse cypher: %w", err)
	}
	q, err := Extract(normalized, tree)
	if err != nil {
		return nil, fmt.Errorf("extract pattern: %w", err)
	}
	return q, nil
}
