package cypher

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/roach88/cypher2sql/internal/syntax"
)

// Separators that end a label or relationship type. Anything after them
// (extra labels, alternative types, ranges, property maps) is ignored.
const (
	labelSeparators = "&:{ \t\n\r"
	typeSeparators  = "|&:*{ \t\n\r"
)

// Extract builds the pattern model from a syntax tree.
//
// Rule kinds are compared after normalization (alphanumerics only,
// lower-cased), so "pattern-element" and "oC_PatternElement" both name the
// pattern element rule. Only the first pattern element in pre-order is
// extracted; later patterns are ignored. Return items are collected from the
// whole tree.
func Extract(raw string, tree syntax.Tree) (*Query, error) {
	q := &Query{Raw: raw}
	if tree == nil {
		return q, nil
	}

	pattern, err := extractPattern(tree)
	if err != nil {
		return nil, err
	}
	if pattern != nil {
		q.Patterns = []Pattern{*pattern}
	}

	items, err := extractReturnItems(tree)
	if err != nil {
		return nil, err
	}
	q.ReturnItems = items
	return q, nil
}

func normalizeKind(kind string) string {
	var sb strings.Builder
	for _, r := range kind {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}

func kindHasSuffix(t syntax.Tree, suffixes ...string) bool {
	kind := normalizeKind(t.Kind())
	for _, s := range suffixes {
		if strings.HasSuffix(kind, s) {
			return true
		}
	}
	return false
}

func extractPattern(tree syntax.Tree) (*Pattern, error) {
	root := syntax.FindFirst(tree, func(t syntax.Tree) bool {
		return kindHasSuffix(t, "patternelement")
	})
	if root == nil {
		return nil, nil
	}

	var nodeTexts, edgeTexts []string
	syntax.Walk(root, func(t syntax.Tree) bool {
		switch {
		case kindHasSuffix(t, "nodepattern"):
			nodeTexts = append(nodeTexts, t.Text())
		case kindHasSuffix(t, "relationshippattern"):
			edgeTexts = append(edgeTexts, t.Text())
		}
		return true
	})
	if len(nodeTexts) == 0 {
		return nil, nil
	}

	p := &Pattern{
		Nodes: make([]Node, 0, len(nodeTexts)),
		Edges: make([]Edge, 0, len(edgeTexts)),
	}
	for _, text := range nodeTexts {
		n, err := parseNodeText(text)
		if err != nil {
			return nil, err
		}
		p.Nodes = append(p.Nodes, n)
	}
	for _, text := range edgeTexts {
		e, err := parseEdgeText(text)
		if err != nil {
			return nil, err
		}
		p.Edges = append(p.Edges, e)
	}
	return p, nil
}

// parseNodeText reads "(var:Label {props})" segments.
func parseNodeText(text string) (Node, error) {
	open := strings.Index(text, "(")
	closing := strings.LastIndex(text, ")")
	if open < 0 || closing < open {
		return Node{}, &ExtractError{
			Code:    ErrCodeMalformedNode,
			Message: fmt.Sprintf("unsupported node pattern: %s", text),
			Text:    text,
		}
	}

	inside := text[open+1 : closing]
	if i := strings.Index(inside, "{"); i >= 0 {
		inside = inside[:i]
	}
	if i := indexFold(inside, "WHERE"); i >= 0 {
		inside = inside[:i]
	}
	inside = strings.TrimSpace(inside)

	if inside == "" {
		return Node{}, nil
	}
	if rest, ok := strings.CutPrefix(inside, ":"); ok {
		return Node{Label: firstToken(rest, labelSeparators)}, nil
	}
	variable, label, found := strings.Cut(inside, ":")
	n := Node{Variable: unquote(strings.TrimSpace(variable))}
	if found {
		n.Label = firstToken(label, labelSeparators)
	}
	return n, nil
}

// parseEdgeText reads "-[var:TYPE]->" segments.
func parseEdgeText(text string) (Edge, error) {
	open := strings.Index(text, "[")
	closing := strings.LastIndex(text, "]")
	if open < 0 || closing <= open {
		return Edge{}, &ExtractError{
			Code:    ErrCodeMalformedEdge,
			Message: fmt.Sprintf("unsupported relationship pattern: %s", text),
			Text:    text,
		}
	}

	inside := text[open+1 : closing]
	if i := strings.Index(inside, "{"); i >= 0 {
		inside = inside[:i]
	}
	inside = strings.TrimSpace(inside)

	var e Edge
	switch {
	case strings.HasPrefix(inside, ":"):
		e.Type = firstToken(inside[1:], typeSeparators)
	case strings.Contains(inside, ":"):
		variable, typ, _ := strings.Cut(inside, ":")
		e.Variable = unquote(strings.TrimSpace(variable))
		e.Type = firstToken(typ, typeSeparators)
	case !strings.Contains(inside, "*"):
		e.Variable = firstToken(inside, typeSeparators)
	}

	switch {
	case strings.Contains(text, "->"):
		e.Direction = LeftToRight
	case strings.Contains(text, "<-"):
		e.Direction = RightToLeft
	default:
		e.Direction = Undirected
	}
	return e, nil
}

// firstToken truncates value at the earliest separator and trims it. A
// backquoted name is returned without its quotes.
func firstToken(value, separators string) string {
	if strings.HasPrefix(value, "`") {
		if end := strings.Index(value[1:], "`"); end >= 0 {
			return value[1 : end+1]
		}
	}
	if i := strings.IndexAny(value, separators); i >= 0 {
		value = value[:i]
	}
	return strings.TrimSpace(value)
}

func unquote(name string) string {
	if len(name) >= 2 && strings.HasPrefix(name, "`") && strings.HasSuffix(name, "`") {
		return name[1 : len(name)-1]
	}
	return name
}

// indexFold is a case-insensitive strings.Index for an ASCII needle.
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

func extractReturnItems(tree syntax.Tree) ([]ReturnItem, error) {
	var (
		items []ReturnItem
		err   error
	)
	syntax.Walk(tree, func(t syntax.Tree) bool {
		if err != nil {
			return false
		}
		if !kindHasSuffix(t, "returnitem", "projectionitem") {
			return true
		}
		var item ReturnItem
		item, err = parseProjection(returnExpressionText(t))
		if err == nil {
			items = append(items, item)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// returnExpressionText is the text before an AS alias, or the whole item.
func returnExpressionText(item syntax.Tree) string {
	var sb strings.Builder
	for _, child := range item.Children() {
		if syntax.IsTerminal(child) && strings.EqualFold(child.Text(), "AS") {
			return strings.TrimSpace(sb.String())
		}
		sb.WriteString(child.Text())
	}
	return strings.TrimSpace(item.Text())
}

// parseProjection accepts "var" and "var.prop" only.
func parseProjection(expr string) (ReturnItem, error) {
	variable, property, found := strings.Cut(expr, ".")
	if !found {
		if isIdentifier(expr) {
			return ReturnItem{Variable: expr}, nil
		}
		return ReturnItem{}, unsupportedReturn(expr)
	}
	if strings.Contains(property, ".") {
		return ReturnItem{}, unsupportedReturn(expr)
	}
	if isIdentifier(variable) && isIdentifier(property) {
		return ReturnItem{Variable: variable, Property: property}, nil
	}
	return ReturnItem{}, unsupportedReturn(expr)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
