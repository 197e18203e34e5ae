package syntax

import (
	"fmt"
	"strings"
)

// clauseKeywords start a new clause and end any expression in progress.
var clauseKeywords = map[string]bool{
	"MATCH": true, "OPTIONAL": true, "WHERE": true, "RETURN": true,
	"WITH": true, "UNWIND": true, "UNION": true, "CALL": true,
	"CREATE": true, "MERGE": true, "DELETE": true, "DETACH": true, "SET": true, "REMOVE": true,
	"ORDER": true, "SKIP": true, "LIMIT": true,
}

// writeKeywords start clauses the read-only translator refuses.
var writeKeywords = map[string]bool{
	"CREATE": true, "MERGE": true, "DELETE": true, "DETACH": true, "SET": true, "REMOVE": true,
}

// Parser converts a token stream into a Tree.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse tokenizes and parses a Cypher query string into a tree rooted at a
// KindScript node.
func Parse(input string) (Tree, error) {
	if strings.TrimSpace(input) == "" {
		return nil, &SyntaxError{Pos: 0, Message: "empty query"}
	}
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens}
	return p.parseScript()
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		return Token{Type: TokEOF}
	}
	return p.tokens[p.pos+offset]
}

func (p *Parser) advance() Token {
	t := p.peek()
	p.pos++
	return t
}

func (p *Parser) terminal() *Node {
	return NewTerminal(p.advance().Text)
}

func (p *Parser) expectSymbol(sym string) (*Node, error) {
	t := p.peek()
	if !t.isSymbol(sym) {
		return nil, p.errorf(t, "expected %q", sym)
	}
	return p.terminal(), nil
}

func (p *Parser) expectKeyword(kw string) (*Node, error) {
	t := p.peek()
	if !t.isKeyword(kw) {
		return nil, p.errorf(t, "expected %s", kw)
	}
	return p.terminal(), nil
}

func (p *Parser) errorf(t Token, format string, args ...any) error {
	got := t.Text
	if t.Type == TokEOF {
		got = "end of input"
	}
	return &SyntaxError{Pos: t.Pos, Message: fmt.Sprintf(format, args...) + fmt.Sprintf(", got %q", got)}
}

func (p *Parser) parseScript() (Tree, error) {
	script := NewNode(KindScript)
	for p.peek().Type != TokEOF {
		clause, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		script.add(clause)
	}
	return script, nil
}

func (p *Parser) parseClause() (Tree, error) {
	t := p.peek()
	if t.Type != TokKeyword {
		return nil, p.errorf(t, "expected clause")
	}
	switch {
	case t.Value == "MATCH" || t.Value == "OPTIONAL":
		return p.parseMatch()
	case t.Value == "WHERE":
		return p.parseWhere()
	case t.Value == "RETURN":
		return p.parseReturn()
	case writeKeywords[t.Value]:
		return nil, &SyntaxError{Pos: t.Pos, Message: fmt.Sprintf("%s clause is not supported in read-only mode", t.Value)}
	default:
		return nil, &SyntaxError{Pos: t.Pos, Message: fmt.Sprintf("%s clause is not supported", t.Value)}
	}
}

func (p *Parser) parseMatch() (Tree, error) {
	match := NewNode(KindMatchClause)
	if p.peek().isKeyword("OPTIONAL") {
		match.add(p.terminal())
	}
	kw, err := p.expectKeyword("MATCH")
	if err != nil {
		return nil, err
	}
	match.add(kw)

	pattern, err := p.parsePattern()
	if err != nil {
		return nil, fmt.Errorf("match pattern: %w", err)
	}
	match.add(pattern)

	if p.peek().isKeyword("WHERE") {
		where, err := p.parseWhere()
		if err != nil {
			return nil, err
		}
		match.add(where)
	}
	return match, nil
}

func (p *Parser) parsePattern() (*Node, error) {
	pattern := NewNode(KindPattern)
	for {
		part, err := p.parsePatternPart()
		if err != nil {
			return nil, err
		}
		pattern.add(part)
		if !p.peek().isSymbol(",") {
			return pattern, nil
		}
		pattern.add(p.terminal())
	}
}

func (p *Parser) parsePatternPart() (*Node, error) {
	part := NewNode(KindPatternPart)
	// path variable: p = (a)-->(b)
	if p.peek().Type == TokIdent && p.peekAt(1).isSymbol("=") {
		part.add(p.terminal(), p.terminal())
	}
	element, err := p.parsePatternElement()
	if err != nil {
		return nil, err
	}
	part.add(element)
	return part, nil
}

func (p *Parser) parsePatternElement() (*Node, error) {
	element := NewNode(KindPatternElement)

	// First element must be a node
	node, err := p.parseNodePattern()
	if err != nil {
		return nil, err
	}
	element.add(node)

	// Alternating relationship-node pairs
	for p.isRelStart() {
		rel, err := p.parseRelationshipPattern()
		if err != nil {
			return nil, err
		}
		next, err := p.parseNodePattern()
		if err != nil {
			return nil, err
		}
		element.add(rel, next)
	}
	return element, nil
}

// isRelStart checks whether the next tokens begin a relationship pattern:
// -[...]->, <-[...]-, -[...]- or the bracketless forms.
func (p *Parser) isRelStart() bool {
	t := p.peek()
	return t.isSymbol("-") || (t.isSymbol("<") && p.peekAt(1).isSymbol("-"))
}

func (p *Parser) parseNodePattern() (*Node, error) {
	open, err := p.expectSymbol("(")
	if err != nil {
		return nil, fmt.Errorf("node pattern: %w", err)
	}
	node := NewNode(KindNodePattern, open)
	body, err := p.collectBalanced(open.text, ")")
	if err != nil {
		return nil, err
	}
	node.add(body...)
	return node, nil
}

func (p *Parser) parseRelationshipPattern() (*Node, error) {
	rel := NewNode(KindRelationshipPattern)
	if p.peek().isSymbol("<") {
		rel.add(p.terminal())
	}
	dash, err := p.expectSymbol("-")
	if err != nil {
		return nil, fmt.Errorf("relationship pattern: %w", err)
	}
	rel.add(dash)

	if p.peek().isSymbol("[") {
		open := p.terminal()
		rel.add(open)
		body, err := p.collectBalanced(open.text, "]")
		if err != nil {
			return nil, err
		}
		rel.add(body...)
	}

	dash, err = p.expectSymbol("-")
	if err != nil {
		return nil, fmt.Errorf("relationship pattern: %w", err)
	}
	rel.add(dash)

	if p.peek().isSymbol(">") {
		rel.add(p.terminal())
	}
	return rel, nil
}

// collectBalanced consumes tokens up to and including the closer that
// balances an already-consumed opener.
func (p *Parser) collectBalanced(opener, closer string) ([]Tree, error) {
	start := p.peek()
	var out []Tree
	depth := 0
	for {
		t := p.peek()
		switch {
		case t.Type == TokEOF:
			return nil, &SyntaxError{Pos: start.Pos, Message: fmt.Sprintf("unterminated %q, expected %q", opener, closer)}
		case depth == 0 && t.isSymbol(closer):
			out = append(out, p.terminal())
			return out, nil
		case isOpener(t):
			depth++
		case isCloser(t):
			if depth == 0 {
				return nil, p.errorf(t, "mismatched bracket, expected %q", closer)
			}
			depth--
		}
		out = append(out, p.terminal())
	}
}

func (p *Parser) parseWhere() (Tree, error) {
	kw, err := p.expectKeyword("WHERE")
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(false)
	if err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}
	return NewNode(KindWhereClause, kw, expr), nil
}

func (p *Parser) parseReturn() (Tree, error) {
	ret := NewNode(KindReturnClause, p.terminal())
	if p.peek().isKeyword("DISTINCT") {
		ret.add(p.terminal())
	}

	// RETURN * projects everything; '*' is not a return item.
	if p.peek().isSymbol("*") {
		ret.add(p.terminal())
		if p.peek().isSymbol(",") {
			ret.add(p.terminal())
		} else {
			return p.parseReturnTail(ret)
		}
	}

	items := NewNode(KindReturnItems)
	for {
		item, err := p.parseReturnItem()
		if err != nil {
			return nil, err
		}
		items.add(item)
		if !p.peek().isSymbol(",") {
			break
		}
		items.add(p.terminal())
	}
	ret.add(items)
	return p.parseReturnTail(ret)
}

func (p *Parser) parseReturnTail(ret *Node) (Tree, error) {
	if p.peek().isKeyword("ORDER") {
		order := NewNode(KindOrderClause, p.terminal())
		by, err := p.expectKeyword("BY")
		if err != nil {
			return nil, err
		}
		expr, err := p.parseExpression(false)
		if err != nil {
			return nil, fmt.Errorf("order by: %w", err)
		}
		order.add(by, expr)
		ret.add(order)
	}
	for _, kw := range []struct {
		word string
		kind string
	}{{"SKIP", KindSkipClause}, {"LIMIT", KindLimitClause}} {
		if !p.peek().isKeyword(kw.word) {
			continue
		}
		clause := NewNode(kw.kind, p.terminal())
		expr, err := p.parseExpression(false)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.ToLower(kw.word), err)
		}
		clause.add(expr)
		ret.add(clause)
	}
	return ret, nil
}

func (p *Parser) parseReturnItem() (*Node, error) {
	expr, err := p.parseExpression(true)
	if err != nil {
		return nil, fmt.Errorf("return item: %w", err)
	}
	item := NewNode(KindReturnItem, expr)
	if p.peek().isKeyword("AS") {
		as := p.terminal()
		alias := p.peek()
		if alias.Type != TokIdent {
			return nil, p.errorf(alias, "expected alias after AS")
		}
		item.add(as, p.terminal())
	}
	return item, nil
}

// parseExpression collects an expression as a flat token run. It stops at a
// clause keyword at depth zero, and for return items also at ',' and AS.
func (p *Parser) parseExpression(item bool) (*Node, error) {
	expr := NewNode(KindExpression)
	depth := 0
	prev := Token{Type: TokEOF}
	for {
		t := p.peek()
		if t.Type == TokEOF {
			break
		}
		// a keyword right after '.' is a property name (p.limit)
		keywordAsName := prev.isSymbol(".")
		if depth == 0 && !keywordAsName {
			if t.Type == TokKeyword && clauseKeywords[t.Value] {
				break
			}
			if item && (t.isSymbol(",") || t.isKeyword("AS")) {
				break
			}
		}
		switch {
		case isOpener(t):
			depth++
		case isCloser(t):
			if depth == 0 {
				return nil, p.errorf(t, "mismatched bracket")
			}
			depth--
		}
		prev = p.advance()
		expr.add(NewTerminal(prev.Text))
	}
	if depth != 0 {
		return nil, p.errorf(p.peek(), "unbalanced brackets in expression")
	}
	if len(expr.children) == 0 {
		return nil, p.errorf(p.peek(), "expected expression")
	}
	return expr, nil
}

func isOpener(t Token) bool {
	return t.isSymbol("(") || t.isSymbol("[") || t.isSymbol("{")
}

func isCloser(t Token) bool {
	return t.isSymbol(")") || t.isSymbol("]") || t.isSymbol("}")
}
