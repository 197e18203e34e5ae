package syntax

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType classifies a lexer token.
type TokenType int

const (
	TokIdent   TokenType = iota // identifier or `quoted identifier`
	TokKeyword                  // reserved word, Value upper-cased
	TokString                   // '...' or "..."
	TokNumber                   // integer or decimal
	TokParam                    // $name
	TokSymbol                   // punctuation and operators
	TokEOF                      // end of input
)

// Token is a single lexer token.
type Token struct {
	Type  TokenType
	Value string // normalized value: upper-case keyword, unquoted string
	Text  string // exact source text
	Pos   int    // byte offset in the input
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%d, %q, pos=%d)", t.Type, t.Text, t.Pos)
}

func (t Token) is(typ TokenType, value string) bool {
	return t.Type == typ && t.Value == value
}

func (t Token) isSymbol(value string) bool {
	return t.is(TokSymbol, value)
}

func (t Token) isKeyword(value string) bool {
	return t.is(TokKeyword, value)
}

var keywords = map[string]struct{}{
	"MATCH": {}, "OPTIONAL": {}, "WHERE": {}, "RETURN": {}, "DISTINCT": {},
	"AS": {}, "ORDER": {}, "BY": {}, "SKIP": {}, "LIMIT": {},
	"ASC": {}, "ASCENDING": {}, "DESC": {}, "DESCENDING": {},
	"AND": {}, "OR": {}, "XOR": {}, "NOT": {},
	"WITH": {}, "UNWIND": {}, "UNION": {}, "CALL": {},
	"CREATE": {}, "MERGE": {}, "DELETE": {}, "DETACH": {}, "SET": {}, "REMOVE": {},
}

// twoCharSymbols are checked before single characters.
var twoCharSymbols = []string{"..", "<=", ">=", "<>", "=~", "+="}

const singleCharSymbols = "()[]{}*,|:-><.=+/%^!;&~"

// Lexer tokenizes a Cypher query string.
type Lexer struct {
	input  string
	pos    int
	tokens []Token
}

// Lex tokenizes the input string into a slice of tokens ending with TokEOF.
func Lex(input string) ([]Token, error) {
	l := &Lexer{input: input}
	if err := l.tokenize(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *Lexer) tokenize() error {
	for l.pos < len(l.input) {
		if l.skipWhitespaceAndComments() {
			continue
		}
		if err := l.lexNextToken(); err != nil {
			return err
		}
	}
	l.tokens = append(l.tokens, Token{Type: TokEOF, Pos: l.pos})
	return nil
}

// skipWhitespaceAndComments skips whitespace and // or /* */ comments.
// Returns true if something was skipped.
func (l *Lexer) skipWhitespaceAndComments() bool {
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if unicode.IsSpace(r) {
		l.pos += size
		return true
	}
	rest := l.input[l.pos:]
	if strings.HasPrefix(rest, "//") {
		end := strings.IndexByte(rest, '\n')
		if end < 0 {
			l.pos = len(l.input)
		} else {
			l.pos += end + 1
		}
		return true
	}
	if strings.HasPrefix(rest, "/*") {
		end := strings.Index(rest[2:], "*/")
		if end < 0 {
			l.pos = len(l.input)
		} else {
			l.pos += end + 4
		}
		return true
	}
	return false
}

func (l *Lexer) lexNextToken() error {
	rest := l.input[l.pos:]
	ch := rest[0]

	switch {
	case ch == '\'' || ch == '"':
		return l.lexString(ch)
	case ch == '`':
		return l.lexQuotedIdent()
	case ch == '$':
		return l.lexParam()
	case isDigit(ch):
		l.lexNumber()
		return nil
	}

	for _, sym := range twoCharSymbols {
		if strings.HasPrefix(rest, sym) {
			l.emit(TokSymbol, sym, sym)
			l.pos += len(sym)
			return nil
		}
	}
	if strings.IndexByte(singleCharSymbols, ch) >= 0 {
		l.emit(TokSymbol, string(ch), string(ch))
		l.pos++
		return nil
	}

	r, _ := utf8.DecodeRuneInString(rest)
	if isIdentStart(r) {
		l.lexIdent()
		return nil
	}
	return &SyntaxError{Pos: l.pos, Message: fmt.Sprintf("unexpected character %q", r)}
}

func (l *Lexer) emit(typ TokenType, value, text string) {
	l.tokens = append(l.tokens, Token{Type: typ, Value: value, Text: text, Pos: l.pos})
}

func (l *Lexer) lexString(quote byte) error {
	start := l.pos
	i := l.pos + 1
	var sb strings.Builder
	for i < len(l.input) {
		ch := l.input[i]
		if ch == '\\' && i+1 < len(l.input) {
			sb.WriteByte(l.input[i+1])
			i += 2
			continue
		}
		if ch == quote {
			l.emit(TokString, sb.String(), l.input[start:i+1])
			l.pos = i + 1
			return nil
		}
		sb.WriteByte(ch)
		i++
	}
	return &SyntaxError{Pos: start, Message: "unterminated string"}
}

func (l *Lexer) lexQuotedIdent() error {
	start := l.pos
	end := strings.IndexByte(l.input[start+1:], '`')
	if end < 0 {
		return &SyntaxError{Pos: start, Message: "unterminated quoted identifier"}
	}
	stop := start + 1 + end
	l.emit(TokIdent, l.input[start+1:stop], l.input[start:stop+1])
	l.pos = stop + 1
	return nil
}

func (l *Lexer) lexParam() error {
	start := l.pos
	i := start + 1
	for i < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[i:])
		if !isIdentPart(r) {
			break
		}
		i += size
	}
	if i == start+1 {
		return &SyntaxError{Pos: start, Message: "expected parameter name after '$'"}
	}
	l.emit(TokParam, l.input[start+1:i], l.input[start:i])
	l.pos = i
	return nil
}

func (l *Lexer) lexNumber() {
	start := l.pos
	i := start
	for i < len(l.input) && isDigit(l.input[i]) {
		i++
	}
	// decimal point, but not the ".." range operator
	if i+1 < len(l.input) && l.input[i] == '.' && isDigit(l.input[i+1]) {
		i++
		for i < len(l.input) && isDigit(l.input[i]) {
			i++
		}
	}
	text := l.input[start:i]
	l.emit(TokNumber, text, text)
	l.pos = i
}

func (l *Lexer) lexIdent() {
	start := l.pos
	i := start
	for i < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[i:])
		if !isIdentPart(r) {
			break
		}
		i += size
	}
	word := l.input[start:i]
	upper := strings.ToUpper(word)
	if _, ok := keywords[upper]; ok {
		l.emit(TokKeyword, upper, word)
	} else {
		l.emit(TokIdent, word, word)
	}
	l.pos = i
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
