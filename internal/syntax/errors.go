package syntax

import "fmt"

// SyntaxError reports input the lexer or parser could not accept.
type SyntaxError struct {
	// Pos is the byte offset of the offending token.
	Pos int

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at pos %d: %s", e.Pos, e.Message)
}
