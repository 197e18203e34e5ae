package cypher

import (
	"errors"
	"fmt"
)

// ExtractErrorCode categorizes extraction failures.
type ExtractErrorCode string

const (
	// ErrCodeMalformedNode indicates a node segment without balanced parentheses.
	ErrCodeMalformedNode ExtractErrorCode = "MALFORMED_NODE"

	// ErrCodeMalformedEdge indicates a relationship segment without balanced brackets.
	ErrCodeMalformedEdge ExtractErrorCode = "MALFORMED_EDGE"

	// ErrCodeUnsupportedReturn indicates a RETURN expression other than
	// variable or variable.property.
	ErrCodeUnsupportedReturn ExtractErrorCode = "UNSUPPORTED_RETURN"
)

// ExtractError is returned when a syntax tree cannot be turned into the
// pattern model.
type ExtractError struct {
	// Code identifies the error category.
	Code ExtractErrorCode

	// Message is a human-readable description.
	Message string

	// Text is the offending source segment.
	Text string
}

// Error implements the error interface.
func (e *ExtractError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsExtractError reports whether err is an ExtractError with the given code.
// Uses errors.As to handle wrapped errors.
func IsExtractError(err error, code ExtractErrorCode) bool {
	var ee *ExtractError
	if errors.As(err, &ee) {
		return ee.Code == code
	}
	return false
}

func unsupportedReturn(expr string) *ExtractError {
	return &ExtractError{
		Code:    ErrCodeUnsupportedReturn,
		Message: fmt.Sprintf("unsupported RETURN expression: %s. Only variable or variable.property are supported", expr),
		Text:    expr,
	}
}
