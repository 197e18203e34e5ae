package mapping

import (
	"errors"
	"fmt"

	"github.com/roach88/cypher2sql/internal/cypher"
	"github.com/roach88/cypher2sql/internal/querysql"
	"github.com/roach88/cypher2sql/internal/schema"
	"github.com/roach88/cypher2sql/internal/syntax"
)

// TranslationErrorCode categorizes translation failures.
type TranslationErrorCode string

const (
	// ErrCodeMissingPattern indicates the query has no MATCH pattern.
	ErrCodeMissingPattern TranslationErrorCode = "MISSING_PATTERN"

	// ErrCodeEmptyPattern indicates a pattern with no nodes.
	ErrCodeEmptyPattern TranslationErrorCode = "EMPTY_PATTERN"

	// ErrCodeMalformedPattern indicates len(edges) != len(nodes)-1.
	ErrCodeMalformedPattern TranslationErrorCode = "MALFORMED_PATTERN"

	// ErrCodeAmbiguousLabel indicates adjacent edges imply different labels
	// for an anonymous node.
	ErrCodeAmbiguousLabel TranslationErrorCode = "AMBIGUOUS_LABEL"

	// ErrCodeUnresolvedLabel indicates no adjacent edge implies a label.
	ErrCodeUnresolvedLabel TranslationErrorCode = "UNRESOLVED_LABEL"

	// ErrCodeLabelMismatch indicates a one-to-many edge whose endpoint labels
	// match neither orientation.
	ErrCodeLabelMismatch TranslationErrorCode = "LABEL_MISMATCH"

	// ErrCodeUnknownVariable indicates RETURN of a variable not in the pattern.
	ErrCodeUnknownVariable TranslationErrorCode = "UNKNOWN_VARIABLE"

	// ErrCodeEdgeProperty indicates RETURN of a property on an edge variable.
	ErrCodeEdgeProperty TranslationErrorCode = "EDGE_PROPERTY_UNSUPPORTED"

	// ErrCodeVariableLength indicates a variable-length traversal marker.
	ErrCodeVariableLength TranslationErrorCode = "VARIABLE_LENGTH_UNSUPPORTED"

	// ErrCodeUnknownRelationKind indicates an edge mapping with a kind the
	// resolver does not implement.
	ErrCodeUnknownRelationKind TranslationErrorCode = "UNKNOWN_RELATION_KIND"
)

// TranslationError is returned when a parsed query cannot be mapped to SQL.
type TranslationError struct {
	// Code identifies the error category.
	Code TranslationErrorCode

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *TranslationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsTranslationError reports whether err is a TranslationError with the
// given code. Uses errors.As to handle wrapped errors.
func IsTranslationError(err error, code TranslationErrorCode) bool {
	var te *TranslationError
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}

func newError(code TranslationErrorCode, format string, args ...any) *TranslationError {
	return &TranslationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Codes reported by ErrorCode for error types that carry no code field.
const (
	CodeSyntaxError   = "SYNTAX_ERROR"
	CodeWriteDisabled = "WRITE_DISABLED"
)

// ErrorCode returns the stable code of the first typed error in err's
// chain: translation, extraction, lookup, syntax or write-disabled. It
// returns "" for anything else.
func ErrorCode(err error) string {
	var (
		te *TranslationError
		ee *cypher.ExtractError
		le *schema.LookupError
		se *syntax.SyntaxError
		wd *querysql.WriteDisabledError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &te):
		return string(te.Code)
	case errors.As(err, &ee):
		return string(ee.Code)
	case errors.As(err, &le):
		return string(le.Code)
	case errors.As(err, &se):
		return CodeSyntaxError
	case errors.As(err, &wd):
		return CodeWriteDisabled
	default:
		return ""
	}
}
