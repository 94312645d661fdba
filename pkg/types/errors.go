package types

import "errors"

// Predicate errors. Parsing failures wrap ErrPredicateSyntax; an ordering
// operator with a non-numeric operand wraps ErrUnsupportedOperator.
var (
	ErrPredicateSyntax     = errors.New("predicate syntax error")
	ErrUnsupportedOperator = errors.New("unsupported operator for operand")
)

// Highlight operation errors.
var (
	ErrInvalidIndex = errors.New("index must be 1 or greater")
	ErrInvalidColor = errors.New("color must not be empty")
	ErrInvalidAxis  = errors.New("invalid axis")
	ErrInvalidEdit  = errors.New("invalid structural edit")
)

// Integration errors.
var (
	ErrNotAtTable     = errors.New("cursor is not inside a table")
	ErrTableNotFound  = errors.New("table not found")
	ErrOutOfRange     = errors.New("index out of range")
	ErrDocumentNotSet = errors.New("document id must not be empty")
)
