package predicate

import (
	"fmt"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

// SyntaxError reports a malformed expression. Token is the offending token
// and Pos its 0-based token position; Pos is -1 when the problem is the
// expression as a whole.
type SyntaxError struct {
	Expr  string
	Token string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("predicate %q: %s", e.Expr, e.Msg)
	}
	return fmt.Sprintf("predicate %q: token %d %q: %s", e.Expr, e.Pos+1, e.Token, e.Msg)
}

// Unwrap lets errors.Is match types.ErrPredicateSyntax.
func (e *SyntaxError) Unwrap() error { return types.ErrPredicateSyntax }

// OperatorError reports an ordering operator used with a non-numeric operand.
type OperatorError struct {
	Op      Op
	Operand string
}

func (e *OperatorError) Error() string {
	return fmt.Sprintf("operator %s needs a numeric operand, got %q", e.Op, e.Operand)
}

// Unwrap lets errors.Is match types.ErrUnsupportedOperator.
func (e *OperatorError) Unwrap() error { return types.ErrUnsupportedOperator }
