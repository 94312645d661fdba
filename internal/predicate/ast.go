package predicate

import "strings"

// Op is a comparison operator.
type Op string

// Comparison operators, longest first so prefix matching is unambiguous.
const (
	OpLessEq    Op = "<="
	OpGreaterEq Op = ">="
	OpNotEq     Op = "!="
	OpLess      Op = "<"
	OpGreater   Op = ">"
	OpEq        Op = "="
)

var operators = []Op{OpLessEq, OpGreaterEq, OpNotEq, OpLess, OpGreater, OpEq}

// Ordering reports whether the operator needs a numeric operand.
func (o Op) Ordering() bool {
	switch o {
	case OpLess, OpLessEq, OpGreater, OpGreaterEq:
		return true
	}
	return false
}

// Compare is a single operator/operand comparison.
type Compare struct {
	Op      Op
	Operand string
}

func (c Compare) String() string {
	return string(c.Op) + c.Operand
}

// And is a conjunction of comparisons.
type And struct {
	Terms []Compare
}

func (a And) String() string {
	parts := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " and ")
}

// Expr is a disjunction of conjunctions; the root of a parsed expression.
type Expr struct {
	Groups []And
}

func (e *Expr) String() string {
	parts := make([]string, len(e.Groups))
	for i, g := range e.Groups {
		parts[i] = g.String()
	}
	return strings.Join(parts, " or ")
}
