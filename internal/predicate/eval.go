package predicate

import (
	"regexp"
	"strconv"
	"strings"
)

// numericLiteral matches plain decimal numbers; ParseFloat alone would also
// accept "inf", "nan", hex floats and underscores.
var numericLiteral = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// IsNumeric reports whether s is lexically a decimal number.
func IsNumeric(s string) bool {
	return numericLiteral.MatchString(s)
}

func toNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !IsNumeric(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// term is a compiled comparison.
type term struct {
	op      Op
	operand string
	number  float64
	numeric bool
}

// Predicate is a compiled expression.
type Predicate struct {
	source string
	groups [][]term
}

// Compile validates an Expr and prepares it for evaluation. Ordering
// operators require numeric operands.
func Compile(expr *Expr) (Predicate, error) {
	p := Predicate{source: expr.String()}
	for _, g := range expr.Groups {
		terms := make([]term, 0, len(g.Terms))
		for _, c := range g.Terms {
			n, numeric := toNumber(c.Operand)
			if c.Op.Ordering() && !numeric {
				return Predicate{}, &OperatorError{Op: c.Op, Operand: c.Operand}
			}
			terms = append(terms, term{op: c.Op, operand: c.Operand, number: n, numeric: numeric})
		}
		p.groups = append(p.groups, terms)
	}
	return p, nil
}

// Build parses and compiles text.
func Build(text string) (Predicate, error) {
	expr, err := Parse(text)
	if err != nil {
		return Predicate{}, err
	}
	return Compile(expr)
}

// String returns the normalized expression.
func (p Predicate) String() string {
	return p.source
}

// Match evaluates the predicate against cell text. The zero Predicate
// matches nothing.
func (p Predicate) Match(cell string) bool {
	for _, g := range p.groups {
		if matchAll(g, cell) {
			return true
		}
	}
	return false
}

func matchAll(terms []term, cell string) bool {
	for _, t := range terms {
		if !t.match(cell) {
			return false
		}
	}
	return true
}

func (t term) match(cell string) bool {
	if !t.numeric {
		switch t.op {
		case OpEq:
			return cell == t.operand
		case OpNotEq:
			return cell != t.operand
		}
		return false
	}

	v, ok := toNumber(cell)
	if !ok {
		return t.op == OpNotEq
	}
	switch t.op {
	case OpLess:
		return v < t.number
	case OpLessEq:
		return v <= t.number
	case OpGreater:
		return v > t.number
	case OpGreaterEq:
		return v >= t.number
	case OpEq:
		return v == t.number
	case OpNotEq:
		return v != t.number
	}
	return false
}
