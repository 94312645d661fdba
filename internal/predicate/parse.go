package predicate

import "strings"

const (
	keywordAnd = "and"
	keywordOr  = "or"
)

// Parse turns expression text into an Expr. Tokens are separated by
// whitespace. A token that is only an operator takes the following token as
// its operand, so "> 10" and ">10" parse the same way.
func Parse(text string) (*Expr, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, &SyntaxError{Expr: text, Pos: -1, Msg: "empty expression"}
	}

	expr := &Expr{}
	group := And{}
	// expectTerm is true at the start and after a connective.
	expectTerm := true

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok {
		case keywordAnd, keywordOr:
			if expectTerm {
				return nil, &SyntaxError{Expr: text, Token: tok, Pos: i, Msg: "missing comparison before connective"}
			}
			if tok == keywordOr {
				expr.Groups = append(expr.Groups, group)
				group = And{}
			}
			expectTerm = true
			continue
		}

		if !expectTerm {
			return nil, &SyntaxError{Expr: text, Token: tok, Pos: i, Msg: `expected "and" or "or"`}
		}

		op, operand, ok := splitOperator(tok)
		if !ok {
			return nil, &SyntaxError{Expr: text, Token: tok, Pos: i, Msg: "no comparator found"}
		}
		if operand == "" {
			if i+1 >= len(tokens) || isKeyword(tokens[i+1]) {
				return nil, &SyntaxError{Expr: text, Token: tok, Pos: i, Msg: "missing operand"}
			}
			i++
			operand = tokens[i]
		}
		group.Terms = append(group.Terms, Compare{Op: op, Operand: operand})
		expectTerm = false
	}

	if expectTerm {
		return nil, &SyntaxError{Expr: text, Token: tokens[len(tokens)-1], Pos: len(tokens) - 1, Msg: "expression ends with a connective"}
	}
	expr.Groups = append(expr.Groups, group)
	return expr, nil
}

// splitOperator strips the longest operator prefix from tok.
func splitOperator(tok string) (Op, string, bool) {
	for _, op := range operators {
		if strings.HasPrefix(tok, string(op)) {
			return op, tok[len(op):], true
		}
	}
	return "", "", false
}

func isKeyword(tok string) bool {
	return tok == keywordAnd || tok == keywordOr
}
