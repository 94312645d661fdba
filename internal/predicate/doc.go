// Package predicate parses and evaluates conditional-highlight expressions.
//
// An expression is a sequence of comparisons joined by "and" and "or",
// where "or" binds loosest:
//
//	>10 and <100
//	>=10 or =TODO
//	!=done
//
// Each comparison is an operator (<=, >=, <, >, =, !=) immediately followed
// by its operand. Expressions compile to a Predicate that matches cell text.
package predicate
