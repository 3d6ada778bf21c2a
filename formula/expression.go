// Package formula implements the FormulaExpression collaborator
// spec.md treats as external and opaque: a parser, AST, evaluator, and
// canonical-form printer for the small arithmetic-plus-cell-reference
// grammar this spreadsheet needs. sheetcore and cell never reach into
// the AST directly — they only see the Expression interface.
package formula

import "gosheet/position"

// Expression is the FormulaExpression interface spec.md §6 describes:
// parse, evaluate against a resolver, enumerate referenced cells, and
// print a canonical round-trip form.
type Expression interface {
	Evaluate(resolve Resolver) (float64, error)
	ReferencedCells() []position.Position
	CanonicalExpression() string
}

// expr is the concrete Expression backed by a parsed AST.
type expr struct {
	root Node
}

// Parse parses formula source — the text after the leading '=' — into
// an Expression. A parse failure returns a *ParseError and must not be
// treated as a constructed Expression; spec.md §4.1 requires
// construction failures to leave all state untouched, which Parse
// satisfies simply by not producing a value.
func Parse(source string) (Expression, error) {
	root, err := parseExpression(source)
	if err != nil {
		return nil, err
	}
	return &expr{root: root}, nil
}

func (e *expr) Evaluate(resolve Resolver) (float64, error) {
	return e.root.Eval(resolve)
}

// ReferencedCells returns the deduplicated set of Positions this
// formula reads, in first-seen order. Cell.ReferencedCells (spec.md
// §6) requires dedup; the AST itself may enumerate a position more
// than once (e.g. "=A1+A1" or a range overlapping a direct reference).
func (e *expr) ReferencedCells() []position.Position {
	var raw []position.Position
	e.root.collectRefs(&raw)

	seen := make(map[position.Position]struct{}, len(raw))
	out := make([]position.Position, 0, len(raw))
	for _, p := range raw {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// CanonicalExpression renders the AST's round-trip form. It may differ
// from the user's original source: whitespace and the source's own
// parentheses are not preserved, and every unary or binary operand is
// printed in parentheses, per spec.md §6.
func (e *expr) CanonicalExpression() string {
	return e.root.String()
}
