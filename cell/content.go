// Package cell implements the CellContent variant and the Cell type:
// spec.md §4.1 and the Cell attributes/invariants of §3.
package cell

import (
	"strconv"
	"strings"

	"gosheet/formula"
	"gosheet/position"
	"gosheet/value"
)

// EscapeMarker suppresses numeric interpretation of a text cell when it
// is the leading character, per spec.md §3/§6.
const EscapeMarker = '\''

// FormulaMarker identifies a formula cell when it is the first
// character of the source text, per spec.md §3/§6.
const FormulaMarker = '='

// Kind tags which CellContent variant a Content holds.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindText
	KindFormula
)

// Classify returns the variant `text` would produce, per spec.md §4.1:
// Empty when text is empty, Formula when it starts with '=' and is at
// least two characters, else Text.
func Classify(text string) Kind {
	switch {
	case text == "":
		return KindEmpty
	case text[0] == FormulaMarker && len(text) >= 2:
		return KindFormula
	default:
		return KindText
	}
}

// Content is the tagged CellContent variant. The zero value is Empty.
type Content struct {
	kind Kind
	raw  string             // Text: the literal source, including any escape marker
	expr formula.Expression // Formula: the parsed expression
}

// Empty returns the Empty variant.
func Empty() Content { return Content{kind: KindEmpty} }

// NewContent classifies and, for formulas, parses `text` into a
// Content. It is a pure function: on parse failure it returns a
// non-nil error and the zero Content, mutating nothing — the caller
// (sheetcore's Sheet.SetCell, the dependency engine) is responsible for leaving
// existing state untouched, per spec.md §4.1/§7.
func NewContent(text string) (Content, error) {
	switch Classify(text) {
	case KindEmpty:
		return Empty(), nil
	case KindFormula:
		e, err := formula.Parse(text[1:])
		if err != nil {
			return Content{}, err
		}
		return Content{kind: KindFormula, expr: e}, nil
	default:
		return Content{kind: KindText, raw: text}, nil
	}
}

// Kind reports which variant this Content holds.
func (c Content) Kind() Kind { return c.kind }

// Raw returns the literal source text for Text content (including any
// leading escape marker), or "" for Empty/Formula content. sheetcore
// uses this to apply the resolver's text-coercion rule (spec.md §4.5)
// against the underlying literal rather than the already-escaped
// computed Value.
func (c Content) Raw() string {
	if c.kind == KindText {
		return c.raw
	}
	return ""
}

// Text returns the canonical source text per spec.md §6: "" for Empty,
// the raw literal (including any escape marker) for Text, and
// "=" + canonical-expression for Formula.
func (c Content) Text() string {
	switch c.kind {
	case KindText:
		return c.raw
	case KindFormula:
		return string(FormulaMarker) + c.expr.CanonicalExpression()
	default:
		return ""
	}
}

// ReferencedCells returns the deduplicated positions this content
// reads: empty for Empty and Text, the formula's referenced cells for
// Formula.
func (c Content) ReferencedCells() []position.Position {
	if c.kind != KindFormula {
		return nil
	}
	return c.expr.ReferencedCells()
}

// Evaluate computes this content's Value, per spec.md §4.5. `resolve`
// is only consulted for Formula content; Empty and Text never call it.
func (c Content) Evaluate(resolve formula.Resolver) value.Value {
	switch c.kind {
	case KindText:
		if len(c.raw) > 0 && c.raw[0] == EscapeMarker {
			return value.Text(c.raw[1:])
		}
		return value.Text(c.raw)
	case KindFormula:
		n, err := c.expr.Evaluate(resolve)
		if err != nil {
			if fe, ok := err.(*value.FormulaError); ok {
				return value.Error(fe)
			}
			return value.Error(value.NewFormulaError(value.ErrorValue))
		}
		return value.Number(n)
	default:
		return value.Text("")
	}
}

// ResolveTextToNumber implements the text-coercion half of spec.md §4.5's
// resolver rules, shared by sheetcore's resolver construction: given a
// cell's raw Text content, convert it to the numeric scalar a formula
// needs, or report the Value error the escape marker / a non-numeric
// string demands. It is exported so sheetcore (the only caller with
// access to a Cell's raw content) can reuse the exact coercion rule
// without duplicating it.
func ResolveTextToNumber(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	if raw[0] == EscapeMarker {
		return 0, value.NewFormulaError(value.ErrorValue)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, value.NewFormulaError(value.ErrorValue)
	}
	return n, nil
}
