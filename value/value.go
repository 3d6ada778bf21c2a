// Package value defines the result type produced by evaluating a cell:
// a tagged Number/Text/Error, and the FormulaError category taxonomy.
package value

import "fmt"

// ErrorCode categorizes a FormulaError. Unlike the teacher's eight-way
// Excel-style ErrorCode (#NULL!, #DIV/0!, #VALUE!, #REF!, #NAME?,
// #NUM!, #N/A, #ERROR!), this spec's evaluation model only ever raises
// three distinct categories; see spec.md §3.
type ErrorCode uint8

const (
	// ErrorRef marks a reference to an invalid (out-of-bounds) position.
	ErrorRef ErrorCode = iota + 1
	// ErrorValue marks non-numeric text encountered in a numeric context.
	ErrorValue
	// ErrorArithmetic marks division by zero, overflow, or a NaN result.
	ErrorArithmetic
)

// canonicalCodes maps each category to its canonical display code, the
// form get_value's Error variant renders as per spec.md §4.2.
var canonicalCodes = map[ErrorCode]string{
	ErrorRef:        "#REF!",
	ErrorValue:      "#VALUE!",
	ErrorArithmetic: "#ARITH!",
}

// FormulaError is a value produced by evaluation, never an exception:
// it is caught by the evaluator and returned as the formula's Value.
type FormulaError struct {
	Code ErrorCode
}

// NewFormulaError builds a FormulaError for the given category.
func NewFormulaError(code ErrorCode) *FormulaError {
	return &FormulaError{Code: code}
}

// Error implements the error interface so FormulaError can be raised
// and caught across the resolver/evaluator boundary like any other Go
// error, then packaged back into a Value by the caller.
func (e *FormulaError) Error() string {
	return e.CanonicalCode()
}

// CanonicalCode returns the category's canonical display code.
func (e *FormulaError) CanonicalCode() string {
	if code, ok := canonicalCodes[e.Code]; ok {
		return code
	}
	return "#ERROR!"
}

// Kind tags which variant a Value holds.
type Kind uint8

const (
	KindNumber Kind = iota
	KindText
	KindError
)

// Value is the tagged result of evaluating a cell: a number, a text
// string, or a FormulaError. Exactly one of the accessor fields is
// meaningful, selected by Kind.
type Value struct {
	kind Kind
	num  float64
	text string
	err  *FormulaError
}

// Number builds a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Text builds a textual Value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Error builds an error Value from a FormulaError.
func Error(e *FormulaError) Value { return Value{kind: KindError, err: e} }

// Kind reports which variant this Value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNumber reports whether this is a numeric Value.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// IsText reports whether this is a textual Value.
func (v Value) IsText() bool { return v.kind == KindText }

// IsError reports whether this is an error Value.
func (v Value) IsError() bool { return v.kind == KindError }

// AsNumber returns the numeric payload; only meaningful when IsNumber.
func (v Value) AsNumber() float64 { return v.num }

// AsText returns the textual payload; only meaningful when IsText.
func (v Value) AsText() string { return v.text }

// AsError returns the error payload; only meaningful when IsError.
func (v Value) AsError() *FormulaError { return v.err }

// String renders the value for display: a number as decimal, text
// as-is, an error by its canonical code — the rendering print_values
// uses per spec.md §4.2.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return formatNumber(v.num)
	case KindText:
		return v.text
	case KindError:
		if v.err == nil {
			return "#ERROR!"
		}
		return v.err.CanonicalCode()
	default:
		return ""
	}
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}
