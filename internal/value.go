package spreadsheet

import "github.com/shopspring/decimal"

// ValueKind discriminates the tagged union Value represents.
type ValueKind int

const (
	// KindText holds a literal string value.
	KindText ValueKind = iota
	// KindNumber holds a float64 value.
	KindNumber
	// KindError holds a FormulaError value.
	KindError
)

// Value is the tagged Text/Number/Error union a cell resolves to.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
	Err    FormulaError
}

// TextValue builds a Value of kind Text.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// NumberValue builds a Value of kind Number.
func NumberValue(n float64) Value {
	return Value{Kind: KindNumber, Number: n}
}

// ErrorValue builds a Value of kind Error.
func ErrorValue(err FormulaError) Value {
	return Value{Kind: KindError, Err: err}
}

// String renders v the way Sheet.PrintValues does: the literal text for
// KindText, a canonical decimal form for KindNumber, and the error token
// for KindError. Numeric formatting goes through shopspring/decimal so the
// displayed form is the shortest round-trip decimal string rather than
// Go's default float formatting (which can fall back to scientific
// notation at ranges a spreadsheet user would not expect).
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return decimal.NewFromFloat(v.Number).String()
	case KindError:
		return v.Err.Token()
	default:
		invariantViolation("unknown ValueKind %d", v.Kind)
		return ""
	}
}
