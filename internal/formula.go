package spreadsheet

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// CellLookup resolves a Position to the Value currently held by the cell at
// that position, as seen by a Formula's Evaluate. A Sheet supplies this by
// closing over itself; tests can supply a plain function.
type CellLookup func(Position) Value

// Formula is the parsed form of a formula cell's expression, reached after
// stripping the leading '='. It is the façade spec.md §4.2 describes:
// Expression (canonical reprint), ReferencedCells (extraction), and
// Evaluate (against a lookup callback).
type Formula struct {
	root Expr
	refs []Position
}

// ParseFormula parses expr (the text after the leading '=') into a Formula.
// It returns a *FormulaParseError if expr cannot be interpreted.
func ParseFormula(expr string) (*Formula, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return nil, &FormulaParseError{Expression: expr, Reason: err.Error()}
	}
	root, rest, err := parseExpr(tokens)
	if err != nil {
		return nil, &FormulaParseError{Expression: expr, Reason: err.Error()}
	}
	if len(rest) != 0 {
		return nil, &FormulaParseError{Expression: expr, Reason: "unexpected trailing tokens"}
	}
	return &Formula{root: root, refs: cellRefs(root)}, nil
}

// Expression returns the canonical reprint of the formula. Reparsing this
// string and reprinting again always yields the same string (idempotent
// round-trip), even when the original input had different whitespace or
// redundant parentheses.
func (f *Formula) Expression() string {
	return sprint(f.root, 0)
}

// ReferencedCells returns the positions the formula references, filtered to
// valid positions only, in the order they first appear in the expression
// tree (left-to-right, depth-first).
func (f *Formula) ReferencedCells() []Position {
	out := make([]Position, 0, len(f.refs))
	for _, p := range f.refs {
		if p.IsValid() {
			out = append(out, p)
		}
	}
	return out
}

// Evaluate computes the formula's value against lookup. Any FormulaError
// raised while resolving a reference, or by arithmetic (division by zero,
// a non-finite result), is caught here and returned as the formula's own
// result rather than propagated as a Go error.
func (f *Formula) Evaluate(lookup CellLookup) Value {
	n, ferr := evalNode(f.root, lookup)
	if ferr != nil {
		return ErrorValue(*ferr)
	}
	return NumberValue(n)
}

// evalNode evaluates e, short-circuiting on the first FormulaError
// encountered in any subtree. This is the result-sum alternative to
// exception-based control flow spec.md §9 calls out as preferable in a
// systems implementation; Go has no exceptions to begin with.
func evalNode(e Expr, lookup CellLookup) (float64, *FormulaError) {
	switch t := e.(type) {
	case ConstExpr:
		return t.Value, nil
	case UnaryExpr:
		x, ferr := evalNode(t.X, lookup)
		if ferr != nil {
			return 0, ferr
		}
		if t.Op == tokenSub {
			return -x, nil
		}
		return x, nil
	case BinaryExpr:
		x, ferr := evalNode(t.X, lookup)
		if ferr != nil {
			return 0, ferr
		}
		y, ferr := evalNode(t.Y, lookup)
		if ferr != nil {
			return 0, ferr
		}
		return applyBinaryOp(t.Op, x, y)
	case CellRefExpr:
		return resolveCellRef(t.Ref, lookup)
	default:
		invariantViolation("unknown Expr type %T", e)
		return 0, nil
	}
}

func applyBinaryOp(op token, x, y float64) (float64, *FormulaError) {
	var result float64
	switch op {
	case tokenAdd:
		result = x + y
	case tokenSub:
		result = x - y
	case tokenMul:
		result = x * y
	case tokenDiv:
		if y == 0 {
			return 0, &FormulaError{Kind: ErrDiv0}
		}
		result = x / y
	default:
		invariantViolation("unknown binary operator %q", op)
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, &FormulaError{Kind: ErrDiv0}
	}
	return result, nil
}

// resolveCellRef implements the lookup-coercion contract of spec.md §4.2:
// an invalid position is #REF!; an absent or Empty cell (which lookup
// reports as Value{Kind: KindText, Text: ""}) is 0.0; a number passes
// through; an empty string is 0.0; any other string, with surrounding
// whitespace trimmed, is parsed as a number consuming the rest of the
// string, giving #ARITHM! if it is a numeral outside float64 range and
// #VALUE! if it is not a number at all; an error value is re-raised.
func resolveCellRef(pos Position, lookup CellLookup) (float64, *FormulaError) {
	if !pos.IsValid() {
		return 0, &FormulaError{Kind: ErrRef}
	}
	v := lookup(pos)
	switch v.Kind {
	case KindNumber:
		return v.Number, nil
	case KindText:
		if v.Text == "" {
			return 0, nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
				// Syntactically a number, just one too large to represent —
				// distinct from "not a number at all".
				return 0, &FormulaError{Kind: ErrArithm}
			}
			return 0, &FormulaError{Kind: ErrValue}
		}
		return n, nil
	case KindError:
		return 0, &v.Err
	default:
		invariantViolation("unknown ValueKind %d", v.Kind)
		return 0, nil
	}
}
