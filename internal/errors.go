package spreadsheet

import "fmt"

// InvalidPositionError is returned by ParsePosition for a malformed or
// out-of-range A1-style label, and by Sheet.SetCell / Sheet.ClearCell for
// an invalid Position. Sheet.GetCell and Sheet.GetCellRef do not return it.
type InvalidPositionError struct {
	Label  string
	Reason string
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position %q: %s", e.Label, e.Reason)
}

// FormulaParseError is returned by ParseFormula when the expression text
// cannot be interpreted as a formula. Cell.Set surfaces this unchanged and
// leaves the cell's prior state untouched.
type FormulaParseError struct {
	Expression string
	Reason     string
}

func (e *FormulaParseError) Error() string {
	return fmt.Sprintf("cannot parse formula %q: %s", e.Expression, e.Reason)
}

// CircularDependencyError is returned by Cell.Set / Sheet.SetCell when the
// edit would introduce a cycle in the used/users dependency graph. The
// cell's prior content is left untouched.
type CircularDependencyError struct {
	At Position
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected at %s", e.At)
}

// invariantViolation panics with a message identifying a broken graph
// invariant. These indicate bugs in this package, not bad input, and are
// never meant to be recovered from by a caller.
func invariantViolation(format string, args ...any) {
	panic(fmt.Sprintf("spreadsheet: invariant violation: "+format, args...))
}
