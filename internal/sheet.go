package spreadsheet

import (
	"fmt"
	"io"
	"strings"
)

// Sheet is a sparse 2D container of Cells, keyed by Position. It is the
// entry point for every mutating and read operation spec.md §4.6
// describes. A Sheet exclusively owns all of its Cells; Cells hold direct
// *Cell pointers to one another as dependency edges, which stay valid
// because a materialized cell slot is never removed while the Sheet lives.
//
// Sheet is not safe for concurrent use; callers that need that wrap it in
// an external mutex (spec.md §5).
type Sheet struct {
	cells map[Position]*Cell
}

// NewSheet returns an empty Sheet.
func NewSheet() *Sheet {
	return &Sheet{cells: make(map[Position]*Cell)}
}

// materialize returns the Cell at pos, creating an Empty one if absent.
// Used both for direct writes and for dangling references created by a
// formula elsewhere on the sheet.
func (s *Sheet) materialize(pos Position) *Cell {
	if c, ok := s.cells[pos]; ok {
		return c
	}
	c := newCell(pos, s)
	s.cells[pos] = c
	return c
}

// SetCell validates pos, materializes a Cell there if absent, and
// delegates to Cell.Set. It returns *InvalidPositionError, *FormulaParseError,
// or *CircularDependencyError on failure, leaving prior state untouched.
func (s *Sheet) SetCell(pos Position, text string) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Label: pos.Label(), Reason: "out of range"}
	}
	return s.materialize(pos).Set(text)
}

// GetCell returns the cell's view at pos, or false when the slot is
// missing, unmaterialized, or holds Empty content — i.e. whenever its
// Text() is empty. Cells materialized only as dangling-reference targets
// are deliberately invisible here; use GetCellRef to see them. An invalid
// pos also yields false; GetCell reports no error for it.
func (s *Sheet) GetCell(pos Position) (*Cell, bool) {
	if !pos.IsValid() {
		return nil, false
	}
	c, ok := s.cells[pos]
	if !ok || c.Text() == "" {
		return nil, false
	}
	return c, true
}

// GetCellRef returns the raw Cell handle at pos, including cells
// materialized only as dangling-reference targets, or nil if the slot was
// never materialized. Used internally by the dependency graph and by
// formula lookups.
func (s *Sheet) GetCellRef(pos Position) *Cell {
	if !pos.IsValid() {
		return nil
	}
	return s.cells[pos]
}

// ClearCell validates pos and, if a cell is materialized there, clears its
// content to Empty. It is a no-op if the slot is absent.
func (s *Sheet) ClearCell(pos Position) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Label: pos.Label(), Reason: "out of range"}
	}
	if c, ok := s.cells[pos]; ok {
		c.Clear()
	}
	return nil
}

// lookup is the CellLookup a formula cell's Evaluate closes over. An
// absent or unmaterialized cell resolves to Value{Kind: KindText, Text: ""},
// which the formula's numeric coercion (formula.go's resolveCellRef) maps
// to 0.0 the same way an Empty cell does — there is no special case for
// "never written" versus "written empty" at this layer.
func (s *Sheet) lookup(pos Position) Value {
	c := s.GetCellRef(pos)
	if c == nil {
		return TextValue("")
	}
	return c.Value()
}

// PrintableSize returns the smallest bounding box covering every cell
// whose Text() is non-empty, or (0, 0) when no such cell exists: a single
// pass over the sparse map reducing (row+1, col+1) with max per non-empty
// cell, the sparse-map equivalent of the original's farthest-non-empty-
// cell-per-row scan.
func (s *Sheet) PrintableSize() (rows, cols int) {
	for pos, c := range s.cells {
		if c.Text() == "" {
			continue
		}
		if pos.Row+1 > rows {
			rows = pos.Row + 1
		}
		if pos.Col+1 > cols {
			cols = pos.Col + 1
		}
	}
	return rows, cols
}

// PrintValues writes the printable bounding box to out, rows separated by
// '\n' and columns by '\t'. Absent or Empty cells print as an empty field;
// Text cells print their literal value; Number cells print a canonical
// decimal form; Error cells print their token (e.g. "#DIV/0!").
func (s *Sheet) PrintValues(out io.Writer) error {
	return s.printGrid(out, func(c *Cell) string {
		return c.Value().String()
	})
}

// PrintTexts writes the printable bounding box to out the same way
// PrintValues does, but each field is the cell's raw Text() instead of its
// computed Value().
func (s *Sheet) PrintTexts(out io.Writer) error {
	return s.printGrid(out, func(c *Cell) string {
		return c.Text()
	})
}

func (s *Sheet) printGrid(out io.Writer, field func(*Cell) string) error {
	rows, cols := s.PrintableSize()
	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if col > 0 {
				b.WriteByte('\t')
			}
			if c, ok := s.cells[NewPosition(row, col)]; ok {
				b.WriteString(field(c))
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(out, b.String())
	if err != nil {
		return fmt.Errorf("printing sheet: %w", err)
	}
	return nil
}
