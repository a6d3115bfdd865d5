package spreadsheet

import "golang.org/x/exp/maps"

// contentKind discriminates the variant a Cell currently holds.
type contentKind int

const (
	contentEmpty contentKind = iota
	contentText
	contentFormula
)

const (
	escapeSign  = '\''
	formulaSign = '='
)

// Cell holds one spreadsheet cell's variant content, its memoized value,
// and the forward (`used`) / reverse (`users`) dependency edges spec.md §3
// assigns it. A Cell never outlives its Sheet and is never destroyed while
// the Sheet lives; Clear resets its content but keeps the slot (and any
// inbound edges from dependents) in place.
type Cell struct {
	pos   Position
	sheet *Sheet

	kind    contentKind
	text    string   // raw text for contentText (escape retained verbatim)
	formula *Formula // non-nil for contentFormula

	cache *Value // memoized result; only meaningful for contentFormula

	usedOrder []*Cell            // forward edges, insertion order (stable for ReferencedCells)
	users     map[*Cell]struct{} // reverse edges, mirror of usedOrder across the sheet
}

func newCell(pos Position, sheet *Sheet) *Cell {
	return &Cell{
		pos:   pos,
		sheet: sheet,
		users: make(map[*Cell]struct{}),
	}
}

// Position returns the cell's coordinate on its Sheet.
func (c *Cell) Position() Position {
	return c.pos
}

// Set replaces the cell's content, classifying text per spec.md §4.3:
// empty text becomes Empty; text starting with '=' (length > 1) is parsed
// as a Formula; anything else becomes Text. If the formula fails to parse
// or the prospective reference set would introduce a cycle, the cell's
// prior state is left untouched and the corresponding error is returned.
func (c *Cell) Set(text string) error {
	var (
		newKind    contentKind
		newText    string
		newFormula *Formula
	)
	switch {
	case text == "":
		newKind = contentEmpty
	case text[0] == formulaSign && len(text) > 1:
		f, err := ParseFormula(text[1:])
		if err != nil {
			return err
		}
		newKind = contentFormula
		newFormula = f
	default:
		newKind = contentText
		newText = text
	}

	var prospective []*Cell
	if newFormula != nil {
		refs := newFormula.ReferencedCells()
		prospective = make([]*Cell, 0, len(refs))
		seen := make(map[*Cell]struct{}, len(refs))
		for _, pos := range refs {
			used := c.sheet.materialize(pos)
			if _, dup := seen[used]; dup {
				continue
			}
			seen[used] = struct{}{}
			prospective = append(prospective, used)
		}
	}

	if hasCycle(c, prospective) {
		return &CircularDependencyError{At: c.pos}
	}

	c.detachUsed()
	c.kind = newKind
	c.text = newText
	c.formula = newFormula
	c.usedOrder = prospective
	for _, used := range c.usedOrder {
		used.users[c] = struct{}{}
	}

	c.invalidateCache()
	return nil
}

// Clear resets the cell to Empty. It always succeeds: Empty introduces no
// references, so the cycle check trivially passes. Outbound edges this
// cell held are torn down; inbound edges from its dependents are
// preserved, now dangling against an Empty cell.
func (c *Cell) Clear() {
	if err := c.Set(""); err != nil {
		invariantViolation("Clear (Set with empty text) unexpectedly failed: %v", err)
	}
}

// detachUsed removes c from every current neighbor's users set and clears
// c's own forward edges, ahead of installing a new set.
func (c *Cell) detachUsed() {
	for _, used := range c.usedOrder {
		delete(used.users, c)
	}
	c.usedOrder = nil
}

// Value dispatches on the cell's variant per spec.md §4.3: Empty yields
// Text(""); Text(s) strips a leading escape sign for display only; Formula
// evaluates lazily on first read after invalidation and memoizes the
// result.
func (c *Cell) Value() Value {
	switch c.kind {
	case contentEmpty:
		return TextValue("")
	case contentText:
		if len(c.text) > 0 && c.text[0] == escapeSign {
			return TextValue(c.text[1:])
		}
		return TextValue(c.text)
	case contentFormula:
		if c.cache == nil {
			v := c.formula.Evaluate(c.sheet.lookup)
			c.cache = &v
		}
		return *c.cache
	default:
		invariantViolation("unknown contentKind %d", c.kind)
		return Value{}
	}
}

// Text returns the cell's raw text per spec.md §4.3: "" for Empty, s
// verbatim (escape retained) for Text, and "=" + the formula's canonical
// expression for Formula.
func (c *Cell) Text() string {
	switch c.kind {
	case contentEmpty:
		return ""
	case contentText:
		return c.text
	case contentFormula:
		return string(formulaSign) + c.formula.Expression()
	default:
		invariantViolation("unknown contentKind %d", c.kind)
		return ""
	}
}

// ReferencedCells returns the cell's current forward references, in stable
// (insertion) order.
func (c *Cell) ReferencedCells() []Position {
	out := make([]Position, len(c.usedOrder))
	for i, used := range c.usedOrder {
		out[i] = used.pos
	}
	return out
}

// IsReferenced reports whether any other cell currently references c.
func (c *Cell) IsReferenced() bool {
	return len(c.users) > 0
}

// invalidateCache clears c's memoized value (if any) and recurses into
// every dependent, per spec.md §4.5. c itself always propagates to its
// users regardless of whether it had a cache to clear — a Text/Empty cell
// never has one, and a never-read Formula cell's nil cache says nothing
// about whether ITS dependents are stale. The `cache == nil` prune only
// applies to the reverse-edge descendants reached via walk: the
// acyclicity invariant (enforced by hasCycle at every Set) guarantees
// that a descendant's nil cache means its own dependents were already
// invalidated by whichever earlier edit cleared it.
func (c *Cell) invalidateCache() {
	c.cache = nil
	visited := make(map[*Cell]struct{})
	var walk func(x *Cell)
	walk = func(x *Cell) {
		if _, seen := visited[x]; seen {
			return
		}
		visited[x] = struct{}{}
		if x.cache == nil {
			return
		}
		x.cache = nil
		for user := range maps.Clone(x.users) {
			walk(user)
		}
	}
	for user := range maps.Clone(c.users) {
		walk(user)
	}
}
