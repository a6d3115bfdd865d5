// Package spreadsheet implements the core of a spreadsheet evaluation
// engine: a sparse grid of cells that may hold literal text or a formula
// referencing other cells, with values computed lazily, memoized, and
// invalidated transitively when their inputs change. Edits that would
// introduce a dependency cycle are rejected before they are committed.
package spreadsheet
