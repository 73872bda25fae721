package deck

import (
	"errors"
	"fmt"
)

// Table and chart mutation errors.
var (
	ErrOverlappingMerge     = errors.New("deck: merge span overlaps an existing merge")
	ErrOutOfRange           = errors.New("deck: index out of range")
	ErrSeriesLengthMismatch = errors.New("deck: series length does not match category count")
)

// Cell is one cell of a table grid. A merge is recorded on its origin
// cell via RowSpan/ColSpan; the covered cells carry continuation
// flags and contribute no content of their own.
type Cell struct {
	Body      *TextBody
	RowSpan   int
	ColSpan   int
	HMerge    bool   // covered by a horizontal merge to the left
	VMerge    bool   // covered by a vertical merge above
	FillColor string // "RRGGBB" hex, empty inherits the table style

	table *Table
}

// Text returns the cell's plain text.
func (c *Cell) Text() string {
	if c.Body == nil {
		return ""
	}
	return c.Body.Text()
}

// SetText replaces the cell's content with plain text.
func (c *Cell) SetText(text string) {
	c.Body.SetText(text)
}

// SetFill sets the cell's solid background color as "RRGGBB" hex.
func (c *Cell) SetFill(hex string) {
	c.FillColor = hex
	if c.table != nil {
		c.table.touch()
	}
}

// merged reports whether the cell participates in any merge span.
func (c *Cell) merged() bool {
	return c.RowSpan > 1 || c.ColSpan > 1 || c.HMerge || c.VMerge
}

// Table is a rectangular grid of cells. Every row always has the same
// column count; merge spans never overlap and never extend past the
// grid.
type Table struct {
	baseShape
	rows       [][]*Cell
	colWidths  []EMU
	rowHeights []EMU
	// FirstRowHeader styles the first row as a header row.
	FirstRowHeader bool
}

// Kind returns KindTable.
func (t *Table) Kind() ShapeKind { return KindTable }

// newTable builds an unattached rows x cols table with uniform column
// widths and row heights derived from the overall extent.
func newTable(rows, cols int, width, height EMU) *Table {
	t := &Table{}
	t.rows = make([][]*Cell, rows)
	for i := range t.rows {
		t.rows[i] = make([]*Cell, cols)
		for j := range t.rows[i] {
			t.rows[i][j] = t.newCell()
		}
	}
	t.colWidths = make([]EMU, cols)
	for j := range t.colWidths {
		t.colWidths[j] = width / EMU(cols)
	}
	t.rowHeights = make([]EMU, rows)
	for i := range t.rowHeights {
		t.rowHeights[i] = height / EMU(rows)
	}
	return t
}

func (t *Table) newCell() *Cell {
	c := &Cell{Body: NewTextBody(), RowSpan: 1, ColSpan: 1, table: t}
	if t.slide != nil {
		c.Body.attach(t.slide)
	}
	return c
}

// attach wires the table's cells to the owning slide.
func (t *Table) attach(s *Slide) {
	t.slide = s
	for _, row := range t.rows {
		for _, c := range row {
			c.table = t
			if c.Body != nil {
				c.Body.attach(s)
			}
		}
	}
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return len(t.rows) }

// Cols returns the number of columns.
func (t *Table) Cols() int {
	if len(t.rows) == 0 {
		return len(t.colWidths)
	}
	return len(t.rows[0])
}

// Cell returns the cell at (row, col).
func (t *Table) Cell(row, col int) (*Cell, error) {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= t.Cols() {
		return nil, fmt.Errorf("%w: cell (%d,%d) in %dx%d table", ErrOutOfRange, row, col, t.Rows(), t.Cols())
	}
	return t.rows[row][col], nil
}

// Cells returns a read-only row-major view of the grid. The slices
// are copies; mutating the table while iterating a previously obtained
// view is undefined.
func (t *Table) Cells() [][]*Cell {
	out := make([][]*Cell, len(t.rows))
	for i, row := range t.rows {
		out[i] = make([]*Cell, len(row))
		copy(out[i], row)
	}
	return out
}

// SetColumnWidth sets the width of one column.
func (t *Table) SetColumnWidth(col int, w EMU) error {
	if col < 0 || col >= len(t.colWidths) {
		return fmt.Errorf("%w: column %d", ErrOutOfRange, col)
	}
	t.colWidths[col] = w
	t.touch()
	return nil
}

// SetRowHeight sets the height of one row.
func (t *Table) SetRowHeight(row int, h EMU) error {
	if row < 0 || row >= len(t.rowHeights) {
		return fmt.Errorf("%w: row %d", ErrOutOfRange, row)
	}
	t.rowHeights[row] = h
	t.touch()
	return nil
}

// MergeCells merges the rectangular span from (r1,c1) to (r2,c2)
// inclusive. The span must lie within the grid and must not intersect
// any existing merge; on failure the grid is unchanged.
func (t *Table) MergeCells(r1, c1, r2, c2 int) error {
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	if r1 < 0 || r2 >= t.Rows() || c1 < 0 || c2 >= t.Cols() {
		return fmt.Errorf("%w: span (%d,%d)-(%d,%d) in %dx%d table", ErrOutOfRange, r1, c1, r2, c2, t.Rows(), t.Cols())
	}
	if r1 == r2 && c1 == c2 {
		return nil // single cell, nothing to merge
	}

	// Validate before mutating: the whole span must be merge-free.
	for r := r1; r <= r2; r++ {
		for c := c1; c <= c2; c++ {
			if t.rows[r][c].merged() {
				return fmt.Errorf("%w: cell (%d,%d) already merged", ErrOverlappingMerge, r, c)
			}
		}
	}

	origin := t.rows[r1][c1]
	origin.RowSpan = r2 - r1 + 1
	origin.ColSpan = c2 - c1 + 1
	for r := r1; r <= r2; r++ {
		for c := c1; c <= c2; c++ {
			if r == r1 && c == c1 {
				continue
			}
			cell := t.rows[r][c]
			cell.HMerge = c > c1
			cell.VMerge = r > r1
		}
	}
	t.touch()
	return nil
}

// InsertRow inserts a row of empty cells at index (0..Rows). Vertical
// merges straddling the insertion point grow by one row; the new
// cells inside them become continuations.
func (t *Table) InsertRow(index int) error {
	if index < 0 || index > t.Rows() {
		return fmt.Errorf("%w: row index %d", ErrOutOfRange, index)
	}
	cols := t.Cols()
	row := make([]*Cell, cols)
	for j := 0; j < cols; j++ {
		row[j] = t.newCell()
	}

	// Extend merges that span across the insertion point.
	for r := 0; r < index && r < len(t.rows); r++ {
		for c := 0; c < cols; c++ {
			origin := t.rows[r][c]
			if origin.RowSpan > 1 && r < index && index <= r+origin.RowSpan-1 {
				for cc := c; cc < c+origin.ColSpan && cc < cols; cc++ {
					row[cc].VMerge = true
					row[cc].HMerge = cc > c
				}
				origin.RowSpan++
			}
		}
	}

	t.rows = append(t.rows, nil)
	copy(t.rows[index+1:], t.rows[index:])
	t.rows[index] = row

	height := EMU(0)
	if len(t.rowHeights) > 0 {
		height = t.rowHeights[0]
	}
	t.rowHeights = append(t.rowHeights, 0)
	copy(t.rowHeights[index+1:], t.rowHeights[index:])
	t.rowHeights[index] = height

	t.touch()
	return nil
}

// InsertColumn inserts a column of empty cells at index (0..Cols).
// Horizontal merges straddling the insertion point grow by one
// column.
func (t *Table) InsertColumn(index int) error {
	if index < 0 || index > t.Cols() {
		return fmt.Errorf("%w: column index %d", ErrOutOfRange, index)
	}

	grow := make([]bool, len(t.rows)) // rows whose new cell joins a merge
	hOrigin := make([]bool, len(t.rows))
	for r := range t.rows {
		for c := 0; c < index && c < len(t.rows[r]); c++ {
			origin := t.rows[r][c]
			if origin.ColSpan > 1 && index <= c+origin.ColSpan-1 {
				for rr := r; rr < r+origin.RowSpan && rr < len(t.rows); rr++ {
					grow[rr] = true
					hOrigin[rr] = rr > r
				}
				origin.ColSpan++
			}
		}
	}

	for r := range t.rows {
		cell := t.newCell()
		if grow[r] {
			cell.HMerge = true
			cell.VMerge = hOrigin[r]
		}
		t.rows[r] = append(t.rows[r], nil)
		copy(t.rows[r][index+1:], t.rows[r][index:])
		t.rows[r][index] = cell
	}

	width := EMU(0)
	if len(t.colWidths) > 0 {
		width = t.colWidths[0]
	}
	t.colWidths = append(t.colWidths, 0)
	copy(t.colWidths[index+1:], t.colWidths[index:])
	t.colWidths[index] = width

	t.touch()
	return nil
}

// RemoveRow deletes the row at index. Vertical merges straddling the
// row shrink by one; when the removed row holds a merge origin, the
// origin moves to the next row of the span.
func (t *Table) RemoveRow(index int) error {
	if index < 0 || index >= t.Rows() {
		return fmt.Errorf("%w: row index %d", ErrOutOfRange, index)
	}

	// Shrink merges that start above the removed row.
	for r := 0; r < index; r++ {
		for c := 0; c < t.Cols(); c++ {
			origin := t.rows[r][c]
			if origin.RowSpan > 1 && index <= r+origin.RowSpan-1 {
				origin.RowSpan--
			}
		}
	}

	// Move merge origins out of the removed row. The continuation
	// cells on the new origin row no longer have a span row above
	// them, so they become horizontal continuations only.
	for c := 0; c < t.Cols(); c++ {
		cell := t.rows[index][c]
		if cell.RowSpan > 1 && index+1 < t.Rows() {
			moved := *cell
			moved.RowSpan--
			t.rows[index+1][c] = &moved
			for cc := c + 1; cc < c+moved.ColSpan && cc < t.Cols(); cc++ {
				t.rows[index+1][cc].HMerge = true
				t.rows[index+1][cc].VMerge = false
			}
		}
	}

	t.rows = append(t.rows[:index], t.rows[index+1:]...)
	t.rowHeights = append(t.rowHeights[:index], t.rowHeights[index+1:]...)
	t.touch()
	return nil
}

// validateGrid checks rectangularity and merge-span integrity. It is
// run after deserialization and before save.
func (t *Table) validateGrid() error {
	cols := len(t.colWidths)
	for i, row := range t.rows {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, grid has %d columns", ErrSchemaViolation, i, len(row), cols)
		}
	}
	for r, row := range t.rows {
		for c, cell := range row {
			if cell.RowSpan > 1 && r+cell.RowSpan > len(t.rows) {
				return fmt.Errorf("%w: merge at (%d,%d) extends past last row", ErrSchemaViolation, r, c)
			}
			if cell.ColSpan > 1 && c+cell.ColSpan > cols {
				return fmt.Errorf("%w: merge at (%d,%d) extends past last column", ErrSchemaViolation, r, c)
			}
		}
	}
	return nil
}
