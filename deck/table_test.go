package deck

import (
	"errors"
	"testing"
)

func buildTable(t *testing.T, rows, cols int) *Table {
	t.Helper()
	prs := New()
	slide, err := prs.AddSlide(nil)
	if err != nil {
		t.Fatalf("Failed to add slide: %v", err)
	}
	tbl, err := slide.AddTable(rows, cols, Inches(1), Inches(1), Inches(6), Inches(3))
	if err != nil {
		t.Fatalf("Failed to add table: %v", err)
	}
	return tbl
}

func TestTableDimensions(t *testing.T) {
	tbl := buildTable(t, 3, 4)
	if tbl.Rows() != 3 || tbl.Cols() != 4 {
		t.Fatalf("Table is %dx%d, want 3x4", tbl.Rows(), tbl.Cols())
	}
	if tbl.colWidths[0] != Inches(6)/4 {
		t.Errorf("Default column width = %v", tbl.colWidths[0])
	}
	if tbl.rowHeights[0] != Inches(3)/3 {
		t.Errorf("Default row height = %v", tbl.rowHeights[0])
	}
	if _, err := tbl.Cell(3, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Cell(3,0) error = %v, want ErrOutOfRange", err)
	}
	if _, err := tbl.Cell(0, -1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Cell(0,-1) error = %v, want ErrOutOfRange", err)
	}
}

func TestTableCellText(t *testing.T) {
	tbl := buildTable(t, 2, 2)
	cell, err := tbl.Cell(0, 1)
	if err != nil {
		t.Fatalf("Cell lookup failed: %v", err)
	}
	cell.SetText("Revenue")
	if got := cell.Text(); got != "Revenue" {
		t.Errorf("Cell text = %q", got)
	}
	cell.SetFill("4472C4")
	if cell.FillColor != "4472C4" {
		t.Errorf("Cell fill = %q", cell.FillColor)
	}
}

func TestMergeCells(t *testing.T) {
	tbl := buildTable(t, 3, 3)
	if err := tbl.MergeCells(0, 0, 1, 1); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	origin, _ := tbl.Cell(0, 0)
	if origin.RowSpan != 2 || origin.ColSpan != 2 {
		t.Errorf("Origin span = %dx%d, want 2x2", origin.RowSpan, origin.ColSpan)
	}
	right, _ := tbl.Cell(0, 1)
	if !right.HMerge || right.VMerge {
		t.Errorf("Cell (0,1) flags: HMerge=%v VMerge=%v, want HMerge only", right.HMerge, right.VMerge)
	}
	below, _ := tbl.Cell(1, 0)
	if below.HMerge || !below.VMerge {
		t.Errorf("Cell (1,0) flags: HMerge=%v VMerge=%v, want VMerge only", below.HMerge, below.VMerge)
	}
	diag, _ := tbl.Cell(1, 1)
	if !diag.HMerge || !diag.VMerge {
		t.Errorf("Cell (1,1) should carry both continuation flags")
	}
	if err := tbl.validateGrid(); err != nil {
		t.Errorf("Grid invalid after merge: %v", err)
	}
}

func TestMergeCellsNormalizesCorners(t *testing.T) {
	tbl := buildTable(t, 3, 3)
	// Corners given in reverse order describe the same span.
	if err := tbl.MergeCells(2, 2, 1, 1); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	origin, _ := tbl.Cell(1, 1)
	if origin.RowSpan != 2 || origin.ColSpan != 2 {
		t.Errorf("Origin span = %dx%d, want 2x2", origin.RowSpan, origin.ColSpan)
	}
}

func TestMergeCellsRejectsOverlap(t *testing.T) {
	tbl := buildTable(t, 3, 3)
	if err := tbl.MergeCells(0, 0, 1, 1); err != nil {
		t.Fatalf("First merge failed: %v", err)
	}
	err := tbl.MergeCells(1, 1, 2, 2)
	if !errors.Is(err, ErrOverlappingMerge) {
		t.Fatalf("Expected ErrOverlappingMerge, got %v", err)
	}
	// The failed call must not have touched the grid.
	corner, _ := tbl.Cell(2, 2)
	if corner.merged() {
		t.Error("Failed merge mutated cell (2,2)")
	}
	if err := tbl.validateGrid(); err != nil {
		t.Errorf("Grid invalid after rejected merge: %v", err)
	}
}

func TestMergeCellsOutOfRange(t *testing.T) {
	tbl := buildTable(t, 2, 2)
	if err := tbl.MergeCells(0, 0, 2, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
}

func TestMergeSingleCellIsNoop(t *testing.T) {
	tbl := buildTable(t, 2, 2)
	if err := tbl.MergeCells(1, 1, 1, 1); err != nil {
		t.Fatalf("Single-cell merge failed: %v", err)
	}
	cell, _ := tbl.Cell(1, 1)
	if cell.merged() {
		t.Error("Single-cell merge should leave the cell unmerged")
	}
}

func TestInsertRowThroughMerge(t *testing.T) {
	tbl := buildTable(t, 3, 3)
	if err := tbl.MergeCells(0, 0, 2, 0); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if err := tbl.InsertRow(1); err != nil {
		t.Fatalf("InsertRow failed: %v", err)
	}
	if tbl.Rows() != 4 {
		t.Fatalf("Rows = %d, want 4", tbl.Rows())
	}
	origin, _ := tbl.Cell(0, 0)
	if origin.RowSpan != 4 {
		t.Errorf("Merge should have grown to span 4 rows, got %d", origin.RowSpan)
	}
	inserted, _ := tbl.Cell(1, 0)
	if !inserted.VMerge {
		t.Error("Inserted cell inside the merge should be a continuation")
	}
	outside, _ := tbl.Cell(1, 1)
	if outside.merged() {
		t.Error("Inserted cell outside the merge should be plain")
	}
	if err := tbl.validateGrid(); err != nil {
		t.Errorf("Grid invalid after insert: %v", err)
	}
}

func TestInsertRowOutsideMerge(t *testing.T) {
	tbl := buildTable(t, 3, 3)
	if err := tbl.MergeCells(1, 0, 2, 0); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	// Inserting above the merge must not grow it.
	if err := tbl.InsertRow(0); err != nil {
		t.Fatalf("InsertRow failed: %v", err)
	}
	origin, _ := tbl.Cell(2, 0)
	if origin.RowSpan != 2 {
		t.Errorf("Merge span = %d, want 2", origin.RowSpan)
	}
}

func TestInsertColumnThroughMerge(t *testing.T) {
	tbl := buildTable(t, 2, 3)
	if err := tbl.MergeCells(0, 0, 0, 2); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if err := tbl.InsertColumn(1); err != nil {
		t.Fatalf("InsertColumn failed: %v", err)
	}
	if tbl.Cols() != 4 {
		t.Fatalf("Cols = %d, want 4", tbl.Cols())
	}
	origin, _ := tbl.Cell(0, 0)
	if origin.ColSpan != 4 {
		t.Errorf("Merge should have grown to span 4 columns, got %d", origin.ColSpan)
	}
	inserted, _ := tbl.Cell(0, 1)
	if !inserted.HMerge {
		t.Error("Inserted cell inside the merge should be a continuation")
	}
	if err := tbl.validateGrid(); err != nil {
		t.Errorf("Grid invalid after insert: %v", err)
	}
}

func TestRemoveRowShrinksMerge(t *testing.T) {
	tbl := buildTable(t, 4, 2)
	if err := tbl.MergeCells(0, 0, 2, 0); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if err := tbl.RemoveRow(1); err != nil {
		t.Fatalf("RemoveRow failed: %v", err)
	}
	if tbl.Rows() != 3 {
		t.Fatalf("Rows = %d, want 3", tbl.Rows())
	}
	origin, _ := tbl.Cell(0, 0)
	if origin.RowSpan != 2 {
		t.Errorf("Merge span = %d, want 2", origin.RowSpan)
	}
	if err := tbl.validateGrid(); err != nil {
		t.Errorf("Grid invalid after removal: %v", err)
	}
}

func TestRemoveRowMovesMergeOrigin(t *testing.T) {
	tbl := buildTable(t, 3, 2)
	if err := tbl.MergeCells(0, 0, 2, 0); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	before, _ := tbl.Cell(0, 0)
	before.SetText("spanning")
	if err := tbl.RemoveRow(0); err != nil {
		t.Fatalf("RemoveRow failed: %v", err)
	}
	origin, _ := tbl.Cell(0, 0)
	if origin.RowSpan != 2 {
		t.Errorf("Moved origin span = %d, want 2", origin.RowSpan)
	}
	if got := origin.Text(); got != "spanning" {
		t.Errorf("Moved origin lost its content: %q", got)
	}
}

func TestRemoveRowOriginWithColumnSpan(t *testing.T) {
	tbl := buildTable(t, 4, 3)
	if err := tbl.MergeCells(0, 0, 2, 1); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if err := tbl.RemoveRow(0); err != nil {
		t.Fatalf("RemoveRow failed: %v", err)
	}

	origin, _ := tbl.Cell(0, 0)
	if origin.RowSpan != 2 || origin.ColSpan != 2 {
		t.Fatalf("Moved origin span = %dx%d, want 2x2", origin.RowSpan, origin.ColSpan)
	}
	if origin.HMerge || origin.VMerge {
		t.Errorf("Moved origin carries continuation flags")
	}

	// The cell right of the moved origin heads no vertical merge; it
	// continues the origin horizontally only.
	right, _ := tbl.Cell(0, 1)
	if !right.HMerge {
		t.Errorf("Continuation at (0,1) lost hMerge")
	}
	if right.VMerge {
		t.Errorf("Continuation at (0,1) kept vMerge with no row above it")
	}

	below, _ := tbl.Cell(1, 0)
	if !below.VMerge || below.HMerge {
		t.Errorf("Continuation at (1,0): hMerge=%v vMerge=%v, want vMerge only", below.HMerge, below.VMerge)
	}
	corner, _ := tbl.Cell(1, 1)
	if !corner.VMerge || !corner.HMerge {
		t.Errorf("Continuation at (1,1): hMerge=%v vMerge=%v, want both", corner.HMerge, corner.VMerge)
	}
	if err := tbl.validateGrid(); err != nil {
		t.Errorf("Grid invalid after removal: %v", err)
	}
}

func TestRowColumnSizing(t *testing.T) {
	tbl := buildTable(t, 2, 2)
	if err := tbl.SetColumnWidth(1, Inches(2)); err != nil {
		t.Fatalf("SetColumnWidth failed: %v", err)
	}
	if err := tbl.SetRowHeight(0, Points(40)); err != nil {
		t.Fatalf("SetRowHeight failed: %v", err)
	}
	if err := tbl.SetColumnWidth(2, Inches(1)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
	if err := tbl.SetRowHeight(-1, Inches(1)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
}
