package parser

import (
	"fmt"

	"github.com/ukaji3/xlsxtext-go/pkg/xlsxtext/models"
)

// Bounds is an inclusive rectangle of cell positions.
type Bounds struct {
	MinCol, MinRow int
	MaxCol, MaxRow int
}

// DataBounds finds the bounding box of cells with a non-empty value.
// It reports false when every cell is empty.
func DataBounds(rows []models.CellRow) (Bounds, bool) {
	var b Bounds
	found := false

	for _, row := range rows {
		for _, cell := range row.Cells {
			if cell.Value == "" {
				continue
			}
			ref, err := ParseCellReference(cell.Ref)
			if err != nil {
				continue
			}
			if !found {
				b = Bounds{MinCol: ref.Column, MinRow: ref.Row, MaxCol: ref.Column, MaxRow: ref.Row}
				found = true
				continue
			}
			b.MinCol = min(b.MinCol, ref.Column)
			b.MinRow = min(b.MinRow, ref.Row)
			b.MaxCol = max(b.MaxCol, ref.Column)
			b.MaxRow = max(b.MaxRow, ref.Row)
		}
	}

	return b, found
}

// Dimension returns the used range of rows in "A1:D10" notation, or "" if
// rows hold no data.
func Dimension(rows []models.CellRow) string {
	b, ok := DataBounds(rows)
	if !ok {
		return ""
	}
	start := CellReference{Column: b.MinCol, Row: b.MinRow}
	end := CellReference{Column: b.MaxCol, Row: b.MaxRow}
	if start == end {
		return start.String()
	}
	return fmt.Sprintf("%s:%s", start, end)
}
