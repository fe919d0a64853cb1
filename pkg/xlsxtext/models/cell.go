// Package models defines the value types produced when streaming a workbook.
package models

// Cell is one resolved cell.
type Cell struct {
	// Ref is the canonical A1-style address.
	Ref string `json:"ref"`
	// Value is the cell text; never absent, possibly empty.
	Value string `json:"value"`
}

// CellRow is one worksheet row in document order. Absent cells are not
// synthesized, so Cells may be sparse.
type CellRow struct {
	// R is the row number from the row element (0 if the attribute is absent).
	R int `json:"r"`
	// Cells holds the row's cells in document order.
	Cells []Cell `json:"c"`
}

// Empty reports whether the row has no cell with a non-empty value.
func (r CellRow) Empty() bool {
	for _, c := range r.Cells {
		if c.Value != "" {
			return false
		}
	}
	return true
}
