package models

// SheetData represents the collected rows of a single sheet.
type SheetData struct {
	// Name is the sheet tab name.
	Name string `json:"name"`
	// Hidden is true for hidden and very hidden sheets.
	Hidden bool `json:"hidden,omitempty"`
	// Dimension is the used range of the emitted cells (e.g. "A1:D10").
	Dimension string `json:"dimension,omitempty"`
	// Rows contains the emitted rows in document order.
	Rows []CellRow `json:"rows,omitempty"`
}
