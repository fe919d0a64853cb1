package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ukaji3/xlsxtext-go/pkg/xlsxtext/models"
	"github.com/ukaji3/xlsxtext-go/pkg/xlsxtext/parser"
)

// DefaultMaxColumns is Excel's column limit (XFD).
const DefaultMaxColumns = 16384

// CSVWriter writes sparse rows as delimited records. Cells are placed in
// the field matching their column; gaps are written as empty fields.
type CSVWriter struct {
	w *csv.Writer

	// MaxColumns bounds the record width. Cells beyond it fail the row.
	MaxColumns int
}

// NewCSVWriter returns a writer using delim as field separator.
func NewCSVWriter(w io.Writer, delim rune) *CSVWriter {
	cw := csv.NewWriter(w)
	cw.Comma = delim
	return &CSVWriter{w: cw, MaxColumns: DefaultMaxColumns}
}

// WriteRow writes one row. Cells must be in document order.
func (c *CSVWriter) WriteRow(cells []models.Cell) error {
	var record []string
	for _, cell := range cells {
		ref, err := parser.ParseCellReference(cell.Ref)
		if err != nil {
			return err
		}
		if ref.Column > c.MaxColumns {
			return fmt.Errorf("cell %s: column %d exceeds limit %d", ref, ref.Column, c.MaxColumns)
		}
		for len(record) < ref.Column-1 {
			record = append(record, "")
		}
		if ref.Column <= len(record) {
			record[ref.Column-1] = cell.Value
			continue
		}
		record = append(record, cell.Value)
	}
	return c.w.Write(record)
}

// WriteSheet writes every row of sheet.
func (c *CSVWriter) WriteSheet(sheet *models.SheetData) error {
	for _, row := range sheet.Rows {
		if err := c.WriteRow(row.Cells); err != nil {
			return err
		}
	}
	return c.Flush()
}

// Flush writes buffered records to the underlying writer.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}
