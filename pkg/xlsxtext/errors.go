package xlsxtext

import (
	"fmt"

	"github.com/ukaji3/xlsxtext-go/pkg/xlsxtext/parser"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrArchive indicates the package is unopenable or lacks a required part.
	ErrArchive = parser.ErrArchive
	// ErrFormat indicates malformed workbook content.
	ErrFormat = parser.ErrFormat
	// ErrReference indicates a shared string index outside the table.
	ErrReference = parser.ErrReference
	// ErrUnsupportedType indicates a date, error or value-less styled cell.
	ErrUnsupportedType = parser.ErrUnsupportedType
	// ErrUnresolvedCell indicates a cell no resolution rule could settle.
	ErrUnresolvedCell = parser.ErrUnresolvedCell
)

// CellError reports a failure tied to a single cell.
type CellError = parser.CellError

// ExtractionError represents an error while collecting one sheet.
type ExtractionError struct {
	SheetName string
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q: %v", e.SheetName, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Err:       err,
	}
}
