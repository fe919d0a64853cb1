// Package parser implements the row streaming engine over SpreadsheetML parts.
package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrArchive indicates the package or one of its required parts cannot be opened.
	ErrArchive = errors.New("archive error")
	// ErrFormat indicates malformed content such as a bad cell reference.
	ErrFormat = errors.New("format error")
	// ErrReference indicates a shared string index outside the table.
	ErrReference = errors.New("reference error")
	// ErrUnsupportedType indicates a cell whose value type cannot be rendered as text.
	ErrUnsupportedType = errors.New("unsupported cell type")
	// ErrUnresolvedCell indicates a cell left without a value by every resolution rule.
	ErrUnresolvedCell = errors.New("unresolved cell")
)

// CellError reports a failure tied to a single cell.
type CellError struct {
	Sheet string
	Ref   string
	Err   error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("sheet %q cell %s: %v", e.Sheet, e.Ref, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

func cellError(sheet, ref string, err error) *CellError {
	return &CellError{
		Sheet: sheet,
		Ref:   ref,
		Err:   err,
	}
}
