// Package xlsxtext streams cell text out of xlsx workbooks row by row.
package xlsxtext

import "github.com/ukaji3/xlsxtext-go/pkg/xlsxtext/parser"

// Options configures Extract.
type Options struct {
	// Sheets restricts extraction to the named sheets. Empty means all.
	Sheets []string
	// SkipHidden drops hidden and very hidden sheets.
	SkipHidden bool
	// SkipEmptyRows drops rows without any non-empty cell value.
	SkipEmptyRows bool
	// MaxRows caps the rows kept per sheet. Zero means unlimited.
	MaxRows int
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldIncludeSheet returns whether the sheet is selected by the options.
func (o Options) ShouldIncludeSheet(sheet parser.SheetEntry) bool {
	if o.SkipHidden && sheet.Hidden() {
		return false
	}
	if len(o.Sheets) == 0 {
		return true
	}
	for _, name := range o.Sheets {
		if name == sheet.Name {
			return true
		}
	}
	return false
}

// RowLimitReached returns whether n kept rows exhaust MaxRows.
func (o Options) RowLimitReached(n int) bool {
	return o.MaxRows > 0 && n >= o.MaxRows
}
