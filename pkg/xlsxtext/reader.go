package xlsxtext

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/ukaji3/xlsxtext-go/pkg/xlsxtext/parser"
)

// Reader walks the sheets of one workbook in order.
// A Reader is not safe for concurrent use; open one per goroutine.
type Reader struct {
	fsys   fs.FS
	closer io.Closer
	index  *parser.WorkbookIndex

	next    int
	current *parser.SheetStream
	entry   parser.SheetEntry
}

// Open opens the xlsx file at path.
func Open(path string) (*Reader, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArchive, path, err)
	}
	r, err := newReader(zr, zr)
	if err != nil {
		zr.Close()
		return nil, err
	}
	return r, nil
}

// OpenReader opens an xlsx package held in r.
func OpenReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchive, err)
	}
	return newReader(zr, nil)
}

// OpenFS reads an already opened package. Part names are package paths
// such as "xl/workbook.xml".
func OpenFS(fsys fs.FS) (*Reader, error) {
	return newReader(fsys, nil)
}

func newReader(fsys fs.FS, closer io.Closer) (*Reader, error) {
	index, err := parser.LoadWorkbookIndex(fsys)
	if err != nil {
		return nil, err
	}
	return &Reader{fsys: fsys, closer: closer, index: index}, nil
}

// SheetCount returns the number of sheets in the workbook.
func (r *Reader) SheetCount() int {
	return r.index.SheetCount()
}

// Sheets returns the workbook's sheet list in order.
func (r *Reader) Sheets() []parser.SheetEntry {
	return r.index.Sheets()
}

// Index returns the workbook index built at open.
func (r *Reader) Index() *parser.WorkbookIndex {
	return r.index
}

// AdvanceSheet releases the current sheet and moves to the next one.
// On true, SheetName and Sheet stay valid until the next call or Close.
func (r *Reader) AdvanceSheet() (bool, error) {
	if err := r.releaseSheet(); err != nil {
		return false, err
	}
	if r.next >= r.index.SheetCount() {
		return false, nil
	}

	entry := r.index.Sheet(r.next)
	r.next++
	s, err := parser.OpenSheetStream(r.fsys, r.index, entry)
	if err != nil {
		return false, err
	}
	r.current = s
	r.entry = entry
	return true, nil
}

// PeekSheet returns the entry AdvanceSheet would open next without
// opening it.
func (r *Reader) PeekSheet() (parser.SheetEntry, bool) {
	if r.next >= r.index.SheetCount() {
		return parser.SheetEntry{}, false
	}
	return r.index.Sheet(r.next), true
}

// SkipSheet releases the current sheet and passes over the next one
// without reading its part.
func (r *Reader) SkipSheet() error {
	if err := r.releaseSheet(); err != nil {
		return err
	}
	if r.next < r.index.SheetCount() {
		r.next++
	}
	return nil
}

// SheetName returns the name of the current sheet.
func (r *Reader) SheetName() string {
	return r.entry.Name
}

// SheetEntry returns the index entry of the current sheet.
func (r *Reader) SheetEntry() parser.SheetEntry {
	return r.entry
}

// Sheet returns the row stream of the current sheet, or nil before the
// first AdvanceSheet and after the last one.
func (r *Reader) Sheet() *parser.SheetStream {
	return r.current
}

// Close releases the current sheet and the underlying file.
func (r *Reader) Close() error {
	err := r.releaseSheet()
	r.next = r.index.SheetCount()
	if r.closer != nil {
		err = errors.Join(err, r.closer.Close())
		r.closer = nil
	}
	return err
}

func (r *Reader) releaseSheet() error {
	if r.current == nil {
		return nil
	}
	err := r.current.Close()
	r.current = nil
	r.entry = parser.SheetEntry{}
	return err
}
