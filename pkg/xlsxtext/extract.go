package xlsxtext

import (
	"path/filepath"

	"github.com/ukaji3/xlsxtext-go/pkg/xlsxtext/models"
	"github.com/ukaji3/xlsxtext-go/pkg/xlsxtext/parser"
)

// Extract reads the selected sheets of the workbook at path into memory.
func Extract(path string, opts Options) (*models.WorkbookData, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	sheets, err := ExtractFrom(r, opts)
	if err != nil {
		return nil, err
	}
	return &models.WorkbookData{
		BookName: filepath.Base(path),
		Sheets:   sheets,
	}, nil
}

// ExtractFrom collects the remaining sheets of r that opts selects.
func ExtractFrom(r *Reader, opts Options) ([]models.SheetData, error) {
	sheets := []models.SheetData{}
	for {
		entry, ok := r.PeekSheet()
		if !ok {
			return sheets, nil
		}
		if !opts.ShouldIncludeSheet(entry) {
			if err := r.SkipSheet(); err != nil {
				return nil, NewExtractionError(entry.Name, err)
			}
			continue
		}
		if _, err := r.AdvanceSheet(); err != nil {
			return nil, NewExtractionError(r.nextSheetName(), err)
		}

		sheet, err := collectSheet(r.Sheet(), opts)
		if err != nil {
			return nil, NewExtractionError(r.SheetName(), err)
		}
		sheet.Hidden = r.SheetEntry().Hidden()
		sheets = append(sheets, sheet)
	}
}

func collectSheet(s *parser.SheetStream, opts Options) (models.SheetData, error) {
	data := models.SheetData{Name: s.Name()}
	for !opts.RowLimitReached(len(data.Rows)) {
		ok, err := s.AdvanceRow()
		if err != nil {
			return data, err
		}
		if !ok {
			break
		}
		row := models.CellRow{R: s.RowNumber(), Cells: s.CurrentRow()}
		if opts.SkipEmptyRows && row.Empty() {
			continue
		}
		data.Rows = append(data.Rows, row)
	}
	data.Dimension = parser.Dimension(data.Rows)
	return data, nil
}

// nextSheetName names the sheet AdvanceSheet last tried to open.
func (r *Reader) nextSheetName() string {
	if r.next == 0 || r.next > r.index.SheetCount() {
		return ""
	}
	return r.index.Sheet(r.next - 1).Name
}
