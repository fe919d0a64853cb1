package xlsxtext

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/xlsxtext-go/pkg/xlsxtext/models"
)

func extractFixture(t *testing.T) string {
	t.Helper()
	return writeWorkbook(t,
		[]string{"Data", "Notes", "Empty"},
		[]string{
			`<sheetData>` +
				`<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>` +
				`<row r="2"><c r="A2"/><c r="B2"/></row>` +
				`<row r="3"><c r="A3"><v>1</v></c><c r="C3"><v>2</v></c></row>` +
				`<row r="4"><c r="B4"><v>3</v></c></row>` +
				`</sheetData>`,
			`<sheetData><row r="2"><c r="B2" t="inlineStr"><is><t>note</t></is></c></row></sheetData>`,
			`<sheetData/>`,
		},
		[]string{"<t>id</t>", "<t>name</t>"})
}

func TestExtract(t *testing.T) {
	path := extractFixture(t)

	wb, err := Extract(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(path), wb.BookName)
	require.Len(t, wb.Sheets, 3)

	data := wb.Sheets[0]
	assert.Equal(t, "Data", data.Name)
	assert.Equal(t, "A1:C4", data.Dimension)
	require.Len(t, data.Rows, 4)
	assert.Equal(t, models.CellRow{R: 1, Cells: []models.Cell{{Ref: "A1", Value: "id"}, {Ref: "B1", Value: "name"}}}, data.Rows[0])
	assert.Equal(t, 4, data.Rows[3].R)

	assert.Equal(t, "B2", wb.Sheets[1].Dimension)
	assert.Empty(t, wb.Sheets[2].Rows)
	assert.Equal(t, "", wb.Sheets[2].Dimension)
}

func TestExtractOptions(t *testing.T) {
	path := extractFixture(t)

	opts := Options{Sheets: []string{"Data"}, SkipEmptyRows: true, MaxRows: 2}
	wb, err := Extract(path, opts)
	require.NoError(t, err)

	require.Len(t, wb.Sheets, 1)
	rows := wb.Sheets[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].R)
	assert.Equal(t, 3, rows[1].R)
	assert.Equal(t, "A1:C3", wb.Sheets[0].Dimension)
}

func TestExtractSheetError(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"Good", "Bad"},
		[]string{
			`<sheetData><row r="1"><c r="A1"><v>1</v></c></row></sheetData>`,
			`<sheetData><row r="1"><c r="A1" t="s"><v>5</v></c></row></sheetData>`,
		},
		[]string{"<t>only</t>"})

	_, err := Extract(path, DefaultOptions())
	require.ErrorIs(t, err, ErrReference)

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, "Bad", extractionErr.SheetName)

	var cellErr *CellError
	require.True(t, errors.As(err, &cellErr))
	assert.Equal(t, "A1", cellErr.Ref)
}

func TestOptionsShouldIncludeSheet(t *testing.T) {
	r, err := Open(extractFixture(t))
	require.NoError(t, err)
	defer r.Close()
	sheets := r.Sheets()

	tests := []struct {
		opts     Options
		expected []bool
	}{
		{DefaultOptions(), []bool{true, true, true}},
		{Options{Sheets: []string{"Notes", "Missing"}}, []bool{false, true, false}},
	}

	for _, tt := range tests {
		for i, sheet := range sheets {
			assert.Equal(t, tt.expected[i], tt.opts.ShouldIncludeSheet(sheet), "%+v sheet %q", tt.opts, sheet.Name)
		}
	}
}

func TestExtractSkipHidden(t *testing.T) {
	f := newExcelizeWorkbook(t)
	path := filepath.Join(t.TempDir(), "hidden.xlsx")
	require.NoError(t, f.SaveAs(path))

	wb, err := Extract(path, Options{SkipHidden: true})
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 1)
	assert.Equal(t, "Sheet1", wb.Sheets[0].Name)

	wb, err = Extract(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 2)
	assert.True(t, wb.Sheets[1].Hidden)
}

func TestOptionsRowLimitReached(t *testing.T) {
	assert.False(t, Options{}.RowLimitReached(1000))
	assert.False(t, Options{MaxRows: 2}.RowLimitReached(1))
	assert.True(t, Options{MaxRows: 2}.RowLimitReached(2))
}
