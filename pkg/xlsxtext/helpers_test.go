package xlsxtext

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	nsMain = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRel  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// writeWorkbook writes an xlsx package with one worksheet per body and
// returns its path. Sheets are named after names in order.
func writeWorkbook(t *testing.T, names []string, bodies []string, sharedStrings []string) string {
	t.Helper()

	files := map[string]string{}
	var rels, wb strings.Builder
	rels.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	wb.WriteString(`<workbook xmlns="` + nsMain + `" xmlns:r="` + nsRel + `"><sheets>`)
	for i, name := range names {
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="%s/worksheet" Target="worksheets/sheet%d.xml"/>`, i+1, nsRel, i+1)
		fmt.Fprintf(&wb, `<sheet name="%s" sheetId="%d" r:id="rId%d"/>`, name, i+1, i+1)
		files[fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)] = `<worksheet xmlns="` + nsMain + `">` + bodies[i] + `</worksheet>`
	}
	rels.WriteString(`</Relationships>`)
	wb.WriteString(`</sheets></workbook>`)
	files["xl/_rels/workbook.xml.rels"] = rels.String()
	files["xl/workbook.xml"] = wb.String()

	if sharedStrings != nil {
		var sst strings.Builder
		sst.WriteString(`<sst xmlns="` + nsMain + `">`)
		for _, s := range sharedStrings {
			sst.WriteString("<si>" + s + "</si>")
		}
		sst.WriteString(`</sst>`)
		files["xl/sharedStrings.xml"] = sst.String()
	}

	return writeZip(t, files)
}

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.xlsx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close test file: %v", err)
	}
	return path
}
