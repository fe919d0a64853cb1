package parser

import (
	"fmt"
	"strings"
	"testing/fstest"
)

const (
	nsMain = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRel  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// testSheet is one worksheet of a hand-built package.
type testSheet struct {
	name  string
	state string
	body  string
}

// newPackage builds an in-memory package with the given sheets and shared strings.
// Passing nil sharedStrings omits the shared strings part entirely.
func newPackage(sheets []testSheet, sharedStrings []string) fstest.MapFS {
	fsys := fstest.MapFS{}

	var rels, entries strings.Builder
	rels.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	rels.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	entries.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	entries.WriteString(`<workbook xmlns="` + nsMain + `" xmlns:r="` + nsRel + `"><sheets>`)
	for i, s := range sheets {
		id := fmt.Sprintf("rId%d", i+1)
		part := fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		fmt.Fprintf(&rels, `<Relationship Id="%s" Type="%s/worksheet" Target="%s"/>`, id, nsRel, part)
		state := ""
		if s.state != "" {
			state = fmt.Sprintf(` state="%s"`, s.state)
		}
		fmt.Fprintf(&entries, `<sheet name="%s" sheetId="%d"%s r:id="%s"/>`, s.name, i+1, state, id)
		fsys["xl/"+part] = &fstest.MapFile{Data: []byte(worksheet(s.body))}
	}
	fmt.Fprintf(&rels, `<Relationship Id="rIdStyles" Type="%s/styles" Target="styles.xml"/>`, nsRel)
	rels.WriteString(`</Relationships>`)
	entries.WriteString(`</sheets></workbook>`)

	fsys[RelationshipsPart] = &fstest.MapFile{Data: []byte(rels.String())}
	fsys[WorkbookPart] = &fstest.MapFile{Data: []byte(entries.String())}
	if sharedStrings != nil {
		fsys[SharedStringsPart] = &fstest.MapFile{Data: []byte(sst(sharedStrings...))}
	}
	return fsys
}

func worksheet(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<worksheet xmlns="` + nsMain + `" xmlns:r="` + nsRel + `">` + body + `</worksheet>`
}

// sst builds a shared strings part whose items are raw si inner XML.
func sst(items ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	fmt.Fprintf(&b, `<sst xmlns="%s" count="%d" uniqueCount="%d">`, nsMain, len(items), len(items))
	for _, item := range items {
		b.WriteString("<si>" + item + "</si>")
	}
	b.WriteString("</sst>")
	return b.String()
}

// text wraps s as a plain shared string item.
func text(s string) string {
	return "<t>" + s + "</t>"
}
