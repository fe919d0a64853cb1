package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Well-known part names inside an xlsx package.
const (
	RelationshipsPart = "xl/_rels/workbook.xml.rels"
	WorkbookPart      = "xl/workbook.xml"
	SharedStringsPart = "xl/sharedStrings.xml"
)

// SheetEntry describes one sheet listed in the workbook part.
type SheetEntry struct {
	// Name is the sheet tab name.
	Name string
	// Part is the package path of the worksheet part.
	Part string
	// State is "visible", "hidden" or "veryHidden".
	State string
}

// Hidden reports whether the sheet is not visible in the workbook.
func (s SheetEntry) Hidden() bool {
	return s.State == "hidden" || s.State == "veryHidden"
}

// WorkbookIndex holds the workbook-level lookups needed to stream sheets.
// It is built once by LoadWorkbookIndex and never modified afterwards.
type WorkbookIndex struct {
	rels          map[string]string
	sheets        []SheetEntry
	sharedStrings []string
}

// LoadWorkbookIndex reads the relationships, workbook and shared-strings parts.
func LoadWorkbookIndex(fsys fs.FS) (*WorkbookIndex, error) {
	idx := &WorkbookIndex{rels: make(map[string]string)}

	if err := idx.loadRelationships(fsys); err != nil {
		return nil, err
	}
	if err := idx.loadSheets(fsys); err != nil {
		return nil, err
	}
	if err := idx.loadSharedStrings(fsys); err != nil {
		return nil, err
	}
	return idx, nil
}

// SheetCount returns the number of sheets in workbook order.
func (idx *WorkbookIndex) SheetCount() int {
	return len(idx.sheets)
}

// Sheet returns the i-th sheet entry.
func (idx *WorkbookIndex) Sheet(i int) SheetEntry {
	return idx.sheets[i]
}

// Sheets returns a copy of the ordered sheet list.
func (idx *WorkbookIndex) Sheets() []SheetEntry {
	return append([]SheetEntry(nil), idx.sheets...)
}

// Relationship returns the resolved part path for a relationship id.
func (idx *WorkbookIndex) Relationship(id string) (string, bool) {
	p, ok := idx.rels[id]
	return p, ok
}

// SharedStringCount returns the number of shared string items.
func (idx *WorkbookIndex) SharedStringCount() int {
	return len(idx.sharedStrings)
}

// SharedString returns the shared string at index.
func (idx *WorkbookIndex) SharedString(index int) (string, error) {
	if index < 0 || index >= len(idx.sharedStrings) {
		return "", fmt.Errorf("%w: shared string index %d out of range [0,%d)", ErrReference, index, len(idx.sharedStrings))
	}
	return idx.sharedStrings[index], nil
}

func (idx *WorkbookIndex) loadRelationships(fsys fs.FS) error {
	p, err := openPart(fsys, RelationshipsPart)
	if err != nil {
		return err
	}
	defer p.Close()

	if _, ok, err := p.descend("Relationships"); err != nil || !ok {
		return err
	}
	for {
		se, ok, err := p.nextChild()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if se.Name.Local == "Relationship" {
			id, _ := attr(se, "Id")
			target, _ := attr(se, "Target")
			idx.rels[id] = resolveTarget(target)
		}
		if err := p.skip(); err != nil {
			return err
		}
	}
}

func (idx *WorkbookIndex) loadSheets(fsys fs.FS) error {
	p, err := openPart(fsys, WorkbookPart)
	if err != nil {
		return err
	}
	defer p.Close()

	if _, ok, err := p.descend("sheets"); err != nil || !ok {
		return err
	}
	for {
		se, ok, err := p.nextChild()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if se.Name.Local == "sheet" {
			entry, err := idx.sheetEntry(se)
			if err != nil {
				return err
			}
			idx.sheets = append(idx.sheets, entry)
		}
		if err := p.skip(); err != nil {
			return err
		}
	}
}

func (idx *WorkbookIndex) sheetEntry(se xml.StartElement) (SheetEntry, error) {
	name, _ := attr(se, "name")
	rid, _ := nsAttr(se, "id")
	part, ok := idx.rels[rid]
	if !ok {
		return SheetEntry{}, fmt.Errorf("%w: sheet %q references unknown relationship %q", ErrFormat, name, rid)
	}
	state, ok := attr(se, "state")
	if !ok {
		state = "visible"
	}
	return SheetEntry{Name: name, Part: part, State: state}, nil
}

func (idx *WorkbookIndex) loadSharedStrings(fsys fs.FS) error {
	p, err := openPart(fsys, SharedStringsPart)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer p.Close()

	if _, ok, err := p.descend("sst"); err != nil || !ok {
		return err
	}
	for {
		se, ok, err := p.nextChild()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if se.Name.Local != "si" {
			if err := p.skip(); err != nil {
				return err
			}
			continue
		}
		s, err := readRichText(p)
		if err != nil {
			return err
		}
		idx.sharedStrings = append(idx.sharedStrings, s)
	}
}

// readRichText reads an si or is element: direct t text plus the t text
// of every r run, concatenated in document order.
func readRichText(p *xmlPart) (string, error) {
	var sb strings.Builder
	for {
		se, ok, err := p.nextChild()
		if err != nil {
			return "", err
		}
		if !ok {
			return sb.String(), nil
		}
		switch se.Name.Local {
		case "t":
			t, err := p.text()
			if err != nil {
				return "", err
			}
			sb.WriteString(t)
		case "r":
			if err := readRun(p, &sb); err != nil {
				return "", err
			}
		default:
			if err := p.skip(); err != nil {
				return "", err
			}
		}
	}
}

func readRun(p *xmlPart, sb *strings.Builder) error {
	for {
		se, ok, err := p.nextChild()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if se.Name.Local != "t" {
			if err := p.skip(); err != nil {
				return err
			}
			continue
		}
		t, err := p.text()
		if err != nil {
			return err
		}
		sb.WriteString(t)
	}
}

// resolveTarget turns a workbook relationship target into a package path.
func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(strings.TrimPrefix(target, "/"))
	}
	return path.Clean("xl/" + target)
}
