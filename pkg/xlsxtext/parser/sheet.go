package parser

import (
	"encoding/xml"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/ukaji3/xlsxtext-go/pkg/xlsxtext/models"
)

type streamState int

const (
	stateNotStarted streamState = iota
	statePositioned
	stateExhausted
)

// SheetStream iterates the rows of one worksheet lazily.
type SheetStream struct {
	name   string
	index  *WorkbookIndex
	merges *MergeRangeTable
	part   *xmlPart

	state  streamState
	err    error
	rowNum int
	row    []models.Cell
}

// cellNode holds the attributes and inner nodes of one c element.
type cellNode struct {
	ref      CellReference
	style    string
	hasStyle bool
	typ      string
	v        *string
	inline   *string
}

// OpenSheetStream prepares a stream over the worksheet part of entry.
// The part is read twice: once for its merge ranges and once for rows.
func OpenSheetStream(fsys fs.FS, index *WorkbookIndex, entry SheetEntry) (*SheetStream, error) {
	merges, err := LoadMergeRanges(fsys, entry.Part)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", entry.Name, err)
	}

	p, err := openPart(fsys, entry.Part)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", entry.Name, err)
	}
	s := &SheetStream{
		name:   entry.Name,
		index:  index,
		merges: merges,
		part:   p,
	}

	_, ok, err := p.descend("sheetData")
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("sheet %q: %w", entry.Name, err)
	}
	if !ok {
		s.finish(nil)
	}
	return s, nil
}

// Name returns the sheet name.
func (s *SheetStream) Name() string {
	return s.name
}

// Merges returns the sheet's merge range table.
func (s *SheetStream) Merges() *MergeRangeTable {
	return s.merges
}

// CurrentRow returns the cells of the row the stream is positioned on.
func (s *SheetStream) CurrentRow() []models.Cell {
	return s.row
}

// RowNumber returns the r attribute of the current row, or 0 if absent.
func (s *SheetStream) RowNumber() int {
	return s.rowNum
}

// AdvanceRow moves to the next row. It returns false once the sheet is
// exhausted. After an error the stream is exhausted and keeps returning it.
func (s *SheetStream) AdvanceRow() (bool, error) {
	s.row = nil
	s.rowNum = 0
	if s.state == stateExhausted {
		return false, s.err
	}

	for {
		se, ok, err := s.part.nextChild()
		if err != nil {
			return false, s.finish(err)
		}
		if !ok {
			return false, s.finish(nil)
		}
		if se.Name.Local != "row" {
			if err := s.part.skip(); err != nil {
				return false, s.finish(err)
			}
			continue
		}

		if r, ok := attr(se, "r"); ok {
			n, err := strconv.Atoi(r)
			if err != nil {
				return false, s.finish(fmt.Errorf("sheet %q: %w: invalid row number %q", s.name, ErrFormat, r))
			}
			s.rowNum = n
		}
		row, err := s.readRow()
		if err != nil {
			return false, s.finish(err)
		}
		s.row = row
		s.state = statePositioned
		return true, nil
	}
}

// Close releases the worksheet part.
func (s *SheetStream) Close() error {
	s.state = stateExhausted
	return s.part.Close()
}

func (s *SheetStream) finish(err error) error {
	s.state = stateExhausted
	s.err = err
	s.row = nil
	s.part.Close()
	return err
}

func (s *SheetStream) readRow() ([]models.Cell, error) {
	var row []models.Cell
	for {
		se, ok, err := s.part.nextChild()
		if err != nil {
			return nil, err
		}
		if !ok {
			return row, nil
		}
		if se.Name.Local != "c" {
			if err := s.part.skip(); err != nil {
				return nil, err
			}
			continue
		}

		node, err := s.readCell(se)
		if err != nil {
			return nil, err
		}
		value, err := s.resolve(node)
		if err != nil {
			return nil, cellError(s.name, node.ref.String(), err)
		}
		if s.merges.IsAnchor(node.ref) {
			s.merges.RecordAnchorValue(node.ref, value)
		}
		row = append(row, models.Cell{Ref: node.ref.String(), Value: value})
	}
}

func (s *SheetStream) readCell(se xml.StartElement) (cellNode, error) {
	var node cellNode
	r, ok := attr(se, "r")
	if !ok {
		return node, fmt.Errorf("sheet %q: %w: cell without reference", s.name, ErrFormat)
	}
	ref, err := ParseCellReference(r)
	if err != nil {
		return node, cellError(s.name, r, err)
	}
	node.ref = ref
	node.style, node.hasStyle = attr(se, "s")
	node.typ, _ = attr(se, "t")

	for {
		se, ok, err := s.part.nextChild()
		if err != nil {
			return node, err
		}
		if !ok {
			return node, nil
		}
		switch se.Name.Local {
		case "v":
			v, err := s.part.text()
			if err != nil {
				return node, err
			}
			node.v = &v
		case "is":
			t, err := readRichText(s.part)
			if err != nil {
				return node, err
			}
			node.inline = &t
		default:
			if err := s.part.skip(); err != nil {
				return node, err
			}
		}
	}
}

func (s *SheetStream) resolve(node cellNode) (string, error) {
	switch node.typ {
	case "s":
		if node.v == nil {
			return "", fmt.Errorf("%w: shared string cell without index", ErrFormat)
		}
		i, err := strconv.Atoi(strings.TrimSpace(*node.v))
		if err != nil {
			return "", fmt.Errorf("%w: invalid shared string index %q", ErrFormat, *node.v)
		}
		return s.index.SharedString(i)
	case "inlineStr":
		if node.inline != nil {
			return *node.inline, nil
		}
	case "d":
		return "", fmt.Errorf("%w: date cell", ErrUnsupportedType)
	case "e":
		return "", fmt.Errorf("%w: error cell", ErrUnsupportedType)
	case "":
		if node.v != nil {
			return *node.v, nil
		}
		if v, ok := s.merges.Resolve(node.ref); ok {
			return v, nil
		}
		if node.hasStyle {
			return "", fmt.Errorf("%w: cell with style %s has no literal value", ErrUnsupportedType, node.style)
		}
		return "", nil
	}

	// "str", "n", "b" and unknown types carry their text verbatim in v.
	if node.v != nil {
		return *node.v, nil
	}
	return "", ErrUnresolvedCell
}
