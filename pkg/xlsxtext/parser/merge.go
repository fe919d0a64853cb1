package parser

import (
	"fmt"
	"io/fs"
	"strings"
)

// MergeRange is a rectangular block of merged cells. Only the top-left
// anchor carries a literal value in the worksheet.
type MergeRange struct {
	TopLeft     CellReference
	BottomRight CellReference

	value    string
	resolved bool
}

// ParseMergeRange parses a mergeCell ref such as "A1:C3".
// A single address is a one-cell range.
func ParseMergeRange(ref string) (MergeRange, error) {
	first, second, found := strings.Cut(ref, ":")
	if !found {
		second = first
	}
	a, err := ParseCellReference(first)
	if err != nil {
		return MergeRange{}, fmt.Errorf("merge range %q: %w", ref, err)
	}
	b, err := ParseCellReference(second)
	if err != nil {
		return MergeRange{}, fmt.Errorf("merge range %q: %w", ref, err)
	}
	return MergeRange{
		TopLeft:     CellReference{Column: min(a.Column, b.Column), Row: min(a.Row, b.Row)},
		BottomRight: CellReference{Column: max(a.Column, b.Column), Row: max(a.Row, b.Row)},
	}, nil
}

// Contains reports whether ref lies inside the range, bounds inclusive.
func (m *MergeRange) Contains(ref CellReference) bool {
	return ref.Column >= m.TopLeft.Column && ref.Column <= m.BottomRight.Column &&
		ref.Row >= m.TopLeft.Row && ref.Row <= m.BottomRight.Row
}

// Value returns the anchor value once it has been recorded.
func (m *MergeRange) Value() (string, bool) {
	return m.value, m.resolved
}

func (m *MergeRange) String() string {
	return m.TopLeft.String() + ":" + m.BottomRight.String()
}

// MergeRangeTable holds the merge ranges of one worksheet.
// Sheets rarely carry many ranges, so lookups are linear.
type MergeRangeTable struct {
	ranges []MergeRange
}

// NewMergeRangeTable builds a table from already parsed ranges.
func NewMergeRangeTable(ranges ...MergeRange) *MergeRangeTable {
	return &MergeRangeTable{ranges: ranges}
}

// LoadMergeRanges scans the whole worksheet part for mergeCell descriptors.
// It closes the part before returning; row streaming reopens it.
func LoadMergeRanges(fsys fs.FS, part string) (*MergeRangeTable, error) {
	p, err := openPart(fsys, part)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	table := &MergeRangeTable{}
	if _, ok, err := p.descend("mergeCells"); err != nil || !ok {
		return table, err
	}
	for {
		se, ok, err := p.nextChild()
		if err != nil {
			return nil, err
		}
		if !ok {
			return table, nil
		}
		if se.Name.Local == "mergeCell" {
			ref, _ := attr(se, "ref")
			m, err := ParseMergeRange(ref)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", part, err)
			}
			table.ranges = append(table.ranges, m)
		}
		if err := p.skip(); err != nil {
			return nil, err
		}
	}
}

// Len returns the number of ranges.
func (t *MergeRangeTable) Len() int {
	return len(t.ranges)
}

// Ranges returns a copy of the ranges in document order.
func (t *MergeRangeTable) Ranges() []MergeRange {
	return append([]MergeRange(nil), t.ranges...)
}

// IsAnchor reports whether ref is the top-left cell of a range whose value
// has not been recorded yet.
func (t *MergeRangeTable) IsAnchor(ref CellReference) bool {
	for i := range t.ranges {
		if t.ranges[i].TopLeft == ref && !t.ranges[i].resolved {
			return true
		}
	}
	return false
}

// RecordAnchorValue stores value on every unresolved range anchored at ref.
func (t *MergeRangeTable) RecordAnchorValue(ref CellReference, value string) {
	for i := range t.ranges {
		if t.ranges[i].TopLeft == ref && !t.ranges[i].resolved {
			t.ranges[i].value = value
			t.ranges[i].resolved = true
		}
	}
}

// Resolve returns the anchor value of the first range enclosing ref.
// It reports false when no range encloses ref or the anchor is still unread.
func (t *MergeRangeTable) Resolve(ref CellReference) (string, bool) {
	for i := range t.ranges {
		if t.ranges[i].Contains(ref) {
			return t.ranges[i].Value()
		}
	}
	return "", false
}
