// Package tabular provides the generic in-memory table used upstream of
// schema negotiation. Rows are ordered sequences of typed cells; column
// names carry no schema beyond their header text.
package tabular

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a cell value.
type Kind int

const (
	KindMissing Kind = iota
	KindString
	KindNumber
	KindBool
	KindTime
	// KindInvalidDate marks a date-column value that failed to parse.
	// It is an explicit marker, never a silent zero.
	KindInvalidDate
)

// Cell is one typed table value.
type Cell struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
	Time time.Time
}

// Missing returns the missing-value cell.
func Missing() Cell { return Cell{Kind: KindMissing} }

// String returns a text cell.
func String(s string) Cell { return Cell{Kind: KindString, Str: s} }

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{Kind: KindNumber, Num: f} }

// Bool returns a boolean cell.
func Boolean(b bool) Cell { return Cell{Kind: KindBool, Bool: b} }

// Date returns a date cell.
func Date(t time.Time) Cell { return Cell{Kind: KindTime, Time: t} }

// InvalidDate returns the invalid-date marker, preserving the raw text.
func InvalidDate(raw string) Cell { return Cell{Kind: KindInvalidDate, Str: raw} }

// Parse converts raw text into a typed cell. Empty or whitespace-only text
// becomes a missing cell; values that parse as numbers (thousands commas
// tolerated) become numeric cells; everything else stays text.
func Parse(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Missing()
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return Number(f)
	}
	return String(s)
}

// IsMissing reports whether the cell carries no value.
func (c Cell) IsMissing() bool { return c.Kind == KindMissing }

// Format renders the cell as canonical text for exports and fingerprints.
func (c Cell) Format() string {
	switch c.Kind {
	case KindMissing:
		return ""
	case KindString:
		return c.Str
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(c.Bool)
	case KindTime:
		return c.Time.Format("2006-01-02")
	case KindInvalidDate:
		return "invalid"
	}
	return ""
}

// Table is an ordered-column table of typed cells.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// New creates an empty table with the given column headers.
func New(columns []string) *Table {
	return &Table{Columns: columns}
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// AppendRow adds a row, padding short rows with missing cells and
// truncating rows wider than the header.
func (t *Table) AppendRow(cells []Cell) {
	row := make([]Cell, len(t.Columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = Missing()
		}
	}
	t.Rows = append(t.Rows, row)
}

// ColumnIndex returns the index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell at (row, col), or a missing cell when out of range.
func (t *Table) Cell(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Columns) {
		return Missing()
	}
	return t.Rows[row][col]
}

// IsNumeric reports whether a column's non-missing values are all numeric
// and at least one value is present.
func (t *Table) IsNumeric(col int) bool {
	seen := false
	for _, row := range t.Rows {
		switch row[col].Kind {
		case KindMissing:
		case KindNumber:
			seen = true
		default:
			return false
		}
	}
	return seen
}

// IsText reports whether a column's non-missing values are all textual
// and at least one value is present.
func (t *Table) IsText(col int) bool {
	seen := false
	for _, row := range t.Rows {
		switch row[col].Kind {
		case KindMissing:
		case KindString:
			seen = true
		default:
			return false
		}
	}
	return seen
}

// Median computes the median of a column's non-missing numeric values.
// The second return is false when the column has no numeric values.
func (t *Table) Median(col int) (float64, bool) {
	var values []float64
	for _, row := range t.Rows {
		if row[col].Kind == KindNumber {
			values = append(values, row[col].Num)
		}
	}
	if len(values) == 0 {
		return 0, false
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid], true
	}
	return (values[mid-1] + values[mid]) / 2, true
}

// Fingerprint renders a row as a single string for exact-duplicate
// detection. Cell kind participates so that e.g. the text "1" and the
// number 1 do not collide.
func (t *Table) Fingerprint(row int) string {
	parts := make([]string, len(t.Columns))
	for i, cell := range t.Rows[row] {
		parts[i] = fmt.Sprintf("%d:%s", cell.Kind, cell.Format())
	}
	return strings.Join(parts, "\x1f")
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	out.Rows = make([][]Cell, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = append([]Cell(nil), row...)
	}
	return out
}
