package dataset

import (
	"math"
	"strconv"
)

// ColumnType is the resolved type of a column after cleaning.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
)

// CellKind discriminates the value held by a Cell.
type CellKind int

const (
	CellString CellKind = iota
	CellNumber
	CellNull
)

// Cell is one table value: a string, a number, or an explicit null marker.
type Cell struct {
	Kind CellKind
	Num  float64
	Str  string
}

// StringCell wraps a raw string value.
func StringCell(s string) Cell { return Cell{Kind: CellString, Str: s} }

// NumberCell wraps a numeric value.
func NumberCell(f float64) Cell { return Cell{Kind: CellNumber, Num: f} }

// NullCell is the explicit missing-value marker.
func NullCell() Cell { return Cell{Kind: CellNull} }

// IsNull reports whether the cell is the null marker.
func (c Cell) IsNull() bool { return c.Kind == CellNull }

// Value returns the cell as a JSON-safe native value. NaN and infinite
// numbers map to nil; downstream JSON consumers reject those tokens.
func (c Cell) Value() interface{} {
	switch c.Kind {
	case CellNumber:
		if math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
			return nil
		}
		return c.Num
	case CellNull:
		return nil
	default:
		return c.Str
	}
}

// Key returns a canonical string form used for row comparison and grouping.
func (c Cell) Key() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	case CellNull:
		return "\x00null"
	default:
		return c.Str
	}
}

// Column is one named, typed column of a Table. Resolved is set once type
// inference has run; the resolved type is cached and never re-derived, so
// values written during cleaning cannot flip the type on a later pass.
type Column struct {
	Name     string
	Type     ColumnType
	Resolved bool
	Cells    []Cell
}

// Table is an ordered set of named columns with a uniform row count.
// A table belongs to exactly one session and is mutated in place by the
// cleaning pipeline.
type Table struct {
	cols   []*Column
	byName map[string]int
}

// New builds a table from headers and raw string rows. Short rows are padded
// with empty strings so every column has the same length. All columns start
// categorical; coercion resolves the final type.
func New(headers []string, rows [][]string) *Table {
	t := &Table{byName: make(map[string]int, len(headers))}
	for i, h := range headers {
		col := &Column{Name: h, Type: TypeCategorical, Cells: make([]Cell, len(rows))}
		for r, row := range rows {
			if i < len(row) {
				col.Cells[r] = StringCell(row[i])
			} else {
				col.Cells[r] = StringCell("")
			}
		}
		t.cols = append(t.cols, col)
		if _, exists := t.byName[h]; !exists {
			t.byName[h] = i
		}
	}
	return t
}

// Columns returns the columns in declaration order.
func (t *Table) Columns() []*Column { return t.cols }

// Column returns the named column, or nil.
func (t *Table) Column(name string) *Column {
	if i, ok := t.byName[name]; ok {
		return t.cols[i]
	}
	return nil
}

// ColumnNames returns all column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// RowCount returns the uniform number of rows.
func (t *Table) RowCount() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Cells)
}

// NumericColumns returns the columns resolved as numeric, in order.
func (t *Table) NumericColumns() []*Column {
	out := []*Column{}
	for _, c := range t.cols {
		if c.Type == TypeNumeric {
			out = append(out, c)
		}
	}
	return out
}

// CategoricalColumns returns the columns resolved as categorical, in order.
func (t *Table) CategoricalColumns() []*Column {
	out := []*Column{}
	for _, c := range t.cols {
		if c.Type == TypeCategorical {
			out = append(out, c)
		}
	}
	return out
}

// Records converts up to limit rows into flat field->value maps with
// JSON-safe values. limit <= 0 means all rows.
func (t *Table) Records(limit int) []map[string]interface{} {
	n := t.RowCount()
	if limit > 0 && limit < n {
		n = limit
	}
	records := make([]map[string]interface{}, n)
	for i := 0; i < n; i++ {
		row := make(map[string]interface{}, len(t.cols))
		for _, col := range t.cols {
			row[col.Name] = col.Cells[i].Value()
		}
		records[i] = row
	}
	return records
}

// FilterRows keeps only the rows where keep[i] is true, preserving order.
func (t *Table) FilterRows(keep []bool) {
	for _, col := range t.cols {
		kept := col.Cells[:0]
		for i, c := range col.Cells {
			if i < len(keep) && keep[i] {
				kept = append(kept, c)
			}
		}
		col.Cells = kept
	}
}
