package cleaning

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AvaniDange/AutoDashAI/internal/dataset"
)

// Fallback used when a categorical column has no observed values at all.
const unknownPlaceholder = "Unknown"

// Impute fills every null marker in place: numeric columns take the column
// median (robust to the skew common in measurement data), categorical
// columns take the most frequent value with ties broken by first appearance.
// Categorical values are then trimmed and title-cased for display.
// Deterministic: the result depends only on the input table.
func Impute(t *dataset.Table) {
	caser := cases.Title(language.English)

	for _, col := range t.Columns() {
		if col.Type == dataset.TypeNumeric {
			imputeNumeric(col)
		} else {
			imputeCategorical(col, caser)
		}
	}
}

func imputeNumeric(col *dataset.Column) {
	values := NumericValues(col)
	// An all-null numeric column has no median; zero keeps the column numeric.
	fill := 0.0
	if len(values) > 0 {
		fill = Median(values)
	}
	for i, c := range col.Cells {
		if c.IsNull() {
			col.Cells[i] = dataset.NumberCell(fill)
		}
	}
}

func imputeCategorical(col *dataset.Column, caser cases.Caser) {
	fill := Mode(col)
	if fill == "" {
		fill = unknownPlaceholder
	}
	for i, c := range col.Cells {
		if c.IsNull() {
			c = dataset.StringCell(fill)
		}
		if c.Kind == dataset.CellString {
			c.Str = caser.String(strings.TrimSpace(c.Str))
		}
		col.Cells[i] = c
	}
}

// Deduplicate drops rows that are exact duplicates of an earlier row across
// all columns, preserving first occurrences. Returns the number removed.
func Deduplicate(t *dataset.Table) int {
	n := t.RowCount()
	if n == 0 {
		return 0
	}

	seen := make(map[string]struct{}, n)
	keep := make([]bool, n)
	kept := 0
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.Reset()
		for _, col := range t.Columns() {
			sb.WriteString(col.Cells[i].Key())
			sb.WriteByte(0x1f)
		}
		key := sb.String()
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			keep[i] = true
			kept++
		}
	}

	if kept < n {
		t.FilterRows(keep)
	}
	return n - kept
}

// NumericValues collects the non-null numbers of a column.
func NumericValues(col *dataset.Column) []float64 {
	values := []float64{}
	for _, c := range col.Cells {
		if c.Kind == dataset.CellNumber {
			values = append(values, c.Num)
		}
	}
	return values
}

// Median returns the middle value of the input. Empty input yields 0.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Mode returns the most frequent non-null string value of a column, breaking
// ties by first appearance. Empty string means no value was observed.
func Mode(col *dataset.Column) string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	best, bestCount, bestFirst := "", 0, 0
	for i, c := range col.Cells {
		if c.Kind != dataset.CellString {
			continue
		}
		v := c.Str
		if _, ok := firstSeen[v]; !ok {
			firstSeen[v] = i
		}
		counts[v]++
		if counts[v] > bestCount || (counts[v] == bestCount && firstSeen[v] < bestFirst) {
			best, bestCount, bestFirst = v, counts[v], firstSeen[v]
		}
	}
	return best
}
