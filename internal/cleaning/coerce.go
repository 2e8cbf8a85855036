package cleaning

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/AvaniDange/AutoDashAI/internal/dataset"
)

// Fixed vocabulary of strings treated as missing values, checked
// case-insensitively after trimming.
var nullTokens = map[string]struct{}{
	"error": {},
	"na":    {},
	"nan":   {},
	"none":  {},
	"n/a":   {},
	"null":  {},
}

// IsNullToken reports whether a raw string is a null-equivalent.
func IsNullToken(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return true
	}
	_, ok := nullTokens[s]
	return ok
}

var magnitudePattern = regexp.MustCompile(`^(-?[0-9]+(?:\.[0-9]+)?)([km])$`)

var currencyReplacer = strings.NewReplacer("$", "", ",", "")

// ParseNumber applies the cell coercion rules to one raw string: currency and
// grouping punctuation is stripped, k/m magnitude suffixes scale the value,
// and word numbers ("twenty-eight") are resolved. Returns false when no rule
// yields a number.
func ParseNumber(raw string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = currencyReplacer.Replace(s)
	if s == "" {
		return 0, false
	}

	if m := magnitudePattern.FindStringSubmatch(s); m != nil {
		f, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			switch m[2] {
			case "k":
				return f * 1_000, true
			case "m":
				return f * 1_000_000, true
			}
		}
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}

	if f, ok := parseWordNumber(s); ok {
		return f, true
	}

	return 0, false
}

// CoerceColumn normalizes one column in place. Null tokens become explicit
// null markers, then the column is promoted to numeric only when more than
// half of its non-null values parse as numbers. In a promoted column the
// cells that failed to parse become nulls for the imputer to fill; in a
// column that stays categorical every original string is left untouched.
// Nothing here returns an error: a malformed cell can never fail a column.
//
// Type inference runs once per column. A column whose type is already
// resolved is left alone: imputed values could otherwise tip the numeric
// share past the promotion threshold on a second pass.
func CoerceColumn(col *dataset.Column) {
	if col.Resolved {
		return
	}
	col.Resolved = true

	n := len(col.Cells)
	parsed := make([]float64, n)
	ok := make([]bool, n)
	nonNull, numeric := 0, 0

	for i, c := range col.Cells {
		switch c.Kind {
		case dataset.CellNull:
			continue
		case dataset.CellNumber:
			nonNull++
			numeric++
			parsed[i], ok[i] = c.Num, true
		default:
			if IsNullToken(c.Str) {
				col.Cells[i] = dataset.NullCell()
				continue
			}
			nonNull++
			if f, good := ParseNumber(c.Str); good {
				parsed[i], ok[i] = f, true
				numeric++
			}
		}
	}

	if nonNull == 0 || numeric*2 <= nonNull {
		col.Type = dataset.TypeCategorical
		return
	}

	col.Type = dataset.TypeNumeric
	for i := range col.Cells {
		if col.Cells[i].IsNull() {
			continue
		}
		if ok[i] {
			col.Cells[i] = dataset.NumberCell(parsed[i])
		} else {
			col.Cells[i] = dataset.NullCell()
		}
	}
}

// Clean runs the full pipeline in place: per-column coercion, missing-value
// imputation, and exact-duplicate removal. Cleaning an already-clean table is
// a no-op.
func Clean(t *dataset.Table) *dataset.Table {
	if t == nil || t.RowCount() == 0 {
		return t
	}
	for _, col := range t.Columns() {
		CoerceColumn(col)
	}
	Impute(t)
	Deduplicate(t)
	return t
}
