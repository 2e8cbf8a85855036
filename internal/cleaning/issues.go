package cleaning

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/AvaniDange/AutoDashAI/internal/dataset"
)

// Rows examined per column when hunting for numeric-as-text columns. Larger
// tables are sampled to bound detection cost; the output is advisory, so an
// unseeded sample is acceptable.
const issueSampleCap = 500

// DetectIssues audits a table read-only and returns human-readable findings:
// per-column missing counts (using the same null vocabulary as coercion),
// the duplicate row count, and categorical columns that look numeric.
func DetectIssues(t *dataset.Table) []string {
	if t == nil || t.RowCount() == 0 || len(t.Columns()) == 0 {
		return []string{"Dataset is empty"}
	}

	issues := []string{}

	for _, col := range t.Columns() {
		missing := 0
		for _, c := range col.Cells {
			if c.IsNull() || (c.Kind == dataset.CellString && IsNullToken(c.Str)) {
				missing++
			}
		}
		if missing > 0 {
			issues = append(issues, fmt.Sprintf("Column **%s** has %d missing values", col.Name, missing))
		}
	}

	if dups := countDuplicateRows(t); dups > 0 {
		issues = append(issues, fmt.Sprintf("%d duplicate rows detected", dups))
	}

	sample := sampleIndices(t.RowCount(), issueSampleCap)
	for _, col := range t.Columns() {
		if col.Type != dataset.TypeCategorical {
			continue
		}
		numericLike := 0
		for _, i := range sample {
			c := col.Cells[i]
			if c.Kind != dataset.CellString {
				continue
			}
			if _, ok := ParseNumber(c.Str); ok {
				numericLike++
			}
		}
		if numericLike*2 > len(sample) {
			issues = append(issues, fmt.Sprintf("Column **%s** may be numeric but stored as text", col.Name))
		}
	}

	return issues
}

func countDuplicateRows(t *dataset.Table) int {
	n := t.RowCount()
	seen := make(map[string]struct{}, n)
	dups := 0
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.Reset()
		for _, col := range t.Columns() {
			sb.WriteString(col.Cells[i].Key())
			sb.WriteByte(0x1f)
		}
		key := sb.String()
		if _, ok := seen[key]; ok {
			dups++
		} else {
			seen[key] = struct{}{}
		}
	}
	return dups
}

func sampleIndices(n, limit int) []int {
	if n <= limit {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	return rand.Perm(n)[:limit]
}
