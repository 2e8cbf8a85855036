package insight

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/AvaniDange/AutoDashAI/internal/charts"
	"github.com/AvaniDange/AutoDashAI/internal/dataset"
)

// Insight is one narrative finding about a dashboard's underlying data.
type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// At most this many numeric columns enter the pairwise correlation scan.
const correlationColumnCap = 25

// Generate derives up to six narrative insights from the table and its
// current charts: dataset shape, variability of the leading numeric columns,
// category concentration, the chart mix, and the strongest correlation.
func Generate(t *dataset.Table, chs []*charts.Chart) []Insight {
	out := []Insight{}
	nums := t.NumericColumns()
	cats := t.CategoricalColumns()

	out = append(out, Insight{
		Title: "Dataset Overview",
		Description: fmt.Sprintf(
			"Your dashboard displays %d records across %d columns. The data includes %d numeric metrics for analysis.",
			t.RowCount(), len(t.Columns()), len(nums)),
	})

	for i, col := range nums {
		if i >= 2 {
			break
		}
		if ins, ok := numericInsight(col); ok {
			out = append(out, ins)
		}
	}

	for i, col := range cats {
		if i >= 2 {
			break
		}
		out = append(out, categoricalInsight(col, t.RowCount()))
	}

	if len(chs) > 0 {
		seen := map[string]struct{}{}
		types := []string{}
		for _, c := range chs {
			if _, ok := seen[c.Type]; ok {
				continue
			}
			seen[c.Type] = struct{}{}
			types = append(types, c.Type)
		}
		out = append(out, Insight{
			Title: "Visualization Strategy",
			Description: fmt.Sprintf(
				"Your dashboard uses %d charts (%s). Each visualization type highlights different aspects: bars for comparisons, lines for trends, and pies for proportions.",
				len(chs), strings.Join(types, ", ")),
		})
	}

	if ins, ok := correlationInsight(nums); ok {
		out = append(out, ins)
	}

	out = append(out, Insight{
		Title:       "Next Steps",
		Description: "Use the chat interface to create custom charts, filter data by specific categories, or convert chart types for different perspectives on your data.",
	})

	if len(out) > 6 {
		out = out[:6]
	}
	return out
}

func numericInsight(col *dataset.Column) (Insight, bool) {
	values := columnValues(col)
	if len(values) == 0 {
		return Insight{}, false
	}

	min, max, sum := values[0], values[0], 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	std := math.Sqrt(variance / float64(len(values)))

	if mean != 0 && std/mean > 0.5 {
		return Insight{
			Title: fmt.Sprintf("%s - High Variability", col.Name),
			Description: fmt.Sprintf(
				"%s ranges from %.2f to %.2f with significant variation (avg: %.2f). This suggests diverse data points that may require segmentation analysis.",
				col.Name, min, max, mean),
		}, true
	}
	return Insight{
		Title: fmt.Sprintf("%s - Stable Pattern", col.Name),
		Description: fmt.Sprintf(
			"%s shows relatively stable values around %.2f. The range is %.2f to %.2f, indicating consistent performance across the dataset.",
			col.Name, mean, min, max),
	}, true
}

func categoricalInsight(col *dataset.Column, rows int) Insight {
	counts := map[string]int{}
	mode, modeCount := "N/A", 0
	for _, c := range col.Cells {
		if c.Kind != dataset.CellString {
			continue
		}
		counts[c.Str]++
		if counts[c.Str] > modeCount {
			mode, modeCount = c.Str, counts[c.Str]
		}
	}

	if len(counts) <= 10 {
		pct := 0.0
		if rows > 0 {
			pct = float64(modeCount) / float64(rows) * 100
		}
		return Insight{
			Title: fmt.Sprintf("%s Distribution", col.Name),
			Description: fmt.Sprintf(
				"%s has %d categories. '%s' appears most frequently (%d times, %.1f%% of data).",
				col.Name, len(counts), mode, modeCount, pct),
		}
	}
	return Insight{
		Title: fmt.Sprintf("%s - Many Categories", col.Name),
		Description: fmt.Sprintf(
			"%s contains %d unique values, suggesting high diversity. Consider grouping similar categories for clearer visualization.",
			col.Name, len(counts)),
	}
}

// correlationInsight scans pairwise Pearson correlations over the leading
// numeric columns and reports the strongest one above 0.75.
func correlationInsight(nums []*dataset.Column) (Insight, bool) {
	if len(nums) < 2 {
		return Insight{}, false
	}
	if len(nums) > correlationColumnCap {
		nums = nums[:correlationColumnCap]
	}

	type pair struct {
		a, b string
		r    float64
	}
	strong := []pair{}
	for i := 0; i < len(nums); i++ {
		for j := i + 1; j < len(nums); j++ {
			r, ok := pearson(nums[i], nums[j])
			if ok && math.Abs(r) > 0.75 {
				strong = append(strong, pair{nums[i].Name, nums[j].Name, r})
			}
		}
	}
	if len(strong) == 0 {
		return Insight{}, false
	}

	sort.SliceStable(strong, func(i, j int) bool {
		return math.Abs(strong[i].r) > math.Abs(strong[j].r)
	})
	best := strong[0]
	return Insight{
		Title: "Strong Relationship Found",
		Description: fmt.Sprintf(
			"The model detected a strong connection between %s and %s (correlation: %.2f). This suggests these metrics are highly interdependent.",
			best.a, best.b, best.r),
	}, true
}

func pearson(a, b *dataset.Column) (float64, bool) {
	n := len(a.Cells)
	if len(b.Cells) < n {
		n = len(b.Cells)
	}

	xs, ys := []float64{}, []float64{}
	for i := 0; i < n; i++ {
		ca, cb := a.Cells[i], b.Cells[i]
		if ca.Kind != dataset.CellNumber || cb.Kind != dataset.CellNumber {
			continue
		}
		xs = append(xs, ca.Num)
		ys = append(ys, cb.Num)
	}
	if len(xs) < 2 {
		return 0, false
	}

	meanX, meanY := mean(xs), mean(ys)
	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, false
	}
	return cov / math.Sqrt(varX*varY), true
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func columnValues(col *dataset.Column) []float64 {
	values := []float64{}
	for _, c := range col.Cells {
		if c.Kind == dataset.CellNumber && !math.IsNaN(c.Num) && !math.IsInf(c.Num, 0) {
			values = append(values, c.Num)
		}
	}
	return values
}
