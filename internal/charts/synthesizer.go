package charts

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/AvaniDange/AutoDashAI/internal/dataset"
)

// DefaultMaxPoints bounds the data payload of every chart so it stays
// renderable client-side. The cap is a hard invariant.
const DefaultMaxPoints = 100

// Synthesizer builds chart specifications from a cleaned table.
type Synthesizer struct {
	MaxPoints int
	rng       *rand.Rand
}

// NewSynthesizer returns a synthesizer with the given point cap
// (DefaultMaxPoints when maxPoints <= 0).
func NewSynthesizer(maxPoints int) *Synthesizer {
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	return &Synthesizer{
		MaxPoints: maxPoints,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Synthesize builds one chart for the requested columns. With no columns a
// random numeric trend chart is chosen. Returns nil when no usable chart can
// be built; that is a result, not an error.
func (s *Synthesizer) Synthesize(t *dataset.Table, cols []string, preferred string) *Chart {
	if len(cols) == 0 {
		return s.RandomChart(t, preferred)
	}

	resolved := []*dataset.Column{}
	for _, name := range cols {
		if c := t.Column(name); c != nil {
			resolved = append(resolved, c)
		}
	}
	if len(resolved) == 0 {
		return nil
	}

	if len(resolved) == 1 {
		return s.singleColumnChart(resolved[0], preferred)
	}
	return s.multiColumnChart(resolved, preferred)
}

func (s *Synthesizer) singleColumnChart(col *dataset.Column, preferred string) *Chart {
	if col.Type == dataset.TypeNumeric {
		ctype := preferred
		if ctype == "" {
			ctype = TypeArea
		}
		return &Chart{
			ID:      uuid.NewString(),
			Type:    ctype,
			Title:   fmt.Sprintf("Distribution of %s", col.Name),
			DataKey: col.Name,
			XAxis:   "index",
			Data:    s.trendData(col),
		}
	}

	ctype := preferred
	if ctype == "" {
		ctype = TypeBar
	}
	return &Chart{
		ID:      uuid.NewString(),
		Type:    ctype,
		Title:   fmt.Sprintf("Count of %s", col.Name),
		DataKey: "count",
		XAxis:   col.Name,
		Data:    s.countData(col, 10, "count"),
	}
}

// multiColumnChart pairs one categorical and one numeric column, first-found
// by position among the requested columns.
func (s *Synthesizer) multiColumnChart(cols []*dataset.Column, preferred string) *Chart {
	var cat, num *dataset.Column
	for _, c := range cols {
		if cat == nil && c.Type == dataset.TypeCategorical {
			cat = c
		}
		if num == nil && c.Type == dataset.TypeNumeric {
			num = c
		}
	}
	hasCategorical := cat != nil
	if cat == nil {
		cat = cols[0]
	}
	if num == nil {
		num = cols[1]
	}

	ctype := preferred
	if ctype == "" {
		ctype = TypeBar
	}

	var data []map[string]interface{}
	if hasCategorical || ctype == TypePie {
		// Pie charts need aggregated series, never raw rows.
		if num.Type != dataset.TypeNumeric {
			return nil
		}
		data = s.groupData(cat, num, aggMean, 10)
	} else {
		data = s.pairData(cat, num)
	}
	if len(data) == 0 {
		return nil
	}

	return &Chart{
		ID:      uuid.NewString(),
		Type:    ctype,
		Title:   fmt.Sprintf("%s by %s", num.Name, cat.Name),
		DataKey: num.Name,
		XAxis:   cat.Name,
		Data:    data,
	}
}

// RandomChart picks a numeric column at random and builds a trend chart over
// it. A preferred pie type with both column kinds available yields an
// aggregated split instead. Returns nil when no numeric column exists.
func (s *Synthesizer) RandomChart(t *dataset.Table, preferred string) *Chart {
	nums := t.NumericColumns()
	cats := t.CategoricalColumns()

	if preferred == TypePie && len(cats) > 0 && len(nums) > 0 {
		cat := cats[s.rng.Intn(len(cats))]
		num := nums[s.rng.Intn(len(nums))]
		data := s.groupData(cat, num, aggMean, 5)
		if len(data) > 0 {
			return &Chart{
				ID:      uuid.NewString(),
				Type:    TypePie,
				Title:   fmt.Sprintf("%s Split", num.Name),
				DataKey: num.Name,
				XAxis:   cat.Name,
				Data:    data,
			}
		}
	}

	if len(nums) == 0 {
		return nil
	}

	col := nums[s.rng.Intn(len(nums))]
	ctype := preferred
	if ctype == "" {
		ctype = TypeArea
	}
	return &Chart{
		ID:      uuid.NewString(),
		Type:    ctype,
		Title:   fmt.Sprintf("Random View: %s", col.Name),
		DataKey: col.Name,
		XAxis:   "index",
		Data:    s.trendData(col),
	}
}

// InitialCharts builds the opening dashboard: a categorical breakdown, up to
// two numeric trend charts, and a pie from a secondary categorical column.
// Deterministic given the table's column order; at most four charts.
func (s *Synthesizer) InitialCharts(t *dataset.Table) []*Chart {
	out := []*Chart{}
	nums := t.NumericColumns()
	cats := t.CategoricalColumns()

	if len(cats) > 0 && len(nums) > 0 {
		cat, num := cats[0], nums[0]
		if data := s.groupData(cat, num, aggSum, 6); len(data) > 0 {
			out = append(out, &Chart{
				ID:      uuid.NewString(),
				Type:    TypeBar,
				Title:   fmt.Sprintf("Total %s by %s", num.Name, cat.Name),
				DataKey: num.Name,
				XAxis:   cat.Name,
				Data:    data,
			})
		}
	}

	for i, col := range nums {
		if i >= 2 {
			break
		}
		out = append(out, &Chart{
			ID:      uuid.NewString(),
			Type:    TypeArea,
			Title:   fmt.Sprintf("%s Overview", col.Name),
			DataKey: col.Name,
			XAxis:   "index",
			Data:    s.trendData(col),
		})
	}

	if len(cats) > 1 {
		cat := cats[1]
		out = append(out, &Chart{
			ID:      uuid.NewString(),
			Type:    TypePie,
			Title:   fmt.Sprintf("Top %s Split", cat.Name),
			DataKey: "value",
			XAxis:   cat.Name,
			Data:    s.countData(cat, 5, "value"),
		})
	}

	if len(out) > 4 {
		out = out[:4]
	}
	return out
}

// trendData samples a numeric column by stride, not truncation, so the
// overall shape survives. Never exceeds MaxPoints.
func (s *Synthesizer) trendData(col *dataset.Column) []map[string]interface{} {
	n := len(col.Cells)
	stride := 1
	if n > s.MaxPoints {
		stride = n / s.MaxPoints
	}
	out := []map[string]interface{}{}
	for i := 0; i < n && len(out) < s.MaxPoints; i += stride {
		out = append(out, map[string]interface{}{
			"index":  i,
			col.Name: col.Cells[i].Value(),
		})
	}
	return out
}

// countData returns the topN most frequent values of a column as records of
// {column: value, valueField: count}.
func (s *Synthesizer) countData(col *dataset.Column, topN int, valueField string) []map[string]interface{} {
	type bucket struct {
		key   string
		count int
		first int
	}
	byKey := map[string]*bucket{}
	order := []*bucket{}
	for i, c := range col.Cells {
		if c.IsNull() {
			continue
		}
		k := c.Key()
		b := byKey[k]
		if b == nil {
			b = &bucket{key: k, first: i}
			byKey[k] = b
			order = append(order, b)
		}
		b.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})
	if len(order) > topN {
		order = order[:topN]
	}

	out := make([]map[string]interface{}, len(order))
	for i, b := range order {
		out[i] = map[string]interface{}{
			col.Name:   b.key,
			valueField: b.count,
		}
	}
	return out
}

type aggKind int

const (
	aggMean aggKind = iota
	aggSum
)

// groupData aggregates num grouped by cat and keeps the topN groups by value
// descending. Rows with a null category or non-numeric value are dropped.
func (s *Synthesizer) groupData(cat, num *dataset.Column, kind aggKind, topN int) []map[string]interface{} {
	type bucket struct {
		key   string
		sum   float64
		n     int
		first int
	}
	byKey := map[string]*bucket{}
	order := []*bucket{}

	rows := len(cat.Cells)
	if len(num.Cells) < rows {
		rows = len(num.Cells)
	}
	for i := 0; i < rows; i++ {
		cc, nc := cat.Cells[i], num.Cells[i]
		if cc.IsNull() || nc.Kind != dataset.CellNumber {
			continue
		}
		if math.IsNaN(nc.Num) || math.IsInf(nc.Num, 0) {
			continue
		}
		k := cc.Key()
		b := byKey[k]
		if b == nil {
			b = &bucket{key: k, first: i}
			byKey[k] = b
			order = append(order, b)
		}
		b.sum += nc.Num
		b.n++
	}

	value := func(b *bucket) float64 {
		if kind == aggMean {
			return b.sum / float64(b.n)
		}
		return b.sum
	}

	sort.SliceStable(order, func(i, j int) bool {
		vi, vj := value(order[i]), value(order[j])
		if vi != vj {
			return vi > vj
		}
		return order[i].first < order[j].first
	})
	if len(order) > topN {
		order = order[:topN]
	}

	out := make([]map[string]interface{}, len(order))
	for i, b := range order {
		out[i] = map[string]interface{}{
			cat.Name: b.key,
			num.Name: value(b),
		}
	}
	return out
}

// pairData returns up to MaxPoints raw (category, value) rows, skipping rows
// with a null on either side.
func (s *Synthesizer) pairData(cat, num *dataset.Column) []map[string]interface{} {
	rows := len(cat.Cells)
	if len(num.Cells) < rows {
		rows = len(num.Cells)
	}
	out := []map[string]interface{}{}
	for i := 0; i < rows && len(out) < s.MaxPoints; i++ {
		cc, nc := cat.Cells[i], num.Cells[i]
		if cc.IsNull() || nc.IsNull() {
			continue
		}
		out = append(out, map[string]interface{}{
			cat.Name: cc.Value(),
			num.Name: nc.Value(),
		})
	}
	return out
}
