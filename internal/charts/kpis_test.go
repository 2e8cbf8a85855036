package charts

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AvaniDange/AutoDashAI/internal/dataset"
)

func TestKPICardsRecordCount(t *testing.T) {
	rows := [][]string{}
	for i := 0; i < 1234; i++ {
		rows = append(rows, []string{fmt.Sprintf("v%d", i)})
	}
	tab := dataset.New([]string{"name"}, rows)

	cards := KPICards(tab)
	require.NotEmpty(t, cards)
	assert.Equal(t, "Total Records", cards[0].Title)
	assert.Equal(t, "1,234", cards[0].Value)
	assert.Equal(t, "Dataset Size", cards[0].Change)
}

func TestKPICardsNumericColumns(t *testing.T) {
	tab := dataset.New([]string{"revenue", "rating"}, [][]string{
		{"5000", "4"}, {"7000", "5"}, {"6000", "3"},
	})
	tab.Column("revenue").Cells = []dataset.Cell{
		dataset.NumberCell(5000), dataset.NumberCell(7000), dataset.NumberCell(6000),
	}
	tab.Column("revenue").Type = dataset.TypeNumeric
	tab.Column("rating").Cells = []dataset.Cell{
		dataset.NumberCell(4), dataset.NumberCell(5), dataset.NumberCell(3),
	}
	tab.Column("rating").Type = dataset.TypeNumeric

	cards := KPICards(tab)
	require.Len(t, cards, 3)
	// Large averages report the sum, small ones the mean.
	assert.Equal(t, "Total revenue", cards[1].Title)
	assert.Equal(t, "18.0K", cards[1].Value)
	assert.Equal(t, "Avg rating", cards[2].Title)
	assert.Equal(t, "4", cards[2].Value)
	assert.Regexp(t, `^-?\d+%$`, cards[1].Change)
}

func TestKPICardsCapsAtFour(t *testing.T) {
	headers := []string{"a", "b", "c", "d", "e"}
	tab := dataset.New(headers, [][]string{{"1", "2", "3", "4", "5"}})
	for _, name := range headers {
		col := tab.Column(name)
		col.Type = dataset.TypeNumeric
		col.Cells = []dataset.Cell{dataset.NumberCell(1)}
	}

	cards := KPICards(tab)
	assert.Len(t, cards, 4)
}

func TestFormatScaled(t *testing.T) {
	assert.Equal(t, "2.5B", formatScaled(2.5e9))
	assert.Equal(t, "3.2M", formatScaled(3.2e6))
	assert.Equal(t, "1.5K", formatScaled(1500))
	assert.Equal(t, "42", formatScaled(42))
	assert.Equal(t, "3.14", formatScaled(3.14159))
}
