package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AvaniDange/AutoDashAI/internal/dataset"
)

func TestReadCSV(t *testing.T) {
	in := strings.NewReader("Name, Age\nAsha,31\nRavi,28\n")
	tab, err := ReadCSV(in)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Age"}, tab.ColumnNames())
	assert.Equal(t, 2, tab.RowCount())
	assert.Equal(t, "Asha", tab.Column("Name").Cells[0].Str)
}

func TestReadCSVSemicolonFallback(t *testing.T) {
	in := strings.NewReader("Name;Age\nAsha;31\nRavi;28\n")
	tab, err := ReadCSV(in)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Age"}, tab.ColumnNames())
	assert.Equal(t, 2, tab.RowCount())
	assert.Equal(t, "31", tab.Column("Age").Cells[0].Str)
}

func TestReadCSVVariableFieldCounts(t *testing.T) {
	in := strings.NewReader("A,B,C\n1,2,3\n4,5\n")
	tab, err := ReadCSV(in)
	require.NoError(t, err)

	require.Equal(t, 2, tab.RowCount())
	// Short rows are padded with empty strings.
	assert.Equal(t, "", tab.Column("C").Cells[1].Str)
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	tab, err := ReadCSV(strings.NewReader("Name,Score\nAsha,10\nRavi,20\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteCSV(&out, tab))
	assert.Equal(t, "Name,Score\nAsha,10\nRavi,20\n", out.String())
}

func TestWriteCSVNumericCells(t *testing.T) {
	tab := dataset.New([]string{"v"}, [][]string{{"x"}})
	tab.Column("v").Cells = []dataset.Cell{dataset.NumberCell(1200)}

	var out bytes.Buffer
	require.NoError(t, WriteCSV(&out, tab))
	assert.Equal(t, "v\n1200\n", out.String())
}

func TestReadUploadDispatchesOnExtension(t *testing.T) {
	tab, err := ReadUpload("data.csv", strings.NewReader("A\n1\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, tab.RowCount())

	_, err = ReadUpload("data.xlsx", bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}

func TestExcelRoundTrip(t *testing.T) {
	tab := dataset.New([]string{"Name", "Score"}, [][]string{
		{"Asha", "10"}, {"Ravi", "20"},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, tab))

	got, err := ReadExcel(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Score"}, got.ColumnNames())
	assert.Equal(t, 2, got.RowCount())
	assert.Equal(t, "Asha", got.Column("Name").Cells[0].Str)
}
