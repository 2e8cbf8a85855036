package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AvaniDange/AutoDashAI/internal/dataset"
)

func TestDetectIssuesEmptyDataset(t *testing.T) {
	assert.Equal(t, []string{"Dataset is empty"}, DetectIssues(dataset.New([]string{"a"}, nil)))
	assert.Equal(t, []string{"Dataset is empty"}, DetectIssues(dataset.New(nil, nil)))
}

func TestDetectIssuesMissingValues(t *testing.T) {
	tab := dataset.New([]string{"name", "age"}, [][]string{
		{"Asha", "31"},
		{"", "NA"},
		{"Ravi", "28"},
	})
	issues := DetectIssues(tab)

	assert.Contains(t, issues, "Column **name** has 1 missing values")
	assert.Contains(t, issues, "Column **age** has 1 missing values")
}

func TestDetectIssuesDuplicates(t *testing.T) {
	tab := dataset.New([]string{"a"}, [][]string{
		{"x"}, {"x"}, {"y"}, {"x"},
	})
	issues := DetectIssues(tab)
	assert.Contains(t, issues, "2 duplicate rows detected")
}

func TestDetectIssuesNumericAsText(t *testing.T) {
	tab := dataset.New([]string{"amount"}, [][]string{
		{"$100"}, {"$250"}, {"$75"}, {"pending"},
	})
	issues := DetectIssues(tab)
	assert.Contains(t, issues, "Column **amount** may be numeric but stored as text")
}

func TestDetectIssuesCleanData(t *testing.T) {
	tab := dataset.New([]string{"name"}, [][]string{
		{"Asha"}, {"Ravi"},
	})
	assert.Empty(t, DetectIssues(tab))
}
