package charts

// Chart type keywords understood by the synthesizer and the dialogue engine.
const (
	TypeBar  = "bar"
	TypeLine = "line"
	TypePie  = "pie"
	TypeArea = "area"
)

// KnownType reports whether s is a supported chart type.
func KnownType(s string) bool {
	switch s {
	case TypeBar, TypeLine, TypePie, TypeArea:
		return true
	}
	return false
}

// Chart is one renderable visualization: an encoding plus a bounded data
// payload of flat records, in the wire shape the frontend consumes.
type Chart struct {
	ID      string                   `json:"id"`
	Type    string                   `json:"type"`
	Title   string                   `json:"title"`
	DataKey string                   `json:"dataKey"`
	XAxis   string                   `json:"xAxis"`
	Data    []map[string]interface{} `json:"data"`
}

// KPI is one summary card shown at the top of a dashboard.
type KPI struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
}
