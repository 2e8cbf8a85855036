package agent

import (
	"strings"

	"github.com/AvaniDange/AutoDashAI/internal/charts"
)

// Kind is the high-level action a message asks for.
type Kind int

const (
	KindUnknown Kind = iota
	KindUpdate
	KindCreate
	KindRemove
)

func (k Kind) String() string {
	switch k {
	case KindUpdate:
		return "update"
	case KindCreate:
		return "create"
	case KindRemove:
		return "remove"
	}
	return "unknown"
}

// Intent is a resolved request: what to do, to which chart type, over which
// columns.
type Intent struct {
	Kind      Kind
	ChartType string
	Columns   []string
}

var (
	updateKeywords = []string{"change", "switch", "convert", "turn into", "make it", "update", "this"}
	createKeywords = []string{"add", "create", "show", "give me", "new", "another"}
	removeKeywords = []string{"remove", "delete"}
)

// Classify maps a message to an intent with fixed precedence: update wins
// over create wins over remove, so "change this and add another" modifies
// rather than appends. Mentioning any column counts as a create signal even
// without a verb.
func Classify(message string, mentioned []string) Intent {
	msg := strings.ToLower(message)

	intent := Intent{
		Kind:      KindUnknown,
		ChartType: chartTypeOf(msg),
		Columns:   mentioned,
	}

	switch {
	case containsAny(msg, updateKeywords):
		intent.Kind = KindUpdate
	case containsAny(msg, createKeywords) || len(mentioned) > 0:
		intent.Kind = KindCreate
	case containsAny(msg, removeKeywords):
		intent.Kind = KindRemove
	}
	return intent
}

// chartTypeOf finds the first chart type named in the message, empty if none.
func chartTypeOf(msg string) string {
	for _, ct := range []string{charts.TypePie, charts.TypeBar, charts.TypeLine, charts.TypeArea} {
		if strings.Contains(msg, ct) {
			return ct
		}
	}
	return ""
}

func containsAny(msg string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
