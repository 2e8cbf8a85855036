package agent

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/AvaniDange/AutoDashAI/internal/charts"
	"github.com/AvaniDange/AutoDashAI/internal/session"
)

// IntentResolver resolves a message to an intent using an external model.
// Implementations return an error when the model is unavailable or its
// answer cannot be trusted; the engine then falls back to keyword rules.
type IntentResolver interface {
	Resolve(ctx context.Context, message string, columns []string) (Intent, error)
}

// Engine drives the chart dialogue: it resolves what a message asks for and
// applies it to the session's chart list.
type Engine struct {
	synth    *charts.Synthesizer
	matcher  ColumnMatcher
	resolver IntentResolver
	log      *zap.SugaredLogger
}

// NewEngine builds an engine. resolver may be nil; keyword rules then handle
// every message.
func NewEngine(synth *charts.Synthesizer, matcher ColumnMatcher, resolver IntentResolver, log *zap.SugaredLogger) *Engine {
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	return &Engine{synth: synth, matcher: matcher, resolver: resolver, log: log}
}

// Chat handles one user message against a session and returns the resulting
// chart list and the assistant's reply. The session is locked for the whole
// exchange.
func (e *Engine) Chat(ctx context.Context, sess *session.Session, message string) ([]*charts.Chart, string) {
	sess.Lock()
	defer sess.Unlock()

	columns := sess.Table.ColumnNames()
	mentioned := e.matcher.Mentioned(message, columns)
	intent := e.resolveIntent(ctx, message, columns, mentioned)

	var reply string
	switch intent.Kind {
	case KindUpdate:
		reply = e.applyUpdate(sess, intent, mergeColumns(mentioned, intent.Columns))
	case KindCreate:
		reply = e.applyCreate(sess, intent)
	case KindRemove:
		reply = e.applyRemove(sess)
	default:
		reply = "I'm listening. You can ask me to 'Add a chart for Sales' or 'Change this to Pie'."
	}

	sess.Record(message, reply)

	// Detach the snapshot: callers serialize it after the lock is released,
	// and a later update mutates chart fields in place.
	snapshot := make([]*charts.Chart, len(sess.Charts))
	for i, c := range sess.Charts {
		cc := *c
		snapshot[i] = &cc
	}
	return snapshot, reply
}

// resolveIntent tries the model first and falls back to keyword rules on any
// failure. Model answers naming columns the table does not have are
// discarded too.
func (e *Engine) resolveIntent(ctx context.Context, message string, columns, mentioned []string) Intent {
	if e.resolver != nil {
		intent, err := e.resolver.Resolve(ctx, message, columns)
		if err == nil {
			return intent
		}
		if e.log != nil {
			e.log.Debugw("intent resolver unavailable, using rules", "error", err)
		}
	}
	return Classify(message, mentioned)
}

func (e *Engine) applyUpdate(sess *session.Session, intent Intent, mentioned []string) string {
	if intent.ChartType == "" {
		return "What type of chart should I change it to? (Bar, Pie, Line, Area)"
	}

	target := sess.Cursor
	for i, c := range sess.Charts {
		if columnNamed(mentioned, c.DataKey) || columnNamed(mentioned, c.XAxis) {
			target = i
			break
		}
	}
	if target < 0 || target >= len(sess.Charts) {
		return "Which chart would you like to change? Try creating one first."
	}
	chart := sess.Charts[target]

	// Pie needs aggregated data; re-synthesize instead of relabeling raw rows.
	if intent.ChartType == charts.TypePie && chart.Type != charts.TypePie {
		cols := []string{}
		if chart.XAxis != "" && chart.XAxis != "index" {
			cols = append(cols, chart.XAxis)
		}
		cols = append(cols, chart.DataKey)
		if rebuilt := e.synth.Synthesize(sess.Table, cols, charts.TypePie); rebuilt != nil {
			rebuilt.Title = chart.Title
			sess.Charts[target] = rebuilt
			sess.Cursor = target
			return fmt.Sprintf("I've converted '%s' to a Pie chart with aggregated data.", chart.Title)
		}
	}

	chart.Type = intent.ChartType
	sess.Cursor = target
	return fmt.Sprintf("I've updated the '%s' to a %s chart.", chart.Title, capitalize(intent.ChartType))
}

func (e *Engine) applyCreate(sess *session.Session, intent Intent) string {
	if len(intent.Columns) > 0 {
		chart := e.synth.Synthesize(sess.Table, intent.Columns, intent.ChartType)
		if chart == nil {
			return fmt.Sprintf("I couldn't create a chart for %s. Try numeric columns.", strings.Join(intent.Columns, ", "))
		}
		sess.Charts = append(sess.Charts, chart)
		sess.Cursor = len(sess.Charts) - 1
		return fmt.Sprintf("I've created a new %s chart for %s.", capitalize(chart.Type), strings.Join(intent.Columns, ", "))
	}

	chart := e.synth.RandomChart(sess.Table, intent.ChartType)
	if chart == nil {
		return "I couldn't find a numeric column to chart. Try naming a column."
	}
	sess.Charts = append(sess.Charts, chart)
	sess.Cursor = len(sess.Charts) - 1
	return fmt.Sprintf("I've added a new %s (%s).", chart.Title, chart.Type)
}

func (e *Engine) applyRemove(sess *session.Session) string {
	if len(sess.Charts) == 0 {
		return "No charts to remove."
	}
	last := sess.Charts[len(sess.Charts)-1]
	sess.Charts = sess.Charts[:len(sess.Charts)-1]
	sess.Cursor = len(sess.Charts) - 1
	return fmt.Sprintf("I removed the '%s' chart.", last.Title)
}

// mergeColumns unions the matcher's mentions with the columns the resolver
// named, preserving order and dropping duplicates.
func mergeColumns(a, b []string) []string {
	out := append([]string{}, a...)
	for _, c := range b {
		if !columnNamed(out, c) {
			out = append(out, c)
		}
	}
	return out
}

func columnNamed(cols []string, name string) bool {
	for _, c := range cols {
		if c == name {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
