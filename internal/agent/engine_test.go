package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AvaniDange/AutoDashAI/internal/charts"
	"github.com/AvaniDange/AutoDashAI/internal/cleaning"
	"github.com/AvaniDange/AutoDashAI/internal/dataset"
	"github.com/AvaniDange/AutoDashAI/internal/logging"
	"github.com/AvaniDange/AutoDashAI/internal/session"
)

func dialogueTable(t *testing.T) *dataset.Table {
	t.Helper()
	tab := dataset.New([]string{"Region", "Sales"}, [][]string{
		{"North", "100"}, {"South", "200"}, {"East", "300"}, {"West", "400"},
	})
	cleaning.Clean(tab)
	return tab
}

func newTestEngine() *Engine {
	return NewEngine(charts.NewSynthesizer(100), SubstringMatcher{}, nil, logging.NewNop())
}

func newTestSession(t *testing.T, chs ...*charts.Chart) *session.Session {
	cursor := len(chs) - 1
	return &session.Session{
		ID:     "test",
		Table:  dialogueTable(t),
		Charts: chs,
		Cursor: cursor,
	}
}

func trendChart(col string) *charts.Chart {
	return &charts.Chart{
		ID: "c1", Type: charts.TypeArea, Title: col + " Overview",
		DataKey: col, XAxis: "index",
	}
}

func TestChatCreateForColumn(t *testing.T) {
	e := newTestEngine()
	sess := newTestSession(t)

	chs, reply := e.Chat(context.Background(), sess, "add a chart for Sales")

	require.Len(t, chs, 1)
	assert.Equal(t, "Sales", chs[0].DataKey)
	assert.Equal(t, 0, sess.Cursor)
	assert.Contains(t, reply, "Sales")
	require.Len(t, sess.History, 2)
	assert.Equal(t, "add a chart for Sales", sess.History[0].Text)
}

func TestChatCreateRandom(t *testing.T) {
	e := newTestEngine()
	sess := newTestSession(t)

	chs, reply := e.Chat(context.Background(), sess, "add another chart")
	require.Len(t, chs, 1)
	assert.Contains(t, reply, "added")
	assert.Equal(t, 0, sess.Cursor)
}

func TestChatUpdatePronounTargetsCursor(t *testing.T) {
	e := newTestEngine()
	sess := newTestSession(t, trendChart("Sales"))

	chs, reply := e.Chat(context.Background(), sess, "change this to a line chart")

	require.Len(t, chs, 1)
	assert.Equal(t, charts.TypeLine, chs[0].Type)
	assert.Contains(t, reply, "Line")
	assert.Equal(t, 0, sess.Cursor)
}

func TestChatUpdateWithoutTypeAsksBack(t *testing.T) {
	e := newTestEngine()
	sess := newTestSession(t, trendChart("Sales"))

	chs, reply := e.Chat(context.Background(), sess, "change this")

	// A clarifying question mutates nothing.
	require.Len(t, chs, 1)
	assert.Equal(t, charts.TypeArea, chs[0].Type)
	assert.Contains(t, reply, "What type of chart")
}

func TestChatUpdateNoChartsAsksBack(t *testing.T) {
	e := newTestEngine()
	sess := newTestSession(t)

	chs, reply := e.Chat(context.Background(), sess, "change this to bar")
	assert.Empty(t, chs)
	assert.Contains(t, reply, "Which chart")
}

func TestChatPieConversionAggregates(t *testing.T) {
	e := newTestEngine()
	sess := newTestSession(t, &charts.Chart{
		ID: "c1", Type: charts.TypeBar, Title: "Sales by Region",
		DataKey: "Sales", XAxis: "Region",
	})

	chs, reply := e.Chat(context.Background(), sess, "convert this to pie")

	require.Len(t, chs, 1)
	assert.Equal(t, charts.TypePie, chs[0].Type)
	assert.Equal(t, "Sales by Region", chs[0].Title)
	assert.NotEmpty(t, chs[0].Data)
	assert.Contains(t, reply, "Pie chart with aggregated data")
	assert.Equal(t, 0, sess.Cursor)
}

func TestChatUpdateTargetsMentionedChart(t *testing.T) {
	e := newTestEngine()
	sess := newTestSession(t, trendChart("Sales"), trendChart("Region"))
	sess.Charts[1].DataKey = "Region"
	require.Equal(t, 1, sess.Cursor)

	chs, _ := e.Chat(context.Background(), sess, "change the Sales chart to line")

	assert.Equal(t, charts.TypeLine, chs[0].Type)
	assert.Equal(t, charts.TypeArea, chs[1].Type)
	assert.Equal(t, 0, sess.Cursor)
}

func TestChatRemoveDropsLast(t *testing.T) {
	e := newTestEngine()
	sess := newTestSession(t, trendChart("Sales"), trendChart("Region"))

	chs, reply := e.Chat(context.Background(), sess, "remove the last chart")

	require.Len(t, chs, 1)
	assert.Equal(t, "Sales", chs[0].DataKey)
	assert.Equal(t, 0, sess.Cursor)
	assert.Contains(t, reply, "removed")
}

func TestChatRemoveEmpty(t *testing.T) {
	e := newTestEngine()
	sess := newTestSession(t)

	chs, reply := e.Chat(context.Background(), sess, "delete it")
	assert.Empty(t, chs)
	assert.Equal(t, "No charts to remove.", reply)
	assert.Equal(t, -1, sess.Cursor)
}

func TestChatUnknownMessage(t *testing.T) {
	e := newTestEngine()
	sess := newTestSession(t)

	_, reply := e.Chat(context.Background(), sess, "how are you?")
	assert.Contains(t, reply, "I'm listening")
}

func TestChatSnapshotSurvivesLaterMutation(t *testing.T) {
	e := newTestEngine()
	sess := newTestSession(t, trendChart("Sales"))

	chs, _ := e.Chat(context.Background(), sess, "change this to a line chart")
	require.Len(t, chs, 1)
	require.Equal(t, charts.TypeLine, chs[0].Type)
	assert.NotSame(t, sess.Charts[0], chs[0])

	// A later in-place update must not bleed into the earlier snapshot.
	e.Chat(context.Background(), sess, "change this to a bar chart")
	assert.Equal(t, charts.TypeLine, chs[0].Type)
	assert.Equal(t, charts.TypeBar, sess.Charts[0].Type)
}

type stubResolver struct {
	intent Intent
	err    error
}

func (s stubResolver) Resolve(ctx context.Context, message string, columns []string) (Intent, error) {
	return s.intent, s.err
}

func TestChatResolverDrivesIntent(t *testing.T) {
	resolver := stubResolver{intent: Intent{Kind: KindCreate, Columns: []string{"Sales"}}}
	e := NewEngine(charts.NewSynthesizer(100), SubstringMatcher{}, resolver, logging.NewNop())
	sess := newTestSession(t)

	chs, _ := e.Chat(context.Background(), sess, "gibberish the model understood")
	require.Len(t, chs, 1)
	assert.Equal(t, "Sales", chs[0].DataKey)
}

func TestChatResolverColumnsRedirectUpdateTarget(t *testing.T) {
	// The resolver names a column the substring matcher cannot find in the
	// message; the named chart must still become the update target.
	resolver := stubResolver{intent: Intent{Kind: KindUpdate, ChartType: charts.TypeLine, Columns: []string{"Sales"}}}
	e := NewEngine(charts.NewSynthesizer(100), SubstringMatcher{}, resolver, logging.NewNop())
	sess := newTestSession(t, trendChart("Sales"), trendChart("Units"))
	require.Equal(t, 1, sess.Cursor)

	e.Chat(context.Background(), sess, "make the revenue one a line")

	assert.Equal(t, charts.TypeLine, sess.Charts[0].Type)
	assert.Equal(t, charts.TypeArea, sess.Charts[1].Type)
	assert.Equal(t, 0, sess.Cursor)
}

func TestChatResolverFailureFallsBackToRules(t *testing.T) {
	resolver := stubResolver{err: errors.New("model down")}
	e := NewEngine(charts.NewSynthesizer(100), SubstringMatcher{}, resolver, logging.NewNop())
	sess := newTestSession(t)

	chs, _ := e.Chat(context.Background(), sess, "add a chart for Sales")
	require.Len(t, chs, 1)
	assert.Equal(t, "Sales", chs[0].DataKey)
}
