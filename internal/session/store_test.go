package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AvaniDange/AutoDashAI/internal/charts"
	"github.com/AvaniDange/AutoDashAI/internal/cleaning"
	"github.com/AvaniDange/AutoDashAI/internal/dataset"
)

func testTable(t *testing.T) *dataset.Table {
	t.Helper()
	tab := dataset.New([]string{"region", "sales"}, [][]string{
		{"North", "100"}, {"South", "200"}, {"East", "300"},
	})
	cleaning.Clean(tab)
	return tab
}

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Minute)
	sess := &Session{ID: "abc"}
	store.Put(sess)

	got, err := store.Get("abc")
	require.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestMemoryStoreUnknownID(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Minute)
	_, err := store.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10*time.Millisecond, time.Minute)
	store.Put(&Session{ID: "short"})

	time.Sleep(30 * time.Millisecond)
	_, err := store.Get("short")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Minute)
	store.Put(&Session{ID: "gone"})
	store.Delete("gone")

	_, err := store.Get("gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerStart(t *testing.T) {
	m := NewManager(NewMemoryStore(time.Minute, time.Minute), charts.NewSynthesizer(100))
	sess := m.Start(testTable(t))

	assert.NotEmpty(t, sess.ID)
	assert.NotEmpty(t, sess.Charts)
	assert.NotEmpty(t, sess.KPIs)
	assert.Equal(t, 0, sess.Cursor)

	got, err := m.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestManagerStartNoCharts(t *testing.T) {
	// A single categorical column with one value still yields a count chart,
	// so use an empty table to exercise the no-chart cursor.
	tab := dataset.New([]string{"a"}, nil)
	m := NewManager(NewMemoryStore(time.Minute, time.Minute), charts.NewSynthesizer(100))
	sess := m.Start(tab)
	assert.Equal(t, -1, sess.Cursor)
	assert.Empty(t, sess.Charts)
}

func TestSessionRecord(t *testing.T) {
	sess := &Session{}
	sess.Record("hi", "hello")
	require.Len(t, sess.History, 2)
	assert.Equal(t, "user", sess.History[0].Role)
	assert.Equal(t, "assistant", sess.History[1].Role)
}
