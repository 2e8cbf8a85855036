package session

import (
	"sync"

	"github.com/AvaniDange/AutoDashAI/internal/charts"
	"github.com/AvaniDange/AutoDashAI/internal/dataset"
)

// Exchange is one turn of dialogue kept in session history.
type Exchange struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Session is the full state of one dashboard: the cleaned table, the live
// charts, KPI cards, dialogue history, and the cursor marking which chart
// pronouns like "this" refer to (-1 when no charts exist).
//
// Callers mutate a session only while holding its lock; concurrent chat
// requests against the same session serialize on it.
type Session struct {
	ID      string
	Table   *dataset.Table
	Charts  []*charts.Chart
	KPIs    []charts.KPI
	History []Exchange
	Cursor  int

	mu sync.Mutex
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Record appends a user/assistant pair to the dialogue history.
func (s *Session) Record(user, assistant string) {
	s.History = append(s.History,
		Exchange{Role: "user", Text: user},
		Exchange{Role: "assistant", Text: assistant},
	)
}
