package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/AvaniDange/AutoDashAI/internal/charts"
	"github.com/AvaniDange/AutoDashAI/internal/dataset"
)

// ErrNotFound is returned when a session ID is unknown or has expired.
var ErrNotFound = errors.New("session not found")

// Store holds live sessions keyed by ID.
type Store interface {
	Put(s *Session)
	Get(id string) (*Session, error)
	Delete(id string)
}

// MemoryStore keeps sessions in process memory with TTL eviction. Each Put
// or Get refreshes the session's expiry, so only idle sessions age out.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore builds a store whose sessions expire after ttl of
// inactivity, purged every purgeInterval.
func NewMemoryStore(ttl, purgeInterval time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(ttl, purgeInterval)}
}

func (m *MemoryStore) Put(s *Session) {
	m.cache.Set(s.ID, s, gocache.DefaultExpiration)
}

func (m *MemoryStore) Get(id string) (*Session, error) {
	v, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	s := v.(*Session)
	m.cache.Set(id, s, gocache.DefaultExpiration)
	return s, nil
}

func (m *MemoryStore) Delete(id string) {
	m.cache.Delete(id)
}

// Manager creates sessions from cleaned tables and looks them up.
type Manager struct {
	store Store
	synth *charts.Synthesizer
}

func NewManager(store Store, synth *charts.Synthesizer) *Manager {
	return &Manager{store: store, synth: synth}
}

// Start registers a new session for the table with the initial chart set and
// KPI cards already built.
func (m *Manager) Start(t *dataset.Table) *Session {
	chs := m.synth.InitialCharts(t)
	cursor := -1
	if len(chs) > 0 {
		cursor = 0
	}
	s := &Session{
		ID:     uuid.NewString(),
		Table:  t,
		Charts: chs,
		KPIs:   charts.KPICards(t),
		Cursor: cursor,
	}
	m.store.Put(s)
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	return m.store.Get(id)
}
