// Package store keeps live game sessions keyed by game id.
package store

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/arcade2048/internal/ai"
	"github.com/vovakirdan/arcade2048/internal/game"
)

// Mode tells who plays a session.
type Mode string

const (
	ModeHuman Mode = "human"
	ModeAI    Mode = "ai"
)

// Entry is one stored session. Callers must hold the entry lock while
// reading or mutating Session and Recorded.
type Entry struct {
	mu sync.Mutex

	Session *game.Session
	Mode    Mode
	Player  string // leaderboard name; the game id is used when empty

	// Recorded is set once the finished game has been saved to the leaderboard.
	Recorded bool

	CreatedAt time.Time

	difficulty atomic.Value // ai.Difficulty of the attached AI player
}

// NewEntry wraps a session.
func NewEntry(s *game.Session, mode Mode) *Entry {
	return &Entry{
		Session:   s,
		Mode:      mode,
		CreatedAt: time.Now(),
	}
}

// Lock acquires the entry lock.
func (e *Entry) Lock() { e.mu.Lock() }

// Unlock releases the entry lock.
func (e *Entry) Unlock() { e.mu.Unlock() }

// Difficulty returns the attached AI player's difficulty, or "" if none.
// It does not require the entry lock.
func (e *Entry) Difficulty() ai.Difficulty {
	d, _ := e.difficulty.Load().(ai.Difficulty)
	return d
}

// SetDifficulty attaches an AI player with difficulty d.
func (e *Entry) SetDifficulty(d ai.Difficulty) {
	e.difficulty.Store(d)
}

// HasAI reports whether an AI player is attached.
func (e *Entry) HasAI() bool {
	return e.Difficulty() != ""
}

// Store is the session lookup used by the game service.
type Store interface {
	Get(id string) (*Entry, bool)
	// Put stores e under id, replacing any existing entry.
	Put(id string, e *Entry)
	// Delete removes id and reports whether it existed.
	Delete(id string) bool
	Count() int
	CountAI() int
}

// MemoryStore is a process-resident Store.
// It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*Entry),
	}
}

// Get returns the entry for id.
func (m *MemoryStore) Get(id string) (*Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	return e, ok
}

// Put stores an entry.
func (m *MemoryStore) Put(id string, e *Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = e
}

// Delete removes an entry.
func (m *MemoryStore) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[id]
	delete(m.entries, id)
	return ok
}

// Count returns the number of stored games.
func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// CountAI returns the number of games with an AI player attached.
func (m *MemoryStore) CountAI() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, e := range m.entries {
		if e.HasAI() {
			n++
		}
	}
	return n
}
