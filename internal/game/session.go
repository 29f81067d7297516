// Package game implements a single 2048 session: one grid, its score and a
// bounded undo history. All mutation goes through the grid package and a
// session-owned random tile spawner.
package game

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade2048/internal/grid"
)

// DefaultHistoryCap is the number of undo snapshots kept per session.
const DefaultHistoryCap = 10

// snapshot is one saved (grid, score) pair.
type snapshot struct {
	grid  grid.Grid
	score int
}

// Session owns one grid, its score and the undo history.
type Session struct {
	rng        *rand.Rand
	spawn4Prob float64
	historyCap int

	size    int
	grid    grid.Grid
	score   int
	history []snapshot // oldest first
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used for tile spawning.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithSeed seeds the session's random source. Zero means time-based.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithHistoryCap sets how many undo snapshots are retained.
func WithHistoryCap(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.historyCap = n
		}
	}
}

// WithSpawn4Prob sets the probability of spawning a 4 instead of a 2.
func WithSpawn4Prob(p float64) Option {
	return func(s *Session) {
		if p >= 0 && p <= 1 {
			s.spawn4Prob = p
		}
	}
}

// New creates an empty size×size session. Call Initialize to start a game.
func New(size int, opts ...Option) *Session {
	s := &Session{
		spawn4Prob: grid.DefaultSpawn4Prob,
		historyCap: DefaultHistoryCap,
		size:       size,
		grid:       grid.New(size),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// FromGrid creates a session positioned on an existing grid and score.
// The grid is copied.
func FromGrid(g grid.Grid, score int, opts ...Option) *Session {
	s := New(g.Size(), opts...)
	s.grid = g.Clone()
	s.score = score
	return s
}

// Initialize clears the board, score and history, then spawns two tiles.
func (s *Session) Initialize() {
	s.grid = grid.New(s.size)
	s.score = 0
	s.history = nil

	s.spawnTile()
	s.spawnTile()
}

// spawnTile spawns a new tile (2 or 4) in a random empty cell.
func (s *Session) spawnTile() {
	grid.Spawn(s.grid, s.rng, s.spawn4Prob)
}

// pushHistory saves the current state, evicting the oldest entry when full.
func (s *Session) pushHistory() {
	if s.historyCap == 0 {
		return
	}
	s.history = append(s.history, snapshot{grid: s.grid.Clone(), score: s.score})
	if len(s.history) > s.historyCap {
		s.history = s.history[1:]
	}
}

// popHistory removes and returns the most recent snapshot.
func (s *Session) popHistory() (snapshot, bool) {
	if len(s.history) == 0 {
		return snapshot{}, false
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	return last, true
}

// ApplyMove slides the board in dir. The pre-move state is saved for undo
// only when the move is effective, though on a full history a non-effective
// move still evicts the oldest snapshot. An effective move adds the merge score
// and spawns one tile. Returns whether the board changed; None and other
// unrecognised directions are simply non-effective.
func (s *Session) ApplyMove(dir grid.Direction) bool {
	_, moved := s.applyMove(dir)
	return moved
}

// ApplyMoveGain is ApplyMove that also reports the points gained.
func (s *Session) ApplyMoveGain(dir grid.Direction) (gained int, moved bool) {
	return s.applyMove(dir)
}

func (s *Session) applyMove(dir grid.Direction) (int, bool) {
	s.pushHistory()

	newGrid, gained, changed := grid.Slide(s.grid, dir)
	if !changed {
		// Board didn't change - drop the snapshot and don't spawn
		s.popHistory()
		return 0, false
	}

	s.grid = newGrid
	s.score += gained
	s.spawnTile()

	return gained, true
}

// Undo restores the most recent saved state. Returns false when the
// history is empty.
func (s *Session) Undo() bool {
	last, ok := s.popHistory()
	if !ok {
		return false
	}
	s.grid = last.grid
	s.score = last.score
	return true
}

// IsGameOver returns true if no moves are possible.
func (s *Session) IsGameOver() bool {
	return grid.IsTerminal(s.grid)
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Size returns the board dimension.
func (s *Session) Size() int {
	return s.size
}

// Grid returns a copy of the current board.
func (s *Session) Grid() grid.Grid {
	return s.grid.Clone()
}

// HistoryLen returns the number of undo snapshots available.
func (s *Session) HistoryLen() int {
	return len(s.history)
}
