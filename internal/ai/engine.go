// Package ai implements the move advisor: a depth-limited minimax search
// with alpha-beta pruning over agent moves and adversarial tile placements,
// scored by a composite board heuristic.
package ai

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/arcade2048/internal/grid"
)

// DefaultAdversaryCells caps how many empty cells the adversary considers.
const DefaultAdversaryCells = 4

// InvalidMovePenalty is the score reported for a move that changes nothing.
const InvalidMovePenalty = -1000

// Position is anything the advisor can read a board from.
// *game.Session satisfies it.
type Position interface {
	Grid() grid.Grid
	Score() int
}

// Engine holds the advisor configuration. It is safe for concurrent use;
// every search runs on private copies with its own random source.
type Engine struct {
	weights        Weights
	levels         Levels
	adversaryCells int
	spawn4Prob     float64

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeights overrides the heuristic coefficients.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithLevels overrides the difficulty table. Missing entries keep their
// built-in values.
func WithLevels(l Levels) Option {
	return func(e *Engine) {
		for d, lvl := range l {
			if lvl.Depth > 0 {
				e.levels[d] = lvl
			}
		}
	}
}

// WithAdversaryCells sets how many empty cells the adversary tries per node.
func WithAdversaryCells(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.adversaryCells = n
		}
	}
}

// WithSpawn4Prob sets the 4-tile probability used when simulating agent moves.
func WithSpawn4Prob(p float64) Option {
	return func(e *Engine) {
		if p >= 0 && p <= 1 {
			e.spawn4Prob = p
		}
	}
}

// WithSeed seeds the engine's random source. Zero means time-based.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// NewEngine creates an advisor with default weights and difficulty table.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights:        DefaultWeights(),
		levels:         DefaultLevels(),
		adversaryCells: DefaultAdversaryCells,
		spawn4Prob:     grid.DefaultSpawn4Prob,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// Weights returns the heuristic coefficients in use.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Level returns the search parameters for d.
func (e *Engine) Level(d Difficulty) Level {
	return e.levels.Get(d)
}

// newSearcher derives a private searcher for one call.
func (e *Engine) newSearcher(d Difficulty) *searcher {
	e.mu.Lock()
	seed := e.rng.Int63()
	e.mu.Unlock()

	return &searcher{
		weights:        e.weights,
		level:          e.levels.Get(d),
		adversaryCells: e.adversaryCells,
		spawn4Prob:     e.spawn4Prob,
		rng:            rand.New(rand.NewSource(seed)),
	}
}

// Evaluate scores a board at the given difficulty, including its noise term.
func (e *Engine) Evaluate(g grid.Grid, score int, d Difficulty) float64 {
	s := e.newSearcher(d)
	return s.evaluate(node{grid: g, score: score})
}
