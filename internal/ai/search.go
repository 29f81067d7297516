package ai

import (
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/arcade2048/internal/grid"
)

// SearchStats counts the work done by one search.
type SearchStats struct {
	Nodes  int `json:"nodes"`
	Leaves int `json:"leaves"`
	Prunes int `json:"prunes"`
}

// MoveScore is the evaluation of a single candidate direction.
type MoveScore struct {
	Direction    grid.Direction `json:"direction"`
	Moved        bool           `json:"moved"`
	Score        float64        `json:"score"`
	PointsGained int            `json:"points_gained"`
}

type searcher struct {
	weights        Weights
	level          Level
	adversaryCells int
	spawn4Prob     float64
	rng            *rand.Rand
	stats          SearchStats
}

func (s *searcher) evaluate(n node) float64 {
	v := Heuristic(n.grid, n.score, s.weights)
	if r := s.level.Randomness; r > 0 {
		v += float64(s.rng.Intn(2*r+1) - r)
	}
	return v
}

// agentMove plays dir on a copy of n the way a session does: slide, add
// the merge score and spawn one random tile.
func (s *searcher) agentMove(n node, dir grid.Direction) (node, int, bool) {
	g, gained, changed := grid.Slide(n.grid, dir)
	if !changed {
		return node{}, 0, false
	}
	grid.Spawn(g, s.rng, s.spawn4Prob)
	return node{grid: g, score: n.score + gained}, gained, true
}

// minimax returns the value of n searched to depth. Agent nodes maximise
// over the four directions; adversary nodes minimise over 2 and 4 placed in
// the first adversaryCells empty cells in row-major order.
func (s *searcher) minimax(n node, depth int, maximizing bool, alpha, beta float64) float64 {
	s.stats.Nodes++

	if depth == 0 || grid.IsTerminal(n.grid) {
		s.stats.Leaves++
		return s.evaluate(n)
	}

	if maximizing {
		best := math.Inf(-1)
		expanded := false
		for _, dir := range grid.Directions {
			child, _, ok := s.agentMove(n, dir)
			if !ok {
				continue
			}
			expanded = true
			v := s.minimax(child, depth-1, false, alpha, beta)
			best = max(best, v)
			alpha = max(alpha, v)
			if beta <= alpha {
				s.stats.Prunes++
				break
			}
		}
		if !expanded {
			s.stats.Leaves++
			return s.evaluate(n)
		}
		return best
	}

	cells := grid.EmptyCells(n.grid)
	if len(cells) > s.adversaryCells {
		cells = cells[:s.adversaryCells]
	}
	// A full board that can still merge has no placements and stays at +Inf.
	best := math.Inf(1)
	for _, cell := range cells {
		for _, value := range [2]int{2, 4} {
			g := n.grid.Clone()
			g[cell.Row][cell.Col] = value
			v := s.minimax(node{grid: g, score: n.score}, depth-1, true, alpha, beta)
			best = min(best, v)
			beta = min(beta, v)
			if beta <= alpha {
				break
			}
		}
		if beta <= alpha {
			s.stats.Prunes++
			break
		}
	}
	return best
}

// BestMove returns the direction with the highest search value for p at
// difficulty d. Directions are tried in the order Up, Down, Left, Right and
// only a strictly greater value replaces the current best, so ties go to
// the earliest. Returns false when no direction changes the board.
// p is never modified.
func (e *Engine) BestMove(p Position, d Difficulty) (grid.Direction, bool) {
	dir, _, ok := e.BestMoveWithStats(p, d)
	return dir, ok
}

// BestMoveWithStats is BestMove that also reports search counters.
func (e *Engine) BestMoveWithStats(p Position, d Difficulty) (grid.Direction, SearchStats, bool) {
	s := e.newSearcher(d)
	root := node{grid: p.Grid(), score: p.Score()}

	bestDir := grid.None
	bestScore := math.Inf(-1)

	for _, dir := range grid.Directions {
		child, _, ok := s.agentMove(root, dir)
		if !ok {
			continue
		}
		v := s.minimax(child, s.level.Depth-1, false, math.Inf(-1), math.Inf(1))
		if bestDir == grid.None || v > bestScore {
			bestScore = v
			bestDir = dir
		}
	}

	return bestDir, s.stats, bestDir != grid.None
}

// EvaluateMove plays dir once on a copy of p and scores the result at
// Medium difficulty. Non-effective moves score InvalidMovePenalty.
func (e *Engine) EvaluateMove(p Position, dir grid.Direction) MoveScore {
	s := e.newSearcher(Medium)
	return s.scoreMove(node{grid: p.Grid(), score: p.Score()}, dir)
}

func (s *searcher) scoreMove(root node, dir grid.Direction) MoveScore {
	child, gained, ok := s.agentMove(root, dir)
	if !ok {
		return MoveScore{Direction: dir, Score: InvalidMovePenalty}
	}
	return MoveScore{
		Direction:    dir,
		Moved:        true,
		Score:        s.evaluate(child),
		PointsGained: gained,
	}
}

// RankMoves scores all four directions of p, best first. Effective moves
// sort ahead of non-effective ones; equal scores keep Up, Down, Left, Right
// order.
func (e *Engine) RankMoves(p Position) []MoveScore {
	s := e.newSearcher(Medium)
	root := node{grid: p.Grid(), score: p.Score()}

	moves := make([]MoveScore, 0, len(grid.Directions))
	for _, dir := range grid.Directions {
		moves = append(moves, s.scoreMove(root, dir))
	}

	sort.SliceStable(moves, func(i, j int) bool {
		if moves[i].Moved != moves[j].Moved {
			return moves[i].Moved
		}
		return moves[i].Score > moves[j].Score
	})
	return moves
}
