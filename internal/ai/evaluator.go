package ai

import (
	"math"
	"math/bits"

	"github.com/vovakirdan/arcade2048/internal/grid"
)

// Weights are the heuristic coefficients.
type Weights struct {
	Empty            float64 `yaml:"empty" json:"empty"`
	Monotonicity     float64 `yaml:"monotonicity" json:"monotonicity"`
	Smoothness       float64 `yaml:"smoothness" json:"smoothness"`
	CornerMultiplier float64 `yaml:"corner_multiplier" json:"corner_multiplier"`
}

// DefaultWeights returns the standard heuristic coefficients.
func DefaultWeights() Weights {
	return Weights{
		Empty:            100,
		Monotonicity:     50,
		Smoothness:       30,
		CornerMultiplier: 2,
	}
}

// node is a search position. It owns its grid.
type node struct {
	grid  grid.Grid
	score int
}

// Heuristic scores a position without the difficulty noise term:
//
//	score + empty*W.Empty + monotonicity*W.Monotonicity
//	  + smoothness*W.Smoothness + corner bonus
//
// The corner bonus is maxTile*W.CornerMultiplier when the largest tile sits
// in one of the four corners.
func Heuristic(g grid.Grid, score int, w Weights) float64 {
	total := float64(score)
	total += float64(grid.EmptyCount(g)) * w.Empty
	total += float64(Monotonicity(g)) * w.Monotonicity
	total += Smoothness(g) * w.Smoothness

	maxTile := grid.MaxTile(g)
	for _, v := range grid.Corners(g) {
		if v == maxTile {
			total += float64(maxTile) * w.CornerMultiplier
			break
		}
	}

	return total
}

// Monotonicity sums, over every row and column, the larger of the number of
// strictly increasing and strictly decreasing adjacent pairs.
func Monotonicity(g grid.Grid) int {
	n := len(g)
	total := 0

	for r := range n {
		inc, dec := 0, 0
		for c := 1; c < n; c++ {
			switch {
			case g[r][c] > g[r][c-1]:
				inc++
			case g[r][c] < g[r][c-1]:
				dec++
			}
		}
		total += max(inc, dec)
	}

	for c := range n {
		inc, dec := 0, 0
		for r := 1; r < n; r++ {
			switch {
			case g[r][c] > g[r-1][c]:
				inc++
			case g[r][c] < g[r-1][c]:
				dec++
			}
		}
		total += max(inc, dec)
	}

	return total
}

// Smoothness is the negated sum of |log2(a) - log2(b)| over every pair of
// non-empty right and bottom neighbours. A perfectly smooth board scores 0.
func Smoothness(g grid.Grid) float64 {
	n := len(g)
	total := 0.0

	for r := range n {
		for c := range n {
			v := g[r][c]
			if v == 0 {
				continue
			}
			if c < n-1 && g[r][c+1] != 0 {
				total -= math.Abs(log2(v) - log2(g[r][c+1]))
			}
			if r < n-1 && g[r+1][c] != 0 {
				total -= math.Abs(log2(v) - log2(g[r+1][c]))
			}
		}
	}

	return total
}

// log2 of a tile value. Tiles are powers of two, so the bit length is exact.
func log2(v int) float64 {
	if v > 0 && v&(v-1) == 0 {
		return float64(bits.Len(uint(v)) - 1)
	}
	return math.Log2(float64(v))
}
