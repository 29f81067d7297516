// Package grid implements the tile-merging board mechanics: directional
// slides with single-merge-per-tile semantics, random tile insertion and
// terminal-state detection. All functions treat grids as values and never
// modify their input unless documented otherwise.
package grid

import (
	"math/rand"
)

// DefaultSize is the default board dimension.
const DefaultSize = 4

// Size limits for new boards.
const (
	MinSize = 2
	MaxSize = 8
)

// DefaultSpawn4Prob is the probability of inserting a 4 instead of a 2.
const DefaultSpawn4Prob = 0.1

// Grid is a square board indexed as g[row][col]. Zero means empty.
type Grid [][]int

// Cell addresses one position on a grid.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// New returns an empty n×n grid.
func New(n int) Grid {
	g := make(Grid, n)
	cells := make([]int, n*n)
	for r := range n {
		g[r] = cells[r*n : (r+1)*n : (r+1)*n]
	}
	return g
}

// Size returns the board dimension.
func (g Grid) Size() int {
	return len(g)
}

// Clone returns a deep copy that shares no memory with g.
func (g Grid) Clone() Grid {
	c := New(len(g))
	for r := range g {
		copy(c[r], g[r])
	}
	return c
}

// Equal reports whether both grids have the same size and values.
func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(o[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// EmptyCells returns the empty positions in row-major order.
func EmptyCells(g Grid) []Cell {
	var cells []Cell
	for r, row := range g {
		for c, v := range row {
			if v == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// EmptyCount returns the number of empty cells.
func EmptyCount(g Grid) int {
	n := 0
	for _, row := range g {
		for _, v := range row {
			if v == 0 {
				n++
			}
		}
	}
	return n
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(g Grid) int {
	maxVal := 0
	for _, row := range g {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func Sum(g Grid) int {
	total := 0
	for _, row := range g {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Corners returns the four corner values: top-left, top-right,
// bottom-left, bottom-right.
func Corners(g Grid) [4]int {
	n := len(g)
	if n == 0 {
		return [4]int{}
	}
	return [4]int{g[0][0], g[0][n-1], g[n-1][0], g[n-1][n-1]}
}

// Histogram counts non-empty tiles by value.
func Histogram(g Grid) map[int]int {
	counts := make(map[int]int)
	for _, row := range g {
		for _, v := range row {
			if v != 0 {
				counts[v]++
			}
		}
	}
	return counts
}

// HasPossibleMerge returns true if any two adjacent tiles are equal.
// Only right and bottom neighbours are checked; that covers every pair once.
func HasPossibleMerge(g Grid) bool {
	n := len(g)
	for r := range n {
		for c := range n {
			val := g[r][c]
			if c < n-1 && g[r][c+1] == val {
				return true
			}
			if r < n-1 && g[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// IsTerminal returns true when the grid is full and no merge is possible.
func IsTerminal(g Grid) bool {
	if EmptyCount(g) > 0 {
		return false
	}
	return !HasPossibleMerge(g)
}

// Spawn places a 2 (or a 4 with probability p4) in a uniformly chosen
// empty cell. It modifies g in place and returns false if g is full.
func Spawn(g Grid, rng *rand.Rand, p4 float64) bool {
	cells := EmptyCells(g)
	if len(cells) == 0 {
		return false
	}

	cell := cells[rng.Intn(len(cells))]

	value := 2
	if rng.Float64() < p4 {
		value = 4
	}

	g[cell.Row][cell.Col] = value
	return true
}
