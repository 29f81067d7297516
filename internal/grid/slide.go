package grid

// slideLine compacts a line towards index 0 and merges equal neighbours.
// A tile produced by a merge never merges again in the same pass, so
// [2 2 4 0] becomes [4 4 0 0] rather than [8 0 0 0].
// Returns the new line and the score gained from merges.
func slideLine(line []int) (result []int, score int) {
	result = make([]int, len(line))
	merged := make([]bool, len(line))
	writePos := 0

	for _, v := range line {
		if v == 0 {
			continue
		}

		if writePos > 0 && result[writePos-1] == v && !merged[writePos-1] {
			result[writePos-1] *= 2
			score += result[writePos-1]
			merged[writePos-1] = true
			continue
		}

		result[writePos] = v
		writePos++
	}

	return result, score
}

// lineCells returns the coordinates of line i ordered from the leading
// edge of dir: row i read right-to-left for Right, column i read
// bottom-to-top for Down, and so on.
func lineCells(n int, dir Direction, i int) []Cell {
	cells := make([]Cell, n)
	for k := range n {
		switch dir {
		case Left:
			cells[k] = Cell{Row: i, Col: k}
		case Right:
			cells[k] = Cell{Row: i, Col: n - 1 - k}
		case Up:
			cells[k] = Cell{Row: k, Col: i}
		case Down:
			cells[k] = Cell{Row: n - 1 - k, Col: i}
		}
	}
	return cells
}

// Slide performs a move in the given direction.
// Returns the new grid, the score gained and whether any cell changed.
// The input grid is left untouched. Sliding towards None returns an
// unchanged copy.
func Slide(g Grid, dir Direction) (Grid, int, bool) {
	out := g.Clone()
	if !dir.Valid() {
		return out, 0, false
	}

	n := len(g)
	totalScore := 0
	changed := false
	line := make([]int, n)

	for i := range n {
		cells := lineCells(n, dir, i)
		for k, c := range cells {
			line[k] = g[c.Row][c.Col]
		}

		newLine, score := slideLine(line)
		totalScore += score

		for k, c := range cells {
			if out[c.Row][c.Col] != newLine[k] {
				changed = true
			}
			out[c.Row][c.Col] = newLine[k]
		}
	}

	return out, totalScore, changed
}

// CanMove reports whether sliding in dir would change the grid.
func CanMove(g Grid, dir Direction) bool {
	_, _, changed := Slide(g, dir)
	return changed
}

// AvailableMoves returns the effective directions in evaluation order.
func AvailableMoves(g Grid) []Direction {
	var dirs []Direction
	for _, d := range Directions {
		if CanMove(g, d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
