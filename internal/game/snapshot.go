package game

import "github.com/vovakirdan/arcade2048/internal/grid"

// State is an immutable view of a session returned to callers.
type State struct {
	Grid     grid.Grid `json:"grid"`
	Score    int       `json:"score"`
	GameOver bool      `json:"game_over"`
}

// State returns the current game state. The grid is a copy.
func (s *Session) State() State {
	return State{
		Grid:     s.grid.Clone(),
		Score:    s.score,
		GameOver: s.IsGameOver(),
	}
}

// Stats aggregates board statistics.
type Stats struct {
	Score          int         `json:"score"`
	MaxTile        int         `json:"max_tile"`
	EmptyCells     int         `json:"empty_cells"`
	FilledCells    int         `json:"filled_cells"`
	Distribution   map[int]int `json:"tile_distribution"`
	MovesAvailable int         `json:"moves_available"`
	GameOver       bool        `json:"game_over"`
}

// Stats computes statistics for the current board.
func (s *Session) Stats() Stats {
	empty := grid.EmptyCount(s.grid)
	return Stats{
		Score:          s.score,
		MaxTile:        grid.MaxTile(s.grid),
		EmptyCells:     empty,
		FilledCells:    s.size*s.size - empty,
		Distribution:   grid.Histogram(s.grid),
		MovesAvailable: len(grid.AvailableMoves(s.grid)),
		GameOver:       s.IsGameOver(),
	}
}
