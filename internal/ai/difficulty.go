package ai

import "strings"

// Difficulty selects the search depth and evaluation noise of the advisor.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists all difficulty levels in ascending order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty returns the Difficulty for s. Empty or unknown names map
// to Medium.
func ParseDifficulty(s string) Difficulty {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Easy, Medium, Hard:
		return d
	default:
		return Medium
	}
}

// String returns the difficulty name.
func (d Difficulty) String() string {
	return string(d)
}

// Level holds the search parameters for one difficulty.
type Level struct {
	Depth      int `yaml:"depth" json:"depth"`
	Randomness int `yaml:"randomness" json:"randomness"` // evaluation noise amplitude, uniform in [-r, r]
}

// Levels maps each difficulty to its search parameters.
type Levels map[Difficulty]Level

// DefaultLevels returns the built-in difficulty table.
func DefaultLevels() Levels {
	return Levels{
		Easy:   {Depth: 2, Randomness: 1000},
		Medium: {Depth: 3, Randomness: 500},
		Hard:   {Depth: 4, Randomness: 0},
	}
}

// Get returns the level for d, falling back to Medium and then to the
// built-in table when entries are missing.
func (l Levels) Get(d Difficulty) Level {
	if lvl, ok := l[d]; ok && lvl.Depth > 0 {
		return lvl
	}
	if lvl, ok := l[Medium]; ok && lvl.Depth > 0 {
		return lvl
	}
	return DefaultLevels()[Medium]
}
