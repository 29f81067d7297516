package grid

import "strings"

// Direction represents a move direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right

	// None is produced for unrecognised direction tokens.
	// Sliding in this direction never changes a grid.
	None Direction = -1
)

// Directions lists the four playable directions in evaluation order.
var Directions = [4]Direction{Up, Down, Left, Right}

// String returns the lowercase wire name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Valid reports whether d is one of the four playable directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// ParseDirection maps a token such as "left" or "UP" to a Direction.
// Unknown tokens yield None rather than an error.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up
	case "down":
		return Down
	case "left":
		return Left
	case "right":
		return Right
	default:
		return None
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
