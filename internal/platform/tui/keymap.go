package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade2048/internal/grid"
)

// BoardKeyMap defines the key bindings for the game board.
type BoardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Hint       key.Binding
	Undo       key.Binding
	AIStep     key.Binding
	Autoplay   key.Binding
	Difficulty key.Binding
	Restart    key.Binding
	Scores     key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Hint, k.Undo, k.AIStep, k.Autoplay, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Hint, k.Undo, k.AIStep, k.Autoplay},
		{k.Difficulty, k.Restart, k.Scores, k.Quit},
	}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("arrows/wasd", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("down/s", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("left/a", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("right/d", "move right"),
		),
		Hint: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hint"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		AIStep: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "ai move"),
		),
		Autoplay: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "autoplay"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "ai level"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Direction maps a key to a move direction. It returns grid.None for keys
// that are not moves.
func (k BoardKeyMap) Direction(msg tea.KeyMsg) grid.Direction {
	switch {
	case key.Matches(msg, k.Up):
		return grid.Up
	case key.Matches(msg, k.Down):
		return grid.Down
	case key.Matches(msg, k.Left):
		return grid.Left
	case key.Matches(msg, k.Right):
		return grid.Right
	}
	return grid.None
}
