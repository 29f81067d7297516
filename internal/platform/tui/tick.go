// Package tui provides the Bubble Tea front end for arcade2048: a playable
// board with AI hints and autoplay, a leaderboard view and an SSH server
// that hosts both.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// AutoplayMsg triggers the next AI move while autoplay is on.
type AutoplayMsg struct {
	// Run identifies the autoplay run; stale ticks from a stopped run are ignored.
	Run int
}

// autoplayCmd schedules the next autoplay move after delay.
func autoplayCmd(run int, delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return AutoplayMsg{Run: run} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return AutoplayMsg{Run: run}
	})
}
