package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade2048/internal/service"
)

// SessionModel manages the full terminal flow: board <-> scoreboard.
// It is the top-level model for both local and SSH sessions.
type SessionModel struct {
	svc        *service.Service
	board      Model
	scoreboard *ScoreboardModel
	width      int
	height     int
	quitting   bool
}

// NewSessionModel creates a session with a fresh game.
func NewSessionModel(svc *service.Service, opts Options) SessionModel {
	return SessionModel{
		svc:    svc,
		board:  NewModel(svc, opts),
		width:  opts.Width,
		height: opts.Height,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.board.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		// Keep the hidden board in sync with the terminal.
		next, _ := m.board.Update(msg)
		m.board = next.(Model)
	}

	if m.scoreboard != nil {
		return m.updateScoreboard(msg)
	}
	return m.updateBoard(msg)
}

func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.WindowSizeMsg); ok {
		return m, nil
	}

	next, cmd := m.board.Update(msg)
	m.board = next.(Model)

	if m.board.quitting {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board.scores {
		m.board.scores = false
		sb := NewScoreboardModel(m.svc, m.width, m.height)
		m.scoreboard = &sb
		return m, sb.Init()
	}

	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	sb := next.(ScoreboardModel)
	m.scoreboard = &sb

	if sb.IsQuitting() {
		m.quitting = true
		_ = m.svc.Delete(m.board.ctx, m.board.gameID)
		return m, tea.Quit
	}
	if sb.IsGoingBack() {
		m.scoreboard = nil
		return m, nil
	}
	return m, cmd
}

// GameID returns the id of the session's game.
func (m SessionModel) GameID() string {
	return m.board.GameID()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}
	return m.board.View()
}

// Run starts an interactive session on the local terminal.
func Run(svc *service.Service, opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(svc, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
