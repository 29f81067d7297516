package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade2048/internal/ai"
	"github.com/vovakirdan/arcade2048/internal/game"
	"github.com/vovakirdan/arcade2048/internal/grid"
	"github.com/vovakirdan/arcade2048/internal/service"
)

// Options configures a terminal session.
type Options struct {
	Player        string
	GridSize      int
	Difficulty    ai.Difficulty
	AutoplayDelay time.Duration
	Width         int
	Height        int
}

// Model is the Bubble Tea model for one 2048 board driven through the
// game service.
type Model struct {
	svc    *service.Service
	ctx    context.Context
	opts   Options
	gameID string

	state      game.State
	best       int // leaderboard high score
	difficulty ai.Difficulty
	hint       grid.Direction
	status     string
	err        error

	autoplay    bool
	autoplayRun int

	keys     BoardKeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
	scores   bool // set when the user asks for the leaderboard
}

// NewModel creates a board model and starts its game.
func NewModel(svc *service.Service, opts Options) Model {
	if opts.Difficulty == "" {
		opts.Difficulty = ai.Medium
	}
	h := help.New()
	h.ShowAll = false

	m := Model{
		svc:        svc,
		ctx:        context.Background(),
		opts:       opts,
		difficulty: opts.Difficulty,
		hint:       grid.None,
		keys:       DefaultBoardKeyMap(),
		help:       h,
		width:      opts.Width,
		height:     opts.Height,
	}
	m.restart()
	return m
}

// restart starts a new game under the model's id.
func (m *Model) restart() {
	id, state, err := m.svc.NewPlayerGame(m.ctx, m.gameID, m.opts.GridSize, m.opts.Player)
	if err != nil {
		m.err = err
		return
	}
	m.gameID = id
	m.state = state
	m.hint = grid.None
	m.status = ""
	m.err = nil
	m.stopAutoplay()
	m.refreshBest()
}

// refreshBest reloads the high score. A failed lookup keeps the old value.
func (m *Model) refreshBest() {
	if best, err := m.svc.HighScore(m.ctx, ""); err == nil {
		m.best = best
	}
}

func (m *Model) stopAutoplay() {
	m.autoplay = false
	m.autoplayRun++
}

// GameID returns the id of the current game.
func (m Model) GameID() string {
	return m.gameID
}

// State returns the last known game state.
func (m Model) State() game.State {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case AutoplayMsg:
		if !m.autoplay || msg.Run != m.autoplayRun {
			return m, nil
		}
		if !m.aiStep() {
			m.stopAutoplay()
			return m, nil
		}
		return m, autoplayCmd(m.autoplayRun, m.opts.AutoplayDelay)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.stopAutoplay()
		_ = m.svc.Delete(m.ctx, m.gameID)
		return m, tea.Quit

	case key.Matches(msg, m.keys.Scores):
		m.scores = true
		m.stopAutoplay()
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.restart()
		return m, nil

	case key.Matches(msg, m.keys.Autoplay):
		if m.autoplay {
			m.stopAutoplay()
			m.status = "autoplay stopped"
			return m, nil
		}
		if m.state.GameOver {
			return m, nil
		}
		m.autoplay = true
		m.autoplayRun++
		m.status = "autoplay running"
		return m, autoplayCmd(m.autoplayRun, m.opts.AutoplayDelay)
	}

	// Manual input interrupts autoplay.
	if m.autoplay {
		m.stopAutoplay()
	}

	switch {
	case key.Matches(msg, m.keys.Hint):
		m.requestHint()
	case key.Matches(msg, m.keys.Undo):
		m.undo()
	case key.Matches(msg, m.keys.AIStep):
		m.aiStep()
	case key.Matches(msg, m.keys.Difficulty):
		m.difficulty = nextDifficulty(m.difficulty)
		m.status = "ai level: " + string(m.difficulty)
		if err := m.svc.SetDifficulty(m.ctx, m.gameID, m.difficulty); err != nil {
			m.err = err
		}
	default:
		if dir := m.keys.Direction(msg); dir != grid.None {
			m.move(dir)
		}
	}

	return m, nil
}

func (m *Model) move(dir grid.Direction) {
	res, err := m.svc.Move(m.ctx, m.gameID, dir.String())
	if err != nil {
		m.err = err
		return
	}
	m.state = res.State
	m.hint = grid.None
	m.status = ""
	if res.Gained > 0 {
		m.status = fmt.Sprintf("+%d", res.Gained)
	}
	if m.state.GameOver {
		m.refreshBest()
	}
}

func (m *Model) undo() {
	ok, state, err := m.svc.Undo(m.ctx, m.gameID)
	if err != nil {
		m.err = err
		return
	}
	m.hint = grid.None
	if !ok {
		m.status = "nothing to undo"
		return
	}
	m.state = state
	m.status = "undone"
}

func (m *Model) requestHint() {
	dir, ok, err := m.svc.Hint(m.ctx, m.gameID, m.difficulty)
	if err != nil {
		m.err = err
		return
	}
	if !ok {
		m.hint = grid.None
		m.status = "no moves left"
		return
	}
	m.hint = dir
	m.status = ""
}

// aiStep lets the AI play one move and reports whether it moved.
func (m *Model) aiStep() bool {
	res, err := m.svc.AIMove(m.ctx, m.gameID, m.difficulty)
	m.state = res.State
	m.hint = grid.None
	switch {
	case errors.Is(err, service.ErrNoMoveAvailable):
		m.status = "no moves left"
		return false
	case err != nil:
		m.err = err
		return false
	}
	m.status = "ai: " + res.Direction.String()
	if m.state.GameOver {
		m.refreshBest()
	}
	return res.Moved
}

// nextDifficulty cycles easy, medium, hard.
func nextDifficulty(d ai.Difficulty) ai.Difficulty {
	for i, v := range ai.Difficulties {
		if v == d {
			return ai.Difficulties[(i+1)%len(ai.Difficulties)]
		}
	}
	return ai.Medium
}

// View renders the board, HUD and help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("2048"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Score: %d   Best: %d   Max: %d   AI: %s\n",
		m.state.Score, m.best, grid.MaxTile(m.state.Grid), m.difficulty)
	b.WriteString("\n")

	if m.state.Grid != nil {
		b.WriteString(RenderGrid(m.state.Grid))
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(overStyle.Render("error: " + m.err.Error()))
	case m.state.GameOver:
		b.WriteString(overStyle.Render("GAME OVER") + dimStyle.Render("  press r to restart"))
	case m.hint != grid.None:
		b.WriteString(statusStyle.Render("hint: " + m.hint.String()))
	default:
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, b.String())
	}
	return b.String()
}
