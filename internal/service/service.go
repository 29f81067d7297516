// Package service implements the game operations exposed by the API and the
// terminal clients: session lifecycle, moves, undo, and the AI-backed
// hint, move, evaluation and ranking calls.
package service

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/arcade2048/internal/ai"
	"github.com/vovakirdan/arcade2048/internal/game"
	"github.com/vovakirdan/arcade2048/internal/grid"
	"github.com/vovakirdan/arcade2048/internal/storage"
	"github.com/vovakirdan/arcade2048/internal/store"
)

// Well-known game ids.
const (
	DefaultGameID = "default"
	HumanGameID   = "human"
	AIGameID      = "ai_game"
)

// Leaderboard records finished games. *storage.Store satisfies it.
type Leaderboard interface {
	SaveResult(ctx context.Context, r storage.Result) (int64, error)
	TopScores(ctx context.Context, mode string, limit int) ([]storage.Result, error)
	HighScore(ctx context.Context, mode string) (int, error)
}

// Settings are the defaults applied to new sessions.
type Settings struct {
	GridSize   int
	HistoryCap int
	Spawn4Prob float64
}

// DefaultSettings returns the standard session defaults.
func DefaultSettings() Settings {
	return Settings{
		GridSize:   grid.DefaultSize,
		HistoryCap: game.DefaultHistoryCap,
		Spawn4Prob: grid.DefaultSpawn4Prob,
	}
}

// Service coordinates the session store, the AI engine and the leaderboard.
type Service struct {
	store       store.Store
	engine      *ai.Engine
	leaderboard Leaderboard
	logger      *log.Logger
	settings    Settings

	seedMu sync.Mutex
	seeds  *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLeaderboard enables recording of finished games.
func WithLeaderboard(lb Leaderboard) Option {
	return func(s *Service) {
		s.leaderboard = lb
	}
}

// WithSettings overrides the session defaults.
func WithSettings(st Settings) Option {
	return func(s *Service) {
		s.settings = st
	}
}

// WithSeed makes session tile spawning reproducible. Zero means time-based.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		if seed != 0 {
			s.seeds = rand.New(rand.NewSource(seed))
		}
	}
}

// New creates a Service over st using engine for all AI calls.
func New(st store.Store, engine *ai.Engine, opts ...Option) *Service {
	s := &Service{
		store:    st,
		engine:   engine,
		logger:   log.New(io.Discard),
		settings: DefaultSettings(),
		seeds:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine returns the AI engine.
func (s *Service) Engine() *ai.Engine {
	return s.engine
}

// MoveResult is the outcome of a human or AI move.
type MoveResult struct {
	Direction grid.Direction `json:"move"`
	Moved     bool           `json:"moved"`
	Gained    int            `json:"points_gained"`
	State     game.State     `json:"game_state"`
}

// VsGame holds the two sessions of a human-versus-AI match.
type VsGame struct {
	HumanID    string        `json:"human_id"`
	AIID       string        `json:"ai_id"`
	Human      game.State    `json:"human_state"`
	AI         game.State    `json:"ai_state"`
	Difficulty ai.Difficulty `json:"difficulty"`
}

// Health summarises the store.
type Health struct {
	Status          string `json:"status"`
	ActiveGames     int    `json:"active_games"`
	ActiveAIPlayers int    `json:"active_ai_players"`
}

func (s *Service) nextSeed() int64 {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	return s.seeds.Int63()
}

func (s *Service) newSession(size int) (*game.Session, error) {
	if size == 0 {
		size = s.settings.GridSize
	}
	if size < grid.MinSize || size > grid.MaxSize {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidGridSize, size, grid.MinSize, grid.MaxSize)
	}

	sess := game.New(size,
		game.WithSeed(s.nextSeed()),
		game.WithHistoryCap(s.settings.HistoryCap),
		game.WithSpawn4Prob(s.settings.Spawn4Prob),
	)
	sess.Initialize()
	return sess, nil
}

// acquire looks up id and returns its entry locked. The caller must Unlock.
func (s *Service) acquire(id string) (*store.Entry, error) {
	e, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	e.Lock()
	return e, nil
}

// NewGame starts a fresh session under id, replacing any existing one.
// An empty id gets a generated one. Size 0 selects the configured default.
// An AI player attached to the old session stays attached.
func (s *Service) NewGame(ctx context.Context, id string, size int) (string, game.State, error) {
	return s.NewPlayerGame(ctx, id, size, "")
}

// NewPlayerGame is NewGame with a leaderboard name attached to the session.
func (s *Service) NewPlayerGame(_ context.Context, id string, size int, player string) (string, game.State, error) {
	if id == "" {
		id = uuid.NewString()
	}

	sess, err := s.newSession(size)
	if err != nil {
		return "", game.State{}, err
	}

	e := store.NewEntry(sess, store.ModeHuman)
	e.Player = player
	if prev, ok := s.store.Get(id); ok && prev.HasAI() {
		e.SetDifficulty(prev.Difficulty())
	}
	s.store.Put(id, e)

	s.logger.Info("game created", "game_id", id, "size", sess.Size())
	return id, sess.State(), nil
}

// NewVsGame starts the human and AI sessions of a versus match and attaches
// an AI player with difficulty d to the AI session.
func (s *Service) NewVsGame(_ context.Context, size int, d ai.Difficulty) (VsGame, error) {
	human, err := s.newSession(size)
	if err != nil {
		return VsGame{}, err
	}
	bot, err := s.newSession(size)
	if err != nil {
		return VsGame{}, err
	}

	s.store.Put(HumanGameID, store.NewEntry(human, store.ModeHuman))

	botEntry := store.NewEntry(bot, store.ModeAI)
	botEntry.SetDifficulty(d)
	s.store.Put(AIGameID, botEntry)

	s.logger.Info("versus game created", "size", human.Size(), "difficulty", d)
	return VsGame{
		HumanID:    HumanGameID,
		AIID:       AIGameID,
		Human:      human.State(),
		AI:         bot.State(),
		Difficulty: d,
	}, nil
}

// Move applies a direction token to game id. Unrecognised tokens are
// non-effective moves, not errors.
func (s *Service) Move(ctx context.Context, id, token string) (MoveResult, error) {
	e, err := s.acquire(id)
	if err != nil {
		return MoveResult{}, err
	}
	defer e.Unlock()

	dir := grid.ParseDirection(token)
	gained, moved := e.Session.ApplyMoveGain(dir)
	if moved {
		s.recordIfOver(ctx, id, e)
	}

	return MoveResult{
		Direction: dir,
		Moved:     moved,
		Gained:    gained,
		State:     e.Session.State(),
	}, nil
}

// Undo restores the previous state of game id.
func (s *Service) Undo(_ context.Context, id string) (bool, game.State, error) {
	e, err := s.acquire(id)
	if err != nil {
		return false, game.State{}, err
	}
	defer e.Unlock()

	ok := e.Session.Undo()
	return ok, e.Session.State(), nil
}

// State returns the current state of game id.
func (s *Service) State(_ context.Context, id string) (game.State, error) {
	e, err := s.acquire(id)
	if err != nil {
		return game.State{}, err
	}
	defer e.Unlock()

	return e.Session.State(), nil
}

// Hint returns the AI's preferred direction for game id at difficulty d.
// The boolean is false when no move changes the board.
func (s *Service) Hint(_ context.Context, id string, d ai.Difficulty) (grid.Direction, bool, error) {
	e, err := s.acquire(id)
	if err != nil {
		return grid.None, false, err
	}
	defer e.Unlock()

	dir, stats, ok := s.engine.BestMoveWithStats(e.Session, d)
	s.logger.Debug("hint", "game_id", id, "difficulty", d, "move", dir,
		"nodes", stats.Nodes, "leaves", stats.Leaves, "prunes", stats.Prunes)
	return dir, ok, nil
}

// AIMove lets the AI play one move on game id. The first call attaches an
// AI player with difficulty d; later calls keep the attached difficulty.
// Returns ErrNoMoveAvailable when the board cannot move.
func (s *Service) AIMove(ctx context.Context, id string, d ai.Difficulty) (MoveResult, error) {
	e, err := s.acquire(id)
	if err != nil {
		return MoveResult{}, err
	}
	defer e.Unlock()

	return s.aiStep(ctx, id, e, d)
}

// aiStep plays one AI move on a locked entry.
func (s *Service) aiStep(ctx context.Context, id string, e *store.Entry, d ai.Difficulty) (MoveResult, error) {
	if !e.HasAI() {
		e.SetDifficulty(d)
	}
	e.Mode = store.ModeAI
	d = e.Difficulty()

	start := time.Now()
	dir, stats, ok := s.engine.BestMoveWithStats(e.Session, d)
	if !ok {
		s.recordIfOver(ctx, id, e)
		return MoveResult{State: e.Session.State(), Direction: grid.None}, fmt.Errorf("%w: %s", ErrNoMoveAvailable, id)
	}

	gained, moved := e.Session.ApplyMoveGain(dir)
	s.logger.Debug("ai move", "game_id", id, "difficulty", d, "move", dir,
		"nodes", stats.Nodes, "prunes", stats.Prunes, "took", time.Since(start))
	if moved {
		s.recordIfOver(ctx, id, e)
	}

	return MoveResult{
		Direction: dir,
		Moved:     moved,
		Gained:    gained,
		State:     e.Session.State(),
	}, nil
}

// SetDifficulty changes the difficulty of the AI player attached to game
// id. Without one it does nothing; the next AIMove attaches its own.
func (s *Service) SetDifficulty(_ context.Context, id string, d ai.Difficulty) error {
	e, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	if !e.HasAI() {
		return nil
	}
	e.SetDifficulty(d)
	s.logger.Debug("difficulty set", "game_id", id, "difficulty", d)
	return nil
}

// EvaluateMove scores a single direction token for game id without
// changing it.
func (s *Service) EvaluateMove(_ context.Context, id, token string) (ai.MoveScore, error) {
	e, err := s.acquire(id)
	if err != nil {
		return ai.MoveScore{}, err
	}
	defer e.Unlock()

	return s.engine.EvaluateMove(e.Session, grid.ParseDirection(token)), nil
}

// BestMoves ranks the effective moves of game id, best first.
func (s *Service) BestMoves(_ context.Context, id string) ([]ai.MoveScore, error) {
	e, err := s.acquire(id)
	if err != nil {
		return nil, err
	}
	defer e.Unlock()

	ranked := s.engine.RankMoves(e.Session)
	moves := make([]ai.MoveScore, 0, len(ranked))
	for _, m := range ranked {
		if m.Moved {
			moves = append(moves, m)
		}
	}
	return moves, nil
}

// Stats returns board statistics for game id.
func (s *Service) Stats(_ context.Context, id string) (game.Stats, error) {
	e, err := s.acquire(id)
	if err != nil {
		return game.Stats{}, err
	}
	defer e.Unlock()

	return e.Session.Stats(), nil
}

// Delete removes game id and its AI player. Deleting a missing game is not
// an error.
func (s *Service) Delete(_ context.Context, id string) error {
	if s.store.Delete(id) {
		s.logger.Info("game deleted", "game_id", id)
	}
	return nil
}

// Health reports the number of live games and attached AI players.
func (s *Service) Health() Health {
	return Health{
		Status:          "healthy",
		ActiveGames:     s.store.Count(),
		ActiveAIPlayers: s.store.CountAI(),
	}
}

// Scores returns the leaderboard for mode ("" for all modes).
func (s *Service) Scores(ctx context.Context, mode string, limit int) ([]storage.Result, error) {
	if s.leaderboard == nil {
		return nil, nil
	}
	return s.leaderboard.TopScores(ctx, mode, limit)
}

// HighScore returns the best recorded score for mode ("" for all modes).
// It is 0 without a leaderboard.
func (s *Service) HighScore(ctx context.Context, mode string) (int, error) {
	if s.leaderboard == nil {
		return 0, nil
	}
	return s.leaderboard.HighScore(ctx, mode)
}

// recordIfOver saves a finished game to the leaderboard once. Storage
// failures are logged and never fail the move.
func (s *Service) recordIfOver(ctx context.Context, id string, e *store.Entry) {
	if e.Recorded || !e.Session.IsGameOver() {
		return
	}
	e.Recorded = true

	st := e.Session.Stats()
	s.logger.Info("game over", "game_id", id, "mode", e.Mode, "score", st.Score, "max_tile", st.MaxTile)

	if s.leaderboard == nil {
		return
	}

	player := e.Player
	if player == "" {
		player = id
	}
	_, err := s.leaderboard.SaveResult(ctx, storage.Result{
		GameID:   id,
		Player:   player,
		Mode:     string(e.Mode),
		GridSize: e.Session.Size(),
		Score:    st.Score,
		MaxTile:  st.MaxTile,
	})
	if err != nil {
		s.logger.Error("failed to save result", "game_id", id, "err", err)
	}
}
