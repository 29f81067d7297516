package game

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/arcade2048/internal/grid"
)

func newTestSession(seed int64) *Session {
	s := New(4, WithRand(rand.New(rand.NewSource(seed))))
	s.Initialize()
	return s
}

// playEffective applies the first available move and reports whether one existed.
func playEffective(s *Session) bool {
	moves := grid.AvailableMoves(s.grid)
	if len(moves) == 0 {
		return false
	}
	return s.ApplyMove(moves[0])
}

func TestInitialize(t *testing.T) {
	s := newTestSession(1)

	if got := grid.EmptyCount(s.grid); got != 14 {
		t.Errorf("empty cells after Initialize = %d, want 14", got)
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
	if s.HistoryLen() != 0 {
		t.Errorf("history = %d, want 0", s.HistoryLen())
	}

	s.ApplyMove(grid.AvailableMoves(s.grid)[0])
	s.Initialize()
	if s.HistoryLen() != 0 || s.Score() != 0 {
		t.Errorf("Initialize should reset score and history, got score=%d history=%d", s.Score(), s.HistoryLen())
	}
}

func TestApplyMoveMergesAndSpawns(t *testing.T) {
	s := FromGrid(grid.Grid{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 0, WithRand(rand.New(rand.NewSource(3))))

	gained, moved := s.ApplyMoveGain(grid.Left)
	if !moved {
		t.Fatal("expected move to be effective")
	}
	if gained != 4 || s.Score() != 4 {
		t.Errorf("gained=%d score=%d, want 4 and 4", gained, s.Score())
	}
	if s.grid[0][0] != 4 {
		t.Errorf("merged tile = %d, want 4", s.grid[0][0])
	}
	if got := grid.EmptyCount(s.grid); got != 14 {
		t.Errorf("empty cells = %d, want 14 (merged tile + spawn)", got)
	}
	if s.HistoryLen() != 1 {
		t.Errorf("history = %d, want 1", s.HistoryLen())
	}
}

func TestApplyMoveNoOp(t *testing.T) {
	s := FromGrid(grid.Grid{
		{2, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 12, WithRand(rand.New(rand.NewSource(5))))
	before := s.Grid()

	for _, dir := range []grid.Direction{grid.Left, grid.Up, grid.None, grid.Direction(42)} {
		if s.ApplyMove(dir) {
			t.Errorf("ApplyMove(%v) reported a change", dir)
		}
	}
	if !s.grid.Equal(before) {
		t.Errorf("grid changed on non-effective moves: %v", s.grid)
	}
	if s.Score() != 12 {
		t.Errorf("score = %d, want 12", s.Score())
	}
	if s.HistoryLen() != 0 {
		t.Errorf("history = %d, want 0 after non-effective moves", s.HistoryLen())
	}
}

func TestSumAfterMove(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := range 100 {
		s := New(4, WithRand(rand.New(rand.NewSource(int64(trial)))))
		s.Initialize()
		for range 20 {
			dir := grid.Directions[rng.Intn(4)]
			before := grid.Sum(s.grid)
			if !s.ApplyMove(dir) {
				continue
			}
			diff := grid.Sum(s.grid) - before
			if diff != 2 && diff != 4 {
				t.Fatalf("trial %d: sum grew by %d, want 2 or 4", trial, diff)
			}
		}
	}
}

func TestUndoRestoresExactStates(t *testing.T) {
	s := newTestSession(7)

	var states []State
	for range DefaultHistoryCap {
		states = append(states, s.State())
		if !playEffective(s) {
			t.Fatal("ran out of moves")
		}
	}

	for i := len(states) - 1; i >= 0; i-- {
		if !s.Undo() {
			t.Fatalf("Undo failed at step %d", i)
		}
		got := s.State()
		if !got.Grid.Equal(states[i].Grid) || got.Score != states[i].Score {
			t.Fatalf("undo step %d: got %v/%d, want %v/%d", i, got.Grid, got.Score, states[i].Grid, states[i].Score)
		}
	}

	if s.Undo() {
		t.Error("Undo should fail with empty history")
	}
}

func TestUndoEvictsOldest(t *testing.T) {
	s := newTestSession(9)

	var states []State
	for range DefaultHistoryCap + 3 {
		states = append(states, s.State())
		if !playEffective(s) {
			t.Fatal("ran out of moves")
		}
	}

	if s.HistoryLen() != DefaultHistoryCap {
		t.Fatalf("history = %d, want %d", s.HistoryLen(), DefaultHistoryCap)
	}

	undone := 0
	for s.Undo() {
		undone++
	}
	if undone != DefaultHistoryCap {
		t.Errorf("undid %d moves, want %d", undone, DefaultHistoryCap)
	}

	// The oldest reachable state is the one saved before move 4.
	want := states[3]
	got := s.State()
	if !got.Grid.Equal(want.Grid) || got.Score != want.Score {
		t.Errorf("oldest state = %v/%d, want %v/%d", got.Grid, got.Score, want.Grid, want.Score)
	}
}

func TestNoOpMoveOnFullHistory(t *testing.T) {
	s := newTestSession(11)

	var states []State
	for range DefaultHistoryCap {
		states = append(states, s.State())
		if !playEffective(s) {
			t.Fatal("ran out of moves")
		}
	}
	if s.HistoryLen() != DefaultHistoryCap {
		t.Fatalf("history = %d, want %d", s.HistoryLen(), DefaultHistoryCap)
	}

	// The snapshot pushed for a non-effective move evicts the oldest entry
	// before it is discarded.
	before := s.State()
	if s.ApplyMove(grid.None) {
		t.Fatal("None should not move")
	}
	if got := s.State(); !got.Grid.Equal(before.Grid) || got.Score != before.Score {
		t.Error("non-effective move changed the board")
	}
	if s.HistoryLen() != DefaultHistoryCap-1 {
		t.Fatalf("history = %d, want %d", s.HistoryLen(), DefaultHistoryCap-1)
	}

	undone := 0
	for s.Undo() {
		undone++
	}
	if undone != DefaultHistoryCap-1 {
		t.Errorf("undid %d moves, want %d", undone, DefaultHistoryCap-1)
	}
	want := states[1]
	if got := s.State(); !got.Grid.Equal(want.Grid) || got.Score != want.Score {
		t.Errorf("oldest state = %v/%d, want %v/%d", got.Grid, got.Score, want.Grid, want.Score)
	}
}

func TestHistoryCapOption(t *testing.T) {
	s := New(4, WithRand(rand.New(rand.NewSource(2))), WithHistoryCap(0))
	s.Initialize()
	playEffective(s)
	if s.HistoryLen() != 0 {
		t.Errorf("history = %d, want 0 with cap 0", s.HistoryLen())
	}
	if s.Undo() {
		t.Error("Undo should fail when history is disabled")
	}
}

func TestSpawn4ProbOption(t *testing.T) {
	s := New(4, WithRand(rand.New(rand.NewSource(2))), WithSpawn4Prob(1))
	s.Initialize()
	for _, row := range s.grid {
		for _, v := range row {
			if v != 0 && v != 4 {
				t.Fatalf("spawned %d with spawn4 probability 1", v)
			}
		}
	}
}

func TestIsGameOver(t *testing.T) {
	stuck := FromGrid(grid.Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}, 100)
	if !stuck.IsGameOver() || !stuck.State().GameOver {
		t.Error("expected game over on full board without merges")
	}
	for _, d := range grid.Directions {
		if stuck.ApplyMove(d) {
			t.Errorf("move %v should not be effective on a terminal board", d)
		}
	}

	open := newTestSession(1)
	if open.IsGameOver() {
		t.Error("fresh game should not be over")
	}
}

func TestStateIsCopy(t *testing.T) {
	s := newTestSession(4)
	st := s.State()
	st.Grid[0][0] = 2048

	if s.grid[0][0] == 2048 {
		t.Error("State grid aliases the session grid")
	}

	g := s.Grid()
	g[1][1] = 1024
	if s.grid[1][1] == 1024 {
		t.Error("Grid() aliases the session grid")
	}
}

func TestStats(t *testing.T) {
	s := FromGrid(grid.Grid{
		{2, 2, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 8, 0},
		{0, 0, 0, 0},
	}, 40)

	st := s.Stats()
	if st.Score != 40 || st.MaxTile != 8 {
		t.Errorf("score=%d max=%d, want 40 and 8", st.Score, st.MaxTile)
	}
	if st.EmptyCells != 12 || st.FilledCells != 4 {
		t.Errorf("empty=%d filled=%d, want 12 and 4", st.EmptyCells, st.FilledCells)
	}
	if st.Distribution[2] != 2 || st.Distribution[4] != 1 || st.Distribution[8] != 1 {
		t.Errorf("distribution = %v", st.Distribution)
	}
	if st.MovesAvailable != 4 {
		t.Errorf("moves available = %d, want 4", st.MovesAvailable)
	}
	if st.GameOver {
		t.Error("game over should be false")
	}
}
