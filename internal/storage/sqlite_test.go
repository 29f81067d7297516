package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, s *Store, mode string, score, maxTile int) int64 {
	t.Helper()
	id, err := s.SaveResult(context.Background(), Result{
		GameID:   "g",
		Player:   "tester",
		Mode:     mode,
		GridSize: 4,
		Score:    score,
		MaxTile:  maxTile,
	})
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	save(t, store, "human", 100, 16)
	save(t, store, "human", 50, 8)
	save(t, store, "human", 200, 32)
	save(t, store, "ai", 500, 64)

	scores, err := store.TopScores(ctx, "human", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %+v", scores)
	}
	if scores[0].MaxTile != 32 || scores[0].Player != "tester" || scores[0].GridSize != 4 {
		t.Errorf("Unexpected row contents: %+v", scores[0])
	}

	all, err := store.TopScores(ctx, "", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 4 || all[0].Mode != "ai" {
		t.Errorf("Expected 4 scores led by the ai game, got %+v", all)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		save(t, store, "human", (i+1)*100, 2)
	}

	scores, err := store.TopScores(context.Background(), "human", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to the default.
	for i := range DefaultLimit + 2 {
		save(t, store, "ai", i, 2)
	}
	scores, err = store.TopScores(context.Background(), "ai", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != DefaultLimit {
		t.Errorf("Expected %d scores, got %d", DefaultLimit, len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	high, err := store.HighScore(ctx, "human")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty leaderboard, got %d", high)
	}

	save(t, store, "human", 100, 2)
	save(t, store, "human", 300, 2)
	save(t, store, "ai", 900, 2)

	high, err = store.HighScore(ctx, "human")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	high, _ = store.HighScore(ctx, "")
	if high != 900 {
		t.Errorf("Expected overall high score of 900, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "human", 100, 16)
	save(t, store, "human", 300, 64)
	save(t, store, "ai", 1000, 128)

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}

	human := stats["human"]
	if human == nil {
		t.Fatal("missing human stats")
	}
	if human.GamesCount != 2 || human.HighScore != 300 || human.AvgScore != 200 || human.BestTile != 64 {
		t.Errorf("human stats = %+v", human)
	}
	if ai := stats["ai"]; ai == nil || ai.GamesCount != 1 || ai.BestTile != 128 {
		t.Errorf("ai stats = %+v", ai)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	save(t, store, "human", 100, 2)
	save(t, store, "human", 200, 2)
	save(t, store, "ai", 300, 2)

	if err := store.ClearScores(ctx, "human"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	human, _ := store.TopScores(ctx, "human", 10)
	if len(human) != 0 {
		t.Errorf("Expected 0 human scores after clear, got %d", len(human))
	}

	ai, _ := store.TopScores(ctx, "ai", 10)
	if len(ai) != 1 {
		t.Errorf("AI scores should not be affected by clearing human scores")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
