package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieveScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("blockfall", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("blockfall_fixed", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("blockfall", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %v", scores)
	}

	fixed, err := store.TopScores("blockfall_fixed", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(fixed) != 1 {
		t.Errorf("Expected 1 fixed-mode score, got %d", len(fixed))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("blockfall", (i+1)*100)
	}

	scores, err := store.TopScores("blockfall", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blockfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("blockfall", 100)
	store.SaveScore("blockfall", 300)
	store.SaveScore("blockfall", 200)

	high, err = store.HighScore("blockfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("blockfall", 100)
	store.SaveScore("blockfall", 200)
	store.SaveScore("blockfall_fixed", 300)

	if err := store.ClearScores("blockfall"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("blockfall", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	fixed, _ := store.TopScores("blockfall_fixed", 10)
	if len(fixed) != 1 {
		t.Error("Other mode scores should not be affected by clearing")
	}
}

func TestStoreSaveAndLoadReplay(t *testing.T) {
	store := openTestStore(t)

	payload := []byte(`{"version":1,"seed":42}`)
	id, err := store.SaveReplay(ReplayRecord{
		GameID:     "blockfall",
		Seed:       42,
		Mode:       "blockfall",
		Score:      1500,
		Frames:     3600,
		DurationMs: 60_000,
		Verified:   true,
		VerifyHash: "abc123",
		Payload:    payload,
	})
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	rec, err := store.ReplayByID(id)
	if err != nil {
		t.Fatalf("ReplayByID() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("ReplayByID() returned nil for existing record")
	}
	if rec.Seed != 42 || rec.Score != 1500 || !rec.Verified {
		t.Errorf("Replay fields mismatch: %+v", rec)
	}
	if string(rec.Payload) != string(payload) {
		t.Error("Replay payload round trip mismatch")
	}
}

func TestStoreReplayByIDMissing(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.ReplayByID(999)
	if err != nil {
		t.Fatalf("ReplayByID() failed: %v", err)
	}
	if rec != nil {
		t.Error("Expected nil for a missing replay")
	}
}

func TestStoreRecentReplays(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveReplay(ReplayRecord{
			GameID: "blockfall",
			Seed:   int64(i),
			Mode:   "blockfall",
			Score:  i * 100,
		})
	}

	records, err := store.RecentReplays("blockfall", 3)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Expected 3 recent replays, got %d", len(records))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("blockfall", 100)
	store.SaveScore("blockfall", 300)
	store.SaveReplay(ReplayRecord{GameID: "blockfall", Verified: true})
	store.SaveReplay(ReplayRecord{GameID: "blockfall", Verified: false})

	stats, err := store.GetGameStats("blockfall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.TotalScore != 400 {
		t.Errorf("TotalScore = %d, want 400", stats.TotalScore)
	}
	if stats.Verified != 1 {
		t.Errorf("Verified = %d, want 1", stats.Verified)
	}
}
