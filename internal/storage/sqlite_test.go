package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/skyraid/internal/core"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveScore("skyraid", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("skyraid", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("skyraid", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	_, err = store.SaveScore("skyraid_hard", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for skyraid
	scores, err := store.TopScores("skyraid", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for hard
	hardScores, err := store.TopScores("skyraid_hard", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(hardScores) != 1 {
		t.Errorf("Expected 1 hard score, got %d", len(hardScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("skyraid")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("skyraid", 100)
	store.SaveScore("skyraid", 300)
	store.SaveScore("skyraid", 200)

	high, err = store.HighScore("skyraid")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("skyraid", 100)
	store.SaveScore("skyraid", 200)
	store.SaveScore("skyraid_hard", 300)

	// Clear only skyraid scores
	err = store.ClearScores("skyraid")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Skyraid should be empty
	raidScores, _ := store.TopScores("skyraid", 10)
	if len(raidScores) != 0 {
		t.Errorf("Expected 0 skyraid scores after clear, got %d", len(raidScores))
	}

	// Hard should still have scores
	hardScores, _ := store.TopScores("skyraid_hard", 10)
	if len(hardScores) != 1 {
		t.Errorf("Hard scores should not be affected by clearing skyraid")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreBestLevelResults(t *testing.T) {
	store := openTestStore(t)

	results := []core.LevelResult{
		{World: 1, Level: 1, Score: 900, Stars: 2, Credits: 150},
		{World: 1, Level: 1, Score: 700, Stars: 3, Credits: 250},
		{World: 1, Level: 1, Score: 800, Stars: 3, Credits: 250},
		{World: 2, Level: 3, Score: 5000, Stars: 1, Credits: 550, BossDefeated: true, KillRatio: 0.5},
		{World: 1, Level: 2, Score: 100, Stars: 1, Credits: 51, Deaths: 4, Kills: 3},
	}
	for _, r := range results {
		if _, err := store.SaveLevelResult(r); err != nil {
			t.Fatalf("SaveLevelResult() failed: %v", err)
		}
	}

	best, err := store.BestLevelResults()
	if err != nil {
		t.Fatalf("BestLevelResults() failed: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("Expected 3 levels, got %d", len(best))
	}

	// Ordered by world and level, most stars then highest score wins
	if best[0].World != 1 || best[0].Level != 1 || best[0].Stars != 3 || best[0].Score != 800 {
		t.Errorf("Expected 1-1 with 3 stars and 800, got %+v", best[0].LevelResult)
	}
	if best[1].Level != 2 || best[1].Deaths != 4 || best[1].Kills != 3 {
		t.Errorf("Expected 1-2 with 4 deaths and 3 kills, got %+v", best[1].LevelResult)
	}
	if best[2].World != 2 || !best[2].BossDefeated || best[2].KillRatio != 0.5 {
		t.Errorf("Expected 2-3 boss result, got %+v", best[2].LevelResult)
	}
}

func TestStoreTotalCredits(t *testing.T) {
	store := openTestStore(t)

	total, err := store.TotalCredits()
	if err != nil {
		t.Fatalf("TotalCredits() failed: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected 0 credits on an empty store, got %d", total)
	}

	store.SaveLevelResult(core.LevelResult{World: 1, Level: 1, Stars: 1, Credits: 60})
	store.SaveLevelResult(core.LevelResult{World: 1, Level: 1, Stars: 2, Credits: 140})

	total, err = store.TotalCredits()
	if err != nil {
		t.Fatalf("TotalCredits() failed: %v", err)
	}
	if total != 200 {
		t.Errorf("Expected 200 credits, got %d", total)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("skyraid", 100)
	store.SaveScore("skyraid", 300)

	stats, err := store.GetGameStats("skyraid")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 || stats.TotalScore != 400 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected a last played time")
	}

	empty, err := store.GetGameStats("nothing")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}
}
