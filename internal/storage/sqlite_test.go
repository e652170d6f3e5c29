package storage

import (
	"errors"
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

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("level1", s, s/100); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("level2", 500, 5); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("level1", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Coins != 2 || scores[0].LevelID != "level1" {
		t.Errorf("unexpected top entry: %+v", scores[0])
	}

	other, err := store.TopScores("level2", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 level2 score, got %d", len(other))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100, 0)
	}

	scores, err := store.TopScores("test", 3)
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

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("level1")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for an unplayed level, got %d", high)
	}

	store.SaveScore("level1", 100, 1)
	store.SaveScore("level1", 300, 3)
	store.SaveScore("level2", 200, 2)

	if high, _ = store.HighScore("level1"); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	if err := store.ClearScores("level1"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if all, _ := store.AllScores("level1"); len(all) != 0 {
		t.Errorf("Expected 0 level1 scores after clear, got %d", len(all))
	}
	if all, _ := store.AllScores("level2"); len(all) != 1 {
		t.Error("level2 scores should not be affected by clearing level1")
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("level1", 100, 1)
	store.SaveScore("level1", 300, 4)
	store.SaveScore("level2", 50, 0)

	stats, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 levels, got %d", len(stats))
	}
	l1 := stats["level1"]
	if l1.Clears != 2 || l1.HighScore != 300 || l1.TotalCoins != 5 || l1.AvgScore != 200 {
		t.Errorf("unexpected level1 stats: %+v", l1)
	}
}

func TestStoreSaveGameRoundTrip(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.LoadGame(DefaultSlot); !errors.Is(err, ErrNoSave) {
		t.Fatalf("LoadGame() on empty slot = %v, expected ErrNoSave", err)
	}

	save := Save{Slot: DefaultSlot, LevelID: "level2", Score: 450, Coins: 3, Health: 2, X: 120.5, Y: 96}
	if err := store.SaveGame(save); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	got, err := store.LoadGame(DefaultSlot)
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if got.LevelID != "level2" || got.Score != 450 || got.Coins != 3 || got.Health != 2 || got.X != 120.5 || got.Y != 96 {
		t.Errorf("LoadGame() = %+v, expected %+v", got, save)
	}

	// Saving again overwrites the slot.
	save.LevelID, save.Score = "level3", 900
	if err := store.SaveGame(save); err != nil {
		t.Fatalf("SaveGame() overwrite failed: %v", err)
	}
	if got, _ = store.LoadGame(DefaultSlot); got.LevelID != "level3" || got.Score != 900 {
		t.Errorf("overwrite not applied: %+v", got)
	}

	if err := store.DeleteGame(DefaultSlot); err != nil {
		t.Fatalf("DeleteGame() failed: %v", err)
	}
	if _, err := store.LoadGame(DefaultSlot); !errors.Is(err, ErrNoSave) {
		t.Errorf("LoadGame() after delete = %v, expected ErrNoSave", err)
	}
}

func TestStoreSaveGameValidation(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name string
		save Save
	}{
		{"empty slot", Save{LevelID: "level1"}},
		{"empty level", Save{Slot: "a"}},
		{"negative score", Save{Slot: "a", LevelID: "level1", Score: -1}},
		{"negative health", Save{Slot: "a", LevelID: "level1", Health: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.SaveGame(tt.save); !errors.Is(err, ErrInvalidSave) {
				t.Errorf("SaveGame() = %v, expected ErrInvalidSave", err)
			}
		})
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
