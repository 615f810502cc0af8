package store

import (
	"path/filepath"
	"testing"
)

// createTestStore creates a new temporary store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRosters returns two rosters of capacity 4.
func createTestRosters() []Roster {
	return []Roster{
		{Area: "AR1000", Difficulty: 10, Slots: []string{"ORC", "ORC", "OGRE", "GOBLIN"}},
		{Area: "AR2000", Difficulty: 100, Slots: []string{"*", "*", "*", "*"}, Overridden: true},
	}
}
