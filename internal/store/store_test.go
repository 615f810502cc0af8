package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file was not created")
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err, "Open() iteration %d", i)

		var version int
		require.NoError(t, s.db.QueryRow("PRAGMA user_version").Scan(&version))
		assert.Equal(t, currentSchemaVersion, version)
		s.Close()
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
	assert.NoError(t, s.verifyPragma("busy_timeout", "5000"))
}

func TestClose_Nil(t *testing.T) {
	var s Store
	assert.NoError(t, s.Close())
}

func TestWriteRun_AssignsSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq1, err := s.WriteRun(ctx, Run{ID: "run-1", SourceHash: "h1", Strategy: "steal-by-ratio", Capacity: 4}, createTestRosters())
	require.NoError(t, err)
	seq2, err := s.WriteRun(ctx, Run{ID: "run-2", SourceHash: "h2", Strategy: "plain", Capacity: 4}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), seq1)
	assert.Equal(t, int64(2), seq2)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, Run{ID: "run-1", Seq: 1, SourceHash: "h1", Strategy: "steal-by-ratio", Capacity: 4, AreaCount: 2}, runs[0])
	assert.Equal(t, 0, runs[1].AreaCount)

	latest, err := s.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-2", latest.ID)
}

func TestWriteRun_DuplicateIDRollsBack(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.WriteRun(ctx, Run{ID: "run-1", SourceHash: "h", Strategy: "plain", Capacity: 4}, nil)
	require.NoError(t, err)
	_, err = s.WriteRun(ctx, Run{ID: "run-1", SourceHash: "h", Strategy: "plain", Capacity: 4}, createTestRosters())
	require.Error(t, err)

	rosters, err := s.Rosters(ctx, "run-1")
	require.NoError(t, err)
	assert.Empty(t, rosters)
}

func TestWriteRun_RejectsBadCapacity(t *testing.T) {
	s := createTestStore(t)
	_, err := s.WriteRun(context.Background(), Run{ID: "r", SourceHash: "h", Strategy: "plain", Capacity: 0}, nil)
	assert.Error(t, err)
}

func TestRosters(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.WriteRun(ctx, Run{ID: "run-1", SourceHash: "h", Strategy: "steal-by-ratio", Capacity: 4}, createTestRosters())
	require.NoError(t, err)

	rosters, err := s.Rosters(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, rosters, 2)

	assert.Equal(t, "AR1000", rosters[0].Area)
	assert.Equal(t, 0, rosters[0].Ordinal)
	assert.Equal(t, []string{"ORC", "ORC", "OGRE", "GOBLIN"}, rosters[0].Slots)
	assert.False(t, rosters[0].Overridden)
	assert.True(t, rosters[1].Overridden)

	want, err := RosterHash(rosters[0].Slots)
	require.NoError(t, err)
	assert.Equal(t, want, rosters[0].Hash)
}

func TestRosterForArea(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.WriteRun(ctx, Run{ID: "run-1", SourceHash: "h", Strategy: "steal-by-ratio", Capacity: 4}, createTestRosters())
	require.NoError(t, err)

	r, err := s.RosterForArea(ctx, "run-1", "AR2000")
	require.NoError(t, err)
	assert.Equal(t, 100, r.Difficulty)

	_, err = s.RosterForArea(ctx, "run-1", "AR9999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatestRun_Empty(t *testing.T) {
	s := createTestStore(t)
	_, err := s.LatestRun(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	runs, err := s.ListRuns(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestRosterHash(t *testing.T) {
	a, err := RosterHash([]string{"ORC", "OGRE"})
	require.NoError(t, err)
	b, err := RosterHash([]string{"OGRE", "ORC"})
	require.NoError(t, err)
	again, err := RosterHash([]string{"ORC", "OGRE"})
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, again)
}

func TestSourceHash_BoundariesMatter(t *testing.T) {
	ab, err := SourceHash(strings.NewReader("ab"), strings.NewReader("c"))
	require.NoError(t, err)
	abc, err := SourceHash(strings.NewReader("a"), strings.NewReader("bc"))
	require.NoError(t, err)
	assert.NotEqual(t, ab, abc)
}

func TestFixedGenerator(t *testing.T) {
	gen := NewFixedGenerator("run-1", "run-2")
	assert.Equal(t, "run-1", gen.Generate())
	assert.Equal(t, "run-2", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
