package area

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spawngen/internal/apportion"
	"github.com/roach88/spawngen/internal/config"
	"github.com/roach88/spawngen/internal/feed"
	"github.com/roach88/spawngen/internal/override"
	"github.com/roach88/spawngen/internal/twoda"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func testPools() *feed.Pools {
	return &feed.Pools{
		Areas: []string{"AR1000", "AR1001", "AR2000", "AR3000"},
		Mobs: map[string][]string{
			"AR1000": {"ORC", "ORC", "orc", "OGRE", "GOBLIN", "KOBOLD"},
			"AR1001": {"WOLF"},
			"AR2000": {},
			"AR3000": {"BAT", "RAT", "SPIDER", "SKELETON", "ZOMBIE"},
		},
	}
}

func TestNormalizeToFirst(t *testing.T) {
	got := NormalizeToFirst([]string{"OrcA", "orca", "ORCA", "Ogre", "ogre"})
	assert.Equal(t, []string{"OrcA", "OrcA", "OrcA", "Ogre", "Ogre"}, got)
}

func TestUniques(t *testing.T) {
	assert.Equal(t, []string{"Orc", "ogre"}, Uniques([]string{"Orc", "ogre", "ORC", "OGRE"}))
	assert.Empty(t, Uniques(nil))
}

func TestExpand_WidensSparsePool(t *testing.T) {
	var buf bytes.Buffer
	pools := testPools()

	mobs, exp := expand("AR1001", pools.Areas, pools.Mobs, 4, testLogger(&buf))

	// "AR100" matches AR1000 and AR1001.
	assert.Equal(t, Expansion{Prefix: "AR100", Steps: 1}, exp)
	assert.Equal(t, []string{"WOLF", "ORC", "ORC", "orc", "OGRE", "GOBLIN", "KOBOLD", "WOLF"}, mobs)
	assert.Contains(t, buf.String(), "sparse area pool")
	assert.Contains(t, buf.String(), "prefix=AR100*")

	// Source pools are not modified.
	assert.Equal(t, []string{"WOLF"}, pools.Mobs["AR1001"])
}

func TestExpand_LeavesRichAndEmptyPools(t *testing.T) {
	var buf bytes.Buffer
	pools := testPools()

	_, exp := expand("AR1000", pools.Areas, pools.Mobs, 4, testLogger(&buf))
	assert.Equal(t, Expansion{}, exp)

	mobs, exp := expand("AR2000", pools.Areas, pools.Mobs, 4, testLogger(&buf))
	assert.Empty(t, mobs)
	assert.Equal(t, Expansion{}, exp)
	assert.Empty(t, buf.String())
}

func TestExpand_StopsAtEmptyPrefix(t *testing.T) {
	var buf bytes.Buffer
	pools := map[string][]string{"AB": {"x"}, "CD": {"y"}}

	mobs, exp := expand("AB", []string{"AB", "CD"}, pools, 10, testLogger(&buf))
	assert.Equal(t, 2, exp.Steps)
	assert.Equal(t, "", exp.Prefix)
	assert.ElementsMatch(t, []string{"x", "y"}, Uniques(mobs))
}

func newAggregator(t *testing.T, buf *bytes.Buffer) *Aggregator {
	t.Helper()
	g, err := New(config.Default(), testLogger(buf))
	require.NoError(t, err)
	return g
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Capacity = 0
	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, apportion.ErrInvalidCapacity)
}

func TestBuild(t *testing.T) {
	var buf bytes.Buffer
	g := newAggregator(t, &buf)

	spawns, err := g.Build(context.Background(), testPools(), nil)
	require.NoError(t, err)
	require.Len(t, spawns, 4)

	ar1000 := spawns[0]
	assert.Equal(t, "AR1000", ar1000.Area)
	assert.Equal(t, 10, ar1000.Difficulty)
	assert.False(t, ar1000.Overridden)
	// ORC:3 OGRE:1 GOBLIN:1 KOBOLD:1 over 8 slots floors to 4,1,1,1; the
	// leftover slot goes to OGRE, first of the tied 1/3 remainders.
	assert.Equal(t, apportion.Roster{"ORC", "ORC", "ORC", "ORC", "OGRE", "OGRE", "GOBLIN", "KOBOLD"}, ar1000.Roster)

	assert.Equal(t, "AR100", spawns[1].Expansion.Prefix)
	assert.Equal(t, apportion.Empty(8), spawns[2].Roster)
	assert.Nil(t, spawns[2].Result)

	for _, s := range spawns {
		assert.Len(t, s.Roster, 8)
	}
}

func TestBuild_Overrides(t *testing.T) {
	var buf bytes.Buffer
	g := newAggregator(t, &buf)

	slots := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	entries := []override.Entry{
		{Area: "AR2000", Difficulty: 99, Slots: []string{"*", "*", "*", "*", "*", "*", "*", "*"}},
		{Area: "AR2000", Difficulty: 100, Slots: slots},
	}

	spawns, err := g.Build(context.Background(), testPools(), entries)
	require.NoError(t, err)

	assert.True(t, spawns[2].Overridden)
	assert.Equal(t, 100, spawns[2].Difficulty)
	assert.Equal(t, apportion.Roster(slots), spawns[2].Roster)

	// The override owns its own copy.
	slots[0] = "changed"
	assert.Equal(t, "A", spawns[2].Roster[0])
}

func TestBuild_UnknownOverrideArea(t *testing.T) {
	var buf bytes.Buffer
	g := newAggregator(t, &buf)

	_, err := g.Build(context.Background(), testPools(), []override.Entry{{Area: "AR9999", Difficulty: 10}})
	assert.ErrorContains(t, err, "unknown area AR9999")
}

func TestBuild_Cancelled(t *testing.T) {
	var buf bytes.Buffer
	g := newAggregator(t, &buf)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Build(ctx, testPools(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApply(t *testing.T) {
	var buf bytes.Buffer
	g := newAggregator(t, &buf)

	table := twoda.New(8)
	require.NoError(t, table.Upsert(twoda.Group{Name: "RDAR1000", Difficulty: "1", Creatures: make([]string, 8)}))

	spawns, err := g.Build(context.Background(), testPools(), nil)
	require.NoError(t, err)
	require.NoError(t, g.Apply(table, spawns))

	assert.Equal(t, []string{"RDAR1000", "RDAR1001", "RDAR2000", "RDAR3000"}, table.Names())
	grp, ok := table.Group("RDAR1000")
	require.True(t, ok)
	assert.Equal(t, "10", grp.Difficulty)
	assert.Equal(t, []string(spawns[0].Roster), grp.Creatures)
}
