package twoda

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pristine = `2DA V1.0
0
            GRP_A       GRP_B
DIFF        10          20
1           ORCWAXE     KOBOLD
2           ORCWBOW     KOBOLD
3           *           KOBOLD
`

func TestLoad(t *testing.T) {
	table, err := Load(strings.NewReader(pristine), 3)
	require.NoError(t, err)

	assert.Equal(t, "0", table.Default)
	assert.Equal(t, "DIFF", table.DifficultyLabel)
	assert.Equal(t, []string{"1", "2", "3"}, table.SlotLabels)
	assert.Equal(t, []string{"GRP_A", "GRP_B"}, table.Names())

	a, ok := table.Group("GRP_A")
	require.True(t, ok)
	assert.Equal(t, "10", a.Difficulty)
	assert.Equal(t, []string{"ORCWAXE", "ORCWBOW", "*"}, a.Creatures)
}

func TestLoad_CRLF(t *testing.T) {
	input := strings.ReplaceAll(pristine, "\n", "\r\n")
	table, err := Load(strings.NewReader(input), 3)
	require.NoError(t, err)
	assert.Len(t, table.Groups, 2)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"too short", "2DA V1.0\n0\n", "at least 4 lines"},
		{"bad signature", "XLS\n0\n A\nD 1\n1 x\n", "bad signature"},
		{"difficulty columns", "2DA V1.0\n0\n A B\nD 1\n1 x y\n", "difficulty row"},
		{"wrong row count", "2DA V1.0\n0\n A\nD 1\n1 x\n", "want 3 creature rows"},
		{"creature columns", "2DA V1.0\n0\n A\nD 1\n1 x\n2 y z\n3 w\n", "creature row has 3 columns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input), 3)
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSave_Golden(t *testing.T) {
	table := New(2)
	require.NoError(t, table.Upsert(Group{Name: "RDAR1000", Difficulty: "10", Creatures: []string{"ORCWAXE", "OGRE"}}))
	require.NoError(t, table.Upsert(Group{Name: "RDAR2000", Difficulty: "100", Creatures: []string{"*", "*"}}))

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, table, DefaultWidth))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "save_small", buf.Bytes())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	table, err := Load(strings.NewReader(pristine), 3)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "SPAWNGRP.2da")
	require.NoError(t, SaveFile(path, table, DefaultWidth))

	reloaded, err := LoadFile(path, 3)
	require.NoError(t, err)
	assert.Equal(t, table, reloaded)
}

func TestSave_RejectsShortGroup(t *testing.T) {
	table := New(3)
	table.Groups = append(table.Groups, Group{Name: "BAD", Difficulty: "1", Creatures: []string{"x"}})

	var buf bytes.Buffer
	err := Save(&buf, table, DefaultWidth)
	assert.ErrorContains(t, err, "group BAD has 1 creatures")
}

func TestUpsert(t *testing.T) {
	table := New(1)
	require.NoError(t, table.Upsert(Group{Name: "A", Difficulty: "1", Creatures: []string{"x"}}))
	require.NoError(t, table.Upsert(Group{Name: "B", Difficulty: "2", Creatures: []string{"y"}}))
	require.NoError(t, table.Upsert(Group{Name: "A", Difficulty: "3", Creatures: []string{"z"}}))

	assert.Equal(t, []string{"A", "B"}, table.Names())
	a, _ := table.Group("A")
	assert.Equal(t, "3", a.Difficulty)

	err := table.Upsert(Group{Name: "C", Creatures: []string{"a", "b"}})
	assert.Error(t, err)
}
