package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Counts(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/designer_list.yaml")
	require.NoError(t, err)

	assert.Equal(t, "designer_list", s.Name)
	assert.Equal(t, 8, s.Capacity)
	require.Len(t, s.Counts, 6)
	assert.Equal(t, Count{Item: "Adam", N: 6}, s.Counts[0])
	assert.Equal(t, Count{Item: "Charlie", N: 1}, s.Counts[5])

	input := s.Input()
	assert.Len(t, input, 14)
	assert.Equal(t, "Adam", input[0])
	assert.Equal(t, "Charlie", input[13])

	require.NotNil(t, s.Expect.Unrepaired)
	assert.Empty(t, *s.Expect.Unrepaired)
	assert.Nil(t, s.Expect.Dropped)
}

func TestLoadScenario_Items(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/over_capacity.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a", "b", "c"}, s.Input())
	require.NotNil(t, s.Expect.Dropped)
	assert.Equal(t, []string{"b"}, *s.Expect.Dropped)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown field",
			yaml: "name: x\ndescription: d\ncapacity: 2\nitmes: [a]\n",
			want: "field itmes not found",
		},
		{
			name: "missing name",
			yaml: "description: d\ncapacity: 2\n",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: x\ncapacity: 2\n",
			want: "description is required",
		},
		{
			name: "zero capacity",
			yaml: "name: x\ndescription: d\ncapacity: 0\n",
			want: "capacity must be at least 1",
		},
		{
			name: "items and counts",
			yaml: "name: x\ndescription: d\ncapacity: 2\nitems: [a]\ncounts: {a: 1}\n",
			want: "mutually exclusive",
		},
		{
			name: "unknown strategy",
			yaml: "name: x\ndescription: d\ncapacity: 2\nstrategy: greedy\n",
			want: "unknown apportionment strategy",
		},
		{
			name: "non-positive count",
			yaml: "name: x\ndescription: d\ncapacity: 2\ncounts: {a: 0}\n",
			want: "occurrences must be at least 1",
		},
		{
			name: "counts not a mapping",
			yaml: "name: x\ndescription: d\ncapacity: 2\ncounts: [a]\n",
			want: "counts must be a mapping",
		},
		{
			name: "roster length mismatch",
			yaml: "name: x\ndescription: d\ncapacity: 2\nexpect:\n  roster: [a]\n",
			want: "expect.roster has 1 entries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOrderedCounts_KeepsKeyOrder(t *testing.T) {
	s, err := ParseScenario([]byte("name: x\ndescription: d\ncapacity: 3\ncounts:\n  zed: 1\n  alpha: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"zed", "alpha", "alpha"}, s.Input())
}

func TestScenarioFiles_AllParse(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			data, err := os.ReadFile(f)
			require.NoError(t, err)
			_, err = ParseScenario(data)
			require.NoError(t, err)
		})
	}
}
