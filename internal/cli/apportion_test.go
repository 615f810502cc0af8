package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var designerArgs = strings.Fields("Adam Adam Adam Adam Adam Adam Eve Eve Eve Snek Snek Dragon Bob Charlie")

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestApportionCommand_Text(t *testing.T) {
	out, _, err := runRoot(t, append([]string{"apportion"}, designerArgs...)...)
	require.NoError(t, err)
	assert.Equal(t, "Adam Adam Adam Eve Snek Dragon Bob Charlie\n", out)
}

func TestApportionCommand_Grouped(t *testing.T) {
	out, _, err := runRoot(t, append([]string{"apportion", "--grouped"}, designerArgs...)...)
	require.NoError(t, err)
	assert.Equal(t, "Adam Adam Adam Bob Charlie Dragon Eve Snek\n", out)
}

func TestApportionCommand_PlainReportsUnrepaired(t *testing.T) {
	out, _, err := runRoot(t, append([]string{"apportion", "--strategy", "plain"}, designerArgs...)...)
	require.NoError(t, err)
	assert.Equal(t, "Eve Eve Dragon Bob Adam Adam Adam Snek\n  unrepaired: Charlie\n", out)
}

func TestApportionCommand_Empty(t *testing.T) {
	out, _, err := runRoot(t, "apportion", "--capacity", "3")
	require.NoError(t, err)
	assert.Equal(t, "* * *\n", out)
}

func TestApportionCommand_Fold(t *testing.T) {
	out, _, err := runRoot(t, "apportion", "--capacity", "2", "--fold", "Orc", "ORC", "orc")
	require.NoError(t, err)
	assert.Equal(t, "Orc Orc\n", out)
}

func TestApportionCommand_JSON(t *testing.T) {
	out, _, err := runRoot(t, "--format", "json", "apportion", "--capacity", "2", "a", "a", "b", "c")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Strategy string   `json:"strategy"`
			Roster   []string `json:"roster"`
			Dropped  []string `json:"dropped"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "steal-by-ratio", resp.Data.Strategy)
	assert.Equal(t, []string{"a", "c"}, resp.Data.Roster)
	assert.Equal(t, []string{"b"}, resp.Data.Dropped)
}

func TestApportionCommand_Verbose(t *testing.T) {
	_, errOut, err := runRoot(t, "--verbose", "apportion", "--capacity", "2", "a", "a", "b")
	require.NoError(t, err)
	assert.Contains(t, errOut, "count=2")
	assert.Contains(t, errOut, "slots=1")
}

func TestApportionCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"unknown strategy", []string{"apportion", "--strategy", "greedy", "a"}, "E020"},
		{"zero capacity", []string{"apportion", "--capacity", "0", "a"}, "E021"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runRoot(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.code+"]")
		})
	}
}
