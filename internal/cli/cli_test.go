package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/rushhour/internal/cli"
)

const (
	intro   = "............XXA.....A..............."
	jammed  = "..ABBC..A..CXXA..C..DEEE..D..F.GGG.F"
	fourMov = "A..BBBA.CD..XXCD.E..F..EGGF...H.IIJK"
)

// run executes the command line args with stdin and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.New(strings.NewReader(stdin), &out, &errOut)
	err := cmd.Run(context.Background(), append([]string{"rushhour"}, args...))

	return out.String(), errOut.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ee *cli.ExitError
	require.True(t, errors.As(err, &ee), "want an ExitError, got %v", err)

	return ee.Code
}

type record struct {
	Name    string   `json:"name"`
	Status  string   `json:"status"`
	Cost    int      `json:"cost"`
	Nodes   int      `json:"nodes"`
	Settled int      `json:"settled"`
	Moves   []string `json:"moves"`
}

func TestSolve_BoardJSON(t *testing.T) {
	out, _, err := run(t, "", "solve", "--board", intro, "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Puzzles []record `json:"puzzles"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Puzzles, 1)
	assert.Equal(t, record{
		Name:    "board",
		Status:  "solved",
		Cost:    2,
		Nodes:   17,
		Settled: 4,
		Moves:   []string{"A-2", "X+4"},
	}, doc.Puzzles[0])
}

func TestSolve_Stdin(t *testing.T) {
	in := "# mixed\nintro " + intro + "\njammed " + jammed + "\n"
	out, logs, err := run(t, in, "solve", "--workers", "2", "-")
	require.NoError(t, err)

	assert.Regexp(t, `intro\s+solved\s+2\s+17\s+4`, out)
	assert.Regexp(t, `jammed\s+unsolvable\s+-\s+3\s+3`, out)
	assert.Contains(t, out, "intro: A-2 X+4\n")
	assert.Contains(t, out, "2 puzzles, 1 solved, 0 failed, 2 moves, 20 nodes\n")
	assert.Contains(t, logs, "Starting batch.")
}

func TestSolve_Heuristic(t *testing.T) {
	out, _, err := run(t, "", "solve", "--heuristic", "zero", "--board", intro)
	require.NoError(t, err)
	assert.Regexp(t, `board\s+solved\s+2\s+19`, out)
}

func TestSolve_VerifyAndShow(t *testing.T) {
	out, _, err := run(t, "", "--log-level", "debug", "solve", "--verify", "--show", "--board", intro)
	require.NoError(t, err)

	assert.Contains(t, out, "== board ==\nstart\n")
	assert.Contains(t, out, "\n1. A-2\n..A...\n..A...\nXX....\n")
	assert.Contains(t, out, "\n2. X+4\n..A...\n..A...\n....XX\n")
}

func TestSolve_Budget(t *testing.T) {
	out, _, err := run(t, "", "solve", "--max-nodes", "52", "--format", "yaml", "--board", fourMov)
	require.NoError(t, err)

	var doc struct {
		Puzzles []struct {
			Status string `yaml:"status"`
			Cost   int    `yaml:"cost"`
		} `yaml:"puzzles"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Puzzles, 1)
	assert.Equal(t, "budget-exceeded", doc.Puzzles[0].Status)
	assert.Equal(t, -1, doc.Puzzles[0].Cost)
}

func TestSolve_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.txt")
	require.NoError(t, os.WriteFile(path, []byte("four "+fourMov+"\n"), 0o600))

	out, _, err := run(t, "", "solve", path)
	require.NoError(t, err)
	assert.Contains(t, out, "four: C-1 D+2 E+1 X+4\n")
}

func TestSolve_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"nothing to solve", []string{"solve"}},
		{"board and file", []string{"solve", "--board", intro, "levels.txt"}},
		{"unknown format", []string{"solve", "--format", "xml", "--board", intro}},
		{"unknown heuristic", []string{"solve", "--heuristic", "magic", "--board", intro}},
		{"no workers", []string{"solve", "--workers", "0", "--board", intro}},
		{"bad log level", []string{"--log-level", "loud", "solve", "--board", intro}},
		{"bad log format", []string{"--log-format", "xml", "solve", "--board", intro}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := run(t, "", tc.args...)
			require.Error(t, err)
			assert.Equal(t, 2, exitCode(t, err))
		})
	}
}

func TestSolve_BadBoard(t *testing.T) {
	_, _, err := run(t, "", "solve", "--board", "AA. ... ...")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no goal car")

	_, _, err = run(t, "", "solve", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBatch_Manifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
solver {
  heuristic = "zero"
  workers   = 2
}

puzzle "intro" {
  board = "`+intro+`"
}

puzzle "jammed" {
  board = "`+jammed+`"
}
`), 0o600))

	out, _, err := run(t, "", "batch", path)
	require.NoError(t, err)
	assert.Regexp(t, `intro\s+solved\s+2\s+19`, out)
	assert.Regexp(t, `jammed\s+unsolvable`, out)

	// flags override the manifest
	out, _, err = run(t, "", "batch", "--heuristic", "blocking", "--format", "json", path)
	require.NoError(t, err)
	var doc struct {
		Puzzles []record `json:"puzzles"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Puzzles, 2)
	assert.Equal(t, "intro", doc.Puzzles[0].Name)
	assert.Equal(t, 17, doc.Puzzles[0].Nodes)
}

func TestBatch_Errors(t *testing.T) {
	_, _, err := run(t, "", "batch")
	assert.Equal(t, 2, exitCode(t, err))

	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`puzzle "x" {`), 0o600))
	_, _, err = run(t, "", "batch", path)
	assert.Error(t, err)
}

func TestAnalyze(t *testing.T) {
	out, _, err := run(t, "", "analyze", "--board", intro)
	require.NoError(t, err)
	assert.Contains(t, out, "PUZZLE")
	assert.Regexp(t, `board\s+21\s+5\s+2\s+3\s+false`, out)

	out, _, err = run(t, "", "analyze", "--max-depth", "1", "--board", intro)
	require.NoError(t, err)
	assert.Regexp(t, `board\s+5\s+0\s+-\s+1\s+true`, out)

	_, _, err = run(t, "", "analyze", "--max-states=-1", "--board", intro)
	assert.Error(t, err)
}
