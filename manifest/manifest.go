// Package manifest loads batch manifests: HCL files naming the puzzles to
// solve and the solver settings to use.
//
//	solver {
//	  heuristic = "blocking"
//	  max_nodes = 200000
//	  timeout   = "10s"
//	  workers   = 4
//	}
//
//	include = ["levels.txt"]
//
//	puzzle "intro" {
//	  board = "............XXA.....A..............."
//	}
//
//	puzzle "rows" {
//	  board = [
//	    "......",
//	    "......",
//	    "XXA...",
//	    "..A...",
//	    "......",
//	    "......",
//	  ]
//	}
//
// A board is a string in any form puzzle.ParseBoard accepts, or a list of row
// strings. Include paths are puzzle files (see puzzle.ReadPuzzles) resolved
// relative to the manifest; their puzzles come before the inline ones.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/rushhour/batch"
	"github.com/katalvlaran/rushhour/puzzle"
)

// ErrManifest wraps every manifest loading failure.
var ErrManifest = errors.New("manifest: invalid manifest")

// Manifest is a decoded batch manifest.
type Manifest struct {
	Path    string
	Solver  Solver
	Puzzles []*puzzle.Puzzle
}

// Solver holds the solver block. Zero values mean "not set".
type Solver struct {
	Heuristic string
	MaxNodes  int
	Timeout   time.Duration
	Workers   int
}

// hclFile represents the top-level structure of a manifest for decoding.
type hclFile struct {
	Solver  *hclSolver   `hcl:"solver,block"`
	Include []string     `hcl:"include,optional"`
	Puzzles []*hclPuzzle `hcl:"puzzle,block"`
}

type hclSolver struct {
	Heuristic string `hcl:"heuristic,optional"`
	MaxNodes  int    `hcl:"max_nodes,optional"`
	Timeout   string `hcl:"timeout,optional"`
	Workers   int    `hcl:"workers,optional"`
}

type hclPuzzle struct {
	Name  string         `hcl:"name,label"`
	Board hcl.Expression `hcl:"board"`
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}

	return Parse(src, path)
}

// Parse decodes manifest source. filename names the source in diagnostics
// and anchors relative include paths.
func Parse(src []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrManifest, filename, diags)
	}

	var root hclFile
	if diags = gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", ErrManifest, filename, diags)
	}

	m := &Manifest{Path: filename}
	if root.Solver != nil {
		s, err := decodeSolver(root.Solver)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: solver: %w", ErrManifest, filename, err)
		}
		m.Solver = s
	}

	dir := filepath.Dir(filename)
	for _, inc := range root.Include {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(dir, inc)
		}
		ps, err := readPuzzleFile(inc)
		if err != nil {
			return nil, fmt.Errorf("%w: include %s: %w", ErrManifest, inc, err)
		}
		m.Puzzles = append(m.Puzzles, ps...)
	}

	for _, hp := range root.Puzzles {
		if boardMissing(hp.Board) {
			return nil, fmt.Errorf("%w: puzzle %q: board is required", ErrManifest, hp.Name)
		}
		board, diags := boardText(hp.Board)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: puzzle %q: %w", ErrManifest, hp.Name, diags)
		}
		p, err := puzzle.ParseBoard(board, puzzle.WithName(hp.Name))
		if err != nil {
			return nil, fmt.Errorf("%w: puzzle %q: %w", ErrManifest, hp.Name, err)
		}
		m.Puzzles = append(m.Puzzles, p)
	}

	seen := make(map[string]bool, len(m.Puzzles))
	for _, p := range m.Puzzles {
		if seen[p.Name()] {
			return nil, fmt.Errorf("%w: duplicate puzzle name %q", ErrManifest, p.Name())
		}
		seen[p.Name()] = true
	}

	return m, nil
}

func decodeSolver(hs *hclSolver) (Solver, error) {
	s := Solver{Heuristic: hs.Heuristic, MaxNodes: hs.MaxNodes, Workers: hs.Workers}
	if hs.Timeout != "" {
		d, err := time.ParseDuration(hs.Timeout)
		if err != nil {
			return Solver{}, fmt.Errorf("timeout: %w", err)
		}
		s.Timeout = d
	}
	if s.MaxNodes < 0 || s.Workers < 0 || s.Timeout < 0 {
		return Solver{}, errors.New("max_nodes, workers and timeout cannot be negative")
	}

	return s, nil
}

// boardMissing reports whether a puzzle block has no board attribute. gohcl
// fills an absent hcl.Expression field with a null-valued expression.
func boardMissing(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	val, diags := expr.Value(nil)

	return !diags.HasErrors() && val.IsNull()
}

// boardText evaluates a board expression: a string, or a list of row strings.
func boardText(expr hcl.Expression) (string, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	bad := hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid board",
		Detail:   "A board must be a string or a list of row strings.",
		Subject:  expr.Range().Ptr(),
	}}
	if val.IsNull() || !val.IsKnown() {
		return "", bad
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty.IsTupleType() || ty.IsListType():
		var rows []string
		for it := val.ElementIterator(); it.Next(); {
			_, row := it.Element()
			if row.IsNull() || row.Type() != cty.String {
				return "", bad
			}
			rows = append(rows, row.AsString())
		}
		return strings.Join(rows, "\n"), nil
	default:
		return "", bad
	}
}

func readPuzzleFile(path string) ([]*puzzle.Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// unnamed lines are numbered per file, so the file name keeps them apart
	base := filepath.Base(path)

	return puzzle.ReadPuzzlesPrefix(f, strings.TrimSuffix(base, filepath.Ext(base)))
}

// BatchConfig overlays the solver block on base: every field the manifest
// sets replaces the base value.
func (m *Manifest) BatchConfig(base batch.Config) batch.Config {
	cfg := base
	if m.Solver.Heuristic != "" {
		cfg.Heuristic = m.Solver.Heuristic
	}
	if m.Solver.MaxNodes > 0 {
		cfg.MaxNodes = m.Solver.MaxNodes
	}
	if m.Solver.Timeout > 0 {
		cfg.Timeout = m.Solver.Timeout
	}
	if m.Solver.Workers > 0 {
		cfg.Workers = m.Solver.Workers
	}

	return cfg
}

// Jobs returns one batch job per puzzle, in manifest order.
func (m *Manifest) Jobs() []batch.Job {
	jobs := make([]batch.Job, len(m.Puzzles))
	for i, p := range m.Puzzles {
		jobs[i] = batch.Job{Name: p.Name(), Puzzle: p}
	}

	return jobs
}
