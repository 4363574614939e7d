// Package astar provides tunable options, result types and error definitions
// for best-first search over Rush Hour puzzle states.
package astar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/rushhour/heuristic"
	"github.com/katalvlaran/rushhour/puzzle"
)

// Sentinel errors for A* execution.
var (
	// ErrNilPuzzle is returned if a nil *puzzle.Puzzle is passed to Solve.
	ErrNilPuzzle = errors.New("astar: puzzle is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("astar: invalid option supplied")

	// ErrNegativeHeuristic is the panic value (wrapped) raised when a
	// heuristic returns a negative estimate.
	ErrNegativeHeuristic = errors.New("astar: heuristic returned a negative value")
)

// Status tells how a search ended.
type Status int

const (
	// StatusSolved means a goal state was reached; Path and Cost are set.
	StatusSolved Status = iota

	// StatusUnsolvable means the frontier ran empty without reaching a goal.
	// This is a normal outcome, not an error.
	StatusUnsolvable

	// StatusBudgetExceeded means the node budget (WithMaxNodes) ran out first.
	StatusBudgetExceeded

	// StatusCanceled means the context was canceled before the search ended.
	StatusCanceled

	// StatusTimedOut means the context deadline passed before the search ended.
	StatusTimedOut
)

var statusNames = [...]string{
	StatusSolved:         "solved",
	StatusUnsolvable:     "unsolvable",
	StatusBudgetExceeded: "budget-exceeded",
	StatusCanceled:       "canceled",
	StatusTimedOut:       "timed-out",
}

// String returns the lower-case name of s.
func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}

	return fmt.Sprintf("Status(%d)", int(s))
}

// Option configures Solve via functional arguments.
// Invalid options (e.g. a negative budget) are recorded internally and
// surfaced as ErrOptionViolation when Solve is invoked.
type Option func(*Options)

// Options holds parameters and callbacks that customize a search.
type Options struct {
	// Heuristic estimates the moves left from a state. Must be non-negative.
	Heuristic heuristic.Func

	// MaxNodes, if > 0, caps the number of generated nodes. 0 means no cap.
	MaxNodes int

	// Ctx allows cancellation and deadlines; checked once per loop iteration.
	Ctx context.Context

	// OnExpand is called for every state as it is settled, with its path
	// cost g and heuristic value h.
	OnExpand func(s puzzle.State, g, h int)

	// Logger receives debug traces of the run.
	Logger *slog.Logger

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with defaults:
//   - heuristic.Blocking
//   - no node budget
//   - context.Background()
//   - no-op OnExpand
//   - a logger that discards everything.
func DefaultOptions() Options {
	return Options{
		Heuristic: heuristic.Blocking,
		MaxNodes:  0,
		Ctx:       context.Background(),
		OnExpand:  func(puzzle.State, int, int) {},
		Logger:    slog.New(slog.DiscardHandler),
	}
}

// WithHeuristic sets the heuristic. A nil function is an option violation.
func WithHeuristic(h heuristic.Func) Option {
	return func(o *Options) {
		if h == nil {
			o.err = fmt.Errorf("%w: heuristic is nil", ErrOptionViolation)
			return
		}
		o.Heuristic = h
	}
}

// WithMaxNodes bounds the number of generated nodes.
//
//	n > 0: stop with StatusBudgetExceeded once n nodes exist
//	n == 0: no budget
//	n < 0: invalid option → ErrOptionViolation
func WithMaxNodes(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxNodes cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxNodes = n
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnExpand registers a callback run for every settled state.
func WithOnExpand(fn func(s puzzle.State, g, h int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithLogger routes debug traces to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Result holds the outcome of a search.
//   - Path: the moves from the initial state to the goal (empty, not nil, when
//     the initial state is already a goal; nil unless solved).
//   - Cost: len(Path) when solved, -1 otherwise.
//   - NodesExpanded: search nodes generated, the root included.
//   - Settled: states popped from the frontier and expanded.
//   - Final: the goal state when solved.
type Result struct {
	Status        Status
	Path          []puzzle.Move
	Cost          int
	NodesExpanded int
	Settled       int
	Final         puzzle.State
	Elapsed       time.Duration
}

// Solved reports whether the search reached a goal state.
func (r *Result) Solved() bool { return r.Status == StatusSolved }
