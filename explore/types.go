// Package explore provides tunable options and error definitions
// for breadth-first enumeration of a puzzle's state space.
package explore

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/rushhour/puzzle"
)

// Sentinel errors for exploration.
var (
	// ErrNilPuzzle is returned if a nil puzzle pointer is passed.
	ErrNilPuzzle = errors.New("explore: puzzle is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("explore: invalid option supplied")

	// ErrNotReached is returned by PathTo and MovesTo for unknown keys.
	ErrNotReached = errors.New("explore: state not reached")
)

// Option configures exploration via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when Explore is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize exploration.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when visiting a state. If it returns an error,
	// exploration aborts and propagates that error.
	OnVisit func(s puzzle.State, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this many moves.
	// A value of 0 explicitly disables any depth limit.
	MaxDepth int

	// MaxStates, if > 0, stops discovering new states once this many are known.
	MaxStates int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with sane defaults:
//   - context.Background()
//   - no depth or state limit
//   - no-op OnVisit.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(puzzle.State, int) error { return nil },
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

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the exploration.
func WithOnVisit(fn func(s puzzle.State, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth (inclusive).
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithMaxStates caps the number of discovered states; 0 means no cap.
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxStates cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

// Result holds the outcome of an exploration:
//   - Order: state keys in visit sequence, the initial state first.
//   - Depth: key → fewest moves from the initial state.
//   - Parent: key → key of its predecessor in the BFS tree.
//   - Via: key → the move that reached it from its parent.
//   - Reachable: number of distinct states discovered.
//   - Goals: number of discovered goal states.
//   - GoalDepth: fewest moves to any goal state, -1 if none was found.
//   - GoalKey: key of the first goal state visited ("" if none).
//   - Deepest: largest depth among discovered states.
//   - Truncated: a depth or state limit left some states undiscovered.
type Result struct {
	Order     []string
	Depth     map[string]int
	Parent    map[string]string
	Via       map[string]puzzle.Move
	Reachable int
	Goals     int
	GoalDepth int
	GoalKey   string
	Deepest   int
	Truncated bool
}

// PathTo reconstructs the keys from the initial state to dest.
// Returns ErrNotReached if dest was not discovered.
func (r *Result) PathTo(dest string) ([]string, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotReached, dest)
	}
	path := []string{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	slices.Reverse(path)

	return path, nil
}

// MovesTo returns the moves that lead from the initial state to dest.
func (r *Result) MovesTo(dest string) ([]puzzle.Move, error) {
	keys, err := r.PathTo(dest)
	if err != nil {
		return nil, err
	}
	moves := make([]puzzle.Move, 0, len(keys)-1)
	for _, k := range keys[1:] {
		moves = append(moves, r.Via[k])
	}

	return moves, nil
}
