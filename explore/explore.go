// Package explore enumerates every state reachable from a puzzle's initial
// state in breadth-first order, returning move distances, parent links, and
// visit order.
//
// The distance of the first goal state visited is the optimal solution
// length, so Explore doubles as a brute-force oracle for the A* solver on
// puzzles small enough to enumerate. A standard 6×6 puzzle reaches at most a
// few hundred thousand states.
package explore

import (
	"context"
	"fmt"

	"github.com/katalvlaran/rushhour/puzzle"
)

// queueItem pairs a state with its BFS depth.
type queueItem struct {
	state puzzle.State
	key   string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	opts  Options
	ctx   context.Context
	queue []queueItem
	res   *Result
}

// Explore runs breadth-first search over p's state space, applying any number
// of functional Options. Returns ErrNilPuzzle for a nil puzzle,
// ErrOptionViolation for bad options, or any user-supplied hook error. On
// cancellation it returns the partial result with ctx.Err().
func Explore(p *puzzle.Puzzle, opts ...Option) (*Result, error) {
	if p == nil {
		return nil, ErrNilPuzzle
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	w := &walker{
		opts: o,
		ctx:  o.Ctx,
		res: &Result{
			Depth:     make(map[string]int),
			Parent:    make(map[string]string),
			Via:       make(map[string]puzzle.Move),
			GoalDepth: -1,
		},
	}
	root := p.Initial()
	w.enqueue(root, root.Key(), 0)

	return w.res, w.loop()
}

// enqueue records a newly discovered state and adds it to the queue.
func (w *walker) enqueue(s puzzle.State, key string, d int) {
	w.res.Depth[key] = d
	w.res.Reachable++
	if d > w.res.Deepest {
		w.res.Deepest = d
	}
	w.queue = append(w.queue, queueItem{state: s, key: key, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		// cancellation check (once per loop)
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		if err := w.visit(item); err != nil {
			return err
		}
		w.enqueueSuccessors(item)
	}

	return nil
}

// visit records the state in Order, notes goals, and calls OnVisit.
func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.key)
	if item.state.IsGoal() {
		w.res.Goals++
		if w.res.GoalDepth < 0 {
			w.res.GoalDepth = item.depth
			w.res.GoalKey = item.key
		}
	}
	if err := w.opts.OnVisit(item.state, item.depth); err != nil {
		return fmt.Errorf("explore: OnVisit error at depth %d: %w", item.depth, err)
	}

	return nil
}

// enqueueSuccessors applies the depth and state limits and enqueues each
// unseen successor.
func (w *walker) enqueueSuccessors(item queueItem) {
	next := item.depth + 1
	for _, sc := range item.state.Successors() {
		key := sc.State.Key()
		if _, seen := w.res.Depth[key]; seen {
			continue
		}
		if (w.opts.MaxDepth > 0 && next > w.opts.MaxDepth) ||
			(w.opts.MaxStates > 0 && w.res.Reachable >= w.opts.MaxStates) {
			w.res.Truncated = true
			continue
		}
		w.res.Parent[key] = item.key
		w.res.Via[key] = sc.Move
		w.enqueue(sc.State, key, next)
	}
}
