package astar

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/katalvlaran/rushhour/puzzle"
)

// Solve runs A* from p's initial state and returns the first goal reached.
//
// The frontier is ordered by f = g + h, then g, then insertion order. With an
// admissible heuristic the returned path is a shortest one. Every slide counts
// as one move, so Cost is the number of moves.
//
// Preconditions and validation (in order):
//  1. Options must be valid (ErrOptionViolation).
//  2. p must be non-nil (ErrNilPuzzle).
//
// An unsolvable puzzle or an exhausted budget is reported through
// Result.Status, not as an error. When the context ends, Solve returns the
// partial result (StatusCanceled or StatusTimedOut) together with ctx.Err().
//
// Solve panics with an error wrapping ErrNegativeHeuristic if the heuristic
// ever returns a negative value.
//
// Complexity:
//
//   - Time:  O(N·(B·C + log N)) where N = generated nodes, B = branching
//     factor, C = cost of a successor plus its heuristic.
//   - Space: O(N) for the node arena, frontier index and settled set.
func Solve(p *puzzle.Puzzle, opts ...Option) (*Result, error) {
	// 1) Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// 2) Validate the puzzle
	if p == nil {
		return nil, ErrNilPuzzle
	}

	r := newRunner(p, o)
	r.init()

	return r.loop()
}

// newRunner prepares an empty search of p under validated options o.
func newRunner(p *puzzle.Puzzle, o Options) *runner {
	return &runner{
		p:       p,
		opts:    o,
		ctx:     o.Ctx,
		log:     o.Logger.With("puzzle", p.Name()),
		open:    make(map[string]*item),
		settled: make(map[string]struct{}),
		start:   time.Now(),
	}
}

// node is an arena-stored search node. parent is an arena index (-1 for the
// root), so the tree never holds pointers.
type node struct {
	state  puzzle.State
	move   puzzle.Move // move from parent; zero for the root
	g      int
	h      int
	parent int
	depth  int
}

// runner holds the mutable state of a single search.
type runner struct {
	p       *puzzle.Puzzle
	opts    Options
	ctx     context.Context
	log     *slog.Logger
	nodes   []node              // arena; index is node identity
	pq      frontier            // open entries by priority
	open    map[string]*item    // state key → its frontier entry
	settled map[string]struct{} // keys of expanded states
	count   int                 // nodes generated, root included
	expand  int                 // nodes settled
	seq     int
	start   time.Time
}

// init creates the root node and pushes it onto the frontier.
func (r *runner) init() {
	root := r.p.Initial()
	h := r.estimate(root)
	r.nodes = append(r.nodes, node{state: root, g: 0, h: h, parent: -1})
	r.count = 1
	r.push(0, root.Key())
	r.log.Debug("search started", "cars", r.p.NumCars(), "h0", h, "max_nodes", r.opts.MaxNodes)
}

// loop pops nodes until a goal, an empty frontier, an exhausted budget, or
// the end of the context.
func (r *runner) loop() (*Result, error) {
	for r.pq.Len() > 0 {
		// cancellation check (once per loop)
		if err := r.ctx.Err(); err != nil {
			st := StatusCanceled
			if errors.Is(err, context.DeadlineExceeded) {
				st = StatusTimedOut
			}
			return r.result(st, -1), err
		}

		// 1) Pop the best entry
		it := heap.Pop(&r.pq).(*item)
		n := r.nodes[it.node]
		key := n.state.Key()
		delete(r.open, key)

		// 2) Goal test
		if n.state.IsGoal() {
			return r.result(StatusSolved, it.node), nil
		}

		// 3) Settle and expand
		r.settled[key] = struct{}{}
		r.expand++
		r.opts.OnExpand(n.state, n.g, n.h)
		if !r.relax(it.node) {
			return r.result(StatusBudgetExceeded, -1), nil
		}
	}

	return r.result(StatusUnsolvable, -1), nil
}

// relax generates the successors of arena node u and pushes every one that is
// new or improves on its frontier entry. It reports false when the node
// budget runs out.
func (r *runner) relax(u int) bool {
	parent := r.nodes[u]
	g := parent.g + 1
	for _, sc := range parent.state.Successors() {
		key := sc.State.Key()
		if _, done := r.settled[key]; done {
			continue
		}
		old, queued := r.open[key]
		if queued && old.g <= g {
			continue
		}

		// budget is checked before a node is created
		if r.opts.MaxNodes > 0 && r.count >= r.opts.MaxNodes {
			return false
		}
		r.nodes = append(r.nodes, node{
			state:  sc.State,
			move:   sc.Move,
			g:      g,
			h:      r.estimate(sc.State),
			parent: u,
			depth:  parent.depth + 1,
		})
		r.count++
		id := len(r.nodes) - 1

		if queued {
			// decrease-key: the entry takes the new node and a fresh sequence number
			r.seq++
			old.node, old.g, old.f, old.seq = id, g, g+r.nodes[id].h, r.seq
			heap.Fix(&r.pq, old.index)
			continue
		}
		r.push(id, key)
	}

	return true
}

// push adds arena node id to the frontier under key.
func (r *runner) push(id int, key string) {
	n := r.nodes[id]
	r.seq++
	it := &item{node: id, f: n.g + n.h, g: n.g, seq: r.seq}
	heap.Push(&r.pq, it)
	r.open[key] = it
}

// estimate evaluates the heuristic and rejects negative values.
func (r *runner) estimate(s puzzle.State) int {
	h := r.opts.Heuristic(s)
	if h < 0 {
		panic(fmt.Errorf("%w: h=%d for state %v", ErrNegativeHeuristic, h, s.Positions()))
	}

	return h
}

// result assembles the Result; goal is the arena index of the goal node or -1.
func (r *runner) result(st Status, goal int) *Result {
	res := &Result{
		Status:        st,
		Cost:          -1,
		NodesExpanded: r.count,
		Settled:       r.expand,
		Elapsed:       time.Since(r.start),
	}
	if goal >= 0 {
		res.Path = r.path(goal)
		res.Cost = r.nodes[goal].g
		res.Final = r.nodes[goal].state
	}
	r.log.Debug("search finished",
		"status", st.String(),
		"cost", res.Cost,
		"nodes", res.NodesExpanded,
		"settled", res.Settled,
		"elapsed", res.Elapsed,
	)

	return res
}

// path walks parent links from goal to the root and reverses them.
func (r *runner) path(goal int) []puzzle.Move {
	path := make([]puzzle.Move, 0, r.nodes[goal].depth)
	for i := goal; r.nodes[i].parent >= 0; i = r.nodes[i].parent {
		path = append(path, r.nodes[i].move)
	}
	slices.Reverse(path)

	return path
}
