// Package astar solves Rush Hour puzzles with best-first (A*) search.
//
// Overview:
//
//   - Solve expands states in order of f = g + h, where g is the number of
//     moves made so far and h is a heuristic estimate of the moves left.
//   - Every slide, whatever its length, is one move of cost 1.
//   - With an admissible heuristic (heuristic.Zero, heuristic.Blocking) the
//     first goal popped is reached by a shortest path.
//
// Search bookkeeping:
//
//   - Nodes live in one arena slice owned by the run; parent links are arena
//     indices, so path reconstruction walks indices back to the root.
//   - The frontier is a container/heap keyed by (f, g, insertion order). Each
//     queued state has one entry, re-prioritized in place (heap.Fix) when a
//     cheaper path to it is found.
//   - The settled set holds the keys of expanded states; they are never
//     expanded again.
//
// Counting:
//
//   - NodesExpanded is the number of search nodes generated: 1 for the root
//     plus 1 for every node pushed, including nodes that replace a frontier
//     entry and nodes never expanded.
//   - Settled is the number of nodes popped and expanded.
//
// Termination:
//
//   - StatusSolved: a goal state was popped.
//   - StatusUnsolvable: the frontier ran empty. A gridlocked puzzle ends here
//     with NodesExpanded == 1.
//   - StatusBudgetExceeded: WithMaxNodes was reached before a node could be
//     created.
//   - StatusCanceled / StatusTimedOut: the context ended; Solve also returns
//     ctx.Err().
//
// Error handling (sentinel errors):
//
//   - ErrNilPuzzle: Solve was given a nil puzzle.
//   - ErrOptionViolation: a negative budget or a nil heuristic.
//   - ErrNegativeHeuristic: wrapped in the panic raised when a heuristic
//     returns a negative value. This is a defect in the heuristic, not an
//     input error.
//
// Thread safety:
//
//   - Each call owns its frontier, settled set and counter. A *puzzle.Puzzle
//     is read-only, so any number of Solve calls may share it concurrently.
package astar
