// Package rushhour solves Rush Hour sliding-block puzzles: square grids of
// cars that slide along their lanes until the goal car reaches the exit.
//
// What is in the module?
//
//	A deterministic A* solver plus the tooling around it:
//		• Puzzle model: immutable descriptor, compact states, legal slides
//		• Heuristics: zero, blocking cars (admissible), distance + blocking
//		• Search: A* with node budgets, cancellation and optimal paths
//		• Exploration: breadth-first enumeration of the reachable state space
//		• Batches: many puzzles solved concurrently, from files or HCL manifests
//		• Reports: text tables, JSON or YAML
//		• MCP: solver tools for language-model clients over stdio
//
// Packages:
//
//	puzzle/       Puzzle, State, Move; board parsing and puzzle files
//	heuristic/    estimate functions and their registry
//	astar/        the search engine (Solve, Options, Result)
//	explore/      breadth-first state-space walker
//	batch/        concurrent solving under per-puzzle budgets
//	manifest/     HCL batch manifests
//	report/       result rendering
//	mcpserver/    MCP tool server
//	cmd/rushhour  the command-line tool
//
// Quick example, a 6×6 board written as one 36-character line:
//
//	......
//	......
//	XXA...      p, _ := puzzle.ParseBoard("............XXA.....A...............")
//	..A...      res, _ := astar.Solve(p)
//	......      fmt.Println(res.Path) // [A-2 X+4]
//	......
//
// The goal car X leaves through the right edge once car A moves out of its row.
//
//	go install github.com/katalvlaran/rushhour/cmd/rushhour@latest
package rushhour
