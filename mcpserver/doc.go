// Package mcpserver exposes the solver as Model Context Protocol tools.
//
// Tools:
//   - solve_puzzle: solve a board and list the moves.
//   - validate_board: parse a board and describe its cars, or report why it
//     is not a valid puzzle.
//   - analyze_board: enumerate the reachable states of a board.
//
// Boards use the text format of puzzle.ParseBoard. Tool failures are
// returned as error results, never as protocol errors.
package mcpserver
