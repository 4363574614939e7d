package puzzle

import (
	"fmt"
	"slices"
	"strings"
)

// State is a snapshot of every car's free-axis coordinate. Fixed-axis
// coordinates come from the Puzzle. States are immutable: moves always
// produce a new State, so a State may be shared without copying.
//
// The zero State has no puzzle and must not be used.
type State struct {
	p   *Puzzle
	pos []int
}

// Successor pairs a legal move with the state it produces.
type Successor struct {
	Move  Move
	State State
}

// Puzzle returns the descriptor this state belongs to.
func (s State) Puzzle() *Puzzle { return s.p }

// Position returns the free-axis coordinate of car v.
func (s State) Position(v int) int { return s.pos[v] }

// Positions returns a copy of the position vector.
func (s State) Positions() []int { return slices.Clone(s.pos) }

// IsGoal reports whether the goal car touches the exit edge of its lane.
func (s State) IsGoal() bool {
	return s.pos[0] == s.p.GoalPosition()
}

// Key returns a compact identity usable as a map key. Two states of the same
// puzzle have equal keys iff their position vectors are equal.
func (s State) Key() string {
	b := make([]byte, len(s.pos))
	for v, x := range s.pos {
		b[v] = byte(x)
	}

	return string(b)
}

// Equal reports whether s and o belong to the same puzzle and hold the same
// positions.
func (s State) Equal(o State) bool {
	return s.p == o.p && slices.Equal(s.pos, o.pos)
}

// Occupancy derives the grid of car indices from the puzzle and positions.
// Complexity: O(gridSize² + Σ size).
func (s State) Occupancy() Grid {
	n := s.p.gridSize
	g := Grid{size: n, cells: make([]int, n*n)}
	for i := range g.cells {
		g.cells[i] = Empty
	}
	for v, x := range s.pos {
		for d := 0; d < s.p.carSize[v]; d++ {
			row, col := s.p.LaneCell(v, x+d)
			g.cells[g.index(row, col)] = v
		}
	}

	return g
}

// Moves enumerates every legal slide from s. Cars are visited in index order;
// for each car the slides toward the low end of its lane come first, nearest
// first, then the slides toward the high end. A slide of any length through
// free cells is a single move. The result is empty when no car can move.
func (s State) Moves() []Move {
	g := s.Occupancy()
	p := s.p
	var moves []Move
	for v, at := range s.pos {
		size := p.carSize[v]
		// the cell entered at the low end is the new first cell
		for to := at - 1; to >= 0 && s.laneFree(g, v, to); to-- {
			moves = append(moves, Move{Car: v, Name: p.carName[v], From: at, To: to})
		}
		// the cell entered at the high end is the new last cell
		for to := at + 1; to+size <= p.gridSize && s.laneFree(g, v, to+size-1); to++ {
			moves = append(moves, Move{Car: v, Name: p.carName[v], From: at, To: to})
		}
	}

	return moves
}

// Successors returns the state produced by each of s.Moves(), in the same order.
func (s State) Successors() []Successor {
	moves := s.Moves()
	succ := make([]Successor, len(moves))
	for i, m := range moves {
		succ[i] = Successor{Move: m, State: s.with(m.Car, m.To)}
	}

	return succ
}

// Apply checks that m is a legal slide from s and returns the resulting state.
// Errors wrap ErrIllegalMove.
func (s State) Apply(m Move) (State, error) {
	p := s.p
	if m.Car < 0 || m.Car >= len(s.pos) {
		return State{}, fmt.Errorf("%w: car index %d out of range [0,%d)", ErrIllegalMove, m.Car, len(s.pos))
	}
	if at := s.pos[m.Car]; m.From != at {
		return State{}, fmt.Errorf("%w: car %q is at %d, move starts at %d", ErrIllegalMove, p.carName[m.Car], at, m.From)
	}
	size := p.carSize[m.Car]
	if m.To == m.From || m.To < 0 || m.To+size > p.gridSize {
		return State{}, fmt.Errorf("%w: car %q cannot move from %d to %d", ErrIllegalMove, p.carName[m.Car], m.From, m.To)
	}

	lo, hi := m.To, m.From-1
	if m.To > m.From {
		lo, hi = m.From+size, m.To+size-1
	}
	g := s.Occupancy()
	for x := lo; x <= hi; x++ {
		if !s.laneFree(g, m.Car, x) {
			row, col := p.LaneCell(m.Car, x)
			return State{}, fmt.Errorf("%w: car %q blocked at (%d,%d)", ErrIllegalMove, p.carName[m.Car], row, col)
		}
	}

	return s.with(m.Car, m.To), nil
}

// Replay applies moves in order from p.Initial() and returns the final state.
// The first illegal move stops the replay with an error naming its index.
func Replay(p *Puzzle, moves []Move) (State, error) {
	s := p.Initial()
	for i, m := range moves {
		next, err := s.Apply(m)
		if err != nil {
			return s, fmt.Errorf("move %d (%v): %w", i, m, err)
		}
		s = next
	}

	return s, nil
}

// String renders the grid row by row, one rune per cell, '.' for empty cells.
func (s State) String() string {
	g := s.Occupancy()
	var sb strings.Builder
	for row := 0; row < g.size; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < g.size; col++ {
			if v := g.At(row, col); v == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteRune(s.p.carName[v])
			}
		}
	}

	return sb.String()
}

// laneFree reports whether coordinate x on car v's lane is an empty cell.
func (s State) laneFree(g Grid, v, x int) bool {
	row, col := s.p.LaneCell(v, x)
	return g.At(row, col) == Empty
}

// with returns a copy of s with car v moved to x.
func (s State) with(v, x int) State {
	pos := slices.Clone(s.pos)
	pos[v] = x

	return State{p: s.p, pos: pos}
}
