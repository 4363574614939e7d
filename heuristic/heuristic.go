// Package heuristic provides lower-bound estimates of the number of moves
// left before a Rush Hour state reaches its goal.
//
// A heuristic is admissible when it never overestimates the remaining cost and
// consistent when h(s) ≤ 1 + h(t) for every move s→t. A* returns optimal
// solutions only with an admissible heuristic. Blocking is both; Zero is the
// trivial bound that reduces A* to uniform-cost search; DistanceBlocking is a
// stronger pull toward the exit that may overestimate.
package heuristic

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/rushhour/puzzle"
)

// ErrUnknownHeuristic is returned by ByName for an unregistered name.
var ErrUnknownHeuristic = errors.New("heuristic: unknown heuristic")

// Func estimates the remaining number of moves from s to a goal state.
// Implementations must be pure, deterministic, and return a value ≥ 0.
type Func func(s puzzle.State) int

// Default is the name of the heuristic used when none is chosen.
const Default = "blocking"

var registry = map[string]Func{
	"zero":     Zero,
	"blocking": Blocking,
	"distance": DistanceBlocking,
}

// Zero always returns 0.
func Zero(puzzle.State) int { return 0 }

// Blocking returns 0 for a goal state and otherwise 1 plus the number of
// distinct cars occupying the lane cells between the goal car's leading edge
// and the exit. The goal car needs at least one move, and every blocker has to
// move out of the lane at least once, each in a separate move.
func Blocking(s puzzle.State) int {
	if s.IsGoal() {
		return 0
	}

	return 1 + len(Blockers(s))
}

// DistanceBlocking returns the number of cells between the goal car and the
// exit plus the number of distinct blockers.
//
// Since a single move may slide the goal car across several cells, the
// estimate can exceed the true remaining cost. Searches guided by it tend to
// expand fewer nodes but may return a path longer than the optimum.
func DistanceBlocking(s puzzle.State) int {
	p := s.Puzzle()

	return p.GoalPosition() - s.Position(0) + len(Blockers(s))
}

// Blockers returns the indices of the cars standing between the goal car and
// the exit, in lane order, without repeats.
func Blockers(s puzzle.State) []int {
	p := s.Puzzle()
	g := s.Occupancy()
	var cars []int
	for x := s.Position(0) + p.CarSize(0); x < p.GridSize(); x++ {
		row, col := p.LaneCell(0, x)
		if v := g.At(row, col); v != puzzle.Empty && !slices.Contains(cars, v) {
			cars = append(cars, v)
		}
	}

	return cars
}

// ByName returns the heuristic registered under name.
func ByName(name string) (Func, error) {
	if f, ok := registry[name]; ok {
		return f, nil
	}

	return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownHeuristic, name, Names())
}

// Names lists the registered heuristic names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
