// Package puzzle defines the immutable Rush Hour puzzle descriptor, its
// options, and the sentinel errors reported while building one.
package puzzle

import (
	"errors"
	"fmt"
)

// MaxGridSize bounds the side length of a puzzle grid. State keys store one
// byte per car, so free-axis coordinates must fit in a byte.
const MaxGridSize = 255

// Sentinel errors for puzzle construction, parsing, and move replay.
var (
	// ErrInvalidPuzzle is wrapped by every construction error, so callers can
	// test for "bad descriptor" without enumerating the specific causes.
	ErrInvalidPuzzle = errors.New("puzzle: invalid puzzle")

	// ErrGridSize indicates a grid side length outside [1, MaxGridSize].
	ErrGridSize = errors.New("puzzle: grid size out of range")

	// ErrNoCars indicates a puzzle with zero cars.
	ErrNoCars = errors.New("puzzle: puzzle must have a positive number of cars")

	// ErrCarSize indicates a car with non-positive length.
	ErrCarSize = errors.New("puzzle: cars must have positive size")

	// ErrOrientation indicates an orientation other than Horizontal or Vertical.
	ErrOrientation = errors.New("puzzle: unknown car orientation")

	// ErrOutOfBounds indicates a car not fully inside the grid.
	ErrOutOfBounds = errors.New("puzzle: cars must be within bounds of grid")

	// ErrOverlap indicates two cars covering the same cell.
	ErrOverlap = errors.New("puzzle: cars cannot overlap")

	// ErrIllegalMove is returned by State.Apply and Replay for a move that
	// does not describe a legal slide from the given state.
	ErrIllegalMove = errors.New("puzzle: illegal move")

	// ErrMalformedBoard indicates a textual board that cannot be read as a grid of cars.
	ErrMalformedBoard = errors.New("puzzle: malformed board")

	// ErrNoGoalCar indicates a textual board without the goal car 'X'.
	ErrNoGoalCar = errors.New("puzzle: board has no goal car")
)

// invalid wraps cause with ErrInvalidPuzzle and a formatted detail.
func invalid(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrInvalidPuzzle, cause, fmt.Sprintf(format, args...))
}

// Orientation is the axis along which a car slides.
type Orientation int

const (
	// Horizontal cars slide along their row; the row is fixed.
	Horizontal Orientation = iota
	// Vertical cars slide along their column; the column is fixed.
	Vertical
)

// String returns "horizontal" or "vertical".
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// Car describes one car at construction time. Row and Col locate its
// top-left cell; a horizontal car covers Size cells to the right of it,
// a vertical car Size cells downward.
type Car struct {
	Name        rune
	Orientation Orientation
	Size        int
	Row, Col    int
}

// Move is a single slide of one car. To is the car's free-axis coordinate
// after the move, which is enough to replay a solution.
type Move struct {
	Car  int  // index of the moved car
	Name rune // display name of the moved car
	From int  // free-axis coordinate before the move
	To   int  // free-axis coordinate after the move
}

// Distance returns the signed number of cells slid; negative is up/left.
func (m Move) Distance() int { return m.To - m.From }

// String renders the move as the car name followed by the signed distance,
// for example "A-2" or "X+4".
func (m Move) String() string {
	return fmt.Sprintf("%c%+d", m.Name, m.To-m.From)
}

// Option configures a Puzzle at construction.
type Option func(*options)

type options struct {
	name string
}

// WithName sets the puzzle's display name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}
