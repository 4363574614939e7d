package puzzle_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rushhour/puzzle"
)

// twoCar is the 6×6 puzzle with the goal car in row 2 and one vertical blocker.
func twoCar(t *testing.T) *puzzle.Puzzle {
	t.Helper()
	p, err := puzzle.New(6, []puzzle.Car{
		{Name: 'X', Orientation: puzzle.Horizontal, Size: 2, Row: 2, Col: 0},
		{Name: 'A', Orientation: puzzle.Vertical, Size: 2, Row: 2, Col: 2},
	}, puzzle.WithName("two-car"))
	require.NoError(t, err)

	return p
}

func TestNew_Accessors(t *testing.T) {
	p := twoCar(t)

	assert.Equal(t, "two-car", p.Name())
	assert.Equal(t, 6, p.GridSize())
	assert.Equal(t, 2, p.NumCars())

	// goal car: horizontal, fixed row 2, free column 0
	assert.Equal(t, puzzle.Horizontal, p.Orientation(0))
	assert.Equal(t, 2, p.FixedPosition(0))
	assert.Equal(t, 2, p.CarSize(0))
	assert.Equal(t, 'X', p.CarName(0))
	assert.Equal(t, 4, p.GoalPosition())

	// blocker: vertical, fixed column 2, free row 2
	assert.Equal(t, puzzle.Vertical, p.Orientation(1))
	assert.Equal(t, 2, p.FixedPosition(1))
	assert.Equal(t, 2, p.Initial().Position(1))

	assert.Equal(t, []puzzle.Car{
		{Name: 'X', Orientation: puzzle.Horizontal, Size: 2, Row: 2, Col: 0},
		{Name: 'A', Orientation: puzzle.Vertical, Size: 2, Row: 2, Col: 2},
	}, p.Cars())
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		gridSize int
		cars     []puzzle.Car
		want     error
	}{
		{"zero grid", 0, []puzzle.Car{{Name: 'X', Size: 1}}, puzzle.ErrGridSize},
		{"huge grid", puzzle.MaxGridSize + 1, []puzzle.Car{{Name: 'X', Size: 1}}, puzzle.ErrGridSize},
		{"no cars", 6, nil, puzzle.ErrNoCars},
		{"zero size", 6, []puzzle.Car{{Name: 'X', Size: 0}}, puzzle.ErrCarSize},
		{"negative size", 6, []puzzle.Car{{Name: 'X', Size: -2}}, puzzle.ErrCarSize},
		{"bad orientation", 6, []puzzle.Car{{Name: 'X', Size: 2, Orientation: puzzle.Orientation(7)}}, puzzle.ErrOrientation},
		{"negative row", 6, []puzzle.Car{{Name: 'X', Size: 2, Row: -1}}, puzzle.ErrOutOfBounds},
		{"past right edge", 6, []puzzle.Car{{Name: 'X', Size: 2, Row: 2, Col: 5}}, puzzle.ErrOutOfBounds},
		{"past bottom edge", 6, []puzzle.Car{
			{Name: 'X', Size: 2, Row: 2},
			{Name: 'A', Size: 3, Orientation: puzzle.Vertical, Row: 4, Col: 4},
		}, puzzle.ErrOutOfBounds},
		{"overlap", 6, []puzzle.Car{
			{Name: 'X', Size: 2, Row: 2, Col: 0},
			{Name: 'A', Size: 2, Orientation: puzzle.Vertical, Row: 1, Col: 1},
		}, puzzle.ErrOverlap},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := puzzle.New(tc.gridSize, tc.cars)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, puzzle.ErrInvalidPuzzle, "every construction error is an invalid puzzle")
		})
	}
}

func TestOrientation_String(t *testing.T) {
	assert.Equal(t, "horizontal", puzzle.Horizontal.String())
	assert.Equal(t, "vertical", puzzle.Vertical.String())
	assert.Equal(t, "Orientation(9)", puzzle.Orientation(9).String())
}

func TestMove_String(t *testing.T) {
	assert.Equal(t, "A-2", puzzle.Move{Car: 1, Name: 'A', From: 2, To: 0}.String())
	assert.Equal(t, "X+4", puzzle.Move{Car: 0, Name: 'X', From: 0, To: 4}.String())
	assert.Equal(t, -2, puzzle.Move{From: 2, To: 0}.Distance())
}

func TestNew_ErrorsAreDistinct(t *testing.T) {
	_, err := puzzle.New(6, []puzzle.Car{{Name: 'X', Size: 0}})
	require.Error(t, err)
	assert.False(t, errors.Is(err, puzzle.ErrOverlap))
	assert.Contains(t, err.Error(), "'X'")
}
