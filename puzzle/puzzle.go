// Package puzzle models Rush Hour puzzles: a square grid of cars that can only
// slide along their own axis, with car 0 as the goal car that must reach the
// far edge of its lane.
//
// A Puzzle is immutable once built and may be shared freely between
// goroutines. Every State derived from it references the same descriptor.
package puzzle

// Puzzle is the read-only descriptor of one puzzle. For each car it stores the
// coordinate on its fixed axis, its size, orientation, and name, plus the
// free-axis coordinates of the initial placement.
type Puzzle struct {
	name     string
	gridSize int

	fixedPos []int
	carSize  []int
	orient   []Orientation
	carName  []rune

	initPos []int
}

// New validates cars against a gridSize×gridSize board and builds a Puzzle.
// cars[0] is the goal car.
//
// Every returned error wraps ErrInvalidPuzzle together with one of
// ErrGridSize, ErrNoCars, ErrCarSize, ErrOrientation, ErrOutOfBounds or
// ErrOverlap.
//
// Complexity: O(gridSize² + Σ size) time and memory.
func New(gridSize int, cars []Car, opts ...Option) (*Puzzle, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if gridSize <= 0 || gridSize > MaxGridSize {
		return nil, invalid(ErrGridSize, "got %d, want 1..%d", gridSize, MaxGridSize)
	}
	n := len(cars)
	if n == 0 {
		return nil, invalid(ErrNoCars, "got %d", n)
	}

	p := &Puzzle{
		name:     o.name,
		gridSize: gridSize,
		fixedPos: make([]int, n),
		carSize:  make([]int, n),
		orient:   make([]Orientation, n),
		carName:  make([]rune, n),
		initPos:  make([]int, n),
	}

	occupied := make([]bool, gridSize*gridSize)
	for v, c := range cars {
		if c.Size <= 0 {
			return nil, invalid(ErrCarSize, "car %q has size %d", c.Name, c.Size)
		}

		height, width := 1, c.Size
		switch c.Orientation {
		case Horizontal:
		case Vertical:
			height, width = c.Size, 1
		default:
			return nil, invalid(ErrOrientation, "car %q: %v", c.Name, c.Orientation)
		}
		if c.Row < 0 || c.Col < 0 || c.Row > gridSize-height || c.Col > gridSize-width {
			return nil, invalid(ErrOutOfBounds, "car %q at (%d,%d) size %d %v", c.Name, c.Row, c.Col, c.Size, c.Orientation)
		}

		p.carSize[v] = c.Size
		p.orient[v] = c.Orientation
		p.carName[v] = c.Name
		if c.Orientation == Horizontal {
			p.fixedPos[v], p.initPos[v] = c.Row, c.Col
		} else {
			p.fixedPos[v], p.initPos[v] = c.Col, c.Row
		}

		for d := 0; d < c.Size; d++ {
			row, col := p.LaneCell(v, p.initPos[v]+d)
			idx := row*gridSize + col
			if occupied[idx] {
				return nil, invalid(ErrOverlap, "car %q at cell (%d,%d)", c.Name, row, col)
			}
			occupied[idx] = true
		}
	}

	return p, nil
}

// Name returns the puzzle's display name, empty unless set with WithName.
func (p *Puzzle) Name() string { return p.name }

// GridSize returns the side length of the grid.
func (p *Puzzle) GridSize() int { return p.gridSize }

// NumCars returns the number of cars, including the goal car.
func (p *Puzzle) NumCars() int { return len(p.carSize) }

// FixedPosition returns the coordinate of car v on its immovable axis:
// the row of a horizontal car, the column of a vertical one.
func (p *Puzzle) FixedPosition(v int) int { return p.fixedPos[v] }

// CarSize returns the length of car v.
func (p *Puzzle) CarSize(v int) int { return p.carSize[v] }

// Orientation returns the orientation of car v.
func (p *Puzzle) Orientation(v int) Orientation { return p.orient[v] }

// CarName returns the display name of car v.
func (p *Puzzle) CarName(v int) rune { return p.carName[v] }

// GoalPosition is the free-axis coordinate at which the goal car touches the
// exit edge of the grid.
func (p *Puzzle) GoalPosition() int { return p.gridSize - p.carSize[0] }

// LaneCell maps coordinate x on car v's lane to a (row, col) grid cell.
// Complexity: O(1).
func (p *Puzzle) LaneCell(v, x int) (row, col int) {
	if p.orient[v] == Horizontal {
		return p.fixedPos[v], x
	}
	return x, p.fixedPos[v]
}

// Cars returns the car descriptors at their initial placement, in index order.
func (p *Puzzle) Cars() []Car {
	cars := make([]Car, len(p.carSize))
	for v := range cars {
		row, col := p.LaneCell(v, p.initPos[v])
		cars[v] = Car{
			Name:        p.carName[v],
			Orientation: p.orient[v],
			Size:        p.carSize[v],
			Row:         row,
			Col:         col,
		}
	}

	return cars
}

// Initial returns the root state of the puzzle.
func (p *Puzzle) Initial() State {
	return State{p: p, pos: p.initPos}
}
