package puzzle

// Empty marks a grid cell not covered by any car.
const Empty = -1

// Grid is a row-major occupancy view of one State: each cell holds the index
// of the car covering it, or Empty. A Grid is derived on demand and never
// stored on the State, so there is no board to keep in sync with positions.
type Grid struct {
	size  int
	cells []int
}

// Size returns the side length of the grid.
func (g Grid) Size() int { return g.size }

// InBounds reports whether (row, col) lies within the grid.
// Complexity: O(1).
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// At returns the car covering (row, col), or Empty. The cell must be in bounds.
func (g Grid) At(row, col int) int {
	return g.cells[g.index(row, col)]
}

// Coordinate converts a row-major index back to (row, col).
// Complexity: O(1).
func (g Grid) Coordinate(idx int) (row, col int) {
	return idx / g.size, idx % g.size
}

// index maps (row, col) to a row-major index: row*size + col.
func (g Grid) index(row, col int) int {
	return row*g.size + col
}
