package puzzle

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// GoalName is the board character of the goal car.
const GoalName = 'X'

// isEmptyCell reports whether r marks an unoccupied board cell.
func isEmptyCell(r rune) bool { return r == '.' || r == 'o' || r == '_' }

// ParseBoard reads a textual board and builds its Puzzle.
//
// The board is n×n cells, written either as a single line of n² characters
// (the classic 36-character form of a 6×6 puzzle) or as n whitespace-separated
// rows of n characters. '.', 'o' and '_' are empty cells; any other character names
// a car. 'X' is the goal car and becomes car 0; the remaining cars keep their
// order of first appearance in row-major order. A car's size is its cell count
// and its orientation follows from its cells, which must form one straight
// contiguous run (single-cell cars are horizontal).
//
// Errors wrap ErrMalformedBoard, ErrNoGoalCar, or the construction errors of New.
func ParseBoard(board string, opts ...Option) (*Puzzle, error) {
	rows, err := boardRows(board)
	if err != nil {
		return nil, err
	}

	var order []rune
	cells := make(map[rune][][2]int)
	for r, row := range rows {
		for c, ch := range row {
			if isEmptyCell(ch) {
				continue
			}
			if _, seen := cells[ch]; !seen {
				order = append(order, ch)
			}
			cells[ch] = append(cells[ch], [2]int{r, c})
		}
	}
	if _, ok := cells[GoalName]; !ok {
		return nil, fmt.Errorf("%w: want a car named %q", ErrNoGoalCar, GoalName)
	}

	cars := make([]Car, 0, len(order))
	goal, err := carFromCells(GoalName, cells[GoalName])
	if err != nil {
		return nil, err
	}
	cars = append(cars, goal)
	for _, name := range order {
		if name == GoalName {
			continue
		}
		car, err := carFromCells(name, cells[name])
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}

	return New(len(rows), cars, opts...)
}

// boardRows splits a board into square rows of runes.
func boardRows(board string) ([][]rune, error) {
	fields := strings.Fields(board)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty board", ErrMalformedBoard)
	}

	if len(fields) == 1 {
		line := []rune(fields[0])
		n := 1
		for n*n < len(line) {
			n++
		}
		if n*n != len(line) {
			return nil, fmt.Errorf("%w: %d cells is not a square grid", ErrMalformedBoard, len(line))
		}
		rows := make([][]rune, n)
		for r := range rows {
			rows[r] = line[r*n : (r+1)*n]
		}
		return rows, nil
	}

	n := len(fields)
	rows := make([][]rune, n)
	for r, f := range fields {
		rows[r] = []rune(f)
		if len(rows[r]) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedBoard, r+1, len(rows[r]), n)
		}
	}

	return rows, nil
}

// carFromCells infers a car from its cells, listed in row-major order.
func carFromCells(name rune, cells [][2]int) (Car, error) {
	first := cells[0]
	car := Car{Name: name, Orientation: Horizontal, Size: len(cells), Row: first[0], Col: first[1]}
	if len(cells) > 1 && cells[1][1] == first[1] {
		car.Orientation = Vertical
	}
	for d, cell := range cells {
		want := [2]int{first[0], first[1] + d}
		if car.Orientation == Vertical {
			want = [2]int{first[0] + d, first[1]}
		}
		if cell != want {
			return Car{}, fmt.Errorf("%w: car %q cells are not one straight run", ErrMalformedBoard, name)
		}
	}

	return car, nil
}

// ReadPuzzles reads a puzzle file: one board per line in single-line form,
// optionally preceded by a name ("name BOARD"). Blank lines and lines starting
// with '#' are skipped. Unnamed puzzles are named "puzzle-N" by their position
// in the file. Errors carry the 1-based line number.
func ReadPuzzles(r io.Reader) ([]*Puzzle, error) {
	return ReadPuzzlesPrefix(r, "puzzle")
}

// ReadPuzzlesPrefix is ReadPuzzles with unnamed puzzles named "prefix-N".
func ReadPuzzlesPrefix(r io.Reader, prefix string) ([]*Puzzle, error) {
	var puzzles []*Puzzle
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		var name, board string
		switch len(fields) {
		case 1:
			name, board = fmt.Sprintf("%s-%d", prefix, len(puzzles)+1), fields[0]
		case 2:
			name, board = fields[0], fields[1]
		default:
			return nil, fmt.Errorf("puzzle: line %d: %w: want \"[name] board\", got %d fields", line, ErrMalformedBoard, len(fields))
		}

		p, err := ParseBoard(board, WithName(name))
		if err != nil {
			return nil, fmt.Errorf("puzzle: line %d: %w", line, err)
		}
		puzzles = append(puzzles, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("puzzle: reading puzzles: %w", err)
	}

	return puzzles, nil
}
