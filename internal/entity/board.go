package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
)

var (
	ErrInvalidBoardSize    = errors.New("board dimensions must be positive")
	ErrTooManyMines        = errors.New("mine count exceeds the number of fields")
	ErrInvalidMinePosition = errors.New("invalid mine position")
)

// Board owns the full grid of fields. Fields are stored in a single
// contiguous slice indexed by y*Width+x.
type Board struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	MineCount int     `json:"mine_count"`
	Fields    []Field `json:"fields"`
	Mines     []Point `json:"mines"`
}

// NewBoard - creates a board with mineCount mines placed uniformly at random.
func NewBoard(width, height, mineCount int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBoardSize, width, height)
	}

	if mineCount < 0 || mineCount > width*height {
		return nil, fmt.Errorf("%w: %d mines on %d fields", ErrTooManyMines, mineCount, width*height)
	}

	mines := make([]Point, 0, mineCount)
	for _, n := range rand.Perm(width * height)[:mineCount] { //nolint: gosec // not used for security
		mines = append(mines, Point{X: n % width, Y: n / width})
	}

	return NewBoardWithMines(width, height, mines)
}

// NewBoardWithMines - creates a board with an explicit mine layout.
// Used for replaying a known layout and for deterministic tests.
func NewBoardWithMines(width, height int, mines []Point) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBoardSize, width, height)
	}

	if len(mines) > width*height {
		return nil, fmt.Errorf("%w: %d mines on %d fields", ErrTooManyMines, len(mines), width*height)
	}

	board := &Board{
		Width:     width,
		Height:    height,
		MineCount: len(mines),
		Fields:    make([]Field, width*height),
		Mines:     mines,
	}

	for i := range board.Fields {
		board.Fields[i].State = FieldCovered
	}

	for _, mine := range mines {
		if !board.InBounds(mine.X, mine.Y) {
			return nil, fmt.Errorf("%w: (%d,%d) is out of bounds", ErrInvalidMinePosition, mine.X, mine.Y)
		}

		field := board.fieldAt(mine.X, mine.Y)
		if field.HasMine {
			return nil, fmt.Errorf("%w: (%d,%d) is mined twice", ErrInvalidMinePosition, mine.X, mine.Y)
		}

		field.HasMine = true
	}

	board.computeAdjacency()

	return board, nil
}

func (that *Board) InBounds(x, y int) bool {
	return x >= 0 && x < that.Width && y >= 0 && y < that.Height
}

func (that *Board) fieldAt(x, y int) *Field {
	return &that.Fields[y*that.Width+x]
}

// StateAt - returns the state of the field at (x,y).
// The coordinates must be in bounds.
func (that *Board) StateAt(x, y int) FieldState {
	return that.fieldAt(x, y).State
}

// AdjacentAt - returns the number of mines bordering the field at (x,y).
// The coordinates must be in bounds.
func (that *Board) AdjacentAt(x, y int) int {
	return that.fieldAt(x, y).Adjacent
}

// Uncover - uncovers the field at (x,y) and returns its adjacent mine count.
//
// It fails with ErrAlreadyUncovered on uncovered fields, with ErrFieldTagged
// on tagged fields, and with ErrMineFound when the field hides a mine. A hit
// mine still transitions to FieldUncovered so the loss sweep sees a
// consistent state.
func (that *Board) Uncover(x, y int) (int, error) {
	if !that.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d)", apperror.ErrOutOfBounds, x, y)
	}

	field := that.fieldAt(x, y)

	switch field.State {
	case FieldUncovered:
		return 0, apperror.ErrAlreadyUncovered
	case FieldMineTagged, FieldMinePossible:
		return 0, apperror.ErrFieldTagged
	case FieldCovered:
	}

	field.State = FieldUncovered

	if field.HasMine {
		return 0, apperror.ErrMineFound
	}

	return field.Adjacent, nil
}

// SwitchTagging - advances the field at (x,y) one step along the tagging
// ring: covered -> mine tagged -> mine possible -> covered.
func (that *Board) SwitchTagging(x, y int) (FieldState, error) {
	if !that.InBounds(x, y) {
		return "", fmt.Errorf("%w: (%d,%d)", apperror.ErrOutOfBounds, x, y)
	}

	field := that.fieldAt(x, y)

	switch field.State {
	case FieldUncovered:
		return FieldUncovered, apperror.ErrAlreadyUncovered
	case FieldCovered:
		field.State = FieldMineTagged
	case FieldMineTagged:
		field.State = FieldMinePossible
	case FieldMinePossible:
		field.State = FieldCovered
	}

	return field.State, nil
}

// Neighbors - returns the in-bounds Moore neighborhood of (x,y).
func (that *Board) Neighbors(x, y int) []Point {
	neighbors := make([]Point, 0, 8)

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}

			if that.InBounds(x+dx, y+dy) {
				neighbors = append(neighbors, Point{X: x + dx, Y: y + dy})
			}
		}
	}

	return neighbors
}

func (that *Board) computeAdjacency() {
	for y := 0; y < that.Height; y++ {
		for x := 0; x < that.Width; x++ {
			count := 0
			for _, neighbor := range that.Neighbors(x, y) {
				if that.fieldAt(neighbor.X, neighbor.Y).HasMine {
					count++
				}
			}

			that.fieldAt(x, y).Adjacent = count
		}
	}
}
