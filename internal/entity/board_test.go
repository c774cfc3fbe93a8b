package entity

import (
	"testing"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	t.Run("Places exactly the requested number of mines", func(t *testing.T) {
		// Given: a 9x9 board with 10 mines
		board, err := NewBoard(9, 9, 10)
		require.NoError(t, err)

		// When: counting the mined fields
		mined := 0
		for _, field := range board.Fields {
			if field.HasMine {
				mined++
			}
		}

		// Then: exactly 10 fields are mined, and the mine view matches
		assert.Equal(t, 10, mined)
		assert.Len(t, board.Mines, 10)
		for _, mine := range board.Mines {
			assert.True(t, board.fieldAt(mine.X, mine.Y).HasMine)
		}
	})

	t.Run("Every field starts covered", func(t *testing.T) {
		// Given: a freshly constructed board
		board, err := NewBoard(4, 3, 5)
		require.NoError(t, err)

		// Then: all fields are in the covered state
		for _, field := range board.Fields {
			assert.Equal(t, FieldCovered, field.State)
		}
	})

	t.Run("Adjacency counts match the mine layout", func(t *testing.T) {
		// Given: a random board
		board, err := NewBoard(8, 8, 12)
		require.NoError(t, err)

		// Then: every field's count equals the mines among its neighbors
		for y := 0; y < board.Height; y++ {
			for x := 0; x < board.Width; x++ {
				expected := 0
				for _, neighbor := range board.Neighbors(x, y) {
					if board.fieldAt(neighbor.X, neighbor.Y).HasMine {
						expected++
					}
				}

				assert.Equal(t, expected, board.AdjacentAt(x, y), "field (%d,%d)", x, y)
			}
		}
	})

	t.Run("Allows a fully mined board", func(t *testing.T) {
		// Given: as many mines as fields
		board, err := NewBoard(2, 2, 4)

		// Then: construction succeeds
		require.NoError(t, err)
		assert.Len(t, board.Mines, 4)
	})

	t.Run("Rejects more mines than fields", func(t *testing.T) {
		// When: requesting 5 mines on a 2x2 board
		_, err := NewBoard(2, 2, 5)

		// Then: an ErrTooManyMines error should be returned
		assert.ErrorIs(t, err, ErrTooManyMines)
	})

	t.Run("Rejects a negative mine count", func(t *testing.T) {
		_, err := NewBoard(3, 3, -1)

		assert.ErrorIs(t, err, ErrTooManyMines)
	})

	t.Run("Rejects non-positive dimensions", func(t *testing.T) {
		_, err := NewBoard(0, 5, 0)

		assert.ErrorIs(t, err, ErrInvalidBoardSize)
	})
}

func TestNewBoardWithMines(t *testing.T) {
	t.Run("Computes the classic adjacency pattern around a single mine", func(t *testing.T) {
		// Given: a 3x3 board with one mine in the center
		board, err := NewBoardWithMines(3, 3, []Point{{X: 1, Y: 1}})
		require.NoError(t, err)

		// Then: every other field borders exactly one mine
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				if x == 1 && y == 1 {
					continue
				}

				assert.Equal(t, 1, board.AdjacentAt(x, y), "field (%d,%d)", x, y)
			}
		}
	})

	t.Run("Clips the neighborhood at board edges", func(t *testing.T) {
		// Given: a 2x2 board with a mine in one corner
		board, err := NewBoardWithMines(2, 2, []Point{{X: 0, Y: 0}})
		require.NoError(t, err)

		// Then: the three remaining fields each border the single mine
		assert.Equal(t, 1, board.AdjacentAt(1, 0))
		assert.Equal(t, 1, board.AdjacentAt(0, 1))
		assert.Equal(t, 1, board.AdjacentAt(1, 1))
	})

	t.Run("Rejects an out-of-bounds mine", func(t *testing.T) {
		_, err := NewBoardWithMines(3, 3, []Point{{X: 3, Y: 0}})

		assert.ErrorIs(t, err, ErrInvalidMinePosition)
	})

	t.Run("Rejects a duplicate mine", func(t *testing.T) {
		_, err := NewBoardWithMines(3, 3, []Point{{X: 1, Y: 1}, {X: 1, Y: 1}})

		assert.ErrorIs(t, err, ErrInvalidMinePosition)
	})
}

func TestBoard_Uncover(t *testing.T) {
	t.Run("Returns the adjacent mine count and uncovers the field", func(t *testing.T) {
		// Given: a 3x3 board with one mine in the center
		board, err := NewBoardWithMines(3, 3, []Point{{X: 1, Y: 1}})
		require.NoError(t, err)

		// When: uncovering a corner field
		count, err := board.Uncover(0, 0)

		// Then: the count is returned and the state transitions
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, FieldUncovered, board.StateAt(0, 0))
	})

	t.Run("Uncovered is terminal", func(t *testing.T) {
		// Given: an uncovered field
		board, err := NewBoardWithMines(3, 3, []Point{{X: 1, Y: 1}})
		require.NoError(t, err)

		_, err = board.Uncover(0, 0)
		require.NoError(t, err)

		// When: uncovering or tagging it again
		_, uncoverErr := board.Uncover(0, 0)
		_, tagErr := board.SwitchTagging(0, 0)

		// Then: both fail with ErrAlreadyUncovered and the state stays
		assert.ErrorIs(t, uncoverErr, apperror.ErrAlreadyUncovered)
		assert.ErrorIs(t, tagErr, apperror.ErrAlreadyUncovered)
		assert.Equal(t, FieldUncovered, board.StateAt(0, 0))
	})

	t.Run("Tagged fields are protected from uncovering", func(t *testing.T) {
		// Given: a field tagged as mine
		board, err := NewBoardWithMines(3, 3, []Point{{X: 1, Y: 1}})
		require.NoError(t, err)

		_, err = board.SwitchTagging(0, 0)
		require.NoError(t, err)

		// When: trying to uncover it
		_, err = board.Uncover(0, 0)

		// Then: an ErrFieldTagged error should be returned and the state stays
		assert.ErrorIs(t, err, apperror.ErrFieldTagged)
		assert.Equal(t, FieldMineTagged, board.StateAt(0, 0))

		// And: the same holds for the possible-mine state
		_, err = board.SwitchTagging(0, 0)
		require.NoError(t, err)

		_, err = board.Uncover(0, 0)
		assert.ErrorIs(t, err, apperror.ErrFieldTagged)
		assert.Equal(t, FieldMinePossible, board.StateAt(0, 0))
	})

	t.Run("Hitting a mine fails but still uncovers the field", func(t *testing.T) {
		// Given: a board with a known mine
		board, err := NewBoardWithMines(3, 3, []Point{{X: 1, Y: 1}})
		require.NoError(t, err)

		// When: uncovering the mine
		_, err = board.Uncover(1, 1)

		// Then: ErrMineFound is returned and the field reads as uncovered
		assert.ErrorIs(t, err, apperror.ErrMineFound)
		assert.Equal(t, FieldUncovered, board.StateAt(1, 1))
	})

	t.Run("Rejects out-of-bounds coordinates", func(t *testing.T) {
		board, err := NewBoardWithMines(3, 3, nil)
		require.NoError(t, err)

		_, err = board.Uncover(3, 0)
		assert.ErrorIs(t, err, apperror.ErrOutOfBounds)

		_, err = board.Uncover(0, -1)
		assert.ErrorIs(t, err, apperror.ErrOutOfBounds)
	})
}

func TestBoard_SwitchTagging(t *testing.T) {
	t.Run("Cycles through the three tagging states", func(t *testing.T) {
		// Given: a covered field
		board, err := NewBoardWithMines(3, 3, nil)
		require.NoError(t, err)

		// When/Then: three calls walk the full ring back to covered
		state, err := board.SwitchTagging(2, 2)
		require.NoError(t, err)
		assert.Equal(t, FieldMineTagged, state)

		state, err = board.SwitchTagging(2, 2)
		require.NoError(t, err)
		assert.Equal(t, FieldMinePossible, state)

		state, err = board.SwitchTagging(2, 2)
		require.NoError(t, err)
		assert.Equal(t, FieldCovered, state)
	})

	t.Run("Rejects out-of-bounds coordinates", func(t *testing.T) {
		board, err := NewBoardWithMines(3, 3, nil)
		require.NoError(t, err)

		_, err = board.SwitchTagging(-1, 0)
		assert.ErrorIs(t, err, apperror.ErrOutOfBounds)
	})
}
