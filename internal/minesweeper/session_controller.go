package minesweeper

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
)

// RevealedField is one field uncovered by a reveal, with its adjacent mine count.
type RevealedField struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Count int `json:"count"`
}

// MineReport classifies one mine after a loss: found when the player had
// tagged it as a mine, missed otherwise.
type MineReport struct {
	X     int  `json:"x"`
	Y     int  `json:"y"`
	Found bool `json:"found"`
}

// Reveal - uncovers the field at (x,y) and, for fields with no bordering
// mines, flood-fills the surrounding zero-adjacency region together with its
// numbered border. Returns every field uncovered by the call.
//
// The flood fill runs over an explicit worklist instead of recursing, so the
// depth is bounded on large boards. Only covered neighbors are enqueued,
// which makes the final revealed set independent of traversal order: a field
// moves from covered to uncovered at most once.
//
// On a mine hit the session is finished and ErrMineFound is returned.
func Reveal(session *entity.Session, x, y int) ([]RevealedField, error) {
	if err := session.ConfirmRunning(); err != nil {
		return nil, err
	}

	board := session.Board

	count, err := board.Uncover(x, y)
	if errors.Is(err, apperror.ErrMineFound) {
		session.Finish()
		return nil, err
	}

	if err != nil {
		return nil, fmt.Errorf("failed to uncover field: %w", err)
	}

	revealed := []RevealedField{{X: x, Y: y, Count: count}}
	if count > 0 {
		return revealed, nil
	}

	worklist := []entity.Point{{X: x, Y: y}}
	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for _, neighbor := range board.Neighbors(current.X, current.Y) {
			if board.StateAt(neighbor.X, neighbor.Y) != entity.FieldCovered {
				continue
			}

			// A neighbor of a zero-count field is never a mine.
			n, err := board.Uncover(neighbor.X, neighbor.Y)
			if err != nil {
				return nil, fmt.Errorf("failed to uncover neighbor (%d,%d): %w", neighbor.X, neighbor.Y, err)
			}

			revealed = append(revealed, RevealedField{X: neighbor.X, Y: neighbor.Y, Count: n})

			if n == 0 {
				worklist = append(worklist, neighbor)
			}
		}
	}

	return revealed, nil
}

// Tag - advances the tagging state of the field at (x,y).
func Tag(session *entity.Session, x, y int) (entity.FieldState, error) {
	if err := session.ConfirmRunning(); err != nil {
		return "", err
	}

	state, err := session.Board.SwitchTagging(x, y)
	if err != nil {
		return state, fmt.Errorf("failed to switch tagging: %w", err)
	}

	return state, nil
}

// SweepMines - classifies every mine on the board as found or missed.
// A mine counts as found only when its field is still tagged as a mine;
// the detonated field and possible-mine tags count as missed.
func SweepMines(session *entity.Session) []MineReport {
	board := session.Board

	reports := make([]MineReport, 0, len(board.Mines))
	for _, mine := range board.Mines {
		reports = append(reports, MineReport{
			X:     mine.X,
			Y:     mine.Y,
			Found: board.StateAt(mine.X, mine.Y) == entity.FieldMineTagged,
		})
	}

	return reports
}
