package entity

import "github.com/rocketscienceinc/minesweeper-backend/internal/apperror"

// Session wraps one board for one player. Running flips to false exactly
// once, on mine detonation; starting a new game replaces the whole session.
type Session struct {
	ID      string `json:"id"`
	Board   *Board `json:"board"`
	Running bool   `json:"running"`
}

func NewSession(id string, board *Board) *Session {
	return &Session{
		ID:      id,
		Board:   board,
		Running: true,
	}
}

func (that *Session) IsRunning() bool {
	return that.Running
}

// Finish - ends the session. There is no way back, a new game needs a new session.
func (that *Session) Finish() {
	that.Running = false
}

// ConfirmRunning - returns ErrGameOver when the session has already ended.
func (that *Session) ConfirmRunning() error {
	if !that.Running {
		return apperror.ErrGameOver
	}

	return nil
}

// FieldStateAt - returns the state of the field at (x,y).
func (that *Session) FieldStateAt(x, y int) FieldState {
	return that.Board.StateAt(x, y)
}

// MinePositions - returns the coordinates of all mines on the board.
func (that *Session) MinePositions() []Point {
	return that.Board.Mines
}
