package apperror

import "errors"

var (
	ErrAlreadyUncovered = errors.New("field is already uncovered")
	ErrFieldTagged      = errors.New("field is tagged")
	ErrMineFound        = errors.New("mine found")
	ErrGameOver         = errors.New("game is already over")
	ErrOutOfBounds      = errors.New("coordinates are out of bounds")
	ErrNoActiveSession  = errors.New("no active session")
)
