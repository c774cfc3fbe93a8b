package entity

// FieldState describes the concealment state of a single field.
type FieldState string

const (
	FieldCovered      FieldState = "covered"
	FieldUncovered    FieldState = "uncovered"
	FieldMineTagged   FieldState = "mine_tagged"
	FieldMinePossible FieldState = "mine_possible"
)

// Field is one cell of the game grid.
type Field struct {
	HasMine  bool       `json:"has_mine"`
	State    FieldState `json:"state"`
	Adjacent int        `json:"adjacent"`
}

// Point is a grid coordinate, x is the column and y is the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}
