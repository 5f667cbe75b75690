package entity

// Marker is the symbol occupying one board cell.
type Marker string

const (
	EmptyCell Marker = ""
	PlayerX   Marker = "X"
	PlayerO   Marker = "O"
)

// BoardSize is the number of cells on a 3x3 board.
const BoardSize = 9

// Board holds cells in row-major order: index = row*3+col.
type Board [BoardSize]Marker

// Opponent - returns the other player's marker. Blank stays blank.
func (that Marker) Opponent() Marker {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// IsValid - reports whether the marker is one of blank, X or O.
func (that Marker) IsValid() bool {
	return that == EmptyCell || that == PlayerX || that == PlayerO
}

// IsPlayer - reports whether the marker belongs to a side, X or O.
func (that Marker) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// BlankCount - counts the empty cells.
func (that *Board) BlankCount() int {
	count := 0
	for _, cell := range that {
		if cell == EmptyCell {
			count++
		}
	}
	return count
}
