package tictactoe

import "github.com/rocketscienceinc/tictactoe-minimax/internal/entity"

// WinCombos lists the three rows, three columns and two diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// CheckState - classifies the board. A completed line wins even on a full board.
func CheckState(board entity.Board) entity.State {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.WinState(a)
		}
	}

	for _, cell := range board {
		if cell == entity.EmptyCell {
			return entity.StatePlaying
		}
	}

	return entity.StateDraw
}

// GenerateMoves - appends every blank index to moves in ascending order.
func GenerateMoves(board entity.Board, moves []int) []int {
	for i, cell := range board {
		if cell == entity.EmptyCell {
			moves = append(moves, i)
		}
	}

	return moves
}
