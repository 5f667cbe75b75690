package tictactoe

import "github.com/rocketscienceinc/tictactoe-minimax/internal/entity"

const (
	// INF is the score of a won position. It is larger than any search depth.
	INF = 100

	// NotTerminal is returned by EvaluatePosition while the game is still playing.
	// It only means "keep searching" and is never a comparable score.
	NotTerminal = -1
)

// EvaluatePosition - scores a finished board from perspective's point of view,
// or returns NotTerminal.
func EvaluatePosition(board entity.Board, perspective entity.Player) int {
	score, terminal := leafScore(board, perspective)
	if !terminal {
		return NotTerminal
	}

	return score
}

func leafScore(board entity.Board, perspective entity.Player) (int, bool) {
	switch state := CheckState(board); state {
	case entity.StatePlaying:
		return 0, false
	case entity.StateDraw:
		return 0, true
	case entity.WinState(perspective.Symbol):
		return INF, true
	default:
		return -INF, true
	}
}

// MaxMove - value of the board when perspective is about to move.
func MaxMove(board entity.Board, perspective entity.Player) int {
	if score, terminal := leafScore(board, perspective); terminal {
		return score
	}

	best := -INF
	for _, move := range GenerateMoves(board, make([]int, 0, entity.BoardSize)) {
		child := board
		child[move] = perspective.Symbol

		if score := MinMove(child, perspective); score > best {
			best = score
		}
	}

	return best
}

// MinMove - value of the board, from perspective's point of view, when the
// opponent is about to move.
func MinMove(board entity.Board, perspective entity.Player) int {
	if score, terminal := leafScore(board, perspective); terminal {
		return score
	}

	opponent := perspective.Opponent()

	best := INF
	for _, move := range GenerateMoves(board, make([]int, 0, entity.BoardSize)) {
		child := board
		child[move] = opponent.Symbol

		if score := MaxMove(child, perspective); score < best {
			best = score
		}
	}

	return best
}

// MiniMax - picks perspective's best move and returns it as a 1-based cell
// designator. Ties go to the lowest index. Returns 0 if the board has no blank
// cell; callers check the game is still playing first.
func MiniMax(board entity.Board, perspective entity.Player) int {
	bestMove := -1
	bestScore := 0

	for _, move := range GenerateMoves(board, make([]int, 0, entity.BoardSize)) {
		child := board
		child[move] = perspective.Symbol

		score := MinMove(child, perspective)
		if bestMove < 0 || score > bestScore {
			bestMove, bestScore = move, score
		}
	}

	return bestMove + 1
}
