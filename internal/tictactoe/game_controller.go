package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// GameController owns the live board of one match. Rejected moves leave the
// game untouched and report why.
type GameController struct {
	game *entity.Game
}

func NewGameController(game *entity.Game) *GameController {
	return &GameController{game: game}
}

func (that *GameController) Game() *entity.Game {
	return that.game
}

// MakeTurn - places the current mover's marker at cell and reclassifies the board.
func (that *GameController) MakeTurn(cell int) error {
	if err := that.game.ConfirmPlaying(); err != nil {
		return err
	}

	if err := validateMove(that.game.Board, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.game.Board[cell] = that.game.Turn
	that.updateGameState()

	return nil
}

// ComputerTurn - asks the search for the computer's move and applies it.
// Returns the 0-based index that was played.
func (that *GameController) ComputerTurn() (int, error) {
	if err := that.game.ConfirmPlaying(); err != nil {
		return -1, err
	}

	if !that.game.IsComputerTurn() {
		return -1, apperror.ErrNotYourTurn
	}

	computer, _ := that.game.ComputerPlayer()

	designator := MiniMax(that.game.Board, computer)
	if designator == 0 {
		return -1, apperror.ErrNoAvailableMoves
	}

	cell := designator - 1
	if err := that.MakeTurn(cell); err != nil {
		return -1, fmt.Errorf("computer failed to make turn: %w", err)
	}

	return cell, nil
}

// Play - applies a human move at cell and lets the computer answer it.
func (that *GameController) Play(cell int) error {
	if that.game.IsComputerTurn() {
		return apperror.ErrNotYourTurn
	}

	if err := that.MakeTurn(cell); err != nil {
		return err
	}

	if !that.game.IsComputerTurn() {
		return nil
	}

	if _, err := that.ComputerTurn(); err != nil {
		return err
	}

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(board entity.Board, cell int) error {
	if cell < 0 || cell >= len(board) {
		return apperror.ErrInvalidCell
	}

	if board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameState - reclassifies the board after a move.
func (that *GameController) updateGameState() {
	that.game.Symbol = that.game.Turn
	that.game.State = CheckState(that.game.Board)

	if !that.game.IsFinished() {
		that.game.Turn = that.game.Turn.Opponent()
	}
}
