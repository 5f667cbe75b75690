package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

// State is the classification of a board.
type State string

const (
	StatePlaying State = "playing"
	StateXWin    State = "x_win"
	StateOWin    State = "o_win"
	StateDraw    State = "draw"
)

var ErrUnknownGameState = errors.New("unknown game state")

// IsTerminal - reports whether no further moves are accepted in this state.
func (that State) IsTerminal() bool {
	return that == StateXWin || that == StateOWin || that == StateDraw
}

// WinState - returns the win state for the given marker.
func WinState(marker Marker) State {
	if marker == PlayerX {
		return StateXWin
	}
	return StateOWin
}

type Game struct {
	ID       string `json:"id"`
	Player1  Player `json:"player1"`
	Player2  Player `json:"player2"`
	Board    Board  `json:"board"`
	Symbol   Marker `json:"symbol"`
	State    State  `json:"state"`
	Turn     Marker `json:"turn"`
	Computer Marker `json:"computer,omitempty"`
}

// NewGame - creates a match with a blank board. computer is the marker played by
// the engine, EmptyCell for a match between two humans.
func NewGame(id string, computer Marker) *Game {
	return &Game{
		ID:       id,
		Player1:  NewPlayer(PlayerX),
		Player2:  NewPlayer(PlayerO),
		Board:    Board{},
		State:    StatePlaying,
		Turn:     PlayerX,
		Computer: computer,
	}
}

func (that *Game) IsFinished() bool {
	return that.State.IsTerminal()
}

func (that *Game) IsPlaying() bool {
	return that.State == StatePlaying
}

// IsComputerTurn - reports whether the engine is to move in a live game.
func (that *Game) IsComputerTurn() bool {
	return that.IsPlaying() && that.Computer != EmptyCell && that.Turn == that.Computer
}

// ComputerPlayer - returns the player the engine moves for.
func (that *Game) ComputerPlayer() (Player, bool) {
	switch that.Computer {
	case that.Player1.Symbol:
		return that.Player1, true
	case that.Player2.Symbol:
		return that.Player2, true
	default:
		return Player{}, false
	}
}

// Winner - returns the winning marker, or EmptyCell for a draw or a live game.
func (that *Game) Winner() Marker {
	switch that.State {
	case StateXWin:
		return PlayerX
	case StateOWin:
		return PlayerO
	default:
		return EmptyCell
	}
}

// ConfirmPlaying - returns an error unless moves may still be applied.
func (that *Game) ConfirmPlaying() error {
	switch {
	case that.IsPlaying():
		return nil
	case that.IsFinished():
		return apperror.ErrGameFinished
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameState, that.State)
	}
}
