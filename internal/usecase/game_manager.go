package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// Analysis is the engine's view of an arbitrary board.
type Analysis struct {
	State    entity.State `json:"state"`
	Score    int          `json:"score"`
	BestMove int          `json:"best_move"`
}

type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	locks    *gameLocks
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger,

		gameRepo: gameRepo,
		locks:    newGameLocks(),
	}
}

// NewGame - starts a match against the computer playing the given marker.
// If the computer plays X it moves before the game is returned.
func (that *GameManager) NewGame(ctx context.Context, computer entity.Marker) (*entity.Game, error) {
	log := that.logger.With("method", "NewGame")

	if !computer.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMarker, computer)
	}

	game := entity.NewGame(uuid.NewString(), computer)

	if game.IsComputerTurn() {
		cell, err := tictactoe.NewGameController(game).ComputerTurn()
		if err != nil {
			return nil, fmt.Errorf("computer failed to open: %w", err)
		}

		log.Debug("computer opened", "gameID", game.ID, "cell", cell)
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	log.Info("game created", "gameID", game.ID, "computer", computer)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - applies a human move and the computer's answer, then saves the game.
// A rejected move returns the unchanged game together with the reason.
// Turns on the same game are applied one at a time.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	unlock := that.locks.lock(id)
	defer unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = tictactoe.NewGameController(game).Play(cell); err != nil {
		if isRejectedMove(err) {
			log.Debug("move rejected", "cell", cell, "error", err)
			return game, fmt.Errorf("failed make turn: %w", err)
		}

		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "state", game.State)
	}

	return game, nil
}

// Hint - returns the best designator for the side to move.
func (that *GameManager) Hint(ctx context.Context, id string) (int, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return 0, err
	}

	if err = game.ConfirmPlaying(); err != nil {
		return 0, err
	}

	return tictactoe.MiniMax(game.Board, entity.NewPlayer(game.Turn)), nil
}

// Analyze - classifies any board and scores it for perspective, assuming
// perspective is to move.
func (that *GameManager) Analyze(board entity.Board, perspective entity.Marker) (*Analysis, error) {
	if !perspective.IsPlayer() {
		return nil, fmt.Errorf("%w: perspective %q", apperror.ErrInvalidMarker, perspective)
	}

	for i, cell := range board {
		if !cell.IsValid() {
			return nil, fmt.Errorf("%w: cell %d holds %q", apperror.ErrInvalidMarker, i, cell)
		}
	}

	player := entity.NewPlayer(perspective)

	analysis := &Analysis{State: tictactoe.CheckState(board)}
	if analysis.State.IsTerminal() {
		analysis.Score = tictactoe.EvaluatePosition(board, player)
		return analysis, nil
	}

	analysis.Score = tictactoe.MaxMove(board, player)
	analysis.BestMove = tictactoe.MiniMax(board, player)

	return analysis, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	unlock := that.locks.lock(id)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func isRejectedMove(err error) bool {
	return errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrInvalidCell) ||
		errors.Is(err, apperror.ErrNotYourTurn)
}
