package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

func (that *Server) handleNewGame(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	computer := that.computer
	if payloadReq.Computer != nil {
		computer = *payloadReq.Computer
	}

	game, err := that.gameUseCase.NewGame(ctx, computer)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	that.watch(c, game.ID)

	return that.sendMessage(c, msg.Action, ResponsePayload{Game: game})
}

// handleGameState - subscribes the connection to a game and sends its current state.
func (that *Server) handleGameState(ctx context.Context, msg *Message, c *client) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	if payloadReq.GameID == "" {
		return that.sendErrorResponse(c, msg.Action, "game_id is required")
	}

	game, err := that.gameUseCase.GetGame(ctx, payloadReq.GameID)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	that.watch(c, game.ID)

	return that.sendMessage(c, msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	if payloadReq.GameID == "" {
		return that.sendErrorResponse(c, msg.Action, "game_id is required")
	}

	if payloadReq.Cell == nil {
		return that.sendErrorResponse(c, msg.Action, "cell is required")
	}

	log = log.With("gameID", payloadReq.GameID)

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.GameID, *payloadReq.Cell)
	if err != nil {
		log.Debug("turn rejected", "error", err)

		// a rejected move still carries the unchanged game
		return that.sendMessage(c, msg.Action, ResponsePayload{Game: game, Error: err.Error()})
	}

	that.watch(c, game.ID)
	that.broadcast(msg.Action, game)

	log.Info("turn made", "state", game.State)

	return nil
}

func (that *Server) handleGameHint(ctx context.Context, msg *Message, c *client) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	if payloadReq.GameID == "" {
		return that.sendErrorResponse(c, msg.Action, "game_id is required")
	}

	designator, err := that.gameUseCase.Hint(ctx, payloadReq.GameID)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	return that.sendMessage(c, msg.Action, ResponsePayload{Hint: designator})
}

func decodePayload(msg *Message) (Payload, error) {
	var payload Payload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("invalid payload: %w", err)
	}

	return payload, nil
}

// watch - moves the connection to the watchers of gameID. A connection watches one game.
func (that *Server) watch(c *client, gameID string) {
	that.watchersMutex.Lock()
	defer that.watchersMutex.Unlock()

	that.unwatchLocked(c)

	if that.watchers[gameID] == nil {
		that.watchers[gameID] = make(map[*client]struct{})
	}

	that.watchers[gameID][c] = struct{}{}
	c.gameID = gameID
}

func (that *Server) unwatchLocked(c *client) {
	if c.gameID == "" {
		return
	}

	delete(that.watchers[c.gameID], c)
	if len(that.watchers[c.gameID]) == 0 {
		delete(that.watchers, c.gameID)
	}

	c.gameID = ""
}

// broadcast - sends the game to every connection watching it.
func (that *Server) broadcast(action string, game *entity.Game) {
	log := that.logger.With("method", "broadcast", "gameID", game.ID)

	that.watchersMutex.RLock()
	conns := make([]*client, 0, len(that.watchers[game.ID]))
	for c := range that.watchers[game.ID] {
		conns = append(conns, c)
	}
	that.watchersMutex.RUnlock()

	for _, c := range conns {
		if err := that.sendMessage(c, action, ResponsePayload{Game: game}); err != nil {
			log.Error("failed to send game update", "error", err)
		}
	}
}
