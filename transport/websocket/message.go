package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	actionGameNew   = "game:new"
	actionGameState = "game:state"
	actionGameTurn  = "game:turn"
	actionGameHint  = "game:hint"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	GameID   string         `json:"game_id,omitempty"`
	Computer *entity.Marker `json:"computer,omitempty"`
	Cell     *int           `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.Game `json:"game,omitempty"`
	Hint  int          `json:"hint,omitempty"`
	Error string       `json:"error,omitempty"`
}

func (that *Server) sendMessage(c *client, action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	return c.writeJSON(Message{Action: action, Payload: body})
}

func (that *Server) sendErrorResponse(c *client, action, errMsg string) error {
	return that.sendMessage(c, action, ResponsePayload{Error: errMsg})
}
