package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

type mockGameUseCase struct {
	mock.Mock
}

func (that *mockGameUseCase) NewGame(ctx context.Context, computer entity.Marker) (*entity.Game, error) {
	args := that.Called(ctx, computer)

	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)

	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	args := that.Called(ctx, id, cell)

	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) Hint(ctx context.Context, id string) (int, error) {
	args := that.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type response struct {
	Action  string          `json:"action"`
	Payload ResponsePayload `json:"payload"`
}

func newTestServer(t *testing.T) (*mockGameUseCase, string) {
	t.Helper()

	useCase := &mockGameUseCase{}
	t.Cleanup(func() { useCase.AssertExpectations(t) })

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	srv := httptest.NewServer(New(logger, useCase, o).Handler())
	t.Cleanup(srv.Close)

	return useCase, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = resp.Body.Close()
		_ = conn.Close()
	})

	return conn
}

func send(t *testing.T, conn *websocket.Conn, action, payload string) {
	t.Helper()

	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: json.RawMessage(payload)}))
}

func receive(t *testing.T, conn *websocket.Conn) response {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var resp response
	require.NoError(t, conn.ReadJSON(&resp))

	return resp
}

func TestServer_NewGame(t *testing.T) {
	t.Run("Uses the configured computer", func(t *testing.T) {
		// Given: a use case that creates a game against O
		useCase, url := newTestServer(t)
		useCase.On("NewGame", mock.Anything, o).Return(entity.NewGame("g1", o), nil).Once()
		conn := dial(t, url)

		// When: game:new is sent without a payload
		require.NoError(t, conn.WriteJSON(Message{Action: actionGameNew}))

		// Then: the new game is sent back under the same action
		resp := receive(t, conn)
		assert.Equal(t, actionGameNew, resp.Action)
		require.NotNil(t, resp.Payload.Game)
		assert.Equal(t, "g1", resp.Payload.Game.ID)
		assert.Empty(t, resp.Payload.Error)
	})

	t.Run("Invalid marker", func(t *testing.T) {
		useCase, url := newTestServer(t)
		useCase.On("NewGame", mock.Anything, entity.Marker("Z")).Return(nil, apperror.ErrInvalidMarker).Once()
		conn := dial(t, url)

		send(t, conn, actionGameNew, `{"computer":"Z"}`)

		resp := receive(t, conn)
		assert.Equal(t, actionGameNew, resp.Action)
		assert.Equal(t, apperror.ErrInvalidMarker.Error(), resp.Payload.Error)
		assert.Nil(t, resp.Payload.Game)
	})
}

func TestServer_GameState(t *testing.T) {
	t.Run("Sends the current game", func(t *testing.T) {
		useCase, url := newTestServer(t)
		useCase.On("GetGame", mock.Anything, "g1").Return(entity.NewGame("g1", o), nil).Once()
		conn := dial(t, url)

		send(t, conn, actionGameState, `{"game_id":"g1"}`)

		resp := receive(t, conn)
		require.NotNil(t, resp.Payload.Game)
		assert.Equal(t, entity.StatePlaying, resp.Payload.Game.State)
	})

	t.Run("Unknown game", func(t *testing.T) {
		useCase, url := newTestServer(t)
		useCase.On("GetGame", mock.Anything, "missing").
			Return(nil, fmt.Errorf("failed to get game: %w", apperror.ErrGameNotFound)).Once()
		conn := dial(t, url)

		send(t, conn, actionGameState, `{"game_id":"missing"}`)

		resp := receive(t, conn)
		assert.Contains(t, resp.Payload.Error, apperror.ErrGameNotFound.Error())
	})

	t.Run("Missing game id", func(t *testing.T) {
		_, url := newTestServer(t)
		conn := dial(t, url)

		send(t, conn, actionGameState, `{}`)

		assert.Equal(t, "game_id is required", receive(t, conn).Payload.Error)
	})
}

func TestServer_GameTurn(t *testing.T) {
	t.Run("Broadcasts the turn to every watcher", func(t *testing.T) {
		// Given: one connection watching g1 and another about to play in it
		useCase, url := newTestServer(t)
		played := entity.NewGame("g1", o)
		played.Board = entity.Board{x, e, e, e, o, e, e, e, e}
		useCase.On("GetGame", mock.Anything, "g1").Return(entity.NewGame("g1", o), nil).Once()
		useCase.On("MakeTurn", mock.Anything, "g1", 0).Return(played, nil).Once()

		watcher := dial(t, url)
		send(t, watcher, actionGameState, `{"game_id":"g1"}`)
		receive(t, watcher)

		player := dial(t, url)

		// When: the player makes a turn
		send(t, player, actionGameTurn, `{"game_id":"g1","cell":0}`)

		// Then: both connections receive the updated board
		for _, conn := range []*websocket.Conn{player, watcher} {
			resp := receive(t, conn)
			assert.Equal(t, actionGameTurn, resp.Action)
			require.NotNil(t, resp.Payload.Game)
			assert.Equal(t, played.Board, resp.Payload.Game.Board)
		}
	})

	t.Run("Rejected turn is reported only to the sender", func(t *testing.T) {
		useCase, url := newTestServer(t)
		game := entity.NewGame("g1", o)
		game.Board = entity.Board{x, e, e, e, o, e, e, e, e}
		useCase.On("MakeTurn", mock.Anything, "g1", 4).
			Return(game, fmt.Errorf("failed make turn: %w", apperror.ErrCellOccupied)).Once()
		conn := dial(t, url)

		send(t, conn, actionGameTurn, `{"game_id":"g1","cell":4}`)

		resp := receive(t, conn)
		assert.Contains(t, resp.Payload.Error, apperror.ErrCellOccupied.Error())
		require.NotNil(t, resp.Payload.Game)
		assert.Equal(t, game.Board, resp.Payload.Game.Board)
	})

	t.Run("Missing cell", func(t *testing.T) {
		_, url := newTestServer(t)
		conn := dial(t, url)

		send(t, conn, actionGameTurn, `{"game_id":"g1"}`)

		assert.Equal(t, "cell is required", receive(t, conn).Payload.Error)
	})
}

func TestServer_GameHint(t *testing.T) {
	useCase, url := newTestServer(t)
	useCase.On("Hint", mock.Anything, "g1").Return(3, nil).Once()
	conn := dial(t, url)

	send(t, conn, actionGameHint, `{"game_id":"g1"}`)

	resp := receive(t, conn)
	assert.Equal(t, actionGameHint, resp.Action)
	assert.Equal(t, 3, resp.Payload.Hint)
}

func TestServer_BadMessages(t *testing.T) {
	t.Run("Unknown action", func(t *testing.T) {
		_, url := newTestServer(t)
		conn := dial(t, url)

		send(t, conn, "game:leave", `{}`)

		resp := receive(t, conn)
		assert.Equal(t, "game:leave", resp.Action)
		assert.Equal(t, "unknown action", resp.Payload.Error)
	})

	t.Run("Malformed message keeps the connection open", func(t *testing.T) {
		useCase, url := newTestServer(t)
		useCase.On("Hint", mock.Anything, "g1").Return(1, nil).Once()
		conn := dial(t, url)

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"action":`)))
		assert.Equal(t, "malformed message", receive(t, conn).Payload.Error)

		send(t, conn, actionGameHint, `{"game_id":"g1"}`)
		assert.Equal(t, 1, receive(t, conn).Payload.Hint)
	})
}

func TestServer_Watch(t *testing.T) {
	server := New(slog.New(slog.NewJSONHandler(io.Discard, nil)), &mockGameUseCase{}, o)
	c := &client{}

	// When: a connection watches one game and then another
	server.watch(c, "g1")
	server.watch(c, "g2")

	// Then: it only watches the last one
	assert.NotContains(t, server.watchers, "g1")
	assert.Contains(t, server.watchers["g2"], c)

	// When: it goes away
	server.unregister(c)

	// Then: nothing is left behind
	assert.Empty(t, server.watchers)
}
