package websocket

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// client is one upgraded connection. gorilla connections allow a single
// concurrent writer, and broadcasts write from other goroutines.
type client struct {
	conn *websocket.Conn

	writeMutex sync.Mutex
	gameID     string // guarded by Server.watchersMutex
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn}
}

func (that *client) writeJSON(v any) error {
	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.conn.WriteJSON(v); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
