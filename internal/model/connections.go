package model

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

var ErrNotAuthorized = errors.New("not authorized to join this game")

// Conn is the part of a websocket connection the game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
	// writes to one websocket must not interleave
	writeMu  sync.Mutex
	lastSent uint64
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	if playerID != g.OwnerID {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the healthy connection, reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Debugf("game %s: registered connection for player %s", g.ID, playerID)

	g.mu.Lock()
	g.publish()
	g.mu.Unlock()
	return nil
}

// UnregisterConnection drops conn if it is still the player's current one.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Debugf("game %s: unregistering connection for player %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

// broadcastState sends state to every connection unless a newer version has
// already gone out.
func (g *Game) broadcastState(state GameState, version uint64) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	if version <= g.connections.lastSent {
		return
	}
	g.connections.lastSent = version
	for playerID, conn := range active {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Warnf("game %s: failed to send state to player %s: %v", g.ID, playerID, err)
			g.UnregisterConnection(playerID, conn)
		}
	}
}

// SendError writes an error message to a single connection.
func (g *Game) SendError(conn Conn, message string) {
	payload, _ := json.Marshal(message)

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	if err := conn.WriteJSON(ws.Message{Type: ws.MessageTypeError, Payload: payload}); err != nil {
		log.Warnf("game %s: failed to send error: %v", g.ID, err)
	}
}
