// Package gateway accepts client connections, frames the text protocol
// into whole lines, and relays commands to the table session. One
// goroutine reads each connection; a second drains its send queue, so a
// slow client never holds up a table broadcast.
package gateway

import (
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"blackjack-lite/internal/lobby"
	"blackjack-lite/internal/protocol"
	"blackjack-lite/internal/table"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: Restrict in production
	},
}

// Connection is one connected client.
type Connection struct {
	ID       string
	PlayerID uint64
	conn     lineConn
	send     chan string
	done     chan struct{}
	doneOnce sync.Once
	gateway  *Gateway
	table    *table.Table
}

// Gateway manages client connections across transports.
type Gateway struct {
	mu           sync.RWMutex
	players      map[uint64]*Connection
	nextPlayerID uint64
	lobby        *lobby.Lobby
}

func New(lby *lobby.Lobby) *Gateway {
	return &Gateway{
		players: make(map[uint64]*Connection),
		lobby:   lby,
	}
}

// Serve accepts TCP clients until the listener closes.
func (g *Gateway) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go g.handle(newTCPConn(conn))
	}
}

// HandleWebSocket upgrades an HTTP request and runs the same line
// protocol over WebSocket text messages.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Gateway] Upgrade error: %v", err)
		return
	}
	go g.handle(newWSConn(conn))
}

func (g *Gateway) handle(lc lineConn) {
	g.mu.Lock()
	g.nextPlayerID++
	c := &Connection{
		ID:       uuid.NewString(),
		PlayerID: g.nextPlayerID,
		conn:     lc,
		send:     make(chan string, 256),
		done:     make(chan struct{}),
		gateway:  g,
	}
	g.players[c.PlayerID] = c
	g.mu.Unlock()

	log.Printf("[Gateway] Client connected: %s (player=%d) from %s", c.ID, c.PlayerID, lc.RemoteAddr())

	go c.writePump()
	c.readPump()
}

// readPump drives the connection: the first line names the player, the
// rest are commands. Returning triggers full cleanup.
func (c *Connection) readPump() {
	defer c.teardown()

	name, err := c.conn.ReadLine()
	if err != nil {
		return
	}

	t := c.gateway.lobby.QuickStart(c.PlayerID, c.gateway.sendToPlayer)
	err = t.SubmitEvent(table.Event{
		Type:     table.EventJoin,
		PlayerID: c.PlayerID,
		Name:     name,
	})
	if err != nil {
		log.Printf("[Gateway] Join refused for player %d: %v", c.PlayerID, err)
		c.enqueue("Table is full, try again later.")
		return
	}
	c.table = t

	for {
		line, err := c.conn.ReadLine()
		if err != nil {
			return
		}
		switch protocol.ParseCommand(line) {
		case protocol.CmdHit:
			_ = t.SubmitEvent(table.Event{Type: table.EventAction, PlayerID: c.PlayerID, Action: table.ActionHit})
		case protocol.CmdStand:
			_ = t.SubmitEvent(table.Event{Type: table.EventAction, PlayerID: c.PlayerID, Action: table.ActionStand})
		case protocol.CmdPing:
			// Echoed to the requester only, never broadcast.
			c.enqueue(protocol.PongLine())
		case protocol.CmdQuit:
			return
		default:
			// Malformed input is ignored, the connection stays up.
		}
	}
}

// teardown removes the player from the table and the registry. A read
// failure and an explicit QUIT land here identically.
func (c *Connection) teardown() {
	c.gateway.mu.Lock()
	delete(c.gateway.players, c.PlayerID)
	remaining := len(c.gateway.players)
	c.gateway.mu.Unlock()

	if c.table != nil {
		_ = c.table.SubmitEvent(table.Event{Type: table.EventLeave, PlayerID: c.PlayerID})
	}
	c.doneOnce.Do(func() { close(c.done) })
	log.Printf("[Gateway] Client disconnected: %s (player=%d), total: %d", c.ID, c.PlayerID, remaining)
}

func (c *Connection) enqueue(line string) {
	select {
	case c.send <- line:
	default:
		// Drop if the client cannot keep up; it is pruned on its
		// next failed write or read.
	}
}

func (c *Connection) writePump() {
	defer c.conn.Close()
	for {
		select {
		case line := <-c.send:
			if err := c.conn.WriteLine(line); err != nil {
				return
			}
		case <-c.done:
			// Flush whatever is already queued, then close.
			for {
				select {
				case line := <-c.send:
					if err := c.conn.WriteLine(line); err != nil {
						return
					}
				default:
					return
				}
			}
		}
	}
}

// sendToPlayer is the broadcast sink handed to tables.
func (g *Gateway) sendToPlayer(playerID uint64, line string) {
	g.mu.RLock()
	c := g.players[playerID]
	g.mu.RUnlock()

	if c != nil {
		c.enqueue(line)
	}
}
