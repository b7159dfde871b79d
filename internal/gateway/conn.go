package gateway

import (
	"bufio"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

const (
	maxLineBytes  = 4096
	writeDeadline = 10 * time.Second
)

// lineConn abstracts a transport that carries whole protocol lines.
// Both the plain TCP listener and the WebSocket endpoint speak the same
// protocol through this interface.
type lineConn interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
	RemoteAddr() string
}

type tcpConn struct {
	conn    net.Conn
	scanner *bufio.Scanner
}

func newTCPConn(conn net.Conn) *tcpConn {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, maxLineBytes), maxLineBytes)
	return &tcpConn{conn: conn, scanner: scanner}
}

func (c *tcpConn) ReadLine() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", net.ErrClosed
	}
	return c.scanner.Text(), nil
}

func (c *tcpConn) WriteLine(line string) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	_, err := c.conn.Write([]byte(line + "\n"))
	return err
}

func (c *tcpConn) Close() error { return c.conn.Close() }

func (c *tcpConn) RemoteAddr() string { return c.conn.RemoteAddr().String() }

type wsConn struct {
	conn *websocket.Conn
}

func newWSConn(conn *websocket.Conn) *wsConn {
	conn.SetReadLimit(maxLineBytes)
	return &wsConn{conn: conn}
}

func (c *wsConn) ReadLine() (string, error) {
	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if messageType == websocket.TextMessage {
			return string(message), nil
		}
	}
}

func (c *wsConn) WriteLine(line string) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return c.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (c *wsConn) Close() error { return c.conn.Close() }

func (c *wsConn) RemoteAddr() string { return c.conn.RemoteAddr().String() }
