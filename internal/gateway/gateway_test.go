package gateway

import (
	"bufio"
	"net"
	"sync"
	"testing"
	"time"

	"blackjack-lite/internal/lobby"
	"blackjack-lite/internal/table"
)

// testClient is the far end of an in-memory pipe speaking the line
// protocol, with a collector goroutine standing in for a terminal.
type testClient struct {
	conn  net.Conn
	mu    sync.Mutex
	lines []string
}

func newTestGateway() (*Gateway, *lobby.Lobby) {
	lby := lobby.New(table.TableConfig{
		MaxSeats:         6,
		CountdownSeconds: 600,
		CountdownTick:    time.Second,
	}, nil)
	return New(lby), lby
}

func dial(g *Gateway) *testClient {
	server, client := net.Pipe()
	go g.handle(newTCPConn(server))
	tc := &testClient{conn: client}
	go tc.readLoop()
	return tc
}

func (tc *testClient) readLoop() {
	sc := bufio.NewScanner(tc.conn)
	for sc.Scan() {
		tc.mu.Lock()
		tc.lines = append(tc.lines, sc.Text())
		tc.mu.Unlock()
	}
}

func (tc *testClient) send(t *testing.T, line string) {
	t.Helper()
	tc.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	if _, err := tc.conn.Write([]byte(line + "\n")); err != nil {
		t.Fatalf("send %q: %v", line, err)
	}
}

func (tc *testClient) snapshot() []string {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return append([]string(nil), tc.lines...)
}

func (tc *testClient) has(line string) bool {
	for _, l := range tc.snapshot() {
		if l == line {
			return true
		}
	}
	return false
}

func (tc *testClient) waitFor(t *testing.T, line string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !tc.has(line) {
		if time.Now().After(deadline) {
			t.Fatalf("never received %q, got:\n%v", line, tc.snapshot())
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestJoinAndBroadcastOverPipe(t *testing.T) {
	gw, lby := newTestGateway()
	defer lby.Shutdown()

	alice := dial(gw)
	defer alice.conn.Close()
	alice.send(t, "alice")
	alice.waitFor(t, "EVENT: JOIN alice")
	alice.waitFor(t, "GAME_COUNTDOWN 600")

	bob := dial(gw)
	defer bob.conn.Close()
	bob.send(t, "bob")
	alice.waitFor(t, "EVENT: JOIN bob")
	bob.waitFor(t, "EVENT: JOIN bob")
}

func TestPingEchoedToRequesterOnly(t *testing.T) {
	gw, lby := newTestGateway()
	defer lby.Shutdown()

	alice := dial(gw)
	defer alice.conn.Close()
	alice.send(t, "alice")
	bob := dial(gw)
	defer bob.conn.Close()
	bob.send(t, "bob")
	alice.waitFor(t, "EVENT: JOIN bob")

	bob.send(t, "ping")
	bob.waitFor(t, "PING")
	if alice.has("PING") {
		t.Fatalf("ping reply was broadcast: %v", alice.snapshot())
	}
}

func TestUnknownCommandKeepsConnectionAlive(t *testing.T) {
	gw, lby := newTestGateway()
	defer lby.Shutdown()

	alice := dial(gw)
	defer alice.conn.Close()
	alice.send(t, "alice")
	alice.waitFor(t, "EVENT: JOIN alice")

	alice.send(t, "fold")
	alice.send(t, "double down")
	alice.send(t, "ping")
	alice.waitFor(t, "PING")
}

func TestQuitLeavesTable(t *testing.T) {
	gw, lby := newTestGateway()
	defer lby.Shutdown()

	alice := dial(gw)
	defer alice.conn.Close()
	alice.send(t, "alice")
	bob := dial(gw)
	defer bob.conn.Close()
	bob.send(t, "bob")
	bob.waitFor(t, "EVENT: JOIN bob")

	alice.send(t, "quit")
	bob.waitFor(t, "EVENT: LEAVE alice")
}
