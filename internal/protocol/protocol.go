// Package protocol is the wire codec for the newline-terminated text
// protocol: it parses inbound client commands and formats the outbound
// event lines the table broadcasts. Framing (reading and writing whole
// lines) belongs to the gateway; everything here is plain strings.
package protocol

import (
	"fmt"
	"strings"

	"blackjack-lite/blackjack"
	"blackjack-lite/card"
)

// Command is a parsed inbound client line.
type Command byte

const (
	CmdUnknown Command = iota
	CmdHit
	CmdStand
	CmdPing
	CmdQuit
)

// ParseCommand matches a client line case-insensitively. Anything
// unrecognized maps to CmdUnknown and is silently ignored upstream.
func ParseCommand(line string) Command {
	switch strings.ToUpper(strings.TrimSpace(line)) {
	case "HIT":
		return CmdHit
	case "STAND":
		return CmdStand
	case "PING":
		return CmdPing
	case "QUIT":
		return CmdQuit
	default:
		return CmdUnknown
	}
}

// --- Outbound event lines ---

func JoinLine(name string) string     { return "EVENT: JOIN " + name }
func JoinWaitLine(name string) string { return "EVENT: JOIN_WAIT " + name }
func LeaveLine(name string) string    { return "EVENT: LEAVE " + name }

func CountdownLine(seconds int) string { return fmt.Sprintf("GAME_COUNTDOWN %d", seconds) }

func GameStartLine() string  { return "GAME_START" }
func RoundStartLine() string { return "ROUND_START" }
func RoundEndLine() string   { return "ROUND_END" }

func PlayerStateLine(name string, hand []card.Card) string {
	return fmt.Sprintf("STATE: PLAYER %s | %s | VALUE=%d", name, FormatCards(hand), blackjack.Total(hand))
}

// DealerHiddenLine shows only the dealer's upcard.
func DealerHiddenLine(upcard card.Card) string {
	return "STATE: DEALER HIDDEN | " + upcard.String()
}

func DealerRevealLine(hand []card.Card) string {
	return fmt.Sprintf("STATE: DEALER Dealer | %s | VALUE=%d", FormatCards(hand), blackjack.Total(hand))
}

func TurnLine(name string) string { return "TURN: " + name }

func HitLine(name string, c card.Card) string { return fmt.Sprintf("ACTION: HIT %s %s", name, c) }
func StandLine(name string) string            { return "ACTION: STAND " + name }
func BustLine(name string) string             { return "ACTION: BUST " + name }
func BlackjackLine(name string) string        { return "ACTION: BLACKJACK " + name }
func DealerHitLine(c card.Card) string        { return "ACTION: DEALER_HIT " + c.String() }

func ResultLine(name string, o blackjack.Outcome) string {
	return fmt.Sprintf("RESULT: %s %s", name, o)
}

// SummaryLine joins each bucket with commas, "-" when empty.
func SummaryLine(winners, pushes, losers []string) string {
	return fmt.Sprintf("RESULT_SUMMARY: WINNERS=%s PUSHES=%s LOSERS=%s",
		csvOrDash(winners), csvOrDash(pushes), csvOrDash(losers))
}

func PongLine() string { return "PING" }

func FormatCards(cards []card.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

func csvOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}
