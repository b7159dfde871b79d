package protocol

import (
	"testing"

	"blackjack-lite/blackjack"
	"blackjack-lite/card"
)

func TestParseCommandCaseInsensitive(t *testing.T) {
	cases := []struct {
		line string
		want Command
	}{
		{"HIT", CmdHit},
		{"hit", CmdHit},
		{"  Hit  ", CmdHit},
		{"STAND", CmdStand},
		{"stand", CmdStand},
		{"ping", CmdPing},
		{"QUIT", CmdQuit},
		{"", CmdUnknown},
		{"double", CmdUnknown},
		{"hit me", CmdUnknown},
	}
	for _, tc := range cases {
		if got := ParseCommand(tc.line); got != tc.want {
			t.Errorf("ParseCommand(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestEventLines(t *testing.T) {
	aceSpade := card.Make(card.Spade, 1)
	tenHeart := card.Make(card.Heart, 10)

	if got := JoinLine("alice"); got != "EVENT: JOIN alice" {
		t.Errorf("join: %q", got)
	}
	if got := JoinWaitLine("bob"); got != "EVENT: JOIN_WAIT bob" {
		t.Errorf("join wait: %q", got)
	}
	if got := CountdownLine(5); got != "GAME_COUNTDOWN 5" {
		t.Errorf("countdown: %q", got)
	}
	if got := PlayerStateLine("alice", []card.Card{aceSpade, tenHeart}); got != "STATE: PLAYER alice | A♠, 10♥ | VALUE=21" {
		t.Errorf("player state: %q", got)
	}
	if got := DealerHiddenLine(aceSpade); got != "STATE: DEALER HIDDEN | A♠" {
		t.Errorf("dealer hidden: %q", got)
	}
	if got := DealerRevealLine([]card.Card{tenHeart, aceSpade}); got != "STATE: DEALER Dealer | 10♥, A♠ | VALUE=21" {
		t.Errorf("dealer reveal: %q", got)
	}
	if got := HitLine("bob", tenHeart); got != "ACTION: HIT bob 10♥" {
		t.Errorf("hit: %q", got)
	}
	if got := ResultLine("bob", blackjack.OutcomeWin); got != "RESULT: bob WIN" {
		t.Errorf("result: %q", got)
	}
}

func TestSummaryLine(t *testing.T) {
	got := SummaryLine([]string{"alice", "bob"}, nil, []string{"carol"})
	want := "RESULT_SUMMARY: WINNERS=alice,bob PUSHES=- LOSERS=carol"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := SummaryLine(nil, nil, nil); got != "RESULT_SUMMARY: WINNERS=- PUSHES=- LOSERS=-" {
		t.Errorf("empty summary: %q", got)
	}
}
