package blackjack

import (
	"testing"

	"blackjack-lite/card"
)

func TestResolve(t *testing.T) {
	p18 := hand(card.Make(card.Spade, 10), card.Make(card.Heart, 8))
	p20 := hand(card.Make(card.Spade, 10), card.Make(card.Heart, 10))
	p19 := hand(card.Make(card.Spade, 10), card.Make(card.Heart, 9))
	p22 := hand(card.Make(card.Spade, 10), card.Make(card.Heart, 6), card.Make(card.Club, 6))
	d20 := hand(card.Make(card.Club, 10), card.Make(card.Diamond, 10))
	d19 := hand(card.Make(card.Club, 10), card.Make(card.Diamond, 9))
	d22 := hand(card.Make(card.Club, 10), card.Make(card.Diamond, 6), card.Make(card.Spade, 6))

	cases := []struct {
		name           string
		player, dealer []card.Card
		want           Outcome
	}{
		{"player 18 vs dealer 20", p18, d20, OutcomeLose},
		{"player bust vs dealer 20", p22, d20, OutcomeLose},
		{"player bust vs dealer bust", p22, d22, OutcomeLose},
		{"player 20 vs dealer bust", p20, d22, OutcomeWin},
		{"push 19 vs 19", p19, d19, OutcomePush},
		{"player 20 vs dealer 19", p20, d19, OutcomeWin},
	}
	for _, tc := range cases {
		if got := Resolve(tc.player, tc.dealer); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeWin.String() != "WIN" || OutcomeLose.String() != "LOSE" || OutcomePush.String() != "PUSH" {
		t.Fatalf("unexpected outcome strings: %v %v %v", OutcomeWin, OutcomeLose, OutcomePush)
	}
}
