package blackjack

import (
	"testing"

	"blackjack-lite/card"
)

func TestDealerPlayOutReachesAtLeast17(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		deck := card.NewSeeded(seed)
		d := NewDealer(false)
		d.PlayOut(deck, nil)
		if total := Total(d.Hand); total < 17 {
			t.Fatalf("seed %d: dealer stopped at %d (%v)", seed, total, d.Hand)
		}
	}
}

func TestDealerStandsOnSoft17WhenConfiguredOff(t *testing.T) {
	d := NewDealer(false)
	d.AddCard(card.Make(card.Spade, 1))
	d.AddCard(card.Make(card.Heart, 6))
	if d.ShouldHit() {
		t.Fatalf("dealer must stand on soft 17 with the rule off")
	}
}

func TestDealerHitsSoft17WhenConfiguredOn(t *testing.T) {
	d := NewDealer(true)
	d.AddCard(card.Make(card.Spade, 1))
	d.AddCard(card.Make(card.Heart, 6))
	if !d.ShouldHit() {
		t.Fatalf("dealer must hit soft 17 with the rule on")
	}
	// Hard 17 stands either way.
	d.Hand = []card.Card{card.Make(card.Spade, 10), card.Make(card.Heart, 7)}
	if d.ShouldHit() {
		t.Fatalf("dealer must stand on hard 17")
	}
}

func TestDealerPlayOutTopsUpShortHand(t *testing.T) {
	deck := card.NewStacked(
		card.Make(card.Spade, 10),
		card.Make(card.Heart, 9),
	)
	d := NewDealer(false)
	d.AddCard(card.Make(card.Club, 10))

	var drawn []card.Card
	d.PlayOut(deck, func(c card.Card) { drawn = append(drawn, c) })

	if len(d.Hand) < 2 {
		t.Fatalf("dealer ended with fewer than two cards: %v", d.Hand)
	}
	if len(drawn) != 1 {
		t.Fatalf("expected exactly one draw (10+10 stands), got %v", drawn)
	}
	if total := Total(d.Hand); total != 20 {
		t.Fatalf("got total %d, want 20", total)
	}
}

func TestDealerPlayOutDrawSequence(t *testing.T) {
	// 5+9 = 14, draws 2 -> 16, draws 5 -> 21, stands.
	deck := card.NewStacked(
		card.Make(card.Spade, 2),
		card.Make(card.Heart, 5),
	)
	d := NewDealer(false)
	d.AddCard(card.Make(card.Club, 5))
	d.AddCard(card.Make(card.Diamond, 9))

	var drawn []card.Card
	d.PlayOut(deck, func(c card.Card) { drawn = append(drawn, c) })

	if len(drawn) != 2 {
		t.Fatalf("expected 2 draws, got %d (%v)", len(drawn), drawn)
	}
	if total := Total(d.Hand); total != 21 {
		t.Fatalf("got total %d, want 21", total)
	}
}
