package blackjack

import "blackjack-lite/card"

// Dealer is the house hand plus its fixed draw rule.
type Dealer struct {
	Hand              []card.Card
	HitsSoftSeventeen bool
}

func NewDealer(hitsSoftSeventeen bool) *Dealer {
	return &Dealer{HitsSoftSeventeen: hitsSoftSeventeen}
}

func (d *Dealer) AddCard(c card.Card) {
	d.Hand = append(d.Hand, c)
}

func (d *Dealer) ClearHand() {
	d.Hand = nil
}

// ShouldHit applies the stand-on-17 rule: hit under 17, and on an exact
// soft 17 only when configured to.
func (d *Dealer) ShouldHit() bool {
	total := Total(d.Hand)
	if total < 17 {
		return true
	}
	return total == 17 && d.HitsSoftSeventeen && IsSoft(d.Hand)
}

// PlayOut draws until the dealer stands. The dealer is first topped up
// to two cards in case the deal was cut short. onDraw, if non-nil, is
// invoked once per drawn card.
func (d *Dealer) PlayOut(deck *card.Deck, onDraw func(card.Card)) {
	for len(d.Hand) < 2 {
		c := deck.Deal()
		d.AddCard(c)
		if onDraw != nil {
			onDraw(c)
		}
	}
	for d.ShouldHit() {
		c := deck.Deal()
		d.AddCard(c)
		if onDraw != nil {
			onDraw(c)
		}
	}
}
