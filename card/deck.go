package card

import (
	"math/rand"
	"time"
)

// FullDeck returns the 52 standard cards, one of each (suit, rank) pair.
func FullDeck() []Card {
	cards := make([]Card, 0, 52)
	for s := Spade; s <= Diamond; s++ {
		for r := byte(1); r <= 13; r++ {
			cards = append(cards, Make(s, r))
		}
	}
	return cards
}

// Deck is an ordered shoe of cards. Deal never fails: when the shoe runs
// out it silently rebuilds a fresh shuffled 52-card deck before dealing.
// Statistically wrong for serious play, but it means a round can never
// stall on an empty deck.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New returns a time-seeded shuffled deck.
func New() *Deck {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a shuffled deck with a fixed RNG seed.
func NewSeeded(seed int64) *Deck {
	d := &Deck{rng: rand.New(rand.NewSource(seed))}
	d.refill()
	return d
}

// NewStacked returns a deck that deals the given cards front to back.
// Once they run out the deck behaves like a regular shuffled deck.
// Intended for deterministic tests.
func NewStacked(cards ...Card) *Deck {
	d := &Deck{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	d.cards = append(d.cards, cards...)
	return d
}

func (d *Deck) refill() {
	d.cards = FullDeck()
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the top card, refilling first if the deck
// is exhausted.
func (d *Deck) Deal() Card {
	if len(d.cards) == 0 {
		d.refill()
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c
}

// Remaining reports how many cards are left before the next refill.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
