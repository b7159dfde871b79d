package card

import "fmt"

// Card is a single playing card.
//
// Encoding:
// - high 4 bits: suit (0:Spade, 1:Heart, 2:Club, 3:Diamond)
// - low 4 bits: rank (1:A, 2..9, 10, 11:J, 12:Q, 13:K)
type Card byte

const CardInvalid Card = 0

// Make builds a card from a suit and a rank in [1,13].
func Make(s Suit, rank byte) Card {
	return Card(byte(s)<<4 | rank&0x0F)
}

// Rank returns the face rank 1-13 (A=1, K=13).
func (c Card) Rank() byte {
	if c == CardInvalid {
		return 0
	}
	return byte(c & 0x0F)
}

// Suit returns the card's suit.
func (c Card) Suit() Suit {
	return Suit(c >> 4)
}

func (c Card) IsAce() bool {
	return c.Rank() == 1
}

// Value returns the nominal blackjack value: ace counts 11,
// face cards count 10, everything else its rank.
func (c Card) Value() int {
	r := int(c.Rank())
	switch {
	case r == 1:
		return 11
	case r >= 10:
		return 10
	default:
		return r
	}
}

func (c Card) String() string {
	if c == CardInvalid {
		return "Invalid"
	}
	return rankString(c.Rank()) + c.Suit().String()
}

func rankString(r byte) string {
	switch r {
	case 1:
		return "A"
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	default:
		return fmt.Sprintf("%d", r)
	}
}
