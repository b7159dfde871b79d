// Package blackjack holds the pure game rules: hand totals with soft-ace
// reduction, the dealer draw policy, and round outcome resolution. It has
// no notion of connections or tables and is safe to call from tests and
// the table session alike.
package blackjack

import "blackjack-lite/card"

// Total computes the blackjack value of a hand. Aces count 11 first;
// while the total exceeds 21 and an ace is still counted high, one ace
// is dropped to 1. Recomputed from the cards on every call.
func Total(hand []card.Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsBust reports whether the hand's total exceeds 21.
func IsBust(hand []card.Card) bool {
	return Total(hand) > 21
}

// IsSoft reports whether at least one ace can still count as 11 without
// busting: the hand holds an ace and the minimum total plus 10 is <= 21.
func IsSoft(hand []card.Card) bool {
	aces := 0
	min := 0
	for _, c := range hand {
		if c.IsAce() {
			aces++
			min++
		} else {
			min += c.Value()
		}
	}
	return aces > 0 && min+10 <= 21
}

// IsNatural reports a two-card 21.
func IsNatural(hand []card.Card) bool {
	return len(hand) == 2 && Total(hand) == 21
}
