package blackjack

import "blackjack-lite/card"

// Outcome is a finished player's result against the dealer.
type Outcome byte

const (
	OutcomeLose Outcome = iota
	OutcomeWin
	OutcomePush
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "WIN"
	case OutcomePush:
		return "PUSH"
	default:
		return "LOSE"
	}
}

// Resolve maps a finished player hand against the dealer's. A busted
// player always loses, regardless of what the dealer does afterwards.
// Call only once both hands are final for the round.
func Resolve(player, dealer []card.Card) Outcome {
	if IsBust(player) {
		return OutcomeLose
	}
	if IsBust(dealer) {
		return OutcomeWin
	}
	pv, dv := Total(player), Total(dealer)
	switch {
	case pv > dv:
		return OutcomeWin
	case pv == dv:
		return OutcomePush
	default:
		return OutcomeLose
	}
}
