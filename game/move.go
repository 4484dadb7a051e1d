package game

import "fmt"

// Action is an immutable move produced by Oracle.LegalActions. It is a plain
// comparable value so it can key maps and be compared with ==.
type Action struct {
	Type ActionType
	// Card is the bought or reserved card. Zero for collects, passes and
	// blind reserves.
	Card Card
	// Tier is the deck a blind reserve draws from.
	Tier int
	// Collected holds gems taken from the bank (including gold from a reserve).
	Collected Gems
	// Returned holds gems handed back to the bank: the excess above MaxGems
	// for collects and reserves, the payment for buys.
	Returned Gems
	// Noble is the noble attained at the end of the turn, if any.
	Noble Noble
}

func (a Action) String() string {
	s := a.Type.String()
	if !a.Card.IsZero() {
		s += fmt.Sprintf(" card=%d", a.Card.ID)
	}
	if a.Type == ReserveAvailable {
		s += fmt.Sprintf(" tier=%d", a.Tier)
	}
	if !a.Collected.IsZero() {
		s += " collected=" + a.Collected.String()
	}
	if !a.Returned.IsZero() {
		s += " returned=" + a.Returned.String()
	}
	if !a.Noble.IsZero() {
		s += fmt.Sprintf(" noble=%d", a.Noble.ID)
	}
	return s
}
