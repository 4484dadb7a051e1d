package game

// Card is a development card. The zero Card (ID 0) marks an empty slot.
type Card struct {
	ID     int
	Tier   int // 1..NumTiers
	Colour Colour
	Points int
	Cost   Gems
}

func (c Card) IsZero() bool {
	return c.ID == 0
}

// Noble visits an agent whose card bonuses cover its requirement.
// The zero Noble (ID 0) means no noble.
type Noble struct {
	ID          int
	Points      int
	Requirement Gems
}

func (n Noble) IsZero() bool {
	return n.ID == 0
}
