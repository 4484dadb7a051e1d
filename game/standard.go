package game

// A cost pattern is expressed relative to the card colour: index 0 is the
// card's own colour, 1..4 are the following colours in Colours order.
type costPattern struct {
	offsets [5]int
	points  int
}

var tierPatterns = [NumTiers][]costPattern{
	{ // 8 per colour
		{[5]int{0, 1, 1, 1, 1}, 0},
		{[5]int{0, 1, 2, 1, 1}, 0},
		{[5]int{0, 2, 2, 0, 1}, 0},
		{[5]int{1, 0, 0, 1, 3}, 0},
		{[5]int{0, 0, 2, 1, 0}, 0},
		{[5]int{0, 0, 0, 2, 2}, 0},
		{[5]int{0, 3, 0, 0, 0}, 0},
		{[5]int{0, 0, 4, 0, 0}, 1},
	},
	{ // 6 per colour
		{[5]int{0, 3, 2, 2, 0}, 1},
		{[5]int{2, 3, 0, 3, 0}, 1},
		{[5]int{0, 0, 1, 4, 2}, 2},
		{[5]int{0, 0, 0, 5, 3}, 2},
		{[5]int{0, 5, 0, 0, 0}, 2},
		{[5]int{6, 0, 0, 0, 0}, 3},
	},
	{ // 4 per colour
		{[5]int{0, 3, 3, 5, 3}, 3},
		{[5]int{0, 7, 0, 0, 0}, 4},
		{[5]int{3, 6, 3, 0, 0}, 4},
		{[5]int{3, 7, 0, 0, 0}, 5},
	},
}

// StandardDeck builds the 40/30/20 card decks and the ten candidate nobles
// in a fixed order. Callers shuffle.
func StandardDeck() ([NumTiers][]Card, []Noble) {
	var decks [NumTiers][]Card
	id := 1
	for tier, patterns := range tierPatterns {
		for ci, colour := range Colours {
			for _, p := range patterns {
				card := Card{ID: id, Tier: tier + 1, Colour: colour, Points: p.points}
				for offset, n := range p.offsets {
					card.Cost[Colours[(ci+offset)%len(Colours)]] += n
				}
				decks[tier] = append(decks[tier], card)
				id++
			}
		}
	}

	nobles := make([]Noble, 0, 10)
	for ci := range Colours {
		var req Gems
		req[Colours[ci]] = 4
		req[Colours[(ci+1)%len(Colours)]] = 4
		nobles = append(nobles, Noble{ID: len(nobles) + 1, Points: NoblePoints, Requirement: req})
	}
	for ci := range Colours {
		var req Gems
		for k := 0; k < 3; k++ {
			req[Colours[(ci+k)%len(Colours)]] = 3
		}
		nobles = append(nobles, Noble{ID: len(nobles) + 1, Points: NoblePoints, Requirement: req})
	}
	return decks, nobles
}
