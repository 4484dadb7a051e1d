package game

// Rules is the two-agent Splendor rules engine.
type Rules struct {
	WinningScore int
}

func NewRules() *Rules {
	return &Rules{WinningScore: WinningScore}
}

// LegalActions enumerates every action available to agent. It never returns
// an empty slice: an agent with nothing else to do may pass.
func (r *Rules) LegalActions(gs *GameState, agent int) []Action {
	a := gs.Agents[agent]
	bank := gs.Board.Bank
	bonuses := a.Bonuses()
	actions := []Action{}

	// Collect different colours: three if possible, otherwise as many as the
	// bank still offers.
	available := []Colour{}
	for _, c := range Colours {
		if bank[c] > 0 {
			available = append(available, c)
		}
	}
	if n := min(3, len(available)); n > 0 {
		for _, combo := range colourCombinations(available, n) {
			var collected Gems
			for _, c := range combo {
				collected[c] = 1
			}
			actions = r.withReturns(actions, Action{Type: CollectDiff, Collected: collected}, a.Gems, gs, bonuses)
		}
	}

	// Collect two of a colour the bank holds at least four of.
	for _, c := range Colours {
		if bank[c] >= 4 {
			var collected Gems
			collected[c] = 2
			actions = r.withReturns(actions, Action{Type: CollectSame, Collected: collected}, a.Gems, gs, bonuses)
		}
	}

	// Reserve a face-up card or blind from a deck, taking gold if any is left.
	if len(a.Reserved) < MaxReserved {
		var gold Gems
		if bank[Yellow] > 0 {
			gold[Yellow] = 1
		}
		for _, card := range gs.Board.DealtCards() {
			actions = r.withReturns(actions, Action{Type: Reserve, Card: card, Collected: gold}, a.Gems, gs, bonuses)
		}
		for tier, deck := range gs.Board.Decks {
			if len(deck) > 0 {
				actions = r.withReturns(actions, Action{Type: ReserveAvailable, Tier: tier + 1, Collected: gold}, a.Gems, gs, bonuses)
			}
		}
	}

	// Buy a face-up or reserved card.
	for _, card := range gs.Board.DealtCards() {
		if payment, ok := Payment(card, a.Gems, bonuses); ok {
			actions = r.withNobles(actions, Action{Type: BuyAvailable, Card: card, Returned: payment}, gs, bonuses)
		}
	}
	for _, card := range a.Reserved {
		if payment, ok := Payment(card, a.Gems, bonuses); ok {
			actions = r.withNobles(actions, Action{Type: BuyReserve, Card: card, Returned: payment}, gs, bonuses)
		}
	}

	if len(actions) == 0 {
		actions = r.withNobles(actions, Action{Type: Pass}, gs, bonuses)
	}
	return actions
}

// withReturns appends action once per way of handing back gems above
// MaxGems. Gems just collected are not handed back unless nothing else can be.
func (r *Rules) withReturns(actions []Action, action Action, held Gems, gs *GameState, bonuses Gems) []Action {
	after := held.Add(action.Collected)
	excess := after.Total() - MaxGems
	if excess <= 0 {
		return r.withNobles(actions, action, gs, bonuses)
	}

	returnable := after
	for c, n := range action.Collected {
		if n > 0 {
			returnable[c] = 0
		}
	}
	if returnable.Total() < excess {
		returnable = after
	}
	for _, returned := range gemCombinations(returnable, excess) {
		a := action
		a.Returned = returned
		actions = r.withNobles(actions, a, gs, bonuses)
	}
	return actions
}

// withNobles appends action once per noble the agent would attract after it,
// or once without a noble if none.
func (r *Rules) withNobles(actions []Action, action Action, gs *GameState, bonuses Gems) []Action {
	after := bonuses
	if action.Type.IsBuy() {
		after[action.Card.Colour]++
	}
	attracted := false
	for _, noble := range gs.Board.Nobles {
		if after.Covers(noble.Requirement) {
			a := action
			a.Noble = noble
			actions = append(actions, a)
			attracted = true
		}
	}
	if !attracted {
		actions = append(actions, action)
	}
	return actions
}

// Payment returns the gems an agent spends to buy card: bonuses discount the
// cost, gems pay the rest and gold covers any shortfall.
func Payment(card Card, gems Gems, bonuses Gems) (Gems, bool) {
	var payment Gems
	shortfall := 0
	for _, c := range Colours {
		need := max(0, card.Cost[c]-bonuses[c])
		paid := min(need, gems[c])
		payment[c] = paid
		shortfall += need - paid
	}
	if shortfall > gems[Yellow] {
		return Gems{}, false
	}
	payment[Yellow] = shortfall
	return payment, true
}

// Successor applies action for agent to a copy of gs.
func (r *Rules) Successor(gs *GameState, action Action, agent int) *GameState {
	next := gs.Copy()
	board := &next.Board
	a := &next.Agents[agent]

	switch action.Type {
	case CollectSame, CollectDiff:
		a.Gems = a.Gems.Add(action.Collected).Sub(action.Returned)
		board.Bank = board.Bank.Sub(action.Collected).Add(action.Returned)
	case Reserve:
		board.takeDealt(action.Card)
		a.Reserved = append(a.Reserved, action.Card)
		a.Gems = a.Gems.Add(action.Collected).Sub(action.Returned)
		board.Bank = board.Bank.Sub(action.Collected).Add(action.Returned)
	case ReserveAvailable:
		tier := action.Tier - 1
		if deck := board.Decks[tier]; len(deck) > 0 {
			a.Reserved = append(a.Reserved, deck[0])
			board.Decks[tier] = deck[1:]
		}
		a.Gems = a.Gems.Add(action.Collected).Sub(action.Returned)
		board.Bank = board.Bank.Sub(action.Collected).Add(action.Returned)
	case BuyAvailable:
		board.takeDealt(action.Card)
		r.buy(next, a, action)
	case BuyReserve:
		for i, card := range a.Reserved {
			if card.ID == action.Card.ID {
				a.Reserved = append(a.Reserved[:i:i], a.Reserved[i+1:]...)
				break
			}
		}
		r.buy(next, a, action)
	}

	if !action.Noble.IsZero() {
		for i, noble := range board.Nobles {
			if noble.ID == action.Noble.ID {
				board.Nobles = append(board.Nobles[:i:i], board.Nobles[i+1:]...)
				a.Nobles = append(a.Nobles, noble)
				a.Score += noble.Points
				break
			}
		}
	}

	if action.Type == Pass {
		next.Passes++
	} else {
		next.Passes = 0
	}
	next.Turn++
	next.ToMove = (agent + 1) % len(next.Agents)
	return next
}

func (r *Rules) buy(gs *GameState, a *AgentState, action Action) {
	a.Gems = a.Gems.Sub(action.Returned)
	gs.Board.Bank = gs.Board.Bank.Add(action.Returned)
	a.Cards = append(a.Cards, action.Card)
	a.Score += action.Card.Points
}

// takeDealt removes card from its row and refills the slot from the deck.
func (b *Board) takeDealt(card Card) {
	tier := card.Tier - 1
	for slot, dealt := range b.Dealt[tier] {
		if dealt.ID != card.ID {
			continue
		}
		b.Dealt[tier][slot] = Card{}
		if deck := b.Decks[tier]; len(deck) > 0 {
			b.Dealt[tier][slot] = deck[0]
			b.Decks[tier] = deck[1:]
		}
		return
	}
}

func (r *Rules) Score(gs *GameState, agent int) int {
	return gs.Agents[agent].Score
}

// GameOver reports whether a round has completed with some agent at the
// winning score, or every agent passed in a row.
func (r *Rules) GameOver(gs *GameState) bool {
	if gs.Passes >= len(gs.Agents) {
		return true
	}
	if gs.ToMove != 0 {
		return false
	}
	for _, a := range gs.Agents {
		if a.Score >= r.WinningScore {
			return true
		}
	}
	return false
}

// Winner returns the agent with the highest score, ties going to the one
// with fewer purchased cards, or -1 if still tied.
func (r *Rules) Winner(gs *GameState) int {
	winner, tied := 0, false
	for i := 1; i < len(gs.Agents); i++ {
		a, best := gs.Agents[i], gs.Agents[winner]
		switch {
		case a.Score > best.Score, a.Score == best.Score && len(a.Cards) < len(best.Cards):
			winner, tied = i, false
		case a.Score == best.Score && len(a.Cards) == len(best.Cards):
			tied = true
		}
	}
	if tied {
		return -1
	}
	return winner
}

// colourCombinations returns every n-subset of colours, in order.
func colourCombinations(colours []Colour, n int) [][]Colour {
	if n == 0 {
		return [][]Colour{{}}
	}
	combos := [][]Colour{}
	for i := 0; i <= len(colours)-n; i++ {
		for _, rest := range colourCombinations(colours[i+1:], n-1) {
			combo := append([]Colour{colours[i]}, rest...)
			combos = append(combos, combo)
		}
	}
	return combos
}

// gemCombinations returns every multiset of n gems drawable from held.
func gemCombinations(held Gems, n int) []Gems {
	combos := []Gems{}
	var walk func(colour int, remaining int, current Gems)
	walk = func(colour int, remaining int, current Gems) {
		if remaining == 0 {
			combos = append(combos, current)
			return
		}
		if colour >= int(NumColours) {
			return
		}
		for take := min(remaining, held[colour]); take >= 0; take-- {
			next := current
			next[colour] = take
			walk(colour+1, remaining-take, next)
		}
	}
	walk(0, n, Gems{})
	return combos
}
