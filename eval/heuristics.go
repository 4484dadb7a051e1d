package eval

import "splendor/game"

// totalCards is the size of the three development decks.
const totalCards = 90

// CardValue rates a card by points per gem spent, scaled by a tier weight
// that shifts as the game progresses.
func CardValue(card game.Card, state *game.GameState) float64 {
	cost := card.Cost.Total()
	if cost == 0 {
		return 0
	}

	owned := 0
	for _, a := range state.Agents {
		owned += len(a.Cards)
	}
	phase := float64(owned) / totalCards

	var tierWeight [game.NumTiers + 1]float64
	switch {
	case phase < 0.3:
		tierWeight = [...]float64{1, 1.5, 1, 0.8}
	case phase < 0.6:
		tierWeight = [...]float64{1, 1.2, 1.5, 1}
	default:
		tierWeight = [...]float64{1, 1, 1.3, 1.2}
	}
	bonus := 1.0
	if card.Tier >= 1 && card.Tier <= game.NumTiers {
		bonus = tierWeight[card.Tier]
	}
	return float64(card.Points) / float64(cost) * bonus
}

// ResourceScarcity counts the colours in the card's cost that the bank is
// running short of.
func ResourceScarcity(card game.Card, state *game.GameState) int {
	scarce := 0
	for _, c := range game.Colours {
		if card.Cost[c] > 0 && state.Board.Bank[c] < 3 {
			scarce++
		}
	}
	return scarce
}

// GemNeed weights each collected gem by how much the dealt cards ask for its
// colour in total.
func GemNeed(action game.Action, state *game.GameState) int {
	var needed game.Gems
	for _, card := range state.Board.DealtCards() {
		needed = needed.Add(card.Cost)
	}
	need := 0
	for c, n := range action.Collected {
		need += needed[c] * n
	}
	return need
}

// AttractsNoble reports whether the agent would satisfy the noble after
// adding card to its bonuses.
func AttractsNoble(agent game.AgentState, noble game.Noble, card game.Card) bool {
	bonuses := agent.Bonuses()
	if !card.IsZero() {
		bonuses[card.Colour]++
	}
	return bonuses.Covers(noble.Requirement)
}

// ActionPriority orders actions for depth-first expansion: buys by points
// plus five per noble the purchase attracts, collects at a flat 1.
func ActionPriority(action game.Action, state *game.GameState, agent int) float64 {
	switch {
	case action.Type.IsBuy():
		score := float64(action.Card.Points)
		for _, noble := range state.Board.Nobles {
			if AttractsNoble(state.Agents[agent], noble, action.Card) {
				score += 5
			}
		}
		return score
	case action.Type.IsCollect():
		return 1
	}
	return 0
}

// Leaf scores a state reached at the search horizon for agent.
type Leaf func(state *game.GameState, agent int) float64

// AgentScore is the agent's current points.
func AgentScore(state *game.GameState, agent int) float64 {
	return float64(state.Agents[agent].Score)
}

// nobleReach is how many cards short of a noble's requirement still counts
// as within reach.
const nobleReach = 1

// NobleShortfall counts the cards of the required colours bonuses still lack.
func NobleShortfall(bonuses game.Gems, noble game.Noble) int {
	short := 0
	for _, c := range game.Colours {
		short += max(0, noble.Requirement[c]-bonuses[c])
	}
	return short
}

// NobleWithinReach reports whether the noble is at most one purchase away.
func NobleWithinReach(bonuses game.Gems, noble game.Noble) bool {
	return NobleShortfall(bonuses, noble) <= nobleReach
}

// ScoreWithNobles adds five for every noble on the board the agent is at
// most one card away from.
func ScoreWithNobles(state *game.GameState, agent int) float64 {
	a := state.Agents[agent]
	score := float64(a.Score)
	bonuses := a.Bonuses()
	for _, noble := range state.Board.Nobles {
		if NobleWithinReach(bonuses, noble) {
			score += 5
		}
	}
	return score
}
