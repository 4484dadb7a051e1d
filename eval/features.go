package eval

import "splendor/game"

// Feature indices. Every feature is divided by a fixed constant so that all
// of them live on comparable scales.
const (
	FeatureTier1Demand    = iota // collected gems weighted by unmet tier-1 demand, /100
	FeatureTier2Demand           // same for tier 2
	FeatureTier3Demand           // same for tier 3
	FeatureOpponentNeed          // opponent's shortfall in the collected colours, /100
	FeatureEfficiency            // dealt cost covered by the collected colours, /100
	FeatureOpponentScore         // /10
	FeaturePoints                // points of the bought card, /5
	FeatureCost                  // total cost of the bought card, /15
	FeatureNobleDemand           // nobles wanting the bought card's colour, /5
	FeatureNoble                 // 1 if the action attains a noble
	FeatureReserveDefense        // 1 if reserving denies an opponent threat
	FeatureCards                 // cards owned, /10
	FeatureNoblePotential        // points of nobles at most one card away, /3
	FeatureGemPriority           // collected gems any dealt card asks for, /10
)

// Features computes the full feature vector for agent taking action from
// state. The oracle is consulted for the opponent's legal actions.
func Features(oracle game.Oracle, state *game.GameState, action game.Action, agent int) [NumFeatures]float64 {
	var f [NumFeatures]float64

	board := state.Board
	me := state.Agents[agent]
	opponent := state.Agents[state.Opponent(agent)]
	dealt := board.DealtCards()

	if action.Type.IsCollect() {
		bonuses := me.Bonuses()
		for tier := 0; tier < game.NumTiers; tier++ {
			var demand game.Gems
			for _, card := range board.Dealt[tier] {
				if card.IsZero() {
					continue
				}
				for _, c := range game.Colours {
					if card.Cost[c] > 0 && card.Cost[c] > bonuses[c]+me.Gems[c] {
						demand[c]++
					}
				}
			}
			score := 0
			for c := range demand {
				score += action.Collected[c] * demand[c]
				score -= action.Returned[c] * demand[c]
			}
			f[FeatureTier1Demand+tier] = float64(score) / 100
		}

		efficiency, need := 0, 0
		oppBonuses := opponent.Bonuses()
		for _, c := range game.Colours {
			if action.Collected[c] == 0 {
				continue
			}
			for _, card := range dealt {
				efficiency += card.Cost[c]
				need += max(0, card.Cost[c]-oppBonuses[c]-opponent.Gems[c])
			}
		}
		f[FeatureEfficiency] = float64(efficiency) / 100
		f[FeatureOpponentNeed] = float64(need) / 100
	}

	if action.Type.IsBuy() && !action.Card.IsZero() {
		card := action.Card
		f[FeaturePoints] = float64(card.Points) / 5
		f[FeatureCost] = float64(card.Cost.Total()) / 15
		demand := 0
		for _, noble := range board.Nobles {
			if noble.Requirement[card.Colour] > 0 {
				demand++
			}
		}
		f[FeatureNobleDemand] = float64(demand) / 5
	}

	if action.Type.IsReserve() {
		f[FeatureReserveDefense] = reserveDefense(oracle, state, state.Opponent(agent))
	}

	if !action.Noble.IsZero() {
		f[FeatureNoble] = 1
	}

	f[FeatureCards] = float64(len(me.Cards)) / 10

	potential := 0
	bonuses := me.Bonuses()
	for _, noble := range board.Nobles {
		if NobleWithinReach(bonuses, noble) {
			potential += noble.Points
		}
	}
	f[FeatureNoblePotential] = float64(potential) / 3

	priority := 0
	for _, c := range game.Colours {
		if action.Collected[c] == 0 {
			continue
		}
		for _, card := range dealt {
			if card.Cost[c] > 0 {
				priority += action.Collected[c]
				break
			}
		}
	}
	f[FeatureGemPriority] = float64(priority) / 10

	f[FeatureOpponentScore] = float64(opponent.Score) / 10

	return f
}

// reserveDefense reports whether the opponent could next buy a card worth
// three or more points, or one that completes a noble.
func reserveDefense(oracle game.Oracle, state *game.GameState, opponent int) float64 {
	if oracle == nil {
		return 0
	}
	bonuses := state.Agents[opponent].Bonuses()
	for _, a := range oracle.LegalActions(state, opponent) {
		if !a.Type.IsBuy() || a.Card.IsZero() {
			continue
		}
		if a.Card.Points >= 3 {
			return 1
		}
		if !a.Noble.IsZero() {
			c := a.Card.Colour
			if a.Noble.Requirement[c] > 0 && bonuses[c]+1 == a.Noble.Requirement[c] {
				return 1
			}
		}
	}
	return 0
}
