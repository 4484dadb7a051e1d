package searcher

import (
	"sort"

	"golang.org/x/exp/rand"

	"splendor/eval"
	"splendor/game"
	"splendor/utils"
)

// breadthFirstBuys is how many purchases the breadth-first shortlist keeps.
const breadthFirstBuys = 3

// BreadthFirstShortlist ranks the root actions for breadth-first search:
// the three best purchases by card value then scarcity; failing that, gem
// collections by gem need while the agent holds at most eight gems; failing
// that, a single random action.
func BreadthFirstShortlist(state *game.GameState, actions []game.Action, agent int, rng *rand.Rand) []game.Action {
	if len(actions) == 0 {
		return nil
	}

	buys := utils.Filter(actions, func(a game.Action) bool { return a.Type == game.BuyAvailable })
	if len(buys) > 0 {
		sort.SliceStable(buys, func(i, j int) bool {
			vi, vj := eval.CardValue(buys[i].Card, state), eval.CardValue(buys[j].Card, state)
			if vi != vj {
				return vi > vj
			}
			return eval.ResourceScarcity(buys[i].Card, state) > eval.ResourceScarcity(buys[j].Card, state)
		})
		return buys[:min(breadthFirstBuys, len(buys))]
	}

	collects := utils.Filter(actions, func(a game.Action) bool { return a.Type.IsCollect() })
	if state.Agents[agent].Gems.Total() <= 8 && len(collects) > 0 {
		sort.SliceStable(collects, func(i, j int) bool {
			return eval.GemNeed(collects[i], state) > eval.GemNeed(collects[j], state)
		})
		return collects
	}

	return []game.Action{actions[rng.Intn(len(actions))]}
}

// DepthFirstShortlist buckets actions for iterative deepening: purchases;
// else gem collections while the bank holds at least three gems; else face-up
// reservations. Each bucket is ordered by eval.ActionPriority. The result is
// empty when no bucket applies.
func DepthFirstShortlist(state *game.GameState, actions []game.Action, agent int) []game.Action {
	bucket := utils.Filter(actions, func(a game.Action) bool { return a.Type.IsBuy() })
	if len(bucket) == 0 && state.Board.Bank.Total() >= 3 {
		bucket = utils.Filter(actions, func(a game.Action) bool { return a.Type.IsCollect() })
	}
	if len(bucket) == 0 {
		bucket = utils.Filter(actions, func(a game.Action) bool { return a.Type == game.Reserve })
	}
	sort.SliceStable(bucket, func(i, j int) bool {
		return eval.ActionPriority(bucket[i], state, agent) > eval.ActionPriority(bucket[j], state, agent)
	})
	return bucket
}

// pruned drops pruned actions, keeping the input when nothing survives.
func (s *settings) pruned(state *game.GameState, actions []game.Action, agent int) []game.Action {
	if s.prune == nil {
		return actions
	}
	kept := utils.Filter(actions, func(a game.Action) bool { return !s.prune(state, a, agent) })
	if len(kept) == 0 {
		return actions
	}
	return kept
}
