package searcher

import (
	"time"

	"splendor/game"
)

// chainOracle is a single-agent game of fixed length where gain scores three
// points and stay scores nothing.
type chainOracle struct {
	turns int
}

var (
	gain = game.Action{Type: game.CollectSame, Collected: game.Gems{game.Red: 2}}
	stay = game.Action{Type: game.CollectDiff, Collected: game.Gems{game.Blue: 1}}
)

func (o chainOracle) LegalActions(gs *game.GameState, agent int) []game.Action {
	if o.GameOver(gs) {
		return nil
	}
	return []game.Action{stay, gain}
}

func (o chainOracle) Successor(gs *game.GameState, action game.Action, agent int) *game.GameState {
	next := gs.Copy()
	next.Turn++
	next.Agents[agent].Gems = next.Agents[agent].Gems.Add(action.Collected)
	if action == gain {
		next.Agents[agent].Score += 3
	}
	return next
}

func (o chainOracle) Score(gs *game.GameState, agent int) int {
	return gs.Agents[agent].Score
}

func (o chainOracle) GameOver(gs *game.GameState) bool {
	return gs.Turn >= o.turns
}

func chainState() *game.GameState {
	gs := &game.GameState{Agents: make([]game.AgentState, game.NumAgents)}
	gs.Agents[1].ID = 1
	gs.Board.Bank = game.Gems{4, 4, 4, 4, 4, 5}
	return gs
}

// steppingClock advances by step on every reading.
func steppingClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

// frozenClock never advances, so only exhaustion ends a search.
func frozenClock() func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		return now
	}
}

// detourOracle is a two-turn game where early scores three at once and late
// scores nothing until finish follows it, so both roots end on three.
type detourOracle struct{}

var (
	late   = game.Action{Type: game.CollectDiff, Collected: game.Gems{game.Blue: 1}}
	early  = game.Action{Type: game.CollectSame, Collected: game.Gems{game.Red: 2}}
	finish = game.Action{Type: game.CollectDiff, Collected: game.Gems{game.Green: 1}}
)

func (o detourOracle) LegalActions(gs *game.GameState, agent int) []game.Action {
	switch {
	case o.GameOver(gs):
		return nil
	case gs.Turn == 0:
		return []game.Action{late, early}
	}
	return []game.Action{finish}
}

func (o detourOracle) Successor(gs *game.GameState, action game.Action, agent int) *game.GameState {
	next := gs.Copy()
	next.Turn++
	a := &next.Agents[agent]
	a.Gems = a.Gems.Add(action.Collected)
	switch {
	case action == early:
		a.Score += 3
	case action == finish && a.Gems[game.Blue] > 0:
		a.Score += 3
	}
	return next
}

func (o detourOracle) Score(gs *game.GameState, agent int) int {
	return gs.Agents[agent].Score
}

func (o detourOracle) GameOver(gs *game.GameState) bool {
	return gs.Turn >= 2
}
