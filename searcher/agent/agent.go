package agent

import (
	"time"

	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/searcher"
)

// Agent is invoked once per turn by a game runner.
type Agent interface {
	// SelectAction returns a member of actions for the agent to move in state.
	SelectAction(actions []game.Action, state *game.GameState) game.Action
}

type searchAgent struct {
	searcher searcher.Searcher
	budget   time.Duration
}

// NewSearchAgent returns an agent that spends budget on every decision.
func NewSearchAgent(s searcher.Searcher, budget time.Duration) Agent {
	return searchAgent{searcher: s, budget: budget}
}

func (a searchAgent) SelectAction(actions []game.Action, state *game.GameState) game.Action {
	return a.searcher.ChooseAction(state, actions, a.budget)
}

// LastMetric reports the searcher's metrics for the previous decision.
func (a searchAgent) LastMetric() metrics.SearchMetric {
	if source, ok := a.searcher.(interface{ LastMetric() metrics.SearchMetric }); ok {
		return source.LastMetric()
	}
	return metrics.SearchMetric{}
}
