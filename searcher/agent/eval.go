package agent

import (
	"time"

	"golang.org/x/exp/rand"

	"splendor/eval"
	"splendor/game"
	"splendor/searcher"
)

type greedyAgent struct {
	evaluator eval.Evaluator
	budget    time.Duration
	rng       *rand.Rand
	clock     func() time.Time
}

// NewGreedyAgent returns an agent that plays the action with the highest
// evaluation, scanning until the budget runs out.
func NewGreedyAgent(evaluator eval.Evaluator, budget time.Duration, seed uint64) Agent {
	return &greedyAgent{
		evaluator: evaluator,
		budget:    budget,
		rng:       rand.New(rand.NewSource(seed)),
		clock:     time.Now,
	}
}

func (a *greedyAgent) SelectAction(actions []game.Action, state *game.GameState) game.Action {
	action, _ := a.best(actions, state)
	return action
}

// best starts from a random action at the sentinel score and keeps anything
// scoring strictly higher.
func (a *greedyAgent) best(actions []game.Action, state *game.GameState) (game.Action, float64) {
	if len(actions) == 0 {
		return game.Action{Type: game.Pass}, eval.Sentinel
	}
	best, bestQ := actions[a.rng.Intn(len(actions))], eval.Sentinel
	deadline := searcher.NewDeadline(a.clock, a.budget)
	for _, action := range actions {
		if deadline.Expired() {
			break
		}
		if q := a.evaluator.Score(state, action, state.ToMove); q > bestQ {
			best, bestQ = action, q
		}
	}
	return best, bestQ
}

type randomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) SelectAction(actions []game.Action, state *game.GameState) game.Action {
	if len(actions) == 0 {
		return game.Action{Type: game.Pass}
	}
	return actions[a.rng.Intn(len(actions))]
}
