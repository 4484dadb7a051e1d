package agent

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"splendor/eval"
	"splendor/game"
	"splendor/learn"
)

type trainingAgent struct {
	greedy  *greedyAgent
	updater *learn.Updater
	epsilon float64
	rng     *rand.Rand
}

// NewTrainingAgent returns an agent for online training: it exploits the
// evaluator with probability epsilon, explores uniformly otherwise, and
// updates the weights after every decision.
func NewTrainingAgent(linear *eval.Linear, updater *learn.Updater, epsilon float64, budget time.Duration, seed uint64) Agent {
	return &trainingAgent{
		greedy:  NewGreedyAgent(linear, budget, seed).(*greedyAgent),
		updater: updater,
		epsilon: epsilon,
		rng:     rand.New(rand.NewSource(seed + 1)),
	}
}

func (a *trainingAgent) SelectAction(actions []game.Action, state *game.GameState) game.Action {
	if len(actions) == 0 {
		return game.Action{Type: game.Pass}
	}

	var chosen game.Action
	if a.rng.Float64() < a.epsilon {
		chosen, _ = a.greedy.best(actions, state)
	} else {
		chosen = actions[a.rng.Intn(len(actions))]
	}

	if _, err := a.updater.Update(state, chosen, state.ToMove); err != nil {
		log.Error().Err(err).Msg("weight update failed")
	}
	return chosen
}
