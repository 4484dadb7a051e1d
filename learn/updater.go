// Package learn adjusts the linear evaluator's weights online, one
// temporal-difference step per decision.
package learn

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"splendor/eval"
	"splendor/game"
	"splendor/meta"
	"splendor/weights"
)

// Step records the quantities behind one update.
type Step struct {
	Reward  float64
	QChosen float64
	QNext   float64
	Delta   float64
	Weights weights.Vector
	// Skipped is set when a sentinel score made the error meaningless;
	// the weights are still persisted unchanged.
	Skipped bool
}

type Updater struct {
	oracle game.Oracle
	linear *eval.Linear
	store  weights.Store
	trend  *weights.TrendLog
	alpha  float64
	gamma  float64
}

type Option func(*Updater)

func WithAlpha(alpha float64) Option {
	return func(u *Updater) {
		u.alpha = alpha
	}
}

func WithGamma(gamma float64) Option {
	return func(u *Updater) {
		u.gamma = gamma
	}
}

// WithTrend appends the weights to the trend log after every update.
func WithTrend(trend *weights.TrendLog) Option {
	return func(u *Updater) {
		u.trend = trend
	}
}

func NewUpdater(oracle game.Oracle, linear *eval.Linear, store weights.Store, opts ...Option) *Updater {
	if oracle == nil || linear == nil || store == nil {
		panic("learn: oracle, evaluator and store are required")
	}
	u := &Updater{
		oracle: oracle,
		linear: linear,
		store:  store,
		alpha:  meta.Alpha,
		gamma:  meta.TDGamma,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Update plays chosen for agent, lets the opponent answer with its best
// one-ply reply, and moves the weights along the TD error. The new weights
// are saved before returning.
func (u *Updater) Update(state *game.GameState, chosen game.Action, agent int) (Step, error) {
	step := Step{QChosen: u.linear.Score(state, chosen, agent)}

	next := u.oracle.Successor(state, chosen, agent)
	if !u.oracle.GameOver(next) {
		opponent := state.Opponent(agent)
		if reply, ok := u.bestAction(next, opponent); ok {
			next = u.oracle.Successor(next, reply, opponent)
		}
	}

	step.Reward = float64(u.oracle.Score(next, agent) - u.oracle.Score(state, agent))
	if !u.oracle.GameOver(next) {
		if best, ok := u.bestAction(next, agent); ok {
			step.QNext = u.linear.Score(next, best, agent)
		}
	}

	features := u.linear.Features(state, chosen, agent)
	w := u.linear.Weights()
	if step.QChosen == eval.Sentinel || step.QNext == eval.Sentinel || len(features) != len(w) {
		step.Skipped = true
		log.Warn().Int("agent", agent).Msg("skipping weight update on sentinel score")
	} else {
		step.Delta = TDError(step.Reward, u.gamma, step.QNext, step.QChosen)
		w = Apply(w, features, u.alpha, step.Delta)
		u.linear.SetWeights(w)
	}
	step.Weights = w

	if err := u.store.Save(w); err != nil {
		return step, errors.Wrap(err, "failed to persist weights")
	}
	if u.trend != nil {
		if err := u.trend.Append(w); err != nil {
			return step, errors.Wrap(err, "failed to append weight trend")
		}
	}

	log.Debug().
		Int("agent", agent).
		Float64("reward", step.Reward).
		Float64("delta", step.Delta).
		Msg("weights updated")
	return step, nil
}

func (u *Updater) bestAction(state *game.GameState, agent int) (game.Action, bool) {
	actions := u.oracle.LegalActions(state, agent)
	if len(actions) == 0 {
		return game.Action{}, false
	}
	best, bestQ := actions[0], u.linear.Score(state, actions[0], agent)
	for _, a := range actions[1:] {
		if q := u.linear.Score(state, a, agent); q > bestQ {
			best, bestQ = a, q
		}
	}
	return best, true
}

// TDError is reward + gamma*qNext - qChosen.
func TDError(reward, gamma, qNext, qChosen float64) float64 {
	return reward + gamma*qNext - qChosen
}

// Apply returns w[i] + alpha*delta*features[i] for every i. The input is not
// modified.
func Apply(w weights.Vector, features []float64, alpha, delta float64) weights.Vector {
	out := w.Clone()
	for i := range out {
		if i < len(features) {
			out[i] += alpha * delta * features[i]
		}
	}
	return out
}
