// Package eval scores (state, action, agent) triples for the search engines.
package eval

import "splendor/game"

// Evaluator maps an action taken from a state by an agent to a scalar
// desirability. Higher is better.
type Evaluator interface {
	Score(state *game.GameState, action game.Action, agent int) float64
}

// Sentinel is the worst possible score, returned when an evaluator cannot
// produce a meaningful value.
const Sentinel = -999999.0

// NumFeatures is the width of the full feature vector.
const NumFeatures = 14

// AllFeatures selects every feature in order.
func AllFeatures() []int {
	selected := make([]int, NumFeatures)
	for i := range selected {
		selected[i] = i
	}
	return selected
}

// Func adapts a plain function to the Evaluator interface.
type Func func(state *game.GameState, action game.Action, agent int) float64

func (f Func) Score(state *game.GameState, action game.Action, agent int) float64 {
	return f(state, action, agent)
}
