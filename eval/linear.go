package eval

import (
	"sync"

	"github.com/rs/zerolog/log"

	"splendor/game"
	"splendor/weights"
)

// Linear scores an action as the dot product of a selected subset of the
// features with a weight vector of the same length.
type Linear struct {
	oracle   game.Oracle
	selected []int

	mu      sync.RWMutex
	weights weights.Vector
}

func NewLinear(oracle game.Oracle, selected []int, w weights.Vector) *Linear {
	if selected == nil {
		selected = AllFeatures()
	}
	return &Linear{
		oracle:   oracle,
		selected: append([]int(nil), selected...),
		weights:  w.Clone(),
	}
}

// Selected returns the feature indices this evaluator uses.
func (l *Linear) Selected() []int {
	return append([]int(nil), l.selected...)
}

// Features returns the selected features in order. Indices outside the full
// vector are skipped, so a bad selection shows up as a length mismatch.
func (l *Linear) Features(state *game.GameState, action game.Action, agent int) []float64 {
	all := Features(l.oracle, state, action, agent)
	features := make([]float64, 0, len(l.selected))
	for _, i := range l.selected {
		if i < 0 || i >= NumFeatures {
			continue
		}
		features = append(features, all[i])
	}
	return features
}

func (l *Linear) Score(state *game.GameState, action game.Action, agent int) float64 {
	return l.Dot(l.Features(state, action, agent))
}

// Dot applies the current weights to a feature vector, returning Sentinel
// when their lengths disagree.
func (l *Linear) Dot(features []float64) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(features) != len(l.weights) {
		log.Warn().
			Int("features", len(features)).
			Int("weights", len(l.weights)).
			Msg("feature and weight length mismatch")
		return Sentinel
	}

	q := 0.0
	for i, w := range l.weights {
		q += w * features[i]
	}
	return q
}

func (l *Linear) Weights() weights.Vector {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.weights.Clone()
}

func (l *Linear) SetWeights(w weights.Vector) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.weights = w.Clone()
}
