package learn

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"splendor/eval"
	"splendor/game"
	"splendor/weights"
)

func TestApply(t *testing.T) {
	w := weights.Vector{1, 2, 3}

	t.Run("zero delta leaves weights unchanged", func(t *testing.T) {
		got := Apply(w, []float64{0.5, 0.1, 9}, 0.1, TDError(1, 0.5, 2, 2))
		require.Equal(t, w, got)
	})

	t.Run("step along features", func(t *testing.T) {
		got := Apply(w, []float64{1, 0, -2}, 0.1, 0.5)
		require.InDeltaSlice(t, []float64{1.05, 2, 2.9}, []float64(got), 1e-9)
		require.Equal(t, weights.Vector{1, 2, 3}, w, "input must not be modified")
	})
}

func TestTDError(t *testing.T) {
	require.InDelta(t, 1+0.4*2-0.5, TDError(1, 0.4, 2, 0.5), 1e-9)
}

func TestUpdate(t *testing.T) {
	rules := game.NewRules()
	gs := game.NewGameState(3)
	actions := rules.LegalActions(gs, 0)
	require.NotEmpty(t, actions)

	t.Run("persists every decision", func(t *testing.T) {
		linear := eval.NewLinear(rules, nil, weights.Unit(eval.NumFeatures))
		store := weights.NewMemoryStore(nil)
		trend, err := weights.OpenTrendLog(filepath.Join(t.TempDir(), "trend.csv"))
		require.NoError(t, err)

		u := NewUpdater(rules, linear, store, WithTrend(trend))
		step, err := u.Update(gs, actions[0], 0)
		require.NoError(t, err)
		require.False(t, step.Skipped)
		require.InDelta(t, TDError(step.Reward, 0.4, step.QNext, step.QChosen), step.Delta, 1e-9)

		saved, err := store.Load()
		require.NoError(t, err)
		require.Equal(t, step.Weights, saved)
		require.Equal(t, linear.Weights(), saved, "evaluator sees the new weights")
		require.Equal(t, 1, trend.Episode())

		_, err = u.Update(gs, actions[1], 0)
		require.NoError(t, err)
		require.Equal(t, 2, store.Saves())
		require.Equal(t, 2, trend.Episode())
	})

	t.Run("zero delta keeps weights", func(t *testing.T) {
		linear := eval.NewLinear(rules, nil, make(weights.Vector, eval.NumFeatures))
		store := weights.NewMemoryStore(nil)
		u := NewUpdater(rules, linear, store)

		// With all weights zero every Q is zero; an opening move scores no
		// points so the error vanishes.
		step, err := u.Update(gs, actions[0], 0)
		require.NoError(t, err)
		require.Zero(t, step.Reward)
		require.Zero(t, step.Delta)
		require.Equal(t, make(weights.Vector, eval.NumFeatures), step.Weights)
	})

	t.Run("sentinel skips update but still saves", func(t *testing.T) {
		linear := eval.NewLinear(rules, nil, weights.Unit(2))
		store := weights.NewMemoryStore(nil)
		u := NewUpdater(rules, linear, store)

		step, err := u.Update(gs, actions[0], 0)
		require.NoError(t, err)
		require.True(t, step.Skipped)
		require.Equal(t, weights.Unit(2), step.Weights)
		require.Equal(t, 1, store.Saves())
	})
}
