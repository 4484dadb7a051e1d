package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"splendor/eval"
	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/utils"
)

type searcherFactory func(oracle game.Oracle, options ...Option) Searcher

var strategies = map[string]searcherFactory{
	"bfs":  func(o game.Oracle, opts ...Option) Searcher { return NewBreadthFirst(o, opts...) },
	"dls":  func(o game.Oracle, opts ...Option) Searcher { return NewIterativeDeepening(o, opts...) },
	"mcts": func(o game.Oracle, opts ...Option) Searcher { return NewMCTS(o, opts...) },
}

type metered interface {
	LastMetric() metrics.SearchMetric
}

func TestLiveness(t *testing.T) {
	rules := game.NewRules()

	for name, create := range strategies {
		t.Run(name, func(t *testing.T) {
			s := create(rules, WithSeed(7))
			gs := game.NewGameState(11)
			for i := 0; i < 6 && !rules.GameOver(gs); i++ {
				actions := rules.LegalActions(gs, gs.ToMove)
				start := time.Now()
				action := s.ChooseAction(gs, actions, 20*time.Millisecond)
				require.Less(t, time.Since(start), 2*time.Second, "search should return shortly after its budget")
				require.True(t, utils.Contains(actions, action), "chosen action %s must be legal", action)
				gs = rules.Successor(gs, action, gs.ToMove)
			}
		})
	}
}

func TestSingleAction(t *testing.T) {
	for name, create := range strategies {
		t.Run(name, func(t *testing.T) {
			s := create(chainOracle{turns: 3}, WithSeed(1))
			for _, budget := range []time.Duration{0, 10 * time.Millisecond} {
				require.Equal(t, gain, s.ChooseAction(chainState(), []game.Action{gain}, budget))
			}
		})
	}
}

func TestZeroBudget(t *testing.T) {
	rules := game.NewRules()
	gs := game.NewGameState(5)
	actions := rules.LegalActions(gs, 0)

	for name, create := range strategies {
		t.Run(name, func(t *testing.T) {
			s := create(rules, WithSeed(3), WithMetrics())
			action := s.ChooseAction(gs, actions, 0)
			require.True(t, utils.Contains(actions, action))

			m := s.(metered).LastMetric()
			require.Zero(t, m.Iterations, "no search iterations should complete")
			require.True(t, m.Fallback, "zero budget falls back to a random action")
		})
	}

	t.Run("random fallback covers the legal set", func(t *testing.T) {
		s := NewMCTS(rules, WithSeed(9))
		seen := map[game.Action]bool{}
		for i := 0; i < 200; i++ {
			seen[s.ChooseAction(gs, actions, 0)] = true
		}
		require.Greater(t, len(seen), 1, "fallback should not always pick the same action")
	})
}

func TestPrefersScoringAction(t *testing.T) {
	oracle := chainOracle{turns: 2}
	actions := []game.Action{stay, gain}

	t.Run("bfs", func(t *testing.T) {
		s := NewBreadthFirst(oracle, WithSeed(1), WithClock(frozenClock()), WithMetrics())
		require.Equal(t, gain, s.ChooseAction(chainState(), actions, time.Second))
		m := s.LastMetric()
		require.False(t, m.Fallback)
		require.Equal(t, 6, m.Expansions, "two root expansions and two per child")
	})

	t.Run("dls stops once a pass is exhaustive", func(t *testing.T) {
		s := NewIterativeDeepening(oracle, WithSeed(1), WithClock(frozenClock()), WithMetrics())
		require.Equal(t, gain, s.ChooseAction(chainState(), actions, time.Second))
		m := s.LastMetric()
		require.Equal(t, 2, m.Depth)
		require.False(t, m.Fallback)
	})

	t.Run("dls respects max depth", func(t *testing.T) {
		s := NewIterativeDeepening(chainOracle{turns: 50}, WithClock(frozenClock()), WithMaxDepth(3), WithMetrics())
		require.Equal(t, gain, s.ChooseAction(chainState(), actions, time.Second))
		require.Equal(t, 3, s.LastMetric().Depth)
	})

	t.Run("dls keeps the shallower choice on a tie", func(t *testing.T) {
		s := NewIterativeDeepening(detourOracle{}, WithLeaf(eval.AgentScore), WithClock(frozenClock()), WithMetrics())
		require.Equal(t, early, s.ChooseAction(chainState(), []game.Action{late, early}, time.Second),
			"depth 2 ranks late first at the same score and must not replace early")
		m := s.LastMetric()
		require.Equal(t, 2, m.Depth)
		require.False(t, m.Fallback)
	})

	t.Run("dls uses a cut-short first pass", func(t *testing.T) {
		// Clock readings: deadline start, decide check, first pop, second pop.
		// The budget runs out on the second pop of the depth 1 pass.
		s := NewIterativeDeepening(detourOracle{}, WithLeaf(eval.AgentScore), WithClock(steppingClock(time.Millisecond)), WithMetrics())
		require.Equal(t, late, s.ChooseAction(chainState(), []game.Action{late, early}, 3*time.Millisecond),
			"only late was evaluated before the deadline")
		m := s.LastMetric()
		require.Zero(t, m.Depth, "no pass completed")
		require.False(t, m.Fallback, "the partial pass answers instead of a random action")
	})

	t.Run("mcts", func(t *testing.T) {
		s := NewMCTS(oracle, WithSeed(1), WithClock(steppingClock(time.Millisecond)), WithMetrics())
		require.Equal(t, gain, s.ChooseAction(chainState(), actions, 500*time.Millisecond))
		m := s.LastMetric()
		require.Greater(t, m.Iterations, 0)
		require.False(t, m.Fallback)

		qGain, nGain := s.Stat(chainState(), gain)
		qStay, nStay := s.Stat(chainState(), stay)
		require.Positive(t, nGain)
		require.Positive(t, nStay)
		require.Greater(t, qGain, qStay)
	})
}

func TestMCTSVisitCounts(t *testing.T) {
	oracle := chainOracle{turns: 3}
	m := NewMCTS(oracle, WithSeed(2))
	m.table = newTable()
	root := chainState()
	rootKey := root.Key()
	actions := []game.Action{stay, gain}
	d := NewDeadline(frozenClock(), time.Hour)

	for i := 1; i <= 20; i++ {
		before := map[game.Action]int{}
		for _, a := range actions {
			s, _ := m.table.get(edge{rootKey, a})
			before[a] = s.N
		}

		require.True(t, m.simulate(root, rootKey, actions, 0, d))

		total := 0
		for _, a := range actions {
			s, _ := m.table.get(edge{rootKey, a})
			require.Contains(t, []int{before[a], before[a] + 1}, s.N, "N must grow by at most one per backup")
			total += s.N
		}
		require.Equal(t, i, total, "every iteration backs up exactly one root edge")
	}

	t.Run("keys are canonical", func(t *testing.T) {
		q1, n1 := m.Stat(root, gain)
		q2, n2 := m.Stat(root.Copy(), gain)
		require.Equal(t, n1, n2)
		require.Equal(t, q1, q2)
		require.Positive(t, n1)
	})

	t.Run("discounted backup", func(t *testing.T) {
		// A one-turn game: every iteration expands a root action and backs
		// up score * gamma^0.
		m := NewMCTS(chainOracle{turns: 1}, WithSeed(2))
		m.table = newTable()
		for i := 0; i < 4; i++ {
			require.True(t, m.simulate(root, rootKey, actions, 0, d))
		}
		q, n := m.Stat(root, gain)
		require.Positive(t, n)
		require.InDelta(t, 3.0, q, 1e-9)
	})
}

func TestDeadlineAbortsIteration(t *testing.T) {
	m := NewMCTS(chainOracle{turns: 100}, WithSeed(4))
	m.table = newTable()
	root := chainState()
	d := NewDeadline(steppingClock(time.Millisecond), 3*time.Millisecond)

	require.False(t, m.simulate(root, root.Key(), []game.Action{stay, gain}, 0, d), "playout should be cut short")
	_, n := m.Stat(root, gain)
	_, n2 := m.Stat(root, stay)
	require.Zero(t, n+n2, "an aborted iteration backs nothing up")
}
