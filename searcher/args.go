package searcher

import (
	"time"

	"golang.org/x/exp/rand"

	"splendor/eval"
	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/meta"
)

// Prune reports whether a branch should be skipped. It only narrows the
// branching factor; the unpruned set is used when everything is pruned.
type Prune func(state *game.GameState, action game.Action, agent int) bool

// PruneWealthyCollectSame skips collecting two of a kind once the agent
// already holds more than seven gems.
func PruneWealthyCollectSame(state *game.GameState, action game.Action, agent int) bool {
	return action.Type == game.CollectSame && state.Agents[agent].Gems.Total() > 7
}

type Option func(s *settings)

type settings struct {
	rng          *rand.Rand
	clock        func() time.Time
	metrics      metrics.Collector
	cutoff       int
	maxDepth     int
	gamma        float64
	epsilonFloor float64
	winningScore int
	leaf         eval.Leaf
	prune        Prune
	last         metrics.SearchMetric
}

func defaultSettings() settings {
	return settings{
		rng:          rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		clock:        time.Now,
		metrics:      metrics.NewDummyCollector(),
		cutoff:       meta.Cutoff,
		gamma:        meta.MCTSGamma,
		epsilonFloor: meta.EpsilonFloor,
		winningScore: game.WinningScore,
		leaf:         eval.AgentScore,
	}
}

func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithClock replaces the wall clock used for deadlines.
func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = metrics.NewCollector()
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(s *settings) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

// WithCutoff bounds MCTS playouts to depth plies.
func WithCutoff(depth int) Option {
	return func(s *settings) {
		if depth > 0 {
			s.cutoff = depth
		}
	}
}

// WithMaxDepth caps iterative deepening and the breadth-first horizon.
// Zero leaves them bounded by the deadline only.
func WithMaxDepth(depth int) Option {
	return func(s *settings) {
		if depth >= 0 {
			s.maxDepth = depth
		}
	}
}

func WithGamma(gamma float64) Option {
	return func(s *settings) {
		if gamma > 0 && gamma <= 1 {
			s.gamma = gamma
		}
	}
}

func WithEpsilonFloor(floor float64) Option {
	return func(s *settings) {
		if floor >= 0 && floor <= 1 {
			s.epsilonFloor = floor
		}
	}
}

func WithWinningScore(score int) Option {
	return func(s *settings) {
		if score > 0 {
			s.winningScore = score
		}
	}
}

// WithLeaf sets the static evaluation used at the search horizon.
func WithLeaf(leaf eval.Leaf) Option {
	return func(s *settings) {
		if leaf != nil {
			s.leaf = leaf
		}
	}
}

func WithPruning(prune Prune) Option {
	return func(s *settings) {
		s.prune = prune
	}
}
