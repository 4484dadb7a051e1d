package agent

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"splendor/config"
	"splendor/eval"
	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/learn"
	"splendor/searcher"
	"splendor/weights"
)

// New builds the agent described by cfg. The returned close function
// releases any weight store the agent opened.
func New(cfg config.Config, oracle game.Oracle, collector metrics.Collector) (Agent, func() error, error) {
	noop := func() error { return nil }
	if err := cfg.Validate(); err != nil {
		return nil, noop, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	options := []searcher.Option{
		searcher.WithSeed(seed),
		searcher.WithCollector(collector),
		searcher.WithCutoff(cfg.Cutoff),
		searcher.WithMaxDepth(cfg.MaxDepth),
		searcher.WithGamma(cfg.MCTSGamma),
		searcher.WithEpsilonFloor(cfg.EpsilonFloor),
		searcher.WithWinningScore(cfg.WinningScore),
	}

	switch cfg.Strategy {
	case config.StrategyBFS:
		return NewSearchAgent(searcher.NewBreadthFirst(oracle, options...), cfg.ThinkTime), noop, nil
	case config.StrategyDLS:
		return NewSearchAgent(searcher.NewIterativeDeepening(oracle, options...), cfg.ThinkTime), noop, nil
	case config.StrategyMCTS:
		return NewSearchAgent(searcher.NewMCTS(oracle, options...), cfg.ThinkTime), noop, nil
	case config.StrategyRandom:
		return NewRandomAgent(seed), noop, nil
	}

	store, closeStore, err := OpenStore(cfg.Weights)
	if err != nil {
		return nil, noop, err
	}
	selected := cfg.Features
	if len(selected) == 0 {
		selected = eval.AllFeatures()
	}
	linear := eval.NewLinear(oracle, selected, weights.LoadOrDefault(store, len(selected)))
	log.Debug().Str("strategy", cfg.Strategy).Ints("features", linear.Selected()).Msg("linear evaluator ready")

	if cfg.Strategy == config.StrategyGreedy {
		return NewGreedyAgent(linear, cfg.ThinkTime, seed), closeStore, nil
	}

	updaterOptions := []learn.Option{learn.WithAlpha(cfg.Alpha), learn.WithGamma(cfg.Gamma)}
	if cfg.TrendPath != "" {
		trend, err := weights.OpenTrendLog(cfg.TrendPath)
		if err != nil {
			closeStore()
			return nil, noop, err
		}
		log.Info().Str("path", trend.Path()).Int("episode", trend.Episode()).Msg("appending weight trend")
		updaterOptions = append(updaterOptions, learn.WithTrend(trend))
	}
	updater := learn.NewUpdater(oracle, linear, store, updaterOptions...)
	return NewTrainingAgent(linear, updater, cfg.Epsilon, cfg.ThinkTime, seed), closeStore, nil
}

// OpenStore opens the weight store cfg names.
func OpenStore(cfg config.WeightsConfig) (weights.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case config.BackendJSON:
		store := weights.NewFileStore(cfg.Path)
		log.Debug().Str("path", store.Path()).Msg("using json weights file")
		return store, noop, nil
	case config.BackendMemory:
		return weights.NewMemoryStore(nil), noop, nil
	case config.BackendBadger:
		store, err := weights.OpenBadgerStore(cfg.Path, cfg.Name)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	}
	return nil, noop, errors.Errorf("unknown weights backend %q", cfg.Backend)
}
