package searcher

import (
	"time"

	"github.com/rs/zerolog/log"

	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/utils"
)

// decide wraps one search with the behaviour every strategy shares: single
// actions are returned at once, the search result must be a member of
// actions, and anything else falls back to a uniformly random action.
func (s *settings) decide(strategy string, actions []game.Action, budget time.Duration, search func(d Deadline) (game.Action, bool)) game.Action {
	s.metrics.Start(strategy, budget)

	var (
		action   game.Action
		fallback bool
	)
	switch len(actions) {
	case 0:
		action, fallback = game.Action{Type: game.Pass}, true
	case 1:
		action = actions[0]
	default:
		d := NewDeadline(s.clock, budget)
		found := false
		if !d.Expired() {
			action, found = search(d)
		}
		if !found || !utils.Contains(actions, action) {
			action, fallback = s.random(actions), true
		}
	}

	s.metrics.SetFallback(fallback)
	m := s.metrics.Complete()
	log.Debug().
		Str("strategy", strategy).
		Int("iterations", m.Iterations).
		Int("depth", m.Depth).
		Bool("fallback", fallback).
		Dur("elapsed", m.Duration).
		Msgf("chose %s", action)
	s.last = m
	return action
}

func (s *settings) random(actions []game.Action) game.Action {
	return actions[s.rng.Intn(len(actions))]
}

// LastMetric returns the metrics of the most recent decision. It is empty
// unless the searcher was built with WithMetrics or WithCollector.
func (s *settings) LastMetric() metrics.SearchMetric {
	return s.last
}
