package searcher

import (
	"math"
	"time"

	"splendor/game"
)

// MCTS runs ε-greedy Monte Carlo tree search with random playouts over the
// acting agent's own moves. The Q/N table lives for one decision.
type MCTS struct {
	settings
	oracle game.Oracle
	table  *table
}

func NewMCTS(oracle game.Oracle, options ...Option) *MCTS {
	if oracle == nil {
		panic("searcher: nil oracle")
	}
	m := &MCTS{settings: defaultSettings(), oracle: oracle}
	for _, option := range options {
		option(&m.settings)
	}
	return m
}

func (m *MCTS) ChooseAction(state *game.GameState, actions []game.Action, budget time.Duration) game.Action {
	m.table = newTable()
	return m.decide("mcts", actions, budget, func(d Deadline) (game.Action, bool) {
		return m.search(state, actions, d)
	})
}

type step struct {
	key    game.StateKey
	action game.Action
}

func (m *MCTS) search(root *game.GameState, actions []game.Action, d Deadline) (game.Action, bool) {
	agent := root.ToMove
	rootKey := root.Key()

	for !d.Expired() {
		if !m.simulate(root, rootKey, actions, agent, d) {
			break
		}
		m.metrics.AddIteration()
	}
	return m.table.best(rootKey, actions)
}

// simulate runs one select, expand, playout and backup iteration. It returns
// false when the deadline cut it short, in which case nothing is backed up.
func (m *MCTS) simulate(root *game.GameState, rootKey game.StateKey, rootActions []game.Action, agent int, d Deadline) bool {
	state, key, actions := root, rootKey, rootActions
	var path []step

	// Selection while every action of the current state has been tried.
	for len(m.table.unexpanded(key, actions)) == 0 && !m.finished(state, agent) && len(actions) > 0 {
		if d.Expired() {
			return false
		}
		epsilon := max(m.epsilonFloor, 1-d.Fraction())
		var action game.Action
		if m.rng.Float64() < 1-epsilon {
			best, ok := m.table.best(key, actions)
			if !ok {
				best = m.random(actions)
			}
			action = best
		} else {
			action = m.random(actions)
		}
		path = append(path, step{key, action})
		state = m.oracle.Successor(state, action, agent)
		key = state.Key()
		actions = m.oracle.LegalActions(state, agent)
	}

	// Expansion.
	if unexpanded := m.table.unexpanded(key, actions); len(unexpanded) > 0 && !m.finished(state, agent) {
		if d.Expired() {
			return false
		}
		action := unexpanded[m.rng.Intn(len(unexpanded))]
		m.table.markExpanded(key, action)
		m.metrics.AddExpansion()
		path = append(path, step{key, action})
		state = m.oracle.Successor(state, action, agent)
		actions = m.oracle.LegalActions(state, agent)
	}

	// Playout.
	length := 0
	for !m.finished(state, agent) && len(actions) > 0 && length < m.cutoff {
		if d.Expired() {
			return false
		}
		state = m.oracle.Successor(state, m.random(actions), agent)
		actions = m.oracle.LegalActions(state, agent)
		length++
	}
	m.metrics.AddRollout()

	// Backup.
	value := float64(m.oracle.Score(state, agent)) * math.Pow(m.gamma, float64(length))
	for i := len(path) - 1; i >= 0; i-- {
		m.table.update(edge{path[i].key, path[i].action}, value)
		value *= m.gamma
	}
	return true
}

func (m *MCTS) finished(state *game.GameState, agent int) bool {
	return m.oracle.Score(state, agent) >= m.winningScore || m.oracle.GameOver(state)
}

// Stat returns the recorded visit count and value of action from state during
// the last decision.
func (m *MCTS) Stat(state *game.GameState, action game.Action) (q float64, n int) {
	if m.table == nil {
		return 0, 0
	}
	s, _ := m.table.get(edge{state.Key(), action})
	return s.Q, s.N
}
