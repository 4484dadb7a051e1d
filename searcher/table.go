package searcher

import "splendor/game"

// edge keys the Q/N table by canonical state and action.
type edge struct {
	state  game.StateKey
	action game.Action
}

type stat struct {
	Q float64
	N int
}

// table holds running action values and the actions already expanded per
// state.
type table struct {
	stats    map[edge]*stat
	expanded map[game.StateKey]map[game.Action]bool
}

func newTable() *table {
	return &table{
		stats:    map[edge]*stat{},
		expanded: map[game.StateKey]map[game.Action]bool{},
	}
}

// update folds value into the running mean for e: N++, Q += (value-Q)/N.
func (t *table) update(e edge, value float64) {
	s, ok := t.stats[e]
	if !ok {
		s = &stat{}
		t.stats[e] = s
	}
	s.N++
	s.Q += (value - s.Q) / float64(s.N)
}

func (t *table) get(e edge) (stat, bool) {
	s, ok := t.stats[e]
	if !ok {
		return stat{}, false
	}
	return *s, true
}

// unexpanded returns the actions of key not yet expanded, in order.
func (t *table) unexpanded(key game.StateKey, actions []game.Action) []game.Action {
	done := t.expanded[key]
	if len(done) == 0 {
		return actions
	}
	out := make([]game.Action, 0, len(actions))
	for _, a := range actions {
		if !done[a] {
			out = append(out, a)
		}
	}
	return out
}

func (t *table) markExpanded(key game.StateKey, action game.Action) {
	done, ok := t.expanded[key]
	if !ok {
		done = map[game.Action]bool{}
		t.expanded[key] = done
	}
	done[action] = true
}

// best returns the action of key with the highest Q. ok is false when none
// of actions has an entry.
func (t *table) best(key game.StateKey, actions []game.Action) (best game.Action, ok bool) {
	var bestQ float64
	for _, a := range actions {
		s, found := t.stats[edge{key, a}]
		if found && (!ok || s.Q > bestQ) {
			best, bestQ, ok = a, s.Q, true
		}
	}
	return best, ok
}
