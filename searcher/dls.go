package searcher

import (
	"math"
	"time"

	"splendor/eval"
	"splendor/game"
)

// IterativeDeepening runs depth-limited passes of increasing depth until
// the deadline, keeping the best root action of the deepest completed pass
// that improved on the previous ones.
type IterativeDeepening struct {
	settings
	oracle game.Oracle
}

func NewIterativeDeepening(oracle game.Oracle, options ...Option) *IterativeDeepening {
	if oracle == nil {
		panic("searcher: nil oracle")
	}
	s := defaultSettings()
	s.leaf = eval.ScoreWithNobles
	s.prune = PruneWealthyCollectSame

	id := &IterativeDeepening{settings: s, oracle: oracle}
	for _, option := range options {
		option(&id.settings)
	}
	return id
}

func (id *IterativeDeepening) ChooseAction(state *game.GameState, actions []game.Action, budget time.Duration) game.Action {
	return id.decide("dls", actions, budget, func(d Deadline) (game.Action, bool) {
		return id.search(state, actions, d)
	})
}

func (id *IterativeDeepening) search(root *game.GameState, actions []game.Action, d Deadline) (game.Action, bool) {
	agent := root.ToMove
	candidates := id.candidates(root, actions, agent)

	var best game.Action
	bestScore := math.Inf(-1)
	found := false

	for depth := 1; id.maxDepth == 0 || depth <= id.maxDepth; depth++ {
		result := id.pass(root, candidates, agent, depth, d)
		i := result.best()
		if !result.complete {
			// A cut-short pass only counts when nothing has completed yet.
			if !found && i >= 0 {
				best, found = candidates[i], true
			}
			break
		}

		id.metrics.SetDepth(depth)
		if i >= 0 && (!found || result.scores[i] > bestScore) {
			best, bestScore, found = candidates[i], result.scores[i], true
		}
		if result.exhaustive {
			break
		}
	}
	return best, found
}

// candidates filters actions through the shortlist and pruning hook. An empty
// shortlist means the full set.
func (id *IterativeDeepening) candidates(state *game.GameState, actions []game.Action, agent int) []game.Action {
	shortlist := DepthFirstShortlist(state, actions, agent)
	if len(shortlist) == 0 {
		shortlist = actions
	}
	return id.pruned(state, shortlist, agent)
}

// frame is a pending node on the work stack. Its state is produced lazily
// from the parent when popped.
type frame struct {
	parent    *game.GameState
	action    game.Action
	remaining int
	root      int
}

type passResult struct {
	scores     []float64
	seen       []bool
	complete   bool
	exhaustive bool
}

// best returns the index of the highest scoring root seen, or -1.
func (r passResult) best() int {
	best := -1
	for i := range r.scores {
		if r.seen[i] && (best < 0 || r.scores[i] > r.scores[best]) {
			best = i
		}
	}
	return best
}

// pass runs one depth-limited search below root. The score of a root action
// is the best leaf value found beneath it.
func (id *IterativeDeepening) pass(root *game.GameState, roots []game.Action, agent, depth int, d Deadline) passResult {
	result := passResult{
		scores:     make([]float64, len(roots)),
		seen:       make([]bool, len(roots)),
		exhaustive: true,
	}

	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{parent: root, action: roots[i], remaining: depth - 1, root: i})
	}

	for len(stack) > 0 {
		if d.Expired() {
			return result
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		id.metrics.AddIteration()

		state := id.oracle.Successor(f.parent, f.action, agent)
		id.metrics.AddExpansion()

		var children []game.Action
		if !id.oracle.GameOver(state) && state.Agents[agent].Score < id.winningScore {
			if f.remaining == 0 {
				result.exhaustive = false
			} else {
				children = id.candidates(state, id.oracle.LegalActions(state, agent), agent)
			}
		}

		if len(children) == 0 {
			score := id.leaf(state, agent)
			if !result.seen[f.root] || score > result.scores[f.root] {
				result.scores[f.root] = score
				result.seen[f.root] = true
			}
			continue
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{parent: state, action: children[i], remaining: f.remaining - 1, root: f.root})
		}
	}

	result.complete = true
	return result
}
