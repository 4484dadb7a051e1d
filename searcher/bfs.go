package searcher

import (
	"math"
	"time"

	"splendor/game"
	"splendor/utils"
)

// maxFrontier bounds the breadth-first queue. Once reached, states are still
// evaluated but no longer enqueued.
const maxFrontier = 1 << 16

// BreadthFirst expands a root shortlist level by level and keeps the first
// action of the best-scoring path seen so far.
type BreadthFirst struct {
	settings
	oracle game.Oracle
}

func NewBreadthFirst(oracle game.Oracle, options ...Option) *BreadthFirst {
	if oracle == nil {
		panic("searcher: nil oracle")
	}
	b := &BreadthFirst{settings: defaultSettings(), oracle: oracle}
	for _, option := range options {
		option(&b.settings)
	}
	return b
}

func (b *BreadthFirst) ChooseAction(state *game.GameState, actions []game.Action, budget time.Duration) game.Action {
	return b.decide("bfs", actions, budget, func(d Deadline) (game.Action, bool) {
		return b.search(state, actions, d)
	})
}

type path struct {
	state *game.GameState
	first game.Action
	depth int
}

func (b *BreadthFirst) search(root *game.GameState, actions []game.Action, d Deadline) (game.Action, bool) {
	agent := root.ToMove
	shortlist := BreadthFirstShortlist(root, actions, agent, b.rng)

	var best game.Action
	bestScore := math.Inf(-1)
	found := false

	queue := []path{{state: root}}
	for len(queue) > 0 && !d.Expired() {
		current := queue[0]
		queue = queue[1:]
		b.metrics.AddIteration()

		legal := actions
		if current.depth > 0 {
			legal = b.oracle.LegalActions(current.state, agent)
		}
		for _, action := range legal {
			if !utils.Contains(shortlist, action) {
				continue
			}
			if d.Expired() {
				break
			}

			next := b.oracle.Successor(current.state, action, agent)
			b.metrics.AddExpansion()
			first := current.first
			if current.depth == 0 {
				first = action
			}

			if score := b.leaf(next, agent); score > bestScore {
				best, bestScore, found = first, score, true
			}

			if b.oracle.GameOver(next) || len(queue) >= maxFrontier {
				continue
			}
			if b.maxDepth > 0 && current.depth+1 >= b.maxDepth {
				continue
			}
			queue = append(queue, path{state: next, first: first, depth: current.depth + 1})
		}
	}
	return best, found
}
