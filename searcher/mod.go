package searcher

import (
	"time"

	"splendor/game"
)

// Searcher picks an action for the agent to move in state. It must return a
// member of actions, within budget up to one in-flight evaluation, even when
// the budget is zero.
type Searcher interface {
	ChooseAction(state *game.GameState, actions []game.Action, budget time.Duration) game.Action
}
