package game

// Oracle is the rules engine consulted by the search. Implementations never
// mutate the state they are given; Successor returns a fresh copy.
type Oracle interface {
	LegalActions(state *GameState, agent int) []Action
	Successor(state *GameState, action Action, agent int) *GameState
	Score(state *GameState, agent int) int
	GameOver(state *GameState) bool
}

const (
	NumAgents    = 2
	NumTiers     = 3
	DealtPerTier = 4
	WinningScore = 15
	MaxGems      = 10
	MaxReserved  = 3
	NumNobles    = NumAgents + 1
	NoblePoints  = 3
)

// StateKey is a canonical digest of a state's content. Two states with the
// same gems, cards, scores and board share a key regardless of move order.
type StateKey [16]byte
