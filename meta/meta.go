// meta/meta.go
package meta

import "time"

// ThinkTime is the default wall-clock budget for one decision.
const ThinkTime = 900 * time.Millisecond

// MCTSGamma discounts playout rewards per step away from the terminal state.
const MCTSGamma = 0.3

// EpsilonFloor is the exploration rate MCTS decays to as the deadline nears.
const EpsilonFloor = 0.1

// Cutoff bounds the number of plies in one MCTS playout.
const Cutoff = 100

// TDGamma discounts the best next action's value in the weight update.
const TDGamma = 0.4

// Alpha is the learning rate of the weight update.
const Alpha = 0.1

// Epsilon is the probability a training agent exploits rather than explores.
const Epsilon = 0.9

// MaxTurns caps the length of a locally run game.
const MaxTurns = 300
