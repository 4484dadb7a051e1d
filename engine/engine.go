package engine

import "splendor/experiments/metrics"

// Engine runs one game to completion.
type Engine interface {
	// Run plays until the game is over or the turn cap is reached. The
	// winner is -1 on a draw or an unfinished game.
	Run() (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
