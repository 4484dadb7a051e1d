package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/meta"
	"splendor/searcher/agent"
	"splendor/utils"
)

// MetricSource is implemented by agents that can report how their last
// decision went.
type MetricSource interface {
	LastMetric() metrics.SearchMetric
}

type Local struct {
	State    *game.GameState
	Rules    *game.Rules
	Agents   []agent.Agent
	Sources  []MetricSource // per agent, nil when the agent reports nothing
	MaxTurns int
}

// LocalEngine seats agents in order on state. Agent i plays as agent i of
// the game state.
func LocalEngine(state *game.GameState, rules *game.Rules, agents []agent.Agent) *Local {
	if len(agents) != len(state.Agents) {
		panic("number of agents does not match the game state")
	}
	if len(agents) < 2 {
		panic("need at least two agents")
	}
	sources := make([]MetricSource, len(agents))
	for i, a := range agents {
		if source, ok := a.(MetricSource); ok {
			sources[i] = source
		}
	}
	return &Local{
		State:    state,
		Rules:    rules,
		Agents:   agents,
		Sources:  sources,
		MaxTurns: meta.MaxTurns,
	}
}

func (e *Local) Run() (int, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingAgent: e.State.ToMove,
		StartTime:     time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("agent %d is starting", e.State.ToMove)

	for step := 1; !e.Rules.GameOver(e.State) && step <= e.MaxTurns; step++ {
		current := e.State.ToMove
		actions := e.Rules.LegalActions(e.State, current)

		action := e.Agents[current].SelectAction(actions, e.State.Copy())
		if !utils.Contains(actions, action) {
			log.Warn().Int("agent", current).Msgf("invalid action %s, playing the first legal action instead", action)
			action = actions[0]
			gameMetric.Invalid++
		}

		mm := metrics.MoveMetric{Step: step, Agent: current, Action: action.String()}
		if source := e.Sources[current]; source != nil {
			mm.SearchMetric = source.LastMetric()
		}
		moveMetrics = append(moveMetrics, mm)

		e.State = e.Rules.Successor(e.State, action, current)
		gameMetric.TotalMoves++
	}

	winner := -1
	if e.Rules.GameOver(e.State) {
		winner = e.Rules.Winner(e.State)
		log.Info().Msgf("game over after %d moves, winner: %d", gameMetric.TotalMoves, winner)
	} else {
		log.Info().Msgf("stopped after %d moves without a winner", gameMetric.TotalMoves)
	}

	gameMetric.Winner = winner
	for i := range e.State.Agents {
		gameMetric.Scores = append(gameMetric.Scores, e.Rules.Score(e.State, i))
	}
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	return winner, gameMetric, moveMetrics
}
