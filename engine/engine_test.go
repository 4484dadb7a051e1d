package engine

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"splendor/game"
	"splendor/searcher"
	"splendor/searcher/agent"
)

type illegalAgent struct{}

func (illegalAgent) SelectAction([]game.Action, *game.GameState) game.Action {
	return game.Action{Type: game.BuyReserve, Card: game.Card{ID: 999}}
}

func TestLocalEngine(t *testing.T) {
	rules := game.NewRules()

	t.Run("random agents finish or hit the cap", func(t *testing.T) {
		e := LocalEngine(game.NewGameState(1), rules, []agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)})
		e.MaxTurns = 400
		winner, gm, moves := e.Run()

		require.Len(t, moves, gm.TotalMoves)
		require.Len(t, gm.Scores, 2)
		require.LessOrEqual(t, gm.TotalMoves, 400)
		require.Contains(t, []int{-1, 0, 1}, winner)
		require.Equal(t, winner, gm.Winner)
		for i, mm := range moves {
			require.Equal(t, i+1, mm.Step)
			require.Equal(t, i%2, mm.Agent, "agents alternate")
		}
	})

	t.Run("invalid actions fall back to the first legal action", func(t *testing.T) {
		e := LocalEngine(game.NewGameState(2), rules, []agent.Agent{illegalAgent{}, agent.NewRandomAgent(2)})
		e.MaxTurns = 4
		_, gm, moves := e.Run()

		require.Equal(t, 2, gm.Invalid)
		first := rules.LegalActions(game.NewGameState(2), 0)[0]
		require.Equal(t, first.String(), moves[0].Action)
	})

	t.Run("turn cap", func(t *testing.T) {
		e := LocalEngine(game.NewGameState(3), rules, []agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)})
		e.MaxTurns = 3
		winner, gm, _ := e.Run()
		require.Equal(t, -1, winner)
		require.Equal(t, 3, gm.TotalMoves)
	})

	t.Run("search metrics are attached", func(t *testing.T) {
		dls := searcher.NewIterativeDeepening(rules, searcher.WithSeed(1), searcher.WithMetrics())
		e := LocalEngine(game.NewGameState(4), rules, []agent.Agent{
			agent.NewSearchAgent(dls, 5*time.Millisecond),
			agent.NewRandomAgent(2),
		})
		e.MaxTurns = 2
		_, _, moves := e.Run()

		require.Equal(t, "dls", moves[0].Strategy)
		require.Empty(t, moves[1].Strategy)
	})

	t.Run("mismatched seats panic", func(t *testing.T) {
		require.Panics(t, func() {
			LocalEngine(game.NewGameState(1), rules, []agent.Agent{agent.NewRandomAgent(1)})
		})
	})
}

func TestRemoteAgent(t *testing.T) {
	rules := game.NewRules()
	server := httptest.NewServer(agent.NewServer(agent.NewRandomAgent(7), rules, false))
	defer server.Close()

	gs := game.NewGameState(6)
	actions := rules.LegalActions(gs, gs.ToMove)

	t.Run("remote decision", func(t *testing.T) {
		remote := NewRemoteAgent(server.URL, time.Second)
		require.Contains(t, actions, remote.SelectAction(actions, gs))
	})

	t.Run("unreachable server falls back", func(t *testing.T) {
		remote := NewRemoteAgent("http://127.0.0.1:1", 100*time.Millisecond)
		require.Equal(t, actions[0], remote.SelectAction(actions, gs))
	})

	t.Run("full game against a remote agent", func(t *testing.T) {
		e := LocalEngine(game.NewGameState(6), rules, []agent.Agent{
			NewRemoteAgent(server.URL, time.Second),
			agent.NewRandomAgent(8),
		})
		e.MaxTurns = 10
		_, gm, _ := e.Run()
		require.Zero(t, gm.Invalid)
		require.Equal(t, 10, gm.TotalMoves)
	})
}
