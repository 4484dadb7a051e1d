package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNewGameState(t *testing.T) {
	gs := NewGameState(7)

	require.Len(t, gs.Agents, NumAgents, "Should create two agents")
	for tier := 0; tier < NumTiers; tier++ {
		require.Len(t, gs.Board.Dealt[tier], DealtPerTier, "Should deal a full row per tier")
	}
	require.Len(t, gs.Board.Decks[0], 40-DealtPerTier, "Tier 1 deck should hold the undealt cards")
	require.Len(t, gs.Board.Decks[1], 30-DealtPerTier, "Tier 2 deck should hold the undealt cards")
	require.Len(t, gs.Board.Decks[2], 20-DealtPerTier, "Tier 3 deck should hold the undealt cards")
	require.Len(t, gs.Board.Nobles, NumNobles, "Should reveal one noble more than agents")
	require.Equal(t, Gems{4, 4, 4, 4, 4, 5}, gs.Board.Bank, "Bank should hold 4 of each colour and 5 gold")
}

func TestCopy(t *testing.T) {
	t.Run("mutating the copy leaves the original untouched", func(t *testing.T) {
		gs := NewGameState(1)
		before := gs.Copy()

		cp := gs.Copy()
		cp.Agents[0].Gems[Red] = 3
		cp.Agents[0].Cards = append(cp.Agents[0].Cards, gs.Board.Dealt[0][0])
		cp.Board.Dealt[0][0] = Card{}
		cp.Board.Nobles[0] = Noble{}
		cp.Board.Bank[Red] = 1

		require.Empty(t, cmp.Diff(before, gs), "Original should not change when the copy does")
	})

	t.Run("copy is equal to the original", func(t *testing.T) {
		gs := NewGameState(2)
		require.Empty(t, cmp.Diff(gs, gs.Copy()))
	})
}

func TestKey(t *testing.T) {
	t.Run("same content from distinct objects", func(t *testing.T) {
		require.Equal(t, NewGameState(3).Key(), NewGameState(3).Key(),
			"Independently built identical states should share a key")
	})

	t.Run("order of owned cards does not matter", func(t *testing.T) {
		gs := NewGameState(3)
		c1, c2 := gs.Board.Dealt[0][0], gs.Board.Dealt[0][1]

		a := gs.Copy()
		a.Agents[0].Cards = []Card{c1, c2}
		b := gs.Copy()
		b.Agents[0].Cards = []Card{c2, c1}

		require.Equal(t, a.Key(), b.Key(), "Card order should not change the key")
	})

	t.Run("different gems give different keys", func(t *testing.T) {
		gs := NewGameState(3)
		other := gs.Copy()
		other.Agents[1].Gems[Blue] = 1

		require.NotEqual(t, gs.Key(), other.Key())
	})

	t.Run("agent to move is part of the key", func(t *testing.T) {
		gs := NewGameState(3)
		other := gs.Copy()
		other.ToMove = 1

		require.NotEqual(t, gs.Key(), other.Key())
	})
}

func TestValidate(t *testing.T) {
	rules := NewRules()
	gs := NewGameState(4)
	require.NoError(t, gs.Validate())
	for i := 0; i < 10; i++ {
		gs = rules.Successor(gs, rules.LegalActions(gs, gs.ToMove)[0], gs.ToMove)
		require.NoError(t, gs.Validate(), "successor states stay valid")
	}

	cases := map[string]func(gs *GameState){
		"negative dealt tier":   func(gs *GameState) { gs.Board.Dealt[0][0].Tier = -1 },
		"card in the wrong row": func(gs *GameState) { gs.Board.Dealt[1][0].Tier = 3 },
		"deck tier":             func(gs *GameState) { gs.Board.Decks[2][0].Tier = 9 },
		"colour out of range":   func(gs *GameState) { gs.Board.Dealt[0][1].Colour = NumColours },
		"reserved tier":         func(gs *GameState) { gs.Agents[0].Reserved = []Card{{ID: 3, Tier: 0}} },
		"agent to move":         func(gs *GameState) { gs.ToMove = 2 },
		"one agent":             func(gs *GameState) { gs.Agents = gs.Agents[:1] },
	}
	for name, corrupt := range cases {
		t.Run(name, func(t *testing.T) {
			bad := NewGameState(4)
			corrupt(bad)
			require.Error(t, bad.Validate())
		})
	}
}
