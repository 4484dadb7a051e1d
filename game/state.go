package game

import (
	"encoding/binary"
	"hash/fnv"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// AgentState holds one agent's holdings.
type AgentState struct {
	ID       int
	Gems     Gems
	Cards    []Card
	Reserved []Card
	Nobles   []Noble
	Score    int
}

// Bonuses counts purchased cards per colour.
func (a AgentState) Bonuses() Gems {
	var bonuses Gems
	for _, card := range a.Cards {
		bonuses[card.Colour]++
	}
	return bonuses
}

// Board holds the shared part of the state. Dealt rows have DealtPerTier
// slots; an empty slot holds the zero Card.
type Board struct {
	Bank   Gems
	Dealt  [NumTiers][]Card
	Decks  [NumTiers][]Card
	Nobles []Noble
}

// DealtCards returns the face-up cards of all tiers, skipping empty slots.
func (b Board) DealtCards() []Card {
	cards := make([]Card, 0, NumTiers*DealtPerTier)
	for _, row := range b.Dealt {
		for _, card := range row {
			if !card.IsZero() {
				cards = append(cards, card)
			}
		}
	}
	return cards
}

// GameState is the full game state. Treat it as immutable once shared:
// the rules always produce a new state through Copy.
type GameState struct {
	Board  Board
	Agents []AgentState
	ToMove int
	Turn   int // plies played so far
	Passes int // consecutive passes
}

// NewGameState deals a fresh two-agent game from a seeded deck.
func NewGameState(seed uint64) *GameState {
	rng := rand.New(rand.NewSource(seed))
	decks, nobles := StandardDeck()

	gs := &GameState{Agents: make([]AgentState, NumAgents)}
	for i := range gs.Agents {
		gs.Agents[i].ID = i
	}
	for _, c := range Colours {
		gs.Board.Bank[c] = 4
	}
	gs.Board.Bank[Yellow] = 5

	for tier := range decks {
		deck := decks[tier]
		rng.Shuffle(len(deck), func(i, j int) {
			deck[i], deck[j] = deck[j], deck[i]
		})
		gs.Board.Dealt[tier] = make([]Card, DealtPerTier)
		for slot := 0; slot < DealtPerTier && len(deck) > 0; slot++ {
			gs.Board.Dealt[tier][slot] = deck[0]
			deck = deck[1:]
		}
		gs.Board.Decks[tier] = deck
	}

	rng.Shuffle(len(nobles), func(i, j int) {
		nobles[i], nobles[j] = nobles[j], nobles[i]
	})
	gs.Board.Nobles = append([]Noble(nil), nobles[:NumNobles]...)
	return gs
}

// Copy returns an independent copy. Decks are shared structurally: they are
// only ever re-sliced, never written.
func (gs *GameState) Copy() *GameState {
	cp := &GameState{
		Board: Board{
			Bank:   gs.Board.Bank,
			Decks:  gs.Board.Decks,
			Nobles: append([]Noble(nil), gs.Board.Nobles...),
		},
		Agents: make([]AgentState, len(gs.Agents)),
		ToMove: gs.ToMove,
		Turn:   gs.Turn,
		Passes: gs.Passes,
	}
	for tier, row := range gs.Board.Dealt {
		cp.Board.Dealt[tier] = append([]Card(nil), row...)
	}
	for i, agent := range gs.Agents {
		cp.Agents[i] = AgentState{
			ID:       agent.ID,
			Gems:     agent.Gems,
			Cards:    append([]Card(nil), agent.Cards...),
			Reserved: append([]Card(nil), agent.Reserved...),
			Nobles:   append([]Noble(nil), agent.Nobles...),
			Score:    agent.Score,
		}
	}
	return cp
}

// Opponent returns the other agent of a two-agent game.
func (gs *GameState) Opponent(agent int) int {
	return (agent + 1) % len(gs.Agents)
}

// Key canonicalises the state content. Card sets whose order carries no
// meaning (owned, reserved, face-up rows, nobles) are sorted first; deck
// order is kept since it decides future deals.
func (gs *GameState) Key() StateKey {
	hasher := fnv.New128a()

	writeInt := func(v int) {
		binary.Write(hasher, binary.LittleEndian, int64(v))
	}
	writeGems := func(g Gems) {
		for _, n := range g {
			writeInt(n)
		}
	}
	writeCardSet := func(cards []Card) {
		ids := make([]int, 0, len(cards))
		for _, c := range cards {
			if !c.IsZero() {
				ids = append(ids, c.ID)
			}
		}
		sort.Ints(ids)
		writeInt(len(ids))
		for _, id := range ids {
			writeInt(id)
		}
	}
	writeNobleSet := func(nobles []Noble) {
		ids := make([]int, 0, len(nobles))
		for _, n := range nobles {
			ids = append(ids, n.ID)
		}
		sort.Ints(ids)
		writeInt(len(ids))
		for _, id := range ids {
			writeInt(id)
		}
	}

	writeInt(gs.ToMove)
	writeInt(gs.Passes)
	for _, agent := range gs.Agents {
		writeGems(agent.Gems)
		writeInt(agent.Score)
		writeCardSet(agent.Cards)
		writeCardSet(agent.Reserved)
		writeNobleSet(agent.Nobles)
	}

	writeGems(gs.Board.Bank)
	for tier := range gs.Board.Dealt {
		writeCardSet(gs.Board.Dealt[tier])
		writeInt(len(gs.Board.Decks[tier]))
		for _, card := range gs.Board.Decks[tier] {
			writeInt(card.ID)
		}
	}
	writeNobleSet(gs.Board.Nobles)

	var key StateKey
	copy(key[:], hasher.Sum(nil))
	return key
}

// Validate checks the invariants the rules index by: agent count, the agent
// to move, card tiers matching their rows and colours in range. States built
// by NewGameState and Successor always pass; it guards decoded states.
func (gs *GameState) Validate() error {
	if len(gs.Agents) != NumAgents {
		return errors.Errorf("expected %d agents, got %d", NumAgents, len(gs.Agents))
	}
	if gs.ToMove < 0 || gs.ToMove >= len(gs.Agents) {
		return errors.Errorf("agent to move %d out of range", gs.ToMove)
	}
	for tier := range gs.Board.Dealt {
		for _, card := range gs.Board.Dealt[tier] {
			if card.IsZero() {
				continue
			}
			if err := validCard(card, tier+1); err != nil {
				return errors.Wrap(err, "dealt card")
			}
		}
		for _, card := range gs.Board.Decks[tier] {
			if err := validCard(card, tier+1); err != nil {
				return errors.Wrap(err, "deck card")
			}
		}
	}
	for i, agent := range gs.Agents {
		for _, card := range append(append([]Card(nil), agent.Cards...), agent.Reserved...) {
			if err := validCard(card, 0); err != nil {
				return errors.Wrapf(err, "agent %d card", i)
			}
		}
	}
	return nil
}

// validCard checks a card's colour and tier. A zero tier accepts any valid tier.
func validCard(card Card, tier int) error {
	if card.Colour < 0 || card.Colour >= NumColours {
		return errors.Errorf("card %d has colour %d", card.ID, card.Colour)
	}
	if card.Tier < 1 || card.Tier > NumTiers || (tier != 0 && card.Tier != tier) {
		return errors.Errorf("card %d has tier %d", card.ID, card.Tier)
	}
	return nil
}
