package game

import (
	"fmt"
	"strings"
)

type Colour int

const (
	Black Colour = iota
	Red
	Green
	Blue
	White
	Yellow // gold, only obtainable by reserving
	NumColours
)

// Colours lists the five collectable colours (gold excluded).
var Colours = [...]Colour{Black, Red, Green, Blue, White}

var colourNames = [...]string{"black", "red", "green", "blue", "white", "yellow"}

func (c Colour) String() string {
	if c < 0 || c >= NumColours {
		return fmt.Sprintf("colour(%d)", int(c))
	}
	return colourNames[c]
}

// Gems counts gems or card bonuses per colour.
type Gems [NumColours]int

func (g Gems) Total() int {
	total := 0
	for _, n := range g {
		total += n
	}
	return total
}

func (g Gems) Add(other Gems) Gems {
	for i := range g {
		g[i] += other[i]
	}
	return g
}

func (g Gems) Sub(other Gems) Gems {
	for i := range g {
		g[i] -= other[i]
	}
	return g
}

// Covers reports whether g holds at least as many of every colour as other.
func (g Gems) Covers(other Gems) bool {
	for i := range g {
		if g[i] < other[i] {
			return false
		}
	}
	return true
}

func (g Gems) IsZero() bool {
	return g == Gems{}
}

func (g Gems) String() string {
	parts := []string{}
	for c, n := range g {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", Colour(c), n))
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}
