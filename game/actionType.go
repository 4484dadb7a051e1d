package game

import "fmt"

// ActionType tags the kind of an Action.
type ActionType int

const (
	Pass ActionType = iota
	CollectSame
	CollectDiff
	Reserve          // reserve a face-up card
	ReserveAvailable // reserve blind from the top of a tier deck
	BuyAvailable
	BuyReserve
)

var actionTypeNames = map[ActionType]string{
	Pass:             "pass",
	CollectSame:      "collect_same",
	CollectDiff:      "collect_diff",
	Reserve:          "reserve",
	ReserveAvailable: "reserve_available",
	BuyAvailable:     "buy_available",
	BuyReserve:       "buy_reserve",
}

func (t ActionType) String() string {
	if name, ok := actionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(t))
}

func (t ActionType) IsCollect() bool {
	return t == CollectSame || t == CollectDiff
}

func (t ActionType) IsBuy() bool {
	return t == BuyAvailable || t == BuyReserve
}

func (t ActionType) IsReserve() bool {
	return t == Reserve || t == ReserveAvailable
}

func (t ActionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ActionType) UnmarshalText(text []byte) error {
	for typ, name := range actionTypeNames {
		if name == string(text) {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("unknown action type %q", text)
}
