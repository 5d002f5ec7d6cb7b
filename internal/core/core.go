package core

type State int

const (
	StateOngoing State = iota
	StateWhiteWins
	StateBlackWins
	StateDraw
	StateStalemate
)

func (s State) String() string {
	switch s {
	case StateWhiteWins:
		return "White wins"
	case StateBlackWins:
		return "Black wins"
	case StateDraw:
		return "Draw"
	case StateStalemate:
		return "Stalemate"
	default:
		return "Ongoing"
	}
}

// IsOver reports whether the state ends the game
func (s State) IsOver() bool {
	return s != StateOngoing
}

// WinFor returns the winning state for the given color
func WinFor(c Color) State {
	if c == ColorWhite {
		return StateWhiteWins
	}
	return StateBlackWins
}

type Color byte

const (
	ColorWhite Color = iota + 1
	ColorBlack
)

func (c Color) String() string {
	if c == ColorWhite {
		return "w"
	} else if c == ColorBlack {
		return "b"
	} else {
		return "-"
	}
}

// Name returns the long lowercase form used in player messages
func (c Color) Name() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorBlack:
		return "black"
	default:
		return "none"
	}
}

func (c Color) Valid() bool {
	return c == ColorWhite || c == ColorBlack
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}
