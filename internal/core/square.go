package core

import (
	"fmt"
	"strings"
)

// Square is a board coordinate, file and rank both 0-based (a1 = {0, 0})
type Square struct {
	File int8
	Rank int8
}

func NewSquare(file, rank int) Square {
	return Square{File: int8(file), Rank: int8(rank)}
}

func (s Square) Valid() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+s.File, '1'+s.Rank)
}

// ParseSquare converts algebraic notation ("e4") to a Square
func ParseSquare(s string) (Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}
	if s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// Piece is a FEN piece letter, uppercase for white, 0 for an empty square
type Piece byte

const NoPiece Piece = 0

func (p Piece) Color() Color {
	switch {
	case p >= 'A' && p <= 'Z':
		return ColorWhite
	case p >= 'a' && p <= 'z':
		return ColorBlack
	default:
		return 0
	}
}

type Move struct {
	From Square
	To   Square
}

func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// ParseMove accepts "e2e4" and two separated squares such as "e2 e4",
// "e2, e4" or "e2-e4"
func ParseMove(s string) (Move, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})

	var from, to string
	switch {
	case len(fields) == 1 && len(fields[0]) == 4:
		from, to = fields[0][:2], fields[0][2:]
	case len(fields) == 2:
		from, to = fields[0], fields[1]
	default:
		return Move{}, fmt.Errorf("expected two squares, got %q", strings.TrimSpace(s))
	}

	f, err := ParseSquare(from)
	if err != nil {
		return Move{}, err
	}
	t, err := ParseSquare(to)
	if err != nil {
		return Move{}, err
	}
	return Move{From: f, To: t}, nil
}

// MoveSet is one origin with its ordered destinations
type MoveSet struct {
	From Square
	To   []Square
}

// MoveMap lists origins in move-generation order. An origin never appears
// with an empty destination list.
type MoveMap []MoveSet

func (mm MoveMap) Empty() bool {
	return len(mm) == 0
}

// Len counts individual moves
func (mm MoveMap) Len() int {
	n := 0
	for _, set := range mm {
		n += len(set.To)
	}
	return n
}

func (mm MoveMap) Destinations(from Square) []Square {
	for _, set := range mm {
		if set.From == from {
			return set.To
		}
	}
	return nil
}

func (mm MoveMap) Contains(m Move) bool {
	for _, to := range mm.Destinations(m.From) {
		if to == m.To {
			return true
		}
	}
	return false
}

// HasDestination reports whether any origin can reach sq
func (mm MoveMap) HasDestination(sq Square) bool {
	for _, set := range mm {
		for _, to := range set.To {
			if to == sq {
				return true
			}
		}
	}
	return false
}

// Moves flattens the map in order
func (mm MoveMap) Moves() []Move {
	moves := make([]Move, 0, mm.Len())
	for _, set := range mm {
		for _, to := range set.To {
			moves = append(moves, Move{From: set.From, To: to})
		}
	}
	return moves
}
