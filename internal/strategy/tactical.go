package strategy

import (
	"io"
	"log"

	"chessmate/internal/core"
)

// Tactical prefers safe moves, and among them a check, then a capture, then
// a random move. When no move is safe the same chain runs on all moves.
type Tactical struct {
	random *Random
	logger *log.Logger
}

func NewTactical(seed int64, logger *log.Logger) *Tactical {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Tactical{
		random: NewRandom(seed),
		logger: logger,
	}
}

func (t *Tactical) NextMove(b core.Board, c core.Color) (core.Move, bool, error) {
	m, ok := t.SelectMove(b, c, b.AllPossibleMoves(c))
	return m, ok, nil
}

// SelectMove returns false only when moves is empty
func (t *Tactical) SelectMove(b core.Board, c core.Color, moves core.MoveMap) (core.Move, bool) {
	safe := TrimHarmful(b, c, moves)
	if m, ok := t.chain(b, c, safe, "safe"); ok {
		return m, true
	}
	return t.chain(b, c, moves, "unfiltered")
}

func (t *Tactical) chain(b core.Board, c core.Color, moves core.MoveMap, set string) (core.Move, bool) {
	opp := core.OppositeColor(c)
	if m, ok := CheckMove(b, opp, moves); ok {
		t.logger.Printf("%s: check %s (%s, %d moves)", c, m, set, moves.Len())
		return m, true
	}
	if m, ok := TakeMove(b, opp, moves); ok {
		t.logger.Printf("%s: capture %s (%s, %d moves)", c, m, set, moves.Len())
		return m, true
	}
	if m, ok := t.random.Pick(moves); ok {
		t.logger.Printf("%s: random %s (%s, %d moves)", c, m, set, moves.Len())
		return m, true
	}
	return core.Move{}, false
}

// CheckMove returns the first move, in map order, after which opp is in check
func CheckMove(b core.Board, opp core.Color, moves core.MoveMap) (core.Move, bool) {
	for _, set := range moves {
		for _, to := range set.To {
			if b.TrialBoard(set.From, to).InCheck(opp) {
				return core.Move{From: set.From, To: to}, true
			}
		}
	}
	return core.Move{}, false
}

// TakeMove returns the first move, in map order, landing on a piece of opp
func TakeMove(b core.Board, opp core.Color, moves core.MoveMap) (core.Move, bool) {
	for _, set := range moves {
		for _, to := range set.To {
			if p := b.OccupantAt(to); p != core.NoPiece && p.Color() == opp {
				return core.Move{From: set.From, To: to}, true
			}
		}
	}
	return core.Move{}, false
}
