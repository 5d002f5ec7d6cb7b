package strategy

import (
	"math/rand"

	"chessmate/internal/core"
)

// Random picks an origin uniformly, then one of its destinations uniformly
type Random struct {
	r *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{
		r: rand.New(rand.NewSource(seed)),
	}
}

// Pick returns false only when moves is empty
func (s *Random) Pick(moves core.MoveMap) (core.Move, bool) {
	if moves.Empty() {
		return core.Move{}, false
	}
	set := moves[s.r.Intn(len(moves))]
	return core.Move{From: set.From, To: set.To[s.r.Intn(len(set.To))]}, true
}

func (s *Random) NextMove(b core.Board, c core.Color) (core.Move, bool, error) {
	m, ok := s.Pick(b.AllPossibleMoves(c))
	return m, ok, nil
}
