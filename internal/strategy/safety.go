package strategy

import (
	"chessmate/internal/core"
)

// TrimHarmful drops every move after which the opponent could capture on
// the destination square. Origins left without destinations are removed.
func TrimHarmful(b core.Board, c core.Color, moves core.MoveMap) core.MoveMap {
	var safe core.MoveMap
	for _, set := range moves {
		var to []core.Square
		for _, dest := range set.To {
			if !OpponentCanTake(b, c, set.From, dest) {
				to = append(to, dest)
			}
		}
		if len(to) > 0 {
			safe = append(safe, core.MoveSet{From: set.From, To: to})
		}
	}
	return safe
}

// OpponentCanTake plays from-to on a trial board and reports whether any
// opposing piece can then move to `to`. Only one ply is considered: the
// recapture itself is not checked for safety or pins.
func OpponentCanTake(b core.Board, c core.Color, from, to core.Square) bool {
	trial := b.TrialBoard(from, to)
	return trial.AllPossibleMoves(core.OppositeColor(c)).HasDestination(to)
}
