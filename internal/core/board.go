package core

// Board is the game state the players read from. Implementations are
// immutable: TrialBoard returns a new snapshot and never alters the receiver.
type Board interface {
	// Turn is the color to move
	Turn() Color
	// AllPossibleMoves lists legal moves for c, whether or not c is to move
	AllPossibleMoves(c Color) MoveMap
	// TrialBoard plays from-to on a copy
	TrialBoard(from, to Square) Board
	OccupantAt(sq Square) Piece
	InCheck(c Color) bool
	Checkmate(c Color) bool
	Stalemate(c Color) bool
	Draw() bool
}
