package board

import (
	"fmt"
	"strings"

	"chessmate/internal/core"

	"github.com/notnil/chess"
)

const (
	StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Board is an immutable position snapshot. Every method that would change
// the position returns a new Board built from a clone of the game.
type Board struct {
	game *chess.Game
}

var _ core.Board = (*Board)(nil)

func New() *Board {
	return &Board{game: chess.NewGame()}
}

func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: expected 6 parts, got %d", core.ErrInvalidFEN, len(parts))
	}
	if parts[1] != "w" && parts[1] != "b" {
		return nil, fmt.Errorf("%w: turn must be 'w' or 'b'", core.ErrInvalidFEN)
	}

	opt, err := chess.FEN(strings.Join(parts, " "))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidFEN, err)
	}
	return &Board{game: chess.NewGame(opt)}, nil
}

func (b *Board) FEN() string {
	return b.game.Position().String()
}

func (b *Board) Turn() core.Color {
	return fromChessColor(b.game.Position().Turn())
}

// AllPossibleMoves lists the legal moves of c. Moves for the side not to
// move are generated on a copy of the position with the turn flipped.
func (b *Board) AllPossibleMoves(c core.Color) core.MoveMap {
	return moveMap(b.validMoves(c))
}

func (b *Board) validMoves(c core.Color) []*chess.Move {
	pos := b.game.Position()
	if fromChessColor(pos.Turn()) == c {
		return pos.ValidMoves()
	}

	flipped, err := flipTurn(pos)
	if err != nil {
		return nil
	}
	return flipped.ValidMoves()
}

// TrialBoard returns the position after from-to. A move that is not legal
// for the side to move yields the receiver itself.
func (b *Board) TrialBoard(from, to core.Square) core.Board {
	next, err := b.Apply(core.Move{From: from, To: to})
	if err != nil {
		return b
	}
	return next
}

// Apply plays a legal move on a copy and returns the new snapshot
func (b *Board) Apply(m core.Move) (*Board, error) {
	cm := b.find(m)
	if cm == nil {
		return nil, fmt.Errorf("%w: %s", core.ErrIllegalMove, m)
	}

	g := b.game.Clone()
	if err := g.Move(cm); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrIllegalMove, m, err)
	}
	return &Board{game: g}, nil
}

// IsLegal reports whether the side to move may play m
func (b *Board) IsLegal(m core.Move) bool {
	return b.find(m) != nil
}

// find returns the generated move for m, preferring a queen on promotion
func (b *Board) find(m core.Move) *chess.Move {
	if !m.From.Valid() || !m.To.Valid() {
		return nil
	}
	s1, s2 := toChessSquare(m.From), toChessSquare(m.To)

	var match *chess.Move
	for _, cm := range b.game.ValidMoves() {
		if cm.S1() != s1 || cm.S2() != s2 {
			continue
		}
		if cm.Promo() == chess.NoPieceType || cm.Promo() == chess.Queen {
			return cm
		}
		if match == nil {
			match = cm
		}
	}
	return match
}

func (b *Board) OccupantAt(sq core.Square) core.Piece {
	if !sq.Valid() {
		return core.NoPiece
	}
	return fromChessPiece(b.game.Position().Board().Piece(toChessSquare(sq)))
}

// InCheck reports whether the king of c is attacked. Pins on the attacker
// do not matter, so the test uses piece geometry rather than legal moves.
func (b *Board) InCheck(c core.Color) bool {
	king, ok := b.kingSquare(c)
	if !ok {
		return false
	}
	return b.attacked(king, core.OppositeColor(c))
}

var (
	knightSteps = [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	rookRays    = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopRays  = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// attacked reports whether any piece of color by attacks sq
func (b *Board) attacked(sq core.Square, by core.Color) bool {
	f, r := int(sq.File), int(sq.Rank)
	holds := func(p core.Piece, kinds string) bool {
		return p != core.NoPiece && p.Color() == by && strings.IndexByte(kinds, byte(p)|0x20) >= 0
	}
	at := func(df, dr int) core.Piece {
		return b.OccupantAt(core.NewSquare(f+df, r+dr))
	}

	// Pawns attack forward, so a white attacker sits one rank below
	pawnRank := -1
	if by == core.ColorBlack {
		pawnRank = 1
	}
	if holds(at(-1, pawnRank), "p") || holds(at(1, pawnRank), "p") {
		return true
	}

	for _, d := range knightSteps {
		if holds(at(d[0], d[1]), "n") {
			return true
		}
	}
	for _, d := range kingSteps {
		if holds(at(d[0], d[1]), "k") {
			return true
		}
	}

	slide := func(rays [][2]int, kinds string) bool {
		for _, d := range rays {
			for i := 1; i < 8; i++ {
				next := core.NewSquare(f+d[0]*i, r+d[1]*i)
				if !next.Valid() {
					break
				}
				if p := b.OccupantAt(next); p != core.NoPiece {
					if holds(p, kinds) {
						return true
					}
					break
				}
			}
		}
		return false
	}
	return slide(rookRays, "rq") || slide(bishopRays, "bq")
}

func (b *Board) Checkmate(c core.Color) bool {
	if c == b.Turn() {
		return b.game.Position().Status() == chess.Checkmate
	}
	return len(b.validMoves(c)) == 0 && b.InCheck(c)
}

func (b *Board) Stalemate(c core.Color) bool {
	if c == b.Turn() {
		return b.game.Position().Status() == chess.Stalemate
	}
	return len(b.validMoves(c)) == 0 && !b.InCheck(c)
}

// Draw covers automatic draws (fivefold repetition, seventy-five moves,
// insufficient material) and the claimable threefold and fifty-move rules
func (b *Board) Draw() bool {
	if b.game.Outcome() == chess.Draw && b.game.Method() != chess.Stalemate {
		return true
	}
	for _, m := range b.game.EligibleDraws() {
		if m == chess.ThreefoldRepetition || m == chess.FiftyMoveRule {
			return true
		}
	}
	return false
}

// State derives the game state for the side to move
func (b *Board) State() core.State {
	turn := b.Turn()
	switch {
	case b.Checkmate(turn):
		return core.WinFor(core.OppositeColor(turn))
	case b.Stalemate(turn):
		return core.StateStalemate
	case b.Draw():
		return core.StateDraw
	default:
		return core.StateOngoing
	}
}

func (b *Board) kingSquare(c core.Color) (core.Square, bool) {
	king := core.Piece('K')
	if c == core.ColorBlack {
		king = 'k'
	}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			sq := core.NewSquare(f, r)
			if b.OccupantAt(sq) == king {
				return sq, true
			}
		}
	}
	return core.Square{}, false
}

// ToASCII creates an ASCII representation of the board
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := 7; r >= 0; r-- {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for f := 0; f < 8; f++ {
			piece := b.OccupantAt(core.NewSquare(f, r))
			if piece == core.NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(fmt.Sprintf("%c ", piece))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r+1))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}

// moveMap groups generated moves by origin in generation order. Promotion
// variants collapse to a single destination.
func moveMap(moves []*chess.Move) core.MoveMap {
	var mm core.MoveMap
	index := make(map[core.Square]int)

	for _, cm := range moves {
		from, to := fromChessSquare(cm.S1()), fromChessSquare(cm.S2())
		i, ok := index[from]
		if !ok {
			i = len(mm)
			index[from] = i
			mm = append(mm, core.MoveSet{From: from})
		}
		if !containsSquare(mm[i].To, to) {
			mm[i].To = append(mm[i].To, to)
		}
	}
	return mm
}

func containsSquare(squares []core.Square, sq core.Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

// flipTurn rebuilds pos with the other side to move. The en passant target
// is cleared since it belongs to the original mover.
func flipTurn(pos *chess.Position) (*chess.Position, error) {
	parts := strings.Fields(pos.String())
	if len(parts) != 6 {
		return nil, fmt.Errorf("unexpected FEN %q", pos.String())
	}
	if parts[1] == "w" {
		parts[1] = "b"
	} else {
		parts[1] = "w"
	}
	parts[3] = "-"

	opt, err := chess.FEN(strings.Join(parts, " "))
	if err != nil {
		return nil, err
	}
	return chess.NewGame(opt).Position(), nil
}

func toChessSquare(sq core.Square) chess.Square {
	return chess.NewSquare(chess.File(sq.File), chess.Rank(sq.Rank))
}

func fromChessSquare(sq chess.Square) core.Square {
	return core.NewSquare(int(sq.File()), int(sq.Rank()))
}

func fromChessColor(c chess.Color) core.Color {
	switch c {
	case chess.White:
		return core.ColorWhite
	case chess.Black:
		return core.ColorBlack
	default:
		return 0
	}
}

func fromChessPiece(p chess.Piece) core.Piece {
	if p == chess.NoPiece {
		return core.NoPiece
	}
	letter := p.Type().String()
	if p.Color() == chess.White {
		letter = strings.ToUpper(letter)
	}
	return core.Piece(letter[0])
}
