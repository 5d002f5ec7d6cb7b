package game

import (
	"fmt"

	"chessmate/internal/board"
	"chessmate/internal/core"
	"chessmate/internal/player"
)

type Snapshot struct {
	Board        *board.Board // Board state at this point
	PreviousMove core.Move    // Move that created this position (zero for initial)
	Mover        core.Color   // Who played PreviousMove (zero for initial)
}

// MoveResult tracks the outcome of a move
type MoveResult struct {
	Move      core.Move
	Player    core.Color
	GameState core.State
	NoMove    bool // The player had no legal move
}

type Game struct {
	snapshots  []Snapshot
	players    map[core.Color]*player.Player
	state      core.State
	lastResult *MoveResult
}

// New seats both players. Colors are assigned here, so a player can only
// ever take part in one game.
func New(initial *board.Board, whitePlayer, blackPlayer *player.Player) (*Game, error) {
	if err := whitePlayer.AssignColor(core.ColorWhite); err != nil {
		return nil, fmt.Errorf("seat white: %w", err)
	}
	if err := blackPlayer.AssignColor(core.ColorBlack); err != nil {
		return nil, fmt.Errorf("seat black: %w", err)
	}

	return &Game{
		snapshots: []Snapshot{
			{Board: initial},
		},
		players: map[core.Color]*player.Player{
			core.ColorWhite: whitePlayer,
			core.ColorBlack: blackPlayer,
		},
		state: initial.State(),
	}, nil
}

func (g *Game) SetLastResult(result *MoveResult) {
	g.lastResult = result
}

func (g *Game) LastResult() *MoveResult {
	return g.lastResult
}

func (g *Game) CurrentSnapshot() Snapshot {
	return g.snapshots[len(g.snapshots)-1]
}

// SnapshotAt returns the snapshot after ply moves, 0 being the initial position
func (g *Game) SnapshotAt(ply int) Snapshot {
	return g.snapshots[ply]
}

func (g *Game) CurrentBoard() *board.Board {
	return g.CurrentSnapshot().Board
}

func (g *Game) CurrentFEN() string {
	return g.CurrentBoard().FEN()
}

func (g *Game) NextTurn() core.Color {
	return g.CurrentBoard().Turn()
}

func (g *Game) NextPlayer() *player.Player {
	return g.players[g.NextTurn()]
}

func (g *Game) Player(c core.Color) *player.Player {
	return g.players[c]
}

func (g *Game) AddSnapshot(b *board.Board, move core.Move, mover core.Color) {
	g.snapshots = append(g.snapshots, Snapshot{
		Board:        b,
		PreviousMove: move,
		Mover:        mover,
	})
}

func (g *Game) UndoMoves(count int) error {
	if count < 1 {
		return fmt.Errorf("invalid undo count: %d", count)
	}

	availableMoves := len(g.snapshots) - 1
	if availableMoves < count {
		return fmt.Errorf("cannot undo %d moves: only %d moves available", count, availableMoves)
	}

	g.snapshots = g.snapshots[:len(g.snapshots)-count]
	g.state = core.StateOngoing // Reset game state when undoing
	g.lastResult = nil          // Clear last result
	return nil
}

func (g *Game) Moves() []core.Move {
	moves := []core.Move{}
	for i := 1; i < len(g.snapshots); i++ {
		moves = append(moves, g.snapshots[i].PreviousMove)
	}
	return moves
}

// Ply is the number of moves played since the initial position
func (g *Game) Ply() int {
	return len(g.snapshots) - 1
}

// LastMover is the color that played the most recent move, zero if none
func (g *Game) LastMover() core.Color {
	return g.CurrentSnapshot().Mover
}

func (g *Game) State() core.State {
	return g.state
}

func (g *Game) SetState(s core.State) {
	g.state = s
}

func (g *Game) InitialFEN() string {
	return g.snapshots[0].Board.FEN()
}
