package transport

import (
	"io"

	"chessmate/internal/board"
	"chessmate/internal/core"
	"chessmate/internal/game"
	"chessmate/internal/player"
)

// View abstracts display/output operations of a running game
type View interface {
	DisplayBoard(b *board.Board)
	ShowMessage(msg string)
	ShowError(err error)
	ShowComputerMove(p *player.Player, result *game.MoveResult)
	ShowHumanMove(move core.Move)
	ShowGameOver(state core.State)

	// Human players read moves from Input and all players report to Output
	Input() player.LineReader
	Output() io.Writer
}
