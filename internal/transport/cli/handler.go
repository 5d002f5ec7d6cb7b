package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"chessmate/internal/cli"
	"chessmate/internal/core"
	"chessmate/internal/display"
	"chessmate/internal/service"
	"chessmate/internal/transport"
)

var _ transport.View = (*cli.CLI)(nil)

type CLIHandler struct {
	svc    *service.Service
	view   *cli.CLI
	logger *log.Logger // computer move tracing, silent unless verbose
	seed   int64
	gameID string // most recent game, kept for 'history'
}

// New creates a handler. Computer players of the n-th game are seeded from
// seed+n, so a session replays exactly for a fixed seed and input.
func New(svc *service.Service, view *cli.CLI, seed int64) *CLIHandler {
	return &CLIHandler{
		svc:    svc,
		view:   view,
		logger: log.New(io.Discard, "", 0),
		seed:   seed,
	}
}

// Main loop - simple command processing
func (h *CLIHandler) Run() {
	h.view.ShowWelcome()
	for {
		// Get command (blocking)
		cmd, err := h.view.GetCommand(display.Prompt("chess"))
		if err != nil {
			h.view.ShowError(err)
			break
		}

		// Process command - returns false to exit
		if !h.ProcessCommand(cmd) {
			break
		}
	}
	h.svc.Close()
}

// Handles user commands - returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:
		return true

	case cli.CmdNew:
		h.handleNewGame("")

	case cli.CmdResume:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: resume <FEN string>")
			return true
		}
		h.handleNewGame(strings.Join(cmd.Args, " "))

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}

		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
		} else {
			h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
		}

	case cli.CmdVerbose:
		verbose := h.view.ToggleVerbose()
		if verbose {
			h.logger.SetOutput(h.view.Output())
		} else {
			h.logger.SetOutput(io.Discard)
		}
		h.view.ShowMessage(fmt.Sprintf("Verbose mode: %t", verbose))

	case cli.CmdHistory:
		if h.gameID == "" {
			h.view.ShowMessage("No game played yet.")
			return true
		}
		g, err := h.svc.GetGame(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowGameHistory(g)

	case cli.CmdHelp:
		h.view.ShowHelp()

	case cli.CmdUnknown:
		h.view.ShowMessage(fmt.Sprintf("Unknown command: %s. Type 'help' for commands.", cmd.Raw))
	}

	return true
}

// Starts a new game with player type selection and plays it out
func (h *CLIHandler) handleNewGame(fen string) {
	req := core.NewGameRequest{
		White: core.PlayerConfig{Type: h.selectPlayer("White"), Seed: h.nextSeed()},
		Black: core.PlayerConfig{Type: h.selectPlayer("Black"), Seed: h.nextSeed()},
		FEN:   fen,
	}

	id, err := h.svc.NewGame(req, h.view.Input(), h.view.Output(), h.logger)
	if err != nil {
		h.view.ShowError(fmt.Errorf("could not start the game: %w", err))
		return
	}

	if h.gameID != "" {
		h.svc.DeleteGame(h.gameID)
	}
	h.gameID = id

	h.view.ShowMessage("Game started.")
	if err := playGame(h.svc, h.view, id); err != nil {
		h.view.ShowError(err)
	}
}

func (h *CLIHandler) selectPlayer(side string) core.PlayerType {
	for {
		t, err := core.ParsePlayerType(h.view.ReadLine(fmt.Sprintf("Select %s player (h/r/t): ", side)))
		if err == nil {
			return t
		}
		h.view.ShowError(err)
	}
}

func (h *CLIHandler) nextSeed() int64 {
	h.seed++
	if h.seed < 0 {
		h.seed = 1
	}
	return h.seed
}

// playGame runs turns until the game ends or a human abandons it
func playGame(svc *service.Service, view transport.View, gameID string) error {
	for {
		g, err := svc.GetGame(gameID)
		if err != nil {
			return err
		}

		b, err := svc.GetCurrentBoard(gameID)
		if err != nil {
			return err
		}
		if g.State().IsOver() {
			view.DisplayBoard(b)
			state, err := svc.ReportOutcome(gameID)
			if err != nil {
				return err
			}
			view.ShowGameOver(state)
			return nil
		}

		next := g.NextPlayer()
		if next.IsHuman() {
			view.DisplayBoard(b)
		}

		result, err := svc.PlayTurn(gameID)
		var inputErr *core.InputError
		switch {
		case errors.As(err, &inputErr):
			next.ReportInvalidMove(inputErr.From, inputErr.To)
			continue

		case errors.Is(err, core.ErrUndo):
			n, err := svc.UndoToHuman(gameID)
			if err != nil {
				view.ShowError(err)
			} else if n == 1 {
				view.ShowMessage("Move undone")
			} else {
				view.ShowMessage(fmt.Sprintf("%d moves undone", n))
			}
			continue

		case errors.Is(err, core.ErrQuit):
			view.ShowMessage("Game abandoned.")
			return nil

		case err != nil:
			return fmt.Errorf("game %s: %w", gameID, err)
		}

		if result.NoMove {
			continue
		}
		if next.IsHuman() {
			view.ShowHumanMove(result.Move)
		} else {
			view.ShowComputerMove(next, result)
		}
	}
}
