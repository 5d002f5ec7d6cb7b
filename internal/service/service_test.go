package service

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"chessmate/internal/core"
)

type scriptedInput struct {
	lines []string
}

func (s *scriptedInput) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func computers(white, black core.PlayerType) core.NewGameRequest {
	return core.NewGameRequest{
		White: core.PlayerConfig{Type: white, Seed: 11},
		Black: core.PlayerConfig{Type: black, Seed: 12},
	}
}

func TestComputerGameRunsToCompletion(t *testing.T) {
	svc := New()
	defer svc.Close()

	id, err := svc.NewGame(computers(core.PlayerTactical, core.PlayerRandom), nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	for ply := 0; ply < 60; ply++ {
		before, _ := svc.GetCurrentBoard(id)
		result, err := svc.PlayTurn(id)
		if err != nil {
			t.Fatalf("ply %d: %v", ply, err)
		}
		if result.NoMove {
			break
		}
		if !before.IsLegal(result.Move) {
			t.Fatalf("ply %d: %s is not legal", ply, result.Move)
		}
		if result.Player != before.Turn() {
			t.Fatalf("ply %d: %s moved on %s's turn", ply, result.Player, before.Turn())
		}
		if result.GameState.IsOver() {
			if _, err := svc.PlayTurn(id); !errors.Is(err, core.ErrGameOver) {
				t.Fatalf("turn after game end: err=%v", err)
			}
			break
		}
	}

	g, _ := svc.GetGame(id)
	if g.Ply() == 0 {
		t.Errorf("no moves were played")
	}
	if len(g.Moves()) != g.Ply() {
		t.Errorf("moves=%d ply=%d", len(g.Moves()), g.Ply())
	}
}

func TestNewGameValidation(t *testing.T) {
	svc := New()

	_, err := svc.NewGame(computers(0, core.PlayerRandom), nil, nil, nil)
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("missing type: err=%v", err)
	}

	req := computers(core.PlayerRandom, core.PlayerRandom)
	req.FEN = "not a fen at all"
	if _, err = svc.NewGame(req, nil, nil, nil); !errors.Is(err, core.ErrInvalidFEN) {
		t.Errorf("bad fen: err=%v", err)
	}

	req.FEN = strings.Repeat("8/", 60)
	if _, err = svc.NewGame(req, nil, nil, nil); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("long fen: err=%v", err)
	}

	if svc.Count() != 0 {
		t.Errorf("%d games registered", svc.Count())
	}
}

func TestHumanTurn(t *testing.T) {
	svc := New()
	in := &scriptedInput{lines: []string{"e2e5", "hello", "e2 e4", "undo"}}
	var out bytes.Buffer

	req := computers(core.PlayerHuman, core.PlayerRandom)
	id, err := svc.NewGame(req, in, &out, nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.PlayTurn(id)
	var inputErr *core.InputError
	if !errors.As(err, &inputErr) || !errors.Is(err, core.ErrIllegalMove) {
		t.Fatalf("illegal move: err=%v", err)
	}
	if inputErr.From != "e2" || inputErr.To != "e5" {
		t.Errorf("from=%q to=%q", inputErr.From, inputErr.To)
	}

	if _, err = svc.PlayTurn(id); !errors.As(err, &inputErr) {
		t.Fatalf("garbage input: err=%v", err)
	}

	result, err := svc.PlayTurn(id)
	if err != nil || result.Move.String() != "e2e4" {
		t.Fatalf("e2e4: result=%+v err=%v", result, err)
	}
	if _, err = svc.PlayTurn(id); err != nil {
		t.Fatalf("computer reply: %v", err)
	}

	if _, err = svc.PlayTurn(id); !errors.Is(err, core.ErrUndo) {
		t.Fatalf("undo: err=%v", err)
	}
	n, err := svc.UndoToHuman(id)
	if err != nil || n != 2 {
		t.Fatalf("undo count=%d err=%v", n, err)
	}
	g, _ := svc.GetGame(id)
	if g.Ply() != 0 || g.NextPlayer().Type != core.PlayerHuman {
		t.Errorf("ply=%d next=%s", g.Ply(), g.NextPlayer())
	}
	if _, err = svc.UndoToHuman(id); err == nil {
		t.Errorf("undo past the start succeeded")
	}

	if _, err = svc.PlayTurn(id); !errors.Is(err, core.ErrQuit) {
		t.Fatalf("eof: err=%v", err)
	}
}

func TestFinishedPosition(t *testing.T) {
	svc := New()
	var out bytes.Buffer
	req := computers(core.PlayerRandom, core.PlayerTactical)
	req.Black.Name = "Mater"
	req.FEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"

	id, err := svc.NewGame(req, nil, &out, nil)
	if err != nil {
		t.Fatal(err)
	}
	g, _ := svc.GetGame(id)
	if g.State() != core.StateBlackWins {
		t.Fatalf("state=%s", g.State())
	}
	if _, err = svc.PlayTurn(id); !errors.Is(err, core.ErrGameOver) {
		t.Fatalf("err=%v", err)
	}

	state, err := svc.ReportOutcome(id)
	if err != nil || state != core.StateBlackWins {
		t.Fatalf("state=%s err=%v", state, err)
	}
	if out.String() != "Checkmate! Mater (black) wins!\n" {
		t.Errorf("output=%q", out.String())
	}
}

func TestApplyMove(t *testing.T) {
	svc := New()
	id, err := svc.NewGame(computers(core.PlayerRandom, core.PlayerRandom), nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, _ := core.ParseMove(s)
		if _, err := svc.ApplyMove(id, m); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}

	g, _ := svc.GetGame(id)
	if g.State() != core.StateBlackWins || g.LastResult().GameState != core.StateBlackWins {
		t.Errorf("state=%s", g.State())
	}
	if g.LastMover() != core.ColorBlack {
		t.Errorf("last mover=%s", g.LastMover())
	}

	m, _ := core.ParseMove("a2a3")
	if _, err := svc.ApplyMove(id, m); !errors.Is(err, core.ErrGameOver) {
		t.Errorf("move after mate: err=%v", err)
	}

	if err := svc.UndoMoves(id, 1); err != nil {
		t.Fatal(err)
	}
	if g.State() != core.StateOngoing || g.Ply() != 3 {
		t.Errorf("after undo state=%s ply=%d", g.State(), g.Ply())
	}
}

func TestGameLookup(t *testing.T) {
	svc := New()
	if _, err := svc.GetGame("missing"); !errors.Is(err, core.ErrGameNotFound) {
		t.Errorf("err=%v", err)
	}
	id, _ := svc.NewGame(computers(core.PlayerRandom, core.PlayerRandom), nil, nil, nil)
	if err := svc.DeleteGame(id); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteGame(id); !errors.Is(err, core.ErrGameNotFound) {
		t.Errorf("second delete err=%v", err)
	}
}
