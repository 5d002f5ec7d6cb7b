// Package player binds a name and a color to a move strategy and reports
// game results from that player's point of view.
package player

import (
	"fmt"
	"io"
	"log"

	"chessmate/internal/core"
	"chessmate/internal/display"
	"chessmate/internal/strategy"

	"github.com/google/uuid"
)

// Strategy produces a move for c on b. ok is false when c has no move.
type Strategy interface {
	NextMove(b core.Board, c core.Color) (m core.Move, ok bool, err error)
}

var (
	_ Strategy = (*Human)(nil)
	_ Strategy = (*strategy.Random)(nil)
	_ Strategy = (*strategy.Tactical)(nil)
)

type Player struct {
	ID   string
	Name string
	Type core.PlayerType

	color    core.Color // zero until AssignColor
	strategy Strategy
	out      io.Writer
}

func New(name string, t core.PlayerType, s Strategy, out io.Writer) *Player {
	if out == nil {
		out = io.Discard
	}
	return &Player{
		ID:       uuid.New().String(),
		Name:     name,
		Type:     t,
		strategy: s,
		out:      out,
	}
}

// FromConfig validates cfg and builds the matching strategy. in is only
// read by human players; logger only traces tactical players.
func FromConfig(cfg core.PlayerConfig, in LineReader, out io.Writer, logger *log.Logger) (*Player, error) {
	if err := core.Validate(cfg); err != nil {
		return nil, err
	}

	name := cfg.DisplayName()
	var s Strategy
	switch cfg.Type {
	case core.PlayerHuman:
		if in == nil {
			return nil, fmt.Errorf("%w: human player needs an input", core.ErrInvalidConfig)
		}
		s = NewHuman(name, in, out)
	case core.PlayerRandom:
		s = strategy.NewRandom(cfg.Seed)
	case core.PlayerTactical:
		s = strategy.NewTactical(cfg.Seed, logger)
	}
	return New(name, cfg.Type, s, out), nil
}

// AssignColor sets the color once. Later calls return ErrColorAssigned and
// leave the color unchanged.
func (p *Player) AssignColor(c core.Color) error {
	if !c.Valid() {
		return fmt.Errorf("invalid color %q", c)
	}
	if p.color != 0 {
		return fmt.Errorf("%w: %s is %s", core.ErrColorAssigned, p.Name, p.color.Name())
	}
	p.color = c
	return nil
}

func (p *Player) Color() core.Color {
	return p.color
}

func (p *Player) OpponentColor() core.Color {
	return core.OppositeColor(p.color)
}

func (p *Player) IsHuman() bool {
	return p.Type == core.PlayerHuman
}

// MakeMove asks the strategy for a move. ok is false when no legal move
// exists; the caller consults the board's terminal predicates.
func (p *Player) MakeMove(b core.Board) (core.Move, bool, error) {
	if p.color == 0 {
		return core.Move{}, false, core.ErrNoColor
	}
	return p.strategy.NextMove(b, p.color)
}

// ReportOutcome prints at most one end-of-game message and returns the
// state it announced. Checkmate is only announced by the winning side.
func (p *Player) ReportOutcome(b core.Board) core.State {
	if p.color == 0 {
		return core.StateOngoing
	}

	switch {
	case b.Checkmate(p.OpponentColor()):
		fmt.Fprintf(p.out, "Checkmate! %s (%s) wins!\n", p.Name, p.color.Name())
		return core.WinFor(p.color)
	case b.Stalemate(p.OpponentColor()) || b.Stalemate(p.color):
		fmt.Fprintln(p.out, "Stalemate! It's a draw!")
		return core.StateStalemate
	case b.Draw():
		fmt.Fprintln(p.out, "Drawn! No one wins!")
		return core.StateDraw
	}
	return core.StateOngoing
}

// ReportInvalidMove tells the player a submission was rejected
func (p *Player) ReportInvalidMove(from, to string) {
	msg := fmt.Sprintf("That move was invalid. Cannot move from %s to %s!", from, to)
	fmt.Fprintln(p.out, display.Colorize(display.Red, msg))
}

func (p *Player) String() string {
	if p.color == 0 {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.color.Name())
}
