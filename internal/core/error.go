package core

import (
	"errors"
	"fmt"
)

var (
	ErrColorAssigned = errors.New("color already assigned")
	ErrNoColor       = errors.New("player has no color")
	ErrIllegalMove   = errors.New("illegal move")
	ErrGameOver      = errors.New("game is over")
	ErrGameNotFound  = errors.New("game not found")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidFEN    = errors.New("invalid FEN")

	// Human input signals, not faults
	ErrUndo = errors.New("undo requested")
	ErrQuit = errors.New("quit requested")
)

// InputError reports a line of human input that did not parse as a move.
// From and To hold the raw tokens so the player can echo them back.
type InputError struct {
	From string
	To   string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("cannot move from %q to %q: %v", e.From, e.To, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
