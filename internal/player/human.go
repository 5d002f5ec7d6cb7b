package player

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"chessmate/internal/core"
)

// LineReader blocks until a full line of input is available
type LineReader interface {
	Readline() (string, error)
}

// prompter is implemented by readers that draw their own prompt
type prompter interface {
	SetPrompt(string)
}

// Human reads moves typed at the terminal
type Human struct {
	Name string
	in   LineReader
	out  io.Writer
}

func NewHuman(name string, in LineReader, out io.Writer) *Human {
	if out == nil {
		out = io.Discard
	}
	return &Human{Name: name, in: in, out: out}
}

// NextMove reads one line. "undo" and "quit" come back as ErrUndo and
// ErrQuit; unparseable input comes back as *core.InputError.
func (h *Human) NextMove(b core.Board, c core.Color) (core.Move, bool, error) {
	prompt := ""
	if b.InCheck(c) {
		prompt = "Check! "
	}
	prompt += fmt.Sprintf("Your turn, %s (%s)! Please make a move (eg e2, e3): ", h.Name, c.Name())

	line, err := h.readLine(prompt)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return core.Move{}, false, core.ErrQuit
		}
		return core.Move{}, false, fmt.Errorf("read move: %w", err)
	}

	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "undo", "u":
		return core.Move{}, false, core.ErrUndo
	case "quit", "exit", "q":
		return core.Move{}, false, core.ErrQuit
	}

	m, err := core.ParseMove(line)
	if err != nil {
		from, to := splitTokens(line)
		return core.Move{}, false, &core.InputError{From: from, To: to, Err: err}
	}
	return m, true, nil
}

func (h *Human) readLine(prompt string) (string, error) {
	if p, ok := h.in.(prompter); ok {
		p.SetPrompt(prompt)
	} else {
		fmt.Fprint(h.out, prompt)
	}
	return h.in.Readline()
}

func splitTokens(line string) (string, string) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '-' || r == '\t'
	})
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], fields[1]
	}
}
