package cli

import (
	"fmt"
	"io"
	"strings"

	"chessmate/internal/board"
	"chessmate/internal/core"
	"chessmate/internal/display"
	"chessmate/internal/game"
	"chessmate/internal/player"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdResume
	CmdColor
	CmdVerbose
	CmdHistory
	CmdHelp
	CmdQuit
	CmdUnknown
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	white   string
	black   string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {
		lightBg: "",
		darkBg:  "",
		white:   "",
		black:   "",
		reset:   "",
	},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m", // Light green
		darkBg:  "\033[48;5;22m",  // Dark green
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m", // Light gray
		darkBg:  "\033[48;5;240m", // Dark gray
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
}

type CLI struct {
	input   player.LineReader
	output  io.Writer
	theme   ColorTheme
	verbose bool
}

func New(input player.LineReader, output io.Writer) *CLI {
	return &CLI{
		input:   input,
		output:  output,
		theme:   ThemeOff,
		verbose: false,
	}
}

// Input is shared with human players so moves and commands come from the
// same terminal
func (c *CLI) Input() player.LineReader {
	return c.input
}

func (c *CLI) Output() io.Writer {
	return c.output
}

// Reads a command synchronously
func (c *CLI) GetCommand(prompt string) (*Command, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		if err == io.EOF {
			return &Command{Type: CmdQuit}, nil
		}
		return nil, err
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return &Command{Type: CmdNone}, nil
	}

	return c.parseCommand(input), nil
}

func (c *CLI) parseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "new", "n":
		return &Command{Type: CmdNew, Args: args}
	case "resume":
		return &Command{Type: CmdResume, Args: args, Raw: input}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "verbose", "v":
		return &Command{Type: CmdVerbose}
	case "history":
		return &Command{Type: CmdHistory}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit", "x":
		return &Command{Type: CmdQuit}
	default:
		return &Command{Type: CmdUnknown, Raw: input}
	}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) ToggleVerbose() bool {
	c.verbose = !c.verbose
	return c.verbose
}

func (c *CLI) IsVerbose() bool {
	return c.verbose
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(display.Colorize(display.Red, fmt.Sprintf("Error: %v", err)))
}

// ReadLine prompts and reads one trimmed line, empty on EOF
func (c *CLI) ReadLine(prompt string) string {
	line, err := c.readLine(prompt)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (c *CLI) readLine(prompt string) (string, error) {
	if p, ok := c.input.(interface{ SetPrompt(string) }); ok {
		p.SetPrompt(prompt)
	} else {
		fmt.Fprint(c.output, prompt)
	}
	return c.input.Readline()
}

func (c *CLI) DisplayBoard(b *board.Board) {
	if c.theme == ThemeOff {
		c.ShowMessage("\n" + b.ToASCII() + "\n")
		return
	}

	theme := themes[c.theme]
	var sb strings.Builder

	sb.WriteString("\n  a b c d e f g h\n")

	for r := 7; r >= 0; r-- {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for f := 0; f < 8; f++ {
			piece := b.OccupantAt(core.NewSquare(f, r))

			// a1 is a dark square
			bg := theme.lightBg
			if (r+f)%2 == 0 {
				bg = theme.darkBg
			}

			if piece == core.NoPiece {
				sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
			} else {
				color := theme.black
				if piece.Color() == core.ColorWhite {
					color = theme.white
				}
				sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, color, piece, theme.reset))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r+1))
	}
	sb.WriteString("  a b c d e f g h\n")

	c.ShowMessage(sb.String())
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  new              - Start a new game with player type selection
  resume <FEN>     - Start a game from a specific board position
  color <theme>    - Set board color theme (off|brown|green|gray)
  verbose          - Toggle move selection tracing for computer players
  history          - Show moves of the last game
  quit/exit        - Exit the program
  help/?           - Show this help message

Player types:
  h                - Human, types moves at the prompt
  r                - Computer, plays random legal moves
  t                - Advanced computer, prefers safe checks and captures

During a game:
  <from> <to>      - Make a move (e.g. e2 e4, e2e4)
  undo             - Take back moves until it is your turn again
  quit             - Abandon the game`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage(display.Colorize(display.Cyan, "Welcome to Chess!"))
	c.ShowMessage("Commands: new, resume <FEN>, color, verbose, history, help/?, quit/exit")
	c.ShowMessage("Example: 'resume 4k3/8/8/8/8/8/8/4K2R w K - 0 1' to start from a puzzle.")
	c.ShowMessage("")
}

func (c *CLI) ShowGameHistory(g *game.Game) {
	c.ShowMessage(fmt.Sprintf("Starting FEN: %s", g.InitialFEN()))

	moves := g.Moves()
	start := 0
	if g.SnapshotAt(0).Board.Turn() == core.ColorBlack && len(moves) > 0 {
		c.ShowMessage(fmt.Sprintf("1. ... | %s", moves[0]))
		start = 1
	}
	for i := start; i < len(moves); i += 2 {
		moveNum := (i-start)/2 + start + 1
		white := moves[i]
		if i+1 < len(moves) {
			c.ShowMessage(fmt.Sprintf("%d. %s | %s", moveNum, white, moves[i+1]))
		} else {
			c.ShowMessage(fmt.Sprintf("%d. %s | ...", moveNum, white))
		}
	}
	c.ShowMessage(fmt.Sprintf("Current FEN: %s", g.CurrentFEN()))
	if g.State().IsOver() {
		c.ShowMessage(fmt.Sprintf("Game state: %s", g.State()))
	} else {
		c.ShowMessage(fmt.Sprintf("To move: %s", display.ColorForTurn(g.NextTurn().String())))
	}
}

func (c *CLI) ShowComputerMove(p *player.Player, result *game.MoveResult) {
	c.ShowMessage(fmt.Sprintf("%s (%s): %s", p.Name, result.Player.Name(), result.Move))
}

func (c *CLI) ShowHumanMove(move core.Move) {
	if c.verbose {
		c.ShowMessage(fmt.Sprintf("Your move: %s", move))
	}
}

func (c *CLI) ShowGameOver(state core.State) {
	c.ShowMessage(fmt.Sprintf("\nGame Over: %s\n", state))
	c.ShowMessage("Start a new game with 'new' or 'resume'.")
}
