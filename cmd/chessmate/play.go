package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"chessmate/internal/cli"
	"chessmate/internal/display"
	"chessmate/internal/player"
	"chessmate/internal/service"
	clitransport "chessmate/internal/transport/cli"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
	"golang.org/x/term"
)

type playCmd struct {
	theme   string
	seed    int64
	verbose bool
	history string
}

func (*playCmd) Name() string     { return "play" }
func (*playCmd) Synopsis() string { return "Play chess from the command line" }
func (*playCmd) Usage() string {
	return `play [flags]

Play chess on the command-line, human or computer on either side.
`
}

func (c *playCmd) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.theme, "theme", "", "board color theme (off|brown|green|gray), brown on a terminal")
	flags.Int64Var(&c.seed, "seed", 0, "random seed for computer players")
	flags.BoolVar(&c.verbose, "v", false, "trace computer move selection")
	flags.StringVar(&c.history, "history", "", "readline history file")
}

// terminal turns Ctrl-C into end of input, which quits the running game
type terminal struct {
	*readline.Instance
}

func (t terminal) Readline() (string, error) {
	line, err := t.Instance.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

func (c *playCmd) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.seed == 0 {
		c.seed = time.Now().Unix()
	}

	display.Enabled = term.IsTerminal(int(os.Stdout.Fd()))
	if c.theme == "" {
		c.theme = string(cli.ThemeOff)
		if display.Enabled {
			c.theme = string(cli.ThemeBrown)
		}
	}

	var in player.LineReader
	if term.IsTerminal(int(os.Stdin.Fd())) {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          display.Prompt("chess"),
			HistoryFile:     c.history,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			log.Fatalf("readline: %v", err)
		}
		defer rl.Close()
		in = terminal{rl}
	} else {
		in = cli.NewLineScanner(os.Stdin)
	}

	view := cli.New(in, os.Stdout)
	if err := view.SetTheme(cli.ColorTheme(c.theme)); err != nil {
		log.Printf("-theme: %v", err)
		return subcommands.ExitUsageError
	}

	handler := clitransport.New(service.New(), view, c.seed)
	if c.verbose {
		handler.ProcessCommand(&cli.Command{Type: cli.CmdVerbose})
	}
	handler.Run()

	return subcommands.ExitSuccess
}
