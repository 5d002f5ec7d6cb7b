package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"chessmate/internal/core"
	"chessmate/internal/selfplay"

	"github.com/google/subcommands"
)

type selfplayCmd struct {
	white string
	black string
	seed  int64

	games  int
	cutoff int
	swap   bool
	fen    string

	threads int
	verbose bool
}

func (*selfplayCmd) Name() string     { return "selfplay" }
func (*selfplayCmd) Synopsis() string { return "Play two computer strategies against each other and report results" }
func (*selfplayCmd) Usage() string {
	return `selfplay [flags]
`
}

func (c *selfplayCmd) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.white, "white", "t", "p1 strategy, white in the first game (r|t)")
	flags.StringVar(&c.black, "black", "r", "p2 strategy, black in the first game (r|t)")

	flags.Int64Var(&c.seed, "seed", 0, "starting random seed")
	flags.IntVar(&c.games, "games", 10, "number of games to play per color")
	flags.IntVar(&c.cutoff, "cutoff", 300, "cut games off after how many plies")
	flags.BoolVar(&c.swap, "swap", true, "swap colors each game")
	flags.StringVar(&c.fen, "fen", "", "start every game from this position")
	flags.IntVar(&c.threads, "threads", runtime.NumCPU(), "number of parallel games")
	flags.BoolVar(&c.verbose, "v", false, "verbose output")
}

func (c *selfplayCmd) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.seed == 0 {
		c.seed = time.Now().Unix()
	}

	p1, err := core.ParsePlayerType(c.white)
	if err != nil {
		log.Printf("-white: %v", err)
		return subcommands.ExitUsageError
	}
	p2, err := core.ParsePlayerType(c.black)
	if err != nil {
		log.Printf("-black: %v", err)
		return subcommands.ExitUsageError
	}

	cfg := &selfplay.Config{
		P1:      p1,
		P2:      p2,
		Games:   c.games,
		Threads: c.threads,
		Seed:    c.seed,
		Cutoff:  c.cutoff,
		Swap:    c.swap,
		FEN:     c.fen,
		Verbose: c.verbose,
		Logger:  log.Default(),
	}

	st, err := selfplay.Simulate(ctx, cfg)
	if err != nil {
		log.Printf("selfplay: %v", err)
		return subcommands.ExitFailure
	}

	log.Printf("done games=%d seed=%d white=%d black=%d draws=%d stalemates=%d cutoff=%d",
		st.Count(), c.seed, st.White, st.Black, st.Draws, st.Stalemates, st.Cutoff)

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\twhite\tblack\tsum\n")
	fmt.Fprintf(tw, "p1 (%s)\t%d\t%d\t%d\n", p1, st.Players[0].WhiteWins, st.Players[0].BlackWins, st.Players[0].Wins)
	fmt.Fprintf(tw, "p2 (%s)\t%d\t%d\t%d\n", p2, st.Players[1].WhiteWins, st.Players[1].BlackWins, st.Players[1].Wins)
	fmt.Fprintf(tw, "sum\t%d\t%d\t%d\n",
		st.Players[0].WhiteWins+st.Players[1].WhiteWins,
		st.Players[0].BlackWins+st.Players[1].BlackWins,
		st.Players[0].Wins+st.Players[1].Wins,
	)
	tw.Flush()

	return subcommands.ExitSuccess
}
