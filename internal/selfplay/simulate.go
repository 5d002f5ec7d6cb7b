// Package selfplay plays computer strategies against each other and
// aggregates the results.
package selfplay

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"sort"

	"chessmate/internal/board"
	"chessmate/internal/core"
	"chessmate/internal/game"
	"chessmate/internal/service"

	"golang.org/x/sync/errgroup"
)

type Config struct {
	// P1 plays white in the first game, P2 black
	P1 core.PlayerType `validate:"required,oneof=2 3"`
	P2 core.PlayerType `validate:"required,oneof=2 3"`

	Games   int   `validate:"min=1,max=100000"`
	Threads int   `validate:"min=1,max=256"`
	Seed    int64 `validate:"min=0"`
	Cutoff  int   `validate:"min=1"` // plies
	Swap    bool
	FEN     string `validate:"omitempty,max=100"`

	Verbose bool
	Logger  *log.Logger `validate:"-"`
}

type PlayerStats struct {
	Wins      int
	WhiteWins int
	BlackWins int
}

type Stats struct {
	Players    [2]PlayerStats
	White      int
	Black      int
	Draws      int
	Stalemates int
	Cutoff     int

	Games []Result
}

func (s *Stats) Count() int {
	return s.White + s.Black + s.Draws + s.Stalemates + s.Cutoff
}

func (s *Stats) Merge(other *Stats) Stats {
	out := *s
	for i := range out.Players {
		out.Players[i].Wins += other.Players[i].Wins
		out.Players[i].WhiteWins += other.Players[i].WhiteWins
		out.Players[i].BlackWins += other.Players[i].BlackWins
	}
	out.White += other.White
	out.Black += other.Black
	out.Draws += other.Draws
	out.Stalemates += other.Stalemates
	out.Cutoff += other.Cutoff
	out.Games = append(append([]Result(nil), s.Games...), other.Games...)
	return out
}

// add records one finished game
func (s *Stats) add(r Result) {
	switch r.State {
	case core.StateWhiteWins:
		s.White++
	case core.StateBlackWins:
		s.Black++
	case core.StateDraw:
		s.Draws++
	case core.StateStalemate:
		s.Stalemates++
	default:
		s.Cutoff++
	}

	if winner := r.Winner(); winner != 0 {
		pst := &s.Players[0]
		if winner != r.P1Color {
			pst = &s.Players[1]
		}
		pst.Wins++
		if winner == core.ColorWhite {
			pst.WhiteWins++
		} else {
			pst.BlackWins++
		}
	}
	s.Games = append(s.Games, r)
}

type gameSpec struct {
	i       int
	p1color core.Color
	p1Seed  int64
	p2Seed  int64
}

type Result struct {
	Index    int
	P1Color  core.Color
	Initial  string
	FinalFEN string
	Moves    []core.Move
	State    core.State
}

// Winner is the winning color, zero for draws and cut off games
func (r *Result) Winner() core.Color {
	switch r.State {
	case core.StateWhiteWins:
		return core.ColorWhite
	case core.StateBlackWins:
		return core.ColorBlack
	}
	return 0
}

// Simulate plays every configured game and returns the aggregate. Games are
// recorded in Stats.Games in the order they were scheduled, so a fixed seed
// gives the same Stats regardless of Threads.
func Simulate(ctx context.Context, c *Config) (Stats, error) {
	if err := core.Validate(c); err != nil {
		return Stats{}, err
	}
	logger := c.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	initial := board.New()
	if c.FEN != "" {
		b, err := board.ParseFEN(c.FEN)
		if err != nil {
			return Stats{}, err
		}
		initial = b
	}

	svc := service.New()
	defer svc.Close()

	grp, ctx := errgroup.WithContext(ctx)
	gc := make(chan gameSpec)

	grp.Go(func() error {
		defer close(gc)
		r := rand.New(rand.NewSource(c.Seed))
		n := c.Games
		if c.Swap {
			n *= 2
		}
		for g := 0; g < n; g++ {
			p1color := core.ColorWhite
			if c.Swap && g%2 == 1 {
				p1color = core.ColorBlack
			}
			spec := gameSpec{
				i:       g,
				p1color: p1color,
				p1Seed:  r.Int63(),
				p2Seed:  r.Int63(),
			}
			select {
			case gc <- spec:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	// Each worker keeps its own tally, merged once all games are in
	perWorker := make([]Stats, c.Threads)
	for i := range perWorker {
		st := &perWorker[i]
		grp.Go(func() error {
			for spec := range gc {
				r, err := play(ctx, svc, c, initial.FEN(), spec, logger)
				if err != nil {
					return err
				}
				if c.Verbose {
					logger.Printf("game n=%d plies=%d p1=%s state=%s",
						r.Index, len(r.Moves), r.P1Color.Name(), r.State)
				}
				st.add(r)
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return Stats{}, err
	}

	var st Stats
	for i := range perWorker {
		st = st.Merge(&perWorker[i])
	}
	sort.Slice(st.Games, func(i, j int) bool { return st.Games[i].Index < st.Games[j].Index })
	return st, nil
}

func play(ctx context.Context, svc *service.Service, c *Config, fen string, spec gameSpec, logger *log.Logger) (Result, error) {
	p1 := core.PlayerConfig{Type: c.P1, Seed: spec.p1Seed}
	p2 := core.PlayerConfig{Type: c.P2, Seed: spec.p2Seed}
	req := core.NewGameRequest{White: p1, Black: p2, FEN: fen}
	if spec.p1color == core.ColorBlack {
		req.White, req.Black = p2, p1
	}

	var tracer *log.Logger
	if c.Verbose {
		tracer = logger
	}
	id, err := svc.NewGame(req, nil, io.Discard, tracer)
	if err != nil {
		return Result{}, fmt.Errorf("game %d: %w", spec.i, err)
	}
	defer svc.DeleteGame(id)

	g, err := svc.GetGame(id)
	if err != nil {
		return Result{}, err
	}

	for ply := 0; ply < c.Cutoff && !g.State().IsOver(); ply++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if _, err := svc.PlayTurn(id); err != nil {
			return Result{}, fmt.Errorf("game %d ply %d: %w", spec.i, ply, err)
		}
	}

	return result(spec, g), nil
}

func result(spec gameSpec, g *game.Game) Result {
	return Result{
		Index:    spec.i,
		P1Color:  spec.p1color,
		Initial:  g.InitialFEN(),
		FinalFEN: g.CurrentFEN(),
		Moves:    g.Moves(),
		State:    g.State(),
	}
}
