package selfplay

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"chessmate/internal/board"
	"chessmate/internal/core"
)

func config() *Config {
	return &Config{
		P1:      core.PlayerTactical,
		P2:      core.PlayerRandom,
		Games:   3,
		Threads: 2,
		Seed:    42,
		Cutoff:  40,
		Swap:    true,
	}
}

func TestSimulate(t *testing.T) {
	st, err := Simulate(context.Background(), config())
	if err != nil {
		t.Fatal(err)
	}
	if st.Count() != 6 || len(st.Games) != 6 {
		t.Fatalf("count=%d games=%d, want 6", st.Count(), len(st.Games))
	}

	wins := st.Players[0].Wins + st.Players[1].Wins
	if wins != st.White+st.Black {
		t.Errorf("player wins %d != color wins %d", wins, st.White+st.Black)
	}
	for i, r := range st.Games {
		if r.Index != i {
			t.Errorf("game %d recorded at %d", r.Index, i)
		}
		want := core.ColorWhite
		if i%2 == 1 {
			want = core.ColorBlack
		}
		if r.P1Color != want {
			t.Errorf("game %d: p1 played %s", i, r.P1Color.Name())
		}
		if len(r.Moves) > 40 {
			t.Errorf("game %d: %d plies past the cutoff", i, len(r.Moves))
		}
		if r.State == core.StateOngoing && len(r.Moves) != 40 {
			t.Errorf("game %d: cut off after %d plies", i, len(r.Moves))
		}
		if r.Initial != board.StartingFEN {
			t.Errorf("game %d: initial %q", i, r.Initial)
		}
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	one := config()
	one.Threads = 1
	many := config()
	many.Threads = 4

	a, err := Simulate(context.Background(), one)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Simulate(context.Background(), many)
	if err != nil {
		t.Fatal(err)
	}

	if a.Count() != b.Count() || len(b.Games) != len(a.Games) {
		t.Fatalf("merged workers: count=%d games=%d, want %d", b.Count(), len(b.Games), a.Count())
	}
	for i := range a.Games {
		if b.Games[i].Index != i {
			t.Errorf("game %d recorded at %d", b.Games[i].Index, i)
		}
		if a.Games[i].FinalFEN != b.Games[i].FinalFEN {
			t.Errorf("game %d: %q != %q", i, a.Games[i].FinalFEN, b.Games[i].FinalFEN)
		}
	}
	if a.Players != b.Players || a.White != b.White || a.Black != b.Black || a.Cutoff != b.Cutoff {
		t.Errorf("stats differ: %+v != %+v", a.Players, b.Players)
	}
}

func TestSimulateFromPosition(t *testing.T) {
	c := config()
	// Ra8 is the only check and it mates
	c.FEN = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"
	c.P1 = core.PlayerTactical
	c.Swap = false
	c.Games = 2

	st, err := Simulate(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	if st.White != 2 || st.Players[0].WhiteWins != 2 {
		t.Errorf("white=%d p1=%+v, want two quick wins", st.White, st.Players[0])
	}
	for _, r := range st.Games {
		if len(r.Moves) != 1 {
			t.Errorf("game %d took %d plies", r.Index, len(r.Moves))
		}
	}
}

func TestSimulateFinishedPosition(t *testing.T) {
	c := config()
	c.FEN = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	c.Swap = false
	c.Games = 1

	st, err := Simulate(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	if st.Stalemates != 1 || len(st.Games[0].Moves) != 0 {
		t.Errorf("stalemates=%d moves=%d", st.Stalemates, len(st.Games[0].Moves))
	}
}

func TestSimulateVerbose(t *testing.T) {
	var buf bytes.Buffer
	c := config()
	c.Games = 1
	c.Swap = false
	c.Verbose = true
	c.Logger = log.New(&buf, "", 0)

	if _, err := Simulate(context.Background(), c); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "game n=0 plies=") {
		t.Errorf("missing game summary:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "(safe, ") && !strings.Contains(buf.String(), "(unfiltered, ") {
		t.Errorf("missing tactical trace:\n%s", buf.String())
	}
}

func TestSimulateInvalidConfig(t *testing.T) {
	cases := []func(c *Config){
		func(c *Config) { c.P1 = core.PlayerHuman },
		func(c *Config) { c.P2 = 0 },
		func(c *Config) { c.Games = 0 },
		func(c *Config) { c.Threads = 0 },
		func(c *Config) { c.Cutoff = 0 },
		func(c *Config) { c.Seed = -5 },
	}
	for i, mutate := range cases {
		c := config()
		mutate(c)
		if _, err := Simulate(context.Background(), c); !errors.Is(err, core.ErrInvalidConfig) {
			t.Errorf("%d: err=%v", i, err)
		}
	}

	c := config()
	c.FEN = "not a fen"
	if _, err := Simulate(context.Background(), c); !errors.Is(err, core.ErrInvalidFEN) {
		t.Errorf("fen: err=%v", err)
	}
}

func TestSimulateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Simulate(ctx, config()); !errors.Is(err, context.Canceled) {
		t.Errorf("err=%v", err)
	}
}

func TestMerge(t *testing.T) {
	a := Stats{White: 1, Draws: 2, Games: []Result{{Index: 0}}}
	a.Players[0].Wins = 1
	a.Players[0].WhiteWins = 1
	b := Stats{Black: 3, Stalemates: 1, Cutoff: 4}
	b.Players[1].Wins = 3
	b.Players[1].BlackWins = 3

	m := a.Merge(&b)
	if m.Count() != 11 {
		t.Errorf("count=%d", m.Count())
	}
	if m.Players[0].Wins != 1 || m.Players[1].BlackWins != 3 {
		t.Errorf("players=%+v", m.Players)
	}
	if len(m.Games) != 1 || a.Count() != 3 {
		t.Errorf("merge changed its receiver or lost games")
	}
}
