package core

import (
	"errors"
	"strings"
	"testing"
)

func TestParseSquare(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		want Square
	}{
		{"a1", true, Square{0, 0}},
		{"h8", true, Square{7, 7}},
		{" E4 ", true, Square{4, 3}},
		{"i1", false, Square{}},
		{"a9", false, Square{}},
		{"a", false, Square{}},
		{"", false, Square{}},
	}
	for _, tc := range cases {
		got, err := ParseSquare(tc.in)
		if tc.ok != (err == nil) {
			t.Errorf("%q: err=%v", tc.in, err)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("%q: got %v want %v", tc.in, got, tc.want)
		}
		if tc.ok && got.String() != strings.ToLower(strings.TrimSpace(tc.in)) {
			t.Errorf("%q: round trip %q", tc.in, got.String())
		}
	}
	if (Square{8, 0}).String() != "-" {
		t.Errorf("off-board square should print as -")
	}
}

func TestParseMove(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"e2e4", "e2e4"},
		{"e2 e4", "e2e4"},
		{"e2, e4", "e2e4"},
		{"g1-f3", "g1f3"},
		{"E7 E5", "e7e5"},
		{"e2", ""},
		{"e2e4e5", ""},
		{"e2 e4 e5", ""},
		{"z9 e4", ""},
		{"hello", ""},
	}
	for _, tc := range cases {
		m, err := ParseMove(tc.in)
		if tc.want == "" {
			if err == nil {
				t.Errorf("%q: parsed as %s", tc.in, m)
			}
			continue
		}
		if err != nil || m.String() != tc.want {
			t.Errorf("%q: got %s err=%v", tc.in, m, err)
		}
	}
}

func TestMoveMap(t *testing.T) {
	sq := func(s string) Square {
		out, err := ParseSquare(s)
		if err != nil {
			t.Fatal(err)
		}
		return out
	}
	mm := MoveMap{
		{From: sq("g1"), To: []Square{sq("f3"), sq("h3")}},
		{From: sq("e2"), To: []Square{sq("e3"), sq("e4")}},
	}

	if mm.Empty() || mm.Len() != 4 {
		t.Fatalf("empty=%v len=%d", mm.Empty(), mm.Len())
	}
	if !mm.Contains(Move{sq("e2"), sq("e4")}) || mm.Contains(Move{sq("e2"), sq("f3")}) {
		t.Errorf("Contains mixes origins")
	}
	if !mm.HasDestination(sq("f3")) || mm.HasDestination(sq("e5")) {
		t.Errorf("HasDestination")
	}
	if mm.Destinations(sq("a2")) != nil {
		t.Errorf("unknown origin has destinations")
	}

	var got []string
	for _, m := range mm.Moves() {
		got = append(got, m.String())
	}
	if strings.Join(got, " ") != "g1f3 g1h3 e2e3 e2e4" {
		t.Errorf("order=%v", got)
	}
	if !(MoveMap{}).Empty() || (MoveMap{}).Len() != 0 {
		t.Errorf("zero map")
	}
}

func TestColors(t *testing.T) {
	if OppositeColor(ColorWhite) != ColorBlack || OppositeColor(ColorBlack) != ColorWhite {
		t.Errorf("OppositeColor")
	}
	if Piece('K').Color() != ColorWhite || Piece('q').Color() != ColorBlack || NoPiece.Color() != 0 {
		t.Errorf("piece colors")
	}
	if WinFor(ColorBlack) != StateBlackWins || !WinFor(ColorWhite).IsOver() || StateOngoing.IsOver() {
		t.Errorf("states")
	}
	if Color(0).Valid() || ColorBlack.Name() != "black" || ColorWhite.String() != "w" {
		t.Errorf("color names")
	}
}

func TestParsePlayerType(t *testing.T) {
	cases := map[string]PlayerType{
		"h": PlayerHuman, "": PlayerHuman, "Human": PlayerHuman,
		"r": PlayerRandom, "c": PlayerRandom,
		"t": PlayerTactical, " a ": PlayerTactical,
	}
	for in, want := range cases {
		if got, err := ParsePlayerType(in); err != nil || got != want {
			t.Errorf("%q: got %s err=%v", in, got, err)
		}
	}
	if _, err := ParsePlayerType("x"); err == nil {
		t.Errorf("x accepted")
	}
}

func TestValidate(t *testing.T) {
	ok := NewGameRequest{
		White: PlayerConfig{Type: PlayerHuman},
		Black: PlayerConfig{Type: PlayerTactical, Name: "Deep Blue", Seed: 7},
	}
	if err := Validate(ok); err != nil {
		t.Fatal(err)
	}

	bad := ok
	bad.Black.Type = 7
	bad.FEN = strings.Repeat("8/", 60)
	err := Validate(bad)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err=%v", err)
	}
	for _, want := range []string{"Type must be one of [1 2 3]", "FEN must be at most 100 characters"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("%q missing from %q", want, err.Error())
		}
	}
}
