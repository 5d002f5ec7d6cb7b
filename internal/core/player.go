package core

import (
	"fmt"
	"strings"
)

type PlayerType int

const (
	PlayerHuman PlayerType = iota + 1
	PlayerRandom
	PlayerTactical
)

func (t PlayerType) String() string {
	switch t {
	case PlayerHuman:
		return "human"
	case PlayerRandom:
		return "random"
	case PlayerTactical:
		return "tactical"
	default:
		return "unknown"
	}
}

// DefaultName is the display name used when a config leaves Name empty
func (t PlayerType) DefaultName() string {
	switch t {
	case PlayerHuman:
		return "Human"
	case PlayerRandom:
		return "Computer"
	case PlayerTactical:
		return "Advanced Computer"
	default:
		return "Player"
	}
}

// ParsePlayerType accepts the short and long forms typed at the prompt
func ParsePlayerType(s string) (PlayerType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "human", "":
		return PlayerHuman, nil
	case "r", "random", "c", "computer":
		return PlayerRandom, nil
	case "t", "tactical", "a", "advanced":
		return PlayerTactical, nil
	default:
		return 0, fmt.Errorf("unknown player type %q (use h, r or t)", s)
	}
}

// PlayerConfig describes a player before it joins a game
type PlayerConfig struct {
	Type PlayerType `json:"type" validate:"required,oneof=1 2 3"`
	Name string     `json:"name,omitempty" validate:"omitempty,max=32"`
	Seed int64      `json:"seed,omitempty" validate:"omitempty,min=0"` // Only for computer
}

// DisplayName returns the configured name or the type default
func (c PlayerConfig) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Type.DefaultName()
}
