// Package model defines the client's view of a backgammon match as reported
// by the game server.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Color is the colour of a player's checkers. It fixes the direction of
// travel and the home quadrant for the whole session.
type Color int8

const (
	White Color = iota
	Black
)

// Opponent returns the other colour.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return fmt.Sprintf("Color(%d)", int8(c))
	}
}

// ParseColor parses a colour name or number as sent by the server.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "0":
		return White, nil
	case "black", "1":
		return Black, nil
	}
	return White, fmt.Errorf("unknown color %q", s)
}

func (c *Color) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b)
	if err != nil {
		return fmt.Errorf("color: %w", err)
	} else if v == "" {
		return nil
	}
	color, err := ParseColor(v)
	if err != nil {
		return err
	}
	*c = color
	return nil
}

// PlayerID identifies a seat at the table.
type PlayerID int8

const (
	NoPlayer PlayerID = 0
	Player1  PlayerID = 1
	Player2  PlayerID = 2
)

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	default:
		return "NoPlayer"
	}
}

// Opponent returns the other seat.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

// ParsePlayerID parses a seat given as a number or an enum name.
func ParsePlayerID(s string) (PlayerID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "null", "noplayer":
		return NoPlayer, nil
	case "1", "player1":
		return Player1, nil
	case "2", "player2":
		return Player2, nil
	}
	return NoPlayer, fmt.Errorf("unknown player %q", s)
}

func (p *PlayerID) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b)
	if err != nil {
		return fmt.Errorf("player id: %w", err)
	} else if v == "" {
		return nil
	}
	id, err := ParsePlayerID(v)
	if err != nil {
		return err
	}
	*p = id
	return nil
}

// Phase is the stage of the match. It only moves forward, except when the
// server restarts the match.
type Phase int8

const (
	WaitingForPlayers Phase = iota
	StartingRoll
	PlayerTurn
	GameOver
)

func (p Phase) String() string {
	switch p {
	case WaitingForPlayers:
		return "WaitingForPlayers"
	case StartingRoll:
		return "StartingRoll"
	case PlayerTurn:
		return "PlayerTurn"
	case GameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("Phase(%d)", int8(p))
	}
}

func (p *Phase) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b)
	if err != nil {
		return fmt.Errorf("phase: %w", err)
	} else if v == "" {
		return nil
	}
	for phase := WaitingForPlayers; phase <= GameOver; phase++ {
		if strings.EqualFold(v, phase.String()) {
			*p = phase
			return nil
		}
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < int(WaitingForPlayers) || n > int(GameOver) {
		return fmt.Errorf("unknown phase %q", v)
	}
	*p = Phase(n)
	return nil
}

// unmarshalEnum returns the raw text of a JSON number or string. Null
// returns an empty string.
func unmarshalEnum(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return "", nil
	} else if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	return string(b), nil
}

// Checker is a single physical piece.
type Checker struct {
	ID     string   `json:"id"`
	Player PlayerID `json:"playerId"`
	Color  Color    `json:"color"`
}

// Player describes a seated player.
type Player struct {
	ID    PlayerID `json:"id"`
	Name  string   `json:"name"`
	Color Color    `json:"color"`
}
