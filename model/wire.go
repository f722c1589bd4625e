package model

import (
	"encoding/json"
	"fmt"
)

type wirePoint struct {
	PointIndex int       `json:"pointIndex"`
	Checkers   []Checker `json:"checkers"`
}

type wireState struct {
	GameID          string               `json:"gameId"`
	Players         map[string]*Player   `json:"players"`
	Board           []*wirePoint         `json:"board"`
	Bar             map[string][]Checker `json:"bar"`
	BorneOff        map[string][]Checker `json:"borneOff"`
	CurrentPlayerID PlayerID             `json:"currentPlayerId"`
	CurrentDiceRoll []int                `json:"currentDiceRoll"`
	RemainingMoves  []int                `json:"remainingMoves"`
	Phase           Phase                `json:"phase"`
	WinnerID        PlayerID             `json:"winnerId"`
	InitialRoll     []int                `json:"initialRoll"`
}

// DecodeSnapshot parses the server's game state. Missing or null
// collections are treated as empty.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode game state: %w", err)
	}

	s := &Snapshot{
		GameID:        w.GameID,
		CurrentPlayer: w.CurrentPlayerID,
		Phase:         w.Phase,
		Winner:        w.WinnerID,
		InitialRoll:   w.InitialRoll,
		Dice: Dice{
			Current:   w.CurrentDiceRoll,
			Remaining: w.RemainingMoves,
		},
	}

	for key, p := range w.Players {
		if p == nil {
			continue
		}
		id := p.ID
		if id == NoPlayer {
			parsed, err := ParsePlayerID(key)
			if err != nil {
				continue
			}
			id = parsed
		}
		if id != Player1 && id != Player2 {
			continue
		}
		player := *p
		player.ID = id
		s.Players[id-1] = player
	}

	for i, p := range w.Board {
		if p == nil {
			continue
		}
		index := p.PointIndex
		if index < 1 || index > NumPoints {
			index = i + 1
		}
		if index > NumPoints {
			continue
		}
		s.Points[index-1] = append(s.Points[index-1], p.Checkers...)
	}

	// Stocks are keyed by enum names on the server. Each checker knows its
	// own colour, which is all the client needs.
	for _, checkers := range w.Bar {
		for _, checker := range checkers {
			if checker.Color == White || checker.Color == Black {
				s.Bar[checker.Color] = append(s.Bar[checker.Color], checker)
			}
		}
	}
	for _, checkers := range w.BorneOff {
		for _, checker := range checkers {
			if checker.Color == White || checker.Color == Black {
				s.BorneOff[checker.Color] = append(s.BorneOff[checker.Color], checker)
			}
		}
	}
	return s, nil
}
