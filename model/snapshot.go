package model

import (
	"errors"
	"fmt"
	"strings"
)

const (
	NumPoints         = 24
	CheckersPerPlayer = 15
)

var ErrConservation = errors.New("checker count mismatch")

// Dice holds the faces last shown and the die values not yet played. A
// double is expanded to four remaining values.
type Dice struct {
	Current   []int
	Remaining []int
}

// Snapshot is the complete state of a match at one point in time. Snapshots
// are replaced wholesale on every update and are never modified after they
// are built.
type Snapshot struct {
	GameID        string
	Players       [2]Player
	Points        [NumPoints][]Checker
	Bar           [2][]Checker // Indexed by Color.
	BorneOff      [2][]Checker // Indexed by Color.
	CurrentPlayer PlayerID
	Dice          Dice
	Phase         Phase
	Winner        PlayerID
	InitialRoll   []int
}

// NewSnapshot returns the state of a match nobody has joined yet.
func NewSnapshot() *Snapshot {
	return &Snapshot{Phase: WaitingForPlayers}
}

// Point returns the checkers on point i. Out of range points are empty.
func (s *Snapshot) Point(i int) []Checker {
	if s == nil || i < 1 || i > NumPoints {
		return nil
	}
	return s.Points[i-1]
}

// OnBar returns the checkers of colour c waiting on the bar.
func (s *Snapshot) OnBar(c Color) []Checker {
	if s == nil || c < White || c > Black {
		return nil
	}
	return s.Bar[c]
}

// Off returns the checkers of colour c that have been borne off.
func (s *Snapshot) Off(c Color) []Checker {
	if s == nil || c < White || c > Black {
		return nil
	}
	return s.BorneOff[c]
}

// Count returns the number of checkers of colour c on point i.
func (s *Snapshot) Count(i int, c Color) int {
	var n int
	for _, checker := range s.Point(i) {
		if checker.Color == c {
			n++
		}
	}
	return n
}

// Remaining returns the unplayed dice.
func (s *Snapshot) Remaining() []int {
	if s == nil {
		return nil
	}
	return s.Dice.Remaining
}

// Player returns the player seated as id.
func (s *Snapshot) Player(id PlayerID) (Player, bool) {
	if s == nil || id != Player1 && id != Player2 {
		return Player{}, false
	}
	p := s.Players[id-1]
	if p.ID == NoPlayer {
		return Player{}, false
	}
	return p, true
}

// Tally counts where the checkers of one colour are.
type Tally struct {
	OnPoints int
	OnBar    int
	BorneOff int
}

// Total returns the number of checkers accounted for.
func (t Tally) Total() int {
	return t.OnPoints + t.OnBar + t.BorneOff
}

// Tally counts the checkers of colour c.
func (s *Snapshot) Tally(c Color) Tally {
	var t Tally
	for i := 1; i <= NumPoints; i++ {
		t.OnPoints += s.Count(i, c)
	}
	t.OnBar = len(s.OnBar(c))
	t.BorneOff = len(s.Off(c))
	return t
}

// Validate reports every colour whose checkers do not add up to
// CheckersPerPlayer.
func (s *Snapshot) Validate() error {
	var problems []string
	for _, c := range []Color{White, Black} {
		t := s.Tally(c)
		if t.Total() != CheckersPerPlayer {
			problems = append(problems, fmt.Sprintf("%s has %d on points, %d on bar and %d off", c, t.OnPoints, t.OnBar, t.BorneOff))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrConservation, strings.Join(problems, "; "))
}

// WithTurn returns a copy of s where it is id's turn.
func (s *Snapshot) WithTurn(id PlayerID) *Snapshot {
	next := s.clone()
	next.CurrentPlayer = id
	return next
}

// WithGameOver returns a copy of s where the match has been won by winner.
func (s *Snapshot) WithGameOver(winner PlayerID) *Snapshot {
	next := s.clone()
	next.Phase = GameOver
	next.Winner = winner
	return next
}

// clone copies the top level of s. Checker slices are shared, which is safe
// because snapshots are never modified in place.
func (s *Snapshot) clone() *Snapshot {
	if s == nil {
		return NewSnapshot()
	}
	next := *s
	return &next
}
