package model

import (
	"errors"
	"fmt"
	"testing"
)

// startingSnapshot returns the standard opening position. White moves from
// point 1 towards 24, Black from 24 towards 1.
func startingSnapshot() *Snapshot {
	s := &Snapshot{Phase: PlayerTurn, CurrentPlayer: Player1}
	place := func(point int, c Color, n int) {
		for i := 0; i < n; i++ {
			s.Points[point-1] = append(s.Points[point-1], Checker{ID: fmt.Sprintf("%s%d-%d", c, point, i), Color: c})
		}
	}
	place(1, White, 2)
	place(12, White, 5)
	place(17, White, 3)
	place(19, White, 5)
	place(24, Black, 2)
	place(13, Black, 5)
	place(8, Black, 3)
	place(6, Black, 5)
	return s
}

func TestValidateStartingPosition(t *testing.T) {
	s := startingSnapshot()
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range []Color{White, Black} {
		tally := s.Tally(c)
		if tally.OnPoints != 15 || tally.OnBar != 0 || tally.BorneOff != 0 {
			t.Errorf("unexpected tally for %s: %+v", c, tally)
		}
	}
}

func TestValidateCountsBarAndBorneOff(t *testing.T) {
	s := startingSnapshot()
	// Move one White checker from point 1 to the bar and one from 19 off.
	s.Points[0] = s.Points[0][:1]
	s.Bar[White] = []Checker{{ID: "w-bar", Color: White}}
	s.Points[18] = s.Points[18][:4]
	s.BorneOff[White] = []Checker{{ID: "w-off", Color: White}}
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.BorneOff[White] = append(s.BorneOff[White], Checker{ID: "extra", Color: White})
	err := s.Validate()
	if !errors.Is(err, ErrConservation) {
		t.Fatalf("expected ErrConservation, got %v", err)
	}
}

func TestSnapshotAccessorsTolerateMissingData(t *testing.T) {
	var s *Snapshot
	if len(s.Point(3)) != 0 || len(s.OnBar(White)) != 0 || len(s.Off(Black)) != 0 || len(s.Remaining()) != 0 {
		t.Fatal("nil snapshot should read as empty")
	}
	s = NewSnapshot()
	if len(s.Point(0)) != 0 || len(s.Point(25)) != 0 {
		t.Fatal("out of range points should be empty")
	}
	if _, ok := s.Player(Player1); ok {
		t.Fatal("no player should be seated")
	}
}

func TestWithTurnCopies(t *testing.T) {
	s := startingSnapshot()
	next := s.WithTurn(Player2)
	if s.CurrentPlayer != Player1 {
		t.Fatalf("original snapshot modified: %s", s.CurrentPlayer)
	}
	if next.CurrentPlayer != Player2 {
		t.Fatalf("expected Player2, got %s", next.CurrentPlayer)
	}

	over := next.WithGameOver(Player2)
	if over.Phase != GameOver || over.Winner != Player2 {
		t.Fatalf("unexpected game over state: %s %s", over.Phase, over.Winner)
	}
	if next.Phase != PlayerTurn {
		t.Fatalf("original snapshot modified: %s", next.Phase)
	}
}

func TestLocation(t *testing.T) {
	if !Point(1).IsPoint() || Point(1).Index() != 1 {
		t.Fatal("point 1 should be a point")
	}
	for _, i := range []int{0, 25, -3} {
		if !Point(i).IsZero() {
			t.Errorf("Point(%d) should be the zero location", i)
		}
	}
	if Bar.Index() != 0 || !Bar.IsBar() {
		t.Fatal("bar is not a point")
	}
	if Point(7) != Point(7) || Point(7) == Point(8) || Bar == BearOff {
		t.Fatal("locations should compare by value")
	}
}

func TestMoveWire(t *testing.T) {
	tests := []struct {
		move       MoveCommand
		start, end int
	}{
		{MoveCommand{Origin: Bar, Destination: Point(3), Color: White}, 0, 3},
		{MoveCommand{Origin: Bar, Destination: Point(22), Color: Black}, 0, 22},
		{MoveCommand{Origin: Point(24), Destination: BearOff, Color: White}, 24, 25},
		{MoveCommand{Origin: Point(2), Destination: BearOff, Color: Black}, 2, 0},
		{MoveCommand{Origin: Point(13), Destination: Point(8), Color: Black}, 13, 8},
	}
	for _, test := range tests {
		d, err := test.move.Wire()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", test.move, err)
		}
		if d.StartPointIndex != test.start || d.EndPointIndex != test.end {
			t.Errorf("%s: expected %d/%d, got %d/%d", test.move, test.start, test.end, d.StartPointIndex, d.EndPointIndex)
		}
		decoded, err := DecodeMove(d, test.move.Color)
		if err != nil {
			t.Fatalf("%s: unexpected decode error: %v", test.move, err)
		}
		if decoded != test.move {
			t.Errorf("expected %s, got %s", test.move, decoded)
		}
	}

	if _, err := (MoveCommand{Origin: BearOff, Destination: Point(3)}).Wire(); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	if _, err := (MoveCommand{Origin: Point(3), Destination: Bar}).Wire(); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	if _, err := DecodeMove(MoveData{StartPointIndex: 3, EndPointIndex: 26}, White); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
}
