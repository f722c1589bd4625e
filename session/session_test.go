package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"codeberg.org/tslocum/pips/dice"
	"codeberg.org/tslocum/pips/model"
)

type recorder struct {
	rolls int
	moves []model.MoveCommand
	err   error
}

func (r *recorder) Roll() error {
	r.rolls++
	return r.err
}

func (r *recorder) Move(m model.MoveCommand) error {
	r.moves = append(r.moves, m)
	return r.err
}

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

type fixed int

func (f fixed) Intn(n int) int {
	return int(f) % n
}

func newSession(t *testing.T) (*Session, *recorder, *clock) {
	t.Helper()
	r := &recorder{}
	c := &clock{t: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)}
	s := New(r, Options{
		Timing: dice.Timing{Tick: 50 * time.Millisecond, Minimum: time.Second, Hold: time.Second},
		Source: fixed(2),
		Now:    c.now,
	})
	return s, r, c
}

func checkers(c model.Color, n int) []model.Checker {
	var l []model.Checker
	for i := 0; i < n; i++ {
		l = append(l, model.Checker{Color: c})
	}
	return l
}

// state returns a game where White has 14 checkers on point 19 and one on
// point 24, and Black has all of its checkers on point 6.
func state(turn model.PlayerID, remaining ...int) *model.Snapshot {
	s := model.NewSnapshot()
	s.Phase = model.PlayerTurn
	s.CurrentPlayer = turn
	s.Points[18] = checkers(model.White, 14)
	s.Points[23] = checkers(model.White, 1)
	s.Points[5] = checkers(model.Black, 15)
	s.Dice = model.Dice{Current: remaining, Remaining: remaining}
	return s
}

func TestClickSendsMove(t *testing.T) {
	s, r, _ := newSession(t)
	s.AssignRole(model.Player1, model.White)
	s.ReplaceState(state(model.Player1, 2))

	if err := s.ClickPoint(19); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := s.View()
	if v.Origin != model.Point(19) || len(v.Targets) != 1 || v.Targets[0] != model.Point(21) {
		t.Fatalf("unexpected selection %s %v", v.Origin, v.Targets)
	}

	if err := s.ClickPoint(21); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.moves) != 1 || r.moves[0].Origin != model.Point(19) || r.moves[0].Destination != model.Point(21) {
		t.Fatalf("unexpected moves %v", r.moves)
	}
	if !s.View().Origin.IsZero() {
		t.Fatal("expected the selection to be cleared")
	}
}

func TestBearOffClick(t *testing.T) {
	s, r, _ := newSession(t)
	s.AssignRole(model.Player1, model.White)
	s.ReplaceState(state(model.Player1, 1))

	s.ClickPoint(24)
	s.ClickBearOff()
	if len(r.moves) != 1 || !r.moves[0].Destination.IsBearOff() {
		t.Fatalf("unexpected moves %v", r.moves)
	}
	d, err := r.moves[0].Wire()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.StartPointIndex != 24 || d.EndPointIndex != 25 {
		t.Fatalf("expected 24/25, got %d/%d", d.StartPointIndex, d.EndPointIndex)
	}
}

func TestSendFailure(t *testing.T) {
	s, r, c := newSession(t)
	r.err = errors.New("closed")
	s.AssignRole(model.Player1, model.White)
	s.ReplaceState(state(model.Player1, 2))

	s.ClickPoint(19)
	err := s.ClickPoint(21)
	if err == nil || !errors.Is(err, r.err) {
		t.Fatalf("expected wrapped send error, got %v", err)
	}
	if n := s.View().Notice; n.Kind != Error {
		t.Fatalf("expected error notice, got %+v", n)
	}

	c.advance(DefaultNoticeDuration)
	s.Update()
	if n := s.View().Notice; n.Message != "" {
		t.Fatalf("expected notice to expire, got %+v", n)
	}
}

func TestNotifyTurnResetsSelection(t *testing.T) {
	s, _, _ := newSession(t)
	s.AssignRole(model.Player1, model.White)
	s.ReplaceState(state(model.Player1, 2, 3))
	s.ClickPoint(19)
	if s.View().Origin.IsZero() {
		t.Fatal("expected a selection")
	}

	s.NotifyTurn(model.Player2)
	if !s.View().Origin.IsZero() {
		t.Fatal("expected the selection to be cleared on turn change")
	}
	if s.Snapshot().CurrentPlayer != model.Player2 {
		t.Fatalf("expected Player2's turn, got %s", s.Snapshot().CurrentPlayer)
	}
	if s.MyTurn() {
		t.Fatal("expected the opponent's turn")
	}
}

func TestClickIgnoredOnOpponentTurn(t *testing.T) {
	s, r, _ := newSession(t)
	s.AssignRole(model.Player2, model.Black)
	s.ReplaceState(state(model.Player1, 2))
	s.ClickPoint(6)
	s.ClickPoint(4)
	if len(r.moves) != 0 {
		t.Fatalf("expected no moves, got %v", r.moves)
	}
}

func TestRoll(t *testing.T) {
	s, r, c := newSession(t)
	s.AssignRole(model.Player1, model.White)
	s.ReplaceState(state(model.Player1))

	if !s.CanRoll() {
		t.Fatal("expected to be able to roll")
	}
	if err := s.Roll(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.rolls != 1 {
		t.Fatalf("expected 1 roll, got %d", r.rolls)
	}
	v := s.View()
	if !v.Rolling || v.CanRoll || len(v.Dice) != 2 {
		t.Fatalf("unexpected view %+v", v)
	}

	// A second request while rolling is ignored.
	s.Roll()
	if r.rolls != 1 {
		t.Fatalf("expected 1 roll, got %d", r.rolls)
	}

	c.advance(100 * time.Millisecond)
	s.ReplaceState(state(model.Player1, 4, 1))
	s.Update()
	if !s.View().Rolling {
		t.Fatal("expected the animation to continue")
	}

	c.advance(900 * time.Millisecond)
	s.Update()
	v = s.View()
	if v.Rolling || len(v.Dice) != 2 || v.Dice[0] != 4 || v.Dice[1] != 1 {
		t.Fatalf("expected settled 4-1, got %+v", v.Dice)
	}
}

func TestRollResultAfterTurnPassed(t *testing.T) {
	s, _, c := newSession(t)
	s.AssignRole(model.Player1, model.White)
	s.ReplaceState(state(model.Player1))
	if err := s.Roll(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No move is possible: the turn passes before the state arrives.
	s.NotifyTurn(model.Player2)
	c.advance(100 * time.Millisecond)
	next := state(model.Player2)
	next.Dice = model.Dice{Current: []int{6, 6}}
	s.ReplaceState(next)
	s.Update()
	if !s.View().Rolling {
		t.Fatal("expected the animation to continue")
	}

	c.advance(900 * time.Millisecond)
	s.Update()
	v := s.View()
	if v.Rolling || len(v.Dice) != 2 || v.Dice[0] != 6 || v.Dice[1] != 6 {
		t.Fatalf("expected settled 6-6, got %+v", v.Dice)
	}

	c.advance(time.Second)
	s.Update()
	if v := s.View(); v.Dice != nil {
		t.Fatalf("expected the dice to be cleared, got %v", v.Dice)
	}
}

func TestCanRollWaitsForHold(t *testing.T) {
	s, _, c := newSession(t)
	s.AssignRole(model.Player1, model.White)
	s.ReplaceState(state(model.Player1))
	s.Roll()

	next := state(model.Player1)
	next.Dice = model.Dice{Current: []int{6, 5}}
	s.ReplaceState(next)
	c.advance(time.Second)
	s.Update()
	if s.View().Rolling {
		t.Fatal("expected the roll to settle")
	}
	if s.CanRoll() {
		t.Fatal("expected no roll while the faces are held")
	}

	c.advance(time.Second)
	s.Update()
	if !s.CanRoll() {
		t.Fatal("expected to be able to roll after the hold")
	}
}

func TestRollNotAllowed(t *testing.T) {
	s, r, _ := newSession(t)
	s.AssignRole(model.Player1, model.White)
	s.ReplaceState(state(model.Player1, 3))
	s.Roll()

	s.ReplaceState(state(model.Player2))
	s.Roll()
	if r.rolls != 0 {
		t.Fatalf("expected no rolls, got %d", r.rolls)
	}
}

func TestErrorCancelsLocalRoll(t *testing.T) {
	s, _, _ := newSession(t)
	s.AssignRole(model.Player1, model.White)
	s.ReplaceState(state(model.Player1))
	s.Roll()

	s.Error("Not your turn.")
	v := s.View()
	if v.Rolling || !v.CanRoll {
		t.Fatal("expected the roll to be cancelled")
	}
	if v.Notice.Kind != Error || v.Notice.Message != "Not your turn." {
		t.Fatalf("unexpected notice %+v", v.Notice)
	}
}

func TestInvalidMove(t *testing.T) {
	s, _, _ := newSession(t)
	s.AssignRole(model.Player1, model.White)
	s.ReplaceState(state(model.Player1, 2))
	s.ClickPoint(19)

	s.InvalidMove("blocked")
	v := s.View()
	if !v.Origin.IsZero() {
		t.Fatal("expected the selection to be cleared")
	}
	if v.Notice.Kind != Warning || !strings.Contains(v.Notice.Message, "blocked") {
		t.Fatalf("unexpected notice %+v", v.Notice)
	}
}

func TestGameOver(t *testing.T) {
	s, _, _ := newSession(t)
	s.AssignRole(model.Player1, model.White)
	s.ReplaceState(state(model.Player1, 2))
	s.ClickPoint(19)

	s.GameOver(model.Player1)
	v := s.View()
	if v.Snapshot.Phase != model.GameOver || v.Snapshot.Winner != model.Player1 {
		t.Fatalf("unexpected state %s %s", v.Snapshot.Phase, v.Snapshot.Winner)
	}
	if !v.Origin.IsZero() {
		t.Fatal("expected the selection to be cleared")
	}
	if v.Notice.Kind != Success || !strings.Contains(v.Notice.Message, "You win") {
		t.Fatalf("unexpected notice %+v", v.Notice)
	}

	s.GameOver(model.Player2)
	if s.Snapshot().Winner != model.Player2 {
		t.Fatal("expected the winner to be updated")
	}
}

func TestWaitingAndStarted(t *testing.T) {
	s, _, _ := newSession(t)
	s.Waiting()
	if v := s.View(); !v.Waiting || v.Status == "" {
		t.Fatalf("expected waiting status, got %+v", v)
	}

	s.Started(state(model.Player2))
	if v := s.View(); v.Waiting || v.Notice.Kind != Success {
		t.Fatalf("expected the game to be started, got %+v", v)
	}
}

func TestAssignRoleResets(t *testing.T) {
	s, _, _ := newSession(t)
	s.AssignRole(model.Player1, model.White)
	s.ReplaceState(state(model.Player1, 2))
	s.ClickPoint(19)
	s.AssignRole(model.Player1, model.White)
	if !s.View().Origin.IsZero() {
		t.Fatal("expected the selection to be cleared")
	}
	if id, c := s.Player(); id != model.Player1 || c != model.White {
		t.Fatalf("unexpected player %s %s", id, c)
	}
}

func TestViewPips(t *testing.T) {
	s, _, _ := newSession(t)
	s.ReplaceState(state(model.Player1))
	v := s.View()
	if v.Pips[model.White] != 14*6+1 {
		t.Fatalf("expected White pip count %d, got %d", 14*6+1, v.Pips[model.White])
	}
	if v.Pips[model.Black] != 15*6 {
		t.Fatalf("expected Black pip count %d, got %d", 15*6, v.Pips[model.Black])
	}
}

func TestViewSeats(t *testing.T) {
	s, _, _ := newSession(t)
	s.AssignRole(model.Player2, model.Black)

	v := s.View()
	if v.Seats[model.White].Joined {
		t.Fatal("expected the White seat to be empty")
	}
	if seat := v.Seats[model.Black]; !seat.Joined || !seat.You {
		t.Fatalf("expected the local player as Black, got %+v", seat)
	}

	next := state(model.Player1, 3, 1)
	next.Players[0] = model.Player{ID: model.Player1, Name: "Alice", Color: model.White}
	next.Players[1] = model.Player{ID: model.Player2, Color: model.Black}
	s.ReplaceState(next)

	v = s.View()
	white, black := v.Seats[model.White], v.Seats[model.Black]
	if white.Name != "Alice" || !white.Joined || white.You || !white.Turn {
		t.Fatalf("unexpected White seat %+v", white)
	}
	if black.Name != "Player2" || !black.You || black.Turn {
		t.Fatalf("unexpected Black seat %+v", black)
	}
}
