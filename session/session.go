// Package session holds the state of a single game as seen by the local
// player. Every change to that state goes through a Session method: events
// from the server, clicks, roll requests and clock updates.
package session

import (
	"fmt"
	"log"
	"time"

	"codeberg.org/tslocum/gotext"
	"codeberg.org/tslocum/pips/dice"
	"codeberg.org/tslocum/pips/model"
	"codeberg.org/tslocum/pips/rules"
	"codeberg.org/tslocum/pips/selection"
)

// Sender delivers commands to the game server.
type Sender interface {
	Roll() error
	Move(model.MoveCommand) error
}

// Options configures a Session. Zero values select the defaults.
type Options struct {
	Timing         dice.Timing
	Source         dice.Source
	NoticeDuration time.Duration

	// Now returns the current time. It defaults to time.Now.
	Now func() time.Time
}

// Session is the state of a game. It is not safe for concurrent use: server
// events must be applied from the same goroutine that handles input.
type Session struct {
	sender Sender
	now    func() time.Time

	noticeDuration time.Duration

	snapshot *model.Snapshot
	player   model.PlayerID
	color    model.Color

	selection *selection.Controller
	animator  *dice.Animator

	status  string
	notice  Notice
	waiting bool
}

// New returns a new session which sends commands via sender.
func New(sender Sender, o Options) *Session {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NoticeDuration <= 0 {
		o.NoticeDuration = DefaultNoticeDuration
	}
	if o.Timing == (dice.Timing{}) {
		o.Timing = dice.DefaultTiming()
	}
	return &Session{
		sender:         sender,
		now:            o.Now,
		noticeDuration: o.NoticeDuration,
		snapshot:       model.NewSnapshot(),
		selection:      selection.NewController(model.NoPlayer, model.White),
		animator:       dice.NewAnimator(o.Timing, o.Source),
	}
}

// Snapshot returns the last applied game state. It is never nil.
func (s *Session) Snapshot() *model.Snapshot {
	return s.snapshot
}

// Player returns the local player's id and colour.
func (s *Session) Player() (model.PlayerID, model.Color) {
	return s.player, s.color
}

// MyTurn returns whether it is the local player's turn.
func (s *Session) MyTurn() bool {
	return s.player != model.NoPlayer && s.snapshot.CurrentPlayer == s.player
}

// AssignRole sets the local player's id and colour.
func (s *Session) AssignRole(id model.PlayerID, c model.Color) {
	s.player, s.color = id, c
	s.selection.SetPlayer(id, c)
	s.selection.Sync(s.snapshot)
	s.Notify(Info, gotext.Get("You are playing as %s.", colorName(c)))
}

// ReplaceState applies a new game state from the server.
func (s *Session) ReplaceState(next *model.Snapshot) {
	s.replace(next, true)
}

// replace applies next. Snapshots derived locally from a partial event do
// not carry new dice and are not shown to the animator.
func (s *Session) replace(next *model.Snapshot, observe bool) {
	if next == nil {
		return
	}
	if err := next.Validate(); err != nil {
		log.Printf("*** Warning: %s", err)
	}

	prev := s.snapshot
	s.snapshot = next
	if next.Phase != model.WaitingForPlayers {
		s.waiting = false
	}
	s.selection.Sync(next)
	if observe {
		s.animator.Observe(next, s.MyTurn(), s.now())
	}

	if prev.Phase != model.GameOver && next.Phase == model.GameOver {
		s.announceWinner(next.Winner)
	}
}

// Started applies the initial game state.
func (s *Session) Started(initial *model.Snapshot) {
	s.waiting = false
	s.ReplaceState(initial)
	s.Notify(Success, gotext.Get("Game started!"))
}

// NotifyTurn changes whose turn it is.
func (s *Session) NotifyTurn(id model.PlayerID) {
	s.replace(s.snapshot.WithTurn(id), false)
	if s.MyTurn() && s.snapshot.Phase == model.PlayerTurn {
		s.Notify(Info, gotext.Get("It is your turn."))
	}
}

// GameOver ends the game.
func (s *Session) GameOver(winner model.PlayerID) {
	if s.snapshot.Phase == model.GameOver {
		if s.snapshot.Winner == winner {
			return
		}
		s.snapshot = s.snapshot.WithGameOver(winner)
		s.announceWinner(winner)
		return
	}
	s.ReplaceState(s.snapshot.WithGameOver(winner))
}

// InvalidMove reports a move rejected by the server.
func (s *Session) InvalidMove(reason string) {
	s.selection.Reset()
	s.Notify(Warning, gotext.Get("Invalid move: %s", reason))
}

// Error reports an error sent by the server. A local roll which has not
// received its result is cancelled.
func (s *Session) Error(message string) {
	if s.animator.Rolling() && s.animator.Local() {
		s.animator.Reset()
	}
	s.Notify(Error, message)
}

// Waiting marks the session as waiting for an opponent.
func (s *Session) Waiting() {
	s.waiting = true
	s.SetStatus(gotext.Get("Waiting for opponent..."))
}

// SetStatus sets the status line.
func (s *Session) SetStatus(status string) {
	s.status = status
}

// Notify shows a notice.
func (s *Session) Notify(kind NoticeKind, message string) {
	s.notice = Notice{
		Message: message,
		Kind:    kind,
		Expires: s.now().Add(s.noticeDuration),
	}
}

// ClearNotice hides the current notice.
func (s *Session) ClearNotice() {
	s.notice = Notice{}
}

// ClickPoint handles a click on point i.
func (s *Session) ClickPoint(i int) error {
	return s.click(model.Point(i))
}

// ClickBar handles a click on the local player's bar.
func (s *Session) ClickBar() error {
	return s.click(model.Bar)
}

// ClickBearOff handles a click on the local player's bear-off tray.
func (s *Session) ClickBearOff() error {
	return s.click(model.BearOff)
}

// Cancel handles a click outside of the board. Any selection is cleared.
func (s *Session) Cancel() {
	s.click(model.Location{})
}

func (s *Session) click(l model.Location) error {
	move, ok := s.selection.Click(s.snapshot, l)
	if !ok {
		return nil
	}
	err := s.sender.Move(move)
	if err != nil {
		s.Notify(Error, gotext.Get("Failed to send move."))
		return fmt.Errorf("send move %s: %w", move, err)
	}
	return nil
}

// CanRoll returns whether the local player may roll. Rolling is not offered
// while a roll without moves is still shown.
func (s *Session) CanRoll() bool {
	return s.MyTurn() && s.snapshot.Phase == model.PlayerTurn &&
		len(s.snapshot.Remaining()) == 0 && !s.animator.Rolling() && !s.animator.Holding()
}

// Roll requests a roll of the dice. It does nothing when the local player
// may not roll.
func (s *Session) Roll() error {
	if !s.CanRoll() {
		return nil
	}
	s.animator.Start(s.now())
	err := s.sender.Roll()
	if err != nil {
		s.animator.Reset()
		s.Notify(Error, gotext.Get("Failed to roll."))
		return fmt.Errorf("send roll: %w", err)
	}
	return nil
}

// Update advances animations and expires notices.
func (s *Session) Update() {
	now := s.now()
	s.animator.Update(now)
	if s.notice.Message != "" && !s.notice.Active(now) {
		s.notice = Notice{}
	}
}

// View is a read-only projection of the session used for drawing.
type View struct {
	Snapshot *model.Snapshot
	Player   model.PlayerID
	Color    model.Color
	MyTurn   bool
	Waiting  bool

	Origin  model.Location
	Targets []model.Location

	Dice    []int
	Rolling bool
	CanRoll bool

	Status string
	Notice Notice

	// Pips holds the pip count of each colour.
	Pips [2]int

	// Seats describes the player of each colour.
	Seats [2]Seat
}

// Seat describes the player seated with one colour.
type Seat struct {
	Name   string
	Joined bool
	// You is set for the local player.
	You bool
	// Turn is set while it is this player's turn.
	Turn bool
}

// View returns the current view.
func (s *Session) View() View {
	origin, _ := s.selection.Origin()
	v := View{
		Snapshot: s.snapshot,
		Player:   s.player,
		Color:    s.color,
		MyTurn:   s.MyTurn(),
		Waiting:  s.waiting,
		Origin:   origin,
		Targets:  s.selection.Targets().Sorted(),
		Dice:     s.animator.Faces(),
		Rolling:  s.animator.Rolling(),
		CanRoll:  s.CanRoll(),
		Status:   s.status,
	}
	if s.notice.Active(s.now()) {
		v.Notice = s.notice
	}
	v.Pips[model.White] = rules.PipCount(s.snapshot, model.White)
	v.Pips[model.Black] = rules.PipCount(s.snapshot, model.Black)
	v.Seats = s.seats()
	return v
}

func (s *Session) seats() [2]Seat {
	var seats [2]Seat
	for _, id := range []model.PlayerID{model.Player1, model.Player2} {
		p, ok := s.snapshot.Player(id)
		if !ok || p.Color < model.White || p.Color > model.Black {
			continue
		}
		seat := &seats[p.Color]
		seat.Name, seat.Joined = p.Name, true
		if seat.Name == "" {
			seat.Name = id.String()
		}
		seat.Turn = s.snapshot.Phase == model.PlayerTurn && s.snapshot.CurrentPlayer == id
	}
	if s.player != model.NoPlayer {
		seat := &seats[s.color]
		seat.You, seat.Joined = true, true
		seat.Turn = s.snapshot.Phase == model.PlayerTurn && s.snapshot.CurrentPlayer == s.player
	}
	return seats
}

func (s *Session) announceWinner(winner model.PlayerID) {
	switch {
	case winner == model.NoPlayer:
		s.Notify(Info, gotext.Get("Game over!"))
	case winner == s.player:
		s.Notify(Success, gotext.Get("Game over! You win!"))
	default:
		name := winner.String()
		if p, ok := s.snapshot.Player(winner); ok && p.Name != "" {
			name = p.Name
		}
		s.Notify(Success, gotext.Get("Game over! Winner: %s", name))
	}
}

func colorName(c model.Color) string {
	if c == model.White {
		return gotext.Get("White")
	}
	return gotext.Get("Black")
}
