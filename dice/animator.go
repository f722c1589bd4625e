// Package dice animates dice rolls.
//
// The Animator shows random faces while a roll is in flight and settles on
// the authoritative faces once they are known and a minimum animation time
// has passed. It never decides the value of a roll.
package dice

import (
	"math/rand"
	"time"

	"codeberg.org/tslocum/pips/model"
)

// State is the animation state.
type State int8

const (
	Idle State = iota
	Rolling
	Settled
)

func (s State) String() string {
	switch s {
	case Rolling:
		return "Rolling"
	case Settled:
		return "Settled"
	default:
		return "Idle"
	}
}

// Timing configures the animation.
type Timing struct {
	// Tick is the interval between random faces.
	Tick time.Duration
	// Minimum is the shortest time from the start of a roll until the
	// authoritative faces are shown.
	Minimum time.Duration
	// Hold is how long settled faces stay visible when no moves can be made.
	Hold time.Duration
}

// DefaultTiming returns the default animation timing.
func DefaultTiming() Timing {
	return Timing{
		Tick:    80 * time.Millisecond,
		Minimum: time.Second,
		Hold:    1500 * time.Millisecond,
	}
}

// Source provides the random faces shown while rolling.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Animator is the dice animation state machine. Time is supplied by the
// caller, so the animator never starts timers of its own. It is not safe for
// concurrent use.
type Animator struct {
	timing Timing
	source Source

	state State
	faces []int
	local bool

	// Set while rolling.
	nextTick time.Time
	settleAt time.Time
	result   []int
	noMoves  bool

	// Set while settled.
	settledAt time.Time
	clearAt   time.Time

	observed      bool
	lastRemaining int
	lastCurrent   []int
	lastTurn      model.PlayerID

	// Dice and turn seen when a local roll started.
	baseCurrent []int
	baseTurn    model.PlayerID
}

// NewAnimator returns a new animator. When source is nil a time seeded
// source is used.
func NewAnimator(timing Timing, source Source) *Animator {
	def := DefaultTiming()
	if timing.Tick <= 0 {
		timing.Tick = def.Tick
	}
	if timing.Minimum < 0 {
		timing.Minimum = 0
	}
	if timing.Hold < 0 {
		timing.Hold = 0
	}
	if source == nil {
		source = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Animator{
		timing: timing,
		source: source,
	}
}

// State returns the animation state.
func (a *Animator) State() State {
	return a.state
}

// Faces returns the faces to display. It returns nil when no dice are shown.
func (a *Animator) Faces() []int {
	if len(a.faces) == 0 {
		return nil
	}
	faces := make([]int, len(a.faces))
	copy(faces, a.faces)
	return faces
}

// Rolling returns whether a roll is being animated.
func (a *Animator) Rolling() bool {
	return a.state == Rolling
}

// Holding returns whether settled faces are shown for a roll without moves
// and will be cleared.
func (a *Animator) Holding() bool {
	return a.state == Settled && !a.clearAt.IsZero()
}

// Local returns whether the current or last roll was requested locally.
func (a *Animator) Local() bool {
	return a.local
}

// SettledAt returns when the animation last settled.
func (a *Animator) SettledAt() time.Time {
	return a.settledAt
}

// Start begins animating a roll requested by the local player. The result is
// taken from the next snapshot passed to Observe which carries new dice or
// has passed the turn. Start returns false when a roll is already being
// animated.
func (a *Animator) Start(now time.Time) bool {
	if a.state == Rolling {
		return false
	}
	a.roll(now, true)
	a.baseCurrent, a.baseTurn = a.lastCurrent, a.lastTurn
	return true
}

// Observe applies a new snapshot. mine reports whether it is the local
// player's turn in s.
func (a *Animator) Observe(s *model.Snapshot, mine bool, now time.Time) {
	if s == nil {
		return
	}
	if s.Phase == model.GameOver {
		a.Reset()
		a.lastRemaining = 0
		return
	}

	remaining := len(s.Remaining())
	prev, observed := a.lastRemaining, a.observed
	a.lastRemaining, a.observed = remaining, true
	a.lastCurrent, a.lastTurn = s.Dice.Current, s.CurrentPlayer

	switch {
	case a.state == Rolling && a.local && a.result == nil:
		// The server may pass the turn in the same update when no move
		// can be made.
		if remaining != 0 || !equal(s.Dice.Current, a.baseCurrent) || s.CurrentPlayer != a.baseTurn {
			a.result = rolled(s)
			a.noMoves = remaining == 0 || !mine
		}
	case a.state != Rolling && !mine && observed && prev <= 1 && (remaining == 2 || remaining == 4):
		a.roll(now, false)
		a.result = rolled(s)
	}
	a.Update(now)
}

// Update advances the animation to now.
func (a *Animator) Update(now time.Time) {
	switch a.state {
	case Rolling:
		if a.result != nil && !now.Before(a.settleAt) {
			a.settle(now)
			return
		}
		if !now.Before(a.nextTick) {
			a.faces = a.randomFaces()
			a.nextTick = now.Add(a.timing.Tick)
		}
	case Settled:
		if !a.clearAt.IsZero() && !now.Before(a.clearAt) {
			a.state = Idle
			a.faces = nil
			a.clearAt = time.Time{}
		}
	}
}

// Reset stops any animation and clears the dice.
func (a *Animator) Reset() {
	a.state = Idle
	a.faces = nil
	a.local = false
	a.clearRolling()
	a.clearAt = time.Time{}
}

func (a *Animator) roll(now time.Time, local bool) {
	a.state = Rolling
	a.local = local
	a.clearAt = time.Time{}
	a.result = nil
	a.noMoves = false
	a.settleAt = now.Add(a.timing.Minimum)
	a.faces = a.randomFaces()
	a.nextTick = now.Add(a.timing.Tick)
}

func (a *Animator) settle(now time.Time) {
	a.state = Settled
	a.faces = a.result
	a.settledAt = now
	if a.noMoves {
		a.clearAt = now.Add(a.timing.Hold)
	}
	a.clearRolling()
}

func (a *Animator) clearRolling() {
	a.baseCurrent, a.baseTurn = nil, model.NoPlayer
	a.nextTick = time.Time{}
	a.settleAt = time.Time{}
	a.result = nil
	a.noMoves = false
}

func (a *Animator) randomFaces() []int {
	return []int{a.source.Intn(6) + 1, a.source.Intn(6) + 1}
}

// rolled returns the faces of the roll in s. Remaining moves are used when
// the authority did not send the roll itself.
func rolled(s *model.Snapshot) []int {
	faces := s.Dice.Current
	if len(faces) == 0 {
		faces = s.Remaining()
		if len(faces) > 2 {
			faces = faces[:2]
		}
	}
	result := make([]int, len(faces))
	copy(result, faces)
	return result
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
