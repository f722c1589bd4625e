// Package selection tracks which checker the local player has picked up and
// turns clicks into move commands.
package selection

import (
	"codeberg.org/tslocum/pips/model"
	"codeberg.org/tslocum/pips/rules"
)

// State is the selection state.
type State int8

const (
	Idle State = iota
	OriginSelected
)

func (s State) String() string {
	if s == OriginSelected {
		return "OriginSelected"
	}
	return "Idle"
}

// Controller holds the current selection of the local player. It is not
// safe for concurrent use.
type Controller struct {
	player model.PlayerID
	color  model.Color

	origin  model.Location
	targets rules.TargetSet

	turn   model.PlayerID
	phase  model.Phase
	synced bool
}

// NewController returns a controller acting for player, who plays color.
func NewController(player model.PlayerID, color model.Color) *Controller {
	return &Controller{
		player: player,
		color:  color,
	}
}

// SetPlayer changes the acting player and clears the selection.
func (c *Controller) SetPlayer(player model.PlayerID, color model.Color) {
	c.player, c.color = player, color
	c.synced = false
	c.Reset()
}

// Player returns the acting player and their colour.
func (c *Controller) Player() (model.PlayerID, model.Color) {
	return c.player, c.color
}

// Reset clears the selection and its targets.
func (c *Controller) Reset() {
	c.origin = model.Location{}
	c.targets = rules.TargetSet{}
}

// State returns the selection state.
func (c *Controller) State() State {
	if c.origin.IsZero() {
		return Idle
	}
	return OriginSelected
}

// Origin returns the selected location.
func (c *Controller) Origin() (model.Location, bool) {
	return c.origin, !c.origin.IsZero()
}

// Targets returns the destinations of the selected checker.
func (c *Controller) Targets() rules.TargetSet {
	return c.targets
}

// Active returns whether clicks are accepted: it is the acting player's
// turn and there are dice left to play.
func (c *Controller) Active(s *model.Snapshot) bool {
	return s != nil && c.player != model.NoPlayer && s.CurrentPlayer == c.player &&
		s.Phase == model.PlayerTurn && len(s.Remaining()) != 0
}

// Sync applies a new snapshot. The selection is cleared when the turn or
// phase changed, when clicks are no longer accepted or when the selected
// location no longer holds a checker that may move. Otherwise the targets
// are recomputed. Sync returns whether the selection was cleared.
func (c *Controller) Sync(s *model.Snapshot) bool {
	var turn model.PlayerID
	var phase model.Phase
	if s != nil {
		turn, phase = s.CurrentPlayer, s.Phase
	}
	if !c.synced || turn != c.turn || phase != c.phase {
		c.turn, c.phase, c.synced = turn, phase, true
		selected := c.State() == OriginSelected
		c.Reset()
		return selected
	}

	if c.State() == Idle {
		return false
	} else if !c.Active(s) || !c.selectable(s, c.origin) {
		c.Reset()
		return true
	}
	c.targets = rules.Targets(s, c.origin, c.color, s.Remaining())
	return false
}

// Click handles a click on l. It returns a move command when the click
// completes a move.
func (c *Controller) Click(s *model.Snapshot, l model.Location) (model.MoveCommand, bool) {
	if !c.Active(s) {
		return model.MoveCommand{}, false
	}

	if c.State() == Idle {
		if c.selectable(s, l) {
			c.selectOrigin(s, l)
		}
		return model.MoveCommand{}, false
	}

	origin := c.origin
	if c.targets.Has(l) {
		c.Reset()
		return model.MoveCommand{Origin: origin, Destination: l, Color: c.color}, true
	}

	// Clicking the selected point again bears the checker off when possible.
	if l == origin && origin.IsPoint() && c.mayBearOff(s, origin.Index()) {
		c.Reset()
		return model.MoveCommand{Origin: origin, Destination: model.BearOff, Color: c.color}, true
	}

	if l != origin && c.selectable(s, l) {
		c.selectOrigin(s, l)
		return model.MoveCommand{}, false
	}

	c.Reset()
	return model.MoveCommand{}, false
}

// selectable returns whether l holds a checker of the acting player that may
// be picked up. While the bar is occupied only the bar may be picked up.
func (c *Controller) selectable(s *model.Snapshot, l model.Location) bool {
	onBar := len(s.OnBar(c.color)) != 0
	switch {
	case l.IsBar():
		return onBar
	case l.IsPoint():
		return !onBar && s.Count(l.Index(), c.color) != 0
	default:
		return false
	}
}

func (c *Controller) selectOrigin(s *model.Snapshot, l model.Location) {
	c.origin = l
	c.targets = rules.Targets(s, l, c.color, s.Remaining())
}

func (c *Controller) mayBearOff(s *model.Snapshot, point int) bool {
	for _, die := range s.Remaining() {
		if rules.BearOffLegal(s, point, c.color, die) {
			return true
		}
	}
	return false
}
