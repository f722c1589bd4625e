package model

import (
	"errors"
	"fmt"
)

// Wire values for the bar and the bear-off trays.
const (
	WireBar          = 0
	WireBearOffWhite = 25
	WireBearOffBlack = 0
)

var ErrInvalidMove = errors.New("invalid move")

// MoveCommand is a move requested by the local player. Color is the mover's
// colour, needed to encode the bear-off destination.
type MoveCommand struct {
	Origin      Location
	Destination Location
	Color       Color
}

func (m MoveCommand) String() string {
	return fmt.Sprintf("%s/%s", m.Origin, m.Destination)
}

// MoveData is the server representation of a move.
type MoveData struct {
	StartPointIndex int `json:"startPointIndex"`
	EndPointIndex   int `json:"endPointIndex"`
}

// BearOffIndex returns the wire index of the bear-off tray for c.
func BearOffIndex(c Color) int {
	if c == White {
		return WireBearOffWhite
	}
	return WireBearOffBlack
}

// Wire encodes the move for the server.
func (m MoveCommand) Wire() (MoveData, error) {
	var d MoveData
	switch {
	case m.Origin.IsBar():
		d.StartPointIndex = WireBar
	case m.Origin.IsPoint():
		d.StartPointIndex = m.Origin.Index()
	default:
		return d, fmt.Errorf("%w: origin %s", ErrInvalidMove, m.Origin)
	}
	switch {
	case m.Destination.IsPoint():
		d.EndPointIndex = m.Destination.Index()
	case m.Destination.IsBearOff():
		d.EndPointIndex = BearOffIndex(m.Color)
	default:
		return d, fmt.Errorf("%w: destination %s", ErrInvalidMove, m.Destination)
	}
	return d, nil
}

// DecodeMove reverses Wire for a mover of colour c.
func DecodeMove(d MoveData, c Color) (MoveCommand, error) {
	m := MoveCommand{Color: c}
	switch {
	case d.StartPointIndex == WireBar:
		m.Origin = Bar
	case d.StartPointIndex >= 1 && d.StartPointIndex <= NumPoints:
		m.Origin = Point(d.StartPointIndex)
	default:
		return m, fmt.Errorf("%w: start %d", ErrInvalidMove, d.StartPointIndex)
	}
	switch {
	case d.EndPointIndex == BearOffIndex(c):
		m.Destination = BearOff
	case d.EndPointIndex >= 1 && d.EndPointIndex <= NumPoints:
		m.Destination = Point(d.EndPointIndex)
	default:
		return m, fmt.Errorf("%w: end %d", ErrInvalidMove, d.EndPointIndex)
	}
	return m, nil
}
