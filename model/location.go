package model

import "fmt"

type locationKind int8

const (
	kindNone locationKind = iota
	kindPoint
	kindBar
	kindBearOff
)

// Location is a place a checker can be moved from or to: one of the 24
// points, the mover's bar, or the mover's bear-off tray. The zero value is
// no location.
type Location struct {
	kind  locationKind
	point int8
}

var (
	// Bar is the mover's bar.
	Bar = Location{kind: kindBar}
	// BearOff is the mover's bear-off tray.
	BearOff = Location{kind: kindBearOff}
)

// Point returns the location of point i (1-24). Indices outside the board
// return the zero Location.
func Point(i int) Location {
	if i < 1 || i > NumPoints {
		return Location{}
	}
	return Location{kind: kindPoint, point: int8(i)}
}

func (l Location) IsPoint() bool   { return l.kind == kindPoint }
func (l Location) IsBar() bool     { return l.kind == kindBar }
func (l Location) IsBearOff() bool { return l.kind == kindBearOff }
func (l Location) IsZero() bool    { return l.kind == kindNone }

// Index returns the point index, or 0 when l is not a point.
func (l Location) Index() int {
	if l.kind != kindPoint {
		return 0
	}
	return int(l.point)
}

func (l Location) String() string {
	switch l.kind {
	case kindPoint:
		return fmt.Sprintf("%d", l.point)
	case kindBar:
		return "bar"
	case kindBearOff:
		return "off"
	default:
		return "none"
	}
}
