package rules

import (
	"codeberg.org/tslocum/pips/model"
)

// Eligible returns whether c may bear off: no checker of c is on the bar and
// every checker of c still on the board is inside the home quadrant.
func Eligible(s *model.Snapshot, c model.Color) bool {
	if len(s.OnBar(c)) != 0 {
		return false
	}
	for point := 1; point <= model.NumPoints; point++ {
		if !InHome(c, point) && s.Count(point, c) != 0 {
			return false
		}
	}
	return true
}

// FurthestHomePoint returns the occupied home point of c farthest from the
// bear-off edge. It returns false when no checker of c is left in the home
// quadrant.
func FurthestHomePoint(s *model.Snapshot, c model.Color) (int, bool) {
	from, to := HomeRange(c)
	if c == model.White {
		for point := from; point <= to; point++ {
			if s.Count(point, c) != 0 {
				return point, true
			}
		}
		return 0, false
	}
	for point := to; point >= from; point-- {
		if s.Count(point, c) != 0 {
			return point, true
		}
	}
	return 0, false
}

// BearOffLegal returns whether a checker of colour c on point may be borne
// off using die. The die must match the distance to the edge exactly, or
// exceed it when no checker of c lies farther from the edge.
func BearOffLegal(s *model.Snapshot, point int, c model.Color, die int) bool {
	if point < 1 || point > model.NumPoints || !Eligible(s, c) {
		return false
	}
	distance := Distance(c, point)
	switch {
	case die == distance:
		return true
	case die > distance:
		furthest, ok := FurthestHomePoint(s, c)
		return ok && furthest == point
	default:
		return false
	}
}
