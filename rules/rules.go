// Package rules computes which moves the local player may attempt. The game
// server has the final word on every move; these rules only decide what the
// client offers.
package rules

import (
	"codeberg.org/tslocum/pips/model"
)

// Direction returns +1 when c moves towards higher points and -1 otherwise.
func Direction(c model.Color) int {
	if c == model.White {
		return 1
	}
	return -1
}

// HomeRange returns the first and last point of c's home quadrant.
func HomeRange(c model.Color) (from, to int) {
	if c == model.White {
		return 19, 24
	}
	return 1, 6
}

// InHome returns whether point lies in c's home quadrant.
func InHome(c model.Color, point int) bool {
	from, to := HomeRange(c)
	return point >= from && point <= to
}

// Entry returns the point a checker of colour c enters on with die.
func Entry(c model.Color, die int) int {
	if c == model.White {
		return die
	}
	return model.NumPoints + 1 - die
}

// BearOffPoint returns the point one pip beyond c's bear-off edge.
func BearOffPoint(c model.Color) int {
	if c == model.White {
		return model.NumPoints + 1
	}
	return 0
}

// Distance returns the number of pips from point to c's bear-off edge.
func Distance(c model.Color, point int) int {
	if c == model.White {
		return model.NumPoints + 1 - point
	}
	return point
}

// Blocked returns whether a checker of colour c may not land on point: the
// point holds two or more checkers, all belonging to the opponent.
func Blocked(s *model.Snapshot, point int, c model.Color) bool {
	checkers := s.Point(point)
	if len(checkers) < 2 {
		return false
	}
	opponent := c.Opponent()
	for _, checker := range checkers {
		if checker.Color != opponent {
			return false
		}
	}
	return true
}

// PipCount returns the total number of pips c needs to bear off every
// checker. Checkers on the bar count from outside the board.
func PipCount(s *model.Snapshot, c model.Color) int {
	var pips int
	for point := 1; point <= model.NumPoints; point++ {
		pips += s.Count(point, c) * Distance(c, point)
	}
	pips += len(s.OnBar(c)) * (model.NumPoints + 1)
	return pips
}
