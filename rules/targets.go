package rules

import (
	"sort"

	"codeberg.org/tslocum/pips/model"
)

// TargetSet is a set of destinations. The zero value is an empty set.
type TargetSet struct {
	locations map[model.Location]struct{}
}

// Add adds l to the set.
func (t *TargetSet) Add(l model.Location) {
	if t.locations == nil {
		t.locations = make(map[model.Location]struct{})
	}
	t.locations[l] = struct{}{}
}

// Has returns whether l is in the set.
func (t TargetSet) Has(l model.Location) bool {
	_, ok := t.locations[l]
	return ok
}

// Len returns the number of destinations.
func (t TargetSet) Len() int {
	return len(t.locations)
}

// Sorted returns the destinations ordered by point, with the bear-off tray
// last.
func (t TargetSet) Sorted() []model.Location {
	sorted := make([]model.Location, 0, len(t.locations))
	for l := range t.locations {
		sorted = append(sorted, l)
	}
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsBearOff() != b.IsBearOff() {
			return b.IsBearOff()
		}
		return a.Index() < b.Index()
	})
	return sorted
}

// Targets returns every destination a checker of colour c at origin may
// reach with one of dice. Equal dice produce a destination once.
func Targets(s *model.Snapshot, origin model.Location, c model.Color, dice []int) TargetSet {
	var targets TargetSet
	switch {
	case origin.IsBar():
		for _, die := range dice {
			if die < 1 {
				continue
			}
			entry := Entry(c, die)
			if entry < 1 || entry > model.NumPoints || Blocked(s, entry, c) {
				continue
			}
			targets.Add(model.Point(entry))
		}
	case origin.IsPoint():
		from := origin.Index()
		for _, die := range dice {
			if die < 1 {
				continue
			}
			to := from + die*Direction(c)
			if to >= 1 && to <= model.NumPoints {
				if !Blocked(s, to, c) {
					targets.Add(model.Point(to))
				}
				continue
			}
			if BearOffLegal(s, from, c, die) {
				targets.Add(model.BearOff)
			}
		}
	}
	return targets
}
