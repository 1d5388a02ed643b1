package core

import "strconv"

// The number of places each group sends into the bracket
const BracketPlaces = 4

// A labelled match of the playoff bracket
type BracketMatch struct {
	Label string
	*Match
}

// The crossover bracket of the top four of both groups.
//
// The slots are placements into the group standings and follow
// them whenever the standings update. A place that a group can
// not fill shows its placeholder label (e.g. "3A").
type Bracket struct {
	Matches []*BracketMatch
}

// The fixed crossover topology as (group, place) pairs, places 0-based
var crossover = [4][2]struct {
	group, place int
}{
	{{0, 0}, {1, 3}},
	{{0, 1}, {1, 2}},
	{{1, 0}, {0, 3}},
	{{1, 1}, {0, 2}},
}

var bracketLabels = [4]string{"ČF1", "ČF2", "ČF3", "ČF4"}

// Projects the bracket from the standings of group A and B:
// A1 vs B4, A2 vs B3, B1 vs A4 and B2 vs A3.
func ProjectBracket(standingsA, standingsB Ranking) *Bracket {
	standings := [2]Ranking{standingsA, standingsB}

	matches := make([]*BracketMatch, 0, len(crossover))
	for i, pairing := range crossover {
		slots := [2]*Slot{}
		for j, p := range pairing {
			label := PlaceLabel(p.place, GroupNames[p.group])
			placement := NewPlacement(standings[p.group], p.place, label)
			slots[j] = NewPlacementSlot(placement)
		}
		match := &BracketMatch{
			Label: bracketLabels[i],
			Match: NewMatch(slots[0], slots[1], 1),
		}
		matches = append(matches, match)
	}

	return &Bracket{Matches: matches}
}

// Returns the placeholder label of a 0-based place in a group, e.g. "1A"
func PlaceLabel(place int, group string) string {
	return strconv.Itoa(place+1) + group
}
