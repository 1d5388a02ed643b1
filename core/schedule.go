package core

// A Round is a list of matches that can be played in
// parallel.
type Round struct {
	// 1-based number of the round
	Number int

	// The playable matches of the round
	Matches []*Match

	// The competitor who drew the bye in this round.
	// nil when the group has an even size.
	Resting *Competitor
}

// The fixtures of one group.
type Schedule struct {
	Rounds []*Round

	// All playable matches of all rounds in round order
	Matches []*Match
}

// Returns the playable matches of the competitor
func (s *Schedule) MatchesOf(competitor *Competitor) []*Match {
	matches := make([]*Match, 0, len(s.Rounds))
	for _, m := range s.Matches {
		if m.ContainsCompetitor(competitor) {
			matches = append(matches, m)
		}
	}
	return matches
}

// Creates the round robin schedule for the given entries.
//
// Every entry meets every other entry exactly once across
// the minimum number of rounds. An odd number of entries is
// evened out with a bye and the entry paired with the bye
// rests for that round.
//
// The schedule only depends on the order of the entries.
func NewSchedule(entries []*Competitor) *Schedule {
	slots := make([]*Slot, 0, len(entries)+1)
	for _, c := range entries {
		slots = append(slots, NewCompetitorSlot(c))
	}
	entrySlots := evenSlots(slots)

	numRounds := max(len(entrySlots)-1, 0)

	rounds := make([]*Round, 0, numRounds)
	for roundI := range numRounds {
		rounds = append(rounds, createRound(entrySlots, roundI))
	}

	numMatches := len(entries) * (len(entries) - 1) / 2
	matches := make([]*Match, 0, numMatches)
	for _, r := range rounds {
		matches = append(matches, r.Matches...)
	}

	return &Schedule{Rounds: rounds, Matches: matches}
}

// Appends a bye slot but only if there is an uneven
// number of slots so the result is guaranteed to be even.
func evenSlots(slots []*Slot) []*Slot {
	if len(slots)%2 != 0 {
		slots = append(slots, NewByeSlot())
	}
	return slots
}

func createRound(entrySlots []*Slot, roundI int) *Round {
	numMatches := len(entrySlots) / 2
	round := &Round{
		Number:  roundI + 1,
		Matches: make([]*Match, 0, numMatches),
	}

	for matchI := range numMatches {
		slot1, slot2 := pickOpponents(entrySlots, roundI, matchI)
		if slot1.IsBye() {
			round.Resting = slot2.Competitor
			continue
		}
		if slot2.IsBye() {
			round.Resting = slot1.Competitor
			continue
		}
		round.Matches = append(round.Matches, NewMatch(slot1, slot2, round.Number))
	}

	return round
}

// Returns the opponents of the specified match by its indices.
// The ith match of a round pairs circle position i with
// position len-1-i.
func pickOpponents(entrySlots []*Slot, roundI, matchI int) (*Slot, *Slot) {
	i1 := matchI
	i2 := len(entrySlots) - 1 - matchI

	i1 = roundRobinCircleIndex(i1, len(entrySlots), roundI)
	i2 = roundRobinCircleIndex(i2, len(entrySlots), roundI)

	return entrySlots[i1], entrySlots[i2]
}

// Rotates the given index according to https://en.wikipedia.org/wiki/Round-robin_tournament#Circle_method
//
// Position 0 stays fixed. Each round the others move one step,
// the last one wrapping around to position 1.
func roundRobinCircleIndex(index, length, round int) int {
	if index == 0 {
		return 0
	}
	index -= 1
	index -= round
	index %= length - 1
	index += length - 1
	index %= length - 1
	index += 1
	return index
}
