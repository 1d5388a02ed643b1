package core

import (
	"errors"
	"iter"
)

var ErrUnknownSeeding = errors.New("unknown seeding algorithm")

type SeedingAlgorithm string

const (
	// Serpentine draft over consecutive pairs of the ranking
	SeedSnake SeedingAlgorithm = "snake"
	// Upper half of the ranking in group A, lower half in group B
	SeedSplitHalf SeedingAlgorithm = "split-half"
)

// Parses the algorithm identifier. The empty string
// selects the default SeedSnake.
func ParseSeedingAlgorithm(name string) (SeedingAlgorithm, error) {
	switch SeedingAlgorithm(name) {
	case "", SeedSnake:
		return SeedSnake, nil
	case SeedSplitHalf:
		return SeedSplitHalf, nil
	}
	return "", ErrUnknownSeeding
}

// Splits the master ranking into the groups A and B.
//
// The returned competitors are copies whose Rank is their
// 1-based position in the master ranking. The groups are a
// partition of the ranking, their sizes differ by at most one
// and group A is never the smaller one.
func SplitGroups(ranking []*Competitor, algorithm SeedingAlgorithm) ([2][]*Competitor, error) {
	ranked := rankedCopy(ranking)

	switch algorithm {
	case SeedSnake:
		return snakeGroups(ranked), nil
	case SeedSplitHalf:
		return splitHalfGroups(ranked), nil
	}
	return [2][]*Competitor{}, ErrUnknownSeeding
}

// Distributes the ranking among the groups in a "snaking"
// order going back and forth. The first pair goes A, B, the
// second pair B, A and so on. An unpaired last competitor
// goes to group A.
func snakeGroups(ranking []*Competitor) [2][]*Competitor {
	groupSize := (len(ranking) + 1) / 2
	groups := [2][]*Competitor{
		make([]*Competitor, 0, groupSize),
		make([]*Competitor, 0, groupSize),
	}

	for pairI := 0; len(ranking) > 0; pairI += 1 {
		pairSize := min(len(ranking), 2)
		pair := ranking[:pairSize]
		ranking = ranking[pairSize:]

		snakeDirection := pairI%2 == 0
		for i, c := range directionalSeq(pair, snakeDirection) {
			groups[i] = append(groups[i], c)
		}
	}

	return groups
}

func splitHalfGroups(ranking []*Competitor) [2][]*Competitor {
	half := (len(ranking) + 1) / 2
	return [2][]*Competitor{ranking[:half:half], ranking[half:]}
}

// Returns an index-value-sequence that iterates the given slice normally
// when the direction bool is true, otherwise iterates in
// reverse order. The index is ascending in both cases.
func directionalSeq[V any](slice []V, direction bool) iter.Seq2[int, V] {
	l := len(slice)
	iterator := func(yield func(int, V) bool) {
		for i := range l {
			v := i
			if !direction {
				v = l - i - 1
			}
			if !yield(i, slice[v]) {
				return
			}
		}
	}

	return iterator
}
