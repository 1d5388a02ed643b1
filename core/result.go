package core

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	ErrUnknownGroup = errors.New("unknown group")
	ErrUnknownMatch = errors.New("no result record for this match")
	ErrUnknownSide  = errors.New("score side has to be a or b")
)

const (
	GroupA = "A"
	GroupB = "B"
)

// The names of both groups in order
var GroupNames = [2]string{GroupA, GroupB}

func groupIndex(group string) (int, error) {
	switch group {
	case GroupA:
		return 0, nil
	case GroupB:
		return 1, nil
	}
	return -1, ErrUnknownGroup
}

// A Result is the score record of one scheduled match.
//
// The scores are kept as the raw text that was entered so an
// unset score is distinct from a score of "0".
type Result struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Round  int    `json:"round"`
	ScoreA string `json:"ag"`
	ScoreB string `json:"bg"`
}

// Returns the parsed score or an error when the match
// does not count as played.
func (r *Result) Score() (Score, error) {
	return ParseScore(r.ScoreA, r.ScoreB)
}

func (r *Result) Recorded() bool {
	_, err := r.Score()
	return err == nil
}

// Sets the raw score text of side "a" or "b"
func (r *Result) SetScore(side, text string) error {
	switch side {
	case "a":
		r.ScoreA = text
	case "b":
		r.ScoreB = text
	default:
		return ErrUnknownSide
	}
	return nil
}

func (r *Result) Clear() {
	r.ScoreA = ""
	r.ScoreB = ""
}

// The results of one group keyed by their match key
type ResultSet map[string]*Result

// Returns the keys in ascending order
func (s ResultSet) SortedKeys() []string {
	return slices.Sorted(maps.Keys(s))
}

const (
	groupSeparator = "::"
	keySeparator   = "__"
)

// Returns the subset of the records stored under the keys
func (s ResultSet) Only(keys []string) ResultSet {
	subset := make(ResultSet, len(keys))
	for _, key := range keys {
		if r, ok := s[key]; ok {
			subset[key] = r
		}
	}
	return subset
}

// Returns the match key "<group>::<nameA>__<nameB>"
func MatchKey(group, nameA, nameB string) string {
	var sb strings.Builder
	sb.WriteString(group)
	sb.WriteString(groupSeparator)
	sb.WriteString(nameA)
	sb.WriteString(keySeparator)
	sb.WriteString(nameB)
	return sb.String()
}

// Reports whether key is the match key of the record's opponents
func keyMatches(key string, r *Result) bool {
	_, pair, ok := strings.Cut(key, groupSeparator)
	return ok && pair == r.A+keySeparator+r.B
}

// Creates an empty result record for each playable match
// of the schedule.
func NewResultSet(group string, schedule *Schedule) ResultSet {
	results := make(ResultSet, len(schedule.Matches))
	for _, m := range schedule.Matches {
		nameA := m.Slot1.Competitor.Name
		nameB := m.Slot2.Competitor.Name
		results[MatchKey(group, nameA, nameB)] = &Result{
			A:     nameA,
			B:     nameB,
			Round: m.Round,
		}
	}
	return results
}
