package core

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	ErrNoScore      = errors.New("no score")
	ErrInvalidScore = errors.New("score is not a finite number")
	ErrEqualScore   = errors.New("equal score")
)

// A match with two slots for the opponents.
type Match struct {
	// The first opponent slot
	Slot1 *Slot
	// The second opponent slot
	Slot2 *Slot

	// The number of the fixture round (1-based)
	Round int

	id int
}

func (m *Match) HasBye() bool {
	return m.Slot1.IsBye() || m.Slot2.IsBye()
}

func (m *Match) ContainsCompetitor(competitor *Competitor) bool {
	c1, c2 := m.Slot1.Competitor, m.Slot2.Competitor
	return (c1 != nil && c1.Id == competitor.Id) || (c2 != nil && c2.Id == competitor.Id)
}

func (m *Match) Id() int {
	return m.id
}

func (m *Match) String() string {
	var sb strings.Builder
	sb.WriteString(slotString(m.Slot1))
	sb.WriteString(" vs. ")
	sb.WriteString(slotString(m.Slot2))
	return sb.String()
}

func slotString(s *Slot) string {
	label := s.Label()
	if label == "" {
		return "[Empty]"
	}
	return label
}

func NewMatch(slot1, slot2 *Slot, round int) *Match {
	return &Match{
		Slot1: slot1,
		Slot2: slot2,
		Round: round,
		id:    NextId(),
	}
}

// The parsed result of a match. A and B are the games
// won by the first and the second opponent.
type Score struct {
	A, B float64
}

// Returns either 0 or 1 whether the
// first opponent won or the second.
// Errors when the score is tied.
func (s Score) GetWinner() (int, error) {
	if s.A > s.B {
		return 0, nil
	}
	if s.B > s.A {
		return 1, nil
	}
	return -1, ErrEqualScore
}

// Parses the raw score text of both opponents.
//
// Empty text on either side means the match is not played
// yet and yields ErrNoScore. Text that is not a finite
// number yields ErrInvalidScore.
func ParseScore(a, b string) (Score, error) {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return Score{}, ErrNoScore
	}

	pointsA, err := parsePoints(a)
	if err != nil {
		return Score{}, err
	}
	pointsB, err := parsePoints(b)
	if err != nil {
		return Score{}, err
	}

	return Score{A: pointsA, B: pointsB}, nil
}

func parsePoints(text string) (float64, error) {
	points, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(points, 0) || math.IsNaN(points) {
		return 0, ErrInvalidScore
	}
	return points, nil
}

// Formats games for display without a trailing ".0"
func FormatPoints(points float64) string {
	return strconv.FormatFloat(points, 'f', -1, 64)
}
