package core

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrDuplicateName = errors.New("competitor name is not unique")
	ErrEmptyName     = errors.New("competitor name is empty")
	ErrReservedName  = errors.New(`competitor name must not contain "__" or "::" or start or end with "_"`)
)

// A Competitor is a person or a team taking part in the cup.
//
// The Id stays the same for the lifetime of the competitor while
// the Name can be edited. Rank is the seeding position in the
// master ranking (1 is the strongest).
type Competitor struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

func NewCompetitor(name string) *Competitor {
	return &Competitor{Id: uuid.NewString(), Name: name}
}

// Sets each competitor's Rank to its 1-based index
func Renumber(competitors []*Competitor) {
	for i, c := range competitors {
		c.Rank = i + 1
	}
}

// Returns a copy of the competitors where each Rank
// equals the 1-based position in the given slice.
func rankedCopy(competitors []*Competitor) []*Competitor {
	copies := make([]*Competitor, 0, len(competitors))
	for i, c := range competitors {
		copies = append(copies, &Competitor{Id: c.Id, Name: c.Name, Rank: i + 1})
	}
	return copies
}

// Returns ErrDuplicateName when two of the competitors share a name
func CheckUniqueNames(competitors []*Competitor) error {
	names := make(map[string]struct{}, len(competitors))
	for _, c := range competitors {
		if _, ok := names[c.Name]; ok {
			return ErrDuplicateName
		}
		names[c.Name] = struct{}{}
	}
	return nil
}

// Returns ErrEmptyName for a blank name and ErrReservedName for a
// name that could make two match keys collide.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if strings.Contains(name, keySeparator) || strings.Contains(name, groupSeparator) {
		return ErrReservedName
	}
	if strings.HasPrefix(name, "_") || strings.HasSuffix(name, "_") {
		return ErrReservedName
	}
	return nil
}

// Validates every name and their uniqueness
func CheckNames(competitors []*Competitor) error {
	for _, c := range competitors {
		if err := ValidateName(c.Name); err != nil {
			return err
		}
	}
	return CheckUniqueNames(competitors)
}
