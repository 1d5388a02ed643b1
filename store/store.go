package store

import (
	"errors"
	"slices"
	"strings"

	"github.com/ezBadminton/groupcup/core"
	"github.com/ezBadminton/groupcup/gate"
	"github.com/ezBadminton/groupcup/internal/logging"
	"github.com/sirupsen/logrus"
)

var (
	ErrMalformedState    = errors.New("malformed state")
	ErrMissingGroup      = errors.New("results have to contain both groups A and B")
	ErrNotSeeded         = errors.New("the groups have not been seeded yet")
	ErrUnknownCompetitor = errors.New("unknown competitor")
	ErrInvalidPosition   = errors.New("position is outside of the ranking")

	ErrDuplicateName = core.ErrDuplicateName
	ErrEmptyName     = core.ErrEmptyName
	ErrReservedName  = core.ErrReservedName
)

// An Authorizer decides whether a store operation is permitted.
// The operation names are the gate.Op* constants.
type Authorizer interface {
	Authorize(op string) error
}

type allowAll struct{}

func (allowAll) Authorize(string) error { return nil }

// The Store holds the master ranking and the current seeding
// with its results. All mutations go through it.
type Store struct {
	// The master ranking. Rank always equals the 1-based position.
	Ranking []*core.Competitor

	// The current seeding. Nil until the first seeding.
	Cup *core.Cup

	// Incremented by every seeding
	Generation int

	path string
	auth Authorizer

	// Set when Load ignored the file at path
	backupOnSave bool
}

// Creates an unseeded store with the given names as master ranking.
// Blank and repeated names are skipped.
func New(path string, initial []string) *Store {
	s := &Store{path: path, auth: allowAll{}}

	seen := make(map[string]bool, len(initial))
	for _, name := range initial {
		name = strings.TrimSpace(name)
		if core.ValidateName(name) != nil || seen[name] {
			logging.Log.Warnf("Skipping initial ranking entry %q", name)
			continue
		}
		seen[name] = true
		s.Ranking = append(s.Ranking, core.NewCompetitor(name))
	}
	core.Renumber(s.Ranking)

	return s
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) SetAuthorizer(auth Authorizer) {
	if auth == nil {
		auth = allowAll{}
	}
	s.auth = auth
}

// Returns the 0-based position and the competitor with the name
func (s *Store) Competitor(name string) (int, *core.Competitor, error) {
	i := slices.IndexFunc(s.Ranking, func(c *core.Competitor) bool { return c.Name == name })
	if i == -1 {
		return -1, nil, ErrUnknownCompetitor
	}
	return i, s.Ranking[i], nil
}

func (s *Store) checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := core.ValidateName(name); err != nil {
		return "", err
	}
	if _, _, err := s.Competitor(name); err == nil {
		return "", ErrDuplicateName
	}
	return name, nil
}

// Appends a competitor to the end of the master ranking
func (s *Store) AddCompetitor(name string) (*core.Competitor, error) {
	if err := s.auth.Authorize(gate.OpRanking); err != nil {
		return nil, err
	}
	name, err := s.checkName(name)
	if err != nil {
		return nil, err
	}

	competitor := core.NewCompetitor(name)
	s.Ranking = append(s.Ranking, competitor)
	core.Renumber(s.Ranking)

	logging.Log.WithFields(logrus.Fields{"name": name, "rank": competitor.Rank}).Info("Added competitor")
	return competitor, nil
}

// Renames a competitor of the master ranking. The current seeding
// keeps the old name until the next seeding.
func (s *Store) RenameCompetitor(old, name string) error {
	if err := s.auth.Authorize(gate.OpRanking); err != nil {
		return err
	}
	_, competitor, err := s.Competitor(old)
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == old {
		return nil
	}
	name, err = s.checkName(name)
	if err != nil {
		return err
	}

	competitor.Name = name
	logging.Log.WithFields(logrus.Fields{"old": old, "name": name}).Info("Renamed competitor")
	return nil
}

func (s *Store) RemoveCompetitor(name string) error {
	if err := s.auth.Authorize(gate.OpRanking); err != nil {
		return err
	}
	i, _, err := s.Competitor(name)
	if err != nil {
		return err
	}

	s.Ranking = slices.Delete(s.Ranking, i, i+1)
	core.Renumber(s.Ranking)

	logging.Log.WithField("name", name).Info("Removed competitor")
	return nil
}

// Moves a competitor to the 1-based position in the master ranking
func (s *Store) MoveCompetitor(name string, position int) error {
	if err := s.auth.Authorize(gate.OpRanking); err != nil {
		return err
	}
	if position < 1 || position > len(s.Ranking) {
		return ErrInvalidPosition
	}
	i, competitor, err := s.Competitor(name)
	if err != nil {
		return err
	}

	s.Ranking = slices.Delete(s.Ranking, i, i+1)
	s.Ranking = slices.Insert(s.Ranking, position-1, competitor)
	core.Renumber(s.Ranking)

	logging.Log.WithFields(logrus.Fields{"name": name, "rank": position}).Info("Moved competitor")
	return nil
}

// Replaces the whole master ranking, e.g. with an imported one
func (s *Store) ReplaceRanking(ranking []*core.Competitor) error {
	if err := s.auth.Authorize(gate.OpRanking); err != nil {
		return err
	}
	if err := core.CheckNames(ranking); err != nil {
		return err
	}

	s.Ranking = slices.Clone(ranking)
	core.Renumber(s.Ranking)

	logging.Log.WithField("competitors", len(s.Ranking)).Info("Replaced ranking")
	return nil
}

// Splits the master ranking into the two groups and schedules them.
// All results of the previous seeding are discarded.
func (s *Store) Seed(algorithm core.SeedingAlgorithm) error {
	if err := s.auth.Authorize(gate.OpSeed); err != nil {
		return err
	}

	cup, err := core.NewCup(s.Ranking, algorithm, s.Generation+1)
	if err != nil {
		return err
	}
	s.Cup = cup
	s.Generation = cup.Generation

	logging.Log.WithFields(logrus.Fields{
		"algorithm":  algorithm,
		"generation": s.Generation,
		"groupA":     len(cup.Groups[0].Competitors()),
		"groupB":     len(cup.Groups[1].Competitors()),
	}).Info("Seeded groups")
	return nil
}

func (s *Store) seeded() (*core.Cup, error) {
	if s.Cup == nil {
		return nil, ErrNotSeeded
	}
	return s.Cup, nil
}

// Sets one score field of a match of the given generation
func (s *Store) SetScore(generation int, group, key, side, text string) error {
	if err := s.auth.Authorize(gate.OpScore); err != nil {
		return err
	}
	cup, err := s.seeded()
	if err != nil {
		return err
	}
	if err := cup.SetScore(generation, group, key, side, text); err != nil {
		return err
	}

	logging.Log.WithFields(logrus.Fields{"match": key, "side": side, "score": text}).Debug("Set score")
	return nil
}

func (s *Store) ClearResult(generation int, group, key string) error {
	if err := s.auth.Authorize(gate.OpClear); err != nil {
		return err
	}
	cup, err := s.seeded()
	if err != nil {
		return err
	}
	if err := cup.ClearResult(generation, group, key); err != nil {
		return err
	}

	logging.Log.WithField("match", key).Info("Cleared result")
	return nil
}

// Empties every result record of the current seeding
func (s *Store) ClearResults() error {
	if err := s.auth.Authorize(gate.OpClear); err != nil {
		return err
	}
	cup, err := s.seeded()
	if err != nil {
		return err
	}
	for _, results := range cup.Results() {
		for _, r := range results {
			r.Clear()
		}
	}
	cup.Update(nil)

	logging.Log.WithField("generation", cup.Generation).Info("Cleared all results")
	return nil
}
