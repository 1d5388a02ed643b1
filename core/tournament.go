package core

import (
	"cmp"
	"errors"
	"slices"
)

var (
	ErrStaleGeneration = errors.New("the match belongs to an earlier seeding")
)

// One of the two groups of a cup.
type Group struct {
	Name string

	// The group's competitors in seeding order
	Entries *BaseRanking

	// The fixtures of the group. Fixed until the next seeding.
	Schedule *Schedule

	// The live standings. Updated on every result change.
	Standings *StandingsRanking

	// The result records of the group's matches
	Results ResultSet
}

func (g *Group) Competitors() []*Competitor {
	return g.Entries.Competitors()
}

// A Cup is the chain of derived views of one seeding:
// the groups with their schedules, the live standings and
// the projected bracket.
//
// Each seeding creates a new Cup with a higher Generation.
// Score writes have to name the generation they were made
// against so results of an old seeding can never leak into
// the current one.
type Cup struct {
	// The seeded competitors of both groups in master ranking order
	Entries *ConstantRanking
	Groups  [2]*Group
	Bracket *Bracket

	*RankingGraph

	Algorithm  SeedingAlgorithm
	Generation int
}

// Updates all rankings and slots going from the start
// ranking in the dependency graph.
func (c *Cup) Update(start Ranking) {
	if start == nil {
		start = c.Entries
	}

	bfs := c.RankingGraph.BreadthSearchIter(start)
	for ranking := range bfs {
		ranking.updateRanks()
		for _, s := range ranking.dependantSlots() {
			s.Update()
		}
	}
}

func (c *Cup) Group(name string) (*Group, error) {
	i, err := groupIndex(name)
	if err != nil {
		return nil, err
	}
	return c.Groups[i], nil
}

// Returns the result record of a match in the current generation
func (c *Cup) Result(generation int, group, key string) (*Group, *Result, error) {
	if generation != c.Generation {
		return nil, nil, ErrStaleGeneration
	}
	g, err := c.Group(group)
	if err != nil {
		return nil, nil, err
	}
	result, ok := g.Results[key]
	if !ok {
		return nil, nil, ErrUnknownMatch
	}
	return g, result, nil
}

// Sets one score field ("a" or "b") of a match and updates the
// standings of its group and the bracket.
func (c *Cup) SetScore(generation int, group, key, side, text string) error {
	g, result, err := c.Result(generation, group, key)
	if err != nil {
		return err
	}
	if err := result.SetScore(side, text); err != nil {
		return err
	}
	c.Update(g.Standings)
	return nil
}

// Empties both score fields of a match
func (c *Cup) ClearResult(generation int, group, key string) error {
	g, result, err := c.Result(generation, group, key)
	if err != nil {
		return err
	}
	result.Clear()
	c.Update(g.Standings)
	return nil
}

// Returns the results of both groups
func (c *Cup) Results() [2]ResultSet {
	return [2]ResultSet{c.Groups[0].Results, c.Groups[1].Results}
}

// Seeds the ranking into two groups and creates their schedules
// with empty result records.
func NewCup(ranking []*Competitor, algorithm SeedingAlgorithm, generation int) (*Cup, error) {
	if err := CheckNames(ranking); err != nil {
		return nil, err
	}
	groups, err := SplitGroups(ranking, algorithm)
	if err != nil {
		return nil, err
	}
	return RestoreCup(groups, [2]ResultSet{}, algorithm, generation)
}

// Rebuilds the derived views of a seeding from its groups and
// the results that were recorded for them.
//
// The schedules are recreated from the group order. Every scheduled
// match without a record gets an empty one. Records that do not
// belong to the schedule are kept but never counted.
func RestoreCup(groups [2][]*Competitor, results [2]ResultSet, algorithm SeedingAlgorithm, generation int) (*Cup, error) {
	seeded := slices.Concat(groups[0], groups[1])
	if err := CheckNames(seeded); err != nil {
		return nil, err
	}
	slices.SortStableFunc(seeded, func(a, b *Competitor) int { return cmp.Compare(a.Rank, b.Rank) })

	entries := NewConstantRanking(seeded)
	rankingGraph := NewRankingGraph(entries)

	entrySlots := make(map[*Competitor]*Slot, len(seeded))
	for _, s := range entries.Ranks() {
		entrySlots[s.Competitor] = s
	}

	cup := &Cup{
		Entries:      entries,
		RankingGraph: rankingGraph,
		Algorithm:    algorithm,
		Generation:   generation,
	}

	for i, competitors := range groups {
		name := GroupNames[i]

		slots := make([]*Slot, 0, len(competitors))
		for _, c := range competitors {
			slots = append(slots, entrySlots[c])
		}
		groupEntries := NewSlotRanking(slots)
		rankingGraph.AddVertex(groupEntries)
		rankingGraph.AddEdge(entries, groupEntries)

		schedule := NewSchedule(competitors)
		empty := NewResultSet(name, schedule)
		scheduled := empty.SortedKeys()
		groupResults := mergeResults(results[i], empty)

		cup.Groups[i] = &Group{
			Name:      name,
			Entries:   groupEntries,
			Schedule:  schedule,
			Standings: NewStandingsRanking(groupEntries, groupResults, scheduled, rankingGraph),
			Results:   groupResults,
		}
	}

	cup.Bracket = ProjectBracket(cup.Groups[0].Standings, cup.Groups[1].Standings)

	cup.Update(nil)

	return cup, nil
}

// Adds the empty records for matches that are missing in results.
// A record under a scheduled key always describes that match:
// reversed opponents are turned around with their scores and
// foreign opponents are replaced by the empty record.
func mergeResults(results, empty ResultSet) ResultSet {
	if results == nil {
		return empty
	}
	for key, e := range empty {
		r, ok := results[key]
		switch {
		case !ok || r == nil:
			results[key] = e
		case r.A == e.B && r.B == e.A:
			results[key] = &Result{A: e.A, B: e.B, Round: e.Round, ScoreA: r.ScoreB, ScoreB: r.ScoreA}
		case r.A != e.A || r.B != e.B:
			results[key] = e
		default:
			r.Round = e.Round
		}
	}
	return results
}
