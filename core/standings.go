package core

import (
	"cmp"
	"slices"
)

type MatchMetrics struct {
	NumMatches int `json:"numMatches"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`

	GamesFor     float64 `json:"gamesFor"`
	GamesAgainst float64 `json:"gamesAgainst"`
	GameDiff     float64 `json:"gameDiff"`
}

func (m *MatchMetrics) UpdateDifferences() {
	m.GameDiff = m.GamesFor - m.GamesAgainst
}

// One line of a group's standings table
type Row struct {
	Competitor *Competitor
	MatchMetrics
}

func (r *Row) Name() string {
	return r.Competitor.Name
}

func (r *Row) SeedRank() int {
	return r.Competitor.Rank
}

// Computes the standings table of a group.
//
// Every roster competitor gets exactly one row no matter how many
// results exist. Only results with both scores set to finite
// numbers are counted. Results naming a competitor that is not in
// the roster are skipped, as are results stored under a key that is
// not their match key. Each pairing counts at most once, the first
// recorded result in key order wins.
//
// The rows are sorted by wins, game difference and games won
// (all descending) and finally by seed rank (ascending).
func ComputeStandings(roster []*Competitor, results ResultSet) ([]*Row, error) {
	if err := CheckUniqueNames(roster); err != nil {
		return nil, err
	}

	rows := make([]*Row, 0, len(roster))
	byName := make(map[string]*Row, len(roster))
	for _, c := range roster {
		row := &Row{Competitor: c}
		rows = append(rows, row)
		byName[c.Name] = row
	}

	counted := make(map[[2]string]bool, len(results))
	for _, key := range results.SortedKeys() {
		result := results[key]
		if result == nil || !keyMatches(key, result) {
			continue
		}
		pairing := [2]string{min(result.A, result.B), max(result.A, result.B)}
		if counted[pairing] {
			continue
		}
		counted[pairing] = extractMatchMetrics(result, byName)
	}

	for _, r := range rows {
		r.UpdateDifferences()
	}

	slices.SortStableFunc(rows, compareRows)

	return rows, nil
}

// Adds the result to the rows of both opponents.
// Returns false when the result was not counted.
func extractMatchMetrics(result *Result, byName map[string]*Row) bool {
	score, err := result.Score()
	if err != nil {
		return false
	}

	rowA, okA := byName[result.A]
	rowB, okB := byName[result.B]
	if !okA || !okB || rowA == rowB {
		return false
	}

	rowA.NumMatches += 1
	rowB.NumMatches += 1

	rowA.GamesFor += score.A
	rowA.GamesAgainst += score.B
	rowB.GamesFor += score.B
	rowB.GamesAgainst += score.A

	winner, err := score.GetWinner()
	if err != nil {
		return true
	}
	if winner == 0 {
		rowA.Wins += 1
		rowB.Losses += 1
	} else {
		rowB.Wins += 1
		rowA.Losses += 1
	}
	return true
}

func compareRows(a, b *Row) int {
	return cmp.Or(
		cmp.Compare(b.Wins, a.Wins),
		cmp.Compare(b.GameDiff, a.GameDiff),
		cmp.Compare(b.GamesFor, a.GamesFor),
		cmp.Compare(a.SeedRank(), b.SeedRank()),
	)
}

// A StandingsRanking ranks the entries of a group by their
// performance in the group's results.
type StandingsRanking struct {
	BaseRanking

	// The rows of the last update in rank order
	Rows []*Row

	// Set when the last update could not be computed
	Err error

	entries Ranking
	results ResultSet

	// The keys of the scheduled matches. Nil counts every record.
	scheduled []string
}

func (r *StandingsRanking) updateRanks() {
	entrySlots := r.entries.Ranks()
	roster := make([]*Competitor, 0, len(entrySlots))
	slotsById := make(map[string]*Slot, len(entrySlots))
	for _, s := range entrySlots {
		if s.Competitor == nil {
			continue
		}
		roster = append(roster, s.Competitor)
		slotsById[s.Competitor.Id] = s
	}

	results := r.results
	if r.scheduled != nil {
		results = results.Only(r.scheduled)
	}

	rows, err := ComputeStandings(roster, results)
	r.Err = err
	if err != nil {
		r.Rows = nil
		r.ranks = nil
		return
	}

	ranks := make([]*Slot, 0, len(rows))
	for _, row := range rows {
		ranks = append(ranks, slotsById[row.Competitor.Id])
	}

	r.Rows = rows
	r.ranks = ranks
}

// Creates the standings of the entries. Only the records under the
// scheduled keys are counted, all records when scheduled is nil.
func NewStandingsRanking(entries Ranking, results ResultSet, scheduled []string, rankingGraph *RankingGraph) *StandingsRanking {
	ranking := &StandingsRanking{
		BaseRanking: NewBaseRanking(),
		entries:     entries,
		results:     results,
		scheduled:   scheduled,
	}
	ranking.updateRanks()

	if rankingGraph != nil {
		rankingGraph.AddVertex(ranking)
		rankingGraph.AddEdge(entries, ranking)
	}

	return ranking
}
