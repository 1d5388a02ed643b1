package core

import (
	"encoding/json"
)

func marshalCompetitors(competitors []*Competitor) []map[string]any {
	result := make([]map[string]any, len(competitors))
	for i, c := range competitors {
		result[i] = map[string]any{
			"name": c.Name,
			"rank": c.Rank,
		}
	}
	return result
}

func marshalSchedule(group *Group) []map[string]any {
	rounds := make([]map[string]any, len(group.Schedule.Rounds))
	for i, round := range group.Schedule.Rounds {
		roundMatches := make([]map[string]any, len(round.Matches))
		for i, match := range round.Matches {
			roundMatches[i] = marshalMatch(group, match)
		}

		var resting string
		if round.Resting != nil {
			resting = round.Resting.Name
		}

		rounds[i] = map[string]any{
			"round":   round.Number,
			"matches": roundMatches,
			"resting": resting,
		}
	}
	return rounds
}

func marshalMatch(group *Group, match *Match) map[string]any {
	nameA, nameB := match.Slot1.Label(), match.Slot2.Label()
	key := MatchKey(group.Name, nameA, nameB)
	result := map[string]any{
		"key": key,
		"a":   nameA,
		"b":   nameB,
		"ag":  "",
		"bg":  "",
	}
	if r, ok := group.Results[key]; ok {
		result["ag"] = r.ScoreA
		result["bg"] = r.ScoreB
	}
	return result
}

func marshalStandings(ranking *StandingsRanking) []map[string]any {
	rows := make([]map[string]any, len(ranking.Rows))
	for i, row := range ranking.Rows {
		rows[i] = map[string]any{
			"name":         row.Name(),
			"seedRank":     row.SeedRank(),
			"matches":      row.NumMatches,
			"wins":         row.Wins,
			"losses":       row.Losses,
			"gamesFor":     row.GamesFor,
			"gamesAgainst": row.GamesAgainst,
			"gameDiff":     row.GameDiff,
		}
	}
	return rows
}

func marshalBracket(bracket *Bracket) []map[string]any {
	matches := make([]map[string]any, len(bracket.Matches))
	for i, m := range bracket.Matches {
		matches[i] = map[string]any{
			"label": m.Label,
			"a":     m.Slot1.Label(),
			"b":     m.Slot2.Label(),
		}
	}
	return matches
}

func marshalCup(cup *Cup) map[string]any {
	groups := make([]map[string]any, len(cup.Groups))
	for i, g := range cup.Groups {
		groups[i] = map[string]any{
			"name":      g.Name,
			"entries":   marshalCompetitors(g.Competitors()),
			"rounds":    marshalSchedule(g),
			"standings": marshalStandings(g.Standings),
		}
	}

	return map[string]any{
		"generation": cup.Generation,
		"algorithm":  cup.Algorithm,
		"groups":     groups,
		"bracket":    marshalBracket(cup.Bracket),
	}
}

func (c *Cup) MarshalJSON() ([]byte, error) {
	anymap := marshalCup(c)
	return json.Marshal(anymap)
}
