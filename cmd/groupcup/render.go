package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ezBadminton/groupcup/core"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderRanking(w io.Writer, ranking []*core.Competitor) {
	if len(ranking) == 0 {
		fmt.Fprintln(w, "The ranking is empty")
		return
	}
	table := newTable(w)
	for _, c := range ranking {
		fmt.Fprintf(table, "%d.\t%s\n", c.Rank, c.Name)
	}
	table.Flush()
}

func renderGroupEntries(w io.Writer, g *core.Group) {
	fmt.Fprintf(w, "Group %s\n", g.Name)
	table := newTable(w)
	for _, c := range g.Competitors() {
		fmt.Fprintf(table, "  seed %d\t%s\n", c.Rank, c.Name)
	}
	table.Flush()
}

func scoreText(r *core.Result) string {
	if r == nil || (r.ScoreA == "" && r.ScoreB == "") {
		return "-"
	}
	if !r.Recorded() {
		return fmt.Sprintf("%q:%q (not counted)", r.ScoreA, r.ScoreB)
	}
	return r.ScoreA + ":" + r.ScoreB
}

func renderSchedule(w io.Writer, g *core.Group) {
	fmt.Fprintf(w, "Group %s schedule\n", g.Name)
	if len(g.Schedule.Rounds) == 0 {
		fmt.Fprintln(w, "  no matches")
		return
	}

	table := newTable(w)
	for _, round := range g.Schedule.Rounds {
		fmt.Fprintf(table, "Round %d\t\t\t\n", round.Number)
		for _, m := range round.Matches {
			nameA, nameB := m.Slot1.Competitor.Name, m.Slot2.Competitor.Name
			result := g.Results[core.MatchKey(g.Name, nameA, nameB)]
			fmt.Fprintf(table, "  %s\tvs\t%s\t%s\n", nameA, nameB, scoreText(result))
		}
		if round.Resting != nil {
			fmt.Fprintf(table, "  %s rests\t\t\t\n", round.Resting.Name)
		}
	}
	table.Flush()
}

func renderStandings(w io.Writer, g *core.Group) {
	fmt.Fprintf(w, "Group %s standings\n", g.Name)
	if g.Standings.Err != nil {
		fmt.Fprintf(w, "  not available: %v\n", g.Standings.Err)
		return
	}

	table := newTable(w)
	fmt.Fprintln(table, "#\tName\tSeed\tM\tW\tL\tGF\tGA\tGD")
	for i, row := range g.Standings.Rows {
		fmt.Fprintf(table, "%d\t%s\t%d\t%d\t%d\t%d\t%s\t%s\t%s\n",
			i+1, row.Name(), row.SeedRank(),
			row.NumMatches, row.Wins, row.Losses,
			core.FormatPoints(row.GamesFor),
			core.FormatPoints(row.GamesAgainst),
			core.FormatPoints(row.GameDiff),
		)
	}
	table.Flush()
}

func renderBracket(w io.Writer, bracket *core.Bracket) {
	fmt.Fprintln(w, "Bracket")
	table := newTable(w)
	for _, m := range bracket.Matches {
		fmt.Fprintf(table, "%s\t%s\tvs\t%s\n", m.Label, m.Slot1.Label(), m.Slot2.Label())
	}
	table.Flush()
}
