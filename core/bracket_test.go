package core

import (
	"testing"
)

func bracketLabelsOf(bracket *Bracket) [][3]string {
	labels := make([][3]string, 0, len(bracket.Matches))
	for _, m := range bracket.Matches {
		labels = append(labels, [3]string{m.Label, m.Slot1.Label(), m.Slot2.Label()})
	}
	return labels
}

func TestBracketCrossover(t *testing.T) {
	groupA := named("a1", "a2", "a3", "a4", "a5")
	groupB := named("b1", "b2", "b3", "b4")

	bracket := ProjectBracket(NewConstantRanking(groupA), NewConstantRanking(groupB))

	expected := [][3]string{
		{"ČF1", "a1", "b4"},
		{"ČF2", "a2", "b3"},
		{"ČF3", "b1", "a4"},
		{"ČF4", "b2", "a3"},
	}

	labels := bracketLabelsOf(bracket)
	for i := range expected {
		if labels[i] != expected[i] {
			t.Fatalf("Bracket match %d is %v instead of %v", i, labels[i], expected[i])
		}
	}
}

func TestBracketPlaceholders(t *testing.T) {
	groupA := named("a1", "a2")
	groupB := named("b1", "b2", "b3")

	bracket := ProjectBracket(NewConstantRanking(groupA), NewConstantRanking(groupB))

	expected := [][3]string{
		{"ČF1", "a1", "4B"},
		{"ČF2", "a2", "b3"},
		{"ČF3", "b1", "4A"},
		{"ČF4", "b2", "3A"},
	}

	labels := bracketLabelsOf(bracket)
	for i := range expected {
		if labels[i] != expected[i] {
			t.Fatalf("Bracket match %d is %v instead of %v", i, labels[i], expected[i])
		}
	}

	empty := ProjectBracket(NewConstantRanking(nil), NewConstantRanking(nil))
	if empty.Matches[0].Slot1.Label() != "1A" || empty.Matches[2].Slot1.Label() != "1B" {
		t.Fatal("Empty groups did not produce placeholder labels")
	}
}

func TestBracketFollowsStandings(t *testing.T) {
	groupA := named("a1", "a2")
	groupB := named("b1", "b2")

	entriesA := NewConstantRanking(groupA)
	rankingGraph := NewRankingGraph(entriesA)
	results := ResultSet{}
	standingsA := NewStandingsRanking(entriesA, results, nil, rankingGraph)
	standingsB := NewStandingsRanking(NewConstantRanking(groupB), ResultSet{}, nil, nil)

	bracket := ProjectBracket(standingsA, standingsB)
	if bracket.Matches[0].Slot1.Label() != "a1" {
		t.Fatal("The top seed does not lead an unplayed group")
	}

	key, result := played(GroupA, "a1", "a2", "0", "1")
	results[key] = result

	for ranking := range rankingGraph.BreadthSearchIter(entriesA) {
		ranking.updateRanks()
		for _, s := range ranking.dependantSlots() {
			s.Update()
		}
	}

	eq1 := bracket.Matches[0].Slot1.Label() == "a2"
	eq2 := bracket.Matches[3].Slot2.Label() == "3A"
	eq3 := bracket.Matches[1].Slot1.Label() == "a1"
	if !eq1 || !eq2 || !eq3 {
		t.Fatal("The bracket did not follow the updated standings")
	}
}
