package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ezBadminton/groupcup/core"
	"github.com/ezBadminton/groupcup/gate"
	"github.com/ezBadminton/groupcup/store"
)

func parseFlags(name string, flags *flag.FlagSet, args []string) ([]string, error) {
	flags.SetOutput(io.Discard)
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("%s: %w", name, errUsage)
	}
	return flags.Args(), nil
}

func (a *app) cup() (*core.Cup, error) {
	if a.store.Cup == nil {
		return nil, store.ErrNotSeeded
	}
	return a.store.Cup, nil
}

// Returns the selected group or both when group is empty
func (a *app) groups(args []string) ([]*core.Group, error) {
	cup, err := a.cup()
	if err != nil {
		return nil, err
	}
	switch len(args) {
	case 0:
		return cup.Groups[:], nil
	case 1:
		g, err := cup.Group(args[0])
		if err != nil {
			return nil, err
		}
		return []*core.Group{g}, nil
	}
	return nil, errUsage
}

// Finds the match key of two names in a group. When the names are
// given in the opposite order of the schedule the scores are swapped.
func (a *app) matchKey(cup *core.Cup, group, nameA, nameB string, scores []string) (string, error) {
	g, err := cup.Group(group)
	if err != nil {
		return "", err
	}
	key := core.MatchKey(g.Name, nameA, nameB)
	if _, ok := g.Results[key]; ok {
		return key, nil
	}
	key = core.MatchKey(g.Name, nameB, nameA)
	if _, ok := g.Results[key]; ok {
		if len(scores) == 2 {
			scores[0], scores[1] = scores[1], scores[0]
		}
		return key, nil
	}
	return "", core.ErrUnknownMatch
}

func cmdRanking(a *app, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	renderRanking(a.out, a.store.Ranking)
	return nil
}

func cmdAdd(a *app, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	for _, name := range args {
		c, err := a.store.AddCompetitor(name)
		if err != nil {
			return fmt.Errorf("add %q: %w", name, err)
		}
		fmt.Fprintf(a.out, "Added %s as #%d\n", c.Name, c.Rank)
	}
	return nil
}

func cmdRename(a *app, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	return a.store.RenameCompetitor(args[0], args[1])
}

func cmdRemove(a *app, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	return a.store.RemoveCompetitor(args[0])
}

func cmdMove(a *app, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	position, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid position %q", args[1])
	}
	if err := a.store.MoveCompetitor(args[0], position); err != nil {
		return err
	}
	renderRanking(a.out, a.store.Ranking)
	return nil
}

func cmdImportRanking(a *app, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	ranking, err := store.ParseRankingCSV(file)
	if err != nil {
		return fmt.Errorf("parse csv: %w", err)
	}
	if err := a.store.ReplaceRanking(ranking); err != nil {
		return err
	}
	renderRanking(a.out, a.store.Ranking)
	return nil
}

func cmdSeed(a *app, args []string) error {
	flags := flag.NewFlagSet("seed", flag.ContinueOnError)
	algorithm := flags.String("algorithm", string(a.conf.Algorithm), "snake or split-half")
	args, err := parseFlags("seed", flags, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return errUsage
	}

	parsed, err := core.ParseSeedingAlgorithm(*algorithm)
	if err != nil {
		return err
	}
	if err := a.store.Seed(parsed); err != nil {
		return err
	}

	cup := a.store.Cup
	fmt.Fprintf(a.out, "Seeding %d (%s)\n", cup.Generation, cup.Algorithm)
	for _, g := range cup.Groups {
		renderGroupEntries(a.out, g)
	}
	return nil
}

func cmdSchedule(a *app, args []string) error {
	groups, err := a.groups(args)
	if err != nil {
		return err
	}
	for _, g := range groups {
		renderSchedule(a.out, g)
	}
	return nil
}

func cmdScore(a *app, args []string) error {
	flags := flag.NewFlagSet("score", flag.ContinueOnError)
	generation := flags.Int("generation", a.store.Generation, "Seeding the score belongs to")
	args, err := parseFlags("score", flags, args)
	if err != nil {
		return err
	}
	if len(args) != 5 {
		return errUsage
	}

	cup, err := a.cup()
	if err != nil {
		return err
	}
	scores := []string{args[3], args[4]}
	key, err := a.matchKey(cup, args[0], args[1], args[2], scores)
	if err != nil {
		return err
	}

	if err := a.store.SetScore(*generation, args[0], key, "a", scores[0]); err != nil {
		return err
	}
	if err := a.store.SetScore(*generation, args[0], key, "b", scores[1]); err != nil {
		return err
	}

	g, _ := cup.Group(args[0])
	renderStandings(a.out, g)
	return nil
}

func cmdClear(a *app, args []string) error {
	flags := flag.NewFlagSet("clear", flag.ContinueOnError)
	all := flags.Bool("all", false, "Clear every result of the seeding")
	generation := flags.Int("generation", a.store.Generation, "Seeding the result belongs to")
	args, err := parseFlags("clear", flags, args)
	if err != nil {
		return err
	}

	if *all {
		if len(args) != 0 {
			return errUsage
		}
		return a.store.ClearResults()
	}
	if len(args) != 3 {
		return errUsage
	}

	cup, err := a.cup()
	if err != nil {
		return err
	}
	key, err := a.matchKey(cup, args[0], args[1], args[2], nil)
	if err != nil {
		return err
	}
	return a.store.ClearResult(*generation, args[0], key)
}

func cmdStandings(a *app, args []string) error {
	groups, err := a.groups(args)
	if err != nil {
		return err
	}
	for _, g := range groups {
		renderStandings(a.out, g)
	}
	return nil
}

func cmdBracket(a *app, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	cup, err := a.cup()
	if err != nil {
		return err
	}
	renderBracket(a.out, cup.Bracket)
	return nil
}

func cmdShow(a *app, args []string) error {
	flags := flag.NewFlagSet("show", flag.ContinueOnError)
	asJSON := flags.Bool("json", false, "Print the cup as JSON")
	args, err := parseFlags("show", flags, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return errUsage
	}

	cup, err := a.cup()
	if err != nil {
		return err
	}

	if *asJSON {
		data, err := json.MarshalIndent(cup, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, string(data))
		return nil
	}

	fmt.Fprintf(a.out, "Seeding %d (%s)\n", cup.Generation, cup.Algorithm)
	for _, g := range cup.Groups {
		renderSchedule(a.out, g)
		renderStandings(a.out, g)
	}
	renderBracket(a.out, cup.Bracket)
	return nil
}

func cmdExport(a *app, args []string) error {
	switch len(args) {
	case 0:
		return a.store.ExportResults(a.out)
	case 1:
		file, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		if err := a.store.ExportResults(file); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	}
	return errUsage
}

func cmdImport(a *app, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	var in io.Reader = a.in
	if args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer file.Close()
		in = file
	}

	if err := a.store.ImportResults(in); err != nil {
		return err
	}
	for _, g := range a.store.Cup.Groups {
		renderStandings(a.out, g)
	}
	return nil
}

func cmdHashPassword(a *app, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	hash, err := gate.HashPassword(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, hash)
	return nil
}
