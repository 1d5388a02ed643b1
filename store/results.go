package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ezBadminton/groupcup/core"
	"github.com/ezBadminton/groupcup/gate"
	"github.com/ezBadminton/groupcup/internal/logging"
	"github.com/sirupsen/logrus"
)

// Writes the results of both groups as {"A": {...}, "B": {...}}
func (s *Store) ExportResults(w io.Writer) error {
	export := map[string]core.ResultSet{
		core.GroupA: {},
		core.GroupB: {},
	}
	if s.Cup != nil {
		for i, results := range s.Cup.Results() {
			export[core.GroupNames[i]] = results
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("export results: %w", err)
	}
	return nil
}

// Replaces the results of the current seeding with the exported
// results read from r.
//
// The input has to contain both groups. Records of matches that are
// not scheduled are kept but not counted. On any error the current
// results stay untouched.
func (s *Store) ImportResults(r io.Reader) error {
	if err := s.auth.Authorize(gate.OpImport); err != nil {
		return err
	}
	cup, err := s.seeded()
	if err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedState, err)
	}

	var imported [2]core.ResultSet
	for i, name := range core.GroupNames {
		data, ok := raw[name]
		if !ok || string(data) == "null" {
			return fmt.Errorf("%w: group %s", ErrMissingGroup, name)
		}
		var results core.ResultSet
		if err := json.Unmarshal(data, &results); err != nil {
			return fmt.Errorf("%w: group %s: %v", ErrMalformedState, name, err)
		}
		if err := checkResults(results); err != nil {
			return err
		}
		imported[i] = results
	}

	// The restored cup gets its own competitors. The current cup
	// keeps working on the old ones.
	var groups [2][]*core.Competitor
	for i, g := range cup.Groups {
		for _, c := range g.Competitors() {
			groups[i] = append(groups[i], &core.Competitor{Id: c.Id, Name: c.Name, Rank: c.Rank})
		}
	}
	restored, err := core.RestoreCup(groups, imported, cup.Algorithm, cup.Generation)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	s.Cup = restored

	logging.Log.WithFields(logrus.Fields{
		"groupA": len(imported[0]),
		"groupB": len(imported[1]),
	}).Info("Imported results")
	return nil
}
