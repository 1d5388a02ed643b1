package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ezBadminton/groupcup/core"
	"github.com/ezBadminton/groupcup/internal/logging"
)

const stateVersion = 1

type stateFile struct {
	Version    int                           `json:"version"`
	Algorithm  core.SeedingAlgorithm         `json:"algorithm,omitempty"`
	Generation int                           `json:"generation"`
	Ranking    []*core.Competitor            `json:"ranking"`
	Groups     map[string][]*core.Competitor `json:"groups,omitempty"`
	Results    map[string]core.ResultSet     `json:"results,omitempty"`
}

func (s *Store) snapshot() *stateFile {
	state := &stateFile{
		Version:    stateVersion,
		Generation: s.Generation,
		Ranking:    s.Ranking,
	}
	if s.Ranking == nil {
		state.Ranking = []*core.Competitor{}
	}
	if s.Cup == nil {
		return state
	}

	state.Algorithm = s.Cup.Algorithm
	state.Groups = make(map[string][]*core.Competitor, 2)
	state.Results = make(map[string]core.ResultSet, 2)
	for i, g := range s.Cup.Groups {
		name := core.GroupNames[i]
		state.Groups[name] = g.Competitors()
		state.Results[name] = g.Results
	}
	return state
}

// The suffix of the copy of a state file that could not be loaded
const BackupSuffix = ".bad"

// Writes the state to the store's path. The file is replaced
// atomically so a failed write leaves the previous state intact.
//
// When the store replaced an unloadable file, that file is moved
// to the path with BackupSuffix before it is overwritten.
func (s *Store) Save() error {
	if s.backupOnSave {
		if err := s.backup(); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(s.snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".groupcup-*.json")
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	logging.Log.WithField("path", s.path).Debug("Saved state")
	return nil
}

func (s *Store) backup() error {
	backupPath := s.path + BackupSuffix
	err := os.Rename(s.path, backupPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("back up unloadable state: %w", err)
	}
	if err == nil {
		logging.Log.WithField("path", backupPath).Warn("Moved the unloadable state file aside")
	}
	s.backupOnSave = false
	return nil
}

// Loads the state from path.
//
// Loading never fails: a missing file gives a fresh store with the
// initial ranking. An unreadable or malformed file gives a fresh store
// as well and the returned error tells why the file was ignored. The
// file stays untouched until the first Save moves it aside.
func Load(path string, initial []string) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Log.WithField("path", path).Info("No state file, starting empty")
		return New(path, initial), nil
	}
	if err != nil {
		logging.Log.WithError(err).Warn("Could not read the state file, starting empty")
		s := New(path, initial)
		s.backupOnSave = true
		return s, fmt.Errorf("read state: %w", err)
	}

	s, err := decodeState(path, data)
	if err != nil {
		logging.Log.WithError(err).WithField("path", path).Warn("Ignoring malformed state file")
		s = New(path, initial)
		s.backupOnSave = true
		return s, err
	}
	return s, nil
}

func decodeState(path string, data []byte) (*Store, error) {
	var state stateFile
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if state.Version != stateVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedState, state.Version)
	}

	for _, c := range state.Ranking {
		if c == nil {
			return nil, fmt.Errorf("%w: empty ranking entry", ErrMalformedState)
		}
	}
	if err := core.CheckNames(state.Ranking); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	core.Renumber(state.Ranking)

	s := &Store{
		Ranking:    state.Ranking,
		Generation: state.Generation,
		path:       path,
		auth:       allowAll{},
	}

	if state.Groups == nil {
		return s, nil
	}

	cup, err := restore(state.Groups, state.Results, state.Algorithm, state.Generation)
	if err != nil {
		return nil, err
	}
	s.Cup = cup
	return s, nil
}

func restore(groups map[string][]*core.Competitor, results map[string]core.ResultSet, algorithm core.SeedingAlgorithm, generation int) (*core.Cup, error) {
	algorithm, err := core.ParseSeedingAlgorithm(string(algorithm))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}

	var seeded [2][]*core.Competitor
	var seededResults [2]core.ResultSet
	for i, name := range core.GroupNames {
		competitors, ok := groups[name]
		if !ok {
			return nil, fmt.Errorf("%w: group %s", ErrMissingGroup, name)
		}
		for _, c := range competitors {
			if c == nil {
				return nil, fmt.Errorf("%w: empty group entry", ErrMalformedState)
			}
		}
		if err := checkResults(results[name]); err != nil {
			return nil, err
		}
		seeded[i] = competitors
		seededResults[i] = results[name]
	}

	cup, err := core.RestoreCup(seeded, seededResults, algorithm, generation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return cup, nil
}

func checkResults(results core.ResultSet) error {
	for key, r := range results {
		if r == nil {
			return fmt.Errorf("%w: empty record %q", ErrMalformedState, key)
		}
	}
	return nil
}
