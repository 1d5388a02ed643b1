package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ezBadminton/groupcup/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	s := newTestStore(t, "Ana", "Ben", "Cleo", "Dan", "Eve")
	require.NoError(t, s.Seed(core.SeedSplitHalf))

	key := core.MatchKey(core.GroupA, "Ana", "Cleo")
	require.NoError(t, s.SetScore(1, core.GroupA, key, "a", "1"))
	require.NoError(t, s.SetScore(1, core.GroupA, key, "b", "4"))
	require.NoError(t, s.Save())

	loaded, err := Load(s.Path(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, loaded.Generation)
	assert.Equal(t, namesOf(s.Ranking), namesOf(loaded.Ranking))
	assert.Equal(t, s.Ranking[2].Id, loaded.Ranking[2].Id)
	require.NotNil(t, loaded.Cup)
	assert.Equal(t, core.SeedSplitHalf, loaded.Cup.Algorithm)

	groupA := loaded.Cup.Groups[0]
	assert.Equal(t, []string{"Ana", "Ben", "Cleo"}, namesOf(groupA.Competitors()))
	assert.Equal(t, "4", groupA.Results[key].ScoreB)
	assert.Equal(t, "Cleo", groupA.Standings.Rows[0].Name())
	assert.Equal(t, "Cleo", loaded.Cup.Bracket.Matches[0].Slot1.Label())

	require.NoError(t, loaded.SetScore(1, core.GroupA, key, "a", "9"))
}

func TestSaveReplacesFile(t *testing.T) {
	s := newTestStore(t, "Ana")
	require.NoError(t, s.Save())
	_, err := s.AddCompetitor("Ben")
	require.NoError(t, err)
	require.NoError(t, s.Save())

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files were left behind")

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var state map[string]any
	require.NoError(t, json.Unmarshal(data, &state))
	assert.EqualValues(t, 1, state["version"])
	assert.Len(t, state["ranking"], 2)
	assert.NotContains(t, state, "groups")
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := Load(path, []string{"Ana", "Ben"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana", "Ben"}, namesOf(s.Ranking))
	assert.Nil(t, s.Cup)
	assert.Equal(t, path, s.Path())
}

func TestLoadMalformed(t *testing.T) {
	cases := map[string]string{
		"syntax":    `{"version": 1, "ranking": [`,
		"version":   `{"version": 7, "ranking": []}`,
		"duplicate": `{"version": 1, "ranking": [{"name": "X"}, {"name": "X"}]}`,
		"unnamed":   `{"version": 1, "ranking": [{"id": "1"}]}`,
		"algorithm": `{"version": 1, "algorithm": "random", "generation": 1, "ranking": [], "groups": {"A": [], "B": []}}`,
		"record":    `{"version": 1, "generation": 1, "ranking": [], "groups": {"A": [], "B": []}, "results": {"A": {"k": null}}}`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			s, err := Load(path, []string{"Fallback"})
			assert.ErrorIs(t, err, ErrMalformedState)
			require.NotNil(t, s)
			assert.Equal(t, []string{"Fallback"}, namesOf(s.Ranking))
			assert.Nil(t, s.Cup)
		})
	}
}

func TestSaveBacksUpMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	content := []byte(`{"version": 1, "ranking": [`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	s, err := Load(path, []string{"Fallback"})
	assert.ErrorIs(t, err, ErrMalformedState)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, data, "loading changed the file")
	assert.NoFileExists(t, path+BackupSuffix)

	require.NoError(t, s.Save())

	backup, err := os.ReadFile(path + BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, content, backup)

	loaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fallback"}, namesOf(loaded.Ranking))

	// Later saves keep the backup
	_, err = s.AddCompetitor("Ana")
	require.NoError(t, err)
	require.NoError(t, s.Save())
	backup, err = os.ReadFile(path + BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, content, backup)
}

func TestSaveWithoutBackup(t *testing.T) {
	s := newTestStore(t, "Ana")
	require.NoError(t, s.Save())
	require.NoError(t, s.Save())
	assert.NoFileExists(t, s.Path()+BackupSuffix)

	loaded, err := Load(s.Path(), nil)
	require.NoError(t, err)
	require.NoError(t, loaded.Save())
	assert.NoFileExists(t, s.Path()+BackupSuffix)
}

func TestLoadMissingGroup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	content := `{"version": 1, "algorithm": "snake", "generation": 2, "ranking": [], "groups": {"A": []}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path, nil)
	assert.ErrorIs(t, err, ErrMissingGroup)
	assert.Nil(t, s.Cup)
	assert.Equal(t, 0, s.Generation)
}

func TestLoadKeepsStaleRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	content := `{
		"version": 1,
		"algorithm": "snake",
		"generation": 3,
		"ranking": [{"id": "a", "name": "Ana"}, {"id": "b", "name": "Ben"}, {"id": "c", "name": "Cleo"}],
		"groups": {
			"A": [{"id": "a", "name": "Ana", "rank": 1}, {"id": "c", "name": "Cleo", "rank": 3}],
			"B": [{"id": "b", "name": "Ben", "rank": 2}]
		},
		"results": {
			"A": {"A::Old__Ana": {"a": "Old", "b": "Ana", "round": 1, "ag": "7", "bg": "0"}},
			"B": {}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path, nil)
	require.NoError(t, err)
	require.NotNil(t, s.Cup)

	groupA := s.Cup.Groups[0]
	assert.Len(t, groupA.Results, 2)
	assert.Contains(t, groupA.Results, "A::Old__Ana")
	assert.Contains(t, groupA.Results, core.MatchKey(core.GroupA, "Ana", "Cleo"))

	ana := groupA.Standings.Rows[0]
	assert.Equal(t, "Ana", ana.Name())
	assert.Zero(t, ana.GamesAgainst, "the stale record was counted")
}
