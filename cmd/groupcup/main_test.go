package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ezBadminton/groupcup/core"
	"github.com/ezBadminton/groupcup/gate"
	"github.com/ezBadminton/groupcup/internal/config"
	"github.com/ezBadminton/groupcup/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("GROUPCUP_PASSWORD", "")
	return &config.Config{
		StateConfig: config.StateConfig{StatePath: filepath.Join(t.TempDir(), "state.json")},
		GateConfig:  config.GateConfig{Protected: config.DefaultProtected},
		Algorithm:   core.SeedSnake,
		LogLevel:    "info",
	}
}

func execute(conf *config.Config, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	err := run(conf, args, strings.NewReader(""), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func mustExecute(t *testing.T, conf *config.Config, args ...string) string {
	t.Helper()
	out, _, err := execute(conf, args...)
	require.NoError(t, err, "groupcup %s", strings.Join(args, " "))
	return out
}

func loadState(t *testing.T, conf *config.Config) *store.Store {
	t.Helper()
	s, err := store.Load(conf.StatePath, nil)
	require.NoError(t, err)
	return s
}

func TestWorkflow(t *testing.T) {
	conf := testConfig(t)

	mustExecute(t, conf, "add", "Ana", "Ben", "Cleo", "Dan")
	out := mustExecute(t, conf, "seed")
	assert.Contains(t, out, "Seeding 1 (snake)")

	out = mustExecute(t, conf, "score", "A", "Ana", "Dan", "2", "5")
	assert.Regexp(t, `1\s+Dan\s+4\s+1\s+1\s+0\s+5\s+2\s+3`, out)

	out = mustExecute(t, conf, "bracket")
	assert.Regexp(t, `ČF1\s+Dan\s+vs\s+4B`, out)
	assert.Regexp(t, `ČF4\s+Cleo\s+vs\s+3A`, out)

	s := loadState(t, conf)
	require.NotNil(t, s.Cup)
	result := s.Cup.Groups[0].Results[core.MatchKey(core.GroupA, "Ana", "Dan")]
	assert.Equal(t, "2", result.ScoreA)
	assert.Equal(t, "5", result.ScoreB)

	out = mustExecute(t, conf, "show")
	assert.Contains(t, out, "Group B schedule")
	assert.Regexp(t, `Ana\s+vs\s+Dan\s+2:5`, out)
}

func TestScoreReversedNames(t *testing.T) {
	conf := testConfig(t)
	mustExecute(t, conf, "add", "Ana", "Ben", "Cleo", "Dan")
	mustExecute(t, conf, "seed")

	mustExecute(t, conf, "score", "A", "Dan", "Ana", "5", "2")

	s := loadState(t, conf)
	result := s.Cup.Groups[0].Results[core.MatchKey(core.GroupA, "Ana", "Dan")]
	assert.Equal(t, "2", result.ScoreA)
	assert.Equal(t, "5", result.ScoreB)

	_, _, err := execute(conf, "score", "A", "Ana", "Ben", "1", "0")
	assert.ErrorIs(t, err, core.ErrUnknownMatch)
}

func TestScoreStaleGeneration(t *testing.T) {
	conf := testConfig(t)
	mustExecute(t, conf, "add", "Ana", "Ben")
	mustExecute(t, conf, "seed", "--algorithm", "split-half")
	mustExecute(t, conf, "seed")

	_, _, err := execute(conf, "score", "--generation", "1", "A", "Ana", "Ben", "1", "0")
	assert.ErrorIs(t, err, core.ErrUnknownMatch, "Ana and Ben are in different groups")

	mustExecute(t, conf, "add", "Cleo")
	mustExecute(t, conf, "seed")
	_, _, err = execute(conf, "score", "--generation", "2", "A", "Ana", "Cleo", "1", "0")
	assert.ErrorIs(t, err, core.ErrStaleGeneration)

	mustExecute(t, conf, "score", "--generation", "3", "A", "Ana", "Cleo", "1", "0")
}

func TestGate(t *testing.T) {
	conf := testConfig(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	conf.PasswordHash = string(hash)

	_, _, err = execute(conf, "add", "Ana")
	assert.ErrorIs(t, err, gate.ErrLocked)

	_, _, err = execute(conf, "--password", "guess", "add", "Ana")
	assert.ErrorIs(t, err, gate.ErrWrongPassword)

	mustExecute(t, conf, "--password", "secret", "add", "Ana", "Ben", "Cleo")
	mustExecute(t, conf, "--password", "secret", "seed")

	out := mustExecute(t, conf, "score", "A", "Ana", "Cleo", "0", "0")
	assert.Contains(t, out, "Group A standings")
	assert.Len(t, loadState(t, conf).Ranking, 3)

	_, _, err = execute(conf, "clear", "--all")
	assert.ErrorIs(t, err, gate.ErrLocked)
}

func TestExportImport(t *testing.T) {
	conf := testConfig(t)
	mustExecute(t, conf, "add", "Ana", "Ben", "Cleo", "Dan")
	mustExecute(t, conf, "seed")
	mustExecute(t, conf, "score", "B", "Ben", "Cleo", "1", "3")

	exported := filepath.Join(t.TempDir(), "results.json")
	mustExecute(t, conf, "export", exported)
	mustExecute(t, conf, "clear", "--all")

	s := loadState(t, conf)
	assert.Equal(t, "Ben", s.Cup.Groups[1].Standings.Rows[0].Name())

	out := mustExecute(t, conf, "import", exported)
	assert.Contains(t, out, "Group B standings")

	s = loadState(t, conf)
	assert.Equal(t, "Cleo", s.Cup.Groups[1].Standings.Rows[0].Name())

	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"A": {}}`), 0o644))
	_, _, err := execute(conf, "import", broken)
	assert.ErrorIs(t, err, store.ErrMissingGroup)

	s = loadState(t, conf)
	assert.Equal(t, "Cleo", s.Cup.Groups[1].Standings.Rows[0].Name())
}

func TestClearResult(t *testing.T) {
	conf := testConfig(t)
	mustExecute(t, conf, "add", "Ana", "Ben", "Cleo", "Dan")
	mustExecute(t, conf, "seed")
	mustExecute(t, conf, "score", "B", "Ben", "Cleo", "1", "3")

	mustExecute(t, conf, "clear", "B", "Cleo", "Ben")

	s := loadState(t, conf)
	result := s.Cup.Groups[1].Results[core.MatchKey(core.GroupB, "Ben", "Cleo")]
	assert.False(t, result.Recorded())
}

func TestRankingCommands(t *testing.T) {
	conf := testConfig(t)
	mustExecute(t, conf, "add", "Ana", "Ben", "Cleo")
	mustExecute(t, conf, "rename", "Ben", "Bea")
	mustExecute(t, conf, "move", "Cleo", "1")
	mustExecute(t, conf, "remove", "Ana")

	out := mustExecute(t, conf, "ranking")
	assert.Regexp(t, `1\.\s+Cleo\n2\.\s+Bea\n`, out)

	csvPath := filepath.Join(t.TempDir(), "ranking.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,rank\nZoe,2\nYan,1\n"), 0o644))
	out = mustExecute(t, conf, "import-ranking", csvPath)
	assert.Regexp(t, `1\.\s+Yan\n2\.\s+Zoe\n`, out)
}

func TestShowJSON(t *testing.T) {
	conf := testConfig(t)
	mustExecute(t, conf, "add", "Ana", "Ben", "Cleo")
	mustExecute(t, conf, "seed")

	out := mustExecute(t, conf, "show", "--json")

	var view map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.EqualValues(t, 1, view["generation"])
	assert.Len(t, view["groups"], 2)
	assert.Len(t, view["bracket"], 4)
}

func TestErrors(t *testing.T) {
	conf := testConfig(t)

	_, stderr, err := execute(conf)
	assert.Error(t, err)
	assert.Contains(t, stderr, "commands:")

	_, _, err = execute(conf, "dance")
	assert.ErrorContains(t, err, `unknown command "dance"`)

	_, _, err = execute(conf, "rename", "Ana")
	assert.EqualError(t, err, "usage: groupcup rename OLD NEW")

	_, _, err = execute(conf, "standings")
	assert.ErrorIs(t, err, store.ErrNotSeeded)
}

func TestMalformedStateNotice(t *testing.T) {
	conf := testConfig(t)
	require.NoError(t, os.WriteFile(conf.StatePath, []byte("{broken"), 0o644))

	out, stderr, err := execute(conf, "ranking")
	require.NoError(t, err)
	assert.Contains(t, stderr, "notice")
	assert.Contains(t, stderr, conf.StatePath+store.BackupSuffix)
	assert.Contains(t, out, "The ranking is empty")
	assert.NoFileExists(t, conf.StatePath+store.BackupSuffix)

	_, _, err = execute(conf, "add", "Ana")
	require.NoError(t, err)

	backup, err := os.ReadFile(conf.StatePath + store.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(backup))
	assert.Len(t, loadState(t, conf).Ranking, 1)
}

func TestHashPassword(t *testing.T) {
	conf := testConfig(t)

	out := mustExecute(t, conf, "hash-password", "secret")
	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")))

	_, err := os.Stat(conf.StatePath)
	assert.True(t, os.IsNotExist(err), "hash-password wrote a state file")
}
