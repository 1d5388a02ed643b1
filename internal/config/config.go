package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ezBadminton/groupcup/core"
	"github.com/ezBadminton/groupcup/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "GROUPCUP"

type Config struct {
	StateConfig
	GateConfig

	Algorithm core.SeedingAlgorithm
	LogLevel  string

	// Master ranking used when no state file exists yet
	InitialRanking []string
}

type StateConfig struct {
	StatePath string
}

type GateConfig struct {
	// bcrypt hash of the organizer password. Empty disables the gate.
	PasswordHash string
	Protected    []string
}

// The operations that need an unlocked gate unless configured otherwise
var DefaultProtected = []string{"ranking", "seed", "import", "clear"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("state.path", "groupcup.json")
	v.SetDefault("seeding.algorithm", string(core.SeedSnake))
	v.SetDefault("gate.password_hash", "")
	v.SetDefault("gate.protected", DefaultProtected)
	v.SetDefault("log.level", "info")
	v.SetDefault("ranking.initial", []string{})
}

// Reads config.yaml from dir, the environment and an optional .env
// file in dir. Environment variables take precedence over the file
// and are named like GROUPCUP_STATE_PATH.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
		logging.Log.Debug("Loaded .env")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logging.Log.Debugf("No config file in %s, using defaults", dir)
	}

	algorithm, err := core.ParseSeedingAlgorithm(v.GetString("seeding.algorithm"))
	if err != nil {
		return nil, fmt.Errorf("seeding.algorithm: %w", err)
	}

	conf := &Config{
		StateConfig: StateConfig{
			StatePath: v.GetString("state.path"),
		},
		GateConfig: GateConfig{
			PasswordHash: v.GetString("gate.password_hash"),
			Protected:    v.GetStringSlice("gate.protected"),
		},
		Algorithm:      algorithm,
		LogLevel:       v.GetString("log.level"),
		InitialRanking: v.GetStringSlice("ranking.initial"),
	}

	if strings.TrimSpace(conf.StatePath) == "" {
		return nil, fmt.Errorf("state.path must not be empty")
	}

	return conf, nil
}
