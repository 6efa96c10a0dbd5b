package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"quizboard/internal/config"
	"quizboard/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	s, err := config.FromEnv(envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, config.Settings{
		Port:      8080,
		LogLevel:  "info",
		LogPretty: true,
		RateLimit: 5,
		RateBurst: 10,
	}, s)
}

func TestFromEnv(t *testing.T) {
	s, err := config.FromEnv(envMap(map[string]string{
		"PORT":            "9000",
		"ALLOWED_ORIGINS": "http://localhost:3000, https://class.example ,",
		"GAME_CONFIG":     "game.yaml",
		"LOG_LEVEL":       "debug",
		"LOG_PRETTY":      "false",
		"RATE_LIMIT":      "2.5",
		"RATE_BURST":      "4",
	}))
	require.NoError(t, err)
	assert.Equal(t, 9000, s.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://class.example"}, s.AllowedOrigins)
	assert.Equal(t, "game.yaml", s.GameConfigPath)
	assert.Equal(t, "debug", s.LogLevel)
	assert.False(t, s.LogPretty)
	assert.Equal(t, 2.5, s.RateLimit)
	assert.Equal(t, 4, s.RateBurst)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := map[string]string{
		"PORT":       "eighty",
		"LOG_PRETTY": "maybe",
		"RATE_LIMIT": "-1",
		"RATE_BURST": "0",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := config.FromEnv(envMap(map[string]string{key: val}))
			assert.Error(t, err)
		})
	}
}

func TestLoadGameDefaults(t *testing.T) {
	cfg, err := config.LoadGame("")
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultConfig(), cfg)
}

func TestParseGameOverlay(t *testing.T) {
	cfg, err := config.ParseGame([]byte(`
rules:
  max_rounds: 3
  stress_limit: 5
  table_income:
    NEUTRAL: {score: 2, resource: 0}
tokens_per_player: 4
`))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Rules.MaxRounds)
	assert.Equal(t, 5, cfg.Rules.StressLimit)
	assert.Equal(t, 4, cfg.TokensPerPlayer)
	assert.Equal(t, engine.Income{Score: 2}, cfg.Rules.TableIncome["NEUTRAL"])
	assert.Equal(t, engine.Income{Score: 1, Resource: 2}, cfg.Rules.TableIncome["MATH"], "unset keys keep defaults")
	assert.Equal(t, 5, cfg.Rules.MaxTracksPerRound)
	assert.Len(t, cfg.Map.Tables, 6)
}

func TestParseGameInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "rules: [1, 2"},
		{"missing home", "map:\n  home_table_id: ATTIC\n"},
		{"unknown role", "default_role_id: WIZARD\n"},
		{"zero rounds", "rules:\n  max_rounds: 0\n"},
		{"income table", "rules:\n  table_income:\n    ROOF: {score: 1}\n"},
		{"duplicate table", "map:\n  tables:\n    - {id: HOME, capacity: 1}\n    - {id: HOME, capacity: 1}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.ParseGame([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadGameFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_players: 4\n"), 0o644))

	cfg, err := config.LoadGame(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MinPlayers)

	_, err = config.LoadGame(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
