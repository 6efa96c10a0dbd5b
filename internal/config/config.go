package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"quizboard/internal/engine"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings holds process-level configuration read from the environment.
type Settings struct {
	Port           int
	AllowedOrigins []string
	GameConfigPath string
	LogLevel       string
	LogPretty      bool
	RateLimit      float64
	RateBurst      int
}

// LoadSettings reads an optional .env file and then the environment.
func LoadSettings() (Settings, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Settings{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds Settings from a lookup function, applying defaults for
// unset keys.
func FromEnv(lookup func(string) (string, bool)) (Settings, error) {
	s := Settings{
		Port:      8080,
		LogLevel:  "info",
		LogPretty: true,
		RateLimit: 5,
		RateBurst: 10,
	}

	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return Settings{}, fmt.Errorf("invalid PORT %q", v)
		}
		s.Port = port
	}
	if v, ok := lookup("ALLOWED_ORIGINS"); ok && v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				s.AllowedOrigins = append(s.AllowedOrigins, o)
			}
		}
	}
	if v, ok := lookup("GAME_CONFIG"); ok {
		s.GameConfigPath = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		s.LogLevel = v
	}
	if v, ok := lookup("LOG_PRETTY"); ok && v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid LOG_PRETTY %q: %w", v, err)
		}
		s.LogPretty = pretty
	}
	if v, ok := lookup("RATE_LIMIT"); ok && v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil || limit <= 0 {
			return Settings{}, fmt.Errorf("invalid RATE_LIMIT %q", v)
		}
		s.RateLimit = limit
	}
	if v, ok := lookup("RATE_BURST"); ok && v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst <= 0 {
			return Settings{}, fmt.Errorf("invalid RATE_BURST %q", v)
		}
		s.RateBurst = burst
	}
	return s, nil
}

// LoadGame returns the default game config overlaid with the YAML file at
// path. An empty path yields the defaults. Lists in the file replace the
// defaults; maps are merged key by key.
func LoadGame(path string) (engine.GameConfig, error) {
	cfg := engine.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.GameConfig{}, fmt.Errorf("read game config: %w", err)
	}
	return ParseGame(data)
}

// ParseGame decodes a YAML overlay onto the default game config and
// validates the result.
func ParseGame(data []byte) (engine.GameConfig, error) {
	cfg := engine.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return engine.GameConfig{}, fmt.Errorf("decode game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return engine.GameConfig{}, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}
