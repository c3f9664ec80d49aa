// Package config loads the runtime configuration from environment variables.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	State  StateConfig
	Studio StudioConfig
	OpenAI OpenAIConfig
	Gemini GeminiConfig
	Enrich EnrichConfig
	Web    WebConfig
}

type StateConfig struct {
	Path        string // file-backed slot path (e.g., ./scoutdeck-state.json)
	DatabaseURL string // PostgreSQL connection URL; when set, the slot lives in the database
	Key         string // slot key, one presentation per key (default "default")
}

type StudioConfig struct {
	URL   string // base URL of the Studio service (e.g., https://studio.example.com)
	Token string
}

type OpenAIConfig struct {
	Token string
}

type GeminiConfig struct {
	APIKey string
}

type EnrichConfig struct {
	Provider string // "studio", "openai" or "gemini" (default "studio")
}

type WebConfig struct {
	Host string
	Port int
}

// envStr reads an environment variable with a default.
func envStr(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		State: StateConfig{
			Path:        envStr("SCOUTDECK_STATE_PATH", "scoutdeck-state.json"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Key:         envStr("SCOUTDECK_STATE_KEY", "default"),
		},
		Studio: StudioConfig{
			URL:   os.Getenv("STUDIO_URL"),
			Token: os.Getenv("STUDIO_TOKEN"),
		},
		OpenAI: OpenAIConfig{
			Token: os.Getenv("OPENAI_TOKEN"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},
		Enrich: EnrichConfig{
			Provider: envStr("ENRICH_PROVIDER", "studio"),
		},
		Web: WebConfig{
			Host: envStr("WEB_HOST", "0.0.0.0"),
			Port: envInt("WEB_PORT", 8080),
		},
	}
}
