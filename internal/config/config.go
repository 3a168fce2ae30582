// Package config reads process configuration from environment variables,
// typically loaded from a .env file by the CLI root command.
package config

import "os"

// Config holds the settings shared across commands.
type Config struct {
	// DBPath is the SQLite database file backing books and users.
	DBPath string
	// VisionProvider selects the LLM used to read covers: openai, ollama or gemini.
	VisionProvider string
}

// Load reads the configuration, applying defaults for anything unset.
func Load() *Config {
	return &Config{
		DBPath:         getenvDefault("BOOKSHELF_DB_PATH", "data/library.db"),
		VisionProvider: getenvDefault("VISION_PROVIDER", "openai"),
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
